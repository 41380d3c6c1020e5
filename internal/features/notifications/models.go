// Package notifications хранит уведомления сотрудников и рассылает
// объявления во внешние чат-синки. Всё здесь — best-effort: сбой
// уведомления никогда не влияет на расчёт kudos.
// models.go описывает структуру уведомления.
package notifications

import "time"

// Типы уведомлений.
const (
	TypeKudoReceived = "kudo_received"
)

// Notification — уведомление для одного сотрудника.
type Notification struct {
	ID         int64     `db:"id"`
	EmployeeID string    `db:"employee_id"` // Кому адресовано
	Type       string    `db:"type"`        // Тип (kudo_received, ...)
	Message    string    `db:"message"`     // Человекочитаемый текст
	Read       bool      `db:"read"`        // Прочитано ли
	RelatedID  *string   `db:"related_id"`  // Ссылка на связанную сущность (kudo_id)
	CreatedAt  time.Time `db:"created_at"`
}
