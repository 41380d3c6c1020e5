// Package kudos реализует протокол признания: месячную квоту отправителя,
// атомарный расчёт баллов и ленту kudos.
// models.go описывает структуры данных и словарь бейджей.
package kudos

import "time"

// Badges — фиксированный словарь бейджей из формы признания.
// Бейдж чисто описательный и не влияет на баллы.
var Badges = []string{"Team Player", "Customer Hero", "Innovator", "Leader"}

// ValidBadge проверяет бейдж по словарю. Пустой бейдж допустим.
func ValidBadge(badge string) bool {
	if badge == "" {
		return true
	}
	for _, b := range Badges {
		if b == badge {
			return true
		}
	}
	return false
}

// Kudo — одно событие признания от отправителя получателю.
// После успешного расчёта запись неизменяема (кроме счётчика лайков
// и append-only комментариев, которые не входят в инварианты ядра).
type Kudo struct {
	ID         int64     `db:"id"`          // Автоинкрементный ID записи в БД
	KudoID     string    `db:"kudo_id"`     // Публичный идентификатор (UUID)
	SenderID   string    `db:"sender_id"`   // employee_id отправителя
	ReceiverID string    `db:"receiver_id"` // employee_id получателя
	Message    string    `db:"message"`     // Текст признания (непустой)
	Badge      *string   `db:"badge"`       // Бейдж из словаря (может быть nil)
	Likes      int       `db:"likes"`       // Лайки, инкрементируются извне
	CreatedAt  time.Time `db:"created_at"`  // Момент создания; определяет квотное окно
}

// Comment — комментарий к kudo. Только добавление, без правок.
type Comment struct {
	ID          int64     `db:"id"`
	KudoID      string    `db:"kudo_id"`
	CommenterID string    `db:"commenter_id"`
	Body        string    `db:"body"`
	CreatedAt   time.Time `db:"created_at"`
}

// FeedItem — kudo с развёрнутыми именами для ленты.
type FeedItem struct {
	Kudo
	SenderName   string
	ReceiverName string
}

// SettlementParams — параметры одного расчёта (из конфигурации).
type SettlementParams struct {
	MonthlyLimit   int // Лимит kudos на отправителя за календарный месяц
	SenderReward   int // Баллы отправителю
	ReceiverReward int // Баллы получателю (намеренно больше)
}

// SettlementResult — итог успешно зафиксированного расчёта.
type SettlementResult struct {
	KudoID           string // Публичный идентификатор созданного kudo
	SenderName       string // Имя отправителя для текста уведомления
	ReceiverCredited bool   // false, если получатель не найден (аномалия, баллы не начислены)
	Used             int    // Сколько kudos из месячной квоты использовано, включая этот
}

// QuotaStatus — результат консультативной проверки квоты.
type QuotaStatus struct {
	Used    int       // Отправлено в текущем окне
	Limit   int       // Месячный лимит
	ResetsAt time.Time // Начало следующего окна (первый момент следующего месяца, UTC)
}

// Remaining возвращает остаток квоты (не меньше нуля).
func (q QuotaStatus) Remaining() int {
	if q.Used >= q.Limit {
		return 0
	}
	return q.Limit - q.Used
}

// Summary — агрегаты за период для дайджеста.
type Summary struct {
	Total        int
	TopReceivers []NameCount
	TopGivers    []NameCount
}

// NameCount — пара «имя — количество kudos».
type NameCount struct {
	Name  string
	Count int
}
