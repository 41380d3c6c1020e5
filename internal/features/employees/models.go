// Package employees управляет сотрудниками: регистрацией, ролями, профилями.
// models.go описывает структуры данных для работы с таблицей employees.
package employees

import "time"

// Роли сотрудников — закрытый набор. Проверки прав делаются
// только по этому полю, никаких сравнений с email.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Employee представляет сотрудника компании в базе данных.
// Баллы (Points) изменяются только расчётом kudos и списанием за награды —
// никогда напрямую через профиль.
type Employee struct {
	ID         int64      `db:"id"`          // Автоинкрементный ID записи в БД
	EmployeeID string     `db:"employee_id"` // Публичный стабильный идентификатор (UUID)
	Name       string     `db:"name"`        // Отображаемое имя
	Email      string     `db:"email"`       // Рабочий email (уникальный)
	Department *string    `db:"department"`  // Отдел (может быть nil)
	Role       string     `db:"role"`        // user | admin
	Points     int        `db:"points"`      // Баланс баллов (>= 0)
	Birthday   *time.Time `db:"birthday"`    // День рождения (для поздравлений, может быть nil)
	HireDate   *time.Time `db:"hire_date"`   // Дата найма (для годовщин, может быть nil)
	CreatedAt  time.Time  `db:"created_at"`  // Когда запись создана
	UpdatedAt  time.Time  `db:"updated_at"`  // Последнее обновление
}

// DisplayName возвращает отображаемое имя сотрудника.
// Пустое имя заменяется на "Someone" — этот же фолбэк используется
// в тексте уведомлений о kudos.
func (e *Employee) DisplayName() string {
	if e.Name == "" {
		return "Someone"
	}
	return e.Name
}

// IsAdmin проверяет, есть ли у сотрудника права администратора.
func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}

// UpdateProfile содержит изменяемые админом поля профиля.
// Баллы здесь отсутствуют намеренно.
type UpdateProfile struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Department *string    `json:"department"`
	Birthday   *time.Time `json:"birthday"`
	HireDate   *time.Time `json:"hireDate"`
}
