// Package rewards реализует магазин наград: каталог и обмен баллов на награды.
// models.go описывает структуры данных.
package rewards

import "time"

// Reward — позиция каталога наград.
type Reward struct {
	ID          int64     `db:"id"`
	RewardID    string    `db:"reward_id"` // Публичный идентификатор (UUID)
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	Cost        int       `db:"cost"`   // Цена в баллах (> 0)
	Active      bool      `db:"active"` // Снятые с витрины награды не удаляются
	CreatedAt   time.Time `db:"created_at"`
}

// Redemption — факт обмена баллов на награду.
// Хранит цену на момент обмена: каталог может меняться.
type Redemption struct {
	ID         int64     `db:"id"`
	EmployeeID string    `db:"employee_id"`
	RewardID   string    `db:"reward_id"`
	Cost       int       `db:"cost"`
	CreatedAt  time.Time `db:"created_at"`
}
