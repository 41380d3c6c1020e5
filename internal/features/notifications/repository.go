// Package notifications — repository.go выполняет операции с таблицей notifications.
package notifications

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository работает с таблицей notifications.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий уведомлений.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create сохраняет уведомление.
func (r *Repository) Create(ctx context.Context, n *Notification) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO notifications (employee_id, type, message, read, related_id)
		VALUES ($1, $2, $3, FALSE, $4)
		RETURNING id, created_at
	`, n.EmployeeID, n.Type, n.Message, n.RelatedID).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания уведомления: %w", err)
	}
	return nil
}

// ListByEmployee возвращает последние уведомления сотрудника.
func (r *Repository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]*Notification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, employee_id, type, message, read, related_id, created_at
		FROM notifications
		WHERE employee_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса уведомлений: %w", err)
	}
	defer rows.Close()

	var out []*Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.EmployeeID, &n.Type, &n.Message, &n.Read, &n.RelatedID, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования уведомления: %w", err)
		}
		out = append(out, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения уведомлений: %w", err)
	}
	return out, nil
}

// MarkRead помечает уведомление прочитанным. Сотрудник может пометить
// только свои уведомления.
func (r *Repository) MarkRead(ctx context.Context, id int64, employeeID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE notifications SET read = TRUE
		WHERE id = $1 AND employee_id = $2
	`, id, employeeID)
	if err != nil {
		return false, fmt.Errorf("ошибка пометки уведомления: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UnreadCount возвращает число непрочитанных уведомлений.
func (r *Repository) UnreadCount(ctx context.Context, employeeID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications WHERE employee_id = $1 AND read = FALSE
	`, employeeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта непрочитанных: %w", err)
	}
	return count, nil
}
