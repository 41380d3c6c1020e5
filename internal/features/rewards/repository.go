// Package rewards — repository.go выполняет все операции с таблицами rewards и redemptions.
// Списание баллов выполняется в транзакции БД для целостности данных.
package rewards

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sparkblaze.io/recognition/internal/common"
)

// Repository предоставляет методы для работы с наградами и обменами.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий наград.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateReward добавляет награду в каталог.
func (r *Repository) CreateReward(ctx context.Context, rw *Reward) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO rewards (reward_id, name, description, cost, active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id, created_at
	`, rw.RewardID, rw.Name, rw.Description, rw.Cost).Scan(&rw.ID, &rw.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания награды: %w", err)
	}
	return nil
}

// ListActive возвращает витрину: активные награды по возрастанию цены.
func (r *Repository) ListActive(ctx context.Context) ([]*Reward, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, reward_id, name, description, cost, active, created_at
		FROM rewards
		WHERE active = TRUE
		ORDER BY cost ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса наград: %w", err)
	}
	defer rows.Close()

	var out []*Reward
	for rows.Next() {
		var rw Reward
		if err := rows.Scan(&rw.ID, &rw.RewardID, &rw.Name, &rw.Description, &rw.Cost, &rw.Active, &rw.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования награды: %w", err)
		}
		out = append(out, &rw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения наград: %w", err)
	}
	return out, nil
}

// Deactivate снимает награду с витрины (история обменов сохраняется).
func (r *Repository) Deactivate(ctx context.Context, rewardID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE rewards SET active = FALSE WHERE reward_id = $1`, rewardID)
	if err != nil {
		return fmt.Errorf("ошибка деактивации награды: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrRewardNotFound
	}
	return nil
}

// Redeem списывает баллы за награду и записывает обмен.
// Атомарная операция: проверка баланса под блокировкой строки (FOR UPDATE),
// списание и запись обмена либо происходят вместе, либо не происходят.
func (r *Repository) Redeem(ctx context.Context, employeeID, rewardID string) (*Redemption, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	// Награда должна существовать и быть активной
	var cost int
	err = tx.QueryRow(ctx,
		`SELECT cost FROM rewards WHERE reward_id = $1 AND active = TRUE`, rewardID,
	).Scan(&cost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrRewardNotFound
		}
		return nil, fmt.Errorf("ошибка чтения награды: %w", err)
	}

	// Проверяем баланс под блокировкой строки
	var points int
	err = tx.QueryRow(ctx,
		`SELECT points FROM employees WHERE employee_id = $1 FOR UPDATE`, employeeID,
	).Scan(&points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("ошибка чтения баланса: %w", err)
	}

	if points < cost {
		return nil, fmt.Errorf("need %d, have %d: %w", cost, points, common.ErrInsufficientPoints)
	}

	// Списываем
	_, err = tx.Exec(ctx, `
		UPDATE employees SET points = points - $2, updated_at = NOW()
		WHERE employee_id = $1
	`, employeeID, cost)
	if err != nil {
		return nil, fmt.Errorf("ошибка списания баллов: %w", err)
	}

	// Записываем обмен
	red := &Redemption{EmployeeID: employeeID, RewardID: rewardID, Cost: cost}
	err = tx.QueryRow(ctx, `
		INSERT INTO redemptions (employee_id, reward_id, cost)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, employeeID, rewardID, cost).Scan(&red.ID, &red.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка записи обмена: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка фиксации обмена: %w", err)
	}
	return red, nil
}

// ListRedemptions возвращает последние обмены сотрудника.
func (r *Repository) ListRedemptions(ctx context.Context, employeeID string, limit int) ([]*Redemption, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, employee_id, reward_id, cost, created_at
		FROM redemptions
		WHERE employee_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса обменов: %w", err)
	}
	defer rows.Close()

	var out []*Redemption
	for rows.Next() {
		var red Redemption
		if err := rows.Scan(&red.ID, &red.EmployeeID, &red.RewardID, &red.Cost, &red.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования обмена: %w", err)
		}
		out = append(out, &red)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения обменов: %w", err)
	}
	return out, nil
}
