// Package employees — repository.go отвечает за все операции с таблицей employees в БД.
// Каждая функция выполняет один SQL-запрос и возвращает результат или ошибку.
// Баллы сотрудников здесь только читаются: их изменяют транзакции kudos и rewards.
package employees

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sparkblaze.io/recognition/internal/common"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const employeeColumns = `id, employee_id, name, email, department, role, points,
	       birthday, hire_date, created_at, updated_at`

// Create добавляет нового сотрудника.
// Конфликт по email означает повторную регистрацию — возвращаем ErrEmployeeExists.
func (r *Repository) Create(ctx context.Context, e *Employee) error {
	query := `
		INSERT INTO employees (employee_id, name, email, department, role, points, birthday, hire_date)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7)
		ON CONFLICT (email) DO NOTHING
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		e.EmployeeID, e.Name, e.Email, e.Department, e.Role, e.Birthday, e.HireDate,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.ErrEmployeeExists
		}
		return fmt.Errorf("ошибка создания сотрудника: %w", err)
	}
	return nil
}

// GetByID возвращает сотрудника по публичному employee_id.
// Если не найден — common.ErrEmployeeNotFound.
func (r *Repository) GetByID(ctx context.Context, employeeID string) (*Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, employeeID), employeeID)
}

// GetByEmail возвращает сотрудника по email (без учёта регистра).
func (r *Repository) GetByEmail(ctx context.Context, email string) (*Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE LOWER(email) = LOWER($1)`
	return r.scanOne(r.db.QueryRow(ctx, query, email), email)
}

func (r *Repository) scanOne(row pgx.Row, key string) (*Employee, error) {
	var e Employee
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.Name, &e.Email, &e.Department, &e.Role, &e.Points,
		&e.Birthday, &e.HireDate, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("сотрудник не найден (%s): %w", key, common.ErrEmployeeNotFound)
		}
		return nil, fmt.Errorf("ошибка чтения сотрудника (%s): %w", key, err)
	}
	return &e, nil
}

// Exists проверяет наличие сотрудника по employee_id.
func (r *Repository) Exists(ctx context.Context, employeeID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM employees WHERE employee_id = $1)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, employeeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("ошибка проверки существования: %w", err)
	}
	return exists, nil
}

// List возвращает всех сотрудников, отсортированных по имени.
func (r *Repository) List(ctx context.Context) ([]*Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY name`
	return r.queryEmployees(ctx, query)
}

// UpdateProfile обновляет профильные поля сотрудника (не баллы и не роль).
func (r *Repository) UpdateProfile(ctx context.Context, employeeID string, p UpdateProfile) error {
	query := `
		UPDATE employees
		SET name = $2, email = $3, department = $4, birthday = $5, hire_date = $6, updated_at = NOW()
		WHERE employee_id = $1
	`
	tag, err := r.db.Exec(ctx, query, employeeID, p.Name, p.Email, p.Department, p.Birthday, p.HireDate)
	if err != nil {
		return fmt.Errorf("ошибка обновления профиля: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrEmployeeNotFound
	}
	return nil
}

// UpdateRole назначает сотруднику роль из закрытого набора {user, admin}.
func (r *Repository) UpdateRole(ctx context.Context, employeeID, role string) error {
	query := `UPDATE employees SET role = $2, updated_at = NOW() WHERE employee_id = $1`
	tag, err := r.db.Exec(ctx, query, employeeID, role)
	if err != nil {
		return fmt.Errorf("ошибка обновления роли: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrEmployeeNotFound
	}
	return nil
}

// Delete удаляет сотрудника. Ядро расчётов никого не удаляет —
// это чисто административная операция.
func (r *Repository) Delete(ctx context.Context, employeeID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE employee_id = $1`, employeeID)
	if err != nil {
		return fmt.Errorf("ошибка удаления сотрудника: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrEmployeeNotFound
	}
	return nil
}

// GetBirthdaysOn возвращает сотрудников, у которых день рождения
// приходится на указанный месяц/день (год игнорируется).
func (r *Repository) GetBirthdaysOn(ctx context.Context, month time.Month, day int) ([]*Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE birthday IS NOT NULL
		  AND EXTRACT(MONTH FROM birthday) = $1
		  AND EXTRACT(DAY FROM birthday) = $2
		ORDER BY name
	`
	return r.queryEmployees(ctx, query, int(month), day)
}

// GetUpcomingAnniversaries возвращает сотрудников, чья годовщина найма
// (месяц/день) попадает в ближайшие days дней начиная с from.
func (r *Repository) GetUpcomingAnniversaries(ctx context.Context, from time.Time, days int) ([]*Employee, error) {
	// Сравниваем по "MMDD": для окна, не пересекающего новый год, достаточно диапазона
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE hire_date IS NOT NULL
		  AND to_char(hire_date, 'MMDD') >= to_char($1::date, 'MMDD')
		  AND to_char(hire_date, 'MMDD') < to_char(($1::date + $2 * INTERVAL '1 day'), 'MMDD')
		ORDER BY to_char(hire_date, 'MMDD')
	`
	return r.queryEmployees(ctx, query, from, days)
}

func (r *Repository) queryEmployees(ctx context.Context, query string, args ...any) ([]*Employee, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса сотрудников: %w", err)
	}
	defer rows.Close()

	var out []*Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(
			&e.ID, &e.EmployeeID, &e.Name, &e.Email, &e.Department, &e.Role, &e.Points,
			&e.Birthday, &e.HireDate, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		out = append(out, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}

	return out, nil
}
