// Package admin реализует вход в админ-панель и сессии администраторов.
// models.go описывает структуры данных.
package admin

import "time"

// Session — активная сессия администратора.
type Session struct {
	ID              int64     `db:"id"`
	EmployeeID      string    `db:"employee_id"`
	SessionToken    string    `db:"session_token"`
	AuthenticatedAt time.Time `db:"authenticated_at"`
	ExpiresAt       time.Time `db:"expires_at"`
	LastActivity    time.Time `db:"last_activity"`
	IsActive        bool      `db:"is_active"`
}

// LoginAttempt — попытка входа (для защиты от перебора).
type LoginAttempt struct {
	ID          int64     `db:"id"`
	EmployeeID  string    `db:"employee_id"`
	Success     bool      `db:"success"`
	AttemptTime time.Time `db:"attempt_time"`
}
