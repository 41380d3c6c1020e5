// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы, обработчики,
// чат-синки и собирает всё в один объект App.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"sparkblaze.io/recognition/internal/config"
	"sparkblaze.io/recognition/internal/db/postgres"
	"sparkblaze.io/recognition/internal/features/admin"
	"sparkblaze.io/recognition/internal/features/employees"
	"sparkblaze.io/recognition/internal/features/kudos"
	"sparkblaze.io/recognition/internal/features/notifications"
	"sparkblaze.io/recognition/internal/features/rewards"
	"sparkblaze.io/recognition/internal/jobs"
	"sparkblaze.io/recognition/internal/server"
)

// App содержит все компоненты приложения.
type App struct {
	Server    *server.Server
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	// Запускаем миграции
	if err := runMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Репозитории ===
	employeeRepo := employees.NewRepository(pool)
	kudoRepo := kudos.NewRepository(pool)
	notificationRepo := notifications.NewRepository(pool)
	rewardRepo := rewards.NewRepository(pool)
	adminRepo := admin.NewRepository(pool)

	// === 3. Сервисы ===
	employeeService := employees.NewService(employeeRepo)

	// Чат-синки опциональны: без настроек объявления просто не уходят наружу
	var sinks []notifications.Sink
	if cfg.ChatWebhookURL != "" {
		sinks = append(sinks, notifications.NewWebhookSink(cfg.ChatWebhookURL))
		log.Info("Webhook-синк подключён")
	}
	if cfg.TelegramBotToken != "" {
		tg, err := notifications.NewTelegramSink(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("ошибка Telegram-синка: %w", err)
		}
		sinks = append(sinks, tg)
		log.Info("Telegram-синк подключён")
	}
	emitter := notifications.NewEmitter(notificationRepo, employeeService, sinks...)

	kudoService := kudos.NewService(kudoRepo, employeeService, emitter, cfg)
	rewardService := rewards.NewService(rewardRepo)
	adminService := admin.NewService(adminRepo, employeeService, cfg)

	// === 4. Обработчики и сервер ===
	srv := server.New(cfg, server.Handlers{
		Employees:     employees.NewHandler(employeeService),
		Kudos:         kudos.NewHandler(kudoService),
		Notifications: notifications.NewHandler(notificationRepo),
		Rewards:       rewards.NewHandler(rewardService),
		Admin:         admin.NewHandler(adminService),
	})

	// === 5. Планировщик задач ===
	var scheduler *jobs.Scheduler
	if cfg.FeatureDigestsEnabled {
		scheduler = jobs.NewScheduler(cfg, employeeService, kudoService, emitter)
	}

	return &App{
		Server:    srv,
		Scheduler: scheduler,
		DB:        pool,
	}, nil
}

// runMigrations выполняет все SQL-миграции.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.EnsureMigrationTable(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Employees},
		{2, migration002Kudos},
		{3, migration003Notifications},
		{4, migration004Rewards},
		{5, migration005Admin},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}

	return nil
}

// SQL-миграции встроены в код для упрощения деплоя.

var migration001Employees = `
CREATE TABLE IF NOT EXISTS employees (
    id BIGSERIAL PRIMARY KEY,
    employee_id VARCHAR(36) UNIQUE NOT NULL,
    name VARCHAR(255) NOT NULL,
    email VARCHAR(255) UNIQUE NOT NULL,
    department VARCHAR(255),
    role VARCHAR(16) NOT NULL DEFAULT 'user',
    points INTEGER NOT NULL DEFAULT 0,
    birthday DATE,
    hire_date DATE,
    created_at TIMESTAMPTZ DEFAULT NOW(),
    updated_at TIMESTAMPTZ DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_employees_employee_id ON employees(employee_id);
CREATE INDEX IF NOT EXISTS idx_employees_email ON employees(email);
`

var migration002Kudos = `
CREATE TABLE IF NOT EXISTS kudos (
    id BIGSERIAL PRIMARY KEY,
    kudo_id VARCHAR(36) UNIQUE NOT NULL,
    sender_id VARCHAR(36) NOT NULL,
    receiver_id VARCHAR(36) NOT NULL,
    message TEXT NOT NULL,
    badge VARCHAR(64),
    likes INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_kudos_sender_created ON kudos(sender_id, created_at);
CREATE INDEX IF NOT EXISTS idx_kudos_receiver ON kudos(receiver_id);
CREATE INDEX IF NOT EXISTS idx_kudos_created_at ON kudos(created_at DESC);
CREATE TABLE IF NOT EXISTS kudo_comments (
    id BIGSERIAL PRIMARY KEY,
    kudo_id VARCHAR(36) NOT NULL REFERENCES kudos(kudo_id),
    commenter_id VARCHAR(36) NOT NULL,
    body TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_kudo_comments_kudo_id ON kudo_comments(kudo_id);
`

var migration003Notifications = `
CREATE TABLE IF NOT EXISTS notifications (
    id BIGSERIAL PRIMARY KEY,
    employee_id VARCHAR(36) NOT NULL,
    type VARCHAR(50) NOT NULL,
    message TEXT NOT NULL,
    read BOOLEAN NOT NULL DEFAULT FALSE,
    related_id VARCHAR(36),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_notifications_employee ON notifications(employee_id, created_at DESC);
`

var migration004Rewards = `
CREATE TABLE IF NOT EXISTS rewards (
    id BIGSERIAL PRIMARY KEY,
    reward_id VARCHAR(36) UNIQUE NOT NULL,
    name VARCHAR(255) NOT NULL,
    description TEXT,
    cost INTEGER NOT NULL,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS redemptions (
    id BIGSERIAL PRIMARY KEY,
    employee_id VARCHAR(36) NOT NULL,
    reward_id VARCHAR(36) NOT NULL REFERENCES rewards(reward_id),
    cost INTEGER NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_redemptions_employee ON redemptions(employee_id, created_at DESC);
`

var migration005Admin = `
CREATE TABLE IF NOT EXISTS admin_sessions (
    id BIGSERIAL PRIMARY KEY,
    employee_id VARCHAR(36) NOT NULL,
    session_token VARCHAR(255) UNIQUE,
    authenticated_at TIMESTAMPTZ DEFAULT NOW(),
    expires_at TIMESTAMPTZ,
    last_activity TIMESTAMPTZ DEFAULT NOW(),
    is_active BOOLEAN DEFAULT TRUE
);
CREATE INDEX IF NOT EXISTS idx_admin_sessions_token ON admin_sessions(session_token);
CREATE TABLE IF NOT EXISTS admin_login_attempts (
    id BIGSERIAL PRIMARY KEY,
    employee_id VARCHAR(36),
    attempt_time TIMESTAMPTZ DEFAULT NOW(),
    success BOOLEAN DEFAULT FALSE
);
`
