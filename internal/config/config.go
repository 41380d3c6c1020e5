// Package config загружает конфигурацию сервиса из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- HTTP ---
	HTTPHost string `envconfig:"HTTP_HOST" default:"0.0.0.0"`
	HTTPPort int    `envconfig:"HTTP_PORT" default:"8080"`
	// gin mode: debug | release | test
	HTTPMode string `envconfig:"HTTP_MODE" default:"release"`

	// --- Database ---
	// В Docker внутри контейнера "localhost" почти всегда неправильно.
	// Дефолт ставим "postgres" (имя сервиса в docker-compose), а для локалки переопределяй DB_HOST=localhost.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"sparkblaze"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"recognition"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`
	// Часовой пояс для cron-задач (поздравления, дайджесты).
	// Квотное окно kudos ВСЕГДА считается в UTC независимо от этой настройки.
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"UTC"`

	// --- Kudos ---
	// Сколько kudos сотрудник может отправить за календарный месяц (UTC)
	KudosMonthlyLimit int `envconfig:"KUDOS_MONTHLY_LIMIT" default:"3"`
	// Баллы отправителю за каждый отправленный kudo
	KudosSenderReward int `envconfig:"KUDOS_SENDER_REWARD" default:"1"`
	// Баллы получателю — намеренно больше, чем отправителю
	KudosReceiverReward int `envconfig:"KUDOS_RECEIVER_REWARD" default:"5"`
	// Сколько повторов расчёта при конфликте транзакций
	KudosSettleRetries int `envconfig:"KUDOS_SETTLE_RETRIES" default:"3"`

	// --- Notifications (чат-синки, все опциональны) ---
	// Входящий webhook Teams/Slack для объявлений
	ChatWebhookURL string `envconfig:"CHAT_WEBHOOK_URL" default:""`
	// Telegram-канал компании (альтернативный синк)
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN" default:""`
	TelegramChatID   int64  `envconfig:"TELEGRAM_CHAT_ID" default:"0"`

	// --- Admin ---
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH" required:"true"`

	// --- Rate Limiting ---
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"30"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	// --- Feature Flags ---
	FeatureRewardsEnabled bool `envconfig:"FEATURE_REWARDS_ENABLED" default:"true"`
	FeatureDigestsEnabled bool `envconfig:"FEATURE_DIGESTS_ENABLED" default:"true"`
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// HTTPAddr возвращает адрес для http.Server вида "host:port".
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	if c.KudosMonthlyLimit < 1 {
		return fmt.Errorf("KUDOS_MONTHLY_LIMIT должен быть >= 1")
	}
	if c.KudosSenderReward < 0 || c.KudosReceiverReward < 0 {
		return fmt.Errorf("награды за kudos не могут быть отрицательными")
	}
	if c.KudosSettleRetries < 1 {
		return fmt.Errorf("KUDOS_SETTLE_RETRIES должен быть >= 1")
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("некорректный HTTP_PORT: %d", c.HTTPPort)
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
	}
	if c.TelegramBotToken != "" && c.TelegramChatID == 0 {
		return fmt.Errorf("задан TELEGRAM_BOT_TOKEN, но TELEGRAM_CHAT_ID пуст")
	}
	return nil
}

// Load читает переменные окружения и заполняет структуру Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
