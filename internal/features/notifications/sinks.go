// Package notifications — sinks.go содержит внешние чат-синки для объявлений.
// Синки используются эмиттером kudos и поздравительными cron-задачами.
package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mymmrac/telego"
)

// Sink — внешний канал объявлений (Teams/Slack webhook, Telegram-канал).
type Sink interface {
	Name() string
	Announce(ctx context.Context, text string) error
}

// WebhookSink постит объявления во входящий webhook Teams/Slack
// в формате MessageCard.
type WebhookSink struct {
	url    string
	client *resty.Client
}

// NewWebhookSink создаёт webhook-синк.
func NewWebhookSink(url string) *WebhookSink {
	return &WebhookSink{
		url:    url,
		client: resty.New().SetTimeout(10 * time.Second),
	}
}

func (s *WebhookSink) Name() string { return "webhook" }

// Announce отправляет MessageCard с текстом объявления.
func (s *WebhookSink) Announce(ctx context.Context, text string) error {
	payload := map[string]any{
		"@type":      "MessageCard",
		"@context":   "http://schema.org/extensions",
		"summary":    "SparkBlaze",
		"themeColor": "0076D7",
		"text":       text,
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(s.url)
	if err != nil {
		return fmt.Errorf("ошибка запроса к webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook вернул %s", resp.Status())
	}
	return nil
}

// TelegramSink постит объявления в Telegram-канал компании.
type TelegramSink struct {
	bot    *telego.Bot
	chatID int64
}

// NewTelegramSink создаёт Telegram-синк.
func NewTelegramSink(token string, chatID int64) (*TelegramSink, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	return &TelegramSink{bot: bot, chatID: chatID}, nil
}

func (s *TelegramSink) Name() string { return "telegram" }

// Announce отправляет сообщение в канал.
func (s *TelegramSink) Announce(ctx context.Context, text string) error {
	_, err := s.bot.SendMessage(ctx, &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: s.chatID},
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("ошибка отправки в Telegram: %w", err)
	}
	return nil
}
