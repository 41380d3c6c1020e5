// Package kudos — service.go содержит оркестрацию одного события признания:
// валидация → атомарный расчёт (с повтором при конфликте) → уведомление.
// Уведомление вызывается строго после фиксации расчёта и не возвращает ошибок,
// поэтому его сбой конструктивно не может откатить расчёт.
package kudos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"sparkblaze.io/recognition/internal/common"
	"sparkblaze.io/recognition/internal/config"
	"sparkblaze.io/recognition/internal/db/postgres"
)

// Store — контракт хранилища kudos. Реализуется *Repository;
// в тестах подменяется fake-хранилищем.
type Store interface {
	CreateAndSettle(ctx context.Context, k *Kudo, p SettlementParams) (*SettlementResult, error)
	CountSentSince(ctx context.Context, senderID string, since time.Time) (int, error)
	Feed(ctx context.Context, limit int) ([]*FeedItem, error)
	AddLike(ctx context.Context, kudoID string) error
	AddComment(ctx context.Context, c *Comment) error
	ListComments(ctx context.Context, kudoID string) ([]*Comment, error)
	SummarySince(ctx context.Context, since time.Time) (*Summary, error)
}

// Directory — проверка существования сотрудника (каталог сотрудников).
type Directory interface {
	Exists(ctx context.Context, employeeID string) (bool, error)
}

// Emitter — одностороннее уведомление о полученном kudo.
// Ничего не возвращает: реализация обязана логировать и глотать свои ошибки.
type Emitter interface {
	KudoReceived(ctx context.Context, receiverID, senderName, message, kudoID string)
}

// Service управляет протоколом признания.
type Service struct {
	store     Store
	directory Directory
	emitter   Emitter
	cfg       *config.Config

	// подменяется в тестах для детерминированного времени
	now func() time.Time
}

// NewService создаёт сервис kudos.
func NewService(store Store, directory Directory, emitter Emitter, cfg *config.Config) *Service {
	return &Service{
		store:     store,
		directory: directory,
		emitter:   emitter,
		cfg:       cfg,
		now:       time.Now,
	}
}

// SendKudo проводит одно событие признания от начала до конца.
//
// Видимые вызывающему отказы: ErrSelfKudo, ErrEmptyMessage, ErrUnknownBadge,
// ErrUnknownSender, ErrQuotaExceeded. Исчерпание повторов при конфликте
// транзакций — ErrSettlementConflict (kudo НЕ отправлен, можно повторить).
func (s *Service) SendKudo(ctx context.Context, senderID, receiverID, message, badge string) (*SettlementResult, error) {
	message = strings.TrimSpace(message)

	if senderID == receiverID {
		return nil, common.ErrSelfKudo
	}
	if message == "" {
		return nil, common.ErrEmptyMessage
	}
	if !ValidBadge(badge) {
		return nil, fmt.Errorf("%q: %w", badge, common.ErrUnknownBadge)
	}

	k := &Kudo{
		KudoID:     uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    message,
		CreatedAt:  s.now().UTC(),
	}
	if badge != "" {
		k.Badge = &badge
	}

	params := SettlementParams{
		MonthlyLimit:   s.cfg.KudosMonthlyLimit,
		SenderReward:   s.cfg.KudosSenderReward,
		ReceiverReward: s.cfg.KudosReceiverReward,
	}

	result, err := s.settleWithRetry(ctx, k, params)
	if err != nil {
		return nil, err
	}

	if !result.ReceiverCredited {
		// Получатель не найден: расчёт прошёл без его начисления, уведомлять некого
		log.WithFields(log.Fields{
			"kudo_id":     result.KudoID,
			"receiver_id": receiverID,
		}).Warn("Получатель kudo не найден, баллы не начислены")
	} else if s.emitter != nil {
		// Одностороннее уведомление: исход не влияет на результат расчёта
		s.emitter.KudoReceived(ctx, receiverID, result.SenderName, message, result.KudoID)
	}

	log.WithFields(log.Fields{
		"kudo_id":    result.KudoID,
		"sender_id":  senderID,
		"quota_used": result.Used,
	}).Info("Kudo рассчитан")

	return result, nil
}

// settleWithRetry повторяет расчёт при конфликте транзакций (deadlock,
// serialization failure) с нарастающей паузой. Любая другая ошибка
// возвращается сразу.
func (s *Service) settleWithRetry(ctx context.Context, k *Kudo, p SettlementParams) (*SettlementResult, error) {
	var lastErr error
	for attempt := 1; attempt <= s.cfg.KudosSettleRetries; attempt++ {
		result, err := s.store.CreateAndSettle(ctx, k, p)
		if err == nil {
			return result, nil
		}
		if !postgres.IsSerializationFailure(err) {
			return nil, err
		}

		lastErr = err
		log.WithError(err).WithFields(log.Fields{
			"kudo_id": k.KudoID,
			"attempt": attempt,
		}).Warn("Конфликт транзакции расчёта, повторяем")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * 50 * time.Millisecond):
		}
	}
	return nil, fmt.Errorf("%w: %w", common.ErrSettlementConflict, lastErr)
}

// CheckQuota — консультативная проверка квоты отправителя на момент at.
// Только чтение; авторитетная проверка выполняется внутри расчёта.
// Неизвестный отправитель квоты не имеет — ErrUnknownSender.
func (s *Service) CheckQuota(ctx context.Context, senderID string, at time.Time) (*QuotaStatus, error) {
	exists, err := s.directory.Exists(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, common.ErrUnknownSender
	}

	used, err := s.store.CountSentSince(ctx, senderID, MonthStartUTC(at))
	if err != nil {
		return nil, err
	}

	return &QuotaStatus{
		Used:     used,
		Limit:    s.cfg.KudosMonthlyLimit,
		ResetsAt: NextMonthStartUTC(at),
	}, nil
}

// Feed возвращает последние kudos для ленты.
func (s *Service) Feed(ctx context.Context, limit int) ([]*FeedItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.store.Feed(ctx, limit)
}

// Like увеличивает счётчик лайков kudo.
func (s *Service) Like(ctx context.Context, kudoID string) error {
	return s.store.AddLike(ctx, kudoID)
}

// AddComment добавляет комментарий к kudo.
func (s *Service) AddComment(ctx context.Context, kudoID, commenterID, body string) (*Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, common.ErrEmptyMessage
	}
	c := &Comment{
		KudoID:      kudoID,
		CommenterID: commenterID,
		Body:        body,
	}
	if err := s.store.AddComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Comments возвращает комментарии kudo.
func (s *Service) Comments(ctx context.Context, kudoID string) ([]*Comment, error) {
	return s.store.ListComments(ctx, kudoID)
}

// WeeklySummary собирает агрегаты за последние 7 дней для дайджеста.
func (s *Service) WeeklySummary(ctx context.Context) (*Summary, error) {
	return s.store.SummarySince(ctx, s.now().UTC().AddDate(0, 0, -7))
}

// IsQuotaError сообщает, является ли err отказом по квоте.
// Удобство для обработчиков и тестов.
func IsQuotaError(err error) bool {
	return errors.Is(err, common.ErrQuotaExceeded)
}
