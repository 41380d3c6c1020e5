// Package notifications — emitter.go рассылает уведомления о событиях признания.
//
// Эмиттер — односторонняя граница: он вызывается строго ПОСЛЕ фиксации
// расчёта, ничего не возвращает и глотает все свои ошибки (с логированием).
// Конструктивно невозможно, чтобы сбой уведомления откатил или повторил расчёт.
package notifications

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Store — контракт хранилища уведомлений. Реализуется *Repository.
type Store interface {
	Create(ctx context.Context, n *Notification) error
}

// NameResolver возвращает отображаемое имя сотрудника.
type NameResolver interface {
	DisplayName(ctx context.Context, employeeID string) (string, error)
}

// Emitter создаёт уведомления и дублирует объявления в чат-синки.
type Emitter struct {
	store Store
	names NameResolver
	sinks []Sink
}

// NewEmitter создаёт эмиттер. Синки опциональны.
func NewEmitter(store Store, names NameResolver, sinks ...Sink) *Emitter {
	return &Emitter{store: store, names: names, sinks: sinks}
}

// KudoReceived уведомляет получателя о новом kudo: запись в БД плюс
// объявление в чат-синки. Каждый шаг независим и best-effort.
func (e *Emitter) KudoReceived(ctx context.Context, receiverID, senderName, message, kudoID string) {
	text := fmt.Sprintf("You received a kudo from %s: %q", senderName, message)

	n := &Notification{
		EmployeeID: receiverID,
		Type:       TypeKudoReceived,
		Message:    text,
		RelatedID:  &kudoID,
	}
	if err := e.store.Create(ctx, n); err != nil {
		log.WithError(err).WithField("kudo_id", kudoID).Error("Не удалось сохранить уведомление")
	} else {
		log.WithFields(log.Fields{
			"kudo_id":     kudoID,
			"receiver_id": receiverID,
		}).Debug("Уведомление создано")
	}

	receiverName := "Someone"
	if e.names != nil {
		if name, err := e.names.DisplayName(ctx, receiverID); err == nil {
			receiverName = name
		}
	}
	e.Announce(ctx, fmt.Sprintf("🎉 %s received a kudo from %s: %q", receiverName, senderName, message))
}

// Announce отправляет текст во все настроенные чат-синки.
// Сбой одного синка не мешает остальным и никуда не распространяется.
func (e *Emitter) Announce(ctx context.Context, text string) {
	for _, sink := range e.sinks {
		if err := sink.Announce(ctx, text); err != nil {
			log.WithError(err).WithField("sink", sink.Name()).Warn("Чат-синк недоступен")
		}
	}
}
