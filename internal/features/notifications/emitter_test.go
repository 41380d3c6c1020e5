package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationStore struct {
	created []*Notification
	err     error
}

func (f *fakeNotificationStore) Create(_ context.Context, n *Notification) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, n)
	return nil
}

type fakeNames struct {
	names map[string]string
}

func (f *fakeNames) DisplayName(_ context.Context, employeeID string) (string, error) {
	name, ok := f.names[employeeID]
	if !ok {
		return "Someone", errors.New("not found")
	}
	return name, nil
}

type recordingSink struct {
	name     string
	messages []string
	err      error
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Announce(_ context.Context, text string) error {
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, text)
	return nil
}

func TestKudoReceivedCreatesNotification(t *testing.T) {
	store := &fakeNotificationStore{}
	sink := &recordingSink{name: "test"}
	e := NewEmitter(store, &fakeNames{names: map[string]string{"bob": "Bob"}}, sink)

	e.KudoReceived(context.Background(), "bob", "Alice", "great demo!", "kudo-1")

	require.Len(t, store.created, 1)
	n := store.created[0]
	assert.Equal(t, "bob", n.EmployeeID)
	assert.Equal(t, TypeKudoReceived, n.Type)
	assert.Contains(t, n.Message, "Alice")
	assert.Contains(t, n.Message, "great demo!")
	assert.False(t, n.Read)
	require.NotNil(t, n.RelatedID)
	assert.Equal(t, "kudo-1", *n.RelatedID)

	// Объявление в чат содержит имена обеих сторон
	require.Len(t, sink.messages, 1)
	assert.Contains(t, sink.messages[0], "Bob")
	assert.Contains(t, sink.messages[0], "Alice")
}

func TestKudoReceivedSwallowsStoreError(t *testing.T) {
	store := &fakeNotificationStore{err: errors.New("db down")}
	sink := &recordingSink{name: "test"}
	e := NewEmitter(store, &fakeNames{names: map[string]string{"bob": "Bob"}}, sink)

	// Не должно ни паниковать, ни мешать объявлению
	e.KudoReceived(context.Background(), "bob", "Alice", "msg", "kudo-1")

	assert.Empty(t, store.created)
	assert.Len(t, sink.messages, 1)
}

func TestKudoReceivedSwallowsSinkError(t *testing.T) {
	store := &fakeNotificationStore{}
	broken := &recordingSink{name: "broken", err: errors.New("webhook 500")}
	healthy := &recordingSink{name: "healthy"}
	e := NewEmitter(store, &fakeNames{names: map[string]string{"bob": "Bob"}}, broken, healthy)

	e.KudoReceived(context.Background(), "bob", "Alice", "msg", "kudo-1")

	// Сбой одного синка не мешает ни записи, ни второму синку
	assert.Len(t, store.created, 1)
	assert.Empty(t, broken.messages)
	assert.Len(t, healthy.messages, 1)
}

func TestKudoReceivedUnknownReceiverName(t *testing.T) {
	store := &fakeNotificationStore{}
	sink := &recordingSink{name: "test"}
	e := NewEmitter(store, &fakeNames{names: map[string]string{}}, sink)

	e.KudoReceived(context.Background(), "ghost", "Alice", "msg", "kudo-1")

	require.Len(t, sink.messages, 1)
	assert.Contains(t, sink.messages[0], "Someone")
}

func TestAnnounceWithoutSinks(t *testing.T) {
	e := NewEmitter(&fakeNotificationStore{}, nil)

	// Пустой список синков — no-op, без паники
	e.Announce(context.Background(), "hello")
}
