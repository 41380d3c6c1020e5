package kudos

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparkblaze.io/recognition/internal/common"
	"sparkblaze.io/recognition/internal/config"
)

// fakeStore — in-memory хранилище с той же семантикой расчёта, что у БД:
// проверка квоты и вставка выполняются под одной блокировкой.
type fakeStore struct {
	mu        sync.Mutex
	kudos     []*Kudo
	employees map[string]string // employee_id → имя
	points    map[string]int

	// Очередь ошибок: каждая следующая попытка CreateAndSettle
	// снимает одну ошибку, пока очередь не опустеет.
	pendingErrs []error
}

func newFakeStore(employees map[string]string) *fakeStore {
	return &fakeStore{
		employees: employees,
		points:    make(map[string]int),
	}
}

func (f *fakeStore) CreateAndSettle(_ context.Context, k *Kudo, p SettlementParams) (*SettlementResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.pendingErrs) > 0 {
		err := f.pendingErrs[0]
		f.pendingErrs = f.pendingErrs[1:]
		return nil, err
	}

	senderName, senderExists := f.employees[k.SenderID]
	if !senderExists {
		return nil, common.ErrUnknownSender
	}
	_, receiverExists := f.employees[k.ReceiverID]

	used := f.countLocked(k.SenderID, MonthStartUTC(k.CreatedAt))
	if used >= p.MonthlyLimit {
		return nil, fmt.Errorf("%d of %d used this month: %w", used, p.MonthlyLimit, common.ErrQuotaExceeded)
	}

	f.kudos = append(f.kudos, k)
	f.points[k.SenderID] += p.SenderReward
	if receiverExists {
		f.points[k.ReceiverID] += p.ReceiverReward
	}

	return &SettlementResult{
		KudoID:           k.KudoID,
		SenderName:       senderName,
		ReceiverCredited: receiverExists,
		Used:             used + 1,
	}, nil
}

func (f *fakeStore) CountSentSince(_ context.Context, senderID string, since time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.countLocked(senderID, since), nil
}

func (f *fakeStore) countLocked(senderID string, since time.Time) int {
	n := 0
	for _, k := range f.kudos {
		if k.SenderID == senderID && !k.CreatedAt.Before(since) {
			n++
		}
	}
	return n
}

func (f *fakeStore) Feed(_ context.Context, limit int) ([]*FeedItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*FeedItem
	for i := len(f.kudos) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, &FeedItem{Kudo: *f.kudos[i]})
	}
	return out, nil
}

func (f *fakeStore) AddLike(_ context.Context, kudoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range f.kudos {
		if k.KudoID == kudoID {
			k.Likes++
			return nil
		}
	}
	return common.ErrKudoNotFound
}

func (f *fakeStore) AddComment(_ context.Context, _ *Comment) error { return nil }

func (f *fakeStore) ListComments(_ context.Context, _ string) ([]*Comment, error) {
	return nil, nil
}

func (f *fakeStore) SummarySince(_ context.Context, since time.Time) (*Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &Summary{Total: len(f.kudos)}, nil
}

// fakeDirectory отвечает на Exists по карте сотрудников хранилища.
type fakeDirectory struct {
	store *fakeStore
}

func (d *fakeDirectory) Exists(_ context.Context, employeeID string) (bool, error) {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()
	_, ok := d.store.employees[employeeID]
	return ok, nil
}

// fakeEmitter записывает уведомления для проверки в тестах.
type fakeEmitter struct {
	mu    sync.Mutex
	calls []emitterCall
}

type emitterCall struct {
	receiverID, senderName, message, kudoID string
}

func (e *fakeEmitter) KudoReceived(_ context.Context, receiverID, senderName, message, kudoID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, emitterCall{receiverID, senderName, message, kudoID})
}

func (e *fakeEmitter) len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.calls)
}

func testConfig() *config.Config {
	return &config.Config{
		KudosMonthlyLimit:   3,
		KudosSenderReward:   1,
		KudosReceiverReward: 5,
		KudosSettleRetries:  3,
	}
}

func newTestService(store *fakeStore, emitter *fakeEmitter) *Service {
	s := NewService(store, &fakeDirectory{store: store}, emitter, testConfig())
	s.now = func() time.Time {
		return time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func TestSendKudoSettlesAndNotifies(t *testing.T) {
	store := newFakeStore(map[string]string{"alice": "Alice", "bob": "Bob"})
	emitter := &fakeEmitter{}
	svc := newTestService(store, emitter)

	result, err := svc.SendKudo(context.Background(), "alice", "bob", "  great demo!  ", "Team Player")
	require.NoError(t, err)

	assert.NotEmpty(t, result.KudoID)
	assert.Equal(t, "Alice", result.SenderName)
	assert.True(t, result.ReceiverCredited)
	assert.Equal(t, 1, result.Used)

	// Баллы: отправителю +1, получателю +5
	assert.Equal(t, 1, store.points["alice"])
	assert.Equal(t, 5, store.points["bob"])

	// Сообщение сохранено без краевых пробелов
	require.Len(t, store.kudos, 1)
	assert.Equal(t, "great demo!", store.kudos[0].Message)
	require.NotNil(t, store.kudos[0].Badge)
	assert.Equal(t, "Team Player", *store.kudos[0].Badge)

	// Уведомление получателю ушло ровно одно
	require.Equal(t, 1, emitter.len())
	assert.Equal(t, "bob", emitter.calls[0].receiverID)
	assert.Equal(t, "Alice", emitter.calls[0].senderName)
	assert.Equal(t, result.KudoID, emitter.calls[0].kudoID)
}

func TestSendKudoQuotaDenied(t *testing.T) {
	store := newFakeStore(map[string]string{"alice": "Alice", "bob": "Bob"})
	emitter := &fakeEmitter{}
	svc := newTestService(store, emitter)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.SendKudo(ctx, "alice", "bob", fmt.Sprintf("kudo %d", i), "")
		require.NoError(t, err)
	}

	pointsBefore := store.points["alice"]
	receiverBefore := store.points["bob"]

	_, err := svc.SendKudo(ctx, "alice", "bob", "one too many", "")
	require.Error(t, err)
	assert.True(t, IsQuotaError(err))

	// Отказ не оставляет следов: ни записи, ни баллов, ни уведомления
	assert.Len(t, store.kudos, 3)
	assert.Equal(t, pointsBefore, store.points["alice"])
	assert.Equal(t, receiverBefore, store.points["bob"])
	assert.Equal(t, 3, emitter.len())
}

func TestSendKudoQuotaResetsNextMonth(t *testing.T) {
	store := newFakeStore(map[string]string{"alice": "Alice", "bob": "Bob"})
	svc := newTestService(store, &fakeEmitter{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.SendKudo(ctx, "alice", "bob", "august kudo", "")
		require.NoError(t, err)
	}
	_, err := svc.SendKudo(ctx, "alice", "bob", "denied", "")
	require.True(t, IsQuotaError(err))

	// Наступил сентябрь — квота обнулилась
	svc.now = func() time.Time {
		return time.Date(2026, 9, 1, 0, 0, 1, 0, time.UTC)
	}
	result, err := svc.SendKudo(ctx, "alice", "bob", "september kudo", "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Used)
}

func TestSendKudoValidation(t *testing.T) {
	store := newFakeStore(map[string]string{"alice": "Alice", "bob": "Bob"})
	svc := newTestService(store, &fakeEmitter{})
	ctx := context.Background()

	_, err := svc.SendKudo(ctx, "alice", "alice", "self praise", "")
	assert.ErrorIs(t, err, common.ErrSelfKudo)

	_, err = svc.SendKudo(ctx, "alice", "bob", "   ", "")
	assert.ErrorIs(t, err, common.ErrEmptyMessage)

	_, err = svc.SendKudo(ctx, "alice", "bob", "nice", "Rockstar")
	assert.ErrorIs(t, err, common.ErrUnknownBadge)

	// Ни одна невалидная отправка не дошла до хранилища
	assert.Empty(t, store.kudos)
}

func TestSendKudoUnknownSender(t *testing.T) {
	store := newFakeStore(map[string]string{"bob": "Bob"})
	svc := newTestService(store, &fakeEmitter{})

	_, err := svc.SendKudo(context.Background(), "ghost", "bob", "hello", "")
	assert.ErrorIs(t, err, common.ErrUnknownSender)
	assert.Empty(t, store.kudos)
}

func TestSendKudoUnknownReceiver(t *testing.T) {
	store := newFakeStore(map[string]string{"alice": "Alice"})
	emitter := &fakeEmitter{}
	svc := newTestService(store, emitter)

	result, err := svc.SendKudo(context.Background(), "alice", "ghost", "to the void", "")
	require.NoError(t, err)

	// Kudo создан и квота израсходована, но начисления получателю
	// и уведомления нет
	assert.False(t, result.ReceiverCredited)
	assert.Len(t, store.kudos, 1)
	assert.Equal(t, 1, store.points["alice"])
	assert.Zero(t, store.points["ghost"])
	assert.Zero(t, emitter.len())
}

func TestSendKudoConcurrentSameSender(t *testing.T) {
	store := newFakeStore(map[string]string{"alice": "Alice", "bob": "Bob"})
	svc := newTestService(store, &fakeEmitter{})

	const workers = 10
	results := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := svc.SendKudo(context.Background(), "alice", "bob", fmt.Sprintf("race %d", n), "")
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var ok, denied int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case IsQuotaError(err):
			denied++
		default:
			t.Fatalf("неожиданная ошибка: %v", err)
		}
	}

	// Ровно лимит отправок прошло, остальные отклонены
	assert.Equal(t, 3, ok)
	assert.Equal(t, 7, denied)
	assert.Len(t, store.kudos, 3)
	assert.Equal(t, 3, store.points["alice"])
	assert.Equal(t, 15, store.points["bob"])
}

func serializationErr() error {
	return &pgconn.PgError{Code: "40001", Message: "could not serialize access"}
}

func TestSendKudoRetriesOnConflict(t *testing.T) {
	store := newFakeStore(map[string]string{"alice": "Alice", "bob": "Bob"})
	store.pendingErrs = []error{serializationErr(), serializationErr()}
	svc := newTestService(store, &fakeEmitter{})

	result, err := svc.SendKudo(context.Background(), "alice", "bob", "third time lucky", "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Used)
	assert.Len(t, store.kudos, 1)
}

func TestSendKudoConflictExhausted(t *testing.T) {
	store := newFakeStore(map[string]string{"alice": "Alice", "bob": "Bob"})
	store.pendingErrs = []error{serializationErr(), serializationErr(), serializationErr()}
	svc := newTestService(store, &fakeEmitter{})

	_, err := svc.SendKudo(context.Background(), "alice", "bob", "never lands", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSettlementConflict)
	assert.Empty(t, store.kudos)
}

func TestSendKudoNonConflictErrorNotRetried(t *testing.T) {
	store := newFakeStore(map[string]string{"alice": "Alice", "bob": "Bob"})
	boom := errors.New("connection reset")
	store.pendingErrs = []error{boom}
	svc := newTestService(store, &fakeEmitter{})

	_, err := svc.SendKudo(context.Background(), "alice", "bob", "unlucky", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, common.ErrSettlementConflict)
	// Очередь ошибок пуста: была ровно одна попытка
	assert.Empty(t, store.pendingErrs)
}

func TestCheckQuota(t *testing.T) {
	store := newFakeStore(map[string]string{"alice": "Alice", "bob": "Bob"})
	svc := newTestService(store, &fakeEmitter{})
	ctx := context.Background()

	at := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	status, err := svc.CheckQuota(ctx, "alice", at)
	require.NoError(t, err)
	assert.Equal(t, 0, status.Used)
	assert.Equal(t, 3, status.Remaining())

	for i := 0; i < 2; i++ {
		_, err := svc.SendKudo(ctx, "alice", "bob", "kudo", "")
		require.NoError(t, err)
	}

	status, err = svc.CheckQuota(ctx, "alice", at)
	require.NoError(t, err)
	assert.Equal(t, 2, status.Used)
	assert.Equal(t, 1, status.Remaining())
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), status.ResetsAt)

	_, err = svc.CheckQuota(ctx, "ghost", at)
	assert.ErrorIs(t, err, common.ErrUnknownSender)
}

func TestAddCommentValidation(t *testing.T) {
	store := newFakeStore(map[string]string{"alice": "Alice"})
	svc := newTestService(store, &fakeEmitter{})

	_, err := svc.AddComment(context.Background(), "some-kudo", "alice", "  ")
	assert.ErrorIs(t, err, common.ErrEmptyMessage)
}
