// Package kudos — repository.go выполняет операции с таблицами kudos и kudo_comments.
// Расчёт kudo выполняется одной транзакцией БД: проверка квоты, вставка записи
// и начисление баллов обеим сторонам либо происходят целиком, либо не происходят вовсе.
package kudos

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"sparkblaze.io/recognition/internal/common"
)

// Repository работает с таблицами kudos и kudo_comments.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий kudos.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateAndSettle атомарно проверяет квоту отправителя, создаёт kudo
// и начисляет баллы отправителю и получателю.
//
// Порядок внутри транзакции:
//  1. Блокируем строки отправителя и получателя (FOR UPDATE, в порядке
//     employee_id — детерминированный порядок исключает дедлок встречных kudos).
//     Блокировка отправителя сериализует его конкурентные отправки: проверка
//     квоты и вставка становятся одним атомарным шагом, гонки «оба увидели
//     count < limit» не существует.
//  2. Считаем kudos отправителя с начала календарного месяца (UTC).
//     Лимит исчерпан — откат; отклонённый kudo в базе не появляется вовсе.
//  3. Вставляем kudo и обновляем оба баланса.
//
// Отсутствующий получатель не срывает расчёт: kudo создаётся, баллы
// получателю не начисляются, в результате ставится флаг аномалии.
// Отсутствующий отправитель — отказ ErrUnknownSender ещё до вставки.
func (r *Repository) CreateAndSettle(ctx context.Context, k *Kudo, p SettlementParams) (*SettlementResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	// Шаг 1: блокировка участников
	rows, err := tx.Query(ctx, `
		SELECT employee_id, name FROM employees
		WHERE employee_id = ANY($1)
		ORDER BY employee_id
		FOR UPDATE
	`, []string{k.SenderID, k.ReceiverID})
	if err != nil {
		return nil, fmt.Errorf("ошибка блокировки участников: %w", err)
	}

	names := make(map[string]string, 2)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("ошибка сканирования участника: %w", err)
		}
		names[id] = name
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения участников: %w", err)
	}

	senderName, senderExists := names[k.SenderID]
	if !senderExists {
		return nil, common.ErrUnknownSender
	}
	if senderName == "" {
		senderName = "Someone"
	}
	_, receiverExists := names[k.ReceiverID]

	// Шаг 2: авторитетная проверка квоты под блокировкой отправителя
	monthStart := MonthStartUTC(k.CreatedAt)
	var used int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM kudos WHERE sender_id = $1 AND created_at >= $2`,
		k.SenderID, monthStart,
	).Scan(&used)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчёта квоты: %w", err)
	}
	if used >= p.MonthlyLimit {
		return nil, fmt.Errorf("%d of %d used this month: %w", used, p.MonthlyLimit, common.ErrQuotaExceeded)
	}

	// Шаг 3: вставка kudo
	err = tx.QueryRow(ctx, `
		INSERT INTO kudos (kudo_id, sender_id, receiver_id, message, badge, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, k.KudoID, k.SenderID, k.ReceiverID, k.Message, k.Badge, k.CreatedAt).Scan(&k.ID)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания kudo: %w", err)
	}

	// Начисляем отправителю
	_, err = tx.Exec(ctx, `
		UPDATE employees SET points = points + $2, updated_at = NOW()
		WHERE employee_id = $1
	`, k.SenderID, p.SenderReward)
	if err != nil {
		return nil, fmt.Errorf("ошибка начисления отправителю: %w", err)
	}

	// Начисляем получателю (если он существует)
	if receiverExists {
		_, err = tx.Exec(ctx, `
			UPDATE employees SET points = points + $2, updated_at = NOW()
			WHERE employee_id = $1
		`, k.ReceiverID, p.ReceiverReward)
		if err != nil {
			return nil, fmt.Errorf("ошибка начисления получателю: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка фиксации расчёта: %w", err)
	}

	return &SettlementResult{
		KudoID:           k.KudoID,
		SenderName:       senderName,
		ReceiverCredited: receiverExists,
		Used:             used + 1,
	}, nil
}

// CountSentSince возвращает, сколько kudos отправитель создал с момента since.
// Консультативная проверка квоты; авторитетный подсчёт живёт в CreateAndSettle.
func (r *Repository) CountSentSince(ctx context.Context, senderID string, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM kudos WHERE sender_id = $1 AND created_at >= $2`,
		senderID, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта kudos: %w", err)
	}
	return count, nil
}

// Feed возвращает последние kudos с именами участников.
// Имена удалённых сотрудников заменяются на "Someone".
func (r *Repository) Feed(ctx context.Context, limit int) ([]*FeedItem, error) {
	query := `
		SELECT k.id, k.kudo_id, k.sender_id, k.receiver_id, k.message, k.badge,
		       k.likes, k.created_at,
		       COALESCE(s.name, 'Someone'), COALESCE(rc.name, 'Someone')
		FROM kudos k
		LEFT JOIN employees s  ON s.employee_id  = k.sender_id
		LEFT JOIN employees rc ON rc.employee_id = k.receiver_id
		ORDER BY k.created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса ленты: %w", err)
	}
	defer rows.Close()

	var out []*FeedItem
	for rows.Next() {
		var it FeedItem
		if err := rows.Scan(
			&it.ID, &it.KudoID, &it.SenderID, &it.ReceiverID, &it.Message, &it.Badge,
			&it.Likes, &it.CreatedAt, &it.SenderName, &it.ReceiverName,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования ленты: %w", err)
		}
		out = append(out, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения ленты: %w", err)
	}
	return out, nil
}

// AddLike увеличивает счётчик лайков. Лайки не входят в инварианты ядра,
// поэтому обычного атомарного инкремента достаточно.
func (r *Repository) AddLike(ctx context.Context, kudoID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE kudos SET likes = likes + 1 WHERE kudo_id = $1`, kudoID)
	if err != nil {
		return fmt.Errorf("ошибка лайка: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrKudoNotFound
	}
	return nil
}

// AddComment добавляет комментарий к kudo (append-only).
func (r *Repository) AddComment(ctx context.Context, c *Comment) error {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM kudos WHERE kudo_id = $1)`, c.KudoID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("ошибка проверки kudo: %w", err)
	}
	if !exists {
		return common.ErrKudoNotFound
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO kudo_comments (kudo_id, commenter_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, c.KudoID, c.CommenterID, c.Body).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания комментария: %w", err)
	}
	return nil
}

// ListComments возвращает комментарии kudo в порядке добавления.
func (r *Repository) ListComments(ctx context.Context, kudoID string) ([]*Comment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, kudo_id, commenter_id, body, created_at
		FROM kudo_comments
		WHERE kudo_id = $1
		ORDER BY created_at, id
	`, kudoID)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса комментариев: %w", err)
	}
	defer rows.Close()

	var out []*Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.KudoID, &c.CommenterID, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования комментария: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения комментариев: %w", err)
	}
	return out, nil
}

// SummarySince собирает агрегаты для дайджеста: всего kudos за период,
// топ получателей и топ отправителей.
func (r *Repository) SummarySince(ctx context.Context, since time.Time) (*Summary, error) {
	s := &Summary{}

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM kudos WHERE created_at >= $1`, since,
	).Scan(&s.Total)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчёта kudos за период: %w", err)
	}

	top := func(idColumn string) ([]NameCount, error) {
		query := fmt.Sprintf(`
			SELECT COALESCE(e.name, 'Someone'), COUNT(*) AS cnt
			FROM kudos k
			LEFT JOIN employees e ON e.employee_id = k.%s
			WHERE k.created_at >= $1
			GROUP BY e.name
			ORDER BY cnt DESC
			LIMIT 3
		`, idColumn)
		rows, err := r.db.Query(ctx, query, since)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var out []NameCount
		for rows.Next() {
			var nc NameCount
			if err := rows.Scan(&nc.Name, &nc.Count); err != nil {
				return nil, err
			}
			out = append(out, nc)
		}
		return out, rows.Err()
	}

	if s.TopReceivers, err = top("receiver_id"); err != nil {
		return nil, fmt.Errorf("ошибка топа получателей: %w", err)
	}
	if s.TopGivers, err = top("sender_id"); err != nil {
		return nil, fmt.Errorf("ошибка топа отправителей: %w", err)
	}

	return s, nil
}
