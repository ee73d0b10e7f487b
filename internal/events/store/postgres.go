package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/thientu9562/identity-management/internal/events"
	"github.com/thientu9562/identity-management/pkg/platform/tx"
)

// PostgresStore is the transactional outbox: events are inserted in the same
// transaction as the state change they describe and relayed later.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, e *events.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}
	const query = `
		INSERT INTO events (id, name, partition_key, occurred_at, payload)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING seq
	`
	var seq int64
	if err := tx.Q(ctx, s.db).QueryRowContext(ctx, query,
		e.ID, string(e.Name), e.Key(), e.Timestamp, payload,
	).Scan(&seq); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	e.Seq = uint64(seq)
	return nil
}

func (s *PostgresStore) Since(ctx context.Context, afterSeq uint64, limit int) ([]events.Event, error) {
	if limit <= 0 {
		limit = 1000
	}
	return s.query(ctx, `
		SELECT seq, payload FROM events
		WHERE seq > $1
		ORDER BY seq
		LIMIT $2
	`, int64(afterSeq), limit)
}

func (s *PostgresStore) Unpublished(ctx context.Context, limit int) ([]events.Event, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.query(ctx, `
		SELECT seq, payload FROM events
		WHERE published_at IS NULL
		ORDER BY seq
		LIMIT $1
	`, limit)
}

func (s *PostgresStore) MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}
	_, err := tx.Q(ctx, s.db).ExecContext(ctx,
		`UPDATE events SET published_at = $1 WHERE id = ANY($2::uuid[]) AND published_at IS NULL`,
		at, pq.Array(strIDs),
	)
	if err != nil {
		return fmt.Errorf("mark events published: %w", err)
	}
	return nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]events.Event, error) {
	rows, err := tx.Q(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	out := []events.Event{}
	for rows.Next() {
		var (
			seq     int64
			payload []byte
		)
		if err := rows.Scan(&seq, &payload); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		var e events.Event
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("decode event %d: %w", seq, err)
		}
		e.Seq = uint64(seq)
		out = append(out, e)
	}
	return out, rows.Err()
}
