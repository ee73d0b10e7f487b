package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/thientu9562/identity-management/internal/proof/models"
	"github.com/thientu9562/identity-management/pkg/domain"
	"github.com/thientu9562/identity-management/pkg/platform/sentinel"
	"github.com/thientu9562/identity-management/pkg/platform/tx"
)

// PostgresStore keeps the ledger in PostgreSQL. The ledger_state singleton
// row is locked FOR UPDATE by every mutation, which serializes slot
// transitions across instances; the partial unique index on pending rows
// backs that up at the schema level.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectRequest = `
	SELECT request_id::text, requester, kind, status, result, requested_at, resolved_at
	FROM proof_requests`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*models.ProofRequest, error) {
	var (
		idText     string
		requester  []byte
		kind       string
		status     string
		result     sql.NullBool
		resolvedAt sql.NullTime
		req        models.ProofRequest
	)
	if err := row.Scan(&idText, &requester, &kind, &status, &result, &req.RequestedAt, &resolvedAt); err != nil {
		return nil, err
	}
	id, err := domain.ParseRequestID(idText)
	if err != nil {
		return nil, fmt.Errorf("decode request id %q: %w", idText, err)
	}
	if len(requester) != len(req.Requester) {
		return nil, fmt.Errorf("request %s: corrupt requester", idText)
	}
	req.ID = id
	copy(req.Requester[:], requester)
	req.Kind = models.Kind(kind)
	if req.Status, err = models.ParseStatus(status); err != nil {
		return nil, fmt.Errorf("request %s: %w", idText, err)
	}
	req.RequestedAt = req.RequestedAt.UTC()
	if result.Valid {
		v := result.Bool
		req.Result = &v
	}
	if resolvedAt.Valid {
		v := resolvedAt.Time.UTC()
		req.ResolvedAt = &v
	}
	return &req, nil
}

// lockState locks the singleton row and returns the latest id and the
// pending id (nil when idle).
func lockState(ctx context.Context, q tx.Querier) (domain.RequestID, *domain.RequestID, error) {
	var (
		latestText  string
		pendingText sql.NullString
	)
	err := q.QueryRowContext(ctx, `
		SELECT latest_request_id::text, pending_request_id::text
		FROM ledger_state WHERE singleton FOR UPDATE`,
	).Scan(&latestText, &pendingText)
	if err != nil {
		return domain.RequestID{}, nil, fmt.Errorf("lock ledger state: %w", err)
	}
	latest, err := domain.ParseRequestID(latestText)
	if err != nil {
		return domain.RequestID{}, nil, fmt.Errorf("decode latest request id: %w", err)
	}
	if !pendingText.Valid {
		return latest, nil, nil
	}
	pending, err := domain.ParseRequestID(pendingText.String)
	if err != nil {
		return domain.RequestID{}, nil, fmt.Errorf("decode pending request id: %w", err)
	}
	return latest, &pending, nil
}

func (s *PostgresStore) Allocate(ctx context.Context, requester domain.Address, kind models.Kind, now time.Time) (*models.ProofRequest, error) {
	var req *models.ProofRequest
	err := tx.Run(ctx, s.db, func(ctx context.Context) error {
		q := tx.Q(ctx, s.db)
		latest, pending, err := lockState(ctx, q)
		if err != nil {
			return err
		}
		if pending != nil {
			return ErrSlotBusy
		}
		req = models.NewPending(latest.Next(), requester, kind, now)
		if _, err := q.ExecContext(ctx, `
			INSERT INTO proof_requests (request_id, requester, kind, status, requested_at)
			VALUES ($1::numeric, $2, $3, $4, $5)`,
			req.ID.String(), requester.Bytes(), string(kind), string(models.StatusPending), now,
		); err != nil {
			return fmt.Errorf("insert proof request: %w", err)
		}
		if _, err := q.ExecContext(ctx, `
			UPDATE ledger_state SET latest_request_id = $1::numeric, pending_request_id = $1::numeric
			WHERE singleton`, req.ID.String(),
		); err != nil {
			return fmt.Errorf("update ledger state: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *PostgresStore) Fulfill(ctx context.Context, id domain.RequestID, result bool, now time.Time) (*models.ProofRequest, error) {
	return s.resolve(ctx, id, models.StatusFulfilled, sql.NullBool{Bool: result, Valid: true}, now)
}

func (s *PostgresStore) Cancel(ctx context.Context, id domain.RequestID, now time.Time) (*models.ProofRequest, error) {
	return s.resolve(ctx, id, models.StatusCancelled, sql.NullBool{}, now)
}

func (s *PostgresStore) resolve(ctx context.Context, id domain.RequestID, status models.Status, result sql.NullBool, now time.Time) (*models.ProofRequest, error) {
	var req *models.ProofRequest
	err := tx.Run(ctx, s.db, func(ctx context.Context) error {
		q := tx.Q(ctx, s.db)
		if _, _, err := lockState(ctx, q); err != nil {
			return err
		}
		row := q.QueryRowContext(ctx, `
			UPDATE proof_requests SET status = $2, result = $3, resolved_at = $4
			WHERE request_id = $1::numeric AND status = 'pending'
			RETURNING request_id::text, requester, kind, status, result, requested_at, resolved_at`,
			id.String(), string(status), result, now,
		)
		var err error
		req, err = scanRequest(row)
		if errors.Is(err, sql.ErrNoRows) {
			if _, findErr := s.FindByID(ctx, id); findErr != nil {
				return findErr
			}
			return fmt.Errorf("request %s: %w", id, ErrNotPending)
		}
		if err != nil {
			return fmt.Errorf("resolve proof request: %w", err)
		}
		if _, err := q.ExecContext(ctx, `
			UPDATE ledger_state SET pending_request_id = NULL
			WHERE singleton AND pending_request_id = $1::numeric`, id.String(),
		); err != nil {
			return fmt.Errorf("clear pending slot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.RequestID) (*models.ProofRequest, error) {
	req, err := scanRequest(tx.Q(ctx, s.db).QueryRowContext(ctx,
		selectRequest+` WHERE request_id = $1::numeric`, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("request %s: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find proof request: %w", err)
	}
	return req, nil
}

func (s *PostgresStore) Pending(ctx context.Context) (*models.ProofRequest, error) {
	req, err := scanRequest(tx.Q(ctx, s.db).QueryRowContext(ctx,
		selectRequest+` WHERE status = 'pending'`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no pending request: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find pending request: %w", err)
	}
	return req, nil
}

func (s *PostgresStore) LatestRequestID(ctx context.Context) (domain.RequestID, error) {
	var latestText string
	if err := tx.Q(ctx, s.db).QueryRowContext(ctx,
		`SELECT latest_request_id::text FROM ledger_state WHERE singleton`,
	).Scan(&latestText); err != nil {
		return domain.RequestID{}, fmt.Errorf("read latest request id: %w", err)
	}
	return domain.ParseRequestID(latestText)
}
