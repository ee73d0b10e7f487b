package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thientu9562/identity-management/internal/proof/models"
	"github.com/thientu9562/identity-management/pkg/domain"
	"github.com/thientu9562/identity-management/pkg/platform/sentinel"
)

const (
	keyLatest        = "ledger:latest"
	keyPending       = "ledger:pending"
	keyRequestPrefix = "ledger:request:"

	// maxWatchRetries bounds optimistic retries when another writer touched a
	// watched key between read and EXEC.
	maxWatchRetries = 16
)

func requestKey(id domain.RequestID) string {
	return keyRequestPrefix + id.String()
}

// RedisStore keeps the ledger in Redis. Mutations run as WATCH/MULTI
// transactions over the slot keys and are retried on conflict.
type RedisStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) watch(ctx context.Context, fn func(*redis.Tx) error, keys ...string) error {
	for i := 0; i < maxWatchRetries; i++ {
		err := s.client.Watch(ctx, fn, keys...)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("ledger transaction contention: %w", sentinel.ErrUnavailable)
}

// reader is satisfied by both *redis.Client and *redis.Tx.
type reader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

func readID(ctx context.Context, c reader, key string) (*domain.RequestID, error) {
	raw, err := c.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	id, err := domain.ParseRequestID(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &id, nil
}

func encodeRequest(r *models.ProofRequest) map[string]any {
	fields := map[string]any{
		"requester":    r.Requester.String(),
		"kind":         string(r.Kind),
		"status":       string(r.Status),
		"requested_at": r.RequestedAt.UnixNano(),
	}
	if r.Result != nil {
		fields["result"] = strconv.FormatBool(*r.Result)
	}
	if r.ResolvedAt != nil {
		fields["resolved_at"] = r.ResolvedAt.UnixNano()
	}
	return fields
}

func decodeRequest(id domain.RequestID, fields map[string]string) (*models.ProofRequest, error) {
	requester, err := domain.ParseAddress(fields["requester"])
	if err != nil {
		return nil, fmt.Errorf("request %s: decode requester: %w", id, err)
	}
	status, err := models.ParseStatus(fields["status"])
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", id, err)
	}
	requestedAt, err := strconv.ParseInt(fields["requested_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("request %s: decode requested_at: %w", id, err)
	}
	req := &models.ProofRequest{
		ID:          id,
		Requester:   requester,
		Kind:        models.Kind(fields["kind"]),
		Status:      status,
		RequestedAt: time.Unix(0, requestedAt).UTC(),
	}
	if raw, ok := fields["result"]; ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("request %s: decode result: %w", id, err)
		}
		req.Result = &v
	}
	if raw, ok := fields["resolved_at"]; ok {
		ns, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("request %s: decode resolved_at: %w", id, err)
		}
		at := time.Unix(0, ns).UTC()
		req.ResolvedAt = &at
	}
	return req, nil
}

func loadRequest(ctx context.Context, c reader, id domain.RequestID) (*models.ProofRequest, error) {
	fields, err := c.HGetAll(ctx, requestKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("load request %s: %w", id, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("request %s: %w", id, sentinel.ErrNotFound)
	}
	return decodeRequest(id, fields)
}

func (s *RedisStore) Allocate(ctx context.Context, requester domain.Address, kind models.Kind, now time.Time) (*models.ProofRequest, error) {
	var req *models.ProofRequest
	err := s.watch(ctx, func(t *redis.Tx) error {
		pending, err := readID(ctx, t, keyPending)
		if err != nil {
			return err
		}
		if pending != nil {
			return ErrSlotBusy
		}
		latest, err := readID(ctx, t, keyLatest)
		if err != nil {
			return err
		}
		var current domain.RequestID
		if latest != nil {
			current = *latest
		}
		next := current.Next()
		req = models.NewPending(next, requester, kind, now)
		_, err = t.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.HSet(ctx, requestKey(next), encodeRequest(req))
			p.Set(ctx, keyLatest, next.String(), 0)
			p.Set(ctx, keyPending, next.String(), 0)
			return nil
		})
		return err
	}, keyLatest, keyPending)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *RedisStore) Fulfill(ctx context.Context, id domain.RequestID, result bool, now time.Time) (*models.ProofRequest, error) {
	return s.resolve(ctx, id, func(r *models.ProofRequest) error { return r.Fulfill(result, now) })
}

func (s *RedisStore) Cancel(ctx context.Context, id domain.RequestID, now time.Time) (*models.ProofRequest, error) {
	return s.resolve(ctx, id, func(r *models.ProofRequest) error { return r.Cancel(now) })
}

func (s *RedisStore) resolve(ctx context.Context, id domain.RequestID, apply func(*models.ProofRequest) error) (*models.ProofRequest, error) {
	var req *models.ProofRequest
	err := s.watch(ctx, func(t *redis.Tx) error {
		var err error
		req, err = loadRequest(ctx, t, id)
		if err != nil {
			return err
		}
		if !req.IsPending() {
			return fmt.Errorf("request %s is %s: %w", id, req.Status, ErrNotPending)
		}
		if err := apply(req); err != nil {
			return fmt.Errorf("request %s: %w", id, ErrNotPending)
		}
		_, err = t.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.HSet(ctx, requestKey(id), encodeRequest(req))
			p.Del(ctx, keyPending)
			return nil
		})
		return err
	}, keyPending, requestKey(id))
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *RedisStore) FindByID(ctx context.Context, id domain.RequestID) (*models.ProofRequest, error) {
	return loadRequest(ctx, s.client, id)
}

func (s *RedisStore) Pending(ctx context.Context) (*models.ProofRequest, error) {
	id, err := readID(ctx, s.client, keyPending)
	if err != nil {
		return nil, err
	}
	if id == nil {
		return nil, fmt.Errorf("no pending request: %w", sentinel.ErrNotFound)
	}
	return loadRequest(ctx, s.client, *id)
}

func (s *RedisStore) LatestRequestID(ctx context.Context) (domain.RequestID, error) {
	id, err := readID(ctx, s.client, keyLatest)
	if err != nil || id == nil {
		return domain.RequestID{}, err
	}
	return *id, nil
}
