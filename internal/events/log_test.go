package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thientu9562/identity-management/internal/events"
	eventstore "github.com/thientu9562/identity-management/internal/events/store"
	"github.com/thientu9562/identity-management/internal/platform/logger"
	"github.com/thientu9562/identity-management/pkg/domain"
	"github.com/thientu9562/identity-management/pkg/platform/tx"
)

var user = domain.Address{0xaa}

func TestLog_EmitAssignsSeqAndNotifies(t *testing.T) {
	log := events.NewLog(eventstore.NewInMemory(), events.WithLogger(logger.Discard()))
	ch, cancel := log.Subscribe()
	defer cancel()

	ctx := context.Background()
	require.NoError(t, log.Emit(ctx, events.NewIdentityRegistered(user, time.Now())))
	require.NoError(t, log.Emit(ctx, events.NewProofRequested(user, domain.NewRequestID(1), "AgeOver18", time.Now())))

	first := <-ch
	second := <-ch
	assert.Equal(t, events.IdentityRegistered, first.Name)
	assert.Equal(t, uint64(1), first.Seq)
	assert.Equal(t, events.ProofRequested, second.Name)
	assert.Equal(t, uint64(2), second.Seq)

	all, err := log.Since(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLog_NotifiesOnlyAfterCommit(t *testing.T) {
	log := events.NewLog(eventstore.NewInMemory(), events.WithLogger(logger.Discard()))
	ch, cancel := log.Subscribe()
	defer cancel()

	err := tx.NopRunner{}.RunInTx(context.Background(), func(ctx context.Context) error {
		require.NoError(t, log.Emit(ctx, events.NewDecryptionFulfilled(domain.NewRequestID(3), time.Now())))
		select {
		case <-ch:
			t.Fatal("event delivered before commit")
		default:
		}
		return nil
	})
	require.NoError(t, err)

	e := <-ch
	assert.Equal(t, events.DecryptionFulfilled, e.Name)
}

func TestLog_RolledBackUnitNotifiesNobody(t *testing.T) {
	log := events.NewLog(eventstore.NewInMemory(), events.WithLogger(logger.Discard()))
	ch, cancel := log.Subscribe()
	defer cancel()

	_ = tx.NopRunner{}.RunInTx(context.Background(), func(ctx context.Context) error {
		_ = log.Emit(ctx, events.NewDecryptionFulfilled(domain.NewRequestID(3), time.Now()))
		return errors.New("abort")
	})

	select {
	case e := <-ch:
		t.Fatalf("unexpected event %s", e.Name)
	default:
	}
}

func TestLog_CancelClosesSubscription(t *testing.T) {
	log := events.NewLog(eventstore.NewInMemory(), events.WithLogger(logger.Discard()))
	ch, cancel := log.Subscribe()
	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)
}

type failingStore struct{ events.Store }

func (failingStore) Append(context.Context, *events.Event) error { return errors.New("disk full") }

func TestLog_EmitFailsClosed(t *testing.T) {
	log := events.NewLog(failingStore{}, events.WithLogger(logger.Discard()))
	err := log.Emit(context.Background(), events.NewIdentityRegistered(user, time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IdentityRegistered")
}

func TestEvent_JSONShape(t *testing.T) {
	e := events.NewProofResult(user, domain.NewRequestID(9), "AgeOver21AndValidCountry", false, time.Unix(100, 0))
	raw, err := json.Marshal(e)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "ProofResult", m["name"])
	assert.Equal(t, "9", m["request_id"])
	assert.Equal(t, false, m["result"])
	assert.Equal(t, user.String(), m["user"])
	assert.NotContains(t, m, "new_admin")
	assert.NotEqual(t, uuid.Nil.String(), m["id"])
	assert.Equal(t, user.String(), e.Key())
}
