package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thientu9562/identity-management/internal/events"
	"github.com/thientu9562/identity-management/pkg/domain"
)

func TestInMemoryStore_OrderAndPaging(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	now := time.Now()

	for i := range 5 {
		e := events.NewDecryptionFulfilled(domain.NewRequestID(uint64(i+1)), now)
		require.NoError(t, s.Append(ctx, &e))
		assert.Equal(t, uint64(i+1), e.Seq)
	}

	page, err := s.Since(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, uint64(2), page[0].Seq)
	assert.Equal(t, uint64(3), page[1].Seq)

	empty, err := s.Since(ctx, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestInMemoryStore_Outbox(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	now := time.Now()

	var ids []uuid.UUID
	for i := range 3 {
		e := events.NewValidCountryCodeAdded(domain.CountryCode(i), now)
		require.NoError(t, s.Append(ctx, &e))
		ids = append(ids, e.ID)
	}

	pending, err := s.Unpublished(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	require.NoError(t, s.MarkPublished(ctx, ids[:2], now))
	pending, err = s.Unpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, ids[2], pending[0].ID)
}
