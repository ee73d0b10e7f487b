//go:build integration

package revocation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thientu9562/identity-management/internal/auth/store/revocation"
	"github.com/thientu9562/identity-management/pkg/testutil/containers"
)

func TestPostgresTRL(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pg := containers.GetManager().GetPostgres(t)
	ctx := context.Background()
	require.NoError(t, pg.TruncateTables(ctx, "token_revocations"))

	now := time.Now()
	clock := func() time.Time { return now }
	trl := revocation.NewPostgresTRL(pg.DB, revocation.WithPostgresClock(clock))

	require.NoError(t, trl.RevokeToken(ctx, "jti-1", time.Minute))
	require.NoError(t, trl.RevokeToken(ctx, "jti-1", time.Hour), "re-revoking extends the entry")

	revoked, err := trl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(2 * time.Hour)
	revoked, err = trl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	purged, err := trl.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}
