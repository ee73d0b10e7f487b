//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/thientu9562/identity-management/internal/identity/models"
	"github.com/thientu9562/identity-management/internal/identity/store"
	"github.com/thientu9562/identity-management/pkg/domain"
	"github.com/thientu9562/identity-management/pkg/platform/sentinel"
	"github.com/thientu9562/identity-management/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "identities"))
}

func newIdentity(lastByte byte) *models.Identity {
	var user domain.Address
	user[19] = lastByte
	identity := &models.Identity{User: user, RegisteredAt: time.Now().UTC().Truncate(time.Microsecond)}
	for i := range identity.Handles {
		identity.Handles[i][0] = lastByte
		identity.Handles[i][30] = byte(models.AttributeKind(i).ExpectedType())
	}
	return identity
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	identity := newIdentity(7)
	s.Require().NoError(s.store.Create(ctx, identity))

	found, err := s.store.FindByUser(ctx, identity.User)
	s.Require().NoError(err)
	s.Equal(identity.Handles, found.Handles)
	s.True(identity.RegisteredAt.Equal(found.RegisteredAt))

	_, err = s.store.FindByUser(ctx, newIdentity(8).User)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

// TestConcurrentRegistration verifies the primary key keeps exactly one
// registration per user under contention.
func (s *PostgresStoreSuite) TestConcurrentRegistration() {
	ctx := context.Background()
	const goroutines = 20

	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		conflicts atomic.Int32
	)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.Create(ctx, newIdentity(9))
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, sentinel.ErrAlreadyUsed):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successes.Load())
	s.Equal(int32(goroutines-1), conflicts.Load())
}
