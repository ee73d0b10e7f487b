//go:build integration

package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/thientu9562/identity-management/internal/events"
	"github.com/thientu9562/identity-management/internal/events/store"
	"github.com/thientu9562/identity-management/pkg/domain"
	"github.com/thientu9562/identity-management/pkg/platform/tx"
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
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "events"))
}

func (s *PostgresStoreSuite) appendCountries(codes ...domain.CountryCode) []events.Event {
	out := make([]events.Event, 0, len(codes))
	for _, code := range codes {
		e := events.NewValidCountryCodeAdded(code, time.Now().UTC())
		s.Require().NoError(s.store.Append(context.Background(), &e))
		out = append(out, e)
	}
	return out
}

func (s *PostgresStoreSuite) TestAppendAssignsIncreasingSeq() {
	appended := s.appendCountries(1, 2, 3)
	for i := 1; i < len(appended); i++ {
		s.Greater(appended[i].Seq, appended[i-1].Seq)
	}
}

func (s *PostgresStoreSuite) TestSincePagesInOrder() {
	ctx := context.Background()
	appended := s.appendCountries(10, 20, 30, 40)

	page, err := s.store.Since(ctx, 0, 2)
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal(appended[0].ID, page[0].ID)
	s.Equal(appended[1].ID, page[1].ID)

	rest, err := s.store.Since(ctx, page[1].Seq, 10)
	s.Require().NoError(err)
	s.Require().Len(rest, 2)
	s.Equal(appended[2].Seq, rest[0].Seq)
	s.Require().NotNil(rest[1].CountryCode)
	s.Equal(domain.CountryCode(40), *rest[1].CountryCode)
}

func (s *PostgresStoreSuite) TestUnpublishedUntilMarked() {
	ctx := context.Background()
	var user domain.Address
	user[19] = 9
	registered := events.NewIdentityRegistered(user, time.Now().UTC())
	s.Require().NoError(s.store.Append(ctx, &registered))
	appended := s.appendCountries(5)

	pending, err := s.store.Unpublished(ctx, 10)
	s.Require().NoError(err)
	s.Len(pending, 2)

	s.Require().NoError(s.store.MarkPublished(ctx, []uuid.UUID{registered.ID}, time.Now()))

	pending, err = s.store.Unpublished(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal(appended[0].ID, pending[0].ID)

	// The log itself keeps published events.
	all, err := s.store.Since(ctx, 0, 10)
	s.Require().NoError(err)
	s.Len(all, 2)
}

func (s *PostgresStoreSuite) TestAppendRollsBackWithTransaction() {
	ctx := context.Background()
	errAbort := errors.New("abort")

	err := tx.Run(ctx, s.postgres.DB, func(ctx context.Context) error {
		e := events.NewValidCountryCodeAdded(7, time.Now().UTC())
		if err := s.store.Append(ctx, &e); err != nil {
			return err
		}
		return errAbort
	})
	s.ErrorIs(err, errAbort)

	all, err := s.store.Since(ctx, 0, 10)
	s.Require().NoError(err)
	s.Empty(all)
}
