//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/thientu9562/identity-management/internal/admin/store"
	"github.com/thientu9562/identity-management/pkg/domain"
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
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "access_control", "valid_country_codes"))
}

func (s *PostgresStoreSuite) TestAdminTransferIsCompareAndSwap() {
	ctx := context.Background()
	first, next := domain.Address{19: 1}, domain.Address{19: 2}

	_, err := s.store.Admin(ctx)
	s.ErrorIs(err, store.ErrNoAdmin)

	ok, err := s.store.Init(ctx, first, time.Now())
	s.Require().NoError(err)
	s.True(ok)

	s.Require().NoError(s.store.Transfer(ctx, first, next, time.Now()))
	s.ErrorIs(s.store.Transfer(ctx, first, domain.Address{19: 3}, time.Now()), store.ErrAdminChanged)

	admin, err := s.store.Admin(ctx)
	s.Require().NoError(err)
	s.Equal(next, admin)
}

func (s *PostgresStoreSuite) TestCountryCodesAreSortedAndIdempotent() {
	ctx := context.Background()
	for _, code := range []domain.CountryCode{domain.CountryCodeEU, domain.CountryCodeUS, domain.CountryCodeEU} {
		_, err := s.store.AddCountryCode(ctx, code, time.Now())
		s.Require().NoError(err)
	}
	codes, err := s.store.CountryCodes(ctx)
	s.Require().NoError(err)
	s.Equal([]domain.CountryCode{domain.CountryCodeUS, domain.CountryCodeEU}, codes)
}
