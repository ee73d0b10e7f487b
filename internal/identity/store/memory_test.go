package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/thientu9562/identity-management/internal/identity/models"
	"github.com/thientu9562/identity-management/pkg/domain"
	"github.com/thientu9562/identity-management/pkg/platform/sentinel"
)

type IdentityStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *IdentityStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestIdentityStoreSuite(t *testing.T) {
	suite.Run(t, new(IdentityStoreSuite))
}

func newIdentity(lastByte byte) *models.Identity {
	var user domain.Address
	user[19] = lastByte
	identity := &models.Identity{User: user, RegisteredAt: time.Now()}
	for i := range identity.Handles {
		identity.Handles[i][0] = lastByte
		identity.Handles[i][1] = byte(i)
	}
	return identity
}

func (s *IdentityStoreSuite) TestCreateAndFind() {
	s.Run("finds a created identity", func() {
		identity := newIdentity(1)
		s.Require().NoError(s.store.Create(s.ctx, identity))

		found, err := s.store.FindByUser(s.ctx, identity.User)
		s.Require().NoError(err)
		s.Equal(identity.Handles, found.Handles)

		exists, err := s.store.Exists(s.ctx, identity.User)
		s.Require().NoError(err)
		s.True(exists)
	})

	s.Run("returns ErrNotFound for an unknown user", func() {
		_, err := s.store.FindByUser(s.ctx, newIdentity(99).User)
		s.ErrorIs(err, sentinel.ErrNotFound)

		exists, err := s.store.Exists(s.ctx, newIdentity(99).User)
		s.Require().NoError(err)
		s.False(exists)
	})
}

func (s *IdentityStoreSuite) TestWriteOnce() {
	first := newIdentity(2)
	s.Require().NoError(s.store.Create(s.ctx, first))

	second := newIdentity(2)
	second.Handles[models.AttributeAge][5] = 0xff
	s.ErrorIs(s.store.Create(s.ctx, second), sentinel.ErrAlreadyUsed)

	found, err := s.store.FindByUser(s.ctx, first.User)
	s.Require().NoError(err)
	s.Equal(first.Handles, found.Handles, "the original handles must survive a rejected second write")
}
