package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/thientu9562/identity-management/internal/admin/service/mocks"
	"github.com/thientu9562/identity-management/internal/admin/store"
	"github.com/thientu9562/identity-management/internal/events"
	evstore "github.com/thientu9562/identity-management/internal/events/store"
	"github.com/thientu9562/identity-management/internal/platform/logger"
	"github.com/thientu9562/identity-management/pkg/domain"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
)

type AccessControlSuite struct {
	suite.Suite
	ctx     context.Context
	log     *events.Log
	service *Service

	root  domain.Address
	alice domain.Address
}

func TestAccessControlSuite(t *testing.T) {
	suite.Run(t, new(AccessControlSuite))
}

func (s *AccessControlSuite) SetupTest() {
	s.ctx = context.Background()
	s.log = events.NewLog(evstore.NewInMemory(), events.WithLogger(logger.Discard()))
	s.service = New(store.NewInMemory(), s.log, WithLogger(logger.Discard()))
	s.root = domain.Address{19: 0xad}
	s.alice = domain.Address{19: 0xa1}
	s.Require().NoError(s.service.Bootstrap(s.ctx, s.root))
}

func (s *AccessControlSuite) events() []events.Event {
	evs, err := s.log.Since(s.ctx, 0, 100)
	s.Require().NoError(err)
	return evs
}

func (s *AccessControlSuite) TestBootstrapKeepsExistingAdmin() {
	s.Require().NoError(s.service.Bootstrap(s.ctx, s.alice))
	admin, err := s.service.Admin(s.ctx)
	s.Require().NoError(err)
	s.Equal(s.root, admin)

	err = s.service.Bootstrap(s.ctx, domain.Address{})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *AccessControlSuite) TestAdminAddsCountryCode() {
	s.Require().NoError(s.service.AddValidCountryCode(s.ctx, s.root, domain.CountryCodeEU))

	ok, err := s.service.IsValidCountryCode(s.ctx, domain.CountryCodeEU)
	s.Require().NoError(err)
	s.True(ok)

	evs := s.events()
	s.Require().Len(evs, 1)
	s.Equal(events.ValidCountryCodeAdded, evs[0].Name)
	s.Equal(domain.CountryCodeEU, *evs[0].CountryCode)
}

func (s *AccessControlSuite) TestAddCountryCodeIsIdempotent() {
	s.Require().NoError(s.service.AddValidCountryCode(s.ctx, s.root, domain.CountryCodeCA))
	s.Require().NoError(s.service.AddValidCountryCode(s.ctx, s.root, domain.CountryCodeCA))

	s.Len(s.events(), 1)
	codes, err := s.service.ValidCountryCodes(s.ctx)
	s.Require().NoError(err)
	s.Equal([]domain.CountryCode{domain.CountryCodeCA}, codes)
}

func (s *AccessControlSuite) TestNonAdminIsRejected() {
	err := s.service.AddValidCountryCode(s.ctx, s.alice, domain.CountryCodeEU)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	err = s.service.TransferAdmin(s.ctx, s.alice, s.alice)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	err = s.service.AddValidCountryCode(s.ctx, domain.Address{}, domain.CountryCodeEU)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	s.Empty(s.events())
}

func (s *AccessControlSuite) TestAdminCheckPrecedesValidation() {
	err := s.service.TransferAdmin(s.ctx, s.alice, domain.Address{})
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	err = s.service.AddValidCountryCode(s.ctx, s.alice, domain.CountryCode(9))
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
}

func (s *AccessControlSuite) TestInvalidArguments() {
	err := s.service.TransferAdmin(s.ctx, s.root, domain.Address{})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	err = s.service.AddValidCountryCode(s.ctx, s.root, domain.CountryCode(9))
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *AccessControlSuite) TestTransferHandsOverImmediately() {
	s.Require().NoError(s.service.TransferAdmin(s.ctx, s.root, s.alice))

	admin, err := s.service.Admin(s.ctx)
	s.Require().NoError(err)
	s.Equal(s.alice, admin)

	err = s.service.AddValidCountryCode(s.ctx, s.root, domain.CountryCodeUS)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden), "old admin lost the role")
	s.Require().NoError(s.service.AddValidCountryCode(s.ctx, s.alice, domain.CountryCodeUS))
	s.Require().NoError(s.service.RequireAdmin(s.ctx, s.alice))

	evs := s.events()
	s.Require().Len(evs, 2)
	s.Equal(events.AdminTransferred, evs[0].Name)
	s.Equal(s.root, *evs[0].OldAdmin)
	s.Equal(s.alice, *evs[0].NewAdmin)
	s.Equal(events.ValidCountryCodeAdded, evs[1].Name)
}

func TestAccessControl_StoreFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockAccessStore(ctrl)
	log := events.NewLog(evstore.NewInMemory(), events.WithLogger(logger.Discard()))
	svc := New(st, log, WithLogger(logger.Discard()))
	root := domain.Address{19: 0xad}
	ctx := context.Background()

	t.Run("admin read failure is internal", func(t *testing.T) {
		st.EXPECT().Admin(gomock.Any()).Return(domain.Address{}, errors.New("connection reset"))
		err := svc.RequireAdmin(ctx, root)
		if !dErrors.HasCode(err, dErrors.CodeInternal) {
			t.Fatalf("expected internal error, got %v", err)
		}
	})

	t.Run("lost transfer race is forbidden", func(t *testing.T) {
		st.EXPECT().Admin(gomock.Any()).Return(root, nil)
		st.EXPECT().Transfer(gomock.Any(), root, domain.Address{19: 1}, gomock.Any()).
			Return(store.ErrAdminChanged)
		err := svc.TransferAdmin(ctx, root, domain.Address{19: 1})
		if !dErrors.HasCode(err, dErrors.CodeForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("admin not initialised", func(t *testing.T) {
		st.EXPECT().Admin(gomock.Any()).Return(domain.Address{}, store.ErrNoAdmin)
		_, err := svc.Admin(ctx)
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}
