package oracle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	adminservice "github.com/thientu9562/identity-management/internal/admin/service"
	adminstore "github.com/thientu9562/identity-management/internal/admin/store"
	"github.com/thientu9562/identity-management/internal/events"
	evstore "github.com/thientu9562/identity-management/internal/events/store"
	idmodels "github.com/thientu9562/identity-management/internal/identity/models"
	idservice "github.com/thientu9562/identity-management/internal/identity/service"
	idstore "github.com/thientu9562/identity-management/internal/identity/store"
	"github.com/thientu9562/identity-management/internal/identity/verifier"
	"github.com/thientu9562/identity-management/internal/kms"
	"github.com/thientu9562/identity-management/internal/oracle/mocks"
	"github.com/thientu9562/identity-management/internal/platform/logger"
	proofmodels "github.com/thientu9562/identity-management/internal/proof/models"
	proofservice "github.com/thientu9562/identity-management/internal/proof/service"
	proofstore "github.com/thientu9562/identity-management/internal/proof/store"
	"github.com/thientu9562/identity-management/pkg/domain"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
)

func newSigners(t *testing.T, n int) ([]*kms.Signer, *kms.Quorum) {
	t.Helper()
	signers := make([]*kms.Signer, 0, n)
	addrs := make([]domain.Address, 0, n)
	for range n {
		s, err := kms.GenerateSigner()
		require.NoError(t, err)
		signers = append(signers, s)
		addrs = append(addrs, s.Address())
	}
	q, err := kms.NewQuorum(addrs, n)
	require.NoError(t, err)
	return signers, q
}

type stack struct {
	log        *events.Log
	identities *idservice.Service
	admin      *adminservice.Service
	proofs     *proofservice.Service
	cipher     *DevCipher
	relayer    *Relayer
	root       domain.Address
}

func newStack(t *testing.T) *stack {
	t.Helper()
	log := events.NewLog(evstore.NewInMemory(), events.WithLogger(logger.Discard()))
	identities := idservice.New(idstore.NewInMemory(), verifier.AllowAllVerifier{}, log, idservice.WithLogger(logger.Discard()))
	admin := adminservice.New(adminstore.NewInMemory(), log, adminservice.WithLogger(logger.Discard()))
	root := domain.Address{19: 0xad}
	require.NoError(t, admin.Bootstrap(context.Background(), root))

	signers, quorum := newSigners(t, 3)
	kmsDomain := kms.DefaultDomain(31337, domain.Address{0xc0})
	proofs := proofservice.New(proofstore.NewInMemory(), identities, kms.NewVerifier(quorum, kmsDomain), log,
		proofservice.WithLogger(logger.Discard()),
		proofservice.WithAdminChecker(admin),
	)
	cipher, err := NewDevCipher(testKey)
	require.NoError(t, err)
	relayer := New(log, identities, admin, proofs, NewDevDecryptor(cipher), signers, kmsDomain,
		WithLogger(logger.Discard()),
		WithProcessTimeout(5*time.Second),
	)
	return &stack{log: log, identities: identities, admin: admin, proofs: proofs, cipher: cipher, relayer: relayer, root: root}
}

func (s *stack) register(t *testing.T, user domain.Address, age uint64, country domain.CountryCode) {
	t.Helper()
	handles := devHandles(t, s.cipher, age, country)
	var inputs idmodels.Inputs
	for _, k := range idmodels.Kinds() {
		inputs[k] = idmodels.Input{Handle: handles[k], Proof: []byte{0x01}}
	}
	require.NoError(t, s.identities.RegisterIdentity(context.Background(), user, inputs))
}

func (s *stack) waitFulfilled(t *testing.T, id domain.RequestID) *proofmodels.ProofRequest {
	t.Helper()
	var req *proofmodels.ProofRequest
	require.Eventually(t, func() bool {
		r, err := s.proofs.GetRequest(context.Background(), id)
		if err != nil || r.IsPending() {
			return false
		}
		req = r
		return true
	}, 5*time.Second, 10*time.Millisecond)
	return req
}

func TestRelayerFulfilsRequests(t *testing.T) {
	s := newStack(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	alice := domain.Address{19: 0xa1}
	bob := domain.Address{19: 0xb0}
	s.register(t, alice, 25, domain.CountryCodeEU)
	s.register(t, bob, 19, domain.CountryCodeUS)
	require.NoError(t, s.admin.AddValidCountryCode(ctx, s.root, domain.CountryCodeEU))

	done := make(chan error, 1)
	go func() { done <- s.relayer.Run(ctx) }()

	id, err := s.proofs.ProveAgeOver21AndValidCountry(ctx, alice)
	require.NoError(t, err)
	req := s.waitFulfilled(t, id)
	require.NotNil(t, req.Result)
	assert.True(t, *req.Result)

	id, err = s.proofs.ProveAgeOver21AndValidCountry(ctx, bob)
	require.NoError(t, err)
	req = s.waitFulfilled(t, id)
	assert.False(t, *req.Result)

	id, err = s.proofs.ProveAgeOver18(ctx, bob)
	require.NoError(t, err)
	req = s.waitFulfilled(t, id)
	assert.True(t, *req.Result)

	pending, err := s.proofs.IsDecryptionPending(ctx)
	require.NoError(t, err)
	assert.False(t, pending)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("relayer did not stop")
	}
}

func TestRelayerServesRequestPendingAtStartup(t *testing.T) {
	s := newStack(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	alice := domain.Address{19: 0xa1}
	s.register(t, alice, 17, domain.CountryCodeCA)
	id, err := s.proofs.ProveAgeOver18(ctx, alice)
	require.NoError(t, err)

	go func() { _ = s.relayer.Run(ctx) }()

	req := s.waitFulfilled(t, id)
	assert.Equal(t, proofmodels.StatusFulfilled, req.Status)
	assert.False(t, *req.Result)
}

func TestProcess(t *testing.T) {
	ctrl := gomock.NewController(t)
	handles := mocks.NewMockHandleSource(ctrl)
	countries := mocks.NewMockCountrySource(ctrl)
	proofs := mocks.NewMockProofService(ctrl)

	signers, quorum := newSigners(t, 2)
	kmsDomain := kms.DefaultDomain(1, domain.Address{0x01})
	cipher, err := NewDevCipher(testKey)
	require.NoError(t, err)
	r := New(nil, handles, countries, proofs, NewDevDecryptor(cipher), signers, kmsDomain, WithLogger(logger.Discard()))

	ctx := context.Background()
	user := domain.Address{19: 0x01}
	id := domain.NewRequestID(7)

	t.Run("submits a quorum-verifiable result", func(t *testing.T) {
		handles.EXPECT().Handles(gomock.Any(), user).Return(devHandles(t, cipher, 30, domain.CountryCodeCA), nil)
		countries.EXPECT().ValidCountryCodes(gomock.Any()).Return([]domain.CountryCode{domain.CountryCodeCA}, nil)
		proofs.EXPECT().HandleProofResult(gomock.Any(), id, true, gomock.Len(2)).
			DoAndReturn(func(_ context.Context, id domain.RequestID, result bool, sigs [][]byte) error {
				return kms.NewVerifier(quorum, kmsDomain).Verify(id, result, sigs)
			})

		result, err := r.Process(ctx, id, user, proofmodels.KindAgeOver21AndValidCountry)
		require.NoError(t, err)
		assert.True(t, result)
	})

	t.Run("age proof skips the allow-list", func(t *testing.T) {
		handles.EXPECT().Handles(gomock.Any(), user).Return(devHandles(t, cipher, 30, domain.CountryCodeCA), nil)
		proofs.EXPECT().HandleProofResult(gomock.Any(), id, true, gomock.Any()).Return(nil)

		_, err := r.Process(ctx, id, user, proofmodels.KindAgeOver18)
		require.NoError(t, err)
	})

	t.Run("unregistered user is not submitted", func(t *testing.T) {
		handles.EXPECT().Handles(gomock.Any(), user).Return(idmodels.Handles{}, dErrors.New(dErrors.CodeNotFound, "identity not registered"))

		_, err := r.Process(ctx, id, user, proofmodels.KindAgeOver18)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("submission failure is returned", func(t *testing.T) {
		handles.EXPECT().Handles(gomock.Any(), user).Return(devHandles(t, cipher, 30, domain.CountryCodeCA), nil)
		proofs.EXPECT().HandleProofResult(gomock.Any(), id, true, gomock.Any()).Return(errors.New("NoHandleFoundForRequestID"))

		_, err := r.Process(ctx, id, user, proofmodels.KindAgeOver18)
		assert.ErrorContains(t, err, "submit result")
	})
}
