package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"github.com/thientu9562/identity-management/internal/events"
	evstore "github.com/thientu9562/identity-management/internal/events/store"
	"github.com/thientu9562/identity-management/internal/kms"
	"github.com/thientu9562/identity-management/internal/platform/logger"
	"github.com/thientu9562/identity-management/internal/proof/models"
	"github.com/thientu9562/identity-management/internal/proof/service"
	"github.com/thientu9562/identity-management/internal/proof/store"
	"github.com/thientu9562/identity-management/pkg/domain"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
	"github.com/thientu9562/identity-management/pkg/testutil"
)

type registeredEveryone struct{}

func (registeredEveryone) IsIdentityRegistered(context.Context, domain.Address) (bool, error) {
	return true, nil
}

// ProofResultSuite runs the result endpoint against the in-memory ledger and
// a real 2-of-3 quorum verifier.
type ProofResultSuite struct {
	suite.Suite
	signers []*kms.Signer
	eip712  kms.Domain
	ledger  *store.InMemory
	router  chi.Router
	pending domain.RequestID
}

func TestProofResultSuite(t *testing.T) {
	suite.Run(t, new(ProofResultSuite))
}

func (s *ProofResultSuite) SetupTest() {
	s.signers = make([]*kms.Signer, 3)
	addrs := make([]domain.Address, 3)
	for i := range s.signers {
		signer, err := kms.GenerateSigner()
		s.Require().NoError(err)
		s.signers[i] = signer
		addrs[i] = signer.Address()
	}
	quorum, err := kms.NewQuorum(addrs, 2)
	s.Require().NoError(err)
	s.eip712 = kms.DefaultDomain(31337, domain.Address{})

	s.ledger = store.NewInMemory()
	svc := service.New(s.ledger, registeredEveryone{}, kms.NewVerifier(quorum, s.eip712),
		events.NewLog(evstore.NewInMemory()), service.WithLogger(logger.Discard()))

	req, err := s.ledger.Allocate(context.Background(), testutil.MustAddress(user), models.KindAgeOver18, time.Now())
	s.Require().NoError(err)
	s.pending = req.ID

	s.router = chi.NewRouter()
	New(svc, logger.Discard()).RegisterPublic(s.router)
}

func (s *ProofResultSuite) sign(signer int, id domain.RequestID, result bool) string {
	sig, err := s.signers[signer].SignResult(s.eip712, id, result)
	s.Require().NoError(err)
	return hexutil.Encode(sig)
}

func (s *ProofResultSuite) TestResult() {
	short := "0x" + strings.Repeat("11", kms.SignatureLength-1)

	tests := []struct {
		name       string
		id         func() domain.RequestID
		signatures func(id domain.RequestID) []string
		status     int
		code       dErrors.Code
		reason     string
	}{
		{
			name:       "malformed signature on an unknown request",
			id:         func() domain.RequestID { return domain.NewRequestID(999) },
			signatures: func(domain.RequestID) []string { return []string{short} },
			status:     http.StatusNotFound,
			code:       dErrors.CodeNotFound,
			reason:     "NoHandleFoundForRequestID",
		},
		{
			name:       "64-byte signature on the pending request",
			id:         func() domain.RequestID { return s.pending },
			signatures: func(domain.RequestID) []string { return []string{short} },
			status:     http.StatusUnauthorized,
			code:       dErrors.CodeUnauthorized,
			reason:     "InvalidKMSSignatures",
		},
		{
			name:       "signature that is not hex",
			id:         func() domain.RequestID { return s.pending },
			signatures: func(domain.RequestID) []string { return []string{"zz"} },
			status:     http.StatusUnauthorized,
			code:       dErrors.CodeUnauthorized,
			reason:     "InvalidKMSSignatures",
		},
		{
			name: "below threshold",
			id:   func() domain.RequestID { return s.pending },
			signatures: func(id domain.RequestID) []string {
				return []string{s.sign(0, id, true)}
			},
			status: http.StatusUnauthorized,
			code:   dErrors.CodeUnauthorized,
			reason: "InvalidKMSSignatures",
		},
		{
			name: "quorum reached",
			id:   func() domain.RequestID { return s.pending },
			signatures: func(id domain.RequestID) []string {
				return []string{s.sign(0, id, true), s.sign(2, id, true)}
			},
			status: http.StatusNoContent,
		},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			id := tt.id()
			body := map[string]any{"result": true, "signatures": tt.signatures(id)}
			rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/proofs/"+id.String()+"/result", body))

			if tt.code == "" {
				testutil.AssertStatus(s.T(), rr, tt.status)
				req, err := s.ledger.FindByID(context.Background(), id)
				s.Require().NoError(err)
				s.Equal(models.StatusFulfilled, req.Status)
				return
			}
			testutil.AssertStatusAndError(s.T(), rr, tt.status, string(tt.code))
			testutil.AssertErrorDescriptionContains(s.T(), rr, tt.reason)

			if id == s.pending {
				req, err := s.ledger.FindByID(context.Background(), id)
				s.Require().NoError(err)
				s.True(req.IsPending(), "rejected result leaves the request pending")
			}
		})
	}
}
