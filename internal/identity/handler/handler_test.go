package handler

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/thientu9562/identity-management/internal/identity/handler/mocks"
	"github.com/thientu9562/identity-management/internal/identity/models"
	"github.com/thientu9562/identity-management/internal/platform/logger"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
	"github.com/thientu9562/identity-management/pkg/testutil"
)

const caller = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"

type IdentityHandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
}

func TestIdentityHandlerSuite(t *testing.T) {
	suite.Run(t, new(IdentityHandlerSuite))
}

func (s *IdentityHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	h := New(s.service, logger.Discard())
	s.router = chi.NewRouter()
	h.RegisterPublic(s.router)
	h.Register(s.router)
}

func handleHex(tag models.EncryptedType) string {
	var h models.CiphertextHandle
	h[0] = 0xab
	h[30] = byte(tag)
	return h.String()
}

func validBody() map[string]any {
	body := map[string]any{}
	for _, k := range models.Kinds() {
		body[k.String()] = map[string]string{"handle": handleHex(k.ExpectedType()), "proof": "0x01"}
	}
	return body
}

func (s *IdentityHandlerSuite) TestRegister() {
	s.Run("registers the authenticated caller", func() {
		s.service.EXPECT().RegisterIdentity(gomock.Any(), testutil.MustAddress(caller), gomock.Any()).
			DoAndReturn(func(_ any, _ any, inputs models.Inputs) error {
				s.Equal(models.TypeUint256, inputs[models.AttributePassportHash].Handle.Type())
				s.Equal([]byte{0x01}, inputs[models.AttributeCity].Proof)
				return nil
			})

		req := testutil.WithCaller(testutil.NewJSONRequest(s.T(), http.MethodPost, "/identity", validBody()), testutil.MustAddress(caller))
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		resp := testutil.UnmarshalResponse[RegistrationResponse](s.T(), rr)
		s.True(resp.Registered)
	})

	s.Run("requires a caller", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/identity", validBody()))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, string(dErrors.CodeUnauthorized))
	})

	s.Run("rejects a missing slot", func() {
		body := validBody()
		delete(body, "city")
		req := testutil.WithCaller(testutil.NewJSONRequest(s.T(), http.MethodPost, "/identity", body), testutil.MustAddress(caller))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})

	s.Run("rejects an unknown slot", func() {
		body := validBody()
		body["salary"] = map[string]string{"handle": handleHex(models.TypeUint8), "proof": "0x01"}
		req := testutil.WithCaller(testutil.NewJSONRequest(s.T(), http.MethodPost, "/identity", body), testutil.MustAddress(caller))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
	})

	s.Run("surfaces the boundary reason", func() {
		s.service.EXPECT().RegisterIdentity(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(dErrors.Wrap(models.ErrHandlesAlreadySaved, dErrors.CodeConflict, "HandlesAlreadySavedForRequestID: identity already registered"))

		req := testutil.WithCaller(testutil.NewJSONRequest(s.T(), http.MethodPost, "/identity", validBody()), testutil.MustAddress(caller))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, string(dErrors.CodeConflict))
		testutil.AssertErrorDescriptionContains(s.T(), rr, "HandlesAlreadySavedForRequestID")
	})
}

func (s *IdentityHandlerSuite) TestIsRegistered() {
	s.Run("reports registration", func() {
		s.service.EXPECT().IsIdentityRegistered(gomock.Any(), testutil.MustAddress(caller)).Return(true, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/identity/"+caller))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[RegistrationResponse](s.T(), rr)
		s.True(resp.Registered)
		s.Equal(testutil.MustAddress(caller), resp.User)
	})

	s.Run("rejects a malformed address", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/identity/nope"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})
}
