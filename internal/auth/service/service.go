// Package service issues caller tokens against EIP-191 signed login messages
// and revokes them on logout.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/accounts"

	"github.com/thientu9562/identity-management/internal/auth/models"
	"github.com/thientu9562/identity-management/internal/kms"
	"github.com/thientu9562/identity-management/pkg/domain"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
	"github.com/thientu9562/identity-management/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks TokenIssuer,RevocationList

// DefaultLoginSkew bounds how far a login message's issued time may be from now.
const DefaultLoginSkew = 5 * time.Minute

type TokenIssuer interface {
	GenerateAccessToken(addr domain.Address, expiresIn time.Duration) (string, string, error)
}

type RevocationList interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type Service struct {
	issuer   TokenIssuer
	trl      RevocationList
	tokenTTL time.Duration
	skew     time.Duration
	logger   *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithLoginSkew(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.skew = d
		}
	}
}

func New(issuer TokenIssuer, trl RevocationList, tokenTTL time.Duration, opts ...Option) *Service {
	s := &Service{
		issuer:   issuer,
		trl:      trl,
		tokenTTL: tokenTTL,
		skew:     DefaultLoginSkew,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login verifies that signature is addr's personal_sign over message and
// issues an access token for addr.
func (s *Service) Login(ctx context.Context, addr domain.Address, message string, signature []byte) (*models.Token, error) {
	msg, err := models.ParseLoginMessage(message)
	if err != nil {
		return nil, err
	}
	if msg.Address != addr {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "login message is for another address")
	}
	now := requestcontext.Now(ctx)
	if d := now.Sub(msg.Issued); d > s.skew || d < -s.skew {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "login message expired")
	}

	var digest [32]byte
	copy(digest[:], accounts.TextHash([]byte(message)))
	signer, err := kms.RecoverSigner(digest, signature)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid login signature")
	}
	if signer != addr {
		s.logger.WarnContext(ctx, "login signature from another key",
			"user", addr,
			"signer", signer,
		)
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid login signature")
	}

	token, jti, err := s.issuer.GenerateAccessToken(addr, s.tokenTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}
	s.logger.InfoContext(ctx, "caller token issued", "user", addr, "jti", jti)
	return &models.Token{
		AccessToken: token,
		JTI:         jti,
		Caller:      addr,
		ExpiresAt:   now.Add(s.tokenTTL),
	}, nil
}

// Logout revokes jti until expiresAt. A token that has already expired needs
// no entry.
func (s *Service) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return dErrors.New(dErrors.CodeBadRequest, "token has no id")
	}
	ttl := expiresAt.Sub(requestcontext.Now(ctx))
	if ttl <= 0 {
		return nil
	}
	if err := s.trl.RevokeToken(ctx, jti, ttl); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke token")
	}
	s.logger.InfoContext(ctx, "caller token revoked", "jti", jti)
	return nil
}

// IsTokenRevoked satisfies the auth middleware's revocation check.
func (s *Service) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	return s.trl.IsRevoked(ctx, jti)
}
