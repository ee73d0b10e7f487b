package handler

import (
	"time"

	"github.com/thientu9562/identity-management/internal/auth/models"
)

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func FromToken(t *models.Token, now time.Time) *TokenResponse {
	return &TokenResponse{
		AccessToken: t.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(t.ExpiresAt.Sub(now).Seconds()),
		ExpiresAt:   t.ExpiresAt,
	}
}
