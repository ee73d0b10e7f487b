package auth

import (
	"context"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Login(ctx context.Context, wallet string) error
	POST(ctx context.Context, wallet, path string, body any) error
}

// RegisterSteps registers authentication-related step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &authSteps{tc: tc}

	ctx.Step(`^"([^"]*)" logs in$`, steps.logIn)
	ctx.Step(`^"([^"]*)" logs out$`, steps.logOut)
	ctx.Step(`^I request a token with an unsigned message$`, steps.requestUnsignedToken)
}

type authSteps struct {
	tc TestContext
}

func (s *authSteps) logIn(ctx context.Context, wallet string) error {
	return s.tc.Login(ctx, wallet)
}

func (s *authSteps) logOut(ctx context.Context, wallet string) error {
	return s.tc.POST(ctx, wallet, "/auth/logout", nil)
}

func (s *authSteps) requestUnsignedToken(ctx context.Context) error {
	body := map[string]any{
		"address":   "0x00000000000000000000000000000000000000aa",
		"message":   "identity-management login",
		"signature": "0x" + zeros(130),
	}
	return s.tc.POST(ctx, "", "/auth/token", body)
}

func zeros(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}
