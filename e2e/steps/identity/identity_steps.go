package identity

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/thientu9562/identity-management/pkg/domain"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Address(wallet string) (domain.Address, error)
	EncryptedIdentity(age uint64, country domain.CountryCode) (map[string]any, error)
	POST(ctx context.Context, wallet, path string, body any) error
	GET(ctx context.Context, wallet, path string) error
	GetResponseField(field string) (any, error)
}

// RegisterSteps registers identity registration step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &identitySteps{tc: tc}

	ctx.Step(`^"([^"]*)" registers an identity aged (\d+) in "([^"]*)"$`, steps.registerIdentity)
	ctx.Step(`^"([^"]*)" should be registered$`, steps.shouldBeRegistered)
	ctx.Step(`^"([^"]*)" should not be registered$`, steps.shouldNotBeRegistered)
}

type identitySteps struct {
	tc TestContext
}

func (s *identitySteps) registerIdentity(ctx context.Context, wallet string, age int, country string) error {
	code, err := domain.ParseCountryCode(country)
	if err != nil {
		return err
	}
	body, err := s.tc.EncryptedIdentity(uint64(age), code)
	if err != nil {
		return err
	}
	return s.tc.POST(ctx, wallet, "/identity", body)
}

func (s *identitySteps) shouldBeRegistered(ctx context.Context, wallet string) error {
	return s.expectRegistered(ctx, wallet, true)
}

func (s *identitySteps) shouldNotBeRegistered(ctx context.Context, wallet string) error {
	return s.expectRegistered(ctx, wallet, false)
}

func (s *identitySteps) expectRegistered(ctx context.Context, wallet string, want bool) error {
	addr, err := s.tc.Address(wallet)
	if err != nil {
		return err
	}
	if err := s.tc.GET(ctx, "", "/identity/"+addr.String()); err != nil {
		return err
	}
	got, err := s.tc.GetResponseField("registered")
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("expected %s registered=%v, got %v", wallet, want, got)
	}
	return nil
}
