package admin

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/thientu9562/identity-management/pkg/domain"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Address(wallet string) (domain.Address, error)
	POST(ctx context.Context, wallet, path string, body any) error
	GET(ctx context.Context, wallet, path string) error
	GetResponseField(field string) (any, error)
}

// RegisterSteps registers access control step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &adminSteps{tc: tc}

	ctx.Step(`^"([^"]*)" adds valid country code "([^"]*)"$`, steps.addCountryCode)
	ctx.Step(`^"([^"]*)" transfers the admin role to "([^"]*)"$`, steps.transferAdmin)
	ctx.Step(`^the admin should be "([^"]*)"$`, steps.adminShouldBe)
}

type adminSteps struct {
	tc TestContext
}

func (s *adminSteps) addCountryCode(ctx context.Context, wallet, code string) error {
	return s.tc.POST(ctx, wallet, "/admin/country-codes", map[string]any{"country_code": code})
}

func (s *adminSteps) transferAdmin(ctx context.Context, wallet, next string) error {
	addr, err := s.tc.Address(next)
	if err != nil {
		return err
	}
	return s.tc.POST(ctx, wallet, "/admin/transfer", map[string]any{"new_admin": addr.String()})
}

func (s *adminSteps) adminShouldBe(ctx context.Context, wallet string) error {
	want, err := s.tc.Address(wallet)
	if err != nil {
		return err
	}
	if err := s.tc.GET(ctx, "", "/admin"); err != nil {
		return err
	}
	got, err := s.tc.GetResponseField("admin")
	if err != nil {
		return err
	}
	if got != want.String() {
		return fmt.Errorf("expected admin %s, got %v", want, got)
	}
	return nil
}
