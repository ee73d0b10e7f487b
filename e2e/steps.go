package e2e

import (
	"github.com/cucumber/godog"

	"github.com/thientu9562/identity-management/e2e/steps/admin"
	"github.com/thientu9562/identity-management/e2e/steps/auth"
	"github.com/thientu9562/identity-management/e2e/steps/common"
	"github.com/thientu9562/identity-management/e2e/steps/identity"
	"github.com/thientu9562/identity-management/e2e/steps/proof"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (generic assertions)
	common.RegisterSteps(ctx, tc)

	auth.RegisterSteps(ctx, tc)
	identity.RegisterSteps(ctx, tc)
	proof.RegisterSteps(ctx, tc)
	admin.RegisterSteps(ctx, tc)
}
