//go:build integration

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/thientu9562/identity-management/pkg/testutil/containers"
)

func TestPostgresLedger(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	s := &LedgerContractSuite{}
	s.newLedger = func() ledger {
		pg := containers.GetManager().GetPostgres(s.T())
		s.Require().NoError(pg.TruncateTables(context.Background(), "proof_requests", "ledger_state"))
		return NewPostgres(pg.DB)
	}
	suite.Run(t, s)
}

func TestRedisContainerLedger(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	s := &LedgerContractSuite{}
	s.newLedger = func() ledger {
		rc := containers.GetManager().GetRedis(s.T())
		s.Require().NoError(rc.FlushAll(context.Background()))
		return NewRedis(rc.Client)
	}
	suite.Run(t, s)
}
