package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminHex  = "0x5B38Da6a701c568545dCfcB03FcB875f56beddC4"
	signerOne = "0xAb8483F64d9C6d1EcF9b849Ae677dD3315835cb2"
	signerTwo = "0x4B20993Bc481177ec7E8f571ceCaE8A9e22C02db"
	coprocHex = "0x78731D3Ca6b7E34aC0F824c42a7cC18A495cabaB"

	oracleKeyOne = "4f3edf983ac636a65a842ce7c78d9aa706d3b113bce9c46f30d7d21715b23b1d"
	oracleKeyTwo = "6cbed15c793ce57650b9877cf6fa156fbef513c4e6134f022a85b1ffdd59b2a1"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("ADMIN_ADDRESS", adminHex)
	t.Setenv("KMS_SIGNERS", signerOne)
	t.Setenv("INPUT_VERIFIER_ADDRESS", coprocHex)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, LedgerMemory, cfg.LedgerBackend)
	assert.Equal(t, 10*time.Minute, cfg.ProofStaleAfter)
	assert.Equal(t, 1, cfg.KMS.Threshold)
	assert.Equal(t, adminHex, cfg.Admin.String())
	assert.True(t, cfg.UsingDevSigningKey())
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_ParsesLists(t *testing.T) {
	t.Setenv("ADMIN_ADDRESS", adminHex)
	t.Setenv("KMS_SIGNERS", signerOne+", "+signerTwo+","+signerOne)
	t.Setenv("KMS_THRESHOLD", "2")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("INPUT_VERIFIER_ADDRESS", coprocHex)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Len(t, cfg.KMS.Signers, 2)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_CollectsMalformedValues(t *testing.T) {
	t.Setenv("ADMIN_ADDRESS", "not-an-address")
	t.Setenv("KMS_THRESHOLD", "two")
	t.Setenv("PROOF_STALE_AFTER", "soon")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_ADDRESS")
	assert.Contains(t, err.Error(), "KMS_THRESHOLD")
	assert.Contains(t, err.Error(), "PROOF_STALE_AFTER")
}

func TestValidate(t *testing.T) {
	t.Run("threshold above signer count", func(t *testing.T) {
		t.Setenv("ADMIN_ADDRESS", adminHex)
		t.Setenv("KMS_SIGNERS", signerOne)
		t.Setenv("KMS_THRESHOLD", "2")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.ErrorContains(t, cfg.Validate(), "KMS_THRESHOLD")
	})

	t.Run("postgres ledger without database", func(t *testing.T) {
		t.Setenv("ADMIN_ADDRESS", adminHex)
		t.Setenv("KMS_SIGNERS", signerOne)
		t.Setenv("LEDGER_BACKEND", "postgres")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL")
	})

	t.Run("negative rate limit", func(t *testing.T) {
		t.Setenv("ADMIN_ADDRESS", adminHex)
		t.Setenv("KMS_SIGNERS", signerOne)
		t.Setenv("RATE_LIMIT_AUTH", "-1")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.ErrorContains(t, cfg.Validate(), "RATE_LIMIT_")
	})

	t.Run("dev oracle without keys", func(t *testing.T) {
		t.Setenv("ADMIN_ADDRESS", adminHex)
		t.Setenv("ORACLE_DEV_MODE", "true")
		t.Setenv("ORACLE_KEYS", "")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.ErrorContains(t, cfg.Validate(), "ORACLE_KEYS")
	})

	t.Run("input verifier required outside dev mode", func(t *testing.T) {
		t.Setenv("ADMIN_ADDRESS", adminHex)
		t.Setenv("KMS_SIGNERS", signerOne)
		t.Setenv("ORACLE_DEV_MODE", "false")
		t.Setenv("INPUT_VERIFIER_ADDRESS", "")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.ErrorContains(t, cfg.Validate(), "INPUT_VERIFIER_ADDRESS")
	})

	t.Run("dev oracle may skip the input verifier", func(t *testing.T) {
		t.Setenv("ADMIN_ADDRESS", adminHex)
		t.Setenv("ORACLE_DEV_MODE", "true")
		t.Setenv("ORACLE_KEYS", oracleKeyOne)
		t.Setenv("INPUT_VERIFIER_ADDRESS", "")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("threshold above oracle key count", func(t *testing.T) {
		t.Setenv("ADMIN_ADDRESS", adminHex)
		t.Setenv("ORACLE_DEV_MODE", "true")
		t.Setenv("ORACLE_KEYS", oracleKeyOne+","+oracleKeyTwo)
		t.Setenv("KMS_SIGNERS", "")
		t.Setenv("KMS_THRESHOLD", "3")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.QuorumSize())
		assert.ErrorContains(t, cfg.Validate(), "KMS_THRESHOLD must be between 1 and 2")
	})

	t.Run("missing admin and signers", func(t *testing.T) {
		t.Setenv("ADMIN_ADDRESS", "")
		t.Setenv("KMS_SIGNERS", "")
		cfg, err := FromEnv()
		require.NoError(t, err)
		err = cfg.Validate()
		assert.ErrorContains(t, err, "ADMIN_ADDRESS")
		assert.ErrorContains(t, err, "KMS_SIGNERS")
		assert.ErrorContains(t, err, "INPUT_VERIFIER_ADDRESS")
	})
}
