package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/thientu9562/identity-management/pkg/domain"
	pstrings "github.com/thientu9562/identity-management/pkg/platform/strings"
)

// Ledger backends.
const (
	LedgerMemory   = "memory"
	LedgerPostgres = "postgres"
	LedgerRedis    = "redis"
)

const (
	devJWTSigningKey = "dev-secret-key-change-in-production"
	devCipherKey     = "identity-management-dev-cipher-key"
)

// Server captures process level configuration.
type Server struct {
	Addr          string
	LogLevel      string
	JWTSigningKey string
	TokenTTL      time.Duration

	LedgerBackend string
	Database      DatabaseConfig
	Redis         RedisConfig
	Kafka         KafkaConfig

	Admin         domain.Address
	KMS           KMSConfig
	InputVerifier domain.Address

	ProofStaleAfter time.Duration
	Oracle          OracleConfig
	RateLimit       RateLimitConfig
}

// DatabaseConfig configures the PostgreSQL pool. An empty URL keeps every
// store in memory.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig configures the go-redis client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig enables the Kafka event sink when Brokers is non-empty.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// KMSConfig describes the decryption signer quorum and the signing domain.
type KMSConfig struct {
	Signers           []domain.Address
	Threshold         int
	ChainID           uint64
	VerifyingContract domain.Address
}

// RateLimitConfig sets per-IP budgets over Window. Zero disables a class.
type RateLimitConfig struct {
	Window time.Duration
	Auth   int
	Write  int
	Read   int
}

// OracleConfig drives the in-process development relayer.
type OracleConfig struct {
	DevMode   bool
	Keys      []string
	CipherKey string
}

// FromEnv builds a Server config from environment variables so main stays lean.
// Malformed values are collected and returned together.
func FromEnv() (Server, error) {
	var errs []error

	cfg := Server{
		Addr:          envOr("ADDR", ":8080"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		JWTSigningKey: envOr("JWT_SIGNING_KEY", devJWTSigningKey),
		TokenTTL:      durationEnv("TOKEN_TTL", time.Hour, &errs),
		LedgerBackend: strings.ToLower(envOr("LEDGER_BACKEND", LedgerMemory)),
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    intEnv("DATABASE_MAX_OPEN_CONNS", 10, &errs),
			MaxIdleConns:    intEnv("DATABASE_MAX_IDLE_CONNS", 5, &errs),
			ConnMaxLifetime: durationEnv("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute, &errs),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     intEnv("REDIS_POOL_SIZE", 10, &errs),
			MinIdleConns: intEnv("REDIS_MIN_IDLE_CONNS", 2, &errs),
			DialTimeout:  durationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second, &errs),
			ReadTimeout:  durationEnv("REDIS_READ_TIMEOUT", 3*time.Second, &errs),
			WriteTimeout: durationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second, &errs),
		},
		Kafka: KafkaConfig{
			Brokers: pstrings.SplitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   envOr("KAFKA_TOPIC", "identity-events"),
		},
		KMS: KMSConfig{
			Threshold: intEnv("KMS_THRESHOLD", 1, &errs),
			ChainID:   uint64(intEnv("KMS_CHAIN_ID", 31337, &errs)),
		},
		ProofStaleAfter: durationEnv("PROOF_STALE_AFTER", 10*time.Minute, &errs),
		Oracle: OracleConfig{
			DevMode:   os.Getenv("ORACLE_DEV_MODE") == "true",
			Keys:      pstrings.SplitList(os.Getenv("ORACLE_KEYS")),
			CipherKey: envOr("ORACLE_CIPHER_KEY", devCipherKey),
		},
		RateLimit: RateLimitConfig{
			Window: durationEnv("RATE_LIMIT_WINDOW", time.Minute, &errs),
			Auth:   intEnv("RATE_LIMIT_AUTH", 20, &errs),
			Write:  intEnv("RATE_LIMIT_WRITE", 60, &errs),
			Read:   intEnv("RATE_LIMIT_READ", 0, &errs),
		},
	}

	cfg.Admin = addressEnv("ADMIN_ADDRESS", &errs)
	cfg.InputVerifier = addressEnv("INPUT_VERIFIER_ADDRESS", &errs)
	cfg.KMS.VerifyingContract = addressEnv("KMS_VERIFYING_CONTRACT", &errs)
	for _, raw := range pstrings.SplitList(os.Getenv("KMS_SIGNERS")) {
		addr, err := domain.ParseAddress(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("KMS_SIGNERS: %q: %w", raw, err))
			continue
		}
		cfg.KMS.Signers = append(cfg.KMS.Signers, addr)
	}

	if err := errors.Join(errs...); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate reports every inconsistency in the configuration. Signer and
// threshold consistency is checked again when the quorum is built.
func (c Server) Validate() error {
	var errs []error
	if c.Admin.IsZero() {
		errs = append(errs, errors.New("ADMIN_ADDRESS is required"))
	}
	if c.JWTSigningKey == "" {
		errs = append(errs, errors.New("JWT_SIGNING_KEY is required"))
	}
	switch c.LedgerBackend {
	case LedgerMemory:
	case LedgerPostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("LEDGER_BACKEND=postgres requires DATABASE_URL"))
		}
	case LedgerRedis:
		if c.Redis.URL == "" {
			errs = append(errs, errors.New("LEDGER_BACKEND=redis requires REDIS_URL"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown LEDGER_BACKEND %q", c.LedgerBackend))
	}
	if !c.Oracle.DevMode && len(c.KMS.Signers) == 0 {
		errs = append(errs, errors.New("KMS_SIGNERS is required unless ORACLE_DEV_MODE=true"))
	}
	if n := c.QuorumSize(); n > 0 && (c.KMS.Threshold < 1 || c.KMS.Threshold > n) {
		errs = append(errs, fmt.Errorf("KMS_THRESHOLD must be between 1 and %d", n))
	}
	if !c.Oracle.DevMode && c.InputVerifier.IsZero() {
		errs = append(errs, errors.New("INPUT_VERIFIER_ADDRESS is required unless ORACLE_DEV_MODE=true"))
	}
	if c.Oracle.DevMode && len(c.Oracle.Keys) == 0 {
		errs = append(errs, errors.New("ORACLE_DEV_MODE requires ORACLE_KEYS"))
	}
	if c.Oracle.DevMode && len(c.Oracle.CipherKey) < 16 {
		errs = append(errs, errors.New("ORACLE_CIPHER_KEY must be at least 16 bytes"))
	}
	if c.RateLimit.Auth < 0 || c.RateLimit.Write < 0 || c.RateLimit.Read < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_* budgets must not be negative"))
	}
	if c.ProofStaleAfter <= 0 {
		errs = append(errs, errors.New("PROOF_STALE_AFTER must be positive"))
	}
	return errors.Join(errs...)
}

// QuorumSize is the number of KMS signers results are verified against. The
// development oracle's keys stand in when KMS_SIGNERS is empty.
func (c Server) QuorumSize() int {
	if len(c.KMS.Signers) == 0 && c.Oracle.DevMode {
		return len(c.Oracle.Keys)
	}
	return len(c.KMS.Signers)
}

// UsingDevSigningKey reports whether tokens are signed with the built-in key.
func (c Server) UsingDevSigningKey() bool {
	return c.JWTSigningKey == devJWTSigningKey
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int, errs *[]error) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func durationEnv(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func addressEnv(key string, errs *[]error) domain.Address {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return domain.Address{}
	}
	addr, err := domain.ParseAddress(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
	}
	return addr
}
