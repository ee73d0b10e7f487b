package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"

	adminhandler "github.com/thientu9562/identity-management/internal/admin/handler"
	adminservice "github.com/thientu9562/identity-management/internal/admin/service"
	adminstore "github.com/thientu9562/identity-management/internal/admin/store"
	authhandler "github.com/thientu9562/identity-management/internal/auth/handler"
	authservice "github.com/thientu9562/identity-management/internal/auth/service"
	"github.com/thientu9562/identity-management/internal/auth/store/revocation"
	"github.com/thientu9562/identity-management/internal/events"
	eventshandler "github.com/thientu9562/identity-management/internal/events/handler"
	"github.com/thientu9562/identity-management/internal/events/kafka"
	evmetrics "github.com/thientu9562/identity-management/internal/events/metrics"
	"github.com/thientu9562/identity-management/internal/events/relay"
	evstore "github.com/thientu9562/identity-management/internal/events/store"
	identityhandler "github.com/thientu9562/identity-management/internal/identity/handler"
	identitymetrics "github.com/thientu9562/identity-management/internal/identity/metrics"
	identityservice "github.com/thientu9562/identity-management/internal/identity/service"
	identitystore "github.com/thientu9562/identity-management/internal/identity/store"
	"github.com/thientu9562/identity-management/internal/identity/verifier"
	jwttoken "github.com/thientu9562/identity-management/internal/jwt_token"
	"github.com/thientu9562/identity-management/internal/kms"
	"github.com/thientu9562/identity-management/internal/oracle"
	"github.com/thientu9562/identity-management/internal/platform/config"
	platformmetrics "github.com/thientu9562/identity-management/internal/platform/metrics"
	"github.com/thientu9562/identity-management/internal/platform/postgres"
	redisclient "github.com/thientu9562/identity-management/internal/platform/redis"
	proofhandler "github.com/thientu9562/identity-management/internal/proof/handler"
	proofmetrics "github.com/thientu9562/identity-management/internal/proof/metrics"
	proofservice "github.com/thientu9562/identity-management/internal/proof/service"
	proofstore "github.com/thientu9562/identity-management/internal/proof/store"
	rlmetrics "github.com/thientu9562/identity-management/internal/ratelimit/metrics"
	rlmiddleware "github.com/thientu9562/identity-management/internal/ratelimit/middleware"
	rlmodels "github.com/thientu9562/identity-management/internal/ratelimit/models"
	"github.com/thientu9562/identity-management/internal/ratelimit/store/bucket"
	httptransport "github.com/thientu9562/identity-management/internal/transport/http"
	"github.com/thientu9562/identity-management/pkg/domain"
	"github.com/thientu9562/identity-management/pkg/platform/circuit"
	"github.com/thientu9562/identity-management/pkg/platform/tx"
)

const (
	tokenIssuer   = "identity-management"
	tokenAudience = "identity-management"

	kafkaPartitions  = 3
	kafkaReplication = 1

	revocationPurgeInterval = time.Hour
)

type application struct {
	router  http.Handler
	workers map[string]func(context.Context) error
	closers []closer
	log     *slog.Logger
}

type closer struct {
	name string
	fn   func() error
}

func (a *application) onClose(name string, fn func() error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}

// close releases resources in reverse acquisition order.
func (a *application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		logClose(a.log, a.closers[i].name, a.closers[i].fn)
	}
}

// infra holds the optional backing services. Nil fields are not configured.
type infra struct {
	db    *sql.DB
	redis *redisclient.Client
	kafka *kafka.Publisher
}

func build(ctx context.Context, cfg config.Server, log *slog.Logger, reg prometheus.Registerer) (_ *application, err error) {
	app := &application{
		workers: make(map[string]func(context.Context) error),
		log:     log,
	}
	defer func() {
		if err != nil {
			app.close()
		}
	}()

	inf, err := connect(ctx, cfg, log, app)
	if err != nil {
		return nil, err
	}
	health := make(map[string]httptransport.HealthCheck)

	var runner tx.Runner = tx.NopRunner{}
	var eventStore events.Store = evstore.NewInMemory()
	var identities identityservice.IdentityStore = identitystore.NewInMemory()
	var access adminservice.AccessStore = adminstore.NewInMemory()
	if inf.db != nil {
		runner = tx.SQLRunner{DB: inf.db}
		eventStore = evstore.NewPostgres(inf.db)
		identities = identitystore.NewPostgres(inf.db)
		access = adminstore.NewPostgres(inf.db)
		health["postgres"] = inf.db.PingContext
	}
	if inf.redis != nil {
		health["redis"] = inf.redis.Health
	}

	var ledger proofservice.Ledger
	switch cfg.LedgerBackend {
	case config.LedgerPostgres:
		ledger = proofstore.NewPostgres(inf.db)
	case config.LedgerRedis:
		ledger = proofstore.NewRedis(inf.redis.Client)
		if inf.db != nil {
			log.Warn("redis ledger with postgres event log: ledger writes and event appends are not atomic")
		}
	default:
		ledger = proofstore.NewInMemory()
	}

	var trl authservice.RevocationList
	switch {
	case inf.redis != nil:
		trl = revocation.NewRedisTRL(inf.redis.Client)
	case inf.db != nil:
		pgTRL := revocation.NewPostgresTRL(inf.db)
		app.workers["revocation-purge"] = func(ctx context.Context) error {
			return pgTRL.RunPurge(ctx, revocationPurgeInterval, log)
		}
		trl = pgTRL
	default:
		trl = revocation.NewInMemoryTRL()
	}

	evMetrics := evmetrics.New(reg)
	eventLog := events.NewLog(eventStore, events.WithLogger(log), events.WithMetrics(evMetrics))

	admin := adminservice.New(access, eventLog,
		adminservice.WithLogger(log),
		adminservice.WithTxRunner(runner),
	)
	if err := admin.Bootstrap(ctx, cfg.Admin); err != nil {
		return nil, fmt.Errorf("bootstrap admin: %w", err)
	}

	inputVerifier, err := buildInputVerifier(cfg, log)
	if err != nil {
		return nil, err
	}
	identity := identityservice.New(identities, inputVerifier, eventLog,
		identityservice.WithLogger(log),
		identityservice.WithMetrics(identitymetrics.New(reg)),
		identityservice.WithTxRunner(runner),
	)

	oracleSigners, err := loadSigners(cfg.Oracle.Keys)
	if err != nil {
		return nil, err
	}
	quorum, err := buildQuorum(cfg, oracleSigners)
	if err != nil {
		return nil, err
	}
	signingDomain := kms.DefaultDomain(cfg.KMS.ChainID, cfg.KMS.VerifyingContract)

	proofs := proofservice.New(ledger, identity, kms.NewVerifier(quorum, signingDomain), eventLog,
		proofservice.WithLogger(log),
		proofservice.WithMetrics(proofmetrics.New(reg)),
		proofservice.WithTxRunner(runner),
		proofservice.WithStaleAfter(cfg.ProofStaleAfter),
		proofservice.WithAdminChecker(admin),
		proofservice.WithTracerProvider(otel.GetTracerProvider()),
	)

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, tokenIssuer, tokenAudience)
	auth := authservice.New(jwtService, trl, cfg.TokenTTL, authservice.WithLogger(log))

	if inf.kafka != nil {
		health["kafka"] = inf.kafka.Ping
		worker := relay.NewWorker(eventStore, inf.kafka,
			relay.WithLogger(log),
			relay.WithMetrics(evMetrics),
			relay.WithBreaker(circuit.New("kafka")),
		)
		app.workers["event-relay"] = worker.Run
	}

	if cfg.Oracle.DevMode {
		cipher, err := oracle.NewDevCipher([]byte(cfg.Oracle.CipherKey))
		if err != nil {
			return nil, fmt.Errorf("oracle cipher: %w", err)
		}
		relayer := oracle.New(eventLog, identity, admin, proofs, oracle.NewDevDecryptor(cipher), oracleSigners, signingDomain,
			oracle.WithLogger(log),
		)
		app.workers["oracle"] = relayer.Run
		log.Warn("development oracle enabled; ciphertexts are not confidential")
	}

	var buckets rlmiddleware.BucketStore = bucket.NewInMemoryBucketStore()
	if inf.redis != nil {
		buckets = bucket.NewRedisBucketStore(inf.redis.Client)
	}
	limiter := rlmiddleware.New(buckets, map[rlmodels.EndpointClass]rlmodels.Limit{
		rlmodels.ClassAuth:  {Requests: cfg.RateLimit.Auth, Window: cfg.RateLimit.Window},
		rlmodels.ClassWrite: {Requests: cfg.RateLimit.Write, Window: cfg.RateLimit.Window},
		rlmodels.ClassRead:  {Requests: cfg.RateLimit.Read, Window: cfg.RateLimit.Window},
	}, rlmiddleware.WithLogger(log), rlmiddleware.WithMetrics(rlmetrics.New(reg)))

	authH := authhandler.New(auth, log)
	identityH := identityhandler.New(identity, log)
	proofH := proofhandler.New(proofs, log)
	adminH := adminhandler.New(admin, log)

	app.router = httptransport.NewRouter(httptransport.Config{
		Logger:      log,
		Metrics:     platformmetrics.New(reg),
		Validator:   jwttoken.NewJWTServiceAdapter(jwtService),
		Revocations: auth,
		Public: []httptransport.PublicRoutes{
			authH, identityH, proofH, adminH, eventshandler.New(eventLog),
		},
		Protected: []httptransport.ProtectedRoutes{
			authH, identityH, proofH, adminH,
		},
		Health:    health,
		RateLimit: limiter.Handler,
	})
	return app, nil
}

// connect opens the configured backing services and migrates the schema.
func connect(ctx context.Context, cfg config.Server, log *slog.Logger, app *application) (infra, error) {
	var inf infra

	if cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return inf, fmt.Errorf("open postgres: %w", err)
		}
		app.onClose("postgres", db.Close)
		if err := postgres.Migrate(ctx, db); err != nil {
			return inf, fmt.Errorf("migrate postgres: %w", err)
		}
		inf.db = db
		log.Info("postgres connected")
	}

	rc, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		return inf, fmt.Errorf("open redis: %w", err)
	}
	if rc != nil {
		app.onClose("redis", rc.Close)
		inf.redis = rc
		log.Info("redis connected")
	}

	if len(cfg.Kafka.Brokers) > 0 {
		pub, err := kafka.New(cfg.Kafka.Brokers, cfg.Kafka.Topic, []kafka.Option{kafka.WithLogger(log)})
		if err != nil {
			return inf, fmt.Errorf("open kafka: %w", err)
		}
		app.onClose("kafka", func() error { pub.Close(); return nil })
		if err := pub.EnsureTopic(ctx, kafkaPartitions, kafkaReplication); err != nil {
			return inf, fmt.Errorf("ensure kafka topic: %w", err)
		}
		inf.kafka = pub
		log.Info("kafka sink enabled", "topic", cfg.Kafka.Topic)
	}
	return inf, nil
}

func loadSigners(keys []string) ([]*kms.Signer, error) {
	signers := make([]*kms.Signer, 0, len(keys))
	for i, key := range keys {
		s, err := kms.NewSigner(key)
		if err != nil {
			return nil, fmt.Errorf("ORACLE_KEYS[%d]: %w", i, err)
		}
		signers = append(signers, s)
	}
	return signers, nil
}

// buildQuorum uses the configured KMS signers. Without them the development
// oracle's own keys form the quorum.
func buildQuorum(cfg config.Server, oracleSigners []*kms.Signer) (*kms.Quorum, error) {
	if len(cfg.KMS.Signers) > 0 {
		return kms.NewQuorum(cfg.KMS.Signers, cfg.KMS.Threshold)
	}
	addrs := make([]domain.Address, len(oracleSigners))
	for i, s := range oracleSigners {
		addrs[i] = s.Address()
	}
	return kms.NewQuorum(addrs, cfg.KMS.Threshold)
}

// buildInputVerifier skips input proof checks only for the development oracle.
func buildInputVerifier(cfg config.Server, log *slog.Logger) (identityservice.CiphertextVerifier, error) {
	if !cfg.InputVerifier.IsZero() {
		return verifier.NewSignedInputVerifier(cfg.InputVerifier), nil
	}
	if !cfg.Oracle.DevMode {
		return nil, errors.New("INPUT_VERIFIER_ADDRESS is required unless ORACLE_DEV_MODE=true")
	}
	log.Warn("INPUT_VERIFIER_ADDRESS not set; ciphertext input proofs are not checked")
	return verifier.AllowAllVerifier{}, nil
}
