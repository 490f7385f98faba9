package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Pranay-Prat/football-lineup-maker/internal/config"
	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/lineup"
	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/user"
	"github.com/Pranay-Prat/football-lineup-maker/internal/infrastructure/account"
	"github.com/Pranay-Prat/football-lineup-maker/internal/infrastructure/repository/cache"
	"github.com/Pranay-Prat/football-lineup-maker/internal/infrastructure/repository/memory"
	"github.com/Pranay-Prat/football-lineup-maker/internal/infrastructure/repository/postgres"
	"github.com/Pranay-Prat/football-lineup-maker/internal/interfaces/httpapi"
	idgen "github.com/Pranay-Prat/football-lineup-maker/internal/platform/id"
	"github.com/Pranay-Prat/football-lineup-maker/internal/platform/logging"
	"github.com/Pranay-Prat/football-lineup-maker/internal/platform/resilience"
	"github.com/Pranay-Prat/football-lineup-maker/internal/share"
	"github.com/Pranay-Prat/football-lineup-maker/internal/usecase"
)

// NewHTTPServer wires repositories, services and the router. The returned
// cleanup func releases storage and must be called after the server stops.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	lineupRepo, userRepo, cleanup, err := newRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	ids := idgen.NewUUIDGenerator()
	decoder := share.NewDecoder(logger.Named("share"), share.Limits{
		MaxTokenLength:  cfg.ShareMaxTokenLength,
		MaxPayloadBytes: cfg.ShareMaxPayloadBytes,
	})

	shareSvc := usecase.NewShareService(decoder, cfg.ShareMaxTokenLength, logger)
	lineupSvc := usecase.NewLineupService(lineupRepo, userRepo, ids, cfg.ShareWorkerCount, logger)
	accountSvc := usecase.NewAccountService(userRepo, lineupRepo, ids, logger)

	accountClient := account.NewClient(
		&http.Client{Timeout: cfg.AccountTimeout},
		account.ClientConfig{
			BaseURL:        cfg.AccountBaseURL,
			IntrospectPath: cfg.AccountIntrospectPath,
			AdminKey:       cfg.AccountAdminKey,
			CacheTTL:       cfg.AccountCacheTTL,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.AccountCircuitEnabled,
				FailureThreshold: cfg.AccountCircuitFailureCount,
				OpenTimeout:      cfg.AccountCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AccountCircuitHalfOpenMaxReq,
			},
		},
		logger.Named("account"),
	)

	handler := httpapi.NewHandler(shareSvc, lineupSvc, accountSvc, cfg.PublicBaseURL, logger)
	router := httpapi.NewRouter(handler, accountClient, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		WebhookToken:       cfg.WebhookToken,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, cleanup, nil
}

func newRepositories(cfg config.Config, logger *logging.Logger) (lineup.Repository, user.Repository, func() error, error) {
	var (
		lineupRepo lineup.Repository
		userRepo   user.Repository
		cleanup    = func() error { return nil }
	)

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(context.Background(), cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		lineupRepo = postgres.NewLineupRepository(db)
		userRepo = postgres.NewUserRepository(db)
		cleanup = db.Close
		logger.Info("storage ready", "driver", config.StoragePostgres, "db_name", dbNameFromURL(cfg.DBURL))
	default:
		lineupRepo = memory.NewSeededLineupRepository(memory.SeedLineups())
		userRepo = memory.NewUserRepository(memory.SeedUsers())
		logger.Info("storage ready", "driver", config.StorageMemory, "demo_user", memory.DemoUserExternalID)
	}

	if cfg.CacheEnabled {
		lineupRepo = cache.NewLineupRepository(lineupRepo, cfg.CacheTTL)
		userRepo = cache.NewUserRepository(userRepo, cfg.CacheTTL)
	}

	return lineupRepo, userRepo, cleanup, nil
}
