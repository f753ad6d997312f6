package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/fpltools/fpl-tournament/external/fplapi"
	"github.com/fpltools/fpl-tournament/internal/config"
	"github.com/fpltools/fpl-tournament/internal/domain/tournament"
	"github.com/fpltools/fpl-tournament/internal/infrastructure/repository/cached"
	"github.com/fpltools/fpl-tournament/internal/infrastructure/repository/postgres"
	"github.com/fpltools/fpl-tournament/internal/interfaces/httpapi"
	"github.com/fpltools/fpl-tournament/internal/platform/cache"
	"github.com/fpltools/fpl-tournament/internal/platform/logging"
	"github.com/fpltools/fpl-tournament/internal/platform/resilience"
	"github.com/fpltools/fpl-tournament/internal/usecase"
	"github.com/jmoiron/sqlx"
)

// Application bundles the HTTP server with the resources it owns.
type Application struct {
	Server *http.Server
	db     *sqlx.DB
}

func New(cfg config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	svcLogger := logging.Default()

	var tournamentRepo tournament.Repository = postgres.NewTournamentRepository(db)
	if cfg.CacheEnabled {
		tournamentRepo = cached.NewTournamentRepository(tournamentRepo, cache.NewStore(cfg.CacheTTL))
	}
	rosterRepo := postgres.NewTournamentEntryRepository(db)
	entryRepo := postgres.NewEntryRepository(db)
	entryEventRepo := postgres.NewEntryEventRepository(db)
	liveRepo := postgres.NewEventLiveRepository(db)
	playerRepo := postgres.NewPlayerRepository(db)
	leagueResultRepo := postgres.NewLeagueEventResultRepository(db)
	cupResultRepo := postgres.NewCupResultRepository(db)

	fplClient := fplapi.NewClient(fplapi.ClientConfig{
		BaseURL:    cfg.FPLAPIBaseURL,
		Timeout:    cfg.FPLAPITimeout,
		MaxRetries: cfg.FPLAPIMaxRetries,
		Logger:     svcLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FPLAPICircuitEnabled,
			FailureThreshold: cfg.FPLAPICircuitFailureCount,
			OpenTimeout:      cfg.FPLAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FPLAPICircuitHalfOpenMaxReq,
		},
	})

	eventResultSvc := usecase.NewEventResultService(
		fplClient,
		tournamentRepo,
		rosterRepo,
		entryRepo,
		entryEventRepo,
		liveRepo,
		playerRepo,
		leagueResultRepo,
		svcLogger,
	)
	cupResultSvc := usecase.NewCupResultService(
		fplClient,
		tournamentRepo,
		rosterRepo,
		cupResultRepo,
		svcLogger,
	)

	handler := httpapi.NewHandler(eventResultSvc, cupResultSvc, logger, cfg.SyncWorkerCount)
	router := httpapi.NewRouter(handler, logger, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		_ = db.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &Application{Server: server, db: db}, nil
}

func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
