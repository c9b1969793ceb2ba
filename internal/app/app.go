package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/quiniela/internal/config"
	"github.com/riskibarqy/quiniela/internal/domain/entry"
	"github.com/riskibarqy/quiniela/internal/domain/team"
	"github.com/riskibarqy/quiniela/internal/domain/week"
	cacherepo "github.com/riskibarqy/quiniela/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/quiniela/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/quiniela/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/quiniela/internal/infrastructure/scheduler"
	"github.com/riskibarqy/quiniela/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/quiniela/internal/platform/cache"
	idgen "github.com/riskibarqy/quiniela/internal/platform/id"
	"github.com/riskibarqy/quiniela/internal/platform/logging"
	"github.com/riskibarqy/quiniela/internal/platform/resilience"
	"github.com/riskibarqy/quiniela/internal/usecase"
)

// App owns the HTTP server, the background jobs and the database handle.
type App struct {
	server *http.Server
	jobs   *scheduler.Scheduler
	db     *sqlx.DB
	logger *logging.Logger
}

type repositories struct {
	weeks   week.Repository
	entries entry.Repository
	db      *sqlx.DB
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, crerr.New("http server addr cannot be empty")
	}

	logos := team.DefaultCatalog()
	repos, err := newRepositories(ctx, cfg, logos, logger)
	if err != nil {
		return nil, err
	}

	locks := &resilience.KeyedMutex{}
	ids := idgen.NewUUIDGenerator()

	scoreboardSvc := usecase.NewScoreboardService(repos.weeks, repos.entries, locks, cfg.RecalcWorkers, logger)
	weekSvc := usecase.NewWeekService(repos.weeks, ids, logos, scoreboardSvc, locks, usecase.WeekConfig{
		DefaultPrice:    cfg.PoolDefaultPrice,
		DefaultAdminFee: cfg.PoolDefaultAdminFee,
		Location:        cfg.PoolLocation,
	}, logger)
	entrySvc := usecase.NewEntryService(repos.weeks, repos.entries, ids, locks, logger)

	jobs, err := scheduler.New(scheduler.Config{
		Location:           cfg.PoolLocation,
		WeekCloserInterval: cfg.WeekCloserInterval,
		ScoreRefreshAt:     cfg.ScoreRefreshHour,
		Breaker:            resilience.DefaultCircuitBreakerConfig(),
	}, weekSvc, scoreboardSvc, logger)
	if err != nil {
		closeDB(repos.db, logger)
		return nil, err
	}

	handler := httpapi.NewHandler(weekSvc, entrySvc, scoreboardSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminToken)

	return &App{
		server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		jobs:   jobs,
		db:     repos.db,
		logger: logger,
	}, nil
}

func newRepositories(ctx context.Context, cfg config.Config, logos *team.Catalog, logger *logging.Logger) (repositories, error) {
	var out repositories
	if cfg.UsesDatabase() {
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		out = repositories{
			weeks:   postgres.NewWeekRepository(db),
			entries: postgres.NewEntryRepository(db),
			db:      db,
		}
		logger.Info("repositories ready", "backend", "postgres", "db_name", dbNameFromURL(cfg.DBURL))
	} else {
		location := cfg.PoolLocation
		if location == nil {
			location = time.UTC
		}
		out = repositories{
			weeks:   memory.NewWeekRepository(memory.SeedWeeks(time.Now().In(location), logos)),
			entries: memory.NewEntryRepository(),
		}
		logger.Warn("repositories ready", "backend", "memory", "reason", "DB_URL empty")
	}

	if cfg.CacheEnabled {
		out.weeks = cacherepo.NewWeekRepository(out.weeks, basecache.NewStore(cfg.CacheTTL))
	}
	return out, nil
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run starts the background jobs and serves HTTP until ctx is cancelled or
// the listener fails.
func (a *App) Run(ctx context.Context) error {
	if err := a.jobs.Start(); err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-serveErr:
		return crerr.Wrap(err, "http server failed")
	}
}

// Shutdown drains HTTP requests before stopping jobs and closing the database.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, crerr.Wrap(err, "shutdown http server"))
	}
	if err := a.jobs.Stop(); err != nil {
		errs = append(errs, err)
	}
	closeDB(a.db, a.logger)

	a.logger.Info("app stopped")
	return errors.Join(errs...)
}

func closeDB(db *sqlx.DB, logger *logging.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Warn("close database failed", "error", err)
	}
}
