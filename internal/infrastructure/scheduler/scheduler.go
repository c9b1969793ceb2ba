package scheduler

import (
	"context"
	"errors"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-co-op/gocron/v2"
	"github.com/riskibarqy/quiniela/internal/platform/logging"
	"github.com/riskibarqy/quiniela/internal/platform/resilience"
	"github.com/riskibarqy/quiniela/internal/usecase"
)

const (
	weekCloserJobName   = "week-closer"
	scoreRefreshJobName = "score-refresh"
	jobTimeout          = 2 * time.Minute
)

type weekCloser interface {
	CloseExpiredWeeks(ctx context.Context) (int, error)
}

type scoreRecalculator interface {
	RecalculateAll(ctx context.Context) (usecase.RecalculateResult, error)
}

type Config struct {
	Location           *time.Location
	WeekCloserInterval time.Duration
	// ScoreRefreshAt is the local hour of the nightly full rescore. Negative disables it.
	ScoreRefreshAt int
	// Breaker pauses a job after repeated failures.
	Breaker resilience.CircuitBreakerConfig
}

// Scheduler runs the pool's background jobs.
type Scheduler struct {
	s      gocron.Scheduler
	cfg    Config
	weeks  weekCloser
	scores scoreRecalculator
	logger *logging.Logger

	closerBreaker  *resilience.CircuitBreaker
	refreshBreaker *resilience.CircuitBreaker
}

func New(cfg Config, weeks weekCloser, scores scoreRecalculator, logger *logging.Logger) (*Scheduler, error) {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.WeekCloserInterval <= 0 {
		cfg.WeekCloserInterval = time.Minute
	}
	if logger == nil {
		logger = logging.Default()
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(cfg.Location))
	if err != nil {
		return nil, crerr.Wrap(err, "create scheduler")
	}

	return &Scheduler{
		s:      s,
		cfg:    cfg,
		weeks:  weeks,
		scores: scores,
		logger: logger,

		closerBreaker:  resilience.NewCircuitBreaker(cfg.Breaker),
		refreshBreaker: resilience.NewCircuitBreaker(cfg.Breaker),
	}, nil
}

func (s *Scheduler) Start() error {
	_, err := s.s.NewJob(
		gocron.DurationJob(s.cfg.WeekCloserInterval),
		gocron.NewTask(s.closeExpiredWeeks),
		gocron.WithName(weekCloserJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return crerr.Wrap(err, "create week closer job")
	}

	if s.scores != nil && s.cfg.ScoreRefreshAt >= 0 && s.cfg.ScoreRefreshAt < 24 {
		_, err = s.s.NewJob(
			gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(s.cfg.ScoreRefreshAt), 0, 0))),
			gocron.NewTask(s.refreshScores),
			gocron.WithName(scoreRefreshJobName),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return crerr.Wrap(err, "create score refresh job")
		}
	}

	s.s.Start()
	s.logger.Info("scheduler started",
		"event", "scheduler.started",
		"week_closer_interval", s.cfg.WeekCloserInterval.String(),
		"location", s.cfg.Location.String(),
	)
	return nil
}

func (s *Scheduler) Stop() error {
	if err := s.s.Shutdown(); err != nil {
		return crerr.Wrap(err, "shutdown scheduler")
	}
	return nil
}

func (s *Scheduler) closeExpiredWeeks() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	var closed int
	err := s.closerBreaker.Execute(func() error {
		var err error
		closed, err = s.weeks.CloseExpiredWeeks(ctx)
		return err
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		s.logger.WarnContext(ctx, "week closer skipped", "event", "job.skipped", "job", weekCloserJobName, "breaker", s.closerBreaker.State())
		return
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "close expired weeks failed", "event", "job.failed", "job", weekCloserJobName, "error", err)
		return
	}
	if closed > 0 {
		s.logger.InfoContext(ctx, "expired weeks closed", "event", "job.completed", "job", weekCloserJobName, "closed", closed)
	}
}

func (s *Scheduler) refreshScores() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	var result usecase.RecalculateResult
	err := s.refreshBreaker.Execute(func() error {
		var err error
		result, err = s.scores.RecalculateAll(ctx)
		return err
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		s.logger.WarnContext(ctx, "score refresh skipped", "event", "job.skipped", "job", scoreRefreshJobName, "breaker", s.refreshBreaker.State())
		return
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "score refresh failed", "event", "job.failed", "job", scoreRefreshJobName, "error", err)
		return
	}
	s.logger.InfoContext(ctx, "scores refreshed",
		"event", "job.completed",
		"job", scoreRefreshJobName,
		"weeks", result.WeekCount,
		"failed", result.FailedCount,
	)
}
