package usecase

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/quiniela/internal/domain/entry"
	"github.com/riskibarqy/quiniela/internal/domain/scoring"
	"github.com/riskibarqy/quiniela/internal/domain/week"
	"github.com/riskibarqy/quiniela/internal/platform/logging"
	"github.com/riskibarqy/quiniela/internal/platform/resilience"
)

const maxRecalculateWorkers = 16

type Scoreboard struct {
	Week            week.Week
	Standings       []scoring.Standing
	TotalGoals      int
	FinishedMatches int
	TotalMatches    int
	Participants    int
	PrizePot        int64
	ComputedAt      time.Time
}

type RecalculateResult struct {
	WeekCount    int                     `json:"week_count"`
	EntryCount   int                     `json:"entry_count"`
	SuccessCount int                     `json:"success_count"`
	FailedCount  int                     `json:"failed_count"`
	WorkerCount  int                     `json:"worker_count"`
	Weeks        []RecalculateWeekResult `json:"weeks"`
}

type RecalculateWeekResult struct {
	WeekID     string `json:"week_id"`
	Entries    int    `json:"entries"`
	Status     string `json:"status"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

const (
	recalculateStatusSuccess = "success"
	recalculateStatusFailed  = "failed"
)

// ScoreboardService computes standings from the current match state and
// keeps the cached Score/Hits of stored entries in sync.
type ScoreboardService struct {
	weekRepo  week.Repository
	entryRepo entry.Repository
	locks     *resilience.KeyedMutex
	flight    resilience.SingleFlight
	workers   int
	now       func() time.Time
	logger    *logging.Logger
}

func NewScoreboardService(
	weekRepo week.Repository,
	entryRepo entry.Repository,
	locks *resilience.KeyedMutex,
	workers int,
	logger *logging.Logger,
) *ScoreboardService {
	if locks == nil {
		locks = &resilience.KeyedMutex{}
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoreboardService{
		weekRepo:  weekRepo,
		entryRepo: entryRepo,
		locks:     locks,
		workers:   workers,
		now:       time.Now,
		logger:    logger,
	}
}

// Get recomputes the scoreboard of a week. Concurrent requests for the same
// week share one computation.
func (s *ScoreboardService) Get(ctx context.Context, weekRef string) (Scoreboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreboardService.Get")
	defer span.End()

	item, err := findWeek(ctx, s.weekRepo, weekRef)
	if err != nil {
		return Scoreboard{}, err
	}

	// Shared by every caller of this key, so one caller cancelling must not fail the rest.
	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := s.flight.Do("scoreboard:"+item.ID, func() (any, error) {
		entries, err := s.entryRepo.ListByWeek(flightCtx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("list entries by week: %w", err)
		}
		return s.build(item, entries), nil
	})
	if err != nil {
		return Scoreboard{}, err
	}

	board, _ := v.(Scoreboard)
	return board, nil
}

func (s *ScoreboardService) build(item week.Week, entries []entry.Entry) Scoreboard {
	scored := scoring.ScoreAll(entries, item.Matches)
	totalGoals := scoring.ComputeWeekTotalGoals(item.Matches)
	sorted := scoring.SortLeaderboard(scored, totalGoals)

	finished := 0
	for _, m := range item.Matches {
		if m.IsFinished() {
			finished++
		}
	}

	return Scoreboard{
		Week:            item,
		Standings:       scoring.Rank(sorted, totalGoals),
		TotalGoals:      totalGoals,
		FinishedMatches: finished,
		TotalMatches:    len(item.Matches),
		Participants:    len(entries),
		PrizePot:        scoring.PrizePot(len(entries), item.Price, item.AdminFee),
		ComputedAt:      s.now().UTC(),
	}
}

// RecalculateWeek rescores every entry of a week and persists Score/Hits.
func (s *ScoreboardService) RecalculateWeek(ctx context.Context, weekID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreboardService.RecalculateWeek")
	defer span.End()

	unlock := s.locks.Lock(weekID)
	defer unlock()

	item, exists, err := s.weekRepo.GetByID(ctx, weekID)
	if err != nil {
		return 0, fmt.Errorf("get week: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: week=%s", ErrNotFound, weekID)
	}

	entries, err := s.entryRepo.ListByWeek(ctx, item.ID)
	if err != nil {
		return 0, fmt.Errorf("list entries by week: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	scored := scoring.ScoreAll(entries, item.Matches)
	if err := s.entryRepo.UpdateScores(ctx, item.ID, scored); err != nil {
		return 0, fmt.Errorf("update entry scores: %w", err)
	}

	s.logger.DebugContext(ctx, "entry scores recalculated",
		"event", "scores.recalculated",
		"week_id", item.ID,
		"entries", len(scored),
	)
	return len(scored), nil
}

// RecalculateAll rescores every week on a bounded worker pool.
func (s *ScoreboardService) RecalculateAll(ctx context.Context) (RecalculateResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreboardService.RecalculateAll")
	defer span.End()

	weeks, err := s.weekRepo.List(ctx)
	if err != nil {
		return RecalculateResult{}, fmt.Errorf("list weeks: %w", err)
	}

	workerCount := normalizeRecalculateWorkerCount(s.workers, len(weeks))
	result := RecalculateResult{
		WeekCount:   len(weeks),
		WorkerCount: workerCount,
		Weeks:       make([]RecalculateWeekResult, 0, len(weeks)),
	}
	if len(weeks) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecalculateResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	rows := make(chan RecalculateWeekResult, len(weeks))
	var entryCount atomic.Int32
	var workers sync.WaitGroup
	for _, item := range weeks {
		weekID := item.ID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RecalculateWeekResult{WeekID: weekID, Status: recalculateStatusSuccess}
			count, err := s.RecalculateWeek(ctx, weekID)
			if err != nil {
				row.Status = recalculateStatusFailed
				row.Message = err.Error()
			}
			row.Entries = count
			row.DurationMs = time.Since(start).Milliseconds()
			entryCount.Add(int32(count))
			rows <- row
		}); err != nil {
			workers.Done()
			return RecalculateResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		if row.Status == recalculateStatusSuccess {
			result.SuccessCount++
		} else {
			result.FailedCount++
		}
		result.Weeks = append(result.Weeks, row)
	}
	sort.SliceStable(result.Weeks, func(i, j int) bool {
		return result.Weeks[i].WeekID < result.Weeks[j].WeekID
	})
	result.EntryCount = int(entryCount.Load())

	s.logger.InfoContext(ctx, "scores recalculated",
		"event", "scores.recalculated_all",
		"weeks", result.WeekCount,
		"entries", result.EntryCount,
		"failed", result.FailedCount,
		"workers", workerCount,
	)
	return result, nil
}

func normalizeRecalculateWorkerCount(requested, tasks int) int {
	workers := requested
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > maxRecalculateWorkers {
		workers = maxRecalculateWorkers
	}
	if tasks > 0 && workers > tasks {
		workers = tasks
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
