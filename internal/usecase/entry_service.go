package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/quiniela/internal/domain/entry"
	"github.com/riskibarqy/quiniela/internal/domain/match"
	"github.com/riskibarqy/quiniela/internal/domain/week"
	"github.com/riskibarqy/quiniela/internal/platform/id"
	"github.com/riskibarqy/quiniela/internal/platform/logging"
	"github.com/riskibarqy/quiniela/internal/platform/resilience"
)

type SubmitEntryInput struct {
	WeekID               string
	ParticipantName      string
	TotalGoalsPrediction int
	Picks                []entry.Pick
}

type EntryService struct {
	weekRepo  week.Repository
	entryRepo entry.Repository
	idGen     id.Generator
	locks     *resilience.KeyedMutex
	now       func() time.Time
	logger    *logging.Logger
}

func NewEntryService(
	weekRepo week.Repository,
	entryRepo entry.Repository,
	idGen id.Generator,
	locks *resilience.KeyedMutex,
	logger *logging.Logger,
) *EntryService {
	if locks == nil {
		locks = &resilience.KeyedMutex{}
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &EntryService{
		weekRepo:  weekRepo,
		entryRepo: entryRepo,
		idGen:     idGen,
		locks:     locks,
		now:       time.Now,
		logger:    logger,
	}
}

// Submit stores a participant's picks. Admin submissions skip the deadline check.
func (s *EntryService) Submit(ctx context.Context, input SubmitEntryInput, asAdmin bool) (entry.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.Submit")
	defer span.End()

	name := strings.TrimSpace(input.ParticipantName)
	if name == "" {
		return entry.Entry{}, fmt.Errorf("%w: participant name is required", ErrInvalidInput)
	}
	if input.TotalGoalsPrediction < 0 {
		return entry.Entry{}, fmt.Errorf("%w: total goals prediction must be >= 0", ErrInvalidInput)
	}

	item, err := findWeek(ctx, s.weekRepo, input.WeekID)
	if err != nil {
		return entry.Entry{}, err
	}

	now := s.now()
	if !asAdmin && !item.AcceptsEntries(now) {
		return entry.Entry{}, fmt.Errorf("%w: week=%s status=%s close_date=%s",
			ErrWeekClosed, item.ID, item.Status, item.CloseDate.Format(time.RFC3339))
	}

	picks := make([]entry.Pick, 0, len(input.Picks))
	for _, pick := range input.Picks {
		selection, ok := match.ParseOutcome(string(pick.Selection))
		if !ok {
			selection = pick.Selection
		}
		picks = append(picks, entry.Pick{
			MatchID:   strings.TrimSpace(pick.MatchID),
			Selection: selection,
		})
	}
	if err := entry.ValidatePicks(picks, item.MatchIDs()); err != nil {
		return entry.Entry{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Serialize the duplicate-name check with the insert for this week.
	unlock := s.locks.Lock("entries:" + item.ID)
	defer unlock()

	_, exists, err := s.entryRepo.GetByWeekAndName(ctx, item.ID, name)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("get entry by name: %w", err)
	}
	if exists {
		return entry.Entry{}, fmt.Errorf("%w: name %q is already taken for this week", ErrConflict, name)
	}

	entryID, err := s.idGen.NewID()
	if err != nil {
		return entry.Entry{}, fmt.Errorf("generate entry id: %w", err)
	}

	created := entry.Entry{
		ID:                   entryID,
		WeekID:               item.ID,
		ParticipantName:      name,
		TotalGoalsPrediction: input.TotalGoalsPrediction,
		Picks:                picks,
		// Admin entries start PENDING too; payment is settled outside the service.
		PaymentStatus: entry.PaymentPending,
		SubmittedAt:   now.UTC(),
		Hits:          []string{},
	}
	if err := s.entryRepo.Create(ctx, created); err != nil {
		if errors.Is(err, entry.ErrDuplicateName) {
			return entry.Entry{}, fmt.Errorf("%w: name %q is already taken for this week", ErrConflict, name)
		}
		return entry.Entry{}, fmt.Errorf("create entry: %w", err)
	}

	s.logger.InfoContext(ctx, "entry submitted",
		"event", "entry.submitted",
		"week_id", item.ID,
		"entry_id", created.ID,
		"picks", len(created.Picks),
		"admin", asAdmin,
	)
	return created, nil
}

// ListByWeek returns a week's entries in submission order.
func (s *EntryService) ListByWeek(ctx context.Context, weekRef string) ([]entry.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.ListByWeek")
	defer span.End()

	item, err := findWeek(ctx, s.weekRepo, weekRef)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ListByWeek(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list entries by week: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SubmittedAt.Before(entries[j].SubmittedAt)
	})
	return entries, nil
}
