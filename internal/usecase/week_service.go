package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/quiniela/internal/domain/match"
	"github.com/riskibarqy/quiniela/internal/domain/schedule"
	"github.com/riskibarqy/quiniela/internal/domain/team"
	"github.com/riskibarqy/quiniela/internal/domain/week"
	"github.com/riskibarqy/quiniela/internal/platform/id"
	"github.com/riskibarqy/quiniela/internal/platform/logging"
	"github.com/riskibarqy/quiniela/internal/platform/resilience"
)

type WeekConfig struct {
	DefaultPrice    int64
	DefaultAdminFee int64
	// Location is where weekday names in pasted schedules are resolved.
	Location *time.Location
}

type ParsedMatch struct {
	match.Draft
	HomeLogo      string
	AwayLogo      string
	HomeShortName string
	AwayShortName string
}

type ParsedWeek struct {
	RawText string
	Matches []ParsedMatch
}

type CreateWeekInput struct {
	Name     string
	Matches  []match.Draft
	Price    *int64
	AdminFee *int64
}

type RecordResultInput struct {
	WeekID    string
	MatchID   string
	HomeScore int
	AwayScore int
}

type weekScoreRecalculator interface {
	RecalculateWeek(ctx context.Context, weekID string) (int, error)
}

type WeekService struct {
	weekRepo week.Repository
	idGen    id.Generator
	logos    *team.Catalog
	scores   weekScoreRecalculator
	locks    *resilience.KeyedMutex
	cfg      WeekConfig
	now      func() time.Time
	logger   *logging.Logger
}

func NewWeekService(
	weekRepo week.Repository,
	idGen id.Generator,
	logos *team.Catalog,
	scores weekScoreRecalculator,
	locks *resilience.KeyedMutex,
	cfg WeekConfig,
	logger *logging.Logger,
) *WeekService {
	if logos == nil {
		logos = team.DefaultCatalog()
	}
	if locks == nil {
		locks = &resilience.KeyedMutex{}
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &WeekService{
		weekRepo: weekRepo,
		idGen:    idGen,
		logos:    logos,
		scores:   scores,
		locks:    locks,
		cfg:      cfg,
		now:      time.Now,
		logger:   logger,
	}
}

// ParseWeekText previews the drafts a pasted schedule would produce.
func (s *WeekService) ParseWeekText(ctx context.Context, text string) (ParsedWeek, error) {
	_, span := startUsecaseSpan(ctx, "usecase.WeekService.ParseWeekText")
	defer span.End()

	if strings.TrimSpace(text) == "" {
		return ParsedWeek{}, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}

	drafts := schedule.ParseText(text, s.now().In(s.cfg.Location))
	out := ParsedWeek{
		RawText: text,
		Matches: make([]ParsedMatch, 0, len(drafts)),
	}
	for _, draft := range drafts {
		homeLogo, _ := s.logos.Logo(draft.HomeTeam)
		awayLogo, _ := s.logos.Logo(draft.AwayTeam)
		out.Matches = append(out.Matches, ParsedMatch{
			Draft:         draft,
			HomeLogo:      homeLogo,
			AwayLogo:      awayLogo,
			HomeShortName: s.logos.ShortName(draft.HomeTeam),
			AwayShortName: s.logos.ShortName(draft.AwayTeam),
		})
	}

	return out, nil
}

func (s *WeekService) CreateWeek(ctx context.Context, input CreateWeekInput) (week.Week, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekService.CreateWeek")
	defer span.End()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return week.Week{}, fmt.Errorf("%w: week name is required", ErrInvalidInput)
	}

	price := s.cfg.DefaultPrice
	if input.Price != nil {
		price = *input.Price
	}
	adminFee := s.cfg.DefaultAdminFee
	if input.AdminFee != nil {
		adminFee = *input.AdminFee
	}
	if price < 0 || adminFee < 0 {
		return week.Week{}, fmt.Errorf("%w: price and admin fee must be >= 0", ErrInvalidInput)
	}

	drafts := make([]match.Draft, 0, len(input.Matches))
	for idx, draft := range input.Matches {
		normalized, err := normalizeDraft(draft)
		if err != nil {
			return week.Week{}, fmt.Errorf("%w: match %d: %v", ErrInvalidInput, idx+1, err)
		}
		drafts = append(drafts, normalized)
	}

	weekID, err := s.idGen.NewID()
	if err != nil {
		return week.Week{}, fmt.Errorf("generate week id: %w", err)
	}

	slug := week.SlugFor(name)
	if slug == "" {
		slug = weekID
	}
	_, exists, err := s.weekRepo.GetBySlug(ctx, slug)
	if err != nil {
		return week.Week{}, fmt.Errorf("get week by slug: %w", err)
	}
	if exists {
		return week.Week{}, fmt.Errorf("%w: week slug=%s", ErrConflict, slug)
	}

	now := s.now().UTC()
	matches := make([]match.Match, 0, len(drafts))
	for _, draft := range drafts {
		matchID, err := s.idGen.NewID()
		if err != nil {
			return week.Week{}, fmt.Errorf("generate match id: %w", err)
		}
		item := match.FromDraft(matchID, weekID, draft)
		item.HomeLogo, _ = s.logos.Logo(item.HomeTeam)
		item.AwayLogo, _ = s.logos.Logo(item.AwayTeam)
		matches = append(matches, item)
	}

	item := week.Week{
		ID:        weekID,
		Name:      name,
		Slug:      slug,
		Status:    week.StatusOpen,
		CloseDate: week.EarliestKickoff(matches, now),
		Price:     price,
		AdminFee:  adminFee,
		CreatedAt: now,
		Matches:   matches,
	}
	if err := s.weekRepo.Create(ctx, item); err != nil {
		if errors.Is(err, week.ErrDuplicateSlug) {
			return week.Week{}, fmt.Errorf("%w: week slug=%s", ErrConflict, slug)
		}
		return week.Week{}, fmt.Errorf("create week: %w", err)
	}

	s.logger.InfoContext(ctx, "week created",
		"event", "week.created",
		"week_id", item.ID,
		"slug", item.Slug,
		"matches", len(item.Matches),
		"close_date", item.CloseDate,
	)
	return item, nil
}

// List returns weeks newest first.
func (s *WeekService) List(ctx context.Context) ([]week.Week, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekService.List")
	defer span.End()

	items, err := s.weekRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list weeks: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// Current returns the most recently created week.
func (s *WeekService) Current(ctx context.Context) (week.Week, error) {
	items, err := s.List(ctx)
	if err != nil {
		return week.Week{}, err
	}
	if len(items) == 0 {
		return week.Week{}, fmt.Errorf("%w: no weeks published yet", ErrNotFound)
	}
	return items[0], nil
}

// Get resolves a week by id, falling back to its slug.
func (s *WeekService) Get(ctx context.Context, ref string) (week.Week, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekService.Get")
	defer span.End()

	return findWeek(ctx, s.weekRepo, ref)
}

// RecordResult stores a final score, derives the outcome and refreshes cached entry scores.
func (s *WeekService) RecordResult(ctx context.Context, input RecordResultInput) (week.Week, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekService.RecordResult")
	defer span.End()

	weekID := strings.TrimSpace(input.WeekID)
	matchID := strings.TrimSpace(input.MatchID)
	if weekID == "" || matchID == "" {
		return week.Week{}, fmt.Errorf("%w: week id and match id are required", ErrInvalidInput)
	}

	updated, err := s.applyResult(ctx, weekID, matchID, input.HomeScore, input.AwayScore)
	if err != nil {
		return week.Week{}, err
	}

	s.logger.InfoContext(ctx, "match result recorded",
		"event", "match.result_recorded",
		"week_id", updated.ID,
		"match_id", matchID,
		"home_score", input.HomeScore,
		"away_score", input.AwayScore,
		"week_status", updated.Status,
	)

	if s.scores != nil {
		if _, err := s.scores.RecalculateWeek(ctx, updated.ID); err != nil {
			s.logger.WarnContext(ctx, "recalculate entry scores failed",
				"event", "scores.recalculate_failed",
				"week_id", updated.ID,
				"error", err,
			)
		}
	}

	return updated, nil
}

func (s *WeekService) applyResult(ctx context.Context, weekRef, matchID string, homeScore, awayScore int) (week.Week, error) {
	current, err := findWeek(ctx, s.weekRepo, weekRef)
	if err != nil {
		return week.Week{}, err
	}

	unlock := s.locks.Lock(current.ID)
	defer unlock()

	// Reload under the lock so concurrent results on the same week do not overwrite each other.
	current, exists, err := s.weekRepo.GetByID(ctx, current.ID)
	if err != nil {
		return week.Week{}, fmt.Errorf("get week: %w", err)
	}
	if !exists {
		return week.Week{}, fmt.Errorf("%w: week=%s", ErrNotFound, weekRef)
	}

	idx, ok := current.FindMatch(matchID)
	if !ok {
		return week.Week{}, fmt.Errorf("%w: match=%s week=%s", ErrNotFound, matchID, current.ID)
	}

	updated := current.Clone()
	if err := updated.Matches[idx].Finish(homeScore, awayScore); err != nil {
		if errors.Is(err, match.ErrNegativeScore) {
			return week.Week{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return week.Week{}, fmt.Errorf("finish match: %w", err)
	}
	if updated.AllMatchesSettled() {
		updated.Status = week.StatusFinished
	}

	if err := s.weekRepo.Update(ctx, updated); err != nil {
		return week.Week{}, fmt.Errorf("update week: %w", err)
	}
	return updated, nil
}

// Close stops accepting entries for an OPEN week. Finished weeks are left as they are.
func (s *WeekService) Close(ctx context.Context, weekRef string) (week.Week, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekService.Close")
	defer span.End()

	current, err := findWeek(ctx, s.weekRepo, weekRef)
	if err != nil {
		return week.Week{}, err
	}

	closed, changed, err := s.closeWeek(ctx, current.ID)
	if err != nil {
		return week.Week{}, err
	}
	if changed {
		s.logger.InfoContext(ctx, "week closed", "event", "week.closed", "week_id", closed.ID, "trigger", "admin")
	}
	return closed, nil
}

// CloseExpiredWeeks moves every OPEN week past its close date to CLOSED.
func (s *WeekService) CloseExpiredWeeks(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekService.CloseExpiredWeeks")
	defer span.End()

	items, err := s.weekRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list weeks: %w", err)
	}

	now := s.now()
	closedCount := 0
	for _, item := range items {
		if item.Status != week.StatusOpen || !now.After(item.CloseDate) {
			continue
		}
		if _, changed, err := s.closeWeek(ctx, item.ID); err != nil {
			return closedCount, err
		} else if changed {
			closedCount++
			s.logger.InfoContext(ctx, "week closed", "event", "week.closed", "week_id", item.ID, "trigger", "deadline")
		}
	}

	return closedCount, nil
}

func (s *WeekService) closeWeek(ctx context.Context, weekID string) (week.Week, bool, error) {
	unlock := s.locks.Lock(weekID)
	defer unlock()

	current, exists, err := s.weekRepo.GetByID(ctx, weekID)
	if err != nil {
		return week.Week{}, false, fmt.Errorf("get week: %w", err)
	}
	if !exists {
		return week.Week{}, false, fmt.Errorf("%w: week=%s", ErrNotFound, weekID)
	}
	if current.Status != week.StatusOpen {
		return current, false, nil
	}

	current.Status = week.StatusClosed
	if err := s.weekRepo.Update(ctx, current); err != nil {
		return week.Week{}, false, fmt.Errorf("update week: %w", err)
	}
	return current, true, nil
}

func findWeek(ctx context.Context, repo week.Repository, ref string) (week.Week, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return week.Week{}, fmt.Errorf("%w: week id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, ref)
	if err != nil {
		return week.Week{}, fmt.Errorf("get week: %w", err)
	}
	if exists {
		return item, nil
	}

	item, exists, err = repo.GetBySlug(ctx, ref)
	if err != nil {
		return week.Week{}, fmt.Errorf("get week by slug: %w", err)
	}
	if !exists {
		return week.Week{}, fmt.Errorf("%w: week=%s", ErrNotFound, ref)
	}
	return item, nil
}

// normalizeDraft accepts drafts echoed back by clients, which may carry only
// one of date or timestamp.
func normalizeDraft(d match.Draft) (match.Draft, error) {
	d.HomeTeam = strings.TrimSpace(d.HomeTeam)
	d.AwayTeam = strings.TrimSpace(d.AwayTeam)
	if d.HomeTeam == "" || d.AwayTeam == "" {
		return match.Draft{}, fmt.Errorf("home and away teams are required")
	}

	if d.Timestamp == 0 {
		date := strings.TrimSpace(d.Date)
		if date == "" {
			return match.Draft{}, fmt.Errorf("date or timestamp is required")
		}
		parsed, err := time.Parse(time.RFC3339Nano, date)
		if err != nil {
			return match.Draft{}, fmt.Errorf("parse date %q: %w", date, err)
		}
		d.Timestamp = parsed.UnixMilli()
	}
	if d.HomePosition != nil && *d.HomePosition < 0 || d.AwayPosition != nil && *d.AwayPosition < 0 {
		return match.Draft{}, fmt.Errorf("positions must be >= 0")
	}

	d.Date = time.UnixMilli(d.Timestamp).UTC().Format(schedule.DateLayout)
	d.Status = match.StatusScheduled
	return d, nil
}
