package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/quiniela/internal/domain/entry"
	"github.com/riskibarqy/quiniela/internal/domain/match"
	"github.com/riskibarqy/quiniela/internal/domain/week"
	"github.com/riskibarqy/quiniela/internal/infrastructure/repository/memory"
	weekmock "github.com/riskibarqy/quiniela/internal/mocks/domain/week"
	"github.com/riskibarqy/quiniela/internal/platform/resilience"
	"github.com/stretchr/testify/mock"
)

// 2026-01-28 is a Wednesday.
var testNow = time.Date(2026, time.January, 28, 16, 0, 0, 0, time.UTC)

type sequenceIDs struct {
	mu   sync.Mutex
	next int
}

func (g *sequenceIDs) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%d", g.next), nil
}

type poolFixture struct {
	weeks      *memory.WeekRepository
	entries    *memory.EntryRepository
	weekSvc    *WeekService
	entrySvc   *EntryService
	scoreboard *ScoreboardService
}

func newPoolFixture(t *testing.T) *poolFixture {
	t.Helper()

	weeks := memory.NewWeekRepository(nil)
	entries := memory.NewEntryRepository()
	locks := &resilience.KeyedMutex{}
	ids := &sequenceIDs{}

	scoreboard := NewScoreboardService(weeks, entries, locks, 2, nil)
	weekSvc := NewWeekService(weeks, ids, nil, scoreboard, locks, WeekConfig{DefaultPrice: 50}, nil)
	entrySvc := NewEntryService(weeks, entries, ids, locks, nil)

	clock := func() time.Time { return testNow }
	scoreboard.now = clock
	weekSvc.now = clock
	entrySvc.now = clock

	return &poolFixture{
		weeks:      weeks,
		entries:    entries,
		weekSvc:    weekSvc,
		entrySvc:   entrySvc,
		scoreboard: scoreboard,
	}
}

func (f *poolFixture) createWeek(t *testing.T, name, text string) week.Week {
	t.Helper()

	parsed, err := f.weekSvc.ParseWeekText(context.Background(), text)
	if err != nil {
		t.Fatalf("parse week text: %v", err)
	}
	drafts := make([]match.Draft, 0, len(parsed.Matches))
	for _, item := range parsed.Matches {
		drafts = append(drafts, item.Draft)
	}

	created, err := f.weekSvc.CreateWeek(context.Background(), CreateWeekInput{Name: name, Matches: drafts})
	if err != nil {
		t.Fatalf("create week: %v", err)
	}
	return created
}

func TestWeekService_ParseWeekText_RequiresText(t *testing.T) {
	t.Parallel()

	f := newPoolFixture(t)
	_, err := f.weekSvc.ParseWeekText(context.Background(), "   \n ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestWeekService_ParseWeekText_UsesPoolLocation(t *testing.T) {
	t.Parallel()

	f := newPoolFixture(t)
	f.weekSvc.cfg.Location = time.FixedZone("CST", -6*60*60)

	parsed, err := f.weekSvc.ParseWeekText(context.Background(), "Puebla vs Toluca viernes 19:00 14 2\nnot a match")
	if err != nil {
		t.Fatalf("parse week text: %v", err)
	}
	if len(parsed.Matches) != 1 {
		t.Fatalf("unexpected match count: %d", len(parsed.Matches))
	}

	got := parsed.Matches[0]
	if got.Date != "2026-01-31T01:00:00.000Z" {
		t.Fatalf("unexpected date: %s", got.Date)
	}
	if got.HomeLogo != "/teams/puebla.png" || got.AwayLogo != "/teams/toluca.png" {
		t.Fatalf("unexpected logos: %q %q", got.HomeLogo, got.AwayLogo)
	}
	if got.HomeShortName != "Puebla" || got.AwayShortName != "Toluca" {
		t.Fatalf("unexpected short names: %q %q", got.HomeShortName, got.AwayShortName)
	}
}

func TestWeekService_CreateWeek(t *testing.T) {
	t.Parallel()

	f := newPoolFixture(t)
	created := f.createWeek(t, "Jornada 5", "América vs Chivas sábado 19:00\nPuebla vs Toluca viernes 19:00")

	if created.Slug != "jornada-5" || created.Status != week.StatusOpen {
		t.Fatalf("unexpected week: slug=%s status=%s", created.Slug, created.Status)
	}
	if created.Price != 50 || created.AdminFee != 0 {
		t.Fatalf("unexpected pricing: price=%d fee=%d", created.Price, created.AdminFee)
	}
	wantClose := time.Date(2026, time.January, 30, 19, 0, 0, 0, time.UTC)
	if !created.CloseDate.Equal(wantClose) {
		t.Fatalf("close date must be earliest kickoff: got=%s want=%s", created.CloseDate, wantClose)
	}
	for _, m := range created.Matches {
		if m.WeekID != created.ID || m.ID == "" || m.Status != match.StatusScheduled {
			t.Fatalf("unexpected match: %+v", m)
		}
	}

	stored, err := f.weekSvc.Get(context.Background(), "jornada-5")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if stored.ID != created.ID {
		t.Fatalf("unexpected stored week: %s", stored.ID)
	}
}

func TestWeekService_CreateWeek_Validation(t *testing.T) {
	t.Parallel()

	negative := int64(-1)
	tests := []struct {
		name  string
		input CreateWeekInput
	}{
		{name: "missing name", input: CreateWeekInput{Name: " "}},
		{name: "negative price", input: CreateWeekInput{Name: "J1", Price: &negative}},
		{name: "missing team", input: CreateWeekInput{Name: "J1", Matches: []match.Draft{{HomeTeam: "A", Timestamp: 1}}}},
		{name: "missing kickoff", input: CreateWeekInput{Name: "J1", Matches: []match.Draft{{HomeTeam: "A", AwayTeam: "B"}}}},
		{name: "bad date", input: CreateWeekInput{Name: "J1", Matches: []match.Draft{{HomeTeam: "A", AwayTeam: "B", Date: "viernes"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPoolFixture(t)
			_, err := f.weekSvc.CreateWeek(context.Background(), tt.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestWeekService_CreateWeek_AcceptsISODate(t *testing.T) {
	t.Parallel()

	f := newPoolFixture(t)
	created, err := f.weekSvc.CreateWeek(context.Background(), CreateWeekInput{
		Name:    "Jornada 9",
		Matches: []match.Draft{{HomeTeam: "A", AwayTeam: "B", Date: "2026-01-30T19:00:00.000Z"}},
	})
	if err != nil {
		t.Fatalf("create week: %v", err)
	}
	want := time.Date(2026, time.January, 30, 19, 0, 0, 0, time.UTC).UnixMilli()
	if created.Matches[0].Timestamp != want {
		t.Fatalf("unexpected timestamp: %d", created.Matches[0].Timestamp)
	}
}

func TestWeekService_CreateWeek_SlugConflictUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	weekRepo := weekmock.NewRepository(t)
	service := NewWeekService(weekRepo, &sequenceIDs{}, nil, nil, nil, WeekConfig{}, nil)

	weekRepo.
		On("GetBySlug", mock.Anything, "jornada-1").
		Return(week.Week{ID: "existing", Slug: "jornada-1"}, true, nil).
		Once()

	_, err := service.CreateWeek(ctx, CreateWeekInput{Name: "Jornada 1"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestWeekService_GetNotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	weekRepo := weekmock.NewRepository(t)
	service := NewWeekService(weekRepo, &sequenceIDs{}, nil, nil, nil, WeekConfig{}, nil)

	weekRepo.On("GetByID", mock.Anything, "missing").Return(week.Week{}, false, nil).Once()
	weekRepo.On("GetBySlug", mock.Anything, "missing").Return(week.Week{}, false, nil).Once()

	_, err := service.Get(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWeekService_ListAndCurrent(t *testing.T) {
	t.Parallel()

	f := newPoolFixture(t)
	if _, err := f.weekSvc.Current(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound without weeks, got %v", err)
	}

	f.createWeek(t, "Jornada 1", "A vs B viernes 19:00")
	f.weekSvc.now = func() time.Time { return testNow.Add(time.Hour) }
	second := f.createWeek(t, "Jornada 2", "C vs D viernes 19:00")

	items, err := f.weekSvc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].ID != second.ID {
		t.Fatalf("expected newest first, got %+v", items)
	}

	current, err := f.weekSvc.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current.ID != second.ID {
		t.Fatalf("unexpected current week: %s", current.ID)
	}
}

func TestWeekService_RecordResult(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newPoolFixture(t)
	created := f.createWeek(t, "Jornada 3", "A vs B viernes 19:00\nC vs D sábado 19:00\nE vs F domingo 12:00")

	_, err := f.entrySvc.Submit(ctx, SubmitEntryInput{
		WeekID:               created.ID,
		ParticipantName:      "Carlos",
		TotalGoalsPrediction: 4,
		Picks: []entry.Pick{
			{MatchID: created.Matches[0].ID, Selection: match.OutcomeHome},
			{MatchID: created.Matches[1].ID, Selection: match.OutcomeDraw},
		},
	}, false)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	updated, err := f.weekSvc.RecordResult(ctx, RecordResultInput{
		WeekID:    created.ID,
		MatchID:   created.Matches[0].ID,
		HomeScore: 2,
		AwayScore: 1,
	})
	if err != nil {
		t.Fatalf("record result: %v", err)
	}
	if got := updated.Matches[0]; got.Status != match.StatusFinished || got.Result.Outcome != match.OutcomeHome {
		t.Fatalf("unexpected match after result: %+v", got)
	}
	if updated.Status != week.StatusOpen {
		t.Fatalf("week should stay open while matches are pending, got %s", updated.Status)
	}

	entries, err := f.entries.ListByWeek(ctx, created.ID)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if entries[0].Score != 1 || len(entries[0].Hits) != 1 || entries[0].Hits[0] != created.Matches[0].ID {
		t.Fatalf("expected cached score to be refreshed, got %+v", entries[0])
	}

	// Postponed matches do not block the week from finishing.
	postponed := updated.Clone()
	postponed.Matches[2].Status = match.StatusPostponed
	if err := f.weeks.Update(ctx, postponed); err != nil {
		t.Fatalf("postpone: %v", err)
	}

	final, err := f.weekSvc.RecordResult(ctx, RecordResultInput{
		WeekID:    created.Slug,
		MatchID:   created.Matches[1].ID,
		HomeScore: 0,
		AwayScore: 0,
	})
	if err != nil {
		t.Fatalf("record second result: %v", err)
	}
	if final.Status != week.StatusFinished {
		t.Fatalf("expected week to finish, got %s", final.Status)
	}

	entries, _ = f.entries.ListByWeek(ctx, created.ID)
	if entries[0].Score != 2 {
		t.Fatalf("expected score 2 after draw hit, got %d", entries[0].Score)
	}
}

func TestWeekService_RecordResult_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newPoolFixture(t)
	created := f.createWeek(t, "Jornada 4", "A vs B viernes 19:00")

	_, err := f.weekSvc.RecordResult(ctx, RecordResultInput{WeekID: created.ID, MatchID: created.Matches[0].ID, HomeScore: -1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative score, got %v", err)
	}

	_, err = f.weekSvc.RecordResult(ctx, RecordResultInput{WeekID: created.ID, MatchID: "missing"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown match, got %v", err)
	}

	_, err = f.weekSvc.RecordResult(ctx, RecordResultInput{WeekID: "missing", MatchID: "m1"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown week, got %v", err)
	}
}

func TestWeekService_CloseExpiredWeeks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newPoolFixture(t)
	early := f.createWeek(t, "Jornada 6", "A vs B jueves 18:00")
	late := f.createWeek(t, "Jornada 7", "C vs D domingo 18:00")

	f.weekSvc.now = func() time.Time { return time.Date(2026, time.January, 30, 0, 0, 0, 0, time.UTC) }
	closed, err := f.weekSvc.CloseExpiredWeeks(ctx)
	if err != nil {
		t.Fatalf("close expired weeks: %v", err)
	}
	if closed != 1 {
		t.Fatalf("expected one closed week, got %d", closed)
	}

	got, _ := f.weekSvc.Get(ctx, early.ID)
	if got.Status != week.StatusClosed {
		t.Fatalf("expected early week closed, got %s", got.Status)
	}
	got, _ = f.weekSvc.Get(ctx, late.ID)
	if got.Status != week.StatusOpen {
		t.Fatalf("expected late week open, got %s", got.Status)
	}

	again, err := f.weekSvc.CloseExpiredWeeks(ctx)
	if err != nil || again != 0 {
		t.Fatalf("expected idempotent close, got count=%d err=%v", again, err)
	}
}

func TestWeekService_Close(t *testing.T) {
	t.Parallel()

	f := newPoolFixture(t)
	created := f.createWeek(t, "Jornada 8", "A vs B viernes 19:00")

	closed, err := f.weekSvc.Close(context.Background(), created.Slug)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Status != week.StatusClosed {
		t.Fatalf("unexpected status: %s", closed.Status)
	}
}
