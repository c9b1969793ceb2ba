package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/quiniela/internal/domain/entry"
	"github.com/riskibarqy/quiniela/internal/domain/match"
	"github.com/riskibarqy/quiniela/internal/domain/week"
	entrymock "github.com/riskibarqy/quiniela/internal/mocks/domain/entry"
	weekmock "github.com/riskibarqy/quiniela/internal/mocks/domain/week"
	"github.com/stretchr/testify/mock"
)

func TestEntryService_Submit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newPoolFixture(t)
	created := f.createWeek(t, "Jornada 10", "A vs B viernes 19:00\nC vs D sábado 19:00")

	got, err := f.entrySvc.Submit(ctx, SubmitEntryInput{
		WeekID:               created.ID,
		ParticipantName:      "  Ana  ",
		TotalGoalsPrediction: 5,
		Picks: []entry.Pick{
			{MatchID: created.Matches[0].ID, Selection: "l"},
			{MatchID: created.Matches[1].ID, Selection: match.OutcomeAway},
		},
	}, false)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if got.ParticipantName != "Ana" || got.PaymentStatus != entry.PaymentPending {
		t.Fatalf("unexpected entry: %+v", got)
	}
	if got.Picks[0].Selection != match.OutcomeHome {
		t.Fatalf("expected selection to be normalized, got %q", got.Picks[0].Selection)
	}
	if got.Score != 0 || got.Hits == nil || len(got.Hits) != 0 {
		t.Fatalf("expected empty score cache, got %+v", got)
	}
	if !got.SubmittedAt.Equal(testNow) {
		t.Fatalf("unexpected submitted at: %s", got.SubmittedAt)
	}

	entries, err := f.entrySvc.ListByWeek(ctx, created.Slug)
	if err != nil {
		t.Fatalf("list by week: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != got.ID {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestEntryService_Submit_Rules(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newPoolFixture(t)
	created := f.createWeek(t, "Jornada 11", "A vs B viernes 19:00")
	pick := []entry.Pick{{MatchID: created.Matches[0].ID, Selection: match.OutcomeDraw}}

	if _, err := f.entrySvc.Submit(ctx, SubmitEntryInput{WeekID: created.ID, ParticipantName: "Luis", Picks: pick}, false); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	tests := []struct {
		name      string
		input     SubmitEntryInput
		asAdmin   bool
		now       time.Time
		targetErr error
	}{
		{
			name:      "duplicate name is case insensitive",
			input:     SubmitEntryInput{WeekID: created.ID, ParticipantName: "LUIS", Picks: pick},
			targetErr: ErrConflict,
		},
		{
			name:      "missing name",
			input:     SubmitEntryInput{WeekID: created.ID, Picks: pick},
			targetErr: ErrInvalidInput,
		},
		{
			name:      "negative goals",
			input:     SubmitEntryInput{WeekID: created.ID, ParticipantName: "Eva", TotalGoalsPrediction: -1, Picks: pick},
			targetErr: ErrInvalidInput,
		},
		{
			name:      "pick for another week",
			input:     SubmitEntryInput{WeekID: created.ID, ParticipantName: "Eva", Picks: []entry.Pick{{MatchID: "other", Selection: match.OutcomeHome}}},
			targetErr: ErrInvalidInput,
		},
		{
			name:      "invalid selection",
			input:     SubmitEntryInput{WeekID: created.ID, ParticipantName: "Eva", Picks: []entry.Pick{{MatchID: created.Matches[0].ID, Selection: "X"}}},
			targetErr: ErrInvalidInput,
		},
		{
			name:      "unknown week",
			input:     SubmitEntryInput{WeekID: "missing", ParticipantName: "Eva", Picks: pick},
			targetErr: ErrNotFound,
		},
		{
			name:      "after close date",
			input:     SubmitEntryInput{WeekID: created.ID, ParticipantName: "Eva", Picks: pick},
			now:       created.CloseDate.Add(time.Minute),
			targetErr: ErrWeekClosed,
		},
		{
			name:    "admin after close date",
			input:   SubmitEntryInput{WeekID: created.ID, ParticipantName: "Tardío", Picks: pick},
			asAdmin: true,
			now:     created.CloseDate.Add(time.Hour),
		},
	}

	for _, tt := range tests {
		now := testNow
		if !tt.now.IsZero() {
			now = tt.now
		}
		f.entrySvc.now = func() time.Time { return now }

		got, err := f.entrySvc.Submit(ctx, tt.input, tt.asAdmin)
		if tt.targetErr == nil {
			if err != nil {
				t.Fatalf("%s: expected no error, got %v", tt.name, err)
			}
			if got.PaymentStatus != entry.PaymentPending {
				t.Fatalf("%s: unexpected payment status %q", tt.name, got.PaymentStatus)
			}
			continue
		}
		if !errors.Is(err, tt.targetErr) {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.targetErr, err)
		}
	}
}

func TestEntryService_Submit_ClosedWeekUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	weekRepo := weekmock.NewRepository(t)
	entryRepo := entrymock.NewRepository(t)
	service := NewEntryService(weekRepo, entryRepo, &sequenceIDs{}, nil, nil)
	service.now = func() time.Time { return testNow }

	closed := week.Week{
		ID:        "w1",
		Status:    week.StatusClosed,
		CloseDate: testNow.Add(24 * time.Hour),
		Matches:   []match.Match{{ID: "m1", WeekID: "w1"}},
	}
	weekRepo.On("GetByID", mock.Anything, "w1").Return(closed, true, nil).Once()

	_, err := service.Submit(ctx, SubmitEntryInput{
		WeekID:          "w1",
		ParticipantName: "Ana",
		Picks:           []entry.Pick{{MatchID: "m1", Selection: match.OutcomeHome}},
	}, false)
	if !errors.Is(err, ErrWeekClosed) {
		t.Fatalf("expected ErrWeekClosed, got %v", err)
	}
}

func TestEntryService_Submit_StoreDuplicateUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	weekRepo := weekmock.NewRepository(t)
	entryRepo := entrymock.NewRepository(t)
	service := NewEntryService(weekRepo, entryRepo, &sequenceIDs{}, nil, nil)
	service.now = func() time.Time { return testNow }

	open := week.Week{
		ID:        "w1",
		Status:    week.StatusOpen,
		CloseDate: testNow.Add(24 * time.Hour),
		Matches:   []match.Match{{ID: "m1", WeekID: "w1"}},
	}
	weekRepo.On("GetByID", mock.Anything, "w1").Return(open, true, nil).Once()
	entryRepo.On("GetByWeekAndName", mock.Anything, "w1", "Ana").Return(entry.Entry{}, false, nil).Once()
	entryRepo.
		On("Create", mock.Anything, mock.MatchedBy(func(e entry.Entry) bool { return e.WeekID == "w1" && e.ParticipantName == "Ana" })).
		Return(entry.ErrDuplicateName).
		Once()

	_, err := service.Submit(ctx, SubmitEntryInput{
		WeekID:          "w1",
		ParticipantName: "Ana",
		Picks:           []entry.Pick{{MatchID: "m1", Selection: match.OutcomeHome}},
	}, false)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
