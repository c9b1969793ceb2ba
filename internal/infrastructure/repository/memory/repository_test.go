package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/quiniela/internal/domain/entry"
	"github.com/riskibarqy/quiniela/internal/domain/match"
	"github.com/riskibarqy/quiniela/internal/domain/team"
)

func TestWeekRepository_CloneIsolation(t *testing.T) {
	ctx := context.Background()
	ref := time.Date(2026, time.January, 28, 10, 0, 0, 0, time.UTC)
	repo := NewWeekRepository(SeedWeeks(ref, team.DefaultCatalog()))

	got, exists, err := repo.GetBySlug(ctx, "jornada-demo")
	if err != nil || !exists {
		t.Fatalf("get demo week: exists=%v err=%v", exists, err)
	}
	if len(got.Matches) != 5 {
		t.Fatalf("unexpected seeded matches: %d", len(got.Matches))
	}
	if got.Matches[0].HomeLogo != "/teams/puebla.png" {
		t.Fatalf("unexpected seeded logo: %q", got.Matches[0].HomeLogo)
	}

	if err := got.Matches[0].Finish(1, 0); err != nil {
		t.Fatalf("finish: %v", err)
	}

	again, _, err := repo.GetByID(ctx, DemoWeekID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if again.Matches[0].Result != nil {
		t.Fatalf("stored week must not alias caller copies")
	}

	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	again, _, _ = repo.GetByID(ctx, DemoWeekID)
	if again.Matches[0].Result == nil || again.Matches[0].Result.Outcome != match.OutcomeHome {
		t.Fatalf("expected stored result after update")
	}
}

func TestEntryRepository_DuplicateNameAndScores(t *testing.T) {
	ctx := context.Background()
	repo := NewEntryRepository()

	first := entry.Entry{ID: "e1", WeekID: "w1", ParticipantName: "Carlos"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := repo.Create(ctx, entry.Entry{ID: "e2", WeekID: "w1", ParticipantName: " CARLOS "})
	if !errors.Is(err, entry.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if err := repo.Create(ctx, entry.Entry{ID: "e3", WeekID: "w2", ParticipantName: "Carlos"}); err != nil {
		t.Fatalf("same name in another week should be allowed: %v", err)
	}

	if _, exists, _ := repo.GetByWeekAndName(ctx, "w1", "carlos"); !exists {
		t.Fatalf("expected case-insensitive lookup to find entry")
	}

	if err := repo.UpdateScores(ctx, "w1", []entry.Entry{{ID: "e1", Score: 3, Hits: []string{"m1", "m2", "m3"}, ParticipantName: "ignored"}}); err != nil {
		t.Fatalf("update scores: %v", err)
	}
	items, err := repo.ListByWeek(ctx, "w1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Score != 3 || len(items[0].Hits) != 3 {
		t.Fatalf("unexpected entries: %+v", items)
	}
	if items[0].ParticipantName != "Carlos" {
		t.Fatalf("update scores must not touch other fields: %+v", items[0])
	}
}
