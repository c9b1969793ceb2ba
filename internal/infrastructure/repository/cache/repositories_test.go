package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/quiniela/internal/domain/match"
	"github.com/riskibarqy/quiniela/internal/domain/week"
	weekmock "github.com/riskibarqy/quiniela/internal/mocks/domain/week"
	basecache "github.com/riskibarqy/quiniela/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

func TestWeekRepository_CachesReads(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := weekmock.NewRepository(t)
	repo := NewWeekRepository(next, basecache.NewStore(time.Minute))

	item := week.Week{ID: "w1", Slug: "jornada-1", Matches: []match.Match{{ID: "m1", HomeTeam: "Toluca"}}}
	next.On("GetByID", mock.Anything, "w1").Return(item, true, nil).Once()
	next.On("GetByID", mock.Anything, "missing").Return(week.Week{}, false, nil).Once()
	next.On("List", mock.Anything).Return([]week.Week{item}, nil).Once()

	for i := 0; i < 3; i++ {
		got, exists, err := repo.GetByID(ctx, "w1")
		if err != nil || !exists || got.ID != "w1" {
			t.Fatalf("get by id: got=%+v exists=%v err=%v", got, exists, err)
		}
		// Mutating a returned value must not leak into the cache.
		got.Matches[0].HomeTeam = "changed"
	}
	got, _, _ := repo.GetByID(ctx, "w1")
	if got.Matches[0].HomeTeam != "Toluca" {
		t.Fatalf("cached week was mutated: %+v", got.Matches[0])
	}

	for i := 0; i < 2; i++ {
		if _, exists, err := repo.GetByID(ctx, "missing"); err != nil || exists {
			t.Fatalf("expected cached miss, exists=%v err=%v", exists, err)
		}
		if items, err := repo.List(ctx); err != nil || len(items) != 1 {
			t.Fatalf("list: items=%+v err=%v", items, err)
		}
	}
}

func TestWeekRepository_WritesInvalidate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := weekmock.NewRepository(t)
	repo := NewWeekRepository(next, basecache.NewStore(time.Minute))

	open := week.Week{ID: "w1", Slug: "jornada-1", Status: week.StatusOpen}
	closed := open
	closed.Status = week.StatusClosed

	next.On("GetBySlug", mock.Anything, "jornada-1").Return(open, true, nil).Once()
	next.On("Update", mock.Anything, closed).Return(nil).Once()
	next.On("GetBySlug", mock.Anything, "jornada-1").Return(closed, true, nil).Once()

	if got, _, _ := repo.GetBySlug(ctx, "jornada-1"); got.Status != week.StatusOpen {
		t.Fatalf("unexpected status before update: %s", got.Status)
	}
	if err := repo.Update(ctx, closed); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got, _, _ := repo.GetBySlug(ctx, "jornada-1"); got.Status != week.StatusClosed {
		t.Fatalf("expected reload after update, got %s", got.Status)
	}
}
