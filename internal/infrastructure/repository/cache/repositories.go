package cache

import (
	"context"

	"github.com/riskibarqy/quiniela/internal/domain/week"
	basecache "github.com/riskibarqy/quiniela/internal/platform/cache"
)

const (
	weekKeyPrefix = "week:"
	weekListKey   = weekKeyPrefix + "list"
)

// WeekRepository caches week reads. Any write drops every cached week.
type WeekRepository struct {
	next  week.Repository
	cache *basecache.Store
}

func NewWeekRepository(next week.Repository, cache *basecache.Store) *WeekRepository {
	return &WeekRepository{next: next, cache: cache}
}

func (r *WeekRepository) List(ctx context.Context) ([]week.Week, error) {
	v, err := r.cache.GetOrLoad(ctx, weekListKey, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return cloneWeeks(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]week.Week)
	return cloneWeeks(items), nil
}

func (r *WeekRepository) GetByID(ctx context.Context, weekID string) (week.Week, bool, error) {
	return r.getOne(ctx, weekKeyPrefix+"id:"+weekID, func(ctx context.Context) (week.Week, bool, error) {
		return r.next.GetByID(ctx, weekID)
	})
}

func (r *WeekRepository) GetBySlug(ctx context.Context, slug string) (week.Week, bool, error) {
	return r.getOne(ctx, weekKeyPrefix+"slug:"+slug, func(ctx context.Context) (week.Week, bool, error) {
		return r.next.GetBySlug(ctx, slug)
	})
}

func (r *WeekRepository) getOne(
	ctx context.Context,
	key string,
	load func(context.Context) (week.Week, bool, error),
) (week.Week, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return cachedWeek{value: item.Clone(), exists: exists}, nil
	})
	if err != nil {
		return week.Week{}, false, err
	}

	cached, _ := v.(cachedWeek)
	return cached.value.Clone(), cached.exists, nil
}

func (r *WeekRepository) Create(ctx context.Context, item week.Week) error {
	defer r.cache.DeletePrefix(ctx, weekKeyPrefix)
	return r.next.Create(ctx, item)
}

func (r *WeekRepository) Update(ctx context.Context, item week.Week) error {
	defer r.cache.DeletePrefix(ctx, weekKeyPrefix)
	return r.next.Update(ctx, item)
}

type cachedWeek struct {
	value  week.Week
	exists bool
}

func cloneWeeks(items []week.Week) []week.Week {
	out := make([]week.Week, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}
