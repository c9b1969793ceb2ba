package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/quiniela/internal/domain/week"
)

type WeekRepository struct {
	mu     sync.RWMutex
	items  map[string]week.Week
	slugs  map[string]string
	orders []string
}

func NewWeekRepository(weeks []week.Week) *WeekRepository {
	r := &WeekRepository{
		items:  make(map[string]week.Week, len(weeks)),
		slugs:  make(map[string]string, len(weeks)),
		orders: make([]string, 0, len(weeks)),
	}
	for _, w := range weeks {
		r.items[w.ID] = w.Clone()
		r.slugs[w.Slug] = w.ID
		r.orders = append(r.orders, w.ID)
	}

	return r
}

func (r *WeekRepository) List(_ context.Context) ([]week.Week, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]week.Week, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id].Clone())
	}

	return out, nil
}

func (r *WeekRepository) GetByID(_ context.Context, weekID string) (week.Week, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.items[weekID]
	if !ok {
		return week.Week{}, false, nil
	}

	return w.Clone(), true, nil
}

func (r *WeekRepository) GetBySlug(_ context.Context, slug string) (week.Week, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.slugs[slug]
	if !ok {
		return week.Week{}, false, nil
	}

	return r.items[id].Clone(), true, nil
}

func (r *WeekRepository) Create(_ context.Context, item week.Week) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("week already exists: %s", item.ID)
	}
	if _, exists := r.slugs[item.Slug]; exists {
		return fmt.Errorf("%w: slug=%s", week.ErrDuplicateSlug, item.Slug)
	}

	r.items[item.ID] = item.Clone()
	r.slugs[item.Slug] = item.ID
	r.orders = append(r.orders, item.ID)
	return nil
}

func (r *WeekRepository) Update(_ context.Context, item week.Week) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.items[item.ID]
	if !exists {
		return fmt.Errorf("week not found: %s", item.ID)
	}
	if current.Slug != item.Slug {
		delete(r.slugs, current.Slug)
		r.slugs[item.Slug] = item.ID
	}

	r.items[item.ID] = item.Clone()
	return nil
}
