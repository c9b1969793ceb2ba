package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/quiniela/internal/domain/entry"
)

type EntryRepository struct {
	mu     sync.RWMutex
	items  map[string]entry.Entry
	byWeek map[string][]string
}

func NewEntryRepository() *EntryRepository {
	return &EntryRepository{
		items:  make(map[string]entry.Entry),
		byWeek: make(map[string][]string),
	}
}

func (r *EntryRepository) ListByWeek(_ context.Context, weekID string) ([]entry.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byWeek[weekID]
	out := make([]entry.Entry, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.items[id].Clone())
	}

	return out, nil
}

func (r *EntryRepository) GetByWeekAndName(_ context.Context, weekID, participantName string) (entry.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.findByName(weekID, participantName)
	if !ok {
		return entry.Entry{}, false, nil
	}

	return item.Clone(), true, nil
}

func (r *EntryRepository) Create(_ context.Context, item entry.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("entry already exists: %s", item.ID)
	}
	if _, exists := r.findByName(item.WeekID, item.ParticipantName); exists {
		return fmt.Errorf("%w: week=%s name=%s", entry.ErrDuplicateName, item.WeekID, item.ParticipantName)
	}

	r.items[item.ID] = item.Clone()
	r.byWeek[item.WeekID] = append(r.byWeek[item.WeekID], item.ID)
	return nil
}

// UpdateScores overwrites only the derived Score/Hits of entries in the week.
func (r *EntryRepository) UpdateScores(_ context.Context, weekID string, items []entry.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		current, exists := r.items[item.ID]
		if !exists || current.WeekID != weekID {
			continue
		}
		current.Score = item.Score
		current.Hits = append([]string(nil), item.Hits...)
		r.items[item.ID] = current
	}

	return nil
}

func (r *EntryRepository) findByName(weekID, participantName string) (entry.Entry, bool) {
	key := entry.NameKey(participantName)
	for _, id := range r.byWeek[weekID] {
		item := r.items[id]
		if entry.NameKey(item.ParticipantName) == key {
			return item, true
		}
	}
	return entry.Entry{}, false
}
