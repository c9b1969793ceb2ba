package entry

import "context"

// Repository persists participant entries.
type Repository interface {
	ListByWeek(ctx context.Context, weekID string) ([]Entry, error)
	GetByWeekAndName(ctx context.Context, weekID, participantName string) (Entry, bool, error)
	Create(ctx context.Context, item Entry) error
	UpdateScores(ctx context.Context, weekID string, items []Entry) error
}
