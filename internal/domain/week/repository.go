package week

import "context"

// Repository persists weeks together with their matches.
type Repository interface {
	List(ctx context.Context) ([]Week, error)
	GetByID(ctx context.Context, weekID string) (Week, bool, error)
	GetBySlug(ctx context.Context, slug string) (Week, bool, error)
	Create(ctx context.Context, item Week) error
	Update(ctx context.Context, item Week) error
}
