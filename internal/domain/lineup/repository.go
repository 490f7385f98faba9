package lineup

import "context"

// Repository exposes saved lineup persistence operations.
type Repository interface {
	Create(ctx context.Context, lineup Lineup) (Lineup, error)
	GetByID(ctx context.Context, lineupID string) (Lineup, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Lineup, error)
	Delete(ctx context.Context, lineupID string) (bool, error)
	// DeleteByUser removes every lineup owned by userID and reports how many went.
	DeleteByUser(ctx context.Context, userID string) (int, error)
}
