package fantasy

import "context"

// Repository describes squad persistence needs from use cases.
type Repository interface {
	// Create stores the squad header and all slots as one unit.
	Create(ctx context.Context, squad Squad) error
	LatestByUser(ctx context.Context, userID string) (Squad, bool, error)
	// ListByUser returns the user's squads newest first.
	ListByUser(ctx context.Context, userID string) ([]Squad, error)
	// ListLatest returns the most recent squad of every user that has one.
	ListLatest(ctx context.Context) ([]Squad, error)
	List(ctx context.Context) ([]Squad, error)
	// ApplyCredit updates slot points, squad total and user points as one unit.
	ApplyCredit(ctx context.Context, credit Credit) error
}
