package contribution

import "context"

// Store persists contribution records.
type Store interface {
	Create(ctx context.Context, c *Contribution) error
	// List returns contributions newest first, narrowed by the filter.
	List(ctx context.Context, f Filter) ([]*Contribution, error)
	// TotalsByType aggregates amount and count per contribution type.
	TotalsByType(ctx context.Context) ([]TypeTotal, error)
	// TopContributors returns the highest-giving members, at most limit.
	TopContributors(ctx context.Context, limit int) ([]Contributor, error)
	Count(ctx context.Context) (int, error)
}
