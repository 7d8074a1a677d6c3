package member

import "context"

// Store persists members. Lookups return sentinel.ErrNotFound on a miss.
type Store interface {
	Create(ctx context.Context, m *Member) error
	FindByID(ctx context.Context, id string) (*Member, error)
	List(ctx context.Context, filter Filter) ([]*Member, error)
	ListActive(ctx context.Context) ([]*Member, error)
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, id string) error
	// CountJoinedInYear backs membership-number generation: the next sequence
	// number for a year is the count of members who joined that year plus one.
	CountJoinedInYear(ctx context.Context, year int) (int, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status Status) (int, error)
	CountActiveByDepartment(ctx context.Context) (map[Department]int, error)
}
