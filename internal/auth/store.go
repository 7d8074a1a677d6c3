package auth

import "context"

// Store persists API accounts. Implementations return sentinel.ErrNotFound
// when a lookup misses and sentinel.ErrConflict when an email is taken.
type Store interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	UpdateRole(ctx context.Context, id string, role Role) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	CountByRole(ctx context.Context) (map[Role]int, error)
}
