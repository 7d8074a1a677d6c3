package warning

import (
	"context"
	"time"
)

// Store is the warning ledger. Warnings are append-only: no update or delete
// beyond the two monotonic flag flips.
type Store interface {
	// RaiseIfNoneSince inserts w unless the member already has a warning of
	// the same type created at or after since. The check and the insert are
	// one atomic step in every implementation, so two concurrent sweeps can
	// never double-raise; a suppressed insert returns sentinel.ErrSuppressed.
	RaiseIfNoneSince(ctx context.Context, w *Warning, since time.Time) error
	FindByID(ctx context.Context, id string) (*Warning, error)
	// List returns all warnings, newest first.
	List(ctx context.Context) ([]*Warning, error)
	// SetLetterGenerated flips letter_generated to true. Already true is not
	// an error. Unknown ID returns sentinel.ErrNotFound.
	SetLetterGenerated(ctx context.Context, id string) error
	// SetEmailSent flips email_sent to true, with the same contract.
	SetEmailSent(ctx context.Context, id string) error
	// CountPendingEmail counts warnings whose email has not gone out yet.
	CountPendingEmail(ctx context.Context) (int, error)
}
