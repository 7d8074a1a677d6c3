//go:build integration

package warning_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bfcms/internal/warning"
	"bfcms/pkg/platform/sentinel"
	"bfcms/pkg/testutil/containers"
)

const warningsSchema = `
CREATE TABLE IF NOT EXISTS warnings (
	id TEXT PRIMARY KEY,
	member_id TEXT NOT NULL,
	member_name TEXT NOT NULL,
	membership_number TEXT NOT NULL,
	member_email TEXT NOT NULL,
	consecutive_absences INT NOT NULL,
	warning_type TEXT NOT NULL,
	letter_generated BOOLEAN NOT NULL,
	email_sent BOOLEAN NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

func newWarning(id, memberID string, createdAt time.Time) *warning.Warning {
	return &warning.Warning{
		ID:                  id,
		MemberID:            memberID,
		MemberName:          "Grace Wanjiru",
		MembershipNumber:    "BFC-2025-0042",
		MemberEmail:         "grace@example.com",
		ConsecutiveAbsences: 3,
		WarningType:         warning.TypeAttendance,
		CreatedAt:           createdAt,
	}
}

func TestPostgresRaiseAndSuppress(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	pg.ApplySchema(t, warningsSchema)
	store := warning.NewPostgresStore(pg.DB)
	ctx := context.Background()

	now := time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC)
	since := now.AddDate(0, 0, -30)

	require.NoError(t, store.RaiseIfNoneSince(ctx, newWarning("w1", "m1", now), since))

	err := store.RaiseIfNoneSince(ctx, newWarning("w2", "m1", now), since)
	require.ErrorIs(t, err, sentinel.ErrSuppressed)

	// Different member is unaffected by m1's window.
	require.NoError(t, store.RaiseIfNoneSince(ctx, newWarning("w3", "m2", now), since))

	// A warning exactly on the window boundary still suppresses.
	err = store.RaiseIfNoneSince(ctx, newWarning("w4", "m1", now), now)
	require.ErrorIs(t, err, sentinel.ErrSuppressed)

	// Outside the window a new warning goes through.
	later := now.AddDate(0, 0, 31)
	require.NoError(t, store.RaiseIfNoneSince(ctx, newWarning("w5", "m1", later), later.AddDate(0, 0, -30)))
}

func TestPostgresConcurrentRaise(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	pg.ApplySchema(t, warningsSchema)
	store := warning.NewPostgresStore(pg.DB)
	ctx := context.Background()

	now := time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC)
	since := now.AddDate(0, 0, -30)

	var wg sync.WaitGroup
	raised := make(chan string, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("w%d", i)
			if err := store.RaiseIfNoneSince(ctx, newWarning(id, "m1", now), since); err == nil {
				raised <- id
			}
		}(i)
	}
	wg.Wait()
	close(raised)

	var winners []string
	for id := range raised {
		winners = append(winners, id)
	}
	require.Len(t, winners, 1, "exactly one concurrent raise should win")

	warnings, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, winners[0], warnings[0].ID)
}

func TestPostgresFlagFlips(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	pg.ApplySchema(t, warningsSchema)
	store := warning.NewPostgresStore(pg.DB)
	ctx := context.Background()

	now := time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.RaiseIfNoneSince(ctx, newWarning("w1", "m1", now), now.AddDate(0, 0, -30)))

	pending, err := store.CountPendingEmail(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)

	require.NoError(t, store.SetLetterGenerated(ctx, "w1"))
	require.NoError(t, store.SetLetterGenerated(ctx, "w1"))
	require.NoError(t, store.SetEmailSent(ctx, "w1"))

	w, err := store.FindByID(ctx, "w1")
	require.NoError(t, err)
	assert.True(t, w.LetterGenerated)
	assert.True(t, w.EmailSent)

	pending, err = store.CountPendingEmail(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, pending)

	require.ErrorIs(t, store.SetEmailSent(ctx, "ghost"), sentinel.ErrNotFound)
	_, err = store.FindByID(ctx, "ghost")
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}
