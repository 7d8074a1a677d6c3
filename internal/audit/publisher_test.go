package audit

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bfcms/pkg/requestcontext"
)

func TestPublishAndDrain(t *testing.T) {
	store := NewInMemoryStore()
	p := NewPublisher(store, slog.New(slog.DiscardHandler), 8)

	ctx := requestcontext.WithTime(context.Background(), time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC))
	ctx = requestcontext.WithActor(ctx, requestcontext.ActorInfo{UserID: "u1", FullName: "Admin"})
	ctx = requestcontext.WithClientMetadata(ctx, "203.0.113.9", "curl/8.0")

	p.Publish(ctx, "user.role_updated", "u2")
	p.Publish(ctx, "member.deleted", "m1")

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(runCtx)
		close(done)
	}()
	cancel()
	<-done

	events, err := store.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "member.deleted", events[0].Action)
	assert.Equal(t, "user.role_updated", events[1].Action)
	assert.Equal(t, "u1", events[1].ActorID)
	assert.Equal(t, "Admin", events[1].ActorName)
	assert.Equal(t, "203.0.113.9", events[1].ClientIP)
	assert.Equal(t, "curl/8.0", events[1].UserAgent)
	assert.Equal(t, time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC), events[1].CreatedAt)
}

func TestPublishDropsWhenFull(t *testing.T) {
	store := NewInMemoryStore()
	p := NewPublisher(store, slog.New(slog.DiscardHandler), 1)

	ctx := context.Background()
	p.Publish(ctx, "a", "1")
	p.Publish(ctx, "b", "2")

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(runCtx)
		close(done)
	}()
	cancel()
	<-done

	events, err := store.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "a", events[0].Action)
}

func TestListLimit(t *testing.T) {
	store := NewInMemoryStore()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(context.Background(), &Event{ID: "e", Action: "x"}))
	}
	events, err := store.List(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}
