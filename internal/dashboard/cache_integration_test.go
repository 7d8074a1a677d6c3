//go:build integration

package dashboard_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bfcms/internal/contribution"
	"bfcms/internal/dashboard"
	"bfcms/internal/discipline"
	"bfcms/internal/document"
	"bfcms/internal/inventory"
	"bfcms/internal/member"
	"bfcms/internal/notice"
	platformredis "bfcms/internal/platform/redis"
	"bfcms/internal/treasury"
	"bfcms/internal/warning"
	"bfcms/pkg/testutil/containers"
)

func TestStatsCached(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	cache := &platformredis.Client{Client: rc.Client}
	ctx := context.Background()

	members := member.NewInMemoryStore()
	service := dashboard.NewService(
		members,
		discipline.NewInMemoryStore(),
		inventory.NewInMemoryStore(),
		notice.NewInMemoryStore(),
		document.NewInMemoryStore(),
		contribution.NewInMemoryStore(),
		treasury.NewInMemoryStore(),
		warning.NewInMemoryStore(),
		cache,
		slog.New(slog.DiscardHandler),
	)

	addMember := func() {
		require.NoError(t, members.Create(ctx, &member.Member{
			ID:         uuid.NewString(),
			FullName:   "Someone",
			Department: member.DepartmentAlto,
			Status:     member.StatusActive,
		}))
	}

	addMember()
	stats, err := service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalMembers)

	// Within the TTL the cached snapshot wins over fresh store state.
	addMember()
	stats, err = service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalMembers)

	require.NoError(t, rc.FlushAll(ctx))
	stats, err = service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalMembers)
}
