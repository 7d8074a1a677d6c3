package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"bfcms/internal/discipline"
	"bfcms/internal/member"
	"bfcms/internal/platform/redis"
)

const (
	cacheKey = "bfcms:dashboard:stats"
	cacheTTL = 30 * time.Second
)

// Stats is the dashboard overview aggregated across every domain.
type Stats struct {
	TotalMembers       int            `json:"total_members"`
	ActiveMembers      int            `json:"active_members"`
	PendingCases       int            `json:"pending_cases"`
	TotalInventory     int            `json:"total_inventory"`
	ActiveNotices      int            `json:"active_notices"`
	TotalDocuments     int            `json:"total_documents"`
	TotalContributions int            `json:"total_contributions"`
	TreasuryBalance    float64        `json:"treasury_balance"`
	PendingWarnings    int            `json:"pending_warnings"`
	Departments        map[string]int `json:"departments"`
}

// Counters narrows each domain store to the counts the dashboard needs.
type (
	MemberCounter interface {
		Count(ctx context.Context) (int, error)
		CountByStatus(ctx context.Context, status member.Status) (int, error)
		CountActiveByDepartment(ctx context.Context) (map[member.Department]int, error)
	}
	CaseCounter interface {
		CountByStatus(ctx context.Context, status discipline.CaseStatus) (int, error)
	}
	InventoryCounter interface {
		Count(ctx context.Context) (int, error)
	}
	NoticeCounter interface {
		Count(ctx context.Context) (int, error)
	}
	DocumentCounter interface {
		Count(ctx context.Context) (int, error)
	}
	ContributionCounter interface {
		Count(ctx context.Context) (int, error)
	}
	BalanceReader interface {
		CurrentBalance(ctx context.Context) (float64, error)
	}
	WarningCounter interface {
		CountPendingEmail(ctx context.Context) (int, error)
	}
)

// Service aggregates the dashboard stats, with a short-lived Redis cache when
// one is configured.
type Service struct {
	members       MemberCounter
	cases         CaseCounter
	inventory     InventoryCounter
	notices       NoticeCounter
	documents     DocumentCounter
	contributions ContributionCounter
	treasury      BalanceReader
	warnings      WarningCounter
	cache         *redis.Client
	logger        *slog.Logger
}

func NewService(
	members MemberCounter,
	cases CaseCounter,
	inventory InventoryCounter,
	notices NoticeCounter,
	documents DocumentCounter,
	contributions ContributionCounter,
	treasury BalanceReader,
	warnings WarningCounter,
	cache *redis.Client,
	logger *slog.Logger,
) *Service {
	return &Service{
		members:       members,
		cases:         cases,
		inventory:     inventory,
		notices:       notices,
		documents:     documents,
		contributions: contributions,
		treasury:      treasury,
		warnings:      warnings,
		cache:         cache,
		logger:        logger,
	}
}

// Stats returns the aggregated overview. The counts run concurrently; a cache
// hit skips the stores entirely.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	var stats Stats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalMembers, err = s.members.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.ActiveMembers, err = s.members.CountByStatus(gctx, member.StatusActive)
		return err
	})
	g.Go(func() error {
		byDept, err := s.members.CountActiveByDepartment(gctx)
		if err != nil {
			return err
		}
		stats.Departments = make(map[string]int, len(member.Departments))
		for _, d := range member.Departments {
			stats.Departments[string(d)] = byDept[d]
		}
		return nil
	})
	g.Go(func() (err error) {
		stats.PendingCases, err = s.cases.CountByStatus(gctx, discipline.StatusPending)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalInventory, err = s.inventory.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.ActiveNotices, err = s.notices.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalDocuments, err = s.documents.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalContributions, err = s.contributions.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TreasuryBalance, err = s.treasury.CurrentBalance(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.PendingWarnings, err = s.warnings.CountPendingEmail(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregating dashboard stats: %w", err)
	}

	s.toCache(ctx, &stats)
	return &stats, nil
}

func (s *Service) fromCache(ctx context.Context) *Stats {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, cacheKey).Bytes()
	if err != nil {
		return nil
	}
	var stats Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *Service) toCache(ctx context.Context, stats *Stats) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey, raw, cacheTTL).Err(); err != nil {
		s.logger.WarnContext(ctx, "dashboard cache write failed", "error", err)
	}
}
