// Package transporthttp assembles the chi router: middleware chain, public
// auth routes, the protected API surface, and the operational endpoints.
package transporthttp

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bfcms/internal/admin"
	"bfcms/internal/attendance"
	"bfcms/internal/auth"
	"bfcms/internal/contribution"
	"bfcms/internal/dashboard"
	"bfcms/internal/discipline"
	"bfcms/internal/document"
	"bfcms/internal/inventory"
	"bfcms/internal/member"
	"bfcms/internal/notice"
	"bfcms/internal/platform/metrics"
	"bfcms/internal/platform/middleware"
	"bfcms/internal/platform/redis"
	"bfcms/internal/treasury"
	"bfcms/internal/warning"
)

// Handlers collects every domain handler the router mounts.
type Handlers struct {
	Auth         *auth.Handler
	Member       *member.Handler
	Attendance   *attendance.Handler
	Warning      *warning.Handler
	Discipline   *discipline.Handler
	Inventory    *inventory.Handler
	Notice       *notice.Handler
	Document     *document.Handler
	Treasury     *treasury.Handler
	Contribution *contribution.Handler
	Dashboard    *dashboard.Handler
	Admin        *admin.Handler
}

// Deps carries the platform pieces the router needs beyond the handlers.
type Deps struct {
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Validator middleware.JWTValidator
	Resolver  middleware.IdentityResolver

	// DB and Cache feed the health endpoint; either may be nil.
	DB    *sql.DB
	Cache *redis.Client
}

// New assembles the full router under /api, plus /health and /metrics.
func New(h Handlers, d Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Latency(d.Metrics))

	r.Get("/health", health(d))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		h.Auth.Register(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(d.Validator, d.Resolver, d.Logger))

			h.Auth.RegisterProtected(r)
			h.Member.Register(r)
			h.Attendance.Register(r)
			h.Warning.Register(r)
			h.Discipline.Register(r)
			h.Inventory.Register(r)
			h.Notice.Register(r)
			h.Document.Register(r)
			h.Treasury.Register(r)
			h.Contribution.Register(r)
			h.Dashboard.Register(r)
			h.Admin.Register(r)
		})
	})

	return r
}

func health(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		body := `{"status":"ok"}`
		if d.DB != nil {
			if err := d.DB.PingContext(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body = `{"status":"degraded","database":"unreachable"}`
			}
		}
		if status == http.StatusOK && d.Cache != nil {
			if err := d.Cache.Health(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body = `{"status":"degraded","cache":"unreachable"}`
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}
