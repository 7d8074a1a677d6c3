package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"bfcms/internal/admin"
	"bfcms/internal/attendance"
	"bfcms/internal/audit"
	"bfcms/internal/auth"
	"bfcms/internal/contribution"
	"bfcms/internal/dashboard"
	"bfcms/internal/discipline"
	"bfcms/internal/document"
	"bfcms/internal/inventory"
	"bfcms/internal/jwttoken"
	"bfcms/internal/mailer"
	"bfcms/internal/member"
	"bfcms/internal/notice"
	"bfcms/internal/platform/config"
	"bfcms/internal/platform/httpserver"
	"bfcms/internal/platform/logger"
	"bfcms/internal/platform/metrics"
	"bfcms/internal/platform/postgres"
	"bfcms/internal/platform/redis"
	"bfcms/internal/render"
	transporthttp "bfcms/internal/transport/http"
	"bfcms/internal/treasury"
	"bfcms/internal/warning"
)

// stores groups one implementation per domain so the postgres/memory choice
// happens in a single place.
type stores struct {
	users         auth.Store
	members       member.Store
	attendance    attendance.Store
	warnings      warning.Store
	cases         discipline.Store
	inventory     inventory.Store
	notices       notice.Store
	documents     document.Store
	treasury      treasury.Store
	contributions contribution.Store
	audit         audit.Store
}

func newStores(db *sql.DB) stores {
	if db != nil {
		return stores{
			users:         auth.NewPostgresStore(db),
			members:       member.NewPostgresStore(db),
			attendance:    attendance.NewPostgresStore(db),
			warnings:      warning.NewPostgresStore(db),
			cases:         discipline.NewPostgresStore(db),
			inventory:     inventory.NewPostgresStore(db),
			notices:       notice.NewPostgresStore(db),
			documents:     document.NewPostgresStore(db),
			treasury:      treasury.NewPostgresStore(db),
			contributions: contribution.NewPostgresStore(db),
			audit:         audit.NewPostgresStore(db),
		}
	}
	return stores{
		users:         auth.NewInMemoryStore(),
		members:       member.NewInMemoryStore(),
		attendance:    attendance.NewInMemoryStore(),
		warnings:      warning.NewInMemoryStore(),
		cases:         discipline.NewInMemoryStore(),
		inventory:     inventory.NewInMemoryStore(),
		notices:       notice.NewInMemoryStore(),
		documents:     document.NewInMemoryStore(),
		treasury:      treasury.NewInMemoryStore(),
		contributions: contribution.NewInMemoryStore(),
		audit:         audit.NewInMemoryStore(),
	}
}

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	cache, err := redis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if cache != nil {
		defer cache.Close()
	}

	st := newStores(db)

	tokens := jwttoken.NewService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.TokenTTL)
	authService := auth.NewService(st.users, tokens, log, auth.NewMetrics(prometheus.DefaultRegisterer))
	if err := authService.EnsurePrimaryAdmin(ctx, cfg.PrimaryAdminEmail, cfg.PrimaryAdminPassword, cfg.PrimaryAdminName); err != nil {
		log.Error("primary admin seeding failed", "error", err)
		os.Exit(1)
	}

	auditor := audit.NewPublisher(st.audit, log, 256)
	memberService := member.NewService(st.members, auditor, log)

	warningMetrics := warning.NewMetrics(prometheus.DefaultRegisterer)
	monitor := warning.NewMonitor(memberService, st.attendance, st.warnings, auditor, log, warningMetrics)
	attendanceService := attendance.NewService(st.attendance, memberService, monitor.Sweep, log)

	var mail mailer.Mailer
	if client := mailer.NewResendClient(cfg.ResendAPIKey); client != nil {
		mail = client
	}
	warningService := warning.NewService(st.warnings, render.NewLetterhead(), mail,
		cfg.SenderEmail, cfg.OrgName, log, warningMetrics)

	treasuryService := treasury.NewService(st.treasury, log)
	contributionService := contribution.NewService(st.contributions, memberService, treasuryService, log)
	disciplineService := discipline.NewService(st.cases, memberService, log)
	inventoryService := inventory.NewService(st.inventory, log)
	noticeService := notice.NewService(st.notices, log)
	documentService := document.NewService(st.documents, log)
	dashboardService := dashboard.NewService(st.members, st.cases, st.inventory, st.notices,
		st.documents, st.contributions, st.treasury, st.warnings, cache, log)

	adminService := admin.NewService(st.users, st.members, auditor, cfg.PrimaryAdminEmail, log)

	auditCtx, stopAudit := context.WithCancel(context.Background())
	auditDone := make(chan struct{})
	go func() {
		auditor.Run(auditCtx)
		close(auditDone)
	}()

	router := transporthttp.New(transporthttp.Handlers{
		Auth:         auth.NewHandler(authService),
		Member:       member.NewHandler(memberService, render.NewCardRenderer(), cfg.OrgName),
		Attendance:   attendance.NewHandler(attendanceService),
		Warning:      warning.NewHandler(warningService),
		Discipline:   discipline.NewHandler(disciplineService),
		Inventory:    inventory.NewHandler(inventoryService),
		Notice:       notice.NewHandler(noticeService),
		Document:     document.NewHandler(documentService),
		Treasury:     treasury.NewHandler(treasuryService),
		Contribution: contribution.NewHandler(contributionService),
		Dashboard:    dashboard.NewHandler(dashboardService),
		Admin:        admin.NewHandler(adminService, st.audit),
	}, transporthttp.Deps{
		Logger:    log,
		Metrics:   metrics.New(),
		Validator: tokens,
		Resolver:  authService,
		DB:        db,
		Cache:     cache,
	})

	srv := httpserver.New(cfg.Addr, router)
	go func() {
		log.Info("server starting", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}

	stopAudit()
	<-auditDone
}
