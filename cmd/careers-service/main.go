// careers-service — backend of the public careers site.
//
// Serves the paginated job list of the ATS job board and accepts job
// applications, forwarding them to the ATS public REST API:
//   - GET  /jobs                 — session job list (load more / filter)
//   - GET  /jobs/:id/apply       — application form for a job
//   - POST /jobs/:id/apply       — submit an application with a resume
//
// Also exposes careers.v1.JobBoard over gRPC for server-side consumers.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"jobmate/careers-service/internal/analytics"
	"jobmate/careers-service/internal/applyapi"
	"jobmate/careers-service/internal/config"
	"jobmate/careers-service/internal/db"
	"jobmate/careers-service/internal/grpcserver"
	"jobmate/careers-service/internal/i18n"
	"jobmate/careers-service/internal/joblist"
	"jobmate/careers-service/internal/journal"
	"jobmate/careers-service/internal/metrics"
	"jobmate/careers-service/internal/scheduler"
	"jobmate/careers-service/internal/search"
	"jobmate/careers-service/internal/session"
	"jobmate/careers-service/internal/web"
)

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[careers-service] Config error: %v", err)
	}
	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		log.Fatalf("[careers-service] Settings error: %v", err)
	}
	baseURL := cfg.SearchBaseURL
	if baseURL == "" {
		baseURL = settings.SearchBaseURL()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[careers-service] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[careers-service] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[careers-service] PostgreSQL connected ✓")

	jrnl := journal.NewStore(pool)
	if err := jrnl.EnsureSchema(ctx); err != nil {
		log.Fatalf("[careers-service] Journal: %v", err)
	}

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[careers-service] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[careers-service] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[careers-service] Redis connected ✓")

	// ── Domain ───────────────────────────────────────────────────────────────
	m := metrics.New()
	searcher := search.NewCachedSearcher(
		search.NewClient(baseURL, settings.Service.Fields, m), rdb, cfg.CacheTTL, m)
	applied := session.NewAppliedStore(rdb, cfg.SessionTTL)

	h := web.NewHandler(web.Options{
		Settings:      settings,
		Searcher:      searcher,
		Applied:       applied,
		Client:        applyapi.NewClient(baseURL, m),
		Tracker:       analytics.NewRedisTracker(rdb, m),
		Journal:       jrnl,
		Translator:    i18n.New(settings.DefaultLocale),
		Metrics:       m,
		Listener:      listenerFor(rdb),
		MaxResumeSize: cfg.MaxResumeSize,
		SessionTTL:    cfg.SessionTTL,
	})

	// ── Scheduler ────────────────────────────────────────────────────────────
	sched := scheduler.New(searcher, cfg.WarmInterval, cfg.SessionTTL, map[string]scheduler.Evicter{
		"job lists":    h.Pagers(),
		"apply modals": h.Modals(),
	})
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[careers-service] Scheduler: %v", err)
	}
	defer sched.Stop()

	// ── Servers ──────────────────────────────────────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      web.NewRouter(h, m, cfg.CORSOrigins),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
	}

	gs := grpc.NewServer()
	grpcserver.Register(gs, grpcserver.NewServer(searcher, applied, settings))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("[careers-service] v%s HTTP listening on :%s", web.Version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.GRPCPort))
		if err != nil {
			return fmt.Errorf("grpc listen: %w", err)
		}
		log.Printf("[careers-service] gRPC listening on :%s", cfg.GRPCPort)
		return gs.Serve(lis)
	})

	// ── Graceful shutdown ────────────────────────────────────────────────────
	g.Go(func() error {
		<-gctx.Done()
		log.Println("[careers-service] Shutting down…")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		gs.GracefulStop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[careers-service] Shutdown error: %v", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("[careers-service] Server error: %v", err)
	}
	log.Println("[careers-service] Stopped.")
}

func listenerFor(rdb *redis.Client) func(string) joblist.Listener {
	return func(sessionID string) joblist.Listener {
		return joblist.NewRedisListener(rdb, sessionID)
	}
}
