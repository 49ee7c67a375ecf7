package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"perfpoints/internal/db"
	"perfpoints/internal/domain/audit"
	"perfpoints/internal/domain/catalog"
	"perfpoints/internal/domain/employee"
	"perfpoints/internal/domain/points"
	"perfpoints/internal/platform/config"
	"perfpoints/internal/platform/metrics"
	"perfpoints/internal/transport/http/api"
	authhandler "perfpoints/internal/transport/http/handlers/auth"
	cataloghandler "perfpoints/internal/transport/http/handlers/catalog"
	entryhandler "perfpoints/internal/transport/http/handlers/entries"
	reporthandler "perfpoints/internal/transport/http/handlers/reports"
	reviewhandler "perfpoints/internal/transport/http/handlers/reviews"
	"perfpoints/internal/transport/http/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	logLevel := slog.LevelInfo
	if cfg.Environment == "development" {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	collector := metrics.New()

	employeeStore := employee.NewStore(pool)
	catalogService := catalog.NewService(catalog.NewStore(pool))
	pointsStore := points.NewStore(pool)
	calculator := points.NewCalculator(points.PromotionSchedule{
		Start:       cfg.PromotionStartDate,
		Multipliers: cfg.PromotionMultipliers,
	})
	aggregator := points.NewAggregator(pointsStore, cfg.MinPassingPercent)
	pointsService := points.NewService(pointsStore, catalogService, employeeStore, calculator, aggregator)
	auditService := audit.New(pool)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(employeeStore, cfg.JWTSecret).RegisterRoutes(r)
		cataloghandler.NewHandler(catalogService).RegisterRoutes(r)
		entryhandler.NewHandler(pointsService, collector).RegisterRoutes(r)
		reviewhandler.NewHandler(pointsService, auditService, collector).RegisterRoutes(r)
		reporthandler.NewHandler(pointsService, cfg.DefaultTargetPoints).RegisterRoutes(r)

		r.With(middleware.RequireRoles(employee.RoleAdmin, employee.RolePresident, employee.RoleBoss)).
			Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
				api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
			})
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           http.MaxBytesHandler(router, cfg.MaxBodyBytes),
		ReadHeaderTimeout: 5 * time.Second,
	}
	slog.Info("points engine listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
