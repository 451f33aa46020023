package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitsync/training-service/internal/api"
	"fitsync/training-service/internal/config"
	"fitsync/training-service/internal/events"
	"fitsync/training-service/internal/identity"
	"fitsync/training-service/internal/logger"
	"fitsync/training-service/internal/repository/postgres"
	"fitsync/training-service/internal/service"
	"fitsync/training-service/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	appLog, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("FATAL: Could not build logger: %v", err)
	}
	// Registered first so it runs after every other deferred close.
	exitCode := 0
	defer func() { os.Exit(exitCode) }()
	defer appLog.Sync()
	appLog.Info("Starting training service", "address", cfg.Server.Address, "mode", cfg.Log.Mode)

	// --- Database Connection ---
	pool, err := postgres.ConnectDB(cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		appLog.Fatal("Could not connect to PostgreSQL", "error", err)
	}
	defer postgres.CloseDB(pool)
	appLog.Info("Database connection established")

	if cfg.Database.MigrateOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		applied, err := postgres.Migrate(ctx, pool, appLog)
		cancel()
		if err != nil {
			appLog.Fatal("Database migrations failed", "error", err)
		}
		appLog.Info("Database migrations completed", "applied", len(applied))
	}

	// --- Event Channel ---
	publisher := events.NewRedisPublisher(cfg.Redis)
	defer publisher.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := publisher.Ping(pingCtx); err != nil {
		// Events are best effort; the service still starts.
		appLog.Warn("Redis is not reachable, events will be dropped until it is", "addr", cfg.Redis.Addr, "error", err)
	} else {
		appLog.Info("Redis connection established", "addr", cfg.Redis.Addr)
	}
	cancelPing()
	notifier := events.NewNotifier(publisher, appLog, cfg.Events.PublishTimeout)

	users := identity.NewClient(cfg.UserService, appLog)

	// --- Initialize Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3, appLog)
		if err != nil {
			appLog.Fatal("Failed to initialize S3 storage", "error", err)
		}
	} else {
		appLog.Warn("S3 is not configured, exercise media endpoints are disabled")
	}

	// --- Initialize Repositories ---
	exerciseRepo := postgres.NewExerciseRepository(pool)
	workoutRepo := postgres.NewWorkoutPlanRepository(pool)
	dietRepo := postgres.NewDietPlanRepository(pool)
	programRepo := postgres.NewProgramRepository(pool)

	// --- Initialize Services ---
	services := api.Services{
		Exercises: service.NewExerciseService(exerciseRepo, fileStorage, appLog),
		Workouts:  service.NewWorkoutPlanService(workoutRepo),
		Diets:     service.NewDietPlanService(dietRepo),
		Programs:  service.NewProgramService(programRepo, users, notifier, appLog),
	}

	if cfg.Log.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(cfg, services, appLog)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	if err := serve(server, quit, appLog); err != nil {
		appLog.Error("Server stopped", "error", err)
		exitCode = 1
		return
	}
	appLog.Info("Server exiting")
}

// serve runs srv until quit fires or the listener fails, then drains
// in-flight requests. A nil return means a clean shutdown.
func serve(srv *http.Server, quit <-chan os.Signal, appLog *logger.Logger) error {
	serveErr := make(chan error, 1)
	go func() {
		appLog.Info("Server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-quit:
		appLog.Info("Shutting down server")
	case err := <-serveErr:
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
