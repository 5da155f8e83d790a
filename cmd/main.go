package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/greentable/site-backend/config"
	"github.com/greentable/site-backend/db"
	"github.com/greentable/site-backend/handlers"
	"github.com/greentable/site-backend/realtime"
	"github.com/greentable/site-backend/repositories"
	api "github.com/greentable/site-backend/routes"
	"github.com/greentable/site-backend/services"
	"github.com/greentable/site-backend/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))
	if cfg.UsingPlaceholderAPIKey() {
		// Degrades silently: requests against the hosted store will be the
		// ones that actually fail.
		logger.Warn("PUBLIC_API_KEY not set, using placeholder value")
	}

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		logger.Error("failed to connect to redis", slog.Any("error", err))
		os.Exit(1)
	}
	cancelPing()
	defer rdb.Close()
	logger.Info("redis connection established", slog.String("addr", cfg.RedisAddr))

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	hub := realtime.NewHub()
	go hub.Run()
	logger.Info("websocket hub started")

	contentRepo := repositories.NewPostgresSiteContentRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	leadRepo := repositories.NewPostgresLeadRepository(dbConn)
	editorRepo := repositories.NewPostgresEditorRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(editorRepo)
	imageService := services.NewImageService(contentRepo, uploader, hub)
	tournamentService := services.NewTournamentService(tournamentRepo)
	leadService := services.NewLeadService(leadRepo, contentRepo)
	contactService := services.NewContactService(rdb, hub, logger)
	logger.Info("services initialized")

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	imageHandler := handlers.NewImageHandler(imageService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	leadHandler := handlers.NewLeadHandler(leadService)
	contactHandler := handlers.NewContactHandler(contactService)
	webSocketHandler := handlers.NewWebSocketHandler(hub)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		imageHandler,
		tournamentHandler,
		leadHandler,
		contactHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Forwards contact block updates from redis to connected clients.
	group.Go(func() error {
		if err := contactService.Listen(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("contact listener: %w", err)
		}
		return nil
	})

	// Announces the day change at each local midnight so schedule clients
	// recompute their active day instead of reloading.
	group.Go(func() error {
		return runMidnightNotifier(groupCtx, hub, logger)
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		logger.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func runMidnightNotifier(ctx context.Context, hub *realtime.Hub, logger *slog.Logger) error {
	timer := time.NewTimer(services.UntilNextMidnight(time.Now()))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			now := time.Now()
			activeDay := services.ActiveDay(now)
			logger.Info("day changed", slog.Int("active_day", int(activeDay)))
			hub.BroadcastToRoom(realtime.RoomSchedule, realtime.EventDayChanged, map[string]interface{}{
				"active_day": activeDay,
				"name":       activeDay.Name(),
			})
			timer.Reset(services.UntilNextMidnight(now))
		}
	}
}
