package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmssspace/na-predele--crm-sub000/internal/availability"
	"github.com/dmssspace/na-predele--crm-sub000/internal/cache"
	"github.com/dmssspace/na-predele--crm-sub000/internal/config"
	"github.com/dmssspace/na-predele--crm-sub000/internal/db"
	"github.com/dmssspace/na-predele--crm-sub000/internal/email"
	"github.com/dmssspace/na-predele--crm-sub000/internal/logger"
	"github.com/dmssspace/na-predele--crm-sub000/internal/media"
	"github.com/dmssspace/na-predele--crm-sub000/internal/schedule"
	"github.com/dmssspace/na-predele--crm-sub000/internal/server"
)

const cacheTTL = 5 * time.Minute

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	readCache := cache.New(rdb, cacheTTL)

	emailService := email.New(
		cfg.EmailFrom, cfg.EmailFromName,
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass,
		cfg.RedisAddr,
	)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	go emailService.Start(workerCtx)

	var uploader media.Uploader
	if cfg.CloudinaryURL != "" {
		uploader, err = media.NewCloudinary(cfg.CloudinaryURL)
		if err != nil {
			logger.Fatalf("Failed to init media storage: %v", err)
		}
	} else {
		logger.Warn("CLOUDINARY_URL not set, media uploads disabled")
	}

	scheduleService := schedule.NewService(
		schedule.NewRepository(database),
		availability.NewRepository(database),
	)
	materializer := schedule.NewMaterializer(scheduleService, cfg.ScheduleHorizonDays)
	if err := materializer.Start(); err != nil {
		logger.Fatalf("Failed to start schedule materializer: %v", err)
	}
	defer materializer.Stop()

	srv := server.New(database, cfg, readCache, emailService, uploader)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Router(),
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	stopWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Forced shutdown: %v", err)
	}
}
