package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tutorbook-app/backend/internal/app"
	"github.com/tutorbook-app/backend/internal/config"
	"github.com/tutorbook-app/backend/internal/httpapi"
	"github.com/tutorbook-app/backend/internal/notify"
	"github.com/tutorbook-app/backend/internal/repository"
	"github.com/tutorbook-app/backend/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to reach database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	var notifier notify.Notifier = notify.Noop{}
	if cfg.TelegramToken != "" && cfg.AdminChatID != 0 {
		tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.AdminChatID, logger)
		if err != nil {
			logger.Warn("Telegram notifier disabled", zap.Error(err))
		} else {
			notifier = tg
			logger.Info("Telegram notifier enabled", zap.Int64("chat_id", cfg.AdminChatID))
		}
	}

	userRepo := repository.NewUserRepository(pool)
	slotRepo := repository.NewSlotRepository(pool)
	templateRepo := repository.NewTemplateRepository(pool)
	waitlistRepo := repository.NewWaitlistRepository(pool)

	userService := service.NewUserService(userRepo, cfg.JWTSecret, logger)
	slotService := service.NewSlotService(slotRepo, userRepo, templateRepo, notifier, logger)
	templateService := service.NewTemplateService(templateRepo, userRepo, logger)
	waitlistService := service.NewWaitlistService(waitlistRepo, notifier, logger)

	if cfg.AdminPassword != "" {
		if err := userService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			logger.Fatal("Failed to ensure admin account", zap.Error(err))
		}
	}

	httpApp := httpapi.NewApp(httpapi.Services{
		Users:     userService,
		Slots:     slotService,
		Templates: templateService,
		Waitlist:  waitlistService,
	}, cfg.JWTSecret, logger)

	go func() {
		logger.Info("Starting HTTP server",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("environment", cfg.Environment),
		)
		if err := httpApp.Listen(cfg.HTTPAddr); err != nil {
			logger.Fatal("HTTP server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	if err := httpApp.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
