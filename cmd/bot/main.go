package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordfolder/internal/config"
	"wordfolder/internal/handler"
	"wordfolder/internal/repository/memory"
	"wordfolder/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Wordfolder Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.Duration("session_idle_ttl", cfg.Session.IdleTTL),
		zap.Duration("cleanup_interval", cfg.Session.CleanupInterval),
	)

	// Initialize repositories
	userRepo := memory.NewUserRepo()
	workspaceRepo := memory.NewWorkspaceRepo()

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.BotPassword)
	vocabService := service.NewVocabularyService(workspaceRepo, logger)
	quizService := service.NewQuizService(workspaceRepo, logger)
	statsService := service.NewStatsService(workspaceRepo, logger)
	assistantService := service.NewAssistantService(workspaceRepo, service.AssistantDelays{
		Translate: cfg.Assistant.TranslateDelay,
		Analyze:   cfg.Assistant.AnalyzeDelay,
		Detect:    cfg.Assistant.DetectDelay,
	}, logger)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	// Initialize handler
	h := handler.NewHandler(bot, authService, vocabService, quizService, statsService, assistantService, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start cleanup job in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runCleanupJob(ctx, statsService, cfg.Session, logger)

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()

	logger.Info("Bot stopped gracefully")
}

// runCleanupJob periodically ends sessions of idle users
func runCleanupJob(ctx context.Context, statsService *service.StatsService, cfg config.SessionConfig, logger *zap.Logger) {
	ticker := time.NewTicker(cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			logger.Debug("Running scheduled cleanup")
			statsService.CleanupIdleSessions(cfg.IdleTTL)
		}
	}
}
