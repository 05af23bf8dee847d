package main

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/noah-isme/planify-web/internal/chat"
	"github.com/noah-isme/planify-web/internal/repository"
	"github.com/noah-isme/planify-web/internal/service"
	"github.com/noah-isme/planify-web/internal/tui"
	"github.com/noah-isme/planify-web/internal/ui"
	"github.com/noah-isme/planify-web/pkg/backend"
	"github.com/noah-isme/planify-web/pkg/config"
	"github.com/noah-isme/planify-web/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Chat.Token == "" {
		log.Fatal("CHAT_TOKEN is required")
	}

	// The terminal belongs to the UI, so logs go to a file.
	logr, err := logger.NewFile(cfg, cfg.Chat.LogFile)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(backend.WithToken(context.Background(), cfg.Chat.Token))
	defer cancel()

	metricsSvc := service.NewMetricsService()
	client := backend.NewClient(cfg.Backend, logr, metricsSvc)
	notifier := ui.NewNotifier(cfg.UI.ToastTTL)
	defer notifier.Close()

	model := tui.New(ctx, repository.NewChatRepository(client), notifier, tui.Config{
		Strategy:      chat.ParseStrategy(cfg.Chat.Strategy),
		ChatInterval:  cfg.Chat.PollInterval,
		InboxInterval: cfg.Chat.InboxPollInterval,
		Logger:        logr,
		Observer:      metricsSvc,
	})
	defer model.Close()

	logr.Sugar().Infow("chat client starting", "backend", cfg.Backend.BaseURL, "strategy", cfg.Chat.Strategy)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		logr.Sugar().Errorw("chat client failed", "error", err)
		log.Fatalf("chat client failed: %v", err)
	}
}
