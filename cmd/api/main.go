package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/motivity-labs/support-triage/internal/analytics"
	httptransport "github.com/motivity-labs/support-triage/internal/api/http"
	"github.com/motivity-labs/support-triage/internal/api/http/handlers"
	"github.com/motivity-labs/support-triage/internal/config"
	"github.com/motivity-labs/support-triage/internal/domain"
	"github.com/motivity-labs/support-triage/internal/enrich"
	"github.com/motivity-labs/support-triage/internal/events"
	"github.com/motivity-labs/support-triage/internal/llm"
	"github.com/motivity-labs/support-triage/internal/observability"
	"github.com/motivity-labs/support-triage/internal/prompt"
	"github.com/motivity-labs/support-triage/internal/service"
	"github.com/motivity-labs/support-triage/internal/store"
	"github.com/motivity-labs/support-triage/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	profile := domain.LoadCategoryProfile(cfg.Triage.CategoryProfile)
	catalog := prompt.NewCatalog(profile)
	completionClient := llm.NewClient(cfg.LLM, logger, metrics)

	ticketStore := store.NewTicketStore(cfg.Triage.EnforceTransitions)
	sessions := store.NewSessionTracker(cfg.Chat.HistoryMaxTurns)
	dispatcher := events.NewInMemoryDispatcher(logger)

	pipeline := enrich.NewPipeline(catalog, completionClient, completionClient, profile)
	triageService := service.NewTriageService(service.TriageDependencies{
		Pipeline:   pipeline,
		TicketRepo: ticketStore,
		Dispatcher: dispatcher,
	})
	chatService := service.NewChatService(service.ChatDependencies{
		Catalog:    catalog,
		Completer:  completionClient,
		Sessions:   sessions,
		Dispatcher: dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	aggregator := analytics.NewAggregator(ticketStore, profile)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.CORS)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.LLM.APIKey != ""),
		Tickets:   handlers.NewTicketsHandler(triageService),
		Chat:      handlers.NewChatHandler(chatService),
		Analytics: handlers.NewAnalyticsHandler(aggregator),
		Metadata:  handlers.NewMetadataHandler(profile),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
