package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"codesync/internal/ai"
	"codesync/internal/api"
	"codesync/internal/config"
	"codesync/internal/execute"
	"codesync/internal/jobs"
	"codesync/internal/metrics"
	"codesync/internal/routers"
	"codesync/internal/session"
	"codesync/internal/ws"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := config.Load()

	runner, err := execute.NewClient(cfg.Judge0URL, cfg.Judge0APIKey, cfg.Judge0Host)
	if err != nil {
		logger.Fatal("failed to initialize code runner", zap.Error(err))
	}

	var assistant ai.Assistant
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Fatal("failed to initialize AI assistant", zap.Error(err))
		}
		assistant = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set, /ask-ai disabled")
	}

	groups := ws.NewGroups()
	coordinator := session.NewCoordinator(groups, logger)
	sock := ws.NewServer(groups, coordinator, logger)
	handlers := api.NewHandlers(logger, runner, assistant)

	reporter := jobs.NewStatsReporter(coordinator, groups, cfg.StatsSchedule, logger)
	if err := reporter.Start(); err != nil {
		logger.Fatal("failed to start stats reporter", zap.Error(err))
	}

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.ClientURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	router.Use(metrics.Middleware)
	router.Mount("/", routers.New(handlers, sock))

	// No global read/write timeouts: websocket sessions are long-lived.
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("shutting down...")
	reporter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
