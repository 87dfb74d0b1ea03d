// Command httpd runs the advisor HTTP service: RAG question answering over
// the career corpus plus moderated experience submission.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/careerpath/advisor/internal/api"
	"github.com/careerpath/advisor/internal/config"
	"github.com/careerpath/advisor/internal/conversation"
	"github.com/careerpath/advisor/internal/database"
	"github.com/careerpath/advisor/internal/logging"
	"github.com/careerpath/advisor/internal/mlclient"
	"github.com/careerpath/advisor/internal/moderation"
	"github.com/careerpath/advisor/internal/processor"
	"github.com/careerpath/advisor/internal/retrieval"
	"github.com/careerpath/advisor/internal/telemetry"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "advisor: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.GetConfigPath("config.yml"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logCfg := logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Service.Debug,
	}
	if cfg.Logging.Output != "" {
		logCfg.OutputPaths = []string{cfg.Logging.Output}
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting advisor service",
		logging.String("version", cfg.Service.Version),
		logging.Int("port", cfg.Service.Port),
	)

	db, err := database.NewPostgresConnection(database.Config{
		Host:     cfg.Database.Host,
		Port:     strconv.Itoa(cfg.Database.Port),
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Database,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer func() { _ = db.Close() }()

	redisClient, err := conversation.NewRedisClient(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() { _ = redisClient.Close() }()

	registry := mlclient.NewRegistry(mlclient.RegistryConfig{
		EmbedderURL:      cfg.Models.EmbedderURL,
		ToxicityURL:      cfg.Models.ToxicityURL,
		ZeroShotURL:      cfg.Models.ZeroShotURL,
		GeneratorURL:     cfg.Models.GeneratorURL,
		GeneratorTimeout: cfg.Models.GeneratorTimeout,
	})

	provider := telemetry.NewProvider()

	corpusRepo := database.NewCorpusRepository(db)
	experienceRepo := database.NewExperienceRepository(db)
	historyStore := conversation.NewStore(redisClient, cfg.Redis.HistoryTTL)

	retriever := retrieval.NewRetriever(logger, registry.Embedder(), corpusRepo, cfg.Retrieval)
	pipeline := moderation.NewPipeline(logger, registry.Toxicity(), registry.ZeroShot(), provider)

	worker := processor.NewWorker(
		logger, pipeline, experienceRepo, registry.Embedder(), provider, cfg.Moderation,
	)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	worker.Start(workerCtx)

	checks := []api.ReadinessCheck{
		{Name: "postgres", Check: db.PingContext},
		{Name: "redis", Check: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}},
		{Name: "models", Check: registry.Health},
	}

	handler := api.NewHandler(
		retriever,
		registry.Generator(),
		registry.Embedder(),
		historyStore,
		experienceRepo,
		worker,
		provider,
		logger,
		cfg.Conversation.MaxMessages,
		checks,
		cfg.Service.Name,
		cfg.Service.Version,
	)

	router := api.NewRouter(handler, provider, cfg.Service.Debug)
	server := api.NewServer(cfg.Service.Port, router)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.ListenAndServe()
	}()
	logger.Info("http server listening", logging.Int("port", cfg.Service.Port))

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}

		// Drain the moderation queue before releasing the database.
		worker.Stop()

		logger.Info("server stopped gracefully")
	}

	return nil
}
