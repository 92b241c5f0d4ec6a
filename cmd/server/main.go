// @title         resume-builder API
// @version       1.0
// @description   Пошаговое составление резюме: автозаполнение по загруженному файлу, генерация разделов LLM-моделью, выгрузка в DOCX и тренировочное техническое собеседование.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Токен авторизации. Поддерживаются форматы: "Bearer <JWT>" или "<JWT>".
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/artem13815/resumebuilder/api/http"
	"github.com/artem13815/resumebuilder/api/http/handlers"
	"github.com/artem13815/resumebuilder/api/http/presenter"
	_ "github.com/artem13815/resumebuilder/docs"
	"github.com/artem13815/resumebuilder/pkg/auth"
	"github.com/artem13815/resumebuilder/pkg/compose"
	"github.com/artem13815/resumebuilder/pkg/config"
	"github.com/artem13815/resumebuilder/pkg/draft"
	"github.com/artem13815/resumebuilder/pkg/health"
	"github.com/artem13815/resumebuilder/pkg/health/checkers"
	"github.com/artem13815/resumebuilder/pkg/interview"
	"github.com/artem13815/resumebuilder/pkg/llm"
	"github.com/artem13815/resumebuilder/pkg/llm/anthropic"
	"github.com/artem13815/resumebuilder/pkg/llm/ollama"
	"github.com/artem13815/resumebuilder/pkg/llm/openai"
	"github.com/artem13815/resumebuilder/pkg/llm/rediscache"
	"github.com/artem13815/resumebuilder/pkg/logger"
	"github.com/artem13815/resumebuilder/pkg/repository/memory"
	pgrepo "github.com/artem13815/resumebuilder/pkg/repository/postgres"
	"github.com/artem13815/resumebuilder/pkg/resume"
	"github.com/artem13815/resumebuilder/pkg/security/jwt"
	"github.com/artem13815/resumebuilder/pkg/storage/blob"
	"github.com/artem13815/resumebuilder/pkg/storage/postgres"
)

func main() {
	// Load configuration from env/.env and optional YAML file
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

type repositories struct {
	users      auth.UserRepository
	drafts     draft.Repository
	interviews interview.Repository
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var checks []health.Checker

	// PostgreSQL when configured, in-memory storage otherwise
	repos := repositories{
		users:      memory.NewUserRepository(),
		drafts:     memory.NewDraftRepository(),
		interviews: memory.NewInterviewRepository(),
	}
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return fmt.Errorf("postgres connect: %w", err)
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		repos = repositories{
			users:      pgrepo.NewUserRepository(pool),
			drafts:     pgrepo.NewDraftRepository(pool),
			interviews: pgrepo.NewInterviewRepository(pool),
		}
		checks = append(checks, checkers.Postgres(pool))
	} else {
		log.Warn("DATABASE_URL is empty: drafts and users are kept in memory")
	}

	blobs, err := newBlobStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("blob storage: %w", err)
	}

	model, err := newChatModel(cfg.LLM, log)
	if err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	// autofill and interview questions repeat the same prompts, so they go through the cache
	cached := model
	if cfg.Redis.URL != "" {
		rdb, err := rediscache.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("redis connect: %w", err)
		}
		defer rdb.Close()
		ttl := time.Duration(cfg.Redis.CacheTTLMinutes) * time.Minute
		cached = llm.NewCachedModel(model, rediscache.New(rdb), ttl, log)
		checks = append(checks, checkers.Redis(rdb))
	}

	// Token generator
	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	authUC := auth.NewAuthService(repos.users, jwtGen, cfg.AdminEmails...)

	composer := compose.NewService(model)
	autofill := resume.NewAutofillService(cached, log)
	draftUC := draft.NewService(repos.drafts, composer, autofill, blobs, log)
	interviewUC := interview.NewService(repos.interviews, cached, model, cfg.InterviewConcurrency, log)

	app := fiber.New(fiber.Config{
		AppName:      "resume-builder",
		BodyLimit:    int(cfg.MaxUploadBytes) + 1<<20,
		ErrorHandler: presenter.ErrorHandler(log),
	})
	app.Use(recover.New())
	httpapi.Register(app, httpapi.Handlers{
		Auth:       handlers.NewAuthHandler(authUC),
		Health:     handlers.NewHealthHandler(health.NewService(checks...)),
		Tools:      handlers.NewToolsHandler(composer, autofill, cfg.MaxUploadBytes),
		Drafts:     handlers.NewDraftsHandler(draftUC, cfg.MaxUploadBytes),
		Interviews: handlers.NewInterviewsHandler(interviewUC, cfg.MaxUploadBytes),
	}, jwt.NewAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "port", cfg.Port, "llm", cfg.LLM.Provider, "model", llm.ModelName(model))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

// newChatModel builds the provider client wrapped in retries and call logging.
func newChatModel(cfg config.LLMConfig, log *slog.Logger) (llm.ChatModel, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	var base llm.ChatModel
	switch cfg.Provider {
	case "ollama":
		base = ollama.New(cfg.BaseURL, cfg.Model, timeout)
	case "openai", "openrouter":
		baseURL := cfg.BaseURL
		if baseURL == "" && cfg.Provider == "openrouter" {
			baseURL = openai.OpenRouterBaseURL
		}
		c, err := openai.New(openai.Config{
			APIKey:   cfg.APIKey,
			BaseURL:  baseURL,
			Model:    cfg.Model,
			AppTitle: cfg.AppTitle,
			Referer:  cfg.Referer,
			Timeout:  timeout,
		})
		if err != nil {
			return nil, err
		}
		base = c
	case "anthropic":
		c, err := anthropic.New(anthropic.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: timeout,
		})
		if err != nil {
			return nil, err
		}
		base = c
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
	return llm.NewLoggingModel(llm.NewRetryModel(base, cfg.Retries, time.Second), log), nil
}

func newBlobStore(ctx context.Context, cfg config.StorageConfig) (draft.BlobStore, error) {
	if cfg.Driver == "s3" {
		return blob.NewS3Store(ctx, blob.S3Config{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
		})
	}
	return blob.NewLocalStore(cfg.UploadDir)
}
