package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"projectai/internal/analysis"
	"projectai/internal/classifier"
	"projectai/internal/directory"
	"projectai/internal/intake"
	"projectai/internal/narrative"
	"projectai/internal/narrative/gemini"
	"projectai/internal/narrative/openai"
	"projectai/internal/prediction"
	"projectai/internal/services/health"
	"projectai/internal/shared/config"
	"projectai/internal/shared/server"
	"projectai/internal/shared/server/middleware"
	"projectai/internal/shared/storage/db"
	"projectai/internal/shared/storage/object"
	localstore "projectai/internal/shared/storage/object/local"
	s3store "projectai/internal/shared/storage/object/s3"
	"projectai/internal/shared/telemetry"
)

const defaultOpenAIModel = "gpt-4o-mini"

// App holds shared dependencies.
type App struct {
	Config      config.Config
	Router      *gin.Engine
	DB          *sql.DB
	Store       object.Store
	Bundle      *classifier.Bundle
	Narrator    narrative.Client
	Prompter    intake.Prompter
	Predictions *prediction.Service
	Coordinator *analysis.Coordinator
	Directory   *directory.Service
	Sessions    *intake.Store
}

// Build prepares every dependency and the HTTP router. A model that fails to
// load is logged and leaves the prediction service unavailable.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := BuildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	bundle, err := classifier.Load(ctx, store)
	if err != nil {
		telemetry.Error("bootstrap.model_unavailable", map[string]any{
			"store": cfg.ModelStoreType,
			"error": err,
		})
		bundle = nil
	}
	predictions, err := prediction.NewService(bundle)
	if err != nil {
		return nil, err
	}

	users, err := buildDirectory(cfg, sqlDB)
	if err != nil {
		return nil, err
	}

	narrator, configured, err := buildNarrator(ctx, cfg)
	if err != nil {
		return nil, err
	}
	var prompter intake.Prompter = intake.TemplatePrompter{}
	if configured {
		prompter = &intake.NarrativePrompter{Client: narrator}
	}

	app := &App{
		Config:      cfg,
		DB:          sqlDB,
		Store:       store,
		Bundle:      bundle,
		Narrator:    narrator,
		Prompter:    prompter,
		Predictions: predictions,
		Coordinator: analysis.NewCoordinator(predictions, narrator, cfg.NarrativeTimeout, cfg.NarrativeCacheSize),
		Directory:   users,
		Sessions:    intake.NewStore(cfg.IntakeMaxSessions, cfg.IntakeSessionTTL),
	}

	var pinger health.Pinger
	if sqlDB != nil {
		pinger = sqlDB
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:            cfg,
		Health:            health.NewService(predictions, pinger),
		PredictionHandler: prediction.NewHandler(predictions),
		AnalysisHandler:   analysis.NewHandler(app.Coordinator),
		DirectoryHandler:  directory.NewHandler(users),
		IntakeHandler:     intake.NewHandler(app.Sessions, prompter, users.IntakeResolver()),
		RateLimiter:       middleware.NewRateLimiter(nil),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"model_loaded": predictions.Ready(),
		"llm_provider": cfg.LLMProvider,
		"database":     sqlDB != nil,
	})
	return app, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, nil
	}
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
		}
	}
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.database_unavailable", map[string]any{"error": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

// BuildStore returns the object store the model artifacts are read from.
func BuildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ModelStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("MODEL_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.ModelDir), nil
	}
}

func buildDirectory(cfg config.Config, sqlDB *sql.DB) (*directory.Service, error) {
	if sqlDB != nil {
		return directory.NewService(&directory.PGRepo{DB: sqlDB}), nil
	}
	repo, err := directory.LoadCSV(cfg.UsersCSVPath)
	if err != nil {
		if !cfg.IsDevLike() {
			return nil, err
		}
		telemetry.Warn("bootstrap.roster_unavailable", map[string]any{
			"path":  cfg.UsersCSVPath,
			"error": err,
		})
		repo = directory.NewMemoryRepo()
	}
	return directory.NewService(repo), nil
}

// buildNarrator reports configured=false when the placeholder is used.
func buildNarrator(ctx context.Context, cfg config.Config) (narrative.Client, bool, error) {
	switch cfg.LLMProvider {
	case "openai":
		model := cfg.LLMModel
		if model == "" {
			model = defaultOpenAIModel
		}
		client, err := openai.NewClient(cfg.OpenAIAPIKey, model)
		if err != nil {
			return nil, false, fmt.Errorf("openai client: %w", err)
		}
		return narrative.WithRetry(client, 0), true, nil
	case "gemini":
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
		if err != nil {
			return nil, false, err
		}
		return narrative.WithRetry(client, 0), true, nil
	default:
		return narrative.PlaceholderClient{}, false, nil
	}
}
