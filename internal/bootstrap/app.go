package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"admit-backend/internal/analysis"
	googleauth "admit-backend/internal/auth"
	"admit-backend/internal/documents"
	"admit-backend/internal/enrich"
	"admit-backend/internal/llm"
	openai "admit-backend/internal/llm/openai"
	"admit-backend/internal/quota"
	"admit-backend/internal/shared/config"
	"admit-backend/internal/shared/server"
	"admit-backend/internal/shared/storage/db"
	"admit-backend/internal/shared/storage/object"
	localstore "admit-backend/internal/shared/storage/object/local"
	s3store "admit-backend/internal/shared/storage/object/s3"
	"admit-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Store           object.ObjectStore
	DocumentsRepo   documents.DocumentsRepo
	AnalysisRepo    analysis.Repo
	UsersRepo       users.Repo
	DocumentsSvc    *documents.Service
	QuotaSvc        *quota.Service
	AnalysisSvc     *analysis.Service
	UsersSvc        *users.Service
	Orchestrator    *analysis.Orchestrator
	DocumentHandler *documents.Handler
	AnalysisHandler *analysis.Handler
	QuotaHandler    *quota.Handler
	UserHandler     *users.Handler
	GoogleAuth      *googleauth.GoogleService
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if sqlDB != nil {
		app.DocumentsRepo = &documents.PGRepo{DB: sqlDB}
		app.AnalysisRepo = &analysis.PGRepo{DB: sqlDB}
		app.UsersRepo = &users.PGRepo{DB: sqlDB}
		app.QuotaSvc = quota.NewPostgresService(quota.NewPGStore(sqlDB))
	} else {
		app.DocumentsRepo = documents.NewMemoryRepo()
		app.AnalysisRepo = analysis.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
		app.QuotaSvc = quota.NewService()
	}

	app.DocumentsSvc = &documents.Service{Store: store, Repo: app.DocumentsRepo}
	app.UsersSvc = users.NewService(app.UsersRepo)

	financial, strategic, err := buildAnalyzers(cfg)
	if err != nil {
		return nil, err
	}

	enricher := enrich.NewGateway(enrich.NewHTTPFetcher(time.Duration(cfg.EnrichTimeoutSec) * time.Second))

	app.Orchestrator = analysis.NewOrchestrator(
		quota.Checker{Svc: app.QuotaSvc},
		financial,
		strategic,
		enricher,
		time.Duration(cfg.AnalysisTimeoutSec)*time.Second,
	)

	app.AnalysisSvc = &analysis.Service{
		Repo:         app.AnalysisRepo,
		DocRepo:      app.DocumentsRepo,
		Store:        store,
		Orchestrator: app.Orchestrator,
		Quota:        app.QuotaSvc,
	}

	app.DocumentHandler = documents.NewHandler(app.DocumentsSvc)
	app.AnalysisHandler = analysis.NewHandler(app.AnalysisSvc)
	app.QuotaHandler = quota.NewHandler(app.QuotaSvc)
	app.UserHandler = users.NewHandler(app.UsersSvc)
	app.GoogleAuth = googleauth.NewGoogleService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL, app.UsersSvc)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		DocumentHandler: app.DocumentHandler,
		AnalysisHandler: app.AnalysisHandler,
		QuotaHandler:    app.QuotaHandler,
		UserHandler:     app.UserHandler,
		GoogleAuth:      app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// buildAnalyzers constructs the two model backends. Without an API key the
// pipeline still runs: both analyzers fail fast and every request resolves
// through the fallback assembler.
func buildAnalyzers(cfg config.Config) (analysis.Analyzer, analysis.Analyzer, error) {
	if provider := strings.ToLower(strings.TrimSpace(cfg.LLMProvider)); provider != "" && provider != "openai" {
		return nil, nil, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.LLMProvider)
	}
	if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: OPENAI_API_KEY empty; analyses will degrade to fallback results")
			placeholder := llm.PlaceholderClient{}
			return analysis.NewFinancialAnalyzer(placeholder), analysis.NewStrategicAnalyzer(placeholder), nil
		}
		return nil, nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	financialClient, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.FinancialModel)
	if err != nil {
		return nil, nil, err
	}
	strategicClient, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.StrategicModel)
	if err != nil {
		return nil, nil, err
	}

	financial := analysis.NewFinancialAnalyzer(llm.NewRetrying(financialClient, "financial"))
	strategic := analysis.NewStrategicAnalyzer(llm.NewRetrying(strategicClient, "strategic"))
	return financial, strategic, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
