// Package bootstrap wires configuration into the running application:
// database, object store, preference store, narrative generator, services,
// archive chain, and finally the HTTP router.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/coverletter"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/documents"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/llm"
	openaillm "github.com/a-a-ronc/LePerfectPermit-sub001/internal/llm/openai"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/packaging"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/packaging/archive"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/prefs"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/projects"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/config"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/server"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/storage/db"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/storage/object"
	localstore "github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/storage/object/local"
	s3store "github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Prefs  prefs.Store

	ProjectsRepo  projects.Repo
	DocumentsRepo documents.Repo

	DocumentsService   *documents.Service
	CoverLetterService *coverletter.Service
	PackagingService   *packaging.Service

	ProjectHandler     *projects.Handler
	DocumentHandler    *documents.Handler
	CoverLetterHandler *coverletter.Handler
	PackagingHandler   *packaging.Handler
}

// Build prepares shared dependencies and wires the router.
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
		Prefs:  buildPrefs(cfg),
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             app.Config,
		ProjectHandler:     app.ProjectHandler,
		DocumentHandler:    app.DocumentHandler,
		CoverLetterHandler: app.CoverLetterHandler,
		PackagingHandler:   app.PackagingHandler,
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
		sqlDB.Close()
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

func buildPrefs(cfg config.Config) prefs.Store {
	if strings.TrimSpace(cfg.PrefsPath) != "" {
		return prefs.NewDiskStore(cfg.PrefsPath)
	}
	return prefs.NewMemoryStore()
}

func buildGenerator(cfg config.Config) (llm.Generator, error) {
	if cfg.LLMProvider != "openai" {
		return nil, nil
	}
	client, err := openaillm.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.LLMModel)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// BuildChain assembles the archive persistence fallback chain in priority
// order: explicit save path, export directory, download drop, and finally
// the plain-text manifest.
func BuildChain(cfg config.Config, prefStore prefs.Store) *archive.Chain {
	return &archive.Chain{
		Backends: []archive.Backend{
			&archive.SavePathBackend{Path: cfg.ExportSavePath},
			&archive.DirectoryBackend{Dir: cfg.ExportDir, Prefs: prefStore},
			&archive.DownloadBackend{Dir: cfg.DownloadDir},
			&archive.ManifestTextBackend{Dir: cfg.ManifestDir},
		},
		Notifier: archive.LogNotifier{},
	}
}

func buildServices(app *App) error {
	var projectRepo projects.Repo
	var docRepo documents.Repo
	if app.DB != nil {
		projectRepo = &projects.PGRepo{DB: app.DB}
		docRepo = &documents.PGRepo{DB: app.DB}
	} else {
		projectRepo = projects.NewMemoryRepo()
		docRepo = documents.NewMemoryRepo()
	}

	generator, err := buildGenerator(app.Config)
	if err != nil {
		return err
	}

	docSvc := &documents.Service{Store: app.Store, Repo: docRepo}
	letterSvc := &coverletter.Service{
		Projects:  projectRepo,
		Docs:      docSvc,
		Generator: generator,
	}
	packagingSvc := &packaging.Service{
		Projects:  projectRepo,
		Docs:      docRepo,
		Assembler: &packaging.Assembler{Store: app.Store},
		Chain:     BuildChain(app.Config, app.Prefs),
	}

	app.ProjectsRepo = projectRepo
	app.DocumentsRepo = docRepo
	app.DocumentsService = docSvc
	app.CoverLetterService = letterSvc
	app.PackagingService = packagingSvc
	app.ProjectHandler = projects.NewHandler(projectRepo)
	app.DocumentHandler = documents.NewHandler(docSvc)
	app.CoverLetterHandler = coverletter.NewHandler(letterSvc)
	app.PackagingHandler = packaging.NewHandler(packagingSvc)
	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
