// Package wire 提供依赖装配
package wire

import (
	"github.com/JamalC77/penned-works/internal/application/auth"
	"github.com/JamalC77/penned-works/internal/application/manuscript"
	"github.com/JamalC77/penned-works/internal/application/storybible"
	"github.com/JamalC77/penned-works/internal/config"
	"github.com/JamalC77/penned-works/internal/infrastructure/anthropic"
	"github.com/JamalC77/penned-works/internal/infrastructure/persistence/database"
	"github.com/JamalC77/penned-works/internal/interfaces/http/handler"
	"github.com/JamalC77/penned-works/internal/interfaces/http/router"
)

// App 装配完成的应用
type App struct {
	Router *router.Router

	DB        *database.Client
	TxManager *database.TxManager
	LLM       *anthropic.Client

	AuthService       *auth.Service
	ManuscriptService *manuscript.Service
	StoryBibleService *storybible.Service
}

// InitializeApp 装配整个应用
func InitializeApp(cfg *config.Config, version string) (*App, func(), error) {
	db, err := database.NewClient(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}

	txManager := database.NewTxManager(db)
	userRepo := database.NewUserRepository(db)
	projectRepo := database.NewProjectRepository(db)
	chapterRepo := database.NewChapterRepository(db)
	versionRepo := database.NewVersionRepository(db)
	bibleRepo := database.NewStoryBibleRepository(db)

	llm := anthropic.NewClient(&cfg.Anthropic)

	authService := auth.NewService(userRepo)
	manuscriptService := manuscript.NewService(txManager, projectRepo, chapterRepo, versionRepo)
	extractor := storybible.NewExtractor(llm, txManager, chapterRepo, bibleRepo)
	bibleService := storybible.NewService(llm, extractor, txManager, projectRepo, chapterRepo, bibleRepo)

	handlers := router.Handlers{
		Health:     handler.NewHealthHandler(db, version),
		Auth:       handler.NewAuthHandler(authService, cfg.Security.Session),
		Project:    handler.NewProjectHandler(manuscriptService),
		Chapter:    handler.NewChapterHandler(manuscriptService),
		AI:         handler.NewAIHandler(llm),
		StoryBible: handler.NewStoryBibleHandler(bibleService),
	}

	app := &App{
		Router:            router.New(cfg, handlers),
		DB:                db,
		TxManager:         txManager,
		LLM:               llm,
		AuthService:       authService,
		ManuscriptService: manuscriptService,
		StoryBibleService: bibleService,
	}
	return app, cleanup, nil
}
