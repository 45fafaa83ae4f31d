package app

import (
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/madfam-org/avala/internal/data/db"
	"github.com/madfam-org/avala/internal/pkg/logger"
)

type App struct {
	Log   *logger.Logger
	DB    *gorm.DB
	Cfg   Config
	Repos Repos
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg := LoadConfig()

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	reposet := wireRepos(theDB, log)

	return &App{
		Log:   log,
		DB:    theDB,
		Cfg:   cfg,
		Repos: reposet,
	}, nil
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
