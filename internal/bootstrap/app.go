package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"recipeshare/internal/config"
	"recipeshare/internal/model"
	mysqlClient "recipeshare/internal/platform/mysql"
	"recipeshare/internal/pkg/upload"
)

type App struct {
	Config  *config.Config
	DB      *gorm.DB
	Logger  *zap.SugaredLogger
	Uploads *upload.Store

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	logger, err := newLogger(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("build logger failed: %w", err)
	}

	db, err := mysqlClient.New(ctx, cfg.MySQLDSN(), cfg.MySQL.MaxIdleConns, cfg.MySQL.MaxOpenConns)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.User{}, &model.Recipe{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	uploads, err := upload.NewStore(cfg.Upload.UserDir, cfg.Upload.RecipeDir, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:    cfg,
		DB:        db,
		Logger:    logger,
		Uploads:   uploads,
		StartedAt: time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	if a.Logger != nil {
		// Sync flushes buffered log entries; stderr sync errors are harmless.
		_ = a.Logger.Sync()
	}
	return closeErr
}

func newLogger(env string) (*zap.SugaredLogger, error) {
	if env == "prod" {
		logger, err := zap.NewProduction()
		if err != nil {
			return nil, err
		}
		return logger.Sugar(), nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
