package main

import (
	"fmt"

	"github.com/peeringlatam/network-planner/internal/config"
	"github.com/peeringlatam/network-planner/internal/store"
	"github.com/peeringlatam/network-planner/pkg/log"
	"github.com/peeringlatam/network-planner/pkg/migrations"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// setup reads the configuration and installs the global logger. The returned func restores
// the previous logger and flushes the new one.
func setup() (*config.Config, func(), error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, fmt.Errorf("reading configuration: %w", err)
	}

	logger := log.InitLog(log.ParseLevel(cfg.Service.LogLevel))
	undo := zap.ReplaceGlobals(logger)

	return cfg, func() {
		_ = logger.Sync()
		undo()
	}, nil
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	zap.S().Info("Initializing data store")
	db, err := store.InitDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing data store: %w", err)
	}
	return db, nil
}

func migrate(cfg *config.Config, db *gorm.DB) error {
	folder := migrationFolder
	if folder == "" {
		folder = cfg.Service.MigrationFolder
	}
	if err := migrations.MigrateStore(db, folder); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
