package main

import (
	"github.com/peeringlatam/network-planner/internal/store"
	"github.com/peeringlatam/network-planner/pkg/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the db",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, teardown, err := setup()
		if err != nil {
			return err
		}
		defer teardown()

		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		s := store.NewStore(db)
		defer s.Close()

		if err := migrate(cfg, db); err != nil {
			return err
		}

		version, err := migrations.Version(db)
		if err != nil {
			return err
		}
		zap.S().Infow("Db migrated", "version", version)
		return nil
	},
}
