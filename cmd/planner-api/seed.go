package main

import (
	"github.com/peeringlatam/network-planner/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the product catalog into the db",
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

		if err := s.Seed(cmd.Context()); err != nil {
			return err
		}
		zap.S().Info("Catalog seeded")
		return nil
	},
}
