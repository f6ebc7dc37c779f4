package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	apiserver "github.com/peeringlatam/network-planner/internal/api_server"
	"github.com/peeringlatam/network-planner/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the planner api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, teardown, err := setup()
		if err != nil {
			return err
		}
		defer teardown()

		zap.S().Info("Starting API service")
		defer zap.S().Info("API service stopped")

		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		s := store.NewStore(db)
		defer s.Close()

		if err := migrate(cfg, db); err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		apiListener, err := newListener(cfg.Service.Address)
		if err != nil {
			return err
		}
		metricsListener, err := newListener(cfg.Service.MetricsAddress)
		if err != nil {
			return err
		}

		metricsServer, err := apiserver.NewMetricServer(cfg.Service.MetricsAddress, metricsListener, cfg.Service.LogLevel, s)
		if err != nil {
			return err
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return apiserver.New(cfg, s, apiListener).Run(gctx)
		})
		g.Go(func() error {
			return metricsServer.Run(gctx)
		})

		return g.Wait()
	},
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
