package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/peeringlatam/network-planner/pkg/log"
	"github.com/peeringlatam/network-planner/pkg/metrics"
	"go.uber.org/zap"
)

const uniqueVisitsResetInterval = 7 * 24 * time.Hour

type MetricServer struct {
	bindAddress string
	httpServer  *http.Server
	listener    net.Listener
}

// NewMetricServer serves /metrics. The statistics of source are exported at scrape time.
func NewMetricServer(bindAddress string, listener net.Listener, logLevel string, source metrics.StatisticsSource) (*MetricServer, error) {
	if source != nil {
		if err := metrics.RegisterStatsCollector(source); err != nil {
			return nil, err
		}
	}

	router := chi.NewRouter()
	router.Use(log.ConditionalLogger(logLevel, zap.L(), "metrics_server"))

	prometheusMetricHandler := metrics.NewPrometheusMetricsHandler()
	router.Handle("/metrics", prometheusMetricHandler.Handler())

	s := &MetricServer{
		bindAddress: bindAddress,
		listener:    listener,
		httpServer: &http.Server{
			Addr:    bindAddress,
			Handler: router,
		},
	}

	return s, nil
}

func (m *MetricServer) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		m.httpServer.SetKeepAlivesEnabled(false)
		_ = m.httpServer.Shutdown(ctxTimeout)
		zap.S().Named("metrics_server").Info("metrics server terminated")
	}()

	ticker := time.NewTicker(uniqueVisitsResetInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.UniqueVisitsPerWeek.Reset()
				zap.S().Named("metrics_server").Info("weekly unique visits metric reset")
			case <-ctx.Done():
				return
			}
		}
	}()

	zap.S().Named("metrics_server").Infof("serving metrics: %s", m.bindAddress)
	if err := m.httpServer.Serve(m.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
