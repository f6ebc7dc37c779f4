package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Statistics is the snapshot read from the store on every scrape.
type Statistics struct {
	TotalSimulations     int64
	SimulationsByService map[string]int64
	TotalProducts        int64
	TotalAppointments    int64
}

// StatisticsSource is implemented by the store.
type StatisticsSource interface {
	Statistics(ctx context.Context) (Statistics, error)
}

type statsCollector struct {
	source               StatisticsSource
	totalSimulations     *prometheus.Desc
	simulationsByService *prometheus.Desc
	totalProducts        *prometheus.Desc
	totalAppointments    *prometheus.Desc
}

func newStatsCollector(source StatisticsSource) prometheus.Collector {
	fqName := func(name string) string {
		return fmt.Sprintf("%s_store_%s", networkPlanner, name)
	}

	return &statsCollector{
		source: source,
		totalSimulations: prometheus.NewDesc(
			fqName("simulations"),
			"Number of stored simulations.",
			nil,
			prometheus.Labels{},
		),
		simulationsByService: prometheus.NewDesc(
			fqName("simulations_by_service"),
			"Number of stored simulations that selected the service.",
			[]string{serviceLabel},
			prometheus.Labels{},
		),
		totalProducts: prometheus.NewDesc(
			fqName("products"),
			"Number of catalog products.",
			nil,
			prometheus.Labels{},
		),
		totalAppointments: prometheus.NewDesc(
			fqName("appointments"),
			"Number of booked appointments.",
			nil,
			prometheus.Labels{},
		),
	}
}

func (c *statsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalSimulations
	ch <- c.simulationsByService
	ch <- c.totalProducts
	ch <- c.totalAppointments
}

func (c *statsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats, err := c.source.Statistics(ctx)
	if err != nil {
		zap.S().Named("stats_collector").Errorf("failed to collect store statistics: %s", err)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.totalSimulations, prometheus.GaugeValue, float64(stats.TotalSimulations))
	ch <- prometheus.MustNewConstMetric(c.totalProducts, prometheus.GaugeValue, float64(stats.TotalProducts))
	ch <- prometheus.MustNewConstMetric(c.totalAppointments, prometheus.GaugeValue, float64(stats.TotalAppointments))

	for service, total := range stats.SimulationsByService {
		ch <- prometheus.MustNewConstMetric(c.simulationsByService, prometheus.GaugeValue, float64(total), service)
	}
}
