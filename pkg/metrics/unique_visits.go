package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type uniqueVisits struct {
	counter       prometheus.Gauge
	visitorsCache map[string]struct{}
	mu            sync.RWMutex
}

const visitCountPerWeek = "simulator_visits_count_per_week"

var totalUniqueVisitPerWeekMetric = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Subsystem: networkPlanner,
		Name:      visitCountPerWeek,
		Help:      "number of distinct visitors running simulations during the current week",
	},
)

// UniqueVisitsPerWeek is reset weekly by the metrics server.
var UniqueVisitsPerWeek = &uniqueVisits{
	counter:       totalUniqueVisitPerWeekMetric,
	visitorsCache: make(map[string]struct{}),
}

func (v *uniqueVisits) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.visitorsCache = make(map[string]struct{})
	v.counter.Set(0)
}

func (v *uniqueVisits) IncreaseTotalUniqueVisit(visitor string) {
	if visitor == "" {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if _, exists := v.visitorsCache[visitor]; exists {
		return
	}

	v.visitorsCache[visitor] = struct{}{}
	v.counter.Inc()
}

func (v *uniqueVisits) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.visitorsCache)
}
