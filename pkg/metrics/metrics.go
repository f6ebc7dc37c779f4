package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	networkPlanner = "network_planner"

	// Simulation metrics
	simulationsTotal       = "simulations_total"
	narrativeFallbackTotal = "narrative_fallback_total"

	// Site metrics
	chatRequestsTotal = "chat_requests_total"
	appointmentsTotal = "appointments_total"

	// Labels
	serviceLabel = "service"
	kindLabel    = "kind"
	reasonLabel  = "reason"
	outcomeLabel = "outcome"
)

/**
* Metrics definition
**/
var simulationsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: networkPlanner,
		Name:      simulationsTotal,
		Help:      "number of simulations computed, partitioned by selected service",
	},
	[]string{serviceLabel},
)

var narrativeFallbackTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: networkPlanner,
		Name:      narrativeFallbackTotal,
		Help:      "number of narrative texts served from the static templates",
	},
	[]string{kindLabel, reasonLabel},
)

var chatRequestsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: networkPlanner,
		Name:      chatRequestsTotal,
		Help:      "number of chatbot requests by outcome",
	},
	[]string{outcomeLabel},
)

var appointmentsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: networkPlanner,
		Name:      appointmentsTotal,
		Help:      "number of appointment bookings by outcome",
	},
	[]string{outcomeLabel},
)

// IncreaseSimulationsTotalMetric counts one simulation for every selected service.
func IncreaseSimulationsTotalMetric(services ...string) {
	for _, s := range services {
		simulationsTotalMetric.With(prometheus.Labels{serviceLabel: s}).Inc()
	}
}

func IncreaseNarrativeFallbackMetric(kind, reason string) {
	narrativeFallbackTotalMetric.With(prometheus.Labels{kindLabel: kind, reasonLabel: reason}).Inc()
}

func IncreaseChatRequestsMetric(outcome string) {
	chatRequestsTotalMetric.With(prometheus.Labels{outcomeLabel: outcome}).Inc()
}

func IncreaseAppointmentsMetric(outcome string) {
	appointmentsTotalMetric.With(prometheus.Labels{outcomeLabel: outcome}).Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(simulationsTotalMetric)
	prometheus.MustRegister(narrativeFallbackTotalMetric)
	prometheus.MustRegister(chatRequestsTotalMetric)
	prometheus.MustRegister(appointmentsTotalMetric)
	prometheus.MustRegister(totalUniqueVisitPerWeekMetric)
}
