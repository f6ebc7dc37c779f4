package mappers

import (
	"github.com/peeringlatam/network-planner/internal/estimation"
	"github.com/peeringlatam/network-planner/internal/narrative"
	"github.com/peeringlatam/network-planner/internal/store/model"
)

// ResultToSimulation builds the record persisted for one run. An empty username stores an
// anonymous simulation.
func ResultToSimulation(res *estimation.Result, n narrative.Narrative, username string) model.Simulation {
	services := make([]string, 0, len(res.Input.Services))
	for _, s := range res.Input.Services {
		services = append(services, string(s))
	}

	sim := model.Simulation{
		LatencyMs:                res.Input.LatencyMs,
		PacketLossPct:            res.Input.PacketLossPct,
		BandwidthMbps:            res.Input.BandwidthMbps,
		PeakTrafficGbps:          res.Input.PeakTrafficGbps,
		ConcurrentUsers:          res.Input.ConcurrentUsers,
		Services:                 model.JoinServices(services),
		Locale:                   string(res.Input.Locale),
		ImprovedLatencyMs:        res.ImprovedLatencyMs,
		ImprovedPacketLossPct:    res.ImprovedPacketLossPct,
		ImprovedBandwidthMbps:    res.ImprovedBandwidthMbps,
		LatencyImprovementPct:    res.LatencyImprovementPct,
		PacketLossImprovementPct: res.PacketLossImprovementPct,
		BandwidthImprovementPct:  res.BandwidthImprovementPct,
		OverallImprovementPct:    res.OverallImprovementPct,
		EstimatedMonthlyCost:     res.EstimatedMonthlyCost,
		EstimatedROIMonths:       res.EstimatedROIMonths,
		AnalysisText:             n.Analysis,
		RecommendationsText:      n.Recommendations,
		AnalysisSource:           string(n.AnalysisSource),
		RecommendationsSource:    string(n.RecommendationsSource),
	}
	if username != "" {
		sim.Username = &username
	}
	return sim
}

// SimulationToResult restores the result of a stored run. The per-dimension breakdown is
// not persisted.
func SimulationToResult(s model.Simulation) estimation.Result {
	services := make([]estimation.ServiceID, 0)
	for _, id := range s.ServiceList() {
		services = append(services, estimation.ServiceID(id))
	}

	return estimation.Result{
		Input: estimation.Input{
			LatencyMs:       s.LatencyMs,
			PacketLossPct:   s.PacketLossPct,
			BandwidthMbps:   s.BandwidthMbps,
			PeakTrafficGbps: s.PeakTrafficGbps,
			ConcurrentUsers: s.ConcurrentUsers,
			Services:        services,
			Locale:          estimation.Locale(s.Locale),
		},
		ImprovedLatencyMs:        s.ImprovedLatencyMs,
		ImprovedPacketLossPct:    s.ImprovedPacketLossPct,
		ImprovedBandwidthMbps:    s.ImprovedBandwidthMbps,
		LatencyImprovementPct:    s.LatencyImprovementPct,
		PacketLossImprovementPct: s.PacketLossImprovementPct,
		BandwidthImprovementPct:  s.BandwidthImprovementPct,
		OverallImprovementPct:    s.OverallImprovementPct,
		EstimatedMonthlyCost:     s.EstimatedMonthlyCost,
		EstimatedROIMonths:       s.EstimatedROIMonths,
	}
}

func NarrativeOf(s model.Simulation) narrative.Narrative {
	return narrative.Narrative{
		Analysis:              s.AnalysisText,
		Recommendations:       s.RecommendationsText,
		AnalysisSource:        narrative.Source(s.AnalysisSource),
		RecommendationsSource: narrative.Source(s.RecommendationsSource),
	}
}
