package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/peeringlatam/network-planner/internal/estimation"
	"github.com/peeringlatam/network-planner/internal/estimation/calculators"
	"github.com/peeringlatam/network-planner/internal/narrative"
	"github.com/peeringlatam/network-planner/internal/service/mappers"
	"github.com/peeringlatam/network-planner/internal/store"
	"github.com/peeringlatam/network-planner/internal/store/model"
	"github.com/peeringlatam/network-planner/pkg/log"
	"github.com/peeringlatam/network-planner/pkg/metrics"
)

// SimulationService runs the improvement simulator: it computes the projected network, asks
// the narrative generator for the texts and stores the run.
type SimulationService struct {
	store     store.Store
	engine    *estimation.Engine
	generator *narrative.Generator
	logger    *log.StructuredLogger
}

func NewSimulationService(store store.Store, generator *narrative.Generator) *SimulationService {
	if generator == nil {
		generator = narrative.NewGenerator()
	}
	return &SimulationService{
		store:     store,
		engine:    calculators.NewDefaultEngine(),
		generator: generator,
		logger:    log.NewDebugLogger("simulation_service"),
	}
}

// Estimate computes the result without narrative nor persistence.
func (s *SimulationService) Estimate(in estimation.Input) (*estimation.Result, error) {
	res, err := s.engine.Run(in)
	if err != nil {
		var invalid *estimation.ErrInvalidInput
		if errors.As(err, &invalid) {
			return nil, NewErrInvalidSimulation(invalid.Violations)
		}
		return nil, err
	}
	return res, nil
}

// CreateSimulation computes, narrates and stores a run for username, which may be empty.
func (s *SimulationService) CreateSimulation(ctx context.Context, in estimation.Input, username string) (*model.Simulation, error) {
	tracer := s.logger.WithContext(ctx).Operation("create_simulation").
		WithString("username", username).
		WithFloat("latency_ms", in.LatencyMs).
		WithInt("services", len(in.Services)).
		Build()

	res, err := s.Estimate(in)
	if err != nil {
		tracer.Error(err).Log()
		return nil, err
	}
	tracer.Step("estimated").
		WithFloat("overall_improvement_pct", res.OverallImprovementPct).
		WithString("monthly_cost", res.EstimatedMonthlyCost.StringFixed(2)).
		Log()

	n := s.generator.Generate(ctx, narrative.NewSummary(res))
	tracer.Step("narrated").
		WithString("analysis_source", string(n.AnalysisSource)).
		WithString("recommendations_source", string(n.RecommendationsSource)).
		Log()

	created, err := s.store.Simulation().Create(ctx, mappers.ResultToSimulation(res, n, username))
	if err != nil {
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to store simulation: %w", err)
	}

	metrics.IncreaseSimulationsTotalMetric(created.ServiceList()...)
	if username != "" {
		metrics.UniqueVisitsPerWeek.IncreaseTotalUniqueVisit(username)
	}

	tracer.Success().WithUUID("simulation_id", created.ID).Log()
	return created, nil
}

// GetSimulation returns the run. A run stored for a user is only visible to that user.
func (s *SimulationService) GetSimulation(ctx context.Context, id uuid.UUID, username string) (*model.Simulation, error) {
	sim, err := s.store.Simulation().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrSimulationNotFound(id)
		}
		return nil, err
	}

	if sim.Username != nil && *sim.Username != username {
		return nil, NewErrSimulationForbidden(id)
	}

	return sim, nil
}

// ListSimulations returns the user's runs, newest first. A non positive limit returns all.
func (s *SimulationService) ListSimulations(ctx context.Context, username string, limit int) (model.SimulationList, error) {
	filter := store.NewSimulationQueryFilter().ByUsername(username)
	return s.store.Simulation().List(ctx, filter, store.NewQueryOptions().WithLimit(limit))
}

// RegenerateNarrative produces fresh texts for a stored run. They replace the stored ones only
// when persist is set, and only the owner of the run may persist. Anonymous runs are read only.
func (s *SimulationService) RegenerateNarrative(ctx context.Context, id uuid.UUID, username string, persist bool) (*model.Simulation, error) {
	tracer := s.logger.WithContext(ctx).Operation("regenerate_narrative").
		WithUUID("simulation_id", id).
		WithString("persist", fmt.Sprintf("%t", persist)).
		Build()

	sim, err := s.GetSimulation(ctx, id, username)
	if err != nil {
		tracer.Error(err).Log()
		return nil, err
	}

	if persist && sim.Username == nil {
		err := NewErrSimulationReadOnly(id)
		tracer.Error(err).Log()
		return nil, err
	}

	res := mappers.SimulationToResult(*sim)
	n := s.generator.Generate(ctx, narrative.NewSummary(&res))

	if !persist {
		sim.AnalysisText = n.Analysis
		sim.RecommendationsText = n.Recommendations
		sim.AnalysisSource = string(n.AnalysisSource)
		sim.RecommendationsSource = string(n.RecommendationsSource)
		tracer.Success().WithBool("persisted", false).Log()
		return sim, nil
	}

	updated, err := s.store.Simulation().UpdateNarrative(ctx, id, store.NarrativeUpdate{
		Analysis:              n.Analysis,
		Recommendations:       n.Recommendations,
		AnalysisSource:        string(n.AnalysisSource),
		RecommendationsSource: string(n.RecommendationsSource),
	})
	if err != nil {
		tracer.Error(err).Log()
		return nil, err
	}

	tracer.Success().WithBool("persisted", true).Log()
	return updated, nil
}
