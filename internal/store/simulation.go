package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/peeringlatam/network-planner/internal/store/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Simulation interface {
	List(ctx context.Context, filter *SimulationQueryFilter, opts *QueryOptions) (model.SimulationList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Simulation, error)
	Create(ctx context.Context, simulation model.Simulation) (*model.Simulation, error)
	UpdateNarrative(ctx context.Context, id uuid.UUID, n NarrativeUpdate) (*model.Simulation, error)
	Count(ctx context.Context, filter *SimulationQueryFilter) (int64, error)
}

// NarrativeUpdate carries regenerated texts for an existing simulation.
type NarrativeUpdate struct {
	Analysis              string
	Recommendations       string
	AnalysisSource        string
	RecommendationsSource string
}

type SimulationStore struct {
	db *gorm.DB
}

// Make sure we conform to Simulation interface
var _ Simulation = (*SimulationStore)(nil)

func NewSimulationStore(db *gorm.DB) Simulation {
	return &SimulationStore{db: db}
}

// List returns simulations newest first.
func (s *SimulationStore) List(ctx context.Context, filter *SimulationQueryFilter, opts *QueryOptions) (model.SimulationList, error) {
	var simulations model.SimulationList
	tx := s.getDB(ctx).Model(&simulations).Order("created_at DESC")

	if filter != nil {
		tx = apply(tx, filter.QueryFn)
	}
	if opts != nil {
		tx = apply(tx, opts.QueryFn)
	}

	if result := tx.Find(&simulations); result.Error != nil {
		return nil, result.Error
	}
	return simulations, nil
}

func (s *SimulationStore) Get(ctx context.Context, id uuid.UUID) (*model.Simulation, error) {
	var simulation model.Simulation
	result := s.getDB(ctx).First(&simulation, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &simulation, nil
}

func (s *SimulationStore) Create(ctx context.Context, simulation model.Simulation) (*model.Simulation, error) {
	if simulation.ID == uuid.Nil {
		simulation.ID = uuid.New()
	}

	result := s.getDB(ctx).Clauses(clause.Returning{}).Create(&simulation)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	return &simulation, nil
}

func (s *SimulationStore) UpdateNarrative(ctx context.Context, id uuid.UUID, n NarrativeUpdate) (*model.Simulation, error) {
	result := s.getDB(ctx).Model(&model.Simulation{}).Where("id = ?", id).Updates(map[string]any{
		"analysis_text":          n.Analysis,
		"recommendations_text":   n.Recommendations,
		"analysis_source":        n.AnalysisSource,
		"recommendations_source": n.RecommendationsSource,
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return s.Get(ctx, id)
}

func (s *SimulationStore) Count(ctx context.Context, filter *SimulationQueryFilter) (int64, error) {
	var count int64
	tx := s.getDB(ctx).Model(&model.Simulation{})
	if filter != nil {
		tx = apply(tx, filter.QueryFn)
	}
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *SimulationStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db.WithContext(ctx)
}
