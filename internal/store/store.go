package store

import (
	"context"
	"fmt"

	"github.com/peeringlatam/network-planner/internal/estimation"
	"github.com/peeringlatam/network-planner/internal/store/model"
	"github.com/peeringlatam/network-planner/pkg/metrics"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Simulation() Simulation
	Product() Product
	Cart() Cart
	Appointment() Appointment
	// Seed loads the bundled catalog. Running it twice leaves the catalog unchanged.
	Seed(ctx context.Context) error
	Statistics(ctx context.Context) (metrics.Statistics, error)
	Close() error
}

type DataStore struct {
	db          *gorm.DB
	log         logrus.FieldLogger
	simulation  Simulation
	product     Product
	cart        Cart
	appointment Appointment
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		db:          db,
		log:         logrus.New().WithField("component", "store"),
		simulation:  NewSimulationStore(db),
		product:     NewProductStore(db),
		cart:        NewCartStore(db),
		appointment: NewAppointmentStore(db),
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db, s.log)
}

func (s *DataStore) Simulation() Simulation {
	return s.simulation
}

func (s *DataStore) Product() Product {
	return s.product
}

func (s *DataStore) Cart() Cart {
	return s.cart
}

func (s *DataStore) Appointment() Appointment {
	return s.appointment
}

func (s *DataStore) Statistics(ctx context.Context) (metrics.Statistics, error) {
	stats := metrics.Statistics{SimulationsByService: make(map[string]int64)}

	var err error
	if stats.TotalSimulations, err = s.simulation.Count(ctx, nil); err != nil {
		return metrics.Statistics{}, err
	}
	for _, svc := range estimation.Services() {
		count, err := s.simulation.Count(ctx, NewSimulationQueryFilter().ByService(string(svc.ID)))
		if err != nil {
			return metrics.Statistics{}, err
		}
		stats.SimulationsByService[string(svc.ID)] = count
	}
	if stats.TotalProducts, err = s.product.Count(ctx); err != nil {
		return metrics.Statistics{}, err
	}
	if stats.TotalAppointments, err = s.appointment.Count(ctx); err != nil {
		return metrics.Statistics{}, err
	}
	return stats, nil
}

func (s *DataStore) Seed(ctx context.Context) error {
	products, err := LoadCatalog()
	if err != nil {
		return err
	}

	ctx, err = s.NewTransactionContext(ctx)
	if err != nil {
		return err
	}

	for _, p := range products {
		if _, err := s.product.Upsert(ctx, p); err != nil {
			_, _ = Rollback(ctx)
			return fmt.Errorf("failed to seed product %q: %w", p.Name, err)
		}
	}

	if _, err := Commit(ctx); err != nil {
		return err
	}

	s.log.Infof("catalog seeded with %d products", len(products))
	return nil
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// toModelProducts is shared by the seed loader and tests.
func toModelProducts(entries []catalogEntry) []model.Product {
	products := make([]model.Product, 0, len(entries))
	for _, e := range entries {
		p := model.Product{
			Name:        e.Name,
			Description: e.Description,
			Price:       e.Price,
		}
		for i, url := range e.Images {
			p.Images = append(p.Images, model.ProductImage{URL: url, Position: i + 1})
		}
		products = append(products, p)
	}
	return products
}
