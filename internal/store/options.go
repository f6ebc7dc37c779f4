package store

import (
	"gorm.io/gorm"
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type SortOrder int

const (
	Unsorted SortOrder = iota
	SortByID
	SortByCreatedTime
	SortByName
)

type SimulationQueryFilter BaseQuerier

func NewSimulationQueryFilter() *SimulationQueryFilter {
	return &SimulationQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (f *SimulationQueryFilter) ByUsername(username string) *SimulationQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("username = ?", username)
	})
	return f
}

// ByService keeps simulations that selected the service.
func (f *SimulationQueryFilter) ByService(service string) *SimulationQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("(',' || services || ',') LIKE ?", "%,"+service+",%")
	})
	return f
}

type QueryOptions BaseQuerier

func NewQueryOptions() *QueryOptions {
	return &QueryOptions{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (o *QueryOptions) WithLimit(limit int) *QueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return tx
		}
		return tx.Limit(limit)
	})
	return o
}

func (o *QueryOptions) WithOffset(offset int) *QueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Offset(offset)
	})
	return o
}

func (o *QueryOptions) WithSortOrder(sort SortOrder) *QueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		switch sort {
		case SortByID:
			return tx.Order("id")
		case SortByCreatedTime:
			return tx.Order("created_at DESC")
		case SortByName:
			return tx.Order("name")
		default:
			return tx
		}
	})
	return o
}

type AppointmentQueryFilter BaseQuerier

func NewAppointmentQueryFilter() *AppointmentQueryFilter {
	return &AppointmentQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (f *AppointmentQueryFilter) ByUsername(username string) *AppointmentQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("username = ?", username)
	})
	return f
}

func (f *AppointmentQueryFilter) BySlot(date, hour string) *AppointmentQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("date = ? AND hour = ?", date, hour)
	})
	return f
}

func apply(tx *gorm.DB, fns ...[]func(*gorm.DB) *gorm.DB) *gorm.DB {
	for _, list := range fns {
		for _, fn := range list {
			tx = fn(tx)
		}
	}
	return tx
}
