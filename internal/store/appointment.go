package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/peeringlatam/network-planner/internal/store/model"
	"gorm.io/gorm"
)

type Appointment interface {
	List(ctx context.Context, filter *AppointmentQueryFilter) (model.AppointmentList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	Create(ctx context.Context, appointment model.Appointment) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error
	Count(ctx context.Context) (int64, error)
}

type AppointmentStore struct {
	db *gorm.DB
}

var _ Appointment = (*AppointmentStore)(nil)

func NewAppointmentStore(db *gorm.DB) Appointment {
	return &AppointmentStore{db: db}
}

func (a *AppointmentStore) List(ctx context.Context, filter *AppointmentQueryFilter) (model.AppointmentList, error) {
	var appointments model.AppointmentList
	tx := a.getDB(ctx).Model(&appointments).Order("date, hour")
	if filter != nil {
		tx = apply(tx, filter.QueryFn)
	}
	if err := tx.Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (a *AppointmentStore) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var appointment model.Appointment
	result := a.getDB(ctx).First(&appointment, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &appointment, nil
}

func (a *AppointmentStore) Create(ctx context.Context, appointment model.Appointment) (*model.Appointment, error) {
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	if appointment.Status == "" {
		appointment.Status = model.AppointmentPending
	}
	if err := a.getDB(ctx).Create(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return &appointment, nil
}

func (a *AppointmentStore) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	result := a.getDB(ctx).Model(&model.Appointment{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (a *AppointmentStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := a.getDB(ctx).Model(&model.Appointment{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (a *AppointmentStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return a.db.WithContext(ctx)
}
