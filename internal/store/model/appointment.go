package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentFailed    AppointmentStatus = "mail_failed"
)

type Appointment struct {
	ID        uuid.UUID `gorm:"primaryKey;"`
	Username  string    `gorm:"index;not null"`
	Email     string
	Date      string `gorm:"not null"`
	Hour      string `gorm:"not null"`
	Subject   string `gorm:"not null"`
	Status    AppointmentStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

type AppointmentList []Appointment
