package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id string, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrSimulationNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id.String(), "simulation")
}

func NewErrProductNotFound(id uint) *ErrResourceNotFound {
	return NewErrResourceNotFound(fmt.Sprintf("%d", id), "product")
}

func NewErrCartNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id.String(), "cart")
}

func NewErrAppointmentNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id.String(), "appointment")
}

// ErrInvalidSimulation lists every rule the submitted network broke.
type ErrInvalidSimulation struct {
	error
	Violations []string
}

func NewErrInvalidSimulation(violations []string) *ErrInvalidSimulation {
	return &ErrInvalidSimulation{
		error:      fmt.Errorf("invalid simulation: %s", strings.Join(violations, "; ")),
		Violations: violations,
	}
}

type ErrInvalidAppointment struct {
	error
}

func NewErrInvalidAppointment(message string) *ErrInvalidAppointment {
	return &ErrInvalidAppointment{fmt.Errorf("invalid appointment: %s", message)}
}

type ErrSimulationForbidden struct {
	error
}

func NewErrSimulationForbidden(id uuid.UUID) *ErrSimulationForbidden {
	return &ErrSimulationForbidden{fmt.Errorf("forbidden to access simulation %s", id)}
}

func NewErrSimulationReadOnly(id uuid.UUID) *ErrSimulationForbidden {
	return &ErrSimulationForbidden{fmt.Errorf("simulation %s has no owner and cannot be modified", id)}
}

type ErrUnsupportedFormat struct {
	error
}

func NewErrUnsupportedFormat(format string) *ErrUnsupportedFormat {
	return &ErrUnsupportedFormat{fmt.Errorf("unsupported report format: %q", format)}
}

// ErrChatUnavailable carries the localized reply shown to the user.
type ErrChatUnavailable struct {
	error
	Reply string
}

func NewErrChatUnavailable(reply string, cause error) *ErrChatUnavailable {
	return &ErrChatUnavailable{error: fmt.Errorf("assistant unavailable: %w", cause), Reply: reply}
}

func (e *ErrChatUnavailable) Unwrap() error {
	return e.error
}

type ErrInvalidChatMessage struct {
	error
}

func NewErrInvalidChatMessage() *ErrInvalidChatMessage {
	return &ErrInvalidChatMessage{fmt.Errorf("message must not be empty")}
}

// ErrUpstreamFailure reports a failing collaborator outside the service: the mail relay or the
// weather provider.
type ErrUpstreamFailure struct {
	error
}

func NewErrMailDelivery(cause error) *ErrUpstreamFailure {
	return &ErrUpstreamFailure{fmt.Errorf("failed to deliver confirmation mail: %w", cause)}
}

func NewErrWeatherUnavailable(cause error) *ErrUpstreamFailure {
	return &ErrUpstreamFailure{fmt.Errorf("weather unavailable: %w", cause)}
}

func (e *ErrUpstreamFailure) Unwrap() error {
	return e.error
}
