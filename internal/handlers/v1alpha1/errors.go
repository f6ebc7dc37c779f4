package v1alpha1

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/peeringlatam/network-planner/api/v1alpha1"
	"github.com/peeringlatam/network-planner/internal/handlers/validator"
	"github.com/peeringlatam/network-planner/internal/service"
	"github.com/peeringlatam/network-planner/pkg/requestid"
)

const internalErrorMessage = "internal server error"

func respond(w http.ResponseWriter, r *http.Request, status int, body any) {
	render.Status(r, status)
	render.JSON(w, r, body)
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string, violations ...string) {
	respond(w, r, status, v1alpha1.Error{
		Message:    message,
		RequestId:  requestIDPtr(r),
		Violations: violations,
	})
}

func requestIDPtr(r *http.Request) *string {
	return requestid.FromContextPtr(r.Context())
}

// respondServiceError maps the service error types to their status code. Anything unknown is
// logged and answered with a 500 that carries no detail.
func (h *ServiceHandler) respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var (
		notFound          *service.ErrResourceNotFound
		invalidSimulation *service.ErrInvalidSimulation
		invalidAppt       *service.ErrInvalidAppointment
		invalidChat       *service.ErrInvalidChatMessage
		invalidForm       *validator.ErrInvalidForm
		unsupported       *service.ErrUnsupportedFormat
		forbidden         *service.ErrSimulationForbidden
		upstream          *service.ErrUpstreamFailure
	)

	switch {
	case errors.As(err, &invalidSimulation):
		respondError(w, r, http.StatusBadRequest, err.Error(), invalidSimulation.Violations...)
	case errors.As(err, &invalidForm):
		respondError(w, r, http.StatusBadRequest, err.Error(), invalidForm.Violations...)
	case errors.As(err, &invalidAppt), errors.As(err, &invalidChat), errors.As(err, &unsupported):
		respondError(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &forbidden):
		respondError(w, r, http.StatusForbidden, err.Error())
	case errors.As(err, &notFound):
		respondError(w, r, http.StatusNotFound, err.Error())
	case errors.As(err, &upstream):
		respondError(w, r, http.StatusBadGateway, err.Error())
	default:
		h.logger.WithContext(r.Context()).Operation(op).Build().Error(err).Log()
		respondError(w, r, http.StatusInternalServerError, internalErrorMessage)
	}
}
