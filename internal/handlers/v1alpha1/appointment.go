package v1alpha1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/peeringlatam/network-planner/api/v1alpha1"
	"github.com/peeringlatam/network-planner/internal/auth"
	"github.com/peeringlatam/network-planner/internal/handlers/v1alpha1/mappers"
	"github.com/peeringlatam/network-planner/internal/service"
)

// (GET /api/v1/appointments/slots)
func (h *ServiceHandler) GetAppointmentSlots(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, v1alpha1.AppointmentSlots{
		Today: h.appointmentSrv.Today(),
		Slots: service.Slots(),
	})
}

// (GET /api/v1/appointments)
func (h *ServiceHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	user := auth.MustHaveUser(r.Context())

	appointments, err := h.appointmentSrv.ListAppointments(r.Context(), user.Username)
	if err != nil {
		h.respondServiceError(w, r, "list_appointments", err)
		return
	}

	respond(w, r, http.StatusOK, mappers.AppointmentListToApi(appointments))
}

// (POST /api/v1/appointments)
func (h *ServiceHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var form v1alpha1.AppointmentCreate
	if err := render.DecodeJSON(r.Body, &form); err != nil {
		respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid body: %v", err))
		return
	}

	if err := h.appointmentValidator.Struct(form); err != nil {
		h.respondServiceError(w, r, "create_appointment", err)
		return
	}

	user := auth.MustHaveUser(r.Context())
	appointment, err := h.appointmentSrv.Book(r.Context(), mappers.AppointmentFormApi(form, user.Username, user.Email))
	if err != nil {
		var upstream *service.ErrUpstreamFailure
		if errors.As(err, &upstream) && appointment != nil {
			// stored but not confirmed: the client still gets the record with its status
			respond(w, r, http.StatusBadGateway, struct {
				v1alpha1.Error
				Appointment v1alpha1.Appointment `json:"appointment"`
			}{
				Error:       v1alpha1.Error{Message: err.Error(), RequestId: requestIDPtr(r)},
				Appointment: mappers.AppointmentToApi(*appointment),
			})
			return
		}
		h.respondServiceError(w, r, "create_appointment", err)
		return
	}

	respond(w, r, http.StatusCreated, mappers.AppointmentToApi(*appointment))
}
