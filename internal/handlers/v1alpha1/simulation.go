package v1alpha1

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/peeringlatam/network-planner/api/v1alpha1"
	"github.com/peeringlatam/network-planner/internal/auth"
	"github.com/peeringlatam/network-planner/internal/estimation"
	"github.com/peeringlatam/network-planner/internal/handlers/v1alpha1/mappers"
)

const defaultSimulationListLimit = 20

// currentUsername is empty for anonymous requests.
func currentUsername(r *http.Request) string {
	if user, found := auth.UserFromContext(r.Context()); found {
		return user.Username
	}
	return ""
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid %s %q", name, chi.URLParam(r, name)))
		return uuid.Nil, false
	}
	return id, true
}

// (POST /api/v1/simulations)
func (h *ServiceHandler) CreateSimulation(w http.ResponseWriter, r *http.Request) {
	var form v1alpha1.SimulationCreate
	if err := render.DecodeJSON(r.Body, &form); err != nil {
		respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid body: %v", err))
		return
	}

	sim, err := h.simulationSrv.CreateSimulation(r.Context(), mappers.SimulationFormToInput(form), currentUsername(r))
	if err != nil {
		h.respondServiceError(w, r, "create_simulation", err)
		return
	}

	respond(w, r, http.StatusCreated, mappers.SimulationToApi(*sim))
}

// (GET /api/v1/simulations)
func (h *ServiceHandler) ListSimulations(w http.ResponseWriter, r *http.Request) {
	var param *int
	if !bindQuery(w, r, "limit", &param) {
		return
	}
	limit := defaultSimulationListLimit
	if param != nil {
		if *param < 1 {
			respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid limit %d", *param))
			return
		}
		limit = *param
	}

	user := auth.MustHaveUser(r.Context())
	sims, err := h.simulationSrv.ListSimulations(r.Context(), user.Username, limit)
	if err != nil {
		h.respondServiceError(w, r, "list_simulations", err)
		return
	}

	respond(w, r, http.StatusOK, mappers.SimulationListToApi(sims))
}

// (GET /api/v1/simulations/{id})
func (h *ServiceHandler) GetSimulation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	sim, err := h.simulationSrv.GetSimulation(r.Context(), id, currentUsername(r))
	if err != nil {
		h.respondServiceError(w, r, "get_simulation", err)
		return
	}

	respond(w, r, http.StatusOK, mappers.SimulationToApi(*sim))
}

// (POST /api/v1/simulations/{id}/narrative)
func (h *ServiceHandler) RegenerateNarrative(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var persist *bool
	if !bindQuery(w, r, "persist", &persist) {
		return
	}

	sim, err := h.simulationSrv.RegenerateNarrative(r.Context(), id, currentUsername(r), persist != nil && *persist)
	if err != nil {
		h.respondServiceError(w, r, "regenerate_narrative", err)
		return
	}

	respond(w, r, http.StatusOK, mappers.SimulationToApi(*sim))
}

// (GET /api/v1/services)
func (h *ServiceHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, mappers.ServicesToApi(estimation.Services()))
}
