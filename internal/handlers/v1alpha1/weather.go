package v1alpha1

import (
	"net/http"

	"github.com/peeringlatam/network-planner/internal/handlers/v1alpha1/mappers"
)

// (GET /api/v1/weather)
func (h *ServiceHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	weather, err := h.weatherSrv.Current(r.Context())
	if err != nil {
		h.respondServiceError(w, r, "get_weather", err)
		return
	}

	respond(w, r, http.StatusOK, mappers.WeatherToApi(*weather))
}
