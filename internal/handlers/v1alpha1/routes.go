package v1alpha1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/peeringlatam/network-planner/internal/auth"
)

// HandlerFromMux registers every /api/v1 operation on r and returns it.
func HandlerFromMux(h *ServiceHandler, r chi.Router) http.Handler {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/info", h.GetInfo)
		r.Get("/services", h.ListServices)

		r.Route("/simulations", func(r chi.Router) {
			r.Post("/", h.CreateSimulation)
			r.With(auth.RequireUser).Get("/", h.ListSimulations)
			r.Get("/{id}", h.GetSimulation)
			r.Post("/{id}/narrative", h.RegenerateNarrative)
		})

		r.Get("/catalog", h.GetCatalogPage)
		r.Get("/products", h.GetProductFeed)
		r.Get("/products/{id}", h.GetProduct)

		r.Route("/carts", func(r chi.Router) {
			r.Post("/", h.CreateCart)
			r.Get("/{id}", h.GetCart)
			r.Post("/{id}/items/{productId}", h.AddCartItem)
			r.Delete("/{id}/items/{productId}", h.RemoveCartItem)
		})

		r.Get("/appointments/slots", h.GetAppointmentSlots)
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser)
			r.Get("/appointments", h.ListAppointments)
			r.Post("/appointments", h.CreateAppointment)
			r.Post("/chat", h.Chat)
			r.Get("/reports/products", h.GetProductReport)
		})

		r.Get("/weather", h.GetWeather)
	})
	return r
}
