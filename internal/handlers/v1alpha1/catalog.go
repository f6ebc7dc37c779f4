package v1alpha1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/peeringlatam/network-planner/internal/handlers/v1alpha1/mappers"
)

// (GET /api/v1/catalog)
func (h *ServiceHandler) GetCatalogPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalogSrv.GetPage(r.Context(), r.URL.Query().Get("page"))
	if err != nil {
		h.respondServiceError(w, r, "get_catalog_page", err)
		return
	}

	respond(w, r, http.StatusOK, mappers.CatalogPageToApi(*page))
}

// (GET /api/v1/products)
func (h *ServiceHandler) GetProductFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := h.catalogSrv.Feed(r.Context())
	if err != nil {
		h.respondServiceError(w, r, "get_product_feed", err)
		return
	}

	respond(w, r, http.StatusOK, mappers.ProductFeedToApi(*feed))
}

// (GET /api/v1/products/{id})
func (h *ServiceHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathProductID(w, r, "id")
	if !ok {
		return
	}

	product, err := h.catalogSrv.GetProduct(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, "get_product", err)
		return
	}

	respond(w, r, http.StatusOK, mappers.ProductToApi(*product))
}

func pathProductID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid %s %q", name, raw))
		return 0, false
	}
	return uint(id), true
}
