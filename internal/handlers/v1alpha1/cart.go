package v1alpha1

import (
	"net/http"

	"github.com/peeringlatam/network-planner/internal/handlers/v1alpha1/mappers"
)

// (POST /api/v1/carts)
func (h *ServiceHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartSrv.CreateCart(r.Context())
	if err != nil {
		h.respondServiceError(w, r, "create_cart", err)
		return
	}

	respond(w, r, http.StatusCreated, mappers.CartToApi(*cart))
}

// (GET /api/v1/carts/{id})
func (h *ServiceHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	cart, err := h.cartSrv.GetCart(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, "get_cart", err)
		return
	}

	respond(w, r, http.StatusOK, mappers.CartToApi(*cart))
}

// (POST /api/v1/carts/{id}/items/{productId})
func (h *ServiceHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	productID, ok := pathProductID(w, r, "productId")
	if !ok {
		return
	}

	cart, err := h.cartSrv.AddItem(r.Context(), cartID, productID)
	if err != nil {
		h.respondServiceError(w, r, "add_cart_item", err)
		return
	}

	respond(w, r, http.StatusOK, mappers.CartToApi(*cart))
}

// (DELETE /api/v1/carts/{id}/items/{productId})
func (h *ServiceHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	productID, ok := pathProductID(w, r, "productId")
	if !ok {
		return
	}

	cart, err := h.cartSrv.RemoveItem(r.Context(), cartID, productID)
	if err != nil {
		h.respondServiceError(w, r, "remove_cart_item", err)
		return
	}

	respond(w, r, http.StatusOK, mappers.CartToApi(*cart))
}
