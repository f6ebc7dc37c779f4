package v1alpha1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/peeringlatam/network-planner/api/v1alpha1"
	"github.com/peeringlatam/network-planner/internal/handlers/v1alpha1/mappers"
	"github.com/peeringlatam/network-planner/internal/service"
)

// (POST /api/v1/chat)
func (h *ServiceHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req v1alpha1.ChatRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid body: %v", err))
		return
	}

	if err := h.chatValidator.Struct(req); err != nil {
		h.respondServiceError(w, r, "chat", err)
		return
	}

	reply, err := h.chatSrv.Reply(r.Context(), req.Message, mappers.ChatLocale(req))
	if err != nil {
		var unavailable *service.ErrChatUnavailable
		if errors.As(err, &unavailable) {
			respond(w, r, http.StatusServiceUnavailable, v1alpha1.ChatReply{Reply: unavailable.Reply})
			return
		}
		h.respondServiceError(w, r, "chat", err)
		return
	}

	respond(w, r, http.StatusOK, v1alpha1.ChatReply{Reply: reply})
}
