package handler

import (
	"errors"
	"net/http"

	"github.com/Yana3030-web/stroymaster-website/internal/middleware"
	"github.com/Yana3030-web/stroymaster-website/internal/model"
	"github.com/Yana3030-web/stroymaster-website/internal/order"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	flow   *order.Flow
	logger zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(flow *order.Flow, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		flow:   flow,
		logger: logger.With().Str("handler", "order").Logger(),
	}
}

// Submit handles POST /api/orders requests. Validation problems come
// back as 422 with per-field messages; a submission already in flight
// for the session answers 409.
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var form model.OrderForm
	if !decodeJSON(w, r, &form, h.logger) {
		return
	}

	sessionID := middleware.SessionID(r.Context())
	result, err := h.flow.Submit(r.Context(), sessionID, &form)
	if err != nil {
		if errors.Is(err, model.ErrSubmissionInFlight) {
			writeError(w, http.StatusConflict, "order submission already in progress", h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to submit order", h.logger)
		return
	}

	status := http.StatusOK
	if result.Status == model.StatusRejected {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, result)
}

// State handles GET /api/orders/state requests. The storefront polls
// this to show the busy spinner and the transient success banner.
func (h *OrderHandler) State(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, h.flow.State(middleware.SessionID(r.Context())))
}
