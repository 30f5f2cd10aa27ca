package handler

import (
	"net/http"
	"strconv"

	"github.com/Yana3030-web/stroymaster-website/internal/cart"
	"github.com/Yana3030-web/stroymaster-website/internal/catalog"
	"github.com/Yana3030-web/stroymaster-website/internal/middleware"
	"github.com/Yana3030-web/stroymaster-website/internal/model"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests. Carts are keyed by
// the visitor session from the session middleware.
type CartHandler struct {
	store   cart.Store
	gateway *catalog.Gateway
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(store cart.Store, gateway *catalog.Gateway, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		store:   store,
		gateway: gateway,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// CartResponse is the cart as the storefront renders it.
type CartResponse struct {
	Items          []cart.Item `json:"items"`
	TotalItems     int         `json:"totalItems"`
	TotalPrice     float64     `json:"totalPrice"`
	FormattedTotal string      `json:"formattedTotal"`
}

func newCartResponse(c *cart.Cart) CartResponse {
	items := c.Items
	if items == nil {
		items = []cart.Item{}
	}
	return CartResponse{
		Items:          items,
		TotalItems:     c.TotalItems(),
		TotalPrice:     c.TotalPrice(),
		FormattedTotal: model.FormatPrice(c.TotalPrice()),
	}
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sessionID := middleware.SessionID(r.Context())

	c, err := h.store.Get(r.Context(), sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, newCartResponse(c))
}

// AddItemRequest is the body of POST /api/cart/items.
type AddItemRequest struct {
	ProductID int64 `json:"productId"`
}

// AddItem handles POST /api/cart/items requests. Adding a product that
// is already in the cart bumps its quantity by one.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req AddItemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	product := h.gateway.GetProductByID(r.Context(), req.ProductID)
	if product == nil {
		writeError(w, http.StatusNotFound, "product not found", h.logger)
		return
	}

	sessionID := middleware.SessionID(r.Context())
	c, err := cart.Mutate(r.Context(), h.store, sessionID, func(c *cart.Cart) {
		c.Add(*product)
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, newCartResponse(c))
}

// UpdateItemRequest is the body of PUT /api/cart/items/:id.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem handles PUT /api/cart/items/:id requests. A quantity of
// zero or less removes the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	productID, err := strconv.ParseInt(ps.ByName("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID", h.logger)
		return
	}

	var req UpdateItemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	sessionID := middleware.SessionID(r.Context())
	c, err := cart.Mutate(r.Context(), h.store, sessionID, func(c *cart.Cart) {
		c.UpdateQuantity(productID, req.Quantity)
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, newCartResponse(c))
}

// RemoveItem handles DELETE /api/cart/items/:id requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	productID, err := strconv.ParseInt(ps.ByName("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID", h.logger)
		return
	}

	sessionID := middleware.SessionID(r.Context())
	c, err := cart.Mutate(r.Context(), h.store, sessionID, func(c *cart.Cart) {
		c.Remove(productID)
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, newCartResponse(c))
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sessionID := middleware.SessionID(r.Context())

	if err := h.store.Clear(r.Context(), sessionID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, newCartResponse(&cart.Cart{}))
}
