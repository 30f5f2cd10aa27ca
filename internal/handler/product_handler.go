package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Yana3030-web/stroymaster-website/internal/catalog"
	"github.com/Yana3030-web/stroymaster-website/internal/model"
	"github.com/Yana3030-web/stroymaster-website/internal/search"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
)

// ProductHandler handles catalog-related HTTP requests.
type ProductHandler struct {
	gateway *catalog.Gateway
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(gateway *catalog.Gateway, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		gateway: gateway,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products requests. A `search` parameter wins
// over `category`; both absent means the full active catalog.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	term := strings.TrimSpace(query.Get("search"))
	category := query.Get("category")

	var products []model.Product
	switch {
	case term != "":
		products = h.gateway.SearchProducts(r.Context(), term)
	case category != "" && category != search.CategoryAll:
		products = h.gateway.ListProductsByCategory(r.Context(), category)
	default:
		products = h.gateway.ListActiveProducts(r.Context())
	}

	if products == nil {
		products = []model.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/:id requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := strconv.ParseInt(ps.ByName("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID", h.logger)
		return
	}

	product := h.gateway.GetProductByID(r.Context(), id)
	if product == nil {
		writeError(w, http.StatusNotFound, "product not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Categories handles GET /api/categories requests. The gateway
// guarantees a non-empty list even when the database is unreachable.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, h.gateway.ListCategories(r.Context()))
}
