package router

import (
	"net/http"

	"github.com/Yana3030-web/stroymaster-website/internal/handler"
	"github.com/Yana3030-web/stroymaster-website/internal/middleware"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	liveSearchHandler *handler.LiveSearchHandler,
	logger zerolog.Logger,
) http.Handler {
	router := httprouter.New()

	// Health check endpoint
	router.HandlerFunc(http.MethodGet, "/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Catalogue
	router.GET("/api/products", productHandler.List)
	router.GET("/api/products/:id", productHandler.GetByID)
	router.GET("/api/categories", productHandler.Categories)

	// Cart
	router.GET("/api/cart", cartHandler.Get)
	router.DELETE("/api/cart", cartHandler.Clear)
	router.POST("/api/cart/items", cartHandler.AddItem)
	router.PUT("/api/cart/items/:id", cartHandler.UpdateItem)
	router.DELETE("/api/cart/items/:id", cartHandler.RemoveItem)

	// Orders
	router.POST("/api/orders", orderHandler.Submit)
	router.GET("/api/orders/state", orderHandler.State)

	// Live catalogue search
	router.GET("/ws/search", liveSearchHandler.Serve)

	// The storefront is served from the same origin as the API and the
	// session cookie is SameSite, so credentialed cross-origin requests are
	// never needed. Browsers refuse a wildcard origin combined with
	// credentials, so the wildcard must stay credential-free.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"}, // lock down in production
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	// Apply middleware in order: Recovery -> Logging -> Session -> CORS
	var h http.Handler = router
	h = corsHandler.Handler(h)
	h = middleware.Session(logger)(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
