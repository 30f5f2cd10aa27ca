package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Yana3030-web/stroymaster-website/internal/cart"
	"github.com/Yana3030-web/stroymaster-website/internal/catalog"
	"github.com/Yana3030-web/stroymaster-website/internal/config"
	"github.com/Yana3030-web/stroymaster-website/internal/handler"
	"github.com/Yana3030-web/stroymaster-website/internal/middleware"
	"github.com/Yana3030-web/stroymaster-website/internal/model"
	"github.com/Yana3030-web/stroymaster-website/internal/order"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptyRepository serves an empty catalogue, enough to wire the handlers.
type emptyRepository struct{}

func (emptyRepository) ActiveProducts(context.Context) ([]model.Product, error) {
	return nil, nil
}

func (emptyRepository) ActiveProductsByCategory(context.Context, string) ([]model.Product, error) {
	return nil, nil
}

func (emptyRepository) SearchActiveProducts(context.Context, string) ([]model.Product, error) {
	return nil, nil
}

func (emptyRepository) ActiveCategories(context.Context) ([]string, error) {
	return nil, nil
}

func (emptyRepository) ProductByID(context.Context, int64) (*model.Product, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := zerolog.Nop()
	gateway := catalog.NewGateway(emptyRepository{}, logger)
	store := cart.NewMemoryStore(time.Hour, logger)
	t.Cleanup(store.Close)
	flow := order.NewFlow(store, nil, config.RelayConfig{}, logger)

	return New(
		handler.NewProductHandler(gateway, logger),
		handler.NewCartHandler(store, gateway, logger),
		handler.NewOrderHandler(flow, logger),
		handler.NewLiveSearchHandler(gateway, logger),
		logger,
	)
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/cart/items", nil)
	req.Header.Set("Origin", "https://shop.stroymaster11.ru")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	// A wildcard origin must stay credential-free, or browsers reject the
	// response outright.
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRouter_CORSActualRequest(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "https://shop.stroymaster11.ru")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRouter_SessionCookieIssued(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			found = true
		}
	}
	assert.True(t, found, "expected a session cookie on the first visit")
}
