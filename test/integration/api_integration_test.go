package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Yana3030-web/stroymaster-website/internal/cart"
	"github.com/Yana3030-web/stroymaster-website/internal/catalog"
	"github.com/Yana3030-web/stroymaster-website/internal/config"
	"github.com/Yana3030-web/stroymaster-website/internal/handler"
	"github.com/Yana3030-web/stroymaster-website/internal/model"
	"github.com/Yana3030-web/stroymaster-website/internal/order"
	"github.com/Yana3030-web/stroymaster-website/internal/relay"
	"github.com/Yana3030-web/stroymaster-website/internal/repository"
	"github.com/Yana3030-web/stroymaster-website/internal/router"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStorefront wires the full stack against the test database, with an
// in-process stand-in for the email relay. Returned requests share a cookie
// jar so the visitor session persists across calls.
func setupStorefront(t *testing.T, testDB *TestDB) (*httptest.Server, *http.Client, *atomic.Int64) {
	t.Helper()

	logger := zerolog.Nop()

	var relayCalls atomic.Int64
	relayStub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		relayCalls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(relayStub.Close)

	relayCfg := config.RelayConfig{
		Endpoint:   relayStub.URL,
		ServiceID:  "service_test",
		TemplateID: "template_test",
		PublicKey:  "pk_test",
		Recipient:  "info@stroymaster.ru",
		SiteName:   "СтройМастер",
		Configured: true,
	}

	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	gateway := catalog.NewGateway(productRepo, logger)

	store := cart.NewMemoryStore(time.Hour, logger)
	t.Cleanup(store.Close)

	sender := relay.NewClient(relayCfg, logger)
	flow := order.NewFlow(store, sender, relayCfg, logger)

	productHandler := handler.NewProductHandler(gateway, logger)
	cartHandler := handler.NewCartHandler(store, gateway, logger)
	orderHandler := handler.NewOrderHandler(flow, logger)
	liveSearchHandler := handler.NewLiveSearchHandler(gateway, logger)

	mux := router.New(productHandler, cartHandler, orderHandler, liveSearchHandler, logger)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	return server, client, &relayCalls
}

func getJSON(t *testing.T, client *http.Client, url string, dst interface{}) int {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if dst != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	} else {
		io.Copy(io.Discard, resp.Body)
	}
	return resp.StatusCode
}

func sendJSON(t *testing.T, client *http.Client, method, url, body string, dst interface{}) int {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader([]byte(body)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if dst != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	} else {
		io.Copy(io.Discard, resp.Body)
	}
	return resp.StatusCode
}

func TestCatalogueAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	SeedProducts(t, testDB.Pool)
	server, client, _ := setupStorefront(t, testDB)

	t.Run("GET /api/products returns active products only", func(t *testing.T) {
		var products []model.Product
		status := getJSON(t, client, server.URL+"/api/products", &products)

		assert.Equal(t, http.StatusOK, status)
		require.Len(t, products, 4)
		for _, p := range products {
			assert.True(t, p.IsActive)
		}
	})

	t.Run("GET /api/products filters by category", func(t *testing.T) {
		var products []model.Product
		status := getJSON(t, client, server.URL+"/api/products?category=Цемент", &products)

		assert.Equal(t, http.StatusOK, status)
		require.Len(t, products, 1)
		assert.Equal(t, "Цемент М500 50 кг", products[0].Name)
	})

	t.Run("GET /api/products searches the catalogue", func(t *testing.T) {
		var products []model.Product
		status := getJSON(t, client, server.URL+"/api/products?search=Knauf", &products)

		assert.Equal(t, http.StatusOK, status)
		require.Len(t, products, 1)
		assert.Equal(t, "Гипсокартон Knauf ГКЛ 12.5 мм", products[0].Name)
	})

	t.Run("GET /api/products/:id returns a single product", func(t *testing.T) {
		var products []model.Product
		getJSON(t, client, server.URL+"/api/products", &products)
		require.NotEmpty(t, products)

		var product model.Product
		url := fmt.Sprintf("%s/api/products/%d", server.URL, products[0].ID)
		status := getJSON(t, client, url, &product)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, products[0].Name, product.Name)
	})

	t.Run("GET /api/products/:id answers 404 for unknown products", func(t *testing.T) {
		status := getJSON(t, client, server.URL+"/api/products/999999", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("GET /api/categories lists distinct categories", func(t *testing.T) {
		var categories []string
		status := getJSON(t, client, server.URL+"/api/categories", &categories)

		assert.Equal(t, http.StatusOK, status)
		assert.ElementsMatch(t, []string{"Цемент", "Кирпич", "Гипсокартон", "Штукатурка"}, categories)
	})
}

func TestCartAndOrderAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	SeedProducts(t, testDB.Pool)
	server, client, relayCalls := setupStorefront(t, testDB)

	var products []model.Product
	getJSON(t, client, server.URL+"/api/products", &products)
	require.NotEmpty(t, products)
	productID := products[0].ID

	addBody := fmt.Sprintf(`{"productId":%d}`, productID)

	t.Run("cart grows and persists across the session", func(t *testing.T) {
		var resp handler.CartResponse
		status := sendJSON(t, client, http.MethodPost, server.URL+"/api/cart/items", addBody, &resp)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, 1, resp.TotalItems)

		status = sendJSON(t, client, http.MethodPost, server.URL+"/api/cart/items", addBody, &resp)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 2, resp.Items[0].Quantity)

		// The same session sees the same cart on a fresh GET.
		status = getJSON(t, client, server.URL+"/api/cart", &resp)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, 2, resp.TotalItems)
	})

	t.Run("quantity updates and removal", func(t *testing.T) {
		var resp handler.CartResponse
		url := fmt.Sprintf("%s/api/cart/items/%d", server.URL, productID)

		status := sendJSON(t, client, http.MethodPut, url, `{"quantity":5}`, &resp)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, 5, resp.TotalItems)

		status = sendJSON(t, client, http.MethodDelete, url, "", &resp)
		require.Equal(t, http.StatusOK, status)
		assert.Zero(t, resp.TotalItems)
	})

	t.Run("submitting an order delivers it and clears the cart", func(t *testing.T) {
		var resp handler.CartResponse
		status := sendJSON(t, client, http.MethodPost, server.URL+"/api/cart/items", addBody, &resp)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, 1, resp.TotalItems)

		orderBody := `{
			"name": "Иван Иванов",
			"phone": "+7 (999) 123-45-67",
			"email": "ivan@example.com",
			"address": "г. Москва, ул. Примерная, д. 1"
		}`
		var result model.SubmissionResult
		status = sendJSON(t, client, http.MethodPost, server.URL+"/api/orders", orderBody, &result)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, model.StatusDelivered, result.Status)
		assert.NotEmpty(t, result.OrderID)
		assert.Equal(t, int64(1), relayCalls.Load())

		status = getJSON(t, client, server.URL+"/api/cart", &resp)
		require.Equal(t, http.StatusOK, status)
		assert.Zero(t, resp.TotalItems)
	})

	t.Run("invalid form is rejected without touching the relay", func(t *testing.T) {
		sendJSON(t, client, http.MethodPost, server.URL+"/api/cart/items", addBody, nil)

		before := relayCalls.Load()
		orderBody := `{"name": "", "phone": "123", "email": "нет", "address": ""}`
		var result model.SubmissionResult
		status := sendJSON(t, client, http.MethodPost, server.URL+"/api/orders", orderBody, &result)

		require.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Equal(t, model.StatusRejected, result.Status)
		assert.NotEmpty(t, result.FieldErrors)
		assert.Equal(t, before, relayCalls.Load())
	})
}
