package httppresentation_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	appadmin "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/admin"
	appauth "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/auth"
	appcart "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/cart"
	appcatalog "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/catalog"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/identity"
	appinterest "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/interest"
	apporder "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/order"
	domorder "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/order"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/infrastructure/id"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/infrastructure/memory"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/infrastructure/seed"
	httppresentation "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/presentation/http"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	router *gin.Engine
	store  *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	users := memory.NewUserRepository()
	carts := memory.NewCartRepository()
	require.NoError(t, seed.Apply(context.Background(), users, store))

	tokens := appauth.NewTokenManager("test-secret")
	router := httppresentation.NewRouter(httppresentation.RouterDeps{
		Auth:      appauth.NewService(users, tokens),
		Catalog:   appcatalog.NewService(store),
		Cart:      appcart.NewService(carts, store),
		Orders:    apporder.NewService(store, store.OrderRepository(), id.NewUUIDGenerator(), nil, nil),
		Interests: appinterest.NewService(memory.NewInterestRepository(), store),
		Admin:     appadmin.NewService(store.OrderRepository(), store, users),
		Resolver:  identity.NewResolver(users, tokens, true),
		Logger:    zap.NewNop(),
	})
	return &testServer{router: router, store: store}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": email, "password": password}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotEmpty(t, result.Token)
	return result.Token
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func demoAdmin() map[string]string {
	return map[string]string{"X-Demo-Mode": "true", "X-Demo-User": "admin@ecoliving.com"}
}

func TestHealthAndPublicCatalog(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/products", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var products []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 6)

	rec = s.do(t, http.MethodGet, "/api/products/1", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/products/9999", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/products/category/kitchen", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/categories", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductSearchRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/products/search?q=bottle", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var results []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Reusable Water Bottle", results[0].Name)

	// No matches is an empty list, not an error.
	rec = s.do(t, http.MethodGet, "/api/products/search?q=zzz", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	assert.Empty(t, results)
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email": "nueva@example.com", "name": "Nueva", "password": "supersecret",
	}, nil)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email": "nueva@example.com", "name": "Again", "password": "supersecret",
	}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Passwords shorter than eight characters never reach the service.
	rec = s.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email": "corta@example.com", "name": "Corta", "password": "short",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	s.login(t, "nueva@example.com", "supersecret")

	rec = s.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email": "nueva@example.com", "password": "wrong-password",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthorizationTiers(t *testing.T) {
	s := newTestServer(t)

	// Anonymous requests never reach the authenticated tier.
	rec := s.do(t, http.MethodPost, "/api/orders", gin.H{}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/cart", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A customer is stopped at the privileged tier.
	token := s.login(t, "cliente@ecoliving.com", "cliente1234")
	rec = s.do(t, http.MethodGet, "/api/orders", nil, bearer(token))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/admin/stats", nil, bearer(token))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The seeded admin passes it.
	adminToken := s.login(t, "admin@ecoliving.com", "admin1234")
	rec = s.do(t, http.MethodGet, "/api/orders", nil, bearer(adminToken))
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/admin/stats", nil, bearer(adminToken))
	assert.Equal(t, http.StatusOK, rec.Code)

	// An invalid token fails resolution before any tier is consulted.
	rec = s.do(t, http.MethodGet, "/api/products", nil, bearer("garbage"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDemoHeadersGrantAccess(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/admin/stats", nil, demoAdmin())
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// A non-admin demo marker stays in the customer tier.
	headers := map[string]string{"X-Demo-Mode": "true", "X-Demo-User": "shopper@example.com"}
	rec = s.do(t, http.MethodGet, "/api/cart", nil, headers)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/admin/stats", nil, headers)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestExplicitUserIDHeader(t *testing.T) {
	s := newTestServer(t)

	// Seeded cliente account has id 2.
	rec := s.do(t, http.MethodGet, "/api/cart", nil, map[string]string{"X-User-Id": "2"})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/cart", nil, map[string]string{"X-User-Id": "9999"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/cart", nil, map[string]string{"X-User-Id": "abc"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPlaceOrderEndToEnd(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "cliente@ecoliving.com", "cliente1234")

	before := productStock(t, s, 1)

	rec := s.do(t, http.MethodPost, "/api/orders", gin.H{
		"items":         []gin.H{{"productId": 1, "quantity": 2}},
		"paymentMethod": "card",
		"shippingAddress": gin.H{
			"name": "Cliente Demo", "street": "Main 1", "city": "Lima",
			"postalCode": "15001", "phone": "555",
		},
	}, bearer(token))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var placed domorder.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placed))
	assert.Equal(t, domorder.StatusCompleted, placed.Status)
	assert.NotEmpty(t, placed.Number)
	require.Len(t, placed.Lines, 1)
	assert.Equal(t, uint(2), placed.UserID)

	assert.Equal(t, before-2, productStock(t, s, 1))

	// The owner can read it back; another customer cannot.
	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/orders/%d", placed.ID), nil, bearer(token))
	assert.Equal(t, http.StatusOK, rec.Code)

	other := registerCustomer(t, s, "otra@example.com")
	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/orders/%d", placed.ID), nil, bearer(other))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/orders/user/2", nil, bearer(other))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/orders/user/2", nil, bearer(token))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "cliente@ecoliving.com", "cliente1234")

	before := productStock(t, s, 1)

	rec := s.do(t, http.MethodPost, "/api/orders", gin.H{
		"items":         []gin.H{{"productId": 1, "quantity": before + 1}},
		"paymentMethod": "card",
	}, bearer(token))
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	assert.Equal(t, before, productStock(t, s, 1))
}

func TestCartFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "cliente@ecoliving.com", "cliente1234")

	rec := s.do(t, http.MethodPost, "/api/cart", gin.H{"productId": 1, "quantity": 2}, bearer(token))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/cart", gin.H{"productId": 1, "quantity": 1}, bearer(token))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/cart", nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []struct {
		Quantity int `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].Quantity)

	rec = s.do(t, http.MethodPut, "/api/cart", gin.H{"productId": 1, "quantity": 5}, bearer(token))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/cart/1", nil, bearer(token))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/cart/clear", nil, bearer(token))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAdminReports(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "cliente@ecoliving.com", "cliente1234")

	rec := s.do(t, http.MethodPost, "/api/orders", gin.H{
		"items":         []gin.H{{"productId": 1, "quantity": 2}, {"productId": 2, "quantity": 1}},
		"paymentMethod": "card",
	}, bearer(token))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Report routes sit in the privileged tier.
	for _, path := range []string{
		"/api/admin/sales-by-category",
		"/api/admin/top-products",
		"/api/admin/sales-by-payment",
	} {
		rec = s.do(t, http.MethodGet, path, nil, bearer(token))
		assert.Equal(t, http.StatusForbidden, rec.Code, path)

		rec = s.do(t, http.MethodGet, path, nil, demoAdmin())
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec = s.do(t, http.MethodGet, "/api/admin/top-products", nil, demoAdmin())
	require.Equal(t, http.StatusOK, rec.Code)
	var top []struct {
		ProductID uint `json:"productId"`
		Units     int  `json:"units"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &top))
	require.Len(t, top, 2)
	assert.Equal(t, uint(1), top[0].ProductID)
	assert.Equal(t, 2, top[0].Units)
}

func TestInterestFlow(t *testing.T) {
	s := newTestServer(t)

	// Tracking requires an actor.
	rec := s.do(t, http.MethodPost, "/api/interests/1", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := s.login(t, "cliente@ecoliving.com", "cliente1234")

	rec = s.do(t, http.MethodPost, "/api/interests/2", nil, bearer(token))
	assert.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/interests/9999", nil, bearer(token))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/interests/recommended", nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)
	var recommended []struct {
		ID       uint   `json:"id"`
		Category string `json:"category"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recommended))
	require.NotEmpty(t, recommended)
	for _, p := range recommended {
		assert.NotEqual(t, uint(2), p.ID, "clicked product must not be recommended back")
	}
	// Product 2 is kitchen; unseen kitchen products lead the ranking.
	assert.Equal(t, "kitchen", recommended[0].Category)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodOptions, "/api/orders", nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func productStock(t *testing.T, s *testServer, id uint) int {
	t.Helper()
	p, err := s.store.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func registerCustomer(t *testing.T, s *testServer, email string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email": email, "name": "Otra", "password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var result struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result.Token
}
