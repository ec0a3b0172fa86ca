package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"katalog/internal/cart"
	"katalog/internal/handlers"
	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "password123"

// setupApp builds a Fiber app on in-memory repositories with all handlers
// registered and a seeded catalog and roster.
func setupApp() *fiber.App {
	userRepo := repositories.NewMockUserRepository()
	productRepo := repositories.NewMockProductRepository()
	categoryRepo := repositories.NewMockCategoryRepository()
	requestRepo := repositories.NewMockOrderRequestRepository()

	hashed, _ := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.DefaultCost)
	users := []*models.User{
		{ID: "cust-1", Email: "customer@example.com", FullName: "Casey Customer", Password: string(hashed), Role: models.RoleCustomer},
		{ID: "emp-1", Email: "employee@example.com", FullName: "Erin Employee", Password: string(hashed), Role: models.RoleEmployee},
		{ID: "adm-1", Email: "admin@example.com", FullName: "Ada Admin", Password: string(hashed), Role: models.RoleAdmin},
	}
	for _, u := range users {
		if err := userRepo.Create(u); err != nil {
			log.Printf("Failed to seed user %s: %v", u.Email, err)
		}
	}

	products := []*models.Product{
		{ID: "prod-1", Slug: "oak-table", Name: "Oak Table", BasePrice: 100.0, IsActive: true},
		{ID: "prod-2", Slug: "brass-lamp", Name: "Brass Lamp", BasePrice: 25.5, IsActive: true},
		{ID: "prod-3", Slug: "retired-chair", Name: "Retired Chair", BasePrice: 50.0, IsActive: false},
	}
	for _, p := range products {
		if err := productRepo.Create(p); err != nil {
			log.Printf("Failed to seed product %s: %v", p.Name, err)
		}
	}

	authService := services.NewAuthService(userRepo, "test_jwt_secret")
	catalogService := services.NewCatalogService(productRepo, categoryRepo)
	requestService := services.NewRequestService(requestRepo, productRepo, userRepo, nil) // nil publisher
	userService := services.NewUserService(userRepo, nil)
	carts := cart.NewStore()

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)
	handlers.NewCatalogHandler(catalogService, authService).RegisterRoutes(apiV1)
	handlers.NewCartHandler(carts, catalogService).RegisterRoutes(apiV1)
	handlers.NewRequestHandler(requestService, authService, carts).RegisterRoutes(apiV1)
	handlers.NewUserHandler(userService, authService).RegisterRoutes(apiV1)

	return app
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type testRequest struct {
	method string
	path   string
	body   interface{}
	token  string
	cookie string
}

func doRequest(t *testing.T, app *fiber.App, tr testRequest) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if tr.body != nil {
		jsonBody, err := json.Marshal(tr.body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(tr.method, tr.path, reader)
	if tr.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tr.token != "" {
		req.Header.Set("Authorization", "Bearer "+tr.token)
	}
	if tr.cookie != "" {
		req.AddCookie(&http.Cookie{Name: "cart_session", Value: tr.cookie})
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	var parsed map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	if len(raw) > 0 {
		// Some endpoints return arrays; those tests decode raw themselves
		_ = json.Unmarshal(raw, &parsed)
	}
	return resp, parsed
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	resp, body := doRequest(t, app, testRequest{
		method: http.MethodPost,
		path:   "/api/v1/auth/login",
		body:   map[string]string{"email": email, "password": testPassword},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app := setupApp()

	resp, body := doRequest(t, app, testRequest{
		method: http.MethodPost,
		path:   "/api/v1/auth/register",
		body: map[string]string{
			"email":     "new@example.com",
			"password":  "password456",
			"full_name": "New User",
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "User registered successfully", body["message"])

	resp, body = doRequest(t, app, testRequest{
		method: http.MethodPost,
		path:   "/api/v1/auth/login",
		body:   map[string]string{"email": "new@example.com", "password": "password456"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	// Wrong password is a 401
	resp, _ = doRequest(t, app, testRequest{
		method: http.MethodPost,
		path:   "/api/v1/auth/login",
		body:   map[string]string{"email": "new@example.com", "password": "wrong"},
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPublicCatalogHidesInactiveProducts(t *testing.T) {
	app := setupApp()

	resp, body := doRequest(t, app, testRequest{
		method: http.MethodGet,
		path:   "/api/v1/products/",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["total"])

	// The inactive product is invisible anonymously
	resp, _ = doRequest(t, app, testRequest{
		method: http.MethodGet,
		path:   "/api/v1/products/retired-chair",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Staff see it
	resp, _ = doRequest(t, app, testRequest{
		method: http.MethodGet,
		path:   "/api/v1/products/retired-chair",
		token:  login(t, app, "employee@example.com"),
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCartFlow(t *testing.T) {
	app := setupApp()
	const session = "test-session-1"

	resp, body := doRequest(t, app, testRequest{
		method: http.MethodPost,
		path:   "/api/v1/cart/items",
		body:   map[string]interface{}{"product_id": "prod-1", "quantity": 2},
		cookie: session,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["total_items"])

	// Adding the same product again merges quantities
	resp, body = doRequest(t, app, testRequest{
		method: http.MethodPost,
		path:   "/api/v1/cart/items",
		body:   map[string]interface{}{"product_id": "prod-1", "quantity": 3},
		cookie: session,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(5), body["total_items"])
	assert.Equal(t, float64(500), body["total_price"])

	// Setting the quantity to zero removes the line
	resp, body = doRequest(t, app, testRequest{
		method: http.MethodPatch,
		path:   "/api/v1/cart/items/prod-1",
		body:   map[string]interface{}{"quantity": 0},
		cookie: session,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["total_items"])

	// Unknown products cannot be added
	resp, _ = doRequest(t, app, testRequest{
		method: http.MethodPost,
		path:   "/api/v1/cart/items",
		body:   map[string]interface{}{"product_id": "prod-99", "quantity": 1},
		cookie: session,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSubmitRequestFromCart(t *testing.T) {
	app := setupApp()
	const session = "test-session-2"
	token := login(t, app, "customer@example.com")

	resp, _ := doRequest(t, app, testRequest{
		method: http.MethodPost,
		path:   "/api/v1/cart/items",
		body:   map[string]interface{}{"product_id": "prod-1", "quantity": 2},
		cookie: session,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Anonymous submission is rejected
	resp, _ = doRequest(t, app, testRequest{
		method: http.MethodPost,
		path:   "/api/v1/requests/",
		body:   map[string]interface{}{"notes": "gift wrap please"},
		cookie: session,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Authenticated submission snapshots the cart
	resp, body := doRequest(t, app, testRequest{
		method: http.MethodPost,
		path:   "/api/v1/requests/",
		body:   map[string]interface{}{"notes": "gift wrap please"},
		cookie: session,
		token:  token,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "NEW", body["status"])
	assert.Equal(t, "gift wrap please", body["notes"])

	// The cart is cleared after submission
	resp, body = doRequest(t, app, testRequest{
		method: http.MethodGet,
		path:   "/api/v1/cart/",
		cookie: session,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["total_items"])

	// An empty cart cannot be submitted
	resp, _ = doRequest(t, app, testRequest{
		method: http.MethodPost,
		path:   "/api/v1/requests/",
		body:   map[string]interface{}{"notes": "nothing here"},
		cookie: session,
		token:  token,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRequestLifecycleAuthorization(t *testing.T) {
	app := setupApp()
	customerToken := login(t, app, "customer@example.com")
	employeeToken := login(t, app, "employee@example.com")

	resp, body := doRequest(t, app, testRequest{
		method: http.MethodPost,
		path:   "/api/v1/requests/",
		body: map[string]interface{}{
			"items": []map[string]interface{}{{"product_id": "prod-2", "quantity": 1}},
		},
		token: customerToken,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	requestID, _ := body["id"].(string)
	assert.NotEmpty(t, requestID)

	// Customers cannot list all requests or change status
	resp, _ = doRequest(t, app, testRequest{
		method: http.MethodGet,
		path:   "/api/v1/requests/",
		token:  customerToken,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doRequest(t, app, testRequest{
		method: http.MethodPatch,
		path:   "/api/v1/requests/" + requestID + "/status",
		body:   map[string]string{"status": "CONFIRMED"},
		token:  customerToken,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Staff can do both
	resp, _ = doRequest(t, app, testRequest{
		method: http.MethodGet,
		path:   "/api/v1/requests/?status=NEW",
		token:  employeeToken,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, app, testRequest{
		method: http.MethodPatch,
		path:   "/api/v1/requests/" + requestID + "/status",
		body:   map[string]string{"status": "IN_REVIEW"},
		token:  employeeToken,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The owner sees the updated status in the resolved view
	resp, body = doRequest(t, app, testRequest{
		method: http.MethodGet,
		path:   "/api/v1/requests/" + requestID,
		token:  customerToken,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	request, _ := body["request"].(map[string]interface{})
	assert.Equal(t, "IN_REVIEW", request["status"])
}

func TestRosterIsAdminOnly(t *testing.T) {
	app := setupApp()

	resp, _ := doRequest(t, app, testRequest{
		method: http.MethodGet,
		path:   "/api/v1/users/",
		token:  login(t, app, "employee@example.com"),
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	adminToken := login(t, app, "admin@example.com")
	resp, _ = doRequest(t, app, testRequest{
		method: http.MethodGet,
		path:   "/api/v1/users/",
		token:  adminToken,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Promote the customer, then verify staff routes open up immediately
	resp, _ = doRequest(t, app, testRequest{
		method: http.MethodPatch,
		path:   "/api/v1/users/cust-1/role",
		body:   map[string]string{"role": "EMPLOYEE"},
		token:  adminToken,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, app, testRequest{
		method: http.MethodGet,
		path:   "/api/v1/requests/",
		token:  login(t, app, "customer@example.com"),
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
