package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"feedsoko/internal/http/handlers"
	"feedsoko/internal/repos"
	"feedsoko/internal/services"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}
	deps := handlers.NewDeps(db, authSvc)

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(handlers.AttachUser(authSvc))

	api := app.Group("/api/v1")
	api.Post("/auth/register", deps.AuthHandler.Register)
	api.Post("/auth/login", deps.AuthHandler.Login)
	api.Get("/auth/me", deps.AuthHandler.Me)
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Detail)
	api.Post("/products", handlers.RequireSeller(authSvc), deps.ProductHandler.Create)
	api.Post("/orders", handlers.RequireUser(authSvc), deps.OrderHandler.Place)
	api.Get("/orders/:id", handlers.RequireUser(authSvc), deps.OrderHandler.Detail)
	api.Get("/messages/unread-count", handlers.RequireUser(authSvc), deps.MessageHandler.UnreadCount)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, int(5*time.Second/time.Millisecond))
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	out := map[string]any{}
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	code, body := doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]any{
		"email": email, "password": "Passw0rd!",
	})
	if code != fiber.StatusOK {
		t.Fatalf("login %s: status %d body %v", email, code, body)
	}
	tok, _ := body["token"].(string)
	if tok == "" {
		t.Fatal("no session token returned")
	}
	return tok
}

func TestAPILoginAndMe(t *testing.T) {
	app := newTestApp(t)
	tok := login(t, app, "wanjiku@feedsoko.test")

	code, body := doJSON(t, app, "GET", "/api/v1/auth/me", tok, nil)
	if code != fiber.StatusOK {
		t.Fatalf("me: %d", code)
	}
	if body["username"] != "wanjiku_farm" {
		t.Fatalf("wrong user: %v", body)
	}

	code, _ = doJSON(t, app, "GET", "/api/v1/auth/me", "", nil)
	if code != fiber.StatusUnauthorized {
		t.Fatalf("anonymous /me should be 401, got %d", code)
	}
}

func TestAPIRegisterValidation(t *testing.T) {
	app := newTestApp(t)

	code, _ := doJSON(t, app, "POST", "/api/v1/auth/register", "", map[string]any{
		"username": "njoroge_farm", "email": "not-an-email", "phone": "+254700000001",
		"userType": "farmer", "firstName": "Peter", "lastName": "Njoroge", "password": "secret1234",
	})
	if code != fiber.StatusBadRequest {
		t.Fatalf("bad email should be 400, got %d", code)
	}

	code, _ = doJSON(t, app, "POST", "/api/v1/auth/register", "", map[string]any{
		"username": "njoroge_farm", "email": "njoroge@feedsoko.test", "phone": "+254700000001",
		"userType": "farmer", "firstName": "Peter", "lastName": "Njoroge", "password": "secret1234",
	})
	if code != fiber.StatusCreated {
		t.Fatalf("valid registration should be 201, got %d", code)
	}

	// duplicate email conflicts
	code, _ = doJSON(t, app, "POST", "/api/v1/auth/register", "", map[string]any{
		"username": "njoroge_two", "email": "njoroge@feedsoko.test", "phone": "+254700000002",
		"userType": "farmer", "firstName": "Peter", "lastName": "Njoroge", "password": "secret1234",
	})
	if code != fiber.StatusConflict {
		t.Fatalf("duplicate email should be 409, got %d", code)
	}
}

func TestAPISellerOnlyProductCreate(t *testing.T) {
	app := newTestApp(t)

	product := map[string]any{
		"name": "Kienyeji Mash", "price": 2800.0, "category": "poultry", "stock": 15,
	}

	code, _ := doJSON(t, app, "POST", "/api/v1/products", "", product)
	if code != fiber.StatusUnauthorized {
		t.Fatalf("anonymous create should be 401, got %d", code)
	}

	farmerTok := login(t, app, "wanjiku@feedsoko.test")
	code, _ = doJSON(t, app, "POST", "/api/v1/products", farmerTok, product)
	if code != fiber.StatusForbidden {
		t.Fatalf("farmer create should be 403, got %d", code)
	}

	sellerTok := login(t, app, "sales@pembefeeds.test")
	code, body := doJSON(t, app, "POST", "/api/v1/products", sellerTok, product)
	if code != fiber.StatusCreated {
		t.Fatalf("seller create should be 201, got %d (%v)", code, body)
	}
}

func TestAPIPlaceOrder(t *testing.T) {
	app := newTestApp(t)
	tok := login(t, app, "wanjiku@feedsoko.test")

	code, body := doJSON(t, app, "POST", "/api/v1/orders", tok, map[string]any{
		"items": []map[string]any{
			{"productId": 1, "quantity": 2},
			{"productId": 2, "quantity": 1},
		},
		"deliveryAddress": "Bahati, Nakuru",
		"paymentMethod":   "mpesa",
	})
	if code != fiber.StatusCreated {
		t.Fatalf("place order: %d (%v)", code, body)
	}
	if body["orderNumber"] == "" || body["orderNumber"] == nil {
		t.Fatalf("no order number in response: %v", body)
	}
	items, _ := body["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("want 2 items in response, got %v", body["items"])
	}

	// unknown payment method rejected by validation
	code, _ = doJSON(t, app, "POST", "/api/v1/orders", tok, map[string]any{
		"items":           []map[string]any{{"productId": 1, "quantity": 1}},
		"deliveryAddress": "Nakuru",
		"paymentMethod":   "goats",
	})
	if code != fiber.StatusBadRequest {
		t.Fatalf("bad payment method should be 400, got %d", code)
	}
}

func TestAPIUnreadCount(t *testing.T) {
	app := newTestApp(t)
	tok := login(t, app, "wanjiku@feedsoko.test")

	code, body := doJSON(t, app, "GET", "/api/v1/messages/unread-count", tok, nil)
	if code != fiber.StatusOK {
		t.Fatalf("unread-count: %d", code)
	}
	if n, ok := body["unread"].(float64); !ok || n != 0 {
		t.Fatalf("want unread 0, got %v", body)
	}
}

func TestAPILoginThrottle(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}
	deps := handlers.NewDeps(db, authSvc)

	app := fiber.New()
	app.Post("/login", limiter.New(limiter.Config{Max: 2, Expiration: time.Minute}), deps.AuthHandler.Login)

	payload := map[string]any{"email": "wanjiku@feedsoko.test", "password": "wrongpass1"}
	for i := 0; i < 2; i++ {
		code, _ := doJSON(t, app, "POST", "/login", "", payload)
		if code != fiber.StatusUnauthorized {
			t.Fatalf("attempt %d: want 401, got %d", i, code)
		}
	}
	code, _ := doJSON(t, app, "POST", "/login", "", payload)
	if code != fiber.StatusTooManyRequests {
		t.Fatalf("third attempt should be throttled, got %d", code)
	}
}
