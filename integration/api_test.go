package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PabloPavan/varejao_api/internal/db"
	"github.com/PabloPavan/varejao_api/internal/httpapi"
	"github.com/PabloPavan/varejao_api/internal/orders"
	"github.com/PabloPavan/varejao_api/internal/products"
	"github.com/PabloPavan/varejao_api/internal/ratelimit"
	"github.com/PabloPavan/varejao_api/internal/users"
	"github.com/google/uuid"
)

type testEnv struct {
	baseURL string
	db      *db.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	d, err := db.New(ctx, db.Options{URL: databaseURL})
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	t.Cleanup(d.Close)

	base := db.NewBase(d.Pool, 3*time.Second)
	userSvc := &users.Service{Store: users.NewRepository(base)}

	app := &httpapi.App{
		Root:     &httpapi.RootHandler{},
		Health:   &httpapi.HealthHandler{DB: d},
		Users:    &httpapi.UsersHandler{Service: userSvc, Limiter: ratelimit.NewMemoryLimiter(100, time.Minute)},
		Products: &httpapi.ProductsHandler{Service: &products.Service{Store: products.NewRepository(base)}},
		Orders:   &httpapi.OrdersHandler{Service: &orders.Service{Store: orders.NewRepository(base)}},
	}

	srv := httptest.NewServer(httpapi.NewRouter(app))
	t.Cleanup(srv.Close)

	return &testEnv{baseURL: srv.URL, db: d}
}

func (e *testEnv) exec(t *testing.T, sql string, args ...any) {
	t.Helper()
	if _, err := e.db.Pool.Exec(context.Background(), sql, args...); err != nil {
		t.Fatalf("exec %q: %v", sql, err)
	}
}

func uniqueEmail(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12] + "@ci.local"
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal json: %v", err)
		}
		buf = bytes.NewReader(b)
	} else {
		buf = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return res
}

func decode(t *testing.T, res *http.Response, dst any) {
	t.Helper()
	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	res, err := http.Get(env.baseURL + "/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	var body httpapi.HealthResponse
	decode(t, res, &body)
	if res.StatusCode != http.StatusOK || body.DB != "ok" {
		t.Fatalf("health: %d %+v", res.StatusCode, body)
	}
}

func TestRegisterLogin(t *testing.T) {
	env := newTestEnv(t)
	email := uniqueEmail("login")
	t.Cleanup(func() { env.exec(t, "DELETE FROM users WHERE email = $1", email) })

	res := doJSON(t, http.MethodPost, env.baseURL+"/register", map[string]string{
		"name": "Cliente CI", "email": email, "password": "secret123",
	})
	res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("register status: %d", res.StatusCode)
	}

	res = doJSON(t, http.MethodPost, env.baseURL+"/login", map[string]string{
		"email": email, "password": "secret123",
	})
	var login httpapi.LoginResponse
	decode(t, res, &login)
	if res.StatusCode != http.StatusOK || login.User.Email != email || login.User.Name != "Cliente CI" {
		t.Fatalf("login: %d %+v", res.StatusCode, login)
	}

	res = doJSON(t, http.MethodPost, env.baseURL+"/login", map[string]string{
		"email": email, "password": "wrong",
	})
	res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password status: %d", res.StatusCode)
	}
}

func TestConcurrentRegistrationStoresOneUser(t *testing.T) {
	env := newTestEnv(t)
	email := uniqueEmail("race")
	t.Cleanup(func() { env.exec(t, "DELETE FROM users WHERE email = $1", email) })

	const n = 10
	statuses := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := doJSON(t, http.MethodPost, env.baseURL+"/register", map[string]string{
				"name": "Corrida", "email": email, "password": "secret123",
			})
			res.Body.Close()
			statuses <- res.StatusCode
		}()
	}
	wg.Wait()
	close(statuses)

	created := 0
	for s := range statuses {
		if s == http.StatusCreated {
			created++
		} else if s != http.StatusBadRequest {
			t.Fatalf("unexpected status %d", s)
		}
	}
	if created != 1 {
		t.Fatalf("expected exactly one registration, got %d", created)
	}

	var count int
	if err := env.db.Pool.QueryRow(context.Background(), "SELECT count(*) FROM users WHERE email = $1", email).Scan(&count); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}

func TestProductsEndpoints(t *testing.T) {
	env := newTestEnv(t)

	res := doJSON(t, http.MethodPost, env.baseURL+"/products", map[string]any{
		"name": "Produto CI", "price": 12.5,
	})
	var created httpapi.ProductResponse
	decode(t, res, &created)
	if res.StatusCode != http.StatusCreated || created.Product == nil {
		t.Fatalf("create product: %d %+v", res.StatusCode, created)
	}
	id := created.Product.ID
	t.Cleanup(func() { env.exec(t, "DELETE FROM products WHERE id = $1", id) })

	if created.Product.Quantity != 0 || created.Product.ImageURL != nil {
		t.Fatalf("unexpected defaults: %+v", created.Product)
	}

	res = doJSON(t, http.MethodPut, env.baseURL+"/products/"+id, map[string]any{"quantity": 7})
	var updated httpapi.ProductResponse
	decode(t, res, &updated)
	if res.StatusCode != http.StatusOK || updated.Product.Quantity != 7 || updated.Product.Name != "Produto CI" {
		t.Fatalf("update product: %d %+v", res.StatusCode, updated.Product)
	}

	res = doJSON(t, http.MethodPost, env.baseURL+"/products", map[string]any{"name": "Sem preço"})
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("product without price status: %d", res.StatusCode)
	}

	res = doJSON(t, http.MethodDelete, env.baseURL+"/products/"+id, nil)
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("delete product: %d", res.StatusCode)
	}

	res = doJSON(t, http.MethodGet, env.baseURL+"/products/"+id, nil)
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("get deleted product: %d", res.StatusCode)
	}
}

func TestCheckoutAndOrders(t *testing.T) {
	env := newTestEnv(t)
	email := uniqueEmail("orders")
	t.Cleanup(func() { env.exec(t, "DELETE FROM orders WHERE user_email = $1", email) })

	var ids []string
	for i := 0; i < 3; i++ {
		res := doJSON(t, http.MethodPost, env.baseURL+"/checkout", map[string]any{
			"user_email":  email,
			"total_price": 19.9,
			"items":       []map[string]any{{"nome": "Maçã", "preco": 9.95}},
		})
		var placed struct {
			Order struct {
				ID         string  `json:"id"`
				Status     string  `json:"status"`
				TotalPrice float64 `json:"total_price"`
			} `json:"order"`
		}
		decode(t, res, &placed)
		if res.StatusCode != http.StatusCreated || placed.Order.Status != "Pendente" || placed.Order.TotalPrice != 19.9 {
			t.Fatalf("checkout: %d %+v", res.StatusCode, placed.Order)
		}
		ids = append(ids, placed.Order.ID)
		time.Sleep(5 * time.Millisecond)
	}

	res := doJSON(t, http.MethodGet, env.baseURL+"/orders/user/"+email, nil)
	var list []orders.Order
	decode(t, res, &list)
	if len(list) != 3 || list[0].ID != ids[2] {
		t.Fatalf("expected newest order first, got %+v", list)
	}

	res = doJSON(t, http.MethodPut, env.baseURL+"/orders/"+ids[0], nil)
	var shipped httpapi.OrderResponse
	decode(t, res, &shipped)
	if res.StatusCode != http.StatusOK || shipped.Order.Status != orders.StatusShipped {
		t.Fatalf("update status: %d %+v", res.StatusCode, shipped.Order)
	}

	res = doJSON(t, http.MethodPut, env.baseURL+"/orders/"+uuid.NewString(), map[string]string{"status": "Entregue"})
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("update missing order: %d", res.StatusCode)
	}
}

func TestCreateReturnsStoredRow(t *testing.T) {
	env := newTestEnv(t)

	res := doJSON(t, http.MethodPost, env.baseURL+"/products", map[string]any{
		"name": "Produto arredondado", "price": 9.999,
	})
	var created httpapi.ProductResponse
	decode(t, res, &created)
	if res.StatusCode != http.StatusCreated || created.Product == nil {
		t.Fatalf("create product: %d %+v", res.StatusCode, created)
	}
	id := created.Product.ID
	t.Cleanup(func() { env.exec(t, "DELETE FROM products WHERE id = $1", id) })

	if created.Product.Price.String() != "10" {
		t.Fatalf("expected the stored price 10, got %s", created.Product.Price)
	}

	email := uniqueEmail("rounding")
	t.Cleanup(func() { env.exec(t, "DELETE FROM orders WHERE user_email = $1", email) })

	res = doJSON(t, http.MethodPost, env.baseURL+"/checkout", map[string]any{
		"user_email":  email,
		"total_price": 19.999,
		"items":       []map[string]any{{"nome": "Maçã", "preco": 9.95}},
	})
	var placed httpapi.OrderResponse
	decode(t, res, &placed)
	if res.StatusCode != http.StatusCreated || placed.Order == nil || placed.Order.TotalPrice.String() != "20" {
		t.Fatalf("checkout: %d %+v", res.StatusCode, placed.Order)
	}
}

func TestCheckoutKeepsItemFields(t *testing.T) {
	env := newTestEnv(t)
	email := uniqueEmail("items")
	t.Cleanup(func() { env.exec(t, "DELETE FROM orders WHERE user_email = $1", email) })

	res := doJSON(t, http.MethodPost, env.baseURL+"/checkout", map[string]any{
		"user_email":  email,
		"total_price": 19.9,
		"items": []map[string]any{
			{"nome": "Maçã", "preco": 9.95, "quantidade": 2, "id": "p1"},
		},
	})
	res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("checkout: %d", res.StatusCode)
	}

	res = doJSON(t, http.MethodGet, env.baseURL+"/orders/user/"+email, nil)
	var list []struct {
		Items []map[string]any `json:"items"`
	}
	decode(t, res, &list)
	if len(list) != 1 || len(list[0].Items) != 1 {
		t.Fatalf("unexpected orders: %+v", list)
	}
	item := list[0].Items[0]
	if item["nome"] != "Maçã" || item["preco"] != 9.95 || item["quantidade"] != float64(2) || item["id"] != "p1" {
		t.Fatalf("stored item differs from the submitted one: %v", item)
	}
}
