package httpapi

import (
	"io"
	"net/http"
	"time"

	"github.com/PabloPavan/varejao_api/internal/telemetry"
	"github.com/andybalholm/brotli"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type App struct {
	ServiceName string
	CORSOrigins []string

	Root     *RootHandler
	Health   *HealthHandler
	Users    *UsersHandler
	Products *ProductsHandler
	Orders   *OrdersHandler
}

func NewRouter(app *App) http.Handler {
	serviceName := app.ServiceName
	if serviceName == "" {
		serviceName = "varejao-api"
	}
	origins := app.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Retry-After", "X-Request-Id"},
		MaxAge:         int((12 * time.Hour).Seconds()),
	}))
	r.Use(newCompressor().Handler)
	r.Use(telemetry.ChiTraceMiddleware(serviceName))
	r.Use(telemetry.ChiMetricsMiddleware)
	r.Use(telemetry.ChiLogMiddleware(serviceName))

	r.Get("/", app.Root.Get)
	r.Get("/health", app.Health.Get)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Post("/register", app.Users.Register)
	r.Post("/login", app.Users.Login)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", app.Products.List)
		r.Post("/", app.Products.Create)
		r.Get("/{id}", app.Products.GetByID)
		r.Put("/{id}", app.Products.Update)
		r.Delete("/{id}", app.Products.Delete)
	})

	r.Post("/checkout", app.Orders.Checkout)
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", app.Orders.List)
		r.Get("/user/{email}", app.Orders.ListByUser)
		r.Put("/{id}", app.Orders.UpdateStatus)
	})

	return r
}

// newCompressor negotiates br before gzip for JSON responses.
func newCompressor() *middleware.Compressor {
	c := middleware.NewCompressor(5, "application/json", "text/html", "text/plain", "application/javascript", "text/css")
	c.SetEncoder("br", func(w io.Writer, level int) io.Writer {
		return brotli.NewWriterLevel(w, level)
	})
	return c
}
