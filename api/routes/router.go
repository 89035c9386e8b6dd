package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jcastillo-dev/comanda-backend/api/controllers"
	"github.com/jcastillo-dev/comanda-backend/api/middleware"
	"github.com/jcastillo-dev/comanda-backend/internal/analytics"
	"github.com/jcastillo-dev/comanda-backend/internal/auth"
	"github.com/jcastillo-dev/comanda-backend/internal/inventory"
	"github.com/jcastillo-dev/comanda-backend/internal/orders"
	"github.com/jcastillo-dev/comanda-backend/internal/recipes"
	"github.com/jcastillo-dev/comanda-backend/internal/reservations"
	"github.com/jcastillo-dev/comanda-backend/internal/subscriptions"
	"github.com/jcastillo-dev/comanda-backend/internal/tables"
	"github.com/jcastillo-dev/comanda-backend/pkg/auth/session"
	"github.com/jcastillo-dev/comanda-backend/pkg/config"
	"github.com/jcastillo-dev/comanda-backend/pkg/db"
	"github.com/jcastillo-dev/comanda-backend/pkg/logger"
	"github.com/jcastillo-dev/comanda-backend/pkg/redis"
)

type rateLimiterStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RouterParams collects every dependency the REST surface needs.
type RouterParams struct {
	Config *config.Config
	Logger *logger.Logger

	DB    db.Pinger
	Redis *redis.Client

	Sessions session.AccessSessionChecker

	AuthService     auth.Service
	RegisterService auth.RegisterService
	Orders          orders.Service
	Tables          tables.Service
	Reservations    reservations.Service
	Inventory       inventory.Service
	Recipes         recipes.Service
	Analytics       analytics.Service
	Subscriptions   subscriptions.Service
}

// NewRouter assembles the API surface under /api/v1 plus the public health
// endpoints.
func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	// A nil client must stay nil as an interface, otherwise the
	// middlewares would call methods on a nil pointer.
	var idempotencyStore redis.IdempotencyStore
	var rateLimitStore rateLimiterStore
	var redisPinger redis.Pinger
	if p.Redis != nil {
		idempotencyStore = p.Redis
		rateLimitStore = p.Redis
		redisPinger = p.Redis
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, redisPinger))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, rateLimitStore, logg)).
			Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, rateLimitStore, logg)).
			Post("/register", controllers.AuthRegister(p.RegisterService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		r.Get("/auth/me", controllers.AuthMe(p.AuthService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(p.Orders, logg))
			r.Post("/", controllers.OrdersCreate(p.Orders, logg))
			r.Get("/analytics", controllers.OrdersAnalytics(p.Orders, logg))
			r.Patch("/{orderId}/status", controllers.OrdersUpdateStatus(p.Orders, logg))
		})

		r.Route("/tables", func(r chi.Router) {
			r.Get("/", controllers.TablesList(p.Tables, logg))
			r.Post("/", controllers.TablesCreate(p.Tables, logg))
			r.Put("/{tableId}", controllers.TablesUpdate(p.Tables, logg))
			r.Route("/reservations", func(r chi.Router) {
				r.Get("/", controllers.ReservationsList(p.Reservations, logg))
				r.Post("/", controllers.ReservationsCreate(p.Reservations, logg))
			})
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.InventoryList(p.Inventory, logg))
			r.Post("/", controllers.InventoryCreate(p.Inventory, logg))
			r.Get("/alerts", controllers.InventoryAlerts(p.Inventory, logg))
			r.Put("/{itemId}", controllers.InventoryUpdate(p.Inventory, logg))
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Get("/", controllers.SubscriptionsCurrent(p.Subscriptions, logg))
			r.Put("/plan", controllers.SubscriptionsChangePlan(p.Subscriptions, logg))
		})

		// Recipes and the analytics dashboards are plan-gated.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireActivePlan(p.Subscriptions, logg))

			r.Route("/recipes", func(r chi.Router) {
				r.Get("/", controllers.RecipesList(p.Recipes, logg))
				r.Post("/", controllers.RecipesCreate(p.Recipes, logg))
				r.Get("/{recipeId}", controllers.RecipesGet(p.Recipes, logg))
				r.Put("/{recipeId}", controllers.RecipesUpdate(p.Recipes, logg))
				r.Delete("/{recipeId}", controllers.RecipesDelete(p.Recipes, logg))
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/dashboard", controllers.AnalyticsDashboard(p.Analytics, logg))
				r.Get("/sales", controllers.AnalyticsSales(p.Analytics, logg))
			})
		})
	})

	return r
}
