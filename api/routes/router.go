package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ferreteriahogar/inventory-backend/api/controllers"
	"github.com/ferreteriahogar/inventory-backend/api/middleware"
	authsvc "github.com/ferreteriahogar/inventory-backend/internal/auth"
	inventorysvc "github.com/ferreteriahogar/inventory-backend/internal/inventories"
	productsvc "github.com/ferreteriahogar/inventory-backend/internal/products"
	stocksvc "github.com/ferreteriahogar/inventory-backend/internal/stock"
	usersvc "github.com/ferreteriahogar/inventory-backend/internal/users"
	"github.com/ferreteriahogar/inventory-backend/pkg/config"
	"github.com/ferreteriahogar/inventory-backend/pkg/db"
	"github.com/ferreteriahogar/inventory-backend/pkg/enums"
	"github.com/ferreteriahogar/inventory-backend/pkg/logger"
	"github.com/ferreteriahogar/inventory-backend/pkg/metrics"
	"github.com/ferreteriahogar/inventory-backend/pkg/redis"
)

// Deps carries everything the router mounts.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	HTTPMetrics *metrics.HTTPMetrics
	MetricsHTTP http.Handler

	Auth        authsvc.Service
	Users       usersvc.Service
	Products    productsvc.Service
	Inventories inventorysvc.Service
	Stock       stocksvc.Service
}

// NewRouter assembles the HTTP surface. User management writes are open to
// ADMIN and UADMIN, product and inventory writes to ADMIN and IADMIN; every
// authenticated role may read.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)
	if deps.HTTPMetrics != nil {
		r.Use(deps.HTTPMetrics.Middleware)
	}

	anyRole := []enums.Role{enums.RoleUser, enums.RoleAdmin, enums.RoleUserAdmin, enums.RoleInventoryAdmin}
	userAdmins := []enums.Role{enums.RoleAdmin, enums.RoleUserAdmin}
	inventoryAdmins := []enums.Role{enums.RoleAdmin, enums.RoleInventoryAdmin}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, readyRedis(deps.Redis), logg))
	})

	if deps.MetricsHTTP != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHTTP)
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.Get("/status", controllers.AuthStatus())
		r.With(middleware.AuthRateLimit(loginPolicy, rateLimitStore(deps.Redis), logg)).
			Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/bootstrap-admin", controllers.AuthBootstrapAdmin(deps.Auth, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/users", func(r chi.Router) {
			r.With(middleware.RequireAnyRole(logg, anyRole...)).Get("/me", controllers.UsersMe(deps.Users, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAnyRole(logg, userAdmins...))
				r.Get("/all", controllers.UsersAll(deps.Users, logg))
				r.Post("/create-user", controllers.UsersCreate(deps.Users, logg))
				r.Put("/{username}", controllers.UsersUpdate(deps.Users, logg))
				r.Delete("/{username}", controllers.UsersDelete(deps.Users, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.With(middleware.RequireAnyRole(logg, anyRole...)).Get("/", controllers.ProductsList(deps.Products, logg))
			r.With(middleware.RequireAnyRole(logg, anyRole...)).Get("/{code}", controllers.ProductsGet(deps.Products, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAnyRole(logg, inventoryAdmins...))
				r.Post("/", controllers.ProductsCreate(deps.Products, logg))
				r.Put("/", controllers.ProductsUpdate(deps.Products, logg))
				r.Delete("/{code}", controllers.ProductsDelete(deps.Products, logg))
			})
		})

		r.Route("/inventory", func(r chi.Router) {
			r.With(middleware.RequireAnyRole(logg, anyRole...)).Get("/", controllers.InventoriesList(deps.Inventories, logg))
			r.With(middleware.RequireAnyRole(logg, anyRole...)).Get("/{code}", controllers.InventoriesGet(deps.Inventories, logg))
			r.With(middleware.RequireAnyRole(logg, anyRole...)).Get("/{code}/full", controllers.InventoriesGetFull(deps.Inventories, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAnyRole(logg, inventoryAdmins...))
				r.Post("/", controllers.InventoriesCreate(deps.Inventories, logg))
				r.Put("/", controllers.InventoriesUpdate(deps.Inventories, logg))
				r.Delete("/{code}", controllers.InventoriesDelete(deps.Inventories, logg))
			})
		})

		r.Route("/inventory-product", func(r chi.Router) {
			r.Use(middleware.RequireAnyRole(logg, anyRole...))
			r.Post("/", controllers.StockCreate(deps.Stock, logg))
			r.Put("/", controllers.StockUpdate(deps.Stock, logg))
			r.Get("/inventory/{code}", controllers.StockListByInventory(deps.Stock, logg))
			r.Get("/{invCode}/{prodCode}", controllers.StockGet(deps.Stock, logg))
			r.Post("/{invCode}/scan/{prodCode}/{qty}", controllers.StockScan(deps.Stock, logg))
			r.Delete("/{invCode}/{prodCode}", controllers.StockDelete(deps.Stock, logg))
		})
	})

	return r
}

// typed-nil guards: a nil *redis.Client must become a nil interface so the
// downstream nil checks behave.
func readyRedis(client *redis.Client) redis.Pinger {
	if client == nil {
		return nil
	}
	return client
}

func rateLimitStore(client *redis.Client) middleware.RateLimiterStore {
	if client == nil {
		return nil
	}
	return client
}
