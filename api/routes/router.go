package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Zuby128/restorder-admin/api/controllers"
	ordercontrollers "github.com/Zuby128/restorder-admin/api/controllers/orders"
	"github.com/Zuby128/restorder-admin/api/middleware"
	"github.com/Zuby128/restorder-admin/internal/auth"
	"github.com/Zuby128/restorder-admin/internal/categories"
	"github.com/Zuby128/restorder-admin/internal/foods"
	"github.com/Zuby128/restorder-admin/internal/orders"
	"github.com/Zuby128/restorder-admin/internal/saloons"
	"github.com/Zuby128/restorder-admin/internal/staff"
	"github.com/Zuby128/restorder-admin/pkg/auth/session"
	"github.com/Zuby128/restorder-admin/pkg/config"
	"github.com/Zuby128/restorder-admin/pkg/db"
	"github.com/Zuby128/restorder-admin/pkg/enums"
	"github.com/Zuby128/restorder-admin/pkg/logger"
	"github.com/Zuby128/restorder-admin/pkg/metrics"
	"github.com/Zuby128/restorder-admin/pkg/redis"
)

// Deps carries everything the router needs. Nil optional fields (metrics,
// rate limit store) disable the matching middleware.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           db.Pinger
	Redis        *redis.Client
	Sessions     session.AccessSessionChecker
	Gatherer     prometheus.Gatherer
	HTTPMetrics  *metrics.HTTPMetrics
	AuthService  auth.Service
	StaffService staff.Service
	Orders       orders.Service
	Foods        foods.Service
	Categories   categories.Service
	Saloons      saloons.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins...),
		middleware.Metrics(d.HTTPMetrics),
	)

	passthrough := func(next http.Handler) http.Handler { return next }
	loginLimit, registerLimit := passthrough, passthrough
	if d.Redis != nil {
		loginLimit = middleware.AuthRateLimit(middleware.NewAuthRateLimitPolicy(
			"login",
			cfg.AuthRateLimit.LoginWindow,
			cfg.AuthRateLimit.LoginIPLimit,
			cfg.AuthRateLimit.LoginUserLimit,
		), d.Redis, logg)
		registerLimit = middleware.AuthRateLimit(middleware.NewAuthRateLimitPolicy(
			"register",
			cfg.AuthRateLimit.RegisterWindow,
			cfg.AuthRateLimit.RegisterIPLimit,
			cfg.AuthRateLimit.RegisterUserLimit,
		), d.Redis, logg)
	}

	var redisP redis.Pinger
	if d.Redis != nil {
		redisP = d.Redis
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DB, redisP))
	})

	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/users", func(r chi.Router) {
		r.With(registerLimit).Post("/register", controllers.Register(d.AuthService, logg))
		r.With(loginLimit).Post("/login", controllers.Login(d.AuthService, logg))
		r.Post("/refresh", controllers.Refresh(d.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
			r.Post("/logout", controllers.Logout(d.AuthService, logg))
			r.With(middleware.RequireRole(string(enums.StaffRoleOwner), logg)).Patch("/update-owner", controllers.UpdateOwner(d.AuthService, logg))
		})
	})

	r.Route("/api/v1/staffs", func(r chi.Router) {
		r.With(loginLimit).Post("/login", controllers.StaffLogin(d.StaffService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
			r.Get("/list/basic", controllers.ListStaffBasic(d.StaffService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(string(enums.StaffRoleOwner), logg))
				r.Post("/", controllers.CreateStaff(d.StaffService, logg))
				r.Get("/", controllers.ListStaff(d.StaffService, logg))
				r.Patch("/{staffId}", controllers.UpdateStaff(d.StaffService, logg))
				r.Delete("/{staffId}", controllers.DeleteStaff(d.StaffService, logg))
				r.Patch("/{staffId}/toggle-status", controllers.ToggleStaffStatus(d.StaffService, logg))
				r.Patch("/{staffId}/toggle-close-table", controllers.ToggleStaffCloseTable(d.StaffService, logg))
			})
		})
	})

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
		r.Get("/", ordercontrollers.List(d.Orders, logg))
		r.Post("/", ordercontrollers.Create(d.Orders, logg))
		r.Get("/stats/{restaurant}", ordercontrollers.Stats(d.Orders, logg))
		r.Get("/{orderId}", ordercontrollers.Detail(d.Orders, logg))
		r.Patch("/items/{orderId}", ordercontrollers.ReplaceItems(d.Orders, logg))
		r.Patch("/status/{orderId}", ordercontrollers.UpdateStatus(d.Orders, logg))
		r.Patch("/discount/{orderId}", ordercontrollers.ApplyDiscount(d.Orders, logg))
		r.Delete("/discount/{orderId}", ordercontrollers.RemoveDiscount(d.Orders, logg))
		r.Post("/additional-charges/{orderId}", ordercontrollers.AddCharge(d.Orders, logg))
		r.Delete("/additional-charges/{orderId}/{chargeId}", ordercontrollers.RemoveCharge(d.Orders, logg))
		r.Delete("/additional-charges/{orderId}", ordercontrollers.ClearCharges(d.Orders, logg))
	})

	r.Route("/api/v1/foods", func(r chi.Router) {
		// the dashboard menu page is public
		r.Get("/restaurant/{restaurant}", controllers.ListFoodsByRestaurant(d.Foods, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
			r.Get("/{foodId}", controllers.GetFood(d.Foods, logg))
			r.Get("/category/{categoryId}", controllers.ListFoodsByCategory(d.Foods, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(string(enums.StaffRoleOwner), logg))
				r.Post("/", controllers.CreateFood(d.Foods, logg))
				r.Patch("/{foodId}", controllers.UpdateFood(d.Foods, logg))
				r.Delete("/{foodId}", controllers.DeleteFood(d.Foods, logg))
			})
		})
	})

	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
		r.Get("/", controllers.ListCategories(d.Categories, logg))
		r.Get("/restaurant/{restaurant}", controllers.ListCategories(d.Categories, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.StaffRoleOwner), logg))
			r.Post("/", controllers.CreateCategory(d.Categories, logg))
			r.Patch("/{categoryId}", controllers.RenameCategory(d.Categories, logg))
			r.Delete("/{categoryId}", controllers.DeleteCategory(d.Categories, logg))
		})
	})

	r.Route("/api/v1/saloons", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
		r.Get("/", controllers.ListSaloons(d.Saloons, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.StaffRoleOwner), logg))
			r.Post("/", controllers.CreateSaloon(d.Saloons, logg))
			r.Patch("/{saloonId}", controllers.RenameSaloon(d.Saloons, logg))
			r.Delete("/{saloonId}", controllers.DeleteSaloon(d.Saloons, logg))
		})
	})

	r.Route("/api/v1/tables", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
		r.Post("/open-table/{tableId}", controllers.OpenTable(d.Saloons, logg))
		r.Get("/close-table/{tableId}", controllers.CloseTable(d.Saloons, logg))
		r.Get("/my-tables", controllers.MyTables(d.Saloons, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.StaffRoleOwner), logg))
			r.Post("/", controllers.CreateTable(d.Saloons, logg))
			r.Patch("/{tableId}", controllers.RenameTable(d.Saloons, logg))
			r.Delete("/{tableId}", controllers.DeleteTable(d.Saloons, logg))
		})
	})

	return r
}
