package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/relistlabs/relist-backend/api/controllers"
	"github.com/relistlabs/relist-backend/api/middleware"
	authsvc "github.com/relistlabs/relist-backend/internal/auth"
	cartsvc "github.com/relistlabs/relist-backend/internal/cart"
	"github.com/relistlabs/relist-backend/internal/catalog"
	"github.com/relistlabs/relist-backend/internal/categories"
	checkoutsvc "github.com/relistlabs/relist-backend/internal/checkout"
	"github.com/relistlabs/relist-backend/internal/media"
	ordersvc "github.com/relistlabs/relist-backend/internal/orders"
	userssvc "github.com/relistlabs/relist-backend/internal/users"
	"github.com/relistlabs/relist-backend/pkg/config"
	"github.com/relistlabs/relist-backend/pkg/db"
	"github.com/relistlabs/relist-backend/pkg/logger"
	"github.com/relistlabs/relist-backend/pkg/metrics"
	"github.com/relistlabs/relist-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs. Redis and the metrics
// registry are optional.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              *db.Client
	Redis           *redis.Client
	HTTPMetrics     *metrics.HTTPMetrics
	MetricsRegistry *prometheus.Registry

	AuthService     authsvc.Service
	UserService     userssvc.Service
	CatalogService  catalog.Service
	CategoryService categories.Service
	CartService     cartsvc.Service
	CheckoutService checkoutsvc.Service
	OrderService    ordersvc.Service
	MediaService    media.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
	)

	loginLimiter := passthrough
	registerLimiter := passthrough
	if deps.Redis != nil {
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
		loginLimiter = middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)
		registerLimiter = middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	// Listing images are served straight off local disk.
	r.Handle(cfg.Uploads.PathPrefix+"/*", http.StripPrefix(cfg.Uploads.PathPrefix+"/", http.FileServer(http.Dir(cfg.Uploads.Dir))))

	requireAuth := middleware.Auth(cfg.JWT, logg)

	r.Route("/api/auth", func(r chi.Router) {
		r.With(registerLimiter).Post("/register", controllers.Register(deps.AuthService, logg))
		r.With(loginLimiter).Post("/login", controllers.Login(deps.AuthService, logg))
		r.With(requireAuth).Get("/profile", controllers.CurrentUser(deps.AuthService, logg))
	})

	r.Route("/api/products", func(r chi.Router) {
		// Browsing the catalog requires no account.
		r.Get("/", controllers.ListProducts(deps.CatalogService, logg))
		r.Get("/{id}", controllers.GetProduct(deps.CatalogService, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/user/my-products", controllers.ListMyProducts(deps.CatalogService, logg))
			r.Post("/", controllers.CreateProduct(deps.CatalogService, deps.MediaService, logg))
			r.Put("/{id}", controllers.UpdateProduct(deps.CatalogService, deps.MediaService, logg))
			r.Delete("/{id}", controllers.DeleteProduct(deps.CatalogService, logg))
		})
	})

	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", controllers.ListCategories(deps.CategoryService, logg))
		r.Get("/{id}", controllers.GetCategory(deps.CategoryService, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", controllers.CreateCategory(deps.CategoryService, logg))
			r.Put("/{id}", controllers.UpdateCategory(deps.CategoryService, logg))
			r.Delete("/{id}", controllers.DeleteCategory(deps.CategoryService, logg))
		})
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/profile", controllers.GetProfile(deps.UserService, logg))
		r.Put("/profile", controllers.UpdateProfile(deps.UserService, logg))
		r.Get("/orders", controllers.ListMyOrders(deps.OrderService, logg))
	})

	r.Route("/api/cart", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", controllers.GetCart(deps.CartService, logg))
		r.Post("/", controllers.AddCartItem(deps.CartService, logg))
		r.Delete("/", controllers.ClearCart(deps.CartService, logg))
		r.Post("/checkout", controllers.Checkout(deps.CheckoutService, logg))
		r.Put("/{itemId}", controllers.UpdateCartItem(deps.CartService, logg))
		r.Delete("/{itemId}", controllers.RemoveCartItem(deps.CartService, logg))
	})

	r.With(requireAuth).Get("/api/orders/{id}", controllers.GetOrder(deps.OrderService, logg))

	return r
}

func passthrough(next http.Handler) http.Handler {
	return next
}
