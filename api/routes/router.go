package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/amaclone/storefront/api/controllers"
	"github.com/amaclone/storefront/api/middleware"
	"github.com/amaclone/storefront/internal/auth"
	"github.com/amaclone/storefront/internal/orders"
	productsvc "github.com/amaclone/storefront/internal/products"
	"github.com/amaclone/storefront/internal/reviews"
	"github.com/amaclone/storefront/internal/wishlist"
	"github.com/amaclone/storefront/pkg/config"
	"github.com/amaclone/storefront/pkg/enums"
	"github.com/amaclone/storefront/pkg/logger"
	"github.com/amaclone/storefront/pkg/metrics"
	"github.com/amaclone/storefront/pkg/redis"
)

// Dependencies collects everything the HTTP surface is wired from. Redis may be nil, in
// which case rate limiting and idempotency are disabled.
type Dependencies struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          controllers.Pinger
	Redis       *redis.Client
	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics

	Carts    controllers.CartOpener
	Locales  controllers.LocaleOpener
	Auth     auth.Service
	Products productsvc.Service
	Reviews  reviews.Service
	Orders   orders.Service
	Wishlist wishlist.Service
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	var (
		counter     middleware.RateCounter
		limiter     middleware.FixedWindowLimiter
		idempotency redis.IdempotencyStore
		readiness   = map[string]controllers.Pinger{"db": deps.DB}
	)
	if deps.Redis != nil {
		counter = deps.Redis
		limiter = deps.Redis
		idempotency = deps.Redis
		readiness["redis"] = deps.Redis
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, readiness, logg))
	})

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	authenticated := middleware.Auth(cfg.JWT, logg)
	mutationLimit := middleware.SessionRateLimit("session_mutation", int64(cfg.Session.MutationLimit), cfg.Session.MutationWindow, limiter, logg)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(middleware.LoginRateLimitPolicy(cfg.AuthRateLimit), counter, logg)).
				Post("/login", controllers.AuthLogin(deps.Auth, logg))
			r.With(
				middleware.AuthRateLimit(middleware.RegisterRateLimitPolicy(cfg.AuthRateLimit), counter, logg),
				middleware.Idempotency(idempotency, middleware.IdempotencyTTL, logg),
			).Post("/register", controllers.AuthRegister(deps.Auth, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(deps.Carts, logg))
			r.Group(func(r chi.Router) {
				r.Use(mutationLimit)
				r.Delete("/", controllers.ClearCart(deps.Carts, logg))
				r.Post("/items", controllers.AddCartItem(deps.Carts, deps.Products, logg))
				r.Patch("/items/{itemId}", controllers.UpdateCartItem(deps.Carts, logg))
				r.Delete("/items/{itemId}", controllers.RemoveCartItem(deps.Carts, logg))
			})
		})

		r.Get("/locale", controllers.GetLocale(deps.Locales, logg))
		r.With(mutationLimit).Put("/locale", controllers.SetLocale(deps.Locales, logg))
		r.Get("/translations", controllers.Translate(deps.Locales, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Products, logg))
			r.Route("/{productId}", func(r chi.Router) {
				r.Get("/", controllers.GetProduct(deps.Products, logg))
				r.Get("/related", controllers.RelatedProducts(deps.Products, logg))
				r.Get("/reviews", controllers.ListReviews(deps.Reviews, logg))
				r.With(authenticated, middleware.Idempotency(idempotency, middleware.IdempotencyTTL, logg)).
					Post("/reviews", controllers.CreateReview(deps.Reviews, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(authenticated)
			r.With(middleware.Idempotency(idempotency, middleware.CheckoutIdempotencyTTL, logg)).
				Post("/", controllers.Checkout(deps.Orders, deps.Carts, deps.Locales, logg))
			r.Get("/", controllers.ListOrders(deps.Orders, logg))
			r.Get("/{orderId}", controllers.GetOrder(deps.Orders, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Use(authenticated)
			r.Get("/", controllers.WishlistList(deps.Wishlist, logg))
			r.Post("/items", controllers.WishlistAddItem(deps.Wishlist, logg))
			r.Delete("/items/{productId}", controllers.WishlistRemoveItem(deps.Wishlist, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(authenticated, middleware.RequireRole(enums.UserRoleAdmin, logg))

		r.Route("/products", func(r chi.Router) {
			r.With(middleware.Idempotency(idempotency, middleware.IdempotencyTTL, logg)).
				Post("/", controllers.AdminCreateProduct(deps.Products, logg))
			r.Patch("/{productId}", controllers.AdminUpdateProduct(deps.Products, logg))
			r.Delete("/{productId}", controllers.AdminDeleteProduct(deps.Products, logg))
		})
		r.Patch("/orders/{orderId}/status", controllers.AdminUpdateOrderStatus(deps.Orders, logg))
	})

	return r
}
