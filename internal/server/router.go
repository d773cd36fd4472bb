package server

import (
	"net/http"

	"github.com/dimitrije/signshop-api/internal/handlers"
	authmw "github.com/dimitrije/signshop-api/internal/middleware"
	"github.com/dimitrije/signshop-api/internal/ratelimit"
	"github.com/dimitrije/signshop-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"go.uber.org/zap"
)

// Handlers groups every HTTP handler the API mounts.
type Handlers struct {
	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Template *handlers.TemplateHandler
	Product  *handlers.ProductHandler
	Quote    *handlers.QuoteHandler
	Design   *handlers.DesignHandler
	SSE      *handlers.SSEHandler
}

type Options struct {
	Production   bool
	JWT          *services.JWTService
	QuoteLimiter *ratelimit.Limiter

	// TrustedProxies may set X-Forwarded-For. Empty means no proxy is believed.
	TrustedProxies authmw.TrustedProxies

	// TemplateCount feeds the health check.
	TemplateCount func() int
	Logger        *zap.Logger
}

// NewRouter mounts the public catalog, the authenticated customer routes and
// the super-admin console under /api/v1.
func NewRouter(h Handlers, opts Options) http.Handler {
	app := drift.New()

	if opts.Production {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())
	app.Use(authmw.RequestLogger(opts.Logger.Named("http"), opts.TrustedProxies))

	api := app.Group("/api/v1")

	api.Get("/templates", h.Template.List)
	api.Get("/templates/categories", h.Template.Categories)
	api.Get("/templates/categories/:category/subcategories", h.Template.SubCategories)
	api.Get("/templates/:templateId", h.Template.Get)

	api.Get("/products", h.Product.List)
	api.Get("/products/categories", h.Product.Categories)
	api.Get("/products/:slug", h.Product.Get)

	limited := api.Group("")
	limited.Use(authmw.RateLimit(opts.QuoteLimiter, opts.TrustedProxies, opts.Logger.Named("ratelimit")))
	limited.Post("/quotes", h.Quote.Create)

	auth := api.Group("/auth")
	auth.Get("/:provider/consent", h.Auth.GetConsentURL)
	auth.Get("/:provider/callback", h.Auth.Callback)
	auth.Post("/exchange", h.Auth.ExchangeCode)
	auth.Post("/refresh", h.Auth.RefreshToken)
	auth.Post("/logout", h.Auth.Logout)

	protected := api.Group("")
	protected.Use(authmw.Auth(opts.JWT))

	protected.Post("/auth/logout-all", h.Auth.LogoutAll)

	protected.Get("/users/me", h.User.GetMe)
	protected.Patch("/users/me", h.User.UpdateMe)

	protected.Get("/designs", h.Design.List)
	protected.Post("/designs", h.Design.Create)
	protected.Get("/designs/:designId", h.Design.Get)
	protected.Patch("/designs/:designId", h.Design.Update)
	protected.Delete("/designs/:designId", h.Design.Delete)

	admin := api.Group("/admin")
	admin.Use(authmw.Auth(opts.JWT))
	admin.Use(authmw.RequireSuperAdmin())

	admin.Post("/products", h.Product.Create)
	admin.Delete("/products/:productId", h.Product.Delete)
	admin.Get("/quotes", h.Quote.List)
	admin.Patch("/quotes/:quoteId", h.Quote.UpdateStatus)
	admin.Get("/events", h.SSE.AdminEvents)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]interface{}{
			"status":    "ok",
			"templates": opts.TemplateCount(),
		})
	})

	return app
}
