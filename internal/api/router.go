package api

import (
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/99minutos/library-system/docs"
	"github.com/99minutos/library-system/internal/api/handler"
	"github.com/99minutos/library-system/internal/api/middleware"
	"github.com/99minutos/library-system/internal/core/ports"
)

// Services are the use cases the HTTP layer exposes.
type Services struct {
	Auth      ports.AuthService
	Users     ports.UserService
	Books     ports.BookService
	Purchases ports.PurchaseService
	Loans     ports.LoanService
	Wishlist  ports.WishlistService
	Reviews   ports.ReviewService
	Reports   ports.ReportService
	Audit     ports.AuditService
}

// Options tune the global middleware stack.
type Options struct {
	CORSOrigins    []string
	BodyLimit      string
	RateLimitRPS   float64
	RateLimitBurst int
	// Readiness lists the dependencies pinged by /health/ready.
	Readiness map[string]handler.Pinger
	// Registerer receives the HTTP request metrics; nil means the default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(log zerolog.Logger, verifier middleware.TokenVerifier, svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: opts.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	if opts.BodyLimit != "" {
		e.Use(echomiddleware.BodyLimit(opts.BodyLimit))
	}
	if opts.RateLimitRPS > 0 {
		e.Use(echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
			Skipper: probeSkipper,
			Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(opts.RateLimitRPS),
				Burst:     opts.RateLimitBurst,
				ExpiresIn: 3 * time.Minute,
			}),
		}))
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "library",
		Skipper:    probeSkipper,
		Registerer: opts.Registerer,
	}))

	// --- Health probes and tooling (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(opts.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	registerRoutes(e.Group("/api"), verifier, svc)
	return e
}

func registerRoutes(g *echo.Group, verifier middleware.TokenVerifier, svc Services) {
	auth := middleware.Auth(verifier)
	admin := middleware.AdminOnly(verifier)

	authHandler := handler.NewAuthHandler(svc.Auth)
	userHandler := handler.NewUserHandler(svc.Users, svc.Audit)
	bookHandler := handler.NewBookHandler(svc.Books)
	purchaseHandler := handler.NewPurchaseHandler(svc.Purchases)
	loanHandler := handler.NewLoanHandler(svc.Loans)
	wishlistHandler := handler.NewWishlistHandler(svc.Wishlist)
	reviewHandler := handler.NewReviewHandler(svc.Reviews)
	reportHandler := handler.NewReportHandler(svc.Reports)

	// --- Users ---
	g.POST("/users/register", authHandler.Register)
	g.POST("/users/login", authHandler.Login)
	g.GET("/users/me", userHandler.Me, auth)
	g.PUT("/users/me", userHandler.UpdateMe, auth)
	g.PUT("/users/me/password", userHandler.ChangePassword, auth)
	g.GET("/users", userHandler.List, admin)
	g.PUT("/users/:id/role", userHandler.ChangeRole, admin)
	g.DELETE("/users/:id", userHandler.Delete, admin)
	g.GET("/users/:id/audit", userHandler.Audit, admin)

	// --- Catalog ---
	g.GET("/books", bookHandler.List)
	g.GET("/books/:id", bookHandler.Get)
	g.GET("/books/:id/related", bookHandler.Related)
	g.POST("/books", bookHandler.Create, admin)
	g.PUT("/books/:id", bookHandler.Update, admin)
	g.DELETE("/books/:id", bookHandler.Delete, admin)
	g.GET("/categories", bookHandler.Categories)

	// --- Purchases ---
	g.POST("/purchases", purchaseHandler.Checkout, auth)
	g.GET("/purchases/mine", purchaseHandler.Mine, auth)
	g.GET("/purchases/check/:bookId", purchaseHandler.Check, auth)
	g.GET("/purchases", purchaseHandler.Sales, admin)

	// --- Loans ---
	g.POST("/loans", loanHandler.Borrow, auth)
	g.GET("/loans/mine", loanHandler.Mine, auth)
	g.PUT("/loans/:id/return", loanHandler.Return, auth)
	g.GET("/loans", loanHandler.List, admin)
	g.PUT("/loans/:id", loanHandler.SetStatus, admin)

	// --- Wishlist ---
	g.GET("/wishlist", wishlistHandler.List, auth)
	g.POST("/wishlist", wishlistHandler.Add, auth)
	g.DELETE("/wishlist/:bookId", wishlistHandler.Remove, auth)
	g.GET("/wishlist/check/:bookId", wishlistHandler.Check, auth)

	// --- Reviews ---
	g.POST("/reviews", reviewHandler.Create, auth)
	g.GET("/reviews/:bookId", reviewHandler.ListByBook)

	// --- Admin dashboard ---
	dashboard := g.Group("/admin", admin)
	dashboard.GET("/stats", reportHandler.Stats)
	dashboard.GET("/reports/top-books", reportHandler.TopBooks)
	dashboard.GET("/reports/top-customers", reportHandler.TopCustomers)
	dashboard.GET("/reports/sales.pdf", reportHandler.SalesPDF)
}

func probeSkipper(c echo.Context) bool {
	p := c.Path()
	return p == "/metrics" || strings.HasPrefix(p, "/health")
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		Skipper:      probeSkipper,
		HandleError:  true,
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
