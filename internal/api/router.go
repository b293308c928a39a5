package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/res-landing/restaurant-system/internal/api/handler"
	"github.com/res-landing/restaurant-system/internal/api/middleware"
	"github.com/res-landing/restaurant-system/internal/auth"
	"github.com/res-landing/restaurant-system/internal/core/domain"
	"github.com/res-landing/restaurant-system/internal/core/service"
	mongodb "github.com/res-landing/restaurant-system/internal/infrastructure/db/mongo"
	redisdb "github.com/res-landing/restaurant-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, issuer *auth.Issuer, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("restaurant"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	menuRepo := mongodb.NewMenuRepository(db)
	menuCache := redisdb.NewMenuCache(rdb, log)

	authService := service.NewAuthService(userRepo, issuer)
	menuService := service.NewMenuService(menuRepo, menuCache, log)

	authHandler := handler.NewAuthHandler(authService)
	menuHandler := handler.NewMenuHandler(menuService)

	requireAuth := middleware.Auth(issuer, userRepo)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	authGroup := e.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	// --- Menu routes: reads are public, mutations are admin-only ---
	menuGroup := e.Group("/api/menu-items")
	menuGroup.GET("", menuHandler.List)
	menuGroup.GET("/:id", menuHandler.Get)
	menuGroup.POST("", menuHandler.Create, requireAuth, adminOnly)
	menuGroup.PUT("/:id", menuHandler.Update, requireAuth, adminOnly)
	menuGroup.DELETE("/:id", menuHandler.Delete, requireAuth, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

// requestLogger emits one structured zerolog line per request. Server errors
// log at error level so they stand out without a separate alerting parse.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		// Run the error handler before logging so the line carries the
		// real response status, not the pre-error default.
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error()
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP)
			if v.Error != nil {
				evt = evt.Err(v.Error)
			}
			evt.Msg("request")
			return nil
		},
	})
}
