package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/lzar/wallet-gateway/docs"
	"github.com/lzar/wallet-gateway/internal/api/handler"
	"github.com/lzar/wallet-gateway/internal/api/middleware"
	"github.com/lzar/wallet-gateway/internal/core/ports"
	"github.com/lzar/wallet-gateway/internal/core/service"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	identity ports.IdentityService,
	tokens *service.TokenService,
	db *mongo.Database,
	rdb *redis.Client,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("wallet"))

	identityHandler := handler.NewIdentityHandler(identity)
	authMiddleware := middleware.Auth(tokens)

	// --- Identity routes ---
	e.POST("/signup", identityHandler.Signup)
	e.POST("/login", identityHandler.Login)
	e.GET("/me", identityHandler.Me, authMiddleware)
	e.PUT("/me/password", identityHandler.ChangePassword, authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
