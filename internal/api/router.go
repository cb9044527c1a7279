package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/driftbox/driftbox/docs"
	"github.com/driftbox/driftbox/internal/api/handler"
	"github.com/driftbox/driftbox/internal/api/middleware"
	"github.com/driftbox/driftbox/internal/core/ports"
	"github.com/driftbox/driftbox/internal/core/service"
	mongodb "github.com/driftbox/driftbox/internal/infrastructure/db/mongo"
	redisdb "github.com/driftbox/driftbox/internal/infrastructure/db/redis"
	"github.com/driftbox/driftbox/internal/infrastructure/storage"
)

// Deps bundles the external collaborators the router wires together.
type Deps struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	Store     *storage.MinioStore
	Cleanup   ports.CleanupQueue
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("driftbox"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.Mongo)
	fileRepo := mongodb.NewFileRepository(deps.Mongo)
	reserver := redisdb.NewKeyReserver(deps.Redis)

	hasher := service.NewArgon2Hasher()
	issuer := service.NewJWTIssuer(deps.JWTSecret, service.DefaultTokenTTL)

	authService := service.NewAuthService(userRepo, hasher, issuer)
	fileService := service.NewFileService(fileRepo, deps.Store, reserver, deps.Cleanup, deps.Logger)

	authHandler := handler.NewAuthHandler(authService)
	fileHandler := handler.NewFileHandler(fileService)
	authMiddleware := middleware.Auth(issuer)

	// --- Auth routes (outside the gate) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Protected routes ---
	e.GET("/me", fileHandler.Me, authMiddleware)
	e.POST("/files", fileHandler.Upload, authMiddleware)
	e.GET("/files/:key", fileHandler.Fetch, authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis, deps.Store)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
