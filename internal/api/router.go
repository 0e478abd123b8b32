package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/marshalhq/marketplace-system/docs"
	"github.com/marshalhq/marketplace-system/internal/api/handler"
	"github.com/marshalhq/marketplace-system/internal/api/middleware"
	"github.com/marshalhq/marketplace-system/internal/core/domain"
	"github.com/marshalhq/marketplace-system/internal/core/service"
	mongodb "github.com/marshalhq/marketplace-system/internal/infrastructure/db/mongo"
	redisdb "github.com/marshalhq/marketplace-system/internal/infrastructure/db/redis"
	"github.com/marshalhq/marketplace-system/internal/infrastructure/queue"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The dispatcher must be started by the caller before the server accepts
// traffic.
func NewRouter(db *mongo.Database, rdb *redis.Client, dispatcher *queue.Dispatcher, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marshalhq"))

	// --- Dependencies ---
	jobRepo := mongodb.NewJobRepository(db)
	appRepo := mongodb.NewApplicationRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	authRepo := mongodb.NewAuthRepository(db)
	waitlistRepo := mongodb.NewWaitlistRepository(db)
	guard := redisdb.NewSubmitGuard(rdb)

	profileService := service.NewProfileService(profileRepo, log)
	authService := service.NewAuthService(authRepo, profileService, jwtSecret, 24*time.Hour)
	jobService := service.NewJobService(jobRepo, log)
	appService := service.NewApplicationService(appRepo, jobRepo, profileRepo, guard, dispatcher, log)
	waitlistService := service.NewWaitlistService(waitlistRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	jobHandler := handler.NewJobHandler(jobService)
	appHandler := handler.NewApplicationHandler(appService)
	profileHandler := handler.NewProfileHandler(profileService)
	waitlistHandler := handler.NewWaitlistHandler(waitlistService)

	authMW := middleware.Auth(jwtSecret)
	managerOnly := middleware.RequireRole(string(domain.RoleManager))
	marshalOnly := middleware.RequireRole(string(domain.RoleMarshal))

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/public/waitlist", waitlistHandler.Join)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", authMW)

	v1.GET("/jobs", jobHandler.ListLive)
	v1.GET("/jobs/mine", jobHandler.ListMine, managerOnly)
	v1.GET("/jobs/:id", jobHandler.Get)
	v1.POST("/jobs", jobHandler.Create, managerOnly)
	v1.GET("/jobs/:id/applicants", appHandler.ListApplicants, managerOnly)
	v1.POST("/jobs/:id/applications", appHandler.Apply, marshalOnly)
	v1.PATCH("/applications/:id", appHandler.Decide, managerOnly)
	v1.GET("/applications/mine", appHandler.ListMine, marshalOnly)
	v1.GET("/profiles/me", profileHandler.Me)
	v1.PUT("/profiles/me", profileHandler.Update)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
