package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ineludible/trazos-api/internal/api/handler"
	"github.com/ineludible/trazos-api/internal/api/middleware"
	"github.com/ineludible/trazos-api/internal/core/domain"
	"github.com/ineludible/trazos-api/internal/core/service"
	"github.com/ineludible/trazos-api/internal/core/trace"
	mongorepo "github.com/ineludible/trazos-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/ineludible/trazos-api/internal/infrastructure/db/redis"
	"github.com/ineludible/trazos-api/internal/infrastructure/queue"
	"github.com/ineludible/trazos-api/internal/pkg/config"
	"github.com/ineludible/trazos-api/pkg/logger"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the resync retry dispatcher, which the caller must Start.
func NewRouter(client *mongo.Client, db *mongo.Database, rdb *redis.Client, cfg *config.Config) (*echo.Echo, *queue.Dispatcher) {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("trazos"))

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	activityRepo := mongorepo.NewActivityRepository(db)
	bonusRepo := mongorepo.NewBonusRepository(db)

	rankingCache := redisinfra.NewRankingCache(rdb)
	dedup := redisinfra.NewDedupChecker(rdb)

	calc := trace.DefaultCalculator()
	taxonomy := domain.DefaultTaxonomy()

	statsService := service.NewStatsService(userRepo, activityRepo, bonusRepo, rankingCache, log)
	dispatcher := queue.NewDispatcher(cfg.ResyncWorkers, statsService, log)
	activityService := service.NewActivityService(activityRepo, userRepo, statsService, calc, taxonomy, dispatcher, log)
	rankingService := service.NewRankingService(userRepo, rankingCache, log)
	authService := service.NewAuthService(userRepo, bonusRepo, statsService, calc, cfg.JWTSecret, 24*time.Hour, log)
	bonusService := service.NewBonusService(userRepo, bonusRepo, statsService, calc, log)
	userService := service.NewUserService(userRepo, bonusRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	activityHandler := handler.NewActivityHandler(activityService)
	rankingHandler := handler.NewRankingHandler(rankingService)
	userHandler := handler.NewUserHandler(userService, statsService)
	adminHandler := handler.NewAdminHandler(bonusService, userService, statsService, dedup, log)
	healthHandler := handler.NewHealthHandler(client, rdb)

	authMiddleware := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/login", authHandler.Login)

	// --- Activity routes ---
	activities := e.Group("/v1/activities", authMiddleware)
	activities.POST("", activityHandler.Create)
	activities.GET("", activityHandler.List)
	activities.GET("/:id", activityHandler.Get)
	activities.PUT("/:id", activityHandler.Update)
	activities.DELETE("/:id", activityHandler.Delete)

	// The preview is the submission form's live calculator, open to all.
	e.GET("/v1/traces/preview", activityHandler.Preview)

	// --- Ranking routes (public, like the forum's ranking page) ---
	e.GET("/v1/rankings", rankingHandler.Rankings)
	e.GET("/v1/rankings/position/:id", rankingHandler.Position)

	// --- User routes ---
	users := e.Group("/v1/users", authMiddleware)
	users.GET("/:id", userHandler.Profile)
	users.POST("/:id/refresh", userHandler.Refresh)

	// --- Admin routes ---
	admin := e.Group("/v1/admin", authMiddleware, adminOnly)
	admin.POST("/bonus", adminHandler.GrantBonus)
	admin.PUT("/users/:id/rank", adminHandler.SetRank)
	admin.POST("/refresh-all", adminHandler.RefreshAll)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Live)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Ready) // readiness – are dependencies up?

	return e, dispatcher
}
