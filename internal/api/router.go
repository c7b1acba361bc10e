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

	"github.com/ireserve/ireserve-api/internal/api/handler"
	"github.com/ireserve/ireserve-api/internal/api/middleware"
	"github.com/ireserve/ireserve-api/internal/core/domain"
	"github.com/ireserve/ireserve-api/internal/core/ports"
	"github.com/ireserve/ireserve-api/internal/core/service"
	"github.com/ireserve/ireserve-api/internal/core/token"
	mongodb "github.com/ireserve/ireserve-api/internal/infrastructure/db/mongo"
	redisdb "github.com/ireserve/ireserve-api/internal/infrastructure/db/redis"
	"github.com/ireserve/ireserve-api/internal/infrastructure/registry"
	"github.com/ireserve/ireserve-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; the refresh token registries then stay in-process.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("ireserve"))

	// --- Dependencies ---
	tokens := token.NewManager(cfg.JWTSecret, cfg.RefreshSecret, 0, 0)
	adminRepo := mongodb.NewAdminRepository(db)
	userRepo := mongodb.NewUserRepository(db)

	// Admin and user refresh pools stay separate.
	var adminRegistry, userRegistry ports.RefreshTokenRegistry
	if rdb != nil {
		adminRegistry = redisdb.NewRefreshTokenRegistry(rdb, "admin")
		userRegistry = redisdb.NewRefreshTokenRegistry(rdb, "user")
	} else {
		adminRegistry = registry.NewMemory()
		userRegistry = registry.NewMemory()
	}

	adminService := service.NewAdminService(adminRepo, tokens, adminRegistry, log.With().Str("component", "admin_service").Logger())
	userService := service.NewUserService(userRepo, tokens, userRegistry, log.With().Str("component", "user_service").Logger())
	adminHandler := handler.NewAdminHandler(adminService)
	userHandler := handler.NewUserHandler(userService)

	authRequired := middleware.Auth(tokens)
	superAdminOnly := middleware.SuperAdmin(adminRepo)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Versioned API ---
	v1 := e.Group("/api/v1")

	admin := v1.Group("/admin")
	admin.POST("/register", adminHandler.Register)
	admin.POST("/login", adminHandler.Login)
	admin.POST("/refresh", adminHandler.Refresh)
	admin.POST("/logout", adminHandler.Logout)
	admin.GET("/profile", adminHandler.Profile, authRequired)
	admin.GET("", adminHandler.List, authRequired, superAdminOnly)
	admin.GET("/:id", adminHandler.Get, authRequired, superAdminOnly)
	admin.PUT("/:id", adminHandler.Update, authRequired, superAdminOnly)
	admin.DELETE("/:id", adminHandler.Deactivate, authRequired, superAdminOnly)

	auth := v1.Group("/auth")
	auth.POST("/register", userHandler.Register)
	auth.POST("/login", userHandler.Login)
	auth.POST("/refresh", userHandler.Refresh)
	auth.POST("/logout", userHandler.Logout)
	auth.GET("/profile", userHandler.Profile, authRequired)

	users := v1.Group("/users", authRequired, adminOnly)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "iReserve API is running"})
	})

	return e
}
