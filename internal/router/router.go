package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/DaviCMachado/my-price-tracker/internal/config"
	"github.com/DaviCMachado/my-price-tracker/internal/handler"
	"github.com/DaviCMachado/my-price-tracker/internal/middleware"
	"github.com/DaviCMachado/my-price-tracker/internal/repository"
	"github.com/DaviCMachado/my-price-tracker/internal/service"
	"github.com/DaviCMachado/my-price-tracker/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	recordRepo := repository.NewPriceRecordRepository(db)
	storeRepo := repository.NewStoreRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)
	notifier := service.NewRedisNotifier(rdb, dispatcher)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	recordSvc := service.NewRecordService(recordRepo, notifier)
	storeSvc := service.NewStoreService(storeRepo, notifier)
	viewSvc := service.NewViewService(recordRepo, storeRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	recordsH := handler.NewRecordsHandler(recordSvc)
	storesH := handler.NewStoresHandler(storeSvc)
	viewsH := handler.NewViewsHandler(viewSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/anonymous", authH.Anonymous)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		records := v1.Group("/records")
		{
			records.POST("", recordsH.Create)
			records.GET("", recordsH.List)
			records.GET("/:id/draft", recordsH.EditDraft)
			records.PUT("/:id", recordsH.Update)
			records.DELETE("/:id", recordsH.Delete)
		}

		stores := v1.Group("/stores")
		{
			stores.POST("", storesH.Create)
			stores.GET("", storesH.List)
			stores.PUT("/:id", storesH.Update)
			stores.DELETE("/:id", storesH.Delete)
		}

		v1.GET("/dashboard/stats", viewsH.DashboardStats)
		v1.GET("/products", viewsH.ProductIndex)
		v1.GET("/products/comparison", viewsH.Comparison)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
