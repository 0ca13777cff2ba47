package router

import (
	"time"

	"github.com/yacine178/sales/internal/config"
	"github.com/yacine178/sales/internal/handler"
	"github.com/yacine178/sales/internal/middleware"
	"github.com/yacine178/sales/internal/model"
	"github.com/yacine178/sales/internal/repository"
	"github.com/yacine178/sales/internal/service"
	"github.com/yacine178/sales/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
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
	partRepo := repository.NewPartRepository(db)
	productRepo := repository.NewProductRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	inventorySvc := service.NewInventoryService(partRepo, productRepo, movementRepo, dispatcher)
	saleSvc := service.NewSaleService(saleRepo, customerRepo, productRepo, settingsRepo, inventorySvc)
	customerSvc := service.NewCustomerService(customerRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	settingsSvc := service.NewSettingsService(settingsRepo)
	exportSvc := service.NewExportService(productRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	partsH := handler.NewPartsHandler(inventorySvc)
	productsH := handler.NewProductsHandler(inventorySvc)
	salesH := handler.NewSalesHandler(saleSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	exportH := handler.NewExportHandler(exportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes — viewers read, admins mutate
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	readRoles := middleware.RequireRole(model.RoleAdmin, model.RoleViewer)
	adminOnly := middleware.RequireRole(model.RoleAdmin)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/parts", readRoles, partsH.List)
		v1.GET("/parts/low-stock", readRoles, partsH.LowStock)
		v1.GET("/parts/:id", readRoles, partsH.Get)
		parts := v1.Group("/parts", adminOnly)
		{
			parts.POST("", partsH.Create)
			parts.PUT("/:id", partsH.Update)
			parts.DELETE("/:id", partsH.Delete)
			parts.POST("/:id/stock", partsH.AdjustStock)
		}

		v1.GET("/products", readRoles, productsH.List)
		v1.GET("/products/:id", readRoles, productsH.Get)
		products := v1.Group("/products", adminOnly)
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
			products.POST("/:id/stock", productsH.AdjustStock)
		}

		v1.GET("/sales", readRoles, salesH.List)
		v1.GET("/sales/next-invoice-number", readRoles, salesH.NextInvoiceNumber)
		v1.GET("/sales/:id", readRoles, salesH.Get)
		sales := v1.Group("/sales", adminOnly)
		{
			sales.POST("", salesH.Create)
			sales.PUT("/:id", salesH.Update)
			sales.DELETE("/:id", salesH.Delete)
		}

		v1.GET("/customers", readRoles, customersH.List)
		v1.GET("/customers/:id", readRoles, customersH.Get)
		customers := v1.Group("/customers", adminOnly)
		{
			customers.POST("", customersH.Create)
			customers.PUT("/:id", customersH.Update)
			customers.DELETE("/:id", customersH.Delete)
		}

		v1.GET("/categories", readRoles, categoriesH.List)
		categories := v1.Group("/categories", adminOnly)
		{
			categories.POST("", categoriesH.Create)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Delete)
		}

		v1.GET("/settings", readRoles, settingsH.Get)
		v1.PUT("/settings", adminOnly, settingsH.Update)

		v1.GET("/stock-movements", readRoles, partsH.Movements)
		v1.GET("/export/products.csv", readRoles, exportH.ProductsCSV)

		users := v1.Group("/auth/users", adminOnly)
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
