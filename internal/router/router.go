package router

import (
	"time"

	"fernledger/internal/carbon"
	"fernledger/internal/config"
	"fernledger/internal/handler"
	"fernledger/internal/infra"
	"fernledger/internal/middleware"
	"fernledger/internal/repository"
	"fernledger/internal/service"
	"fernledger/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, photos infra.PhotoStore, dispatcher *worker.Dispatcher) *gin.Engine {
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
	batchRepo := repository.NewBatchRepository(db)
	shipmentRepo := repository.NewShipmentRepository(db)
	growthRepo := repository.NewGrowthRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	calcCfg := carbon.DefaultConfig()
	if cfg.CarbonDefaultFactor > 0 {
		calcCfg.DefaultFactor = decimal.NewFromFloat(cfg.CarbonDefaultFactor)
	}
	if cfg.CarbonUncertainty > 0 {
		calcCfg.Uncertainty = decimal.NewFromFloat(cfg.CarbonUncertainty)
	}
	calc := carbon.NewCalculator(calcCfg)
	cache := service.NewSummaryCache(rdb)

	batchSvc := service.NewBatchService(batchRepo, photos, calc, cache)
	ledgerSvc := service.NewLedgerService(batchRepo, shipmentRepo, dispatcher, cache)
	growthSvc := service.NewGrowthService(batchRepo, growthRepo, photos)
	summarySvc := service.NewSummaryService(batchRepo, calc, cache, cfg.PDFStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	batchesH := handler.NewBatchesHandler(batchSvc)
	shipmentsH := handler.NewShipmentsHandler(ledgerSvc)
	growthH := handler.NewGrowthHandler(growthSvc)
	summaryH := handler.NewSummaryHandler(summarySvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		v1.GET("/batches", batchesH.List)
		v1.POST("/batches", batchesH.Create)
		v1.GET("/batches/:id", batchesH.Get)
		v1.DELETE("/batches/:id", batchesH.Delete)

		v1.POST("/batches/:id/shipments", shipmentsH.Record)
		v1.DELETE("/shipments/:id", shipmentsH.Delete)

		v1.POST("/batches/:id/growth-records", growthH.Add)
		v1.DELETE("/growth-records/:id", growthH.Delete)

		v1.GET("/summary", summaryH.Get)
		v1.GET("/summary/report", summaryH.Report)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
