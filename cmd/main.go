package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"stowage/internal/caching"
	"stowage/internal/config"
	"stowage/internal/handlers"
	"stowage/internal/jobs"
	"stowage/internal/jobs/background"
	"stowage/internal/middleware"
	"stowage/internal/repositories"
	"stowage/internal/services"
	"stowage/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pool, err := database.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Repositories
	warehouseRepo := repositories.NewWarehouseRepository(pool)
	zoneRepo := repositories.NewZoneRepository(pool)
	locationRepo := repositories.NewLocationRepository(pool)
	itemRepo := repositories.NewItemRepository(pool)
	tareTypeRepo := repositories.NewTareTypeRepository(pool)
	tareRepo := repositories.NewTareRepository(pool)
	orderRepo := repositories.NewInboundOrderRepository(pool)
	inventoryRepo := repositories.NewInventoryRepository(pool)

	// Services
	referenceSvc := services.NewReferenceService(warehouseRepo, zoneRepo, locationRepo, itemRepo, cacheSvc)
	tareSvc := services.NewTareService(pool, tareRepo, tareTypeRepo, warehouseRepo, locationRepo)
	movementSvc := services.NewMovementService(pool, tareRepo, locationRepo, inventoryRepo)
	inboundSvc := services.NewInboundService(
		pool, orderRepo, tareRepo, warehouseRepo, locationRepo, itemRepo, cfg.OverReceiveTolerancePct)

	// Background jobs
	monitor := jobs.NewReceivingMonitor(orderRepo, time.Duration(cfg.StaleReceivingHours)*time.Hour)
	scheduler, err := background.NewJobScheduler(monitor, cacheSvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	// Handlers
	healthHandlers := handlers.NewHealthHandlers(pool, version)
	inboundHandlers := handlers.NewInboundOrderHandlers(inboundSvc)
	tareHandlers := handlers.NewTareHandlers(tareSvc, movementSvc)
	tareTypeHandlers := handlers.NewTareTypeHandlers(tareSvc)
	referenceHandlers := handlers.NewReferenceHandlers(referenceSvc, movementSvc)
	jobHandlers := handlers.NewJobHandlers(scheduler, monitor)

	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	versionMiddleware := middleware.NewVersionMiddleware()
	e.Use(versionMiddleware.APIVersionResolver())

	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/detailed", healthHandlers.DetailedHealthCheck)

	v1 := e.Group("/v1")
	v1.Use(versionMiddleware.VersionHeader("v1"))

	v1.GET("/inbound_orders", inboundHandlers.ListInboundOrders)
	v1.POST("/inbound_orders", inboundHandlers.CreateInboundOrder)
	v1.GET("/inbound_orders/:id", inboundHandlers.GetInboundOrder)
	v1.PATCH("/inbound_orders/:id/status", inboundHandlers.UpdateInboundStatus)
	v1.POST("/inbound_orders/:id/receive", inboundHandlers.Receive)
	v1.POST("/inbound_orders/:id/close_tare", inboundHandlers.CloseTare)
	v1.GET("/inbound_orders/:id/receipts", inboundHandlers.ListReceipts)

	v1.GET("/tares", tareHandlers.ListTares)
	v1.POST("/tares", tareHandlers.CreateTare)
	v1.POST("/tares/bulk", tareHandlers.CreateTaresBulk)
	v1.GET("/tares/for-putaway", tareHandlers.ListForPutaway)
	v1.GET("/tares/in-storage", tareHandlers.ListInStorage)
	v1.GET("/tares/types", tareTypeHandlers.ListTareTypes)
	v1.POST("/tares/types", tareTypeHandlers.CreateTareType)
	v1.PATCH("/tares/types/:id", tareTypeHandlers.UpdateTareType)
	v1.DELETE("/tares/types/:id", tareTypeHandlers.DeleteTareType)
	v1.GET("/tares/:id", tareHandlers.GetTare)
	v1.GET("/tares/:id/items", tareHandlers.ListTareItems)
	v1.POST("/tares/:id/putaway", tareHandlers.PutawayTare)
	v1.POST("/tares/:id/move", tareHandlers.MoveTare)

	v1.GET("/warehouses", referenceHandlers.ListWarehouses)
	v1.GET("/warehouses/:id", referenceHandlers.GetWarehouse)
	v1.GET("/zones", referenceHandlers.ListZones)
	v1.GET("/locations", referenceHandlers.ListLocations)
	v1.GET("/locations/:id", referenceHandlers.GetLocation)
	v1.GET("/items", referenceHandlers.SearchItems)
	v1.GET("/items/:id", referenceHandlers.GetItem)
	v1.GET("/inventory", referenceHandlers.ListInventory)

	v1.GET("/jobs/status", jobHandlers.JobStatus)
	v1.POST("/jobs/receiving-scan", jobHandlers.RunReceivingScan)

	log.Printf("Stowage server v%s starting on port %d", version, cfg.Port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
