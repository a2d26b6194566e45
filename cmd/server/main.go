package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/smartflags/seat-allocation/internal/config"
	"github.com/smartflags/seat-allocation/internal/database"
	"github.com/smartflags/seat-allocation/internal/handler"
	"github.com/smartflags/seat-allocation/internal/middleware"
	"github.com/smartflags/seat-allocation/internal/queue"
	"github.com/smartflags/seat-allocation/internal/repository"
	"github.com/smartflags/seat-allocation/internal/router"
)

func main() {
	// .env is optional; real deployments pass environment variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Redis is optional: without it the cache and rate limiter become no-ops.
	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	rateCfg := config.LoadRateLimitConfig()

	seatRepo := repository.NewSeatRepo(db)
	seatTypeRepo := repository.NewSeatTypeRepo(db)
	deviceRepo := repository.NewDeviceRepo(db)
	groupRepo := repository.NewGroupRepo(db)
	guestRepo := repository.NewGuestRepo(db)
	staffRepo := repository.NewStaffRepo(db)
	configRepo := repository.NewConfigurationRepo(db)
	allocationRepo := repository.NewAllocationRepo(db)

	seatHandler := handler.NewSeatHandler(seatRepo, seatTypeRepo)
	seatTypeHandler := handler.NewSeatTypeHandler(seatTypeRepo)
	deviceHandler := handler.NewDeviceHandler(deviceRepo, seatRepo)
	groupHandler := handler.NewGroupHandler(groupRepo, seatRepo)
	guestHandler := handler.NewGuestHandler(guestRepo, configRepo)
	configHandler := handler.NewConfigurationHandler(configRepo)
	allocationHandler := handler.NewAllocationHandler(allocationRepo, seatRepo, deviceRepo, guestRepo, staffRepo, configRepo)

	e := echo.New()

	// The limiter mounts inside the JWT-protected groups so user-aware
	// rate keys see the authenticated user id.
	limiter := middleware.NewTokenBucket(rateCfg, rdb)
	cache := middleware.NewRedisCache(cacheCfg, rdb)
	invalidate := middleware.InvalidateOnWrite(rdb)

	router.RegisterRoutes(e)
	router.RegisterInventory(e, seatHandler, seatTypeHandler, deviceHandler, groupHandler, cfg.JWTSecret, cache, limiter, invalidate)
	router.RegisterGuests(e, guestHandler, configHandler, cfg.JWTSecret, limiter)
	router.RegisterAllocations(e, allocationHandler, cfg.JWTSecret, limiter, invalidate)

	// Background consumer mirrors broker events into logs/allocation.log.
	go func() {
		if err := queue.StartAllocationConsumer(); err != nil {
			log.Printf("allocation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
