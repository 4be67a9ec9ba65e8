package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation-engine/internal/config"
	"github.com/iliyamo/hotel-reservation-engine/internal/database"
	"github.com/iliyamo/hotel-reservation-engine/internal/engine"
	"github.com/iliyamo/hotel-reservation-engine/internal/handler"
	"github.com/iliyamo/hotel-reservation-engine/internal/queue"
	"github.com/iliyamo/hotel-reservation-engine/internal/repository"
	"github.com/iliyamo/hotel-reservation-engine/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	eng := engine.New(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	// Redis is optional: nil disables the response cache and rate
	// limiting, both middlewares degrade to pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}

	h := router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, users, tokens),
		RoomTypes:    handler.NewRoomTypeHandler(eng),
		Inventory:    handler.NewInventoryHandler(eng),
		Bookings:     handler.NewBookingHandler(eng),
		Blocks:       handler.NewBlockHandler(eng),
		Availability: handler.NewAvailabilityHandler(eng),
		Analytics:    handler.NewAnalyticsHandler(eng),
	}

	e := echo.New()
	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, h.Auth, cfg.JWTSecret)
	router.RegisterPublic(e, h, rdb)
	router.RegisterStaff(e, h, cfg.JWTSecret)

	// Housekeeping loop: flip lapsed blocks to EXPIRED and purge old
	// refresh tokens.  Availability never depends on this running;
	// it only keeps reporting queries honest.
	go func() {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if n, err := eng.SweepExpiredBlocks(ctx); err != nil {
				log.Printf("block sweep: %v", err)
			} else if n > 0 {
				log.Printf("block sweep: expired %d blocks", n)
			}
			if _, err := tokens.PurgeExpired(ctx, 30*24*time.Hour); err != nil {
				log.Printf("token purge: %v", err)
			}
			cancel()
		}
	}()

	// Booking event consumer writes logs/booking.log; it reconnects
	// forever on broker failures.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
