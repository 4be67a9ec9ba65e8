package router // package router defines how HTTP routes are registered for the API

import (
	"database/sql"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hotel-reservation-engine/internal/config"
	"github.com/iliyamo/hotel-reservation-engine/internal/handler"
	"github.com/iliyamo/hotel-reservation-engine/internal/middleware"
	"github.com/iliyamo/hotel-reservation-engine/internal/model"
)

// Handlers groups every handler the router wires up.
type Handlers struct {
	Auth         *handler.AuthHandler
	RoomTypes    *handler.RoomTypeHandler
	Inventory    *handler.InventoryHandler
	Bookings     *handler.BookingHandler
	Blocks       *handler.BlockHandler
	Availability *handler.AvailabilityHandler
	Analytics    *handler.AnalyticsHandler
}

// RegisterRoutes registers the probe endpoints: /healthz answers as
// long as the process is up, /readyz additionally pings the database.
func RegisterRoutes(e *echo.Echo, db *sql.DB) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(db))
}

// RegisterAuth registers the authentication routes.  Unauthenticated
// operations live under /v1/auth; /v1/me is protected.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts a refresh_token body or a bearer header; it does
	// not require the JWT middleware.
	g.POST("/logout", a.Logout)
	e.POST("/v1/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleManager, model.RoleStaff))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated surface: the room type
// catalog and the derived availability endpoints.  Booking sites poll
// these heavily, so they sit behind the Redis response cache and the
// token-bucket rate limiter; both degrade to no-ops when rdb is nil.
func RegisterPublic(e *echo.Echo, h Handlers, rdb *redis.Client) {
	pub := e.Group("/v1/properties/:property_id/room-types")
	pub.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	pub.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	// Booking sites browse the catalog without credentials; the
	// listing defaults to active types only.
	pub.GET("", h.RoomTypes.List)
	pub.GET("/:room_type_id/availability", h.Availability.Range)
	pub.GET("/:room_type_id/availability/check", h.Availability.CheckStay)
	pub.GET("/:room_type_id/availability/today", h.Availability.RealTime)
}

// RegisterStaff registers the authenticated API.  Any staff member
// (MANAGER or STAFF) can read the catalog and work bookings and
// blocks; catalog and ledger mutations require MANAGER.
func RegisterStaff(e *echo.Echo, h Handlers, jwtSecret string) {
	staff := e.Group("/v1")
	staff.Use(middleware.JWTAuth(jwtSecret))
	staff.Use(middleware.RequireRole(model.RoleManager, model.RoleStaff))

	// Catalog reads.  The listing itself is public; staff additionally
	// get the per-type detail and the raw ledger rows.
	staff.GET("/properties/:property_id/room-types/:room_type_id", h.RoomTypes.Get)
	staff.GET("/properties/:property_id/room-types/:room_type_id/inventory", h.Inventory.List)

	// Bookings.
	staff.POST("/properties/:property_id/bookings", h.Bookings.Confirm)
	staff.GET("/properties/:property_id/bookings", h.Bookings.List)
	staff.GET("/bookings/:reference", h.Bookings.Get)
	staff.POST("/bookings/:reference/cancel", h.Bookings.Cancel)
	staff.PUT("/bookings/:reference/status", h.Bookings.UpdateStatus)

	// Blocks.
	staff.POST("/properties/:property_id/blocks", h.Blocks.Create)
	staff.GET("/properties/:property_id/blocks", h.Blocks.List)
	staff.GET("/blocks/:reference", h.Blocks.Get)
	staff.POST("/blocks/:reference/release", h.Blocks.Release)

	// Reports.
	staff.GET("/properties/:property_id/reports/inventory", h.Analytics.InventoryReport)
	staff.GET("/properties/:property_id/reports/occupancy", h.Analytics.Occupancy)
	staff.GET("/properties/:property_id/reports/performance", h.Analytics.Performance)

	// Catalog and ledger mutations, MANAGER only.
	mgr := e.Group("/v1")
	mgr.Use(middleware.JWTAuth(jwtSecret))
	mgr.Use(middleware.RequireRole(model.RoleManager))
	mgr.POST("/properties/:property_id/room-types", h.RoomTypes.Create)
	mgr.PATCH("/properties/:property_id/room-types/:room_type_id", h.RoomTypes.Update)
	mgr.DELETE("/properties/:property_id/room-types/:room_type_id", h.RoomTypes.Deactivate)
	mgr.POST("/properties/:property_id/room-types/:room_type_id/inventory", h.Inventory.Seed)
	mgr.PUT("/properties/:property_id/room-types/:room_type_id/pricing", h.Inventory.UpdatePricing)
	mgr.PUT("/properties/:property_id/room-types/:room_type_id/capacity", h.Inventory.AdjustCapacity)
}
