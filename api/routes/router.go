// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"ticketly/internal/analytics"
	"ticketly/internal/auth"
	"ticketly/internal/events"
	"ticketly/internal/orders"
	"ticketly/internal/shared/config"
	"ticketly/internal/shared/database"
	"ticketly/internal/tickets"
	"ticketly/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	cacheService cache.Service
	orderService orders.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB) *Router {
	return &Router{
		config:       cfg,
		db:           db,
		cacheService: cache.NewService(db.GetRedisClient()),
	}
}

// OrderService exposes the wired order service so the ingest consumer
// can share it.
func (r *Router) OrderService() orders.Service {
	return r.orderService
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupEventRoutes(api)
		r.setupOrderRoutes(api)
		r.setupAnalyticsRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "ticketly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "ticketly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

// setupEventRoutes configures event and ticket-type management routes
func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	eventService := events.NewService(eventRepo)
	eventService.SetCacheService(r.cacheService)
	eventController := events.NewController(eventService)
	eventRouter := events.NewRouter(eventController, r.config)

	eventRouter.SetupRoutes(rg)

	ticketRepo := tickets.NewRepository(r.db.GetPostgreSQL())
	ticketService := tickets.NewService(ticketRepo, eventRepo)
	ticketService.SetCacheService(r.cacheService)
	ticketController := tickets.NewController(ticketService)
	ticketRouter := tickets.NewRouter(ticketController, r.config)

	ticketRouter.SetupRoutes(rg)
}

// setupOrderRoutes configures order routes
func (r *Router) setupOrderRoutes(rg *gin.RouterGroup) {
	orderRepo := orders.NewRepository(r.db.GetPostgreSQL())
	orderService := orders.NewService(orderRepo)
	orderService.SetCacheService(r.cacheService)
	orderController := orders.NewController(orderService)
	orderRouter := orders.NewRouter(orderController, r.config)

	// Keep a handle for the Kafka ingest consumer.
	r.orderService = orderService

	orderRouter.SetupRoutes(rg)
}

// setupAnalyticsRoutes configures analytics routes
func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	analyticsRepo := analytics.NewRepository(r.db.GetPostgreSQL())
	analyticsService := analytics.NewService(analyticsRepo, r.config)
	analyticsService.SetCacheService(r.cacheService)
	analyticsController := analytics.NewController(analyticsService)
	analyticsRouter := analytics.NewRouter(analyticsController, r.config)

	analyticsRouter.SetupRoutes(rg)
}
