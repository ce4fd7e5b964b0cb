package events

import (
	"ticketly/internal/shared/config"
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles event-related routes
type Router struct {
	controller *Controller
	config     *config.Config
}

func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all event routes
func (eventRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	{
		// Public routes
		events.GET("", eventRouter.controller.ListEvents)
		events.GET("/:id", eventRouter.controller.GetEvent)

		// Protected routes (organizers and admins)
		protected := events.Group("")
		protected.Use(middleware.JWTAuthWithConfig(eventRouter.config))
		protected.Use(middleware.RequireRoles("ADMIN", "ORGANIZER"))
		{
			protected.POST("", eventRouter.controller.CreateEvent)
			protected.GET("/mine", eventRouter.controller.ListMyEvents)
			protected.PUT("/:id", eventRouter.controller.UpdateEvent)
			protected.DELETE("/:id", eventRouter.controller.DeleteEvent)
		}
	}
}
