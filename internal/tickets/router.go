package tickets

import (
	"ticketly/internal/shared/config"
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles ticket-type routes
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

// SetupRoutes registers all ticket-type routes
func (ticketRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	eventScoped := rg.Group("/events/:id/ticket-types")
	{
		// Public listing
		eventScoped.GET("", ticketRouter.controller.ListTicketTypes)

		protected := eventScoped.Group("")
		protected.Use(middleware.JWTAuthWithConfig(ticketRouter.config))
		protected.Use(middleware.RequireRoles("ADMIN", "ORGANIZER"))
		{
			protected.POST("", ticketRouter.controller.CreateTicketType)
		}
	}

	ticketTypes := rg.Group("/ticket-types")
	ticketTypes.Use(middleware.JWTAuthWithConfig(ticketRouter.config))
	ticketTypes.Use(middleware.RequireRoles("ADMIN", "ORGANIZER"))
	{
		ticketTypes.PUT("/:ticketTypeId", ticketRouter.controller.UpdateTicketType)
		ticketTypes.DELETE("/:ticketTypeId", ticketRouter.controller.DeleteTicketType)
	}
}
