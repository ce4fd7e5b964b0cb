package orders

import (
	"ticketly/internal/shared/config"
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles order routes
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

// SetupRoutes registers all order routes
func (orderRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.Use(middleware.JWTAuthWithConfig(orderRouter.config))
	orders.Use(middleware.RequireRoles("ADMIN", "ORGANIZER"))
	{
		orders.GET("", orderRouter.controller.ListOrders)
		orders.GET("/:id", orderRouter.controller.GetOrder)
	}
}
