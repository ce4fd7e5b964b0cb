package analytics

import (
	"ticketly/internal/shared/config"
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles analytics routes
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

// SetupRoutes registers all analytics routes
func (analyticsRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	analytics := rg.Group("/analytics")
	analytics.Use(middleware.JWTAuthWithConfig(analyticsRouter.config))
	analytics.Use(middleware.RequireRoles("ADMIN", "ORGANIZER"))
	{
		analytics.GET("/dashboard", analyticsRouter.controller.GetDashboard)
		analytics.GET("/sales", analyticsRouter.controller.GetSalesChart)
	}
}
