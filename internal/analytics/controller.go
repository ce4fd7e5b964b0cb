package analytics

import (
	"net/http"
	"strconv"

	"ticketly/internal/shared/utils/response"
	"ticketly/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetDashboard serves the summary cards. Admins see platform-wide
// figures, organizers only their own events' sales.
func (c *Controller) GetDashboard(ctx *gin.Context) {
	organizerID, ok := scopeFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	dashboard, err := c.service.GetDashboard(ctx.Request.Context(), organizerID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to build dashboard", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Dashboard retrieved successfully", dashboard, nil)
}

// GetSalesChart serves the day-bucketed chart series. Supported query
// parameters: metric=tickets|revenue, window=7|30|90.
func (c *Controller) GetSalesChart(ctx *gin.Context) {
	organizerID, ok := scopeFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	metric := ctx.DefaultQuery("metric", MetricTickets)
	if !IsValidMetric(metric) {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Metric must be one of: tickets, revenue", nil, nil)
		return
	}

	windowDays, err := strconv.Atoi(ctx.DefaultQuery("window", "30"))
	if err != nil || !IsValidWindow(windowDays) {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Window must be one of: 7, 30, 90", nil, nil)
		return
	}

	chart, err := c.service.GetSalesChart(ctx.Request.Context(), organizerID, metric, windowDays)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to build sales chart", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Sales chart retrieved successfully", chart, nil)
}

// scopeFromContext maps the caller to an aggregation scope: nil for
// admins (everything), the caller's own ID for organizers.
func scopeFromContext(ctx *gin.Context) (*uuid.UUID, bool) {
	role, exists := ctx.Get("user_role")
	if !exists {
		return nil, false
	}

	if role == string(users.RoleAdmin) {
		return nil, true
	}

	raw, exists := ctx.Get("user_id")
	if !exists {
		return nil, false
	}

	id, err := uuid.Parse(raw.(string))
	if err != nil {
		return nil, false
	}
	return &id, true
}
