package orders

import (
	"errors"
	"net/http"

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

// ListOrders returns every order for admins and only orders belonging
// to the caller's events for organizers.
func (c *Controller) ListOrders(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var query OrderListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	var orders *PaginatedOrders
	var err error
	if isAdmin(ctx) {
		orders, err = c.service.GetAllOrders(ctx.Request.Context(), query)
	} else {
		orders, err = c.service.GetOrganizerOrders(ctx.Request.Context(), actorID, query)
	}
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list orders", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Orders retrieved successfully", orders, nil)
}

func (c *Controller) GetOrder(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid order ID", nil, nil)
		return
	}

	order, err := c.service.GetOrderByID(ctx.Request.Context(), id, actorID, isAdmin(ctx))
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Order not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get order", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Order retrieved successfully", order, nil)
}

func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw.(string))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func isAdmin(ctx *gin.Context) bool {
	role, exists := ctx.Get("user_role")
	return exists && role == string(users.RoleAdmin)
}
