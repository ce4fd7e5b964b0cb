package tickets

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

func (c *Controller) CreateTicketType(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	actorID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CreateTicketTypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	ticketType, err := c.service.CreateTicketType(ctx.Request.Context(), eventID, actorID, isAdmin(ctx), req)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to create ticket type")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Ticket type created successfully", ticketType, nil)
}

func (c *Controller) ListTicketTypes(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	ticketTypes, err := c.service.GetTicketTypesByEvent(ctx.Request.Context(), eventID)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to list ticket types")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket types retrieved successfully", ticketTypes, nil)
}

func (c *Controller) UpdateTicketType(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("ticketTypeId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid ticket type ID", nil, nil)
		return
	}

	actorID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req UpdateTicketTypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	ticketType, err := c.service.UpdateTicketType(ctx.Request.Context(), id, actorID, isAdmin(ctx), req)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to update ticket type")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket type updated successfully", ticketType, nil)
}

func (c *Controller) DeleteTicketType(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("ticketTypeId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid ticket type ID", nil, nil)
		return
	}

	actorID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	if err := c.service.DeleteTicketType(ctx.Request.Context(), id, actorID, isAdmin(ctx)); err != nil {
		c.respondServiceError(ctx, err, "Failed to delete ticket type")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket type deleted successfully", nil, nil)
}

func (c *Controller) respondServiceError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrEventNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Event not found", nil, nil)
	case errors.Is(err, ErrTicketTypeNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Ticket type not found", nil, nil)
	case errors.Is(err, ErrNotEventOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "You do not have access to this event", nil, nil)
	case errors.Is(err, ErrDuplicateName):
		response.RespondJSON(ctx, "error", http.StatusConflict, "A ticket type with this name already exists for the event", nil, nil)
	case errors.Is(err, ErrQuotaBelowSold):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Quota cannot be lower than tickets already sold", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallback, nil, nil)
	}
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
