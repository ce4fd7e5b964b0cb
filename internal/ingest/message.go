package ingest

import (
	"fmt"
	"time"

	"ticketly/internal/orders"

	"github.com/google/uuid"
)

// OrderMessage is the wire shape of an order event published by the
// payments pipeline on the order-events topic.
type OrderMessage struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	UserName      string    `json:"user_name"`
	EventID       string    `json:"event_id"`
	TicketTypeID  string    `json:"ticket_type_id"`
	TicketType    string    `json:"ticket_type"`
	Quantity      int       `json:"quantity"`
	TotalPrice    float64   `json:"total_price"`
	PaymentStatus string    `json:"payment_status"`
	OrderedAt     time.Time `json:"ordered_at"`
}

// ToOrder validates the message and converts it to the storage model.
func (m *OrderMessage) ToOrder() (*orders.Order, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid order id %q: %w", m.ID, err)
	}

	userID, err := uuid.Parse(m.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", m.UserID, err)
	}

	eventID, err := uuid.Parse(m.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event id %q: %w", m.EventID, err)
	}

	var ticketTypeID *uuid.UUID
	if m.TicketTypeID != "" {
		parsed, err := uuid.Parse(m.TicketTypeID)
		if err != nil {
			return nil, fmt.Errorf("invalid ticket type id %q: %w", m.TicketTypeID, err)
		}
		ticketTypeID = &parsed
	}

	if m.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", m.Quantity)
	}

	if m.TotalPrice < 0 {
		return nil, fmt.Errorf("total price must not be negative, got %f", m.TotalPrice)
	}

	if !orders.IsValidPaymentStatus(m.PaymentStatus) {
		return nil, fmt.Errorf("unknown payment status %q", m.PaymentStatus)
	}

	orderedAt := m.OrderedAt
	if orderedAt.IsZero() {
		orderedAt = time.Now()
	}

	return &orders.Order{
		ID:            id,
		UserID:        userID,
		UserName:      m.UserName,
		EventID:       eventID,
		TicketTypeID:  ticketTypeID,
		TicketType:    m.TicketType,
		Quantity:      m.Quantity,
		TotalPrice:    m.TotalPrice,
		PaymentStatus: orders.PaymentStatus(m.PaymentStatus),
		OrderedAt:     orderedAt,
	}, nil
}
