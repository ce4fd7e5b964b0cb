package orders

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "paid"
	PaymentPending  PaymentStatus = "pending"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

func IsValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentPaid, PaymentPending, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

type Order struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	UserName     string     `json:"user_name" gorm:"size:255"`
	EventID      uuid.UUID  `json:"event_id" gorm:"type:uuid;not null;index"`
	TicketTypeID *uuid.UUID `json:"ticket_type_id" gorm:"type:uuid;index"`

	// Denormalized label kept at purchase time so reporting survives
	// later renames or deletions of the ticket type.
	TicketType string `json:"ticket_type" gorm:"size:100"`

	Quantity      int           `json:"quantity" gorm:"not null;check:quantity > 0"`
	TotalPrice    float64       `json:"total_price" gorm:"not null;check:total_price >= 0"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(20);not null;default:'pending';index"`
	OrderedAt     time.Time     `json:"ordered_at" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

type OrderResponse struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	UserName      string        `json:"user_name"`
	EventID       string        `json:"event_id"`
	TicketTypeID  *string       `json:"ticket_type_id"`
	TicketType    string        `json:"ticket_type"`
	Quantity      int           `json:"quantity"`
	TotalPrice    float64       `json:"total_price"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	OrderedAt     time.Time     `json:"ordered_at"`
	CreatedAt     time.Time     `json:"created_at"`
}

type OrderListQuery struct {
	Page          int    `form:"page" binding:"omitempty,min=1"`
	Limit         int    `form:"limit" binding:"omitempty,min=1,max=100"`
	EventID       string `form:"event_id" binding:"omitempty,uuid"`
	PaymentStatus string `form:"payment_status" binding:"omitempty,oneof=paid pending failed refunded"`
	DateFrom      string `form:"date_from"`
	DateTo        string `form:"date_to"`
}

type PaginatedOrders struct {
	Orders     []OrderResponse `json:"orders"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

func (o *Order) ToResponse() OrderResponse {
	var ticketTypeID *string
	if o.TicketTypeID != nil {
		id := o.TicketTypeID.String()
		ticketTypeID = &id
	}

	return OrderResponse{
		ID:            o.ID.String(),
		UserID:        o.UserID.String(),
		UserName:      o.UserName,
		EventID:       o.EventID.String(),
		TicketTypeID:  ticketTypeID,
		TicketType:    o.TicketType,
		Quantity:      o.Quantity,
		TotalPrice:    o.TotalPrice,
		PaymentStatus: o.PaymentStatus,
		OrderedAt:     o.OrderedAt,
		CreatedAt:     o.CreatedAt,
	}
}

// TableName specifies the table name for GORM
func (Order) TableName() string {
	return "orders"
}
