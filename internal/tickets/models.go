package tickets

import (
	"time"

	"github.com/google/uuid"
)

type TicketType struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	EventID uuid.UUID `json:"event_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_ticket_types_event_name,priority:1"`
	Name    string    `json:"name" gorm:"not null;size:100;uniqueIndex:idx_ticket_types_event_name,priority:2"`
	Price   float64   `json:"price" gorm:"not null;check:price >= 0"`
	Quota   int       `json:"quota" gorm:"not null;check:quota >= 0"`
	Sold    int       `json:"sold" gorm:"default:0;check:sold >= 0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

type TicketTypeResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quota     int       `json:"quota"`
	Sold      int       `json:"sold"`
	Available int       `json:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateTicketTypeRequest struct {
	Name  string  `json:"name" binding:"required,min=1,max=100"`
	Price float64 `json:"price" binding:"min=0"`
	Quota int     `json:"quota" binding:"required,min=1,max=1000000"`
}

type UpdateTicketTypeRequest struct {
	Name  *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Price *float64 `json:"price" binding:"omitempty,min=0"`
	Quota *int     `json:"quota" binding:"omitempty,min=1,max=1000000"`
}

func (t *TicketType) ToResponse() TicketTypeResponse {
	available := t.Quota - t.Sold
	if available < 0 {
		available = 0
	}

	return TicketTypeResponse{
		ID:        t.ID.String(),
		EventID:   t.EventID.String(),
		Name:      t.Name,
		Price:     t.Price,
		Quota:     t.Quota,
		Sold:      t.Sold,
		Available: available,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// TableName specifies the table name for GORM
func (TicketType) TableName() string {
	return "ticket_types"
}
