package events

import (
	"time"

	"ticketly/internal/schedule"

	"github.com/google/uuid"
)

type Event struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string     `json:"title" gorm:"not null;size:255"`
	Description string     `json:"description" gorm:"type:text"`
	Category    string     `json:"category" gorm:"size:100"`
	Address     string     `json:"address" gorm:"not null;size:500"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	Capacity    int        `json:"capacity" gorm:"default:0;check:capacity >= 0"`
	BannerURL   string     `json:"banner_url" gorm:"size:500"`
	VideoURL    string     `json:"video_url" gorm:"size:500"`
	Status      Status     `json:"status" gorm:"type:varchar(20);default:'draft'"`

	OrganizerID uuid.UUID `json:"organizer_id" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

type EventResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Address     string     `json:"address"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	Capacity    int        `json:"capacity"`
	BannerURL   string     `json:"banner_url"`
	VideoURL    string     `json:"video_url"`
	Status      Status     `json:"status"`
	OrganizerID string     `json:"organizer_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CreateEventRequest struct {
	Title       string     `json:"title" binding:"required,min=3,max=255"`
	Description string     `json:"description" binding:"max=5000"`
	Category    string     `json:"category" binding:"max=100"`
	Address     string     `json:"address" binding:"required,min=3,max=500"`
	Latitude    *float64   `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude   *float64   `json:"longitude" binding:"omitempty,min=-180,max=180"`
	StartsAt    *time.Time `json:"starts_at" binding:"required"`
	EndsAt      *time.Time `json:"ends_at" binding:"required"`
	Capacity    int        `json:"capacity" binding:"omitempty,min=0,max=1000000"`
	BannerURL   string     `json:"banner_url" binding:"omitempty,url"`
	VideoURL    string     `json:"video_url" binding:"omitempty,url"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=3,max=255"`
	Description *string    `json:"description" binding:"omitempty,max=5000"`
	Category    *string    `json:"category" binding:"omitempty,max=100"`
	Address     *string    `json:"address" binding:"omitempty,min=3,max=500"`
	Latitude    *float64   `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude   *float64   `json:"longitude" binding:"omitempty,min=-180,max=180"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	Capacity    *int       `json:"capacity" binding:"omitempty,min=0,max=1000000"`
	BannerURL   *string    `json:"banner_url" binding:"omitempty,url"`
	VideoURL    *string    `json:"video_url" binding:"omitempty,url"`
	Status      *string    `json:"status" binding:"omitempty,oneof=draft published cancelled finished"`
}

type EventListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	Category string `form:"category"`
	Status   string `form:"status" binding:"omitempty,oneof=draft published cancelled finished"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

type PaginatedEvents struct {
	Events     []EventResponse `json:"events"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

func (e *Event) ToResponse() EventResponse {
	return EventResponse{
		ID:          e.ID.String(),
		Title:       e.Title,
		Description: e.Description,
		Category:    e.Category,
		Address:     e.Address,
		Latitude:    e.Latitude,
		Longitude:   e.Longitude,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		Capacity:    e.Capacity,
		BannerURL:   e.BannerURL,
		VideoURL:    e.VideoURL,
		Status:      e.Status,
		OrganizerID: e.OrganizerID.String(),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (e *Event) toSlot() schedule.Slot {
	return schedule.Slot{
		ID:       e.ID,
		Address:  e.Address,
		StartsAt: e.StartsAt,
		EndsAt:   e.EndsAt,
	}
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}
