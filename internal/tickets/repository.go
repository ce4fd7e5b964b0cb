package tickets

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, ticketType *TicketType) error
	GetByID(ctx context.Context, id uuid.UUID) (*TicketType, error)
	GetByEvent(ctx context.Context, eventID uuid.UUID) ([]TicketType, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*TicketType, error)
	Delete(ctx context.Context, id uuid.UUID) error
	NameExists(ctx context.Context, eventID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, ticketType *TicketType) error {
	return r.db.WithContext(ctx).Create(ticketType).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*TicketType, error) {
	var ticketType TicketType
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ticketType).Error
	if err != nil {
		return nil, err
	}
	return &ticketType, nil
}

func (r *repository) GetByEvent(ctx context.Context, eventID uuid.UUID) ([]TicketType, error) {
	var ticketTypes []TicketType
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("price ASC").
		Find(&ticketTypes).Error
	return ticketTypes, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*TicketType, error) {
	var ticketType TicketType

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ticketType).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&ticketType).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ticketType).Error; err != nil {
		return nil, err
	}

	return &ticketType, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&TicketType{}).Error
}

func (r *repository) NameExists(ctx context.Context, eventID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	db := r.db.WithContext(ctx).Model(&TicketType{}).
		Where("event_id = ? AND LOWER(name) = ?", eventID, strings.ToLower(name))

	if excludeID != nil {
		db = db.Where("id != ?", *excludeID)
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
