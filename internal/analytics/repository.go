package analytics

import (
	"context"

	"ticketly/internal/orders"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// ListPaidSales returns every paid order in aggregation shape. When
	// organizerID is set the result is restricted to orders on that
	// organizer's events.
	ListPaidSales(ctx context.Context, organizerID *uuid.UUID) ([]Sale, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListPaidSales(ctx context.Context, organizerID *uuid.UUID) ([]Sale, error) {
	db := r.db.WithContext(ctx).Model(&orders.Order{}).
		Select("orders.ordered_at, orders.ticket_type, orders.quantity, orders.total_price, orders.user_id").
		Where("orders.payment_status = ?", orders.PaymentPaid)

	if organizerID != nil {
		db = db.Joins("JOIN events ON events.id = orders.event_id").
			Where("events.organizer_id = ?", *organizerID)
	}

	var sales []Sale
	if err := db.Scan(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}
