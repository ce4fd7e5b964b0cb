package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(ctx context.Context, order *Order) error
	Upsert(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	GetByIDForOrganizer(ctx context.Context, id uuid.UUID, organizerID uuid.UUID) (*Order, error)
	GetAll(ctx context.Context, query OrderListQuery) ([]Order, int64, error)
	GetByOrganizer(ctx context.Context, organizerID uuid.UUID, query OrderListQuery) ([]Order, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, order *Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// Upsert writes an order keyed by its upstream ID. Replaying the same
// order record is a no-op apart from refreshing mutable fields, which
// keeps at-least-once delivery from the broker safe.
func (r *repository) Upsert(ctx context.Context, order *Order) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_name", "ticket_type_id", "ticket_type",
			"quantity", "total_price", "payment_status", "ordered_at",
		}),
	}).Create(order).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	var order Order
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByIDForOrganizer fetches an order only if it belongs to one of the
// organizer's events. Orders outside that scope look like they do not
// exist.
func (r *repository) GetByIDForOrganizer(ctx context.Context, id uuid.UUID, organizerID uuid.UUID) (*Order, error) {
	var order Order
	err := r.db.WithContext(ctx).
		Joins("JOIN events ON events.id = orders.event_id").
		Where("orders.id = ? AND events.organizer_id = ?", id, organizerID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) GetAll(ctx context.Context, query OrderListQuery) ([]Order, int64, error) {
	return r.list(r.db.WithContext(ctx).Model(&Order{}), query)
}

func (r *repository) GetByOrganizer(ctx context.Context, organizerID uuid.UUID, query OrderListQuery) ([]Order, int64, error) {
	db := r.db.WithContext(ctx).Model(&Order{}).
		Joins("JOIN events ON events.id = orders.event_id").
		Where("events.organizer_id = ?", organizerID)
	return r.list(db, query)
}

func (r *repository) list(db *gorm.DB, query OrderListQuery) ([]Order, int64, error) {
	var orders []Order
	var totalCount int64

	if query.EventID != "" {
		db = db.Where("orders.event_id = ?", query.EventID)
	}

	if query.PaymentStatus != "" {
		db = db.Where("orders.payment_status = ?", query.PaymentStatus)
	}

	if query.DateFrom != "" {
		if dateFrom, err := time.Parse("2006-01-02", query.DateFrom); err == nil {
			db = db.Where("orders.ordered_at >= ?", dateFrom)
		}
	}

	if query.DateTo != "" {
		if dateTo, err := time.Parse("2006-01-02", query.DateTo); err == nil {
			dateTo = dateTo.Add(24 * time.Hour)
			db = db.Where("orders.ordered_at < ?", dateTo)
		}
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	offset := (query.Page - 1) * query.Limit

	err := db.Order("orders.ordered_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&orders).Error

	return orders, totalCount, err
}
