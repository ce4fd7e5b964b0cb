package orders

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"ticketly/internal/shared/constants"
	"ticketly/pkg/cache"
	"ticketly/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

type Service interface {
	SetCacheService(cacheService cache.Service)
	GetAllOrders(ctx context.Context, query OrderListQuery) (*PaginatedOrders, error)
	GetOrganizerOrders(ctx context.Context, organizerID uuid.UUID, query OrderListQuery) (*PaginatedOrders, error)
	GetOrderByID(ctx context.Context, id uuid.UUID, actorID uuid.UUID, isAdmin bool) (*OrderResponse, error)
	RecordOrder(ctx context.Context, order *Order) error
}

type service struct {
	repo         Repository
	cacheService cache.Service
	log          *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) GetAllOrders(ctx context.Context, query OrderListQuery) (*PaginatedOrders, error) {
	cacheKey := buildListCacheKey("admin", query)

	var cached PaginatedOrders
	if s.getCache(ctx, cacheKey, &cached) == nil {
		return &cached, nil
	}

	orders, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, err
	}

	result := paginate(orders, totalCount, query)
	s.setCache(ctx, cacheKey, result)
	return result, nil
}

func (s *service) GetOrganizerOrders(ctx context.Context, organizerID uuid.UUID, query OrderListQuery) (*PaginatedOrders, error) {
	cacheKey := buildListCacheKey(organizerID.String(), query)

	var cached PaginatedOrders
	if s.getCache(ctx, cacheKey, &cached) == nil {
		return &cached, nil
	}

	orders, totalCount, err := s.repo.GetByOrganizer(ctx, organizerID, query)
	if err != nil {
		return nil, err
	}

	result := paginate(orders, totalCount, query)
	s.setCache(ctx, cacheKey, result)
	return result, nil
}

// GetOrderByID applies the same visibility rule as the listings: admins
// can fetch any order, organizers only orders placed on their events.
func (s *service) GetOrderByID(ctx context.Context, id uuid.UUID, actorID uuid.UUID, isAdmin bool) (*OrderResponse, error) {
	var order *Order
	var err error
	if isAdmin {
		order, err = s.repo.GetByID(ctx, id)
	} else {
		order, err = s.repo.GetByIDForOrganizer(ctx, id, actorID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	response := order.ToResponse()
	return &response, nil
}

// RecordOrder persists an order coming from the payments pipeline.
// Idempotent on the order ID.
func (s *service) RecordOrder(ctx context.Context, order *Order) error {
	if order.OrderedAt.IsZero() {
		order.OrderedAt = time.Now()
	}

	if err := s.repo.Upsert(ctx, order); err != nil {
		return err
	}

	s.log.LogOrderIngested(ctx, order.ID.String(), order.EventID.String(), string(order.PaymentStatus))
	s.invalidateCache(ctx)
	return nil
}

func paginate(orders []Order, totalCount int64, query OrderListQuery) *PaginatedOrders {
	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = orders[i].ToResponse()
	}

	return &PaginatedOrders{
		Orders:     responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}
}

func buildListCacheKey(scope string, query OrderListQuery) string {
	return fmt.Sprintf("%s:scope:%s:page:%d:limit:%d:event:%s:status:%s:from:%s:to:%s",
		constants.CACHE_KEY_ORDERS_LIST, scope,
		query.Page, query.Limit, query.EventID, query.PaymentStatus, query.DateFrom, query.DateTo)
}

func (s *service) setCache(ctx context.Context, key string, value interface{}) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Set(ctx, key, value, constants.TTL_ORDERS_LIST)
}

func (s *service) getCache(ctx context.Context, key string, dest interface{}) error {
	if s.cacheService == nil {
		return cache.ErrCacheMiss
	}
	return s.cacheService.Get(ctx, key, dest)
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_ORDERS)
	_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_ANALYTICS)
}
