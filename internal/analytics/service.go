package analytics

import (
	"context"
	"fmt"
	"time"

	"ticketly/internal/shared/config"
	"ticketly/internal/shared/constants"
	"ticketly/pkg/cache"
	"ticketly/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	GetDashboard(ctx context.Context, organizerID *uuid.UUID) (*SalesDashboard, error)
	GetSalesChart(ctx context.Context, organizerID *uuid.UUID, metric string, windowDays int) (*SalesChart, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	location     *time.Location
	cacheTTL     time.Duration
	log          *logger.Logger
}

func NewService(repo Repository, cfg *config.Config) Service {
	location, err := time.LoadLocation(cfg.Analytics.Timezone)
	if err != nil {
		logger.GetDefault().Warn("unknown analytics timezone, falling back to UTC",
			"timezone", cfg.Analytics.Timezone)
		location = time.UTC
	}

	return &service{
		repo:     repo,
		location: location,
		cacheTTL: cfg.Analytics.CacheTTL,
		log:      logger.GetDefault(),
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) GetDashboard(ctx context.Context, organizerID *uuid.UUID) (*SalesDashboard, error) {
	cacheKey := constants.CACHE_KEY_ANALYTICS_DASHBOARD_ADMIN
	if organizerID != nil {
		cacheKey = constants.BuildOrganizerDashboardKey(organizerID.String())
	}

	var cached SalesDashboard
	if s.getCache(ctx, cacheKey, &cached) == nil {
		return &cached, nil
	}

	sales, err := s.repo.ListPaidSales(ctx, organizerID)
	if err != nil {
		return nil, err
	}

	// One instant for all three summaries, so the cards agree on what
	// "the last 7 days" means.
	now := time.Now()

	dashboard := &SalesDashboard{
		Total:       SummarizePeriod(sales, PeriodTotal, now, s.location),
		Monthly:     SummarizePeriod(sales, PeriodMonthly, now, s.location),
		Weekly:      SummarizePeriod(sales, PeriodWeekly, now, s.location),
		GeneratedAt: now,
	}

	s.setCache(ctx, cacheKey, dashboard)
	return dashboard, nil
}

func (s *service) GetSalesChart(ctx context.Context, organizerID *uuid.UUID, metric string, windowDays int) (*SalesChart, error) {
	cacheKey := buildChartCacheKey(organizerID, metric, windowDays)

	var cached SalesChart
	if s.getCache(ctx, cacheKey, &cached) == nil {
		return &cached, nil
	}

	sales, err := s.repo.ListPaidSales(ctx, organizerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	var buckets []DayBucket
	switch metric {
	case MetricRevenue:
		buckets = BucketRevenueByDay(sales, s.location)
	default:
		buckets = BucketTicketsByDay(sales, s.location)
	}
	buckets = TrailingDays(buckets, now, windowDays, s.location)

	chart := &SalesChart{
		Metric:      metric,
		WindowDays:  windowDays,
		Timezone:    s.location.String(),
		Buckets:     buckets,
		GeneratedAt: now,
	}

	s.setCache(ctx, cacheKey, chart)
	return chart, nil
}

func buildChartCacheKey(organizerID *uuid.UUID, metric string, windowDays int) string {
	if organizerID != nil {
		return fmt.Sprintf("%s%s:metric:%s:window:%d",
			constants.CACHE_KEY_ANALYTICS_SALES_ORG, organizerID.String(), metric, windowDays)
	}
	return fmt.Sprintf("%s:metric:%s:window:%d",
		constants.CACHE_KEY_ANALYTICS_SALES_ADMIN, metric, windowDays)
}

func (s *service) setCache(ctx context.Context, key string, value interface{}) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Set(ctx, key, value, s.cacheTTL)
}

func (s *service) getCache(ctx context.Context, key string, dest interface{}) error {
	if s.cacheService == nil {
		return cache.ErrCacheMiss
	}
	return s.cacheService.Get(ctx, key, dest)
}
