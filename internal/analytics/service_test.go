package analytics

import (
	"context"
	"testing"
	"time"

	"ticketly/internal/shared/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	sales       []Sale
	byOrganizer map[uuid.UUID][]Sale
}

func (f *fakeRepository) ListPaidSales(_ context.Context, organizerID *uuid.UUID) ([]Sale, error) {
	if organizerID == nil {
		return f.sales, nil
	}
	return f.byOrganizer[*organizerID], nil
}

func testConfig() *config.Config {
	return &config.Config{
		Analytics: config.AnalyticsConfig{
			Timezone: "America/Mexico_City",
			CacheTTL: 10 * time.Minute,
		},
	}
}

func TestGetDashboardSummaries(t *testing.T) {
	now := time.Now()
	buyer := uuid.New()
	repo := &fakeRepository{sales: []Sale{
		{OrderedAt: now.Add(-2 * 24 * time.Hour), TicketType: "General", Quantity: 2, TotalPrice: 100, UserID: buyer},
		{OrderedAt: now.Add(-3 * 24 * time.Hour), TicketType: "VIP", Quantity: 1, TotalPrice: 250, UserID: uuid.New()},
		{OrderedAt: now.Add(-20 * 24 * time.Hour), TicketType: "General", Quantity: 4, TotalPrice: 200, UserID: buyer},
		{OrderedAt: now.Add(-200 * 24 * time.Hour), TicketType: "General", Quantity: 1, TotalPrice: 50, UserID: uuid.New()},
	}}

	svc := NewService(repo, testConfig())

	dashboard, err := svc.GetDashboard(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 4, dashboard.Total.Count)
	assert.InDelta(t, 600, dashboard.Total.Amount, 1e-9)
	assert.Equal(t, 3, dashboard.Total.UniqueCustomers)
	assert.Nil(t, dashboard.Total.Change)

	assert.Equal(t, 3, dashboard.Monthly.Count)
	assert.InDelta(t, 550, dashboard.Monthly.Amount, 1e-9)

	assert.Equal(t, 2, dashboard.Weekly.Count)
	assert.InDelta(t, 350, dashboard.Weekly.Amount, 1e-9)
	require.NotNil(t, dashboard.Weekly.AverageOrder)
	assert.InDelta(t, 175, *dashboard.Weekly.AverageOrder, 1e-9)
	require.NotNil(t, dashboard.Weekly.Change)
}

func TestGetDashboardScopesToOrganizer(t *testing.T) {
	now := time.Now()
	organizer := uuid.New()
	repo := &fakeRepository{
		sales: []Sale{
			{OrderedAt: now.Add(-24 * time.Hour), Quantity: 10, TotalPrice: 1000, UserID: uuid.New()},
		},
		byOrganizer: map[uuid.UUID][]Sale{
			organizer: {
				{OrderedAt: now.Add(-24 * time.Hour), Quantity: 1, TotalPrice: 75, UserID: uuid.New()},
			},
		},
	}

	svc := NewService(repo, testConfig())

	dashboard, err := svc.GetDashboard(context.Background(), &organizer)
	require.NoError(t, err)

	assert.Equal(t, 1, dashboard.Total.Count)
	assert.InDelta(t, 75, dashboard.Total.Amount, 1e-9)
}

func TestGetSalesChartTicketsMetric(t *testing.T) {
	now := time.Now()
	repo := &fakeRepository{sales: []Sale{
		{OrderedAt: now.Add(-24 * time.Hour), TicketType: "General", Quantity: 2, TotalPrice: 100, UserID: uuid.New()},
		{OrderedAt: now.Add(-24 * time.Hour), TicketType: "", Quantity: 1, TotalPrice: 30, UserID: uuid.New()},
	}}

	svc := NewService(repo, testConfig())

	chart, err := svc.GetSalesChart(context.Background(), nil, MetricTickets, 7)
	require.NoError(t, err)

	assert.Equal(t, MetricTickets, chart.Metric)
	assert.Equal(t, 7, chart.WindowDays)
	assert.Equal(t, "America/Mexico_City", chart.Timezone)
	require.Len(t, chart.Buckets, 1)
	assert.InDelta(t, 2, chart.Buckets[0].Amounts["General"], 1e-9)
	assert.InDelta(t, 1, chart.Buckets[0].Amounts[TicketTypeFallback], 1e-9)
}

func TestGetSalesChartWindowExcludesOldSales(t *testing.T) {
	now := time.Now()
	repo := &fakeRepository{sales: []Sale{
		{OrderedAt: now.Add(-24 * time.Hour), TicketType: "General", Quantity: 2, TotalPrice: 100, UserID: uuid.New()},
		{OrderedAt: now.Add(-45 * 24 * time.Hour), TicketType: "General", Quantity: 5, TotalPrice: 500, UserID: uuid.New()},
	}}

	svc := NewService(repo, testConfig())

	chart, err := svc.GetSalesChart(context.Background(), nil, MetricRevenue, 30)
	require.NoError(t, err)

	require.Len(t, chart.Buckets, 1)
	assert.InDelta(t, 100, chart.Buckets[0].Amounts["General"], 1e-9)
}

func TestServiceFallsBackToUTCForUnknownTimezone(t *testing.T) {
	repo := &fakeRepository{}
	cfg := testConfig()
	cfg.Analytics.Timezone = "Not/AZone"

	svc := NewService(repo, cfg)

	chart, err := svc.GetSalesChart(context.Background(), nil, MetricTickets, 7)
	require.NoError(t, err)
	assert.Equal(t, "UTC", chart.Timezone)
}
