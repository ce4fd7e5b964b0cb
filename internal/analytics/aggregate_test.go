package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustZone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func at(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBucketTicketsByDay_WorkedScenario(t *testing.T) {
	loc := time.UTC
	userA, userB := uuid.New(), uuid.New()

	sales := []Sale{
		{OrderedAt: at("2024-01-10T09:00:00Z"), TicketType: "General", Quantity: 2, TotalPrice: 30, UserID: userA},
		{OrderedAt: at("2024-01-10T12:00:00Z"), TicketType: "VIP", Quantity: 1, TotalPrice: 50, UserID: userB},
		{OrderedAt: at("2024-01-10T18:00:00Z"), TicketType: "General", Quantity: 1, TotalPrice: 20, UserID: userA},
	}

	buckets := BucketTicketsByDay(sales, loc)
	require.Len(t, buckets, 1)
	assert.Equal(t, "2024-01-10", buckets[0].Date)
	assert.Equal(t, float64(3), buckets[0].Amounts["General"])
	assert.Equal(t, float64(1), buckets[0].Amounts["VIP"])

	now := at("2024-01-12T00:00:00Z")
	summary := SummarizePeriod(sales, PeriodWeekly, now, loc)
	assert.Equal(t, float64(100), summary.Amount)
	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, 2, summary.UniqueCustomers)
	require.NotNil(t, summary.AverageOrder)
	assert.InDelta(t, 100.0/3.0, *summary.AverageOrder, 1e-9)
}

func TestBucketRevenueByDay_SortedAscending(t *testing.T) {
	sales := []Sale{
		{OrderedAt: at("2024-01-12T10:00:00Z"), TicketType: "General", Quantity: 1, TotalPrice: 15},
		{OrderedAt: at("2024-01-10T10:00:00Z"), TicketType: "General", Quantity: 1, TotalPrice: 10},
		{OrderedAt: at("2024-01-11T10:00:00Z"), TicketType: "VIP", Quantity: 1, TotalPrice: 50},
	}

	buckets := BucketRevenueByDay(sales, time.UTC)
	require.Len(t, buckets, 3)
	assert.Equal(t, "2024-01-10", buckets[0].Date)
	assert.Equal(t, "2024-01-11", buckets[1].Date)
	assert.Equal(t, "2024-01-12", buckets[2].Date)
	assert.Equal(t, float64(50), buckets[1].Amounts["VIP"])
}

func TestBucketByDay_Idempotent(t *testing.T) {
	sales := []Sale{
		{OrderedAt: at("2024-01-10T09:00:00Z"), TicketType: "General", Quantity: 2, TotalPrice: 30},
		{OrderedAt: at("2024-01-11T09:00:00Z"), TicketType: "VIP", Quantity: 1, TotalPrice: 50},
	}

	first := BucketTicketsByDay(sales, time.UTC)
	second := BucketTicketsByDay(sales, time.UTC)
	assert.Equal(t, first, second)
}

func TestBucketByDay_SumConservation(t *testing.T) {
	sales := []Sale{
		{OrderedAt: at("2024-01-10T08:00:00Z"), TicketType: "General", Quantity: 2, TotalPrice: 20},
		{OrderedAt: at("2024-01-10T12:00:00Z"), TicketType: "General", Quantity: 3, TotalPrice: 30},
		{OrderedAt: at("2024-01-10T20:00:00Z"), TicketType: "General", Quantity: 5, TotalPrice: 50},
		{OrderedAt: at("2024-01-11T08:00:00Z"), TicketType: "General", Quantity: 7, TotalPrice: 70},
	}

	var want float64
	for _, s := range sales {
		if dayKey(s.OrderedAt, time.UTC) == "2024-01-10" {
			want += float64(s.Quantity)
		}
	}

	buckets := BucketTicketsByDay(sales, time.UTC)
	var got float64
	for _, b := range buckets {
		if b.Date == "2024-01-10" {
			got = b.Amounts["General"]
		}
	}
	assert.Equal(t, want, got)
}

func TestBucketByDay_FallbackTicketType(t *testing.T) {
	sales := []Sale{
		{OrderedAt: at("2024-01-10T09:00:00Z"), Quantity: 4, TotalPrice: 40},
	}

	buckets := BucketTicketsByDay(sales, time.UTC)
	require.Len(t, buckets, 1)
	assert.Equal(t, float64(4), buckets[0].Amounts[TicketTypeFallback])
}

func TestBucketByDay_ReferenceZoneNotServerZone(t *testing.T) {
	loc := mustZone(t, "America/Mexico_City")

	// 03:00 UTC on the 11th is still the evening of the 10th in CDMX.
	sales := []Sale{
		{OrderedAt: at("2024-01-11T03:00:00Z"), TicketType: "General", Quantity: 1, TotalPrice: 10},
	}

	buckets := BucketTicketsByDay(sales, loc)
	require.Len(t, buckets, 1)
	assert.Equal(t, "2024-01-10", buckets[0].Date)

	buckets = BucketTicketsByDay(sales, time.UTC)
	require.Len(t, buckets, 1)
	assert.Equal(t, "2024-01-11", buckets[0].Date)
}

func TestTrailingDays(t *testing.T) {
	buckets := []DayBucket{
		{Date: "2024-01-01"},
		{Date: "2024-01-05"},
		{Date: "2024-01-08"},
		{Date: "2024-01-10"},
	}
	now := at("2024-01-10T15:00:00Z")

	trimmed := TrailingDays(buckets, now, 7, time.UTC)
	require.Len(t, trimmed, 3)
	assert.Equal(t, "2024-01-05", trimmed[0].Date)

	// Zero or negative window means no trimming.
	assert.Len(t, TrailingDays(buckets, now, 0, time.UTC), 4)
}

func TestChangePercent_EdgeRules(t *testing.T) {
	assert.Equal(t, float64(100), ChangePercent(250, 0))
	assert.Equal(t, float64(0), ChangePercent(0, 0))
	assert.Equal(t, float64(50), ChangePercent(150, 100))
	assert.Equal(t, float64(-25), ChangePercent(75, 100))
}

func TestSummarizePeriod_WeeklyWindows(t *testing.T) {
	now := at("2024-01-14T12:00:00Z")
	userA, userB := uuid.New(), uuid.New()

	sales := []Sale{
		// Current week.
		{OrderedAt: at("2024-01-10T10:00:00Z"), TicketType: "General", Quantity: 1, TotalPrice: 60, UserID: userA},
		{OrderedAt: at("2024-01-13T10:00:00Z"), TicketType: "VIP", Quantity: 1, TotalPrice: 90, UserID: userB},
		// Previous week.
		{OrderedAt: at("2024-01-03T10:00:00Z"), TicketType: "General", Quantity: 1, TotalPrice: 100, UserID: userA},
		// Older than both windows: ignored.
		{OrderedAt: at("2023-12-20T10:00:00Z"), TicketType: "General", Quantity: 1, TotalPrice: 999, UserID: userA},
	}

	summary := SummarizePeriod(sales, PeriodWeekly, now, time.UTC)
	assert.Equal(t, float64(150), summary.Amount)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 2, summary.UniqueCustomers)
	require.NotNil(t, summary.Change)
	assert.Equal(t, float64(50), *summary.Change)
}

func TestSummarizePeriod_TotalHasNoChange(t *testing.T) {
	sales := []Sale{
		{OrderedAt: at("2023-06-01T10:00:00Z"), TotalPrice: 40, Quantity: 1, UserID: uuid.New()},
		{OrderedAt: at("2024-01-01T10:00:00Z"), TotalPrice: 60, Quantity: 1, UserID: uuid.New()},
	}

	summary := SummarizePeriod(sales, PeriodTotal, at("2024-01-14T00:00:00Z"), time.UTC)
	assert.Equal(t, float64(100), summary.Amount)
	assert.Equal(t, 2, summary.Count)
	assert.Nil(t, summary.Change)
}

func TestSummarizePeriod_EmptyWindow(t *testing.T) {
	summary := SummarizePeriod(nil, PeriodWeekly, at("2024-01-14T00:00:00Z"), time.UTC)
	assert.Equal(t, float64(0), summary.Amount)
	assert.Equal(t, 0, summary.Count)
	assert.Nil(t, summary.AverageOrder)
	require.NotNil(t, summary.Change)
	assert.Equal(t, float64(0), *summary.Change)
}

func TestSummarizePeriod_GrowthFromZeroIsCapped(t *testing.T) {
	now := at("2024-01-14T12:00:00Z")
	sales := []Sale{
		{OrderedAt: at("2024-01-13T10:00:00Z"), TotalPrice: 75, Quantity: 1, UserID: uuid.New()},
	}

	summary := SummarizePeriod(sales, PeriodWeekly, now, time.UTC)
	require.NotNil(t, summary.Change)
	assert.Equal(t, float64(100), *summary.Change)
}
