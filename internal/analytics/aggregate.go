package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Period selects the aggregation window for sales summaries.
type Period string

const (
	PeriodTotal   Period = "total"
	PeriodMonthly Period = "monthly"
	PeriodWeekly  Period = "weekly"
)

// TicketTypeFallback labels sales whose ticket type is missing or unknown.
const TicketTypeFallback = "Sin tipo"

// windowDays returns the trailing-window length in days, 0 for unbounded.
func (p Period) windowDays() int {
	switch p {
	case PeriodWeekly:
		return 7
	case PeriodMonthly:
		return 30
	default:
		return 0
	}
}

// Sale is one paid order as seen by the aggregator. The repository layer is
// responsible for filtering to paid orders and to the caller's scope before
// anything reaches these functions.
type Sale struct {
	OrderedAt  time.Time
	TicketType string
	Quantity   int
	TotalPrice float64
	UserID     uuid.UUID
}

// DayBucket is one calendar day of chart data: per-ticket-type sums keyed by
// type label. Date is the day in the reference time zone, YYYY-MM-DD.
type DayBucket struct {
	Date    string             `json:"date"`
	Amounts map[string]float64 `json:"amounts"`
}

// PeriodSummary holds the scalar metrics for one period window. AverageOrder
// is nil when the window has no orders; Change is nil for the total period,
// which has no preceding window to compare against.
type PeriodSummary struct {
	Period          Period   `json:"period"`
	Amount          float64  `json:"amount"`
	Count           int      `json:"count"`
	AverageOrder    *float64 `json:"average_order,omitempty"`
	Change          *float64 `json:"change,omitempty"`
	UniqueCustomers int      `json:"unique_customers"`
}

// dayKey resolves the calendar day of an instant in the reference zone.
// Bucketing must not depend on the server's local zone.
func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

func bucketByDay(sales []Sale, loc *time.Location, amount func(Sale) float64) []DayBucket {
	byDay := make(map[string]map[string]float64)

	for _, sale := range sales {
		day := dayKey(sale.OrderedAt, loc)
		ticketType := sale.TicketType
		if ticketType == "" {
			ticketType = TicketTypeFallback
		}

		if byDay[day] == nil {
			byDay[day] = make(map[string]float64)
		}
		byDay[day][ticketType] += amount(sale)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	buckets := make([]DayBucket, 0, len(days))
	for _, day := range days {
		buckets = append(buckets, DayBucket{Date: day, Amounts: byDay[day]})
	}
	return buckets
}

// BucketTicketsByDay groups sales into ascending day buckets, summing ticket
// quantities per type. Used by the "entries sold" chart.
func BucketTicketsByDay(sales []Sale, loc *time.Location) []DayBucket {
	return bucketByDay(sales, loc, func(s Sale) float64 { return float64(s.Quantity) })
}

// BucketRevenueByDay groups sales into ascending day buckets, summing order
// totals per type. Used by the revenue chart.
func BucketRevenueByDay(sales []Sale, loc *time.Location) []DayBucket {
	return bucketByDay(sales, loc, func(s Sale) float64 { return s.TotalPrice })
}

// TrailingDays keeps only the buckets within the trailing window of n days
// ending today in the reference zone. Day keys sort lexicographically in
// chronological order, so a string comparison against the cutoff suffices.
func TrailingDays(buckets []DayBucket, now time.Time, n int, loc *time.Location) []DayBucket {
	if n <= 0 {
		return buckets
	}

	cutoff := dayKey(now.AddDate(0, 0, -(n-1)), loc)
	trimmed := make([]DayBucket, 0, len(buckets))
	for _, bucket := range buckets {
		if bucket.Date >= cutoff {
			trimmed = append(trimmed, bucket)
		}
	}
	return trimmed
}

// ChangePercent computes the period-over-period change percentage. A previous
// total of zero is capped at +100 when the current total is positive instead
// of producing Inf, and both-zero yields 0 rather than NaN.
func ChangePercent(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// SummarizePeriod computes revenue, order count, average order value, unique
// customer count and period-over-period change for one period window.
//
// The current window covers (now-N, now] and the previous window the N days
// immediately before it; the total period is unbounded and carries no change
// figure. "now" is captured once by the caller so every widget on a dashboard
// sees the same windows.
func SummarizePeriod(sales []Sale, period Period, now time.Time, loc *time.Location) PeriodSummary {
	_ = loc // windows are instant-based; loc only matters for day bucketing

	days := period.windowDays()
	currentStart := now.AddDate(0, 0, -days)
	previousStart := now.AddDate(0, 0, -2*days)

	summary := PeriodSummary{Period: period}
	customers := make(map[uuid.UUID]struct{})
	var previousAmount float64

	for _, sale := range sales {
		if days == 0 {
			summary.Amount += sale.TotalPrice
			summary.Count++
			customers[sale.UserID] = struct{}{}
			continue
		}

		switch {
		case sale.OrderedAt.After(currentStart) && !sale.OrderedAt.After(now):
			summary.Amount += sale.TotalPrice
			summary.Count++
			customers[sale.UserID] = struct{}{}
		case sale.OrderedAt.After(previousStart) && !sale.OrderedAt.After(currentStart):
			previousAmount += sale.TotalPrice
		}
	}

	summary.UniqueCustomers = len(customers)

	if summary.Count > 0 {
		avg := summary.Amount / float64(summary.Count)
		summary.AverageOrder = &avg
	}

	if days > 0 {
		change := ChangePercent(summary.Amount, previousAmount)
		summary.Change = &change
	}

	return summary
}
