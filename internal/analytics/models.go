package analytics

import "time"

// SalesDashboard bundles the summary cards shown on the admin and
// organizer dashboards. All three summaries are computed from the same
// captured instant so their windows line up.
type SalesDashboard struct {
	Total       PeriodSummary `json:"total"`
	Monthly     PeriodSummary `json:"monthly"`
	Weekly      PeriodSummary `json:"weekly"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// SalesChart is the day-bucketed series behind the sales charts.
type SalesChart struct {
	Metric      string      `json:"metric"`
	WindowDays  int         `json:"window_days"`
	Timezone    string      `json:"timezone"`
	Buckets     []DayBucket `json:"buckets"`
	GeneratedAt time.Time   `json:"generated_at"`
}

const (
	MetricTickets = "tickets"
	MetricRevenue = "revenue"
)

func IsValidMetric(metric string) bool {
	return metric == MetricTickets || metric == MetricRevenue
}

func IsValidWindow(days int) bool {
	return days == 7 || days == 30 || days == 90
}
