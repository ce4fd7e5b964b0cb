package constants

import "time"

// Redis cache keys and TTLs for the ticketly backend.
// Pattern: ticketly:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_SHORT       = 6 * time.Hour    // user profiles
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // event details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // event listings
	TTL_DYNAMIC_MEDIUM     = 10 * time.Minute // analytics, order listings
	TTL_DYNAMIC_SHORT      = 5 * time.Minute  // ticket-type availability
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "ticketly"
)

// ================== EVENTS MODULE ==================

const (
	CACHE_KEY_EVENTS_LIST  = CACHE_PREFIX + ":events:list"        // + :page:X:limit:Y:status:Z
	CACHE_KEY_EVENT_DETAIL = CACHE_PREFIX + ":events:detail:uuid:" // + event-id
)

const (
	TTL_EVENT_LIST   = TTL_SEMI_STATIC_SHORT
	TTL_EVENT_DETAIL = TTL_SEMI_STATIC_MEDIUM
)

// ================== ORDERS MODULE ==================

const (
	CACHE_KEY_ORDERS_LIST = CACHE_PREFIX + ":orders:list" // + :scope:X:page:Y
)

const (
	TTL_ORDERS_LIST = TTL_DYNAMIC_MEDIUM
)

// ================== ANALYTICS MODULE ==================

const (
	CACHE_KEY_ANALYTICS_DASHBOARD_ADMIN = CACHE_PREFIX + ":analytics:dashboard:admin"
	CACHE_KEY_ANALYTICS_DASHBOARD_ORG   = CACHE_PREFIX + ":analytics:dashboard:organizer:uuid:" // + organizer-id
	CACHE_KEY_ANALYTICS_SALES_ADMIN     = CACHE_PREFIX + ":analytics:sales:admin"               // + :metric:X:window:N
	CACHE_KEY_ANALYTICS_SALES_ORG       = CACHE_PREFIX + ":analytics:sales:organizer:uuid:"     // + organizer-id:metric:X:window:N
)

// ================== AUTH MODULE ==================

const (
	CACHE_KEY_USER_PROFILE = CACHE_PREFIX + ":auth:user:profile:uuid:" // + user-id
)

const (
	TTL_USER_PROFILE = TTL_STATIC_SHORT
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_EVENT_ALL = CACHE_PREFIX + ":events:*"
	PATTERN_INVALIDATE_ORDERS    = CACHE_PREFIX + ":orders:*"
	PATTERN_INVALIDATE_ANALYTICS = CACHE_PREFIX + ":analytics:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildEventDetailKey(eventID string) string {
	return CACHE_KEY_EVENT_DETAIL + eventID
}

func BuildOrganizerDashboardKey(organizerID string) string {
	return CACHE_KEY_ANALYTICS_DASHBOARD_ORG + organizerID
}
