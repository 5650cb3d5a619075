package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EntityType selects whose side of the marketplace a metrics query covers.
type EntityType string

// Entity types for analytics queries.
const (
	EntityBrand   EntityType = "brand"
	EntityCreator EntityType = "creator"
)

// DefaultTimeRange is used when a metrics query omits the range.
const DefaultTimeRange = 30 * 24 * time.Hour

// ParseTimeRange parses a compact range such as "7d", "30d" or "90d".
// An empty string yields DefaultTimeRange.
func ParseTimeRange(s string) (time.Duration, error) {
	if s == "" {
		return DefaultTimeRange, nil
	}
	if !strings.HasSuffix(s, "d") {
		return 0, fmt.Errorf("%w: time range %q", ErrInvalidInput, s)
	}
	days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
	if err != nil || days <= 0 {
		return 0, fmt.Errorf("%w: time range %q", ErrInvalidInput, s)
	}
	return time.Duration(days) * 24 * time.Hour, nil
}

// Metrics is a read-only projection of activity counts within one window.
// Missing data segments count as zero.
type Metrics struct {
	MatchAppearances int
	Interests        int
	ChatWindows      int
	Messages         int
	DealsFinalized   int
}

// Trends holds percentage changes of the current window against the
// immediately preceding window of equal length, formatted like "+15%".
type Trends struct {
	InterestsChange string
	ChatsChange     string
	DealsChange     string
}

// TrendDelta formats the relative change between two counts. A zero
// previous count with current activity reports "+100%".
func TrendDelta(current, previous int) string {
	if previous == 0 {
		if current == 0 {
			return "0%"
		}
		return "+100%"
	}
	pct := float64(current-previous) / float64(previous) * 100
	if pct >= 0 {
		return fmt.Sprintf("+%.0f%%", pct)
	}
	return fmt.Sprintf("%.0f%%", pct)
}

// AnalyticsSnapshot is the result of one analytics query.
type AnalyticsSnapshot struct {
	UserID     string
	EntityType EntityType
	Window     time.Duration
	Metrics    Metrics
	Trends     Trends
	Generated  time.Time
}
