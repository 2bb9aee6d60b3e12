package models

import "time"

// DiaperCounts holds per-sub-type diaper totals
type DiaperCounts struct {
	Wet   int `json:"wet"`
	Dirty int `json:"dirty"`
	Mixed int `json:"mixed"`
}

// Total returns the combined diaper count
func (d DiaperCounts) Total() int {
	return d.Wet + d.Dirty + d.Mixed
}

// DailyStat is one aggregated calendar-day bucket in a trailing window.
// Sleep is kept in raw minutes; conversion to hours happens at the
// presentation boundary.
type DailyStat struct {
	Date              time.Time    `json:"date"`
	TotalFeedingML    int          `json:"total_feeding_ml"`
	TotalSleepMinutes int          `json:"total_sleep_minutes"`
	Diapers           DiaperCounts `json:"diapers"`
}

// DailyStatResponse is the chart-ready shape for a single bucket
type DailyStatResponse struct {
	Date              string       `json:"date"`
	TotalFeedingML    int          `json:"total_feeding_ml"`
	TotalSleepMinutes int          `json:"total_sleep_minutes"`
	TotalSleepHours   float64      `json:"total_sleep_hours"`
	DiaperCount       int          `json:"diaper_count"`
	Diapers           DiaperCounts `json:"diapers"`
}

// TimeSince is the presentation of elapsed time since the last feeding.
// Value is "--" and HasRecord false when no feeding has been logged.
type TimeSince struct {
	Value     string `json:"value"`
	Unit      string `json:"unit"`
	HasRecord bool   `json:"has_record"`
}

// Dashboard carries the reconciled values for the home screen
type Dashboard struct {
	LastFeedTime         *time.Time   `json:"last_feed_time"`
	LastFeedAmount       *int         `json:"last_feed_amount"`
	TimeSinceFeedMinutes *int         `json:"time_since_feed_minutes"`
	TodaySleepMinutes    int          `json:"today_sleep_minutes"`
	TodaySleepCount      int          `json:"today_sleep_count"`
	TodayDiaperCount     int          `json:"today_diaper_count"`
	TodayDiapers         DiaperCounts `json:"today_diapers"`
}

// DashboardResponse is the full home-screen payload
type DashboardResponse struct {
	Baby       BabySummary `json:"baby"`
	Dashboard  Dashboard   `json:"dashboard"`
	TimeSince  TimeSince   `json:"time_since_feed"`
	RecentLogs []LogRecord `json:"recent_logs"`
}

// BabySummary is the trimmed baby profile embedded in dashboard responses
type BabySummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Birthday *string `json:"birthday,omitempty"`
	AgeDays  *int    `json:"age_days,omitempty"`
}
