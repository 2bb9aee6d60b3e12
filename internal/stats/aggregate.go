// Package stats implements the daily aggregation and dashboard
// reconciliation core. Both entry points are pure functions over their
// inputs so they can be tested without a database.
package stats

import (
	"time"

	"github.com/wilding96/baby-tracker/internal/models"
)

const dayKeyFormat = "2006-01-02"

// Aggregate buckets log records into per-day statistics over a trailing
// window of windowDays calendar days ending at reference's day. The caller
// is expected to have already restricted events to the window of interest;
// anything falling outside it is silently skipped. Buckets exist for every
// day of the window even when no events match, so charts get uniform
// x-axis coverage.
//
// Calendar days are computed in reference's location. Output order is
// oldest day first and does not depend on the order of the input events.
func Aggregate(events []models.LogRecord, windowDays int, reference time.Time) []models.DailyStat {
	if windowDays < 1 {
		return []models.DailyStat{}
	}

	loc := reference.Location()
	first := startOfDay(reference, loc).AddDate(0, 0, -(windowDays - 1))

	buckets := make([]models.DailyStat, windowDays)
	index := make(map[string]*models.DailyStat, windowDays)
	for i := range buckets {
		day := first.AddDate(0, 0, i)
		buckets[i].Date = day
		index[day.Format(dayKeyFormat)] = &buckets[i]
	}

	for _, ev := range events {
		bucket, ok := index[ev.StartTime.In(loc).Format(dayKeyFormat)]
		if !ok {
			// Out-of-window events are tolerated, not an error
			continue
		}
		accumulate(bucket, ev)
	}

	return buckets
}

func accumulate(bucket *models.DailyStat, ev models.LogRecord) {
	switch ev.Type {
	case models.LogTypeFeeding:
		if ev.Details != nil && ev.Details.Amount != nil {
			bucket.TotalFeedingML += *ev.Details.Amount
		}
	case models.LogTypeSleep:
		if ev.Details != nil && ev.Details.DurationMinutes != nil {
			bucket.TotalSleepMinutes += *ev.Details.DurationMinutes
		}
	case models.LogTypeDiaper:
		switch diaperSubType(ev) {
		case models.DiaperDirty:
			bucket.Diapers.Dirty++
		case models.DiaperMixed:
			bucket.Diapers.Mixed++
		default:
			bucket.Diapers.Wet++
		}
	}
}

// diaperSubType defaults missing or unknown sub-types to wet
func diaperSubType(ev models.LogRecord) string {
	if ev.Details == nil {
		return models.DiaperWet
	}
	switch ev.Details.SubType {
	case models.DiaperDirty, models.DiaperMixed:
		return ev.Details.SubType
	default:
		return models.DiaperWet
	}
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
