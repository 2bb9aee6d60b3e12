package stats

import (
	"math"
	"strconv"
	"time"

	"github.com/wilding96/baby-tracker/internal/models"
)

// Reconcile derives dashboard values from the most recent feeding record
// and today's events. A nil lastFeed means no feeding has ever been logged;
// that is a sentinel state, not an error. Pure function, order of
// todayEvents does not matter.
func Reconcile(lastFeed *models.LogRecord, todayEvents []models.LogRecord, now time.Time) models.Dashboard {
	d := models.Dashboard{}

	if lastFeed != nil {
		t := lastFeed.StartTime
		d.LastFeedTime = &t
		if lastFeed.Details != nil && lastFeed.Details.Amount != nil {
			amount := *lastFeed.Details.Amount
			d.LastFeedAmount = &amount
		}
		elapsed := int(now.Sub(lastFeed.StartTime).Minutes())
		d.TimeSinceFeedMinutes = &elapsed
	}

	for _, ev := range todayEvents {
		switch ev.Type {
		case models.LogTypeSleep:
			d.TodaySleepCount++
			if ev.Details != nil && ev.Details.DurationMinutes != nil {
				d.TodaySleepMinutes += *ev.Details.DurationMinutes
			}
		case models.LogTypeDiaper:
			d.TodayDiaperCount++
			switch diaperSubType(ev) {
			case models.DiaperDirty:
				d.TodayDiapers.Dirty++
			case models.DiaperMixed:
				d.TodayDiapers.Mixed++
			default:
				d.TodayDiapers.Wet++
			}
		}
	}

	return d
}

// FormatTimeSince renders elapsed minutes for display: minutes under an
// hour, hours to one decimal place otherwise. A nil input yields the
// "no record" sentinel.
func FormatTimeSince(minutes *int) models.TimeSince {
	if minutes == nil {
		return models.TimeSince{Value: "--", Unit: "", HasRecord: false}
	}
	m := *minutes
	if m < 60 {
		return models.TimeSince{Value: strconv.Itoa(m), Unit: "min", HasRecord: true}
	}
	return models.TimeSince{
		Value:     strconv.FormatFloat(float64(m)/60, 'f', 1, 64),
		Unit:      "h",
		HasRecord: true,
	}
}

// SleepHours converts raw minutes to hours rounded to one decimal place.
// Used only at the presentation boundary; buckets keep exact minutes.
func SleepHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*10) / 10
}
