package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilding96/baby-tracker/internal/models"
)

func intPtr(v int) *int { return &v }

func feeding(start time.Time, amount *int) models.LogRecord {
	return models.LogRecord{
		Type:      models.LogTypeFeeding,
		StartTime: start,
		Details:   &models.LogDetails{SubType: models.FeedingFormula, Amount: amount},
	}
}

func sleep(start time.Time, minutes int) models.LogRecord {
	return models.LogRecord{
		Type:      models.LogTypeSleep,
		StartTime: start,
		Details:   &models.LogDetails{DurationMinutes: intPtr(minutes)},
	}
}

func diaper(start time.Time, subType string) models.LogRecord {
	details := &models.LogDetails{}
	if subType != "" {
		details.SubType = subType
	}
	return models.LogRecord{Type: models.LogTypeDiaper, StartTime: start, Details: details}
}

func TestAggregateWindowShape(t *testing.T) {
	reference := time.Date(2026, 2, 10, 15, 30, 0, 0, time.UTC)

	for _, windowDays := range []int{1, 7, 30, 90} {
		buckets := Aggregate(nil, windowDays, reference)
		require.Len(t, buckets, windowDays)

		// Strictly increasing, contiguous days ending at the reference day
		last := buckets[len(buckets)-1].Date
		assert.Equal(t, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), last)
		for i := 1; i < len(buckets); i++ {
			assert.Equal(t, buckets[i-1].Date.AddDate(0, 0, 1), buckets[i].Date)
		}
	}
}

func TestAggregateZeroFilledBuckets(t *testing.T) {
	reference := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	events := []models.LogRecord{
		feeding(time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC), intPtr(120)),
	}

	buckets := Aggregate(events, 7, reference)
	require.Len(t, buckets, 7)
	for _, b := range buckets[:6] {
		assert.Zero(t, b.TotalFeedingML)
		assert.Zero(t, b.TotalSleepMinutes)
		assert.Zero(t, b.Diapers.Total())
	}
	assert.Equal(t, 120, buckets[6].TotalFeedingML)
}

func TestAggregateSleepMinutes(t *testing.T) {
	day := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	events := []models.LogRecord{
		sleep(day.Add(8*time.Hour), 90),
		sleep(day.Add(14*time.Hour), 30),
	}

	buckets := Aggregate(events, 1, day)
	require.Len(t, buckets, 1)
	assert.Equal(t, 120, buckets[0].TotalSleepMinutes)
	assert.Equal(t, 2.0, SleepHours(buckets[0].TotalSleepMinutes))
}

func TestAggregateDiaperBreakdown(t *testing.T) {
	day := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	events := []models.LogRecord{
		diaper(day.Add(6*time.Hour), models.DiaperWet),
		diaper(day.Add(9*time.Hour), models.DiaperWet),
		diaper(day.Add(12*time.Hour), models.DiaperDirty),
	}

	buckets := Aggregate(events, 1, day)
	require.Len(t, buckets, 1)
	assert.Equal(t, models.DiaperCounts{Wet: 2, Dirty: 1, Mixed: 0}, buckets[0].Diapers)
	assert.Equal(t, 3, buckets[0].Diapers.Total())
}

func TestAggregateDiaperMissingSubTypeDefaultsToWet(t *testing.T) {
	day := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	events := []models.LogRecord{
		{Type: models.LogTypeDiaper, StartTime: day.Add(time.Hour)}, // no details at all
		diaper(day.Add(2*time.Hour), ""),
	}

	buckets := Aggregate(events, 1, day)
	require.Len(t, buckets, 1)
	assert.Equal(t, 2, buckets[0].Diapers.Wet)
}

func TestAggregateFeedingMissingAmountTreatedAsZero(t *testing.T) {
	day := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	events := []models.LogRecord{
		feeding(day.Add(7*time.Hour), intPtr(100)),
		feeding(day.Add(11*time.Hour), nil), // breast feed without a volume
		feeding(day.Add(15*time.Hour), intPtr(150)),
	}

	buckets := Aggregate(events, 1, day)
	require.Len(t, buckets, 1)
	assert.Equal(t, 250, buckets[0].TotalFeedingML)
}

func TestAggregateIgnoresOutOfWindowEvents(t *testing.T) {
	reference := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	events := []models.LogRecord{
		feeding(time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC), intPtr(500)),  // before window
		feeding(time.Date(2026, 2, 11, 10, 0, 0, 0, time.UTC), intPtr(500)), // after reference day
		feeding(time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC), intPtr(80)),
	}

	buckets := Aggregate(events, 3, reference)
	require.Len(t, buckets, 3)
	total := 0
	for _, b := range buckets {
		total += b.TotalFeedingML
	}
	assert.Equal(t, 80, total)
}

func TestAggregateOrderIndependent(t *testing.T) {
	reference := time.Date(2026, 2, 10, 23, 0, 0, 0, time.UTC)
	events := []models.LogRecord{
		feeding(time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC), intPtr(110)),
		sleep(time.Date(2026, 2, 9, 13, 0, 0, 0, time.UTC), 45),
		diaper(time.Date(2026, 2, 10, 7, 0, 0, 0, time.UTC), models.DiaperMixed),
		feeding(time.Date(2026, 2, 10, 19, 0, 0, 0, time.UTC), intPtr(90)),
	}

	expected := Aggregate(events, 7, reference)

	reversed := make([]models.LogRecord, len(events))
	for i, ev := range events {
		reversed[len(events)-1-i] = ev
	}
	rotated := append(append([]models.LogRecord{}, events[2:]...), events[:2]...)

	assert.Equal(t, expected, Aggregate(reversed, 7, reference))
	assert.Equal(t, expected, Aggregate(rotated, 7, reference))
}

func TestAggregateIdempotent(t *testing.T) {
	reference := time.Date(2026, 2, 10, 6, 0, 0, 0, time.UTC)
	events := []models.LogRecord{
		feeding(time.Date(2026, 2, 10, 3, 0, 0, 0, time.UTC), intPtr(60)),
		sleep(time.Date(2026, 2, 10, 4, 0, 0, 0, time.UTC), 20),
	}

	first := Aggregate(events, 7, reference)
	second := Aggregate(events, 7, reference)
	assert.Equal(t, first, second)
}

func TestAggregateUsesReferenceLocationForDayBoundaries(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	// 23:30 UTC on Feb 9 is already Feb 10 in UTC+8
	event := feeding(time.Date(2026, 2, 9, 23, 30, 0, 0, time.UTC), intPtr(70))
	reference := time.Date(2026, 2, 10, 12, 0, 0, 0, loc)

	buckets := Aggregate([]models.LogRecord{event}, 2, reference)
	require.Len(t, buckets, 2)
	assert.Zero(t, buckets[0].TotalFeedingML)
	assert.Equal(t, 70, buckets[1].TotalFeedingML)
}

func TestAggregateEmptyWindow(t *testing.T) {
	assert.Empty(t, Aggregate(nil, 0, time.Now()))
}
