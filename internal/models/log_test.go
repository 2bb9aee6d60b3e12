package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestLogRecordValidateFeeding(t *testing.T) {
	start := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)

	t.Run("formula with amount", func(t *testing.T) {
		r := LogRecord{Type: LogTypeFeeding, StartTime: start,
			Details: &LogDetails{SubType: FeedingFormula, Amount: intPtr(120)}}
		assert.NoError(t, r.Validate())
	})

	t.Run("formula without amount rejected", func(t *testing.T) {
		r := LogRecord{Type: LogTypeFeeding, StartTime: start,
			Details: &LogDetails{SubType: FeedingFormula}}
		assert.ErrorIs(t, r.Validate(), ErrInvalidLogDetails)
	})

	t.Run("breast amount cleared", func(t *testing.T) {
		r := LogRecord{Type: LogTypeFeeding, StartTime: start,
			Details: &LogDetails{SubType: FeedingBreast, Amount: intPtr(50)}}
		require.NoError(t, r.Validate())
		assert.Nil(t, r.Details.Amount)
	})

	t.Run("unknown sub_type rejected", func(t *testing.T) {
		r := LogRecord{Type: LogTypeFeeding, StartTime: start,
			Details: &LogDetails{SubType: "solid"}}
		assert.ErrorIs(t, r.Validate(), ErrInvalidLogDetails)
	})

	t.Run("missing details rejected", func(t *testing.T) {
		r := LogRecord{Type: LogTypeFeeding, StartTime: start}
		assert.ErrorIs(t, r.Validate(), ErrInvalidLogDetails)
	})

	t.Run("sleep payload on feeding rejected", func(t *testing.T) {
		r := LogRecord{Type: LogTypeFeeding, StartTime: start,
			Details: &LogDetails{SubType: FeedingFormula, Amount: intPtr(120), DurationMinutes: intPtr(30)}}
		assert.ErrorIs(t, r.Validate(), ErrInvalidLogDetails)
	})
}

func TestLogRecordValidateSleep(t *testing.T) {
	start := time.Date(2026, 2, 10, 13, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	t.Run("valid", func(t *testing.T) {
		r := LogRecord{Type: LogTypeSleep, StartTime: start, EndTime: &end,
			Details: &LogDetails{DurationMinutes: intPtr(90)}}
		assert.NoError(t, r.Validate())
	})

	t.Run("missing duration rejected", func(t *testing.T) {
		r := LogRecord{Type: LogTypeSleep, StartTime: start, Details: &LogDetails{}}
		assert.ErrorIs(t, r.Validate(), ErrInvalidLogDetails)
	})

	t.Run("negative duration rejected", func(t *testing.T) {
		r := LogRecord{Type: LogTypeSleep, StartTime: start,
			Details: &LogDetails{DurationMinutes: intPtr(-5)}}
		assert.ErrorIs(t, r.Validate(), ErrInvalidLogDetails)
	})

	t.Run("end before start rejected", func(t *testing.T) {
		before := start.Add(-time.Minute)
		r := LogRecord{Type: LogTypeSleep, StartTime: start, EndTime: &before,
			Details: &LogDetails{DurationMinutes: intPtr(10)}}
		assert.ErrorIs(t, r.Validate(), ErrInvalidLogDetails)
	})

	t.Run("feeding payload on sleep rejected", func(t *testing.T) {
		r := LogRecord{Type: LogTypeSleep, StartTime: start,
			Details: &LogDetails{DurationMinutes: intPtr(30), Amount: intPtr(100)}}
		assert.ErrorIs(t, r.Validate(), ErrInvalidLogDetails)
	})
}

func TestLogRecordValidateDiaper(t *testing.T) {
	start := time.Date(2026, 2, 10, 16, 0, 0, 0, time.UTC)

	t.Run("valid sub_types", func(t *testing.T) {
		for _, sub := range []string{DiaperWet, DiaperDirty, DiaperMixed} {
			r := LogRecord{Type: LogTypeDiaper, StartTime: start,
				Details: &LogDetails{SubType: sub}}
			assert.NoError(t, r.Validate())
		}
	})

	t.Run("missing sub_type defaults to wet", func(t *testing.T) {
		r := LogRecord{Type: LogTypeDiaper, StartTime: start}
		require.NoError(t, r.Validate())
		require.NotNil(t, r.Details)
		assert.Equal(t, DiaperWet, r.Details.SubType)
	})

	t.Run("unknown sub_type rejected", func(t *testing.T) {
		r := LogRecord{Type: LogTypeDiaper, StartTime: start,
			Details: &LogDetails{SubType: "dry"}}
		assert.ErrorIs(t, r.Validate(), ErrInvalidLogDetails)
	})
}

func TestLogRecordValidateUnknownType(t *testing.T) {
	r := LogRecord{Type: LogType("bath"), StartTime: time.Now()}
	assert.ErrorIs(t, r.Validate(), ErrInvalidLogDetails)
}
