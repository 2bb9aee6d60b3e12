package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LogType identifies the kind of activity a log record captures
type LogType string

const (
	LogTypeFeeding LogType = "feeding"
	LogTypeSleep   LogType = "sleep"
	LogTypeDiaper  LogType = "diaper"
)

// Feeding sub-types
const (
	FeedingFormula = "formula"
	FeedingBreast  = "breast"
)

// Diaper sub-types
const (
	DiaperWet   = "wet"
	DiaperDirty = "dirty"
	DiaperMixed = "mixed"
)

var ErrInvalidLogDetails = errors.New("invalid log details")

// LogDetails is the type-dependent payload of a log record.
// Which fields are meaningful depends on LogRecord.Type:
//   - feeding: SubType (formula|breast), Amount in ml for formula
//   - sleep:   DurationMinutes
//   - diaper:  SubType (wet|dirty|mixed)
type LogDetails struct {
	SubType         string `json:"sub_type,omitempty"`
	Amount          *int   `json:"amount,omitempty"`
	DurationMinutes *int   `json:"duration_minutes,omitempty"`
}

// LogRecord represents one logged occurrence (feeding, sleep or diaper)
// tied to a baby profile
type LogRecord struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	BabyID    uuid.UUID   `json:"baby_id" db:"baby_id"`
	Type      LogType     `json:"type" db:"type"`
	StartTime time.Time   `json:"start_time" db:"start_time"`
	EndTime   *time.Time  `json:"end_time,omitempty" db:"end_time"`
	Details   *LogDetails `json:"details" db:"details"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

// Validate checks that the details payload matches the record type and
// normalizes it. Breast feeds carry no volume, so a stray amount is cleared
// rather than rejected. A diaper record without a sub-type defaults to wet.
func (r *LogRecord) Validate() error {
	if r.EndTime != nil && r.EndTime.Before(r.StartTime) {
		return fmt.Errorf("%w: end_time precedes start_time", ErrInvalidLogDetails)
	}

	switch r.Type {
	case LogTypeFeeding:
		if r.Details == nil {
			return fmt.Errorf("%w: feeding record requires details", ErrInvalidLogDetails)
		}
		if r.Details.DurationMinutes != nil {
			return fmt.Errorf("%w: duration_minutes is not valid for feeding records", ErrInvalidLogDetails)
		}
		switch r.Details.SubType {
		case FeedingFormula:
			if r.Details.Amount == nil || *r.Details.Amount <= 0 {
				return fmt.Errorf("%w: formula feeding requires a positive amount", ErrInvalidLogDetails)
			}
		case FeedingBreast:
			// Breast feeds are tracked without volume
			r.Details.Amount = nil
		default:
			return fmt.Errorf("%w: feeding sub_type must be formula or breast", ErrInvalidLogDetails)
		}

	case LogTypeSleep:
		if r.Details == nil || r.Details.DurationMinutes == nil {
			return fmt.Errorf("%w: sleep record requires details.duration_minutes", ErrInvalidLogDetails)
		}
		if *r.Details.DurationMinutes < 0 {
			return fmt.Errorf("%w: duration_minutes must not be negative", ErrInvalidLogDetails)
		}
		if r.Details.SubType != "" || r.Details.Amount != nil {
			return fmt.Errorf("%w: sleep records carry only duration_minutes", ErrInvalidLogDetails)
		}

	case LogTypeDiaper:
		if r.Details == nil {
			r.Details = &LogDetails{}
		}
		if r.Details.Amount != nil || r.Details.DurationMinutes != nil {
			return fmt.Errorf("%w: diaper records carry only sub_type", ErrInvalidLogDetails)
		}
		switch r.Details.SubType {
		case DiaperWet, DiaperDirty, DiaperMixed:
		case "":
			r.Details.SubType = DiaperWet
		default:
			return fmt.Errorf("%w: diaper sub_type must be wet, dirty or mixed", ErrInvalidLogDetails)
		}

	default:
		return fmt.Errorf("%w: unknown log type %q", ErrInvalidLogDetails, r.Type)
	}

	return nil
}
