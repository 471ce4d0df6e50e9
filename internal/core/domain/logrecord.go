package domain

import (
	"errors"
	"time"
)

var (
	ErrNegativeActual = errors.New("actual cannot be negative")
	ErrNegativeTarget = errors.New("target cannot be negative")
	ErrInvalidDate    = errors.New("invalid date (expected YYYY-MM-DD)")
)

// DateLayout is the calendar-date key format used throughout the engine.
const DateLayout = "2006-01-02"

// LogRecord is one activity's raw progress for one calendar date. Target is
// a snapshot of the goal target at logging time, so historical completion
// stays stable when the activity is edited later.
type LogRecord struct {
	Target float64 `json:"target"`
	Actual float64 `json:"actual"`
	Notes  string  `json:"notes"`
}

func (r LogRecord) Validate() error {
	if r.Actual < 0 {
		return ErrNegativeActual
	}
	if r.Target < 0 {
		return ErrNegativeTarget
	}
	return nil
}

// Completed reports the snapshot completion predicate used by the streak
// engine: the snapshotted target was positive and actual reached it.
func (r LogRecord) Completed() bool {
	return r.Target > 0 && r.Actual >= r.Target
}

// DayLog holds every record logged for one calendar date, keyed by
// activity key, plus the wall-clock time of the last write.
type DayLog struct {
	Records map[string]LogRecord `json:"records"`
	SavedAt time.Time            `json:"saved_at"`
}

func NewDayLog() *DayLog {
	return &DayLog{Records: make(map[string]LogRecord)}
}

// Record returns the log record for an activity key. A missing record is
// the zero record {target:0, actual:0}: never completed, never counted.
func (d *DayLog) Record(activityKey string) LogRecord {
	if d == nil || d.Records == nil {
		return LogRecord{}
	}
	return d.Records[activityKey]
}

// ParseDate validates and normalizes a calendar-date key.
func ParseDate(date string) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format(DateLayout), nil
}

// Today returns the current UTC calendar-date key.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}
