package job

import (
	"fmt"
	"time"
)

type cadenceKind int

const (
	cadenceEvery cadenceKind = iota
	cadenceDailyAt
)

// Cadence describes when a job runs: either on a fixed interval or once a
// day at a fixed UTC wall-clock time.
type Cadence struct {
	kind     cadenceKind
	interval time.Duration
	hour     int
	minute   int
}

func Every(interval time.Duration) Cadence {
	return Cadence{kind: cadenceEvery, interval: interval}
}

func DailyAt(hour, minute int) Cadence {
	return Cadence{kind: cadenceDailyAt, hour: hour, minute: minute}
}

// NextRun returns the first instant strictly after now at which the cadence
// fires. Daily cadences are evaluated in UTC.
func (c Cadence) NextRun(now time.Time) time.Time {
	switch c.kind {
	case cadenceDailyAt:
		utc := now.UTC()
		next := time.Date(utc.Year(), utc.Month(), utc.Day(), c.hour, c.minute, 0, 0, time.UTC)
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}
		return next
	default:
		return now.Add(c.interval)
	}
}

func (c Cadence) String() string {
	if c.kind == cadenceDailyAt {
		return fmt.Sprintf("daily at %02d:%02d UTC", c.hour, c.minute)
	}
	return fmt.Sprintf("every %s", c.interval)
}
