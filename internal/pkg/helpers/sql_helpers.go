package helpers

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/yigit/timetabler/internal/pkg/timetable"
)

const microsecondsPerMinute = int64(time.Minute / time.Microsecond)

// TimeOfDay converts "HH:MM" or "HH:MM:SS" into a value for a SQL time column.
// Seconds are dropped; schedules are minute precise.
func TimeOfDay(s string) (pgtype.Time, error) {
	c, err := timetable.ParseClock(s)
	if err != nil {
		return pgtype.Time{}, err
	}
	return ClockToTime(c), nil
}

// ClockToTime converts a parsed clock into a SQL time value.
func ClockToTime(c timetable.Clock) pgtype.Time {
	return pgtype.Time{Microseconds: int64(c) * microsecondsPerMinute, Valid: true}
}
