// Package clock holds the wall-clock primitives used by scheduling: a time of day
// without a date or zone, civil dates, and half-open intervals between two times of day.
//
// All values are interpreted in the single salon timezone configured in APP_TIMEZONE.
package clock

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"salon/shared/constant"
	"salon/shared/failure"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a number of minutes since midnight. EndOfDay (24:00) is valid only as an interval end.
type TimeOfDay int

const (
	Midnight TimeOfDay = 0
	EndOfDay TimeOfDay = constant.MinutesPerDay
)

// NewTimeOfDay builds a TimeOfDay from hour and minute.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay parses a strict 24-hour "HH:MM" value.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	tod, ok := parseClock(value, false)
	if !ok {
		return 0, failure.BadRequestFromString(fmt.Sprintf("invalid time %q, expected HH:MM", value)) //nolint:wrapcheck
	}

	return tod, nil
}

// parseClock accepts HH:MM and, when lenient, the HH:MM:SS form Postgres returns for time columns.
func parseClock(value string, lenient bool) (TimeOfDay, bool) {
	parts := strings.Split(value, ":")

	switch {
	case len(parts) == 2:
	case lenient && len(parts) == 3:
		if len(parts[2]) < 2 || !allDigits(parts[2][:2]) {
			return 0, false
		}
	default:
		return 0, false
	}

	if len(parts[0]) != 2 || len(parts[1]) != 2 || !allDigits(parts[0]) || !allDigits(parts[1]) {
		return 0, false
	}

	hour, _ := strconv.Atoi(parts[0])
	minute, _ := strconv.Atoi(parts[1])

	if hour == 24 && minute == 0 {
		return EndOfDay, true
	}

	if hour > 23 || minute > 59 {
		return 0, false
	}

	return NewTimeOfDay(hour, minute), true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return s != ""
}

// FromTime returns the wall-clock time of day of t in its own location.
func FromTime(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute())
}

func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

// Add shifts t by the given number of minutes.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

// Sub returns the number of minutes from u to t.
func (t TimeOfDay) Sub(u TimeOfDay) int {
	return int(t - u)
}

func (t TimeOfDay) Valid() bool {
	return t >= Midnight && t <= EndOfDay
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// On places t on the given civil date in loc.
func (t TimeOfDay) On(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc).Add(time.Duration(t) * time.Minute)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("time of day must be a string: %w", err)
	}

	parsed, err := ParseTimeOfDay(value)
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

// Scan implements sql.Scanner for time and text columns.
func (t *TimeOfDay) Scan(src any) error {
	var value string

	switch v := src.(type) {
	case string:
		value = v
	case []byte:
		value = string(v)
	case time.Time:
		*t = FromTime(v)

		return nil
	case nil:
		*t = Midnight

		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}

	parsed, ok := parseClock(value, true)
	if !ok {
		return fmt.Errorf("cannot parse %q as time of day", value)
	}

	*t = parsed

	return nil
}

// Value implements driver.Valuer.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// ParseDate parses a "YYYY-MM-DD" civil date. The result is midnight UTC.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(constant.DayFormat, value)
	if err != nil {
		return time.Time{}, failure.BadRequestFromString(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", value)) //nolint:wrapcheck
	}

	return date, nil
}

// FormatDate formats a civil date as "YYYY-MM-DD".
func FormatDate(date time.Time) string {
	return date.Format(constant.DayFormat)
}

// DateOf truncates t to its civil date, keeping the calendar day as seen in t's location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Weekday returns 0 for Sunday through 6 for Saturday.
func Weekday(date time.Time) int {
	return int(date.Weekday())
}

// Interval is a half-open [Start, End) window inside one day.
type Interval struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// NewInterval validates and builds an interval. Start must be strictly before End.
func NewInterval(start, end TimeOfDay) (Interval, error) {
	if !start.Valid() || !end.Valid() || start >= end {
		return Interval{}, failure.InvalidInterval(fmt.Sprintf("invalid interval %s-%s, start must be before end", start, end)) //nolint:wrapcheck
	}

	return Interval{Start: start, End: end}, nil
}

// ParseInterval parses two "HH:MM" values into an interval.
func ParseInterval(start, end string) (Interval, error) {
	startTime, err := ParseTimeOfDay(start)
	if err != nil {
		return Interval{}, err
	}

	endTime, err := ParseTimeOfDay(end)
	if err != nil {
		return Interval{}, err
	}

	return NewInterval(startTime, endTime)
}

// Overlaps reports whether two half-open intervals share any minute.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Contains reports whether other lies entirely inside i.
func (i Interval) Contains(other Interval) bool {
	return i.Start <= other.Start && other.End <= i.End
}

func (i Interval) Minutes() int {
	return i.End.Sub(i.Start)
}

func (i Interval) String() string {
	return i.Start.String() + "-" + i.End.String()
}
