// Package calculator computes the bookable start times of one staff member on one date.
//
// The caller loads working hours and busy reservations; the result depends on nothing else.
// The booking transaction manager runs the same function again under the per staff and date lock.
package calculator

import (
	"salon/shared/clock"
	"slices"
	"time"
)

type Slot struct {
	Start clock.TimeOfDay `json:"slot_start"`
	End   clock.TimeOfDay `json:"slot_end"`
}

func (s Slot) Interval() clock.Interval {
	return clock.Interval{Start: s.Start, End: s.End}
}

type Input struct {
	StaffActive bool
	// Windows are the active working windows of the date's weekday.
	Windows []clock.Interval
	// Busy holds the confirmed and completed reservations of the staff member on Date.
	Busy               []clock.Interval
	DurationMinutes    int
	GranularityMinutes int
	// Date is the civil date as returned by clock.ParseDate.
	Date time.Time
	// Now is the current instant in the salon timezone.
	Now time.Time
}

// Calculate returns the candidate slots of in, ascending and without duplicates.
func Calculate(in Input) []Slot {
	res := []Slot{}

	if !in.StaffActive || len(in.Windows) == 0 || in.DurationMinutes <= 0 || in.GranularityMinutes <= 0 {
		return res
	}

	today := clock.DateOf(in.Now)
	date := clock.DateOf(in.Date)

	if date.Before(today) {
		return res
	}

	cutoff := clock.Midnight
	if date.Equal(today) {
		cutoff = clock.FromTime(in.Now)
		if in.Now.Second() > 0 || in.Now.Nanosecond() > 0 {
			cutoff = cutoff.Add(1)
		}
	}

	for _, window := range in.Windows {
		for start := window.Start; start.Add(in.DurationMinutes) <= window.End; start = start.Add(in.GranularityMinutes) {
			if start < cutoff {
				continue
			}

			candidate := clock.Interval{Start: start, End: start.Add(in.DurationMinutes)}
			if overlapsAny(candidate, in.Busy) {
				continue
			}

			res = append(res, Slot{Start: candidate.Start, End: candidate.End})
		}
	}

	slices.SortFunc(res, func(a, b Slot) int {
		return int(a.Start) - int(b.Start)
	})

	return slices.CompactFunc(res, func(a, b Slot) bool {
		return a.Start == b.Start
	})
}

// Contains reports whether interval is exactly one of the slots.
func Contains(slots []Slot, interval clock.Interval) bool {
	return slices.ContainsFunc(slots, func(s Slot) bool {
		return s.Start == interval.Start && s.End == interval.End
	})
}

func overlapsAny(candidate clock.Interval, busy []clock.Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}

	return false
}
