package calculator_test

import (
	"math/rand"
	"salon/internal/domains/availability/calculator"
	"salon/shared/clock"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	monday   = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	earlyNow = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
)

func interval(t *testing.T, start, end string) clock.Interval {
	t.Helper()

	i, err := clock.ParseInterval(start, end)
	require.NoError(t, err)

	return i
}

func starts(slots []calculator.Slot) []string {
	res := make([]string, len(slots))
	for i, s := range slots {
		res[i] = s.Start.String()
	}

	return res
}

func TestCalculate(t *testing.T) {
	nineToFive := []clock.Interval{interval(t, "09:00", "17:00")}

	tests := []struct {
		name       string
		in         func() calculator.Input
		wantCount  int
		wantStarts []string
	}{
		{
			name: "full day of half hour slots",
			in: func() calculator.Input {
				return calculator.Input{StaffActive: true, Windows: nineToFive, DurationMinutes: 30, GranularityMinutes: 30, Date: monday, Now: earlyNow}
			},
			wantCount: 16,
		},
		{
			name: "one hour service on half hour grid",
			in: func() calculator.Input {
				return calculator.Input{StaffActive: true, Windows: nineToFive, DurationMinutes: 60, GranularityMinutes: 30, Date: monday, Now: earlyNow}
			},
			wantCount: 15,
		},
		{
			name: "reservation blocks overlapping candidates",
			in: func() calculator.Input {
				return calculator.Input{
					StaffActive:        true,
					Windows:            []clock.Interval{interval(t, "09:00", "12:00")},
					Busy:               []clock.Interval{interval(t, "10:00", "11:00")},
					DurationMinutes:    60,
					GranularityMinutes: 30,
					Date:               monday,
					Now:                earlyNow,
				}
			},
			wantStarts: []string{"09:00", "11:00"},
		},
		{
			name: "fully booked day",
			in: func() calculator.Input {
				return calculator.Input{
					StaffActive:        true,
					Windows:            nineToFive,
					Busy:               []clock.Interval{interval(t, "09:00", "13:00"), interval(t, "13:00", "17:00")},
					DurationMinutes:    30,
					GranularityMinutes: 30,
					Date:               monday,
					Now:                earlyNow,
				}
			},
			wantStarts: []string{},
		},
		{
			name: "inactive staff",
			in: func() calculator.Input {
				return calculator.Input{StaffActive: false, Windows: nineToFive, DurationMinutes: 30, GranularityMinutes: 30, Date: monday, Now: earlyNow}
			},
			wantStarts: []string{},
		},
		{
			name: "no working hours",
			in: func() calculator.Input {
				return calculator.Input{StaffActive: true, DurationMinutes: 30, GranularityMinutes: 30, Date: monday, Now: earlyNow}
			},
			wantStarts: []string{},
		},
		{
			name: "zero length window",
			in: func() calculator.Input {
				nine := clock.NewTimeOfDay(9, 0)

				return calculator.Input{StaffActive: true, Windows: []clock.Interval{{Start: nine, End: nine}}, DurationMinutes: 30, GranularityMinutes: 30, Date: monday, Now: earlyNow}
			},
			wantStarts: []string{},
		},
		{
			name: "duration longer than window",
			in: func() calculator.Input {
				return calculator.Input{StaffActive: true, Windows: []clock.Interval{interval(t, "09:00", "10:00")}, DurationMinutes: 90, GranularityMinutes: 30, Date: monday, Now: earlyNow}
			},
			wantStarts: []string{},
		},
		{
			name: "non positive duration",
			in: func() calculator.Input {
				return calculator.Input{StaffActive: true, Windows: nineToFive, DurationMinutes: 0, GranularityMinutes: 30, Date: monday, Now: earlyNow}
			},
			wantStarts: []string{},
		},
		{
			name: "non positive granularity",
			in: func() calculator.Input {
				return calculator.Input{StaffActive: true, Windows: nineToFive, DurationMinutes: 30, GranularityMinutes: 0, Date: monday, Now: earlyNow}
			},
			wantStarts: []string{},
		},
		{
			name: "past date",
			in: func() calculator.Input {
				return calculator.Input{StaffActive: true, Windows: nineToFive, DurationMinutes: 30, GranularityMinutes: 30, Date: monday, Now: monday.AddDate(0, 0, 1)}
			},
			wantStarts: []string{},
		},
		{
			name: "today drops started slots",
			in: func() calculator.Input {
				now := time.Date(2026, 3, 2, 15, 10, 0, 0, time.UTC)

				return calculator.Input{StaffActive: true, Windows: nineToFive, DurationMinutes: 30, GranularityMinutes: 30, Date: monday, Now: now}
			},
			wantStarts: []string{"15:30", "16:00", "16:30"},
		},
		{
			name: "today keeps slot starting this exact minute",
			in: func() calculator.Input {
				now := time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC)

				return calculator.Input{StaffActive: true, Windows: nineToFive, DurationMinutes: 30, GranularityMinutes: 30, Date: monday, Now: now}
			},
			wantStarts: []string{"16:00", "16:30"},
		},
		{
			name: "today drops slot once its minute has begun",
			in: func() calculator.Input {
				now := time.Date(2026, 3, 2, 16, 0, 1, 0, time.UTC)

				return calculator.Input{StaffActive: true, Windows: nineToFive, DurationMinutes: 30, GranularityMinutes: 30, Date: monday, Now: now}
			},
			wantStarts: []string{"16:30"},
		},
		{
			name: "split shift with overlapping windows is deduplicated",
			in: func() calculator.Input {
				return calculator.Input{
					StaffActive:        true,
					Windows:            []clock.Interval{interval(t, "13:00", "14:00"), interval(t, "09:00", "10:00"), interval(t, "09:00", "10:00")},
					DurationMinutes:    30,
					GranularityMinutes: 30,
					Date:               monday,
					Now:                earlyNow,
				}
			},
			wantStarts: []string{"09:00", "09:30", "13:00", "13:30"},
		},
		{
			name: "window not aligned to granularity",
			in: func() calculator.Input {
				return calculator.Input{StaffActive: true, Windows: []clock.Interval{interval(t, "09:10", "10:30")}, DurationMinutes: 30, GranularityMinutes: 30, Date: monday, Now: earlyNow}
			},
			wantStarts: []string{"09:10", "09:40"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculator.Calculate(tt.in())

			require.NotNil(t, got)

			if tt.wantStarts != nil {
				assert.Equal(t, tt.wantStarts, starts(got))

				return
			}

			assert.Len(t, got, tt.wantCount)
		})
	}
}

func TestCalculate_CancellationFreesSlot(t *testing.T) {
	in := calculator.Input{
		StaffActive:        true,
		Windows:            []clock.Interval{interval(t, "09:00", "11:00")},
		Busy:               []clock.Interval{interval(t, "09:30", "10:00")},
		DurationMinutes:    30,
		GranularityMinutes: 30,
		Date:               monday,
		Now:                earlyNow,
	}

	before := calculator.Calculate(in)
	assert.False(t, calculator.Contains(before, interval(t, "09:30", "10:00")))

	in.Busy = nil
	after := calculator.Calculate(in)
	assert.True(t, calculator.Contains(after, interval(t, "09:30", "10:00")))
	assert.Len(t, after, len(before)+1)
}

func TestContains(t *testing.T) {
	slots := []calculator.Slot{{Start: clock.NewTimeOfDay(9, 0), End: clock.NewTimeOfDay(9, 30)}}

	assert.True(t, calculator.Contains(slots, interval(t, "09:00", "09:30")))
	assert.False(t, calculator.Contains(slots, interval(t, "09:00", "10:00")), "the end must match too")
	assert.False(t, calculator.Contains(nil, interval(t, "09:00", "09:30")))
}

func TestCalculate_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42)) //nolint:gosec

	for range 500 {
		openAt := clock.TimeOfDay(rng.Intn(12 * 60))
		window := clock.Interval{Start: openAt, End: openAt.Add(rng.Intn(10 * 60))}
		duration := 15 * (1 + rng.Intn(8))
		granularity := []int{5, 10, 15, 30}[rng.Intn(4)]

		var busy []clock.Interval
		for range rng.Intn(6) {
			start := clock.TimeOfDay(rng.Intn(20 * 60))
			busy = append(busy, clock.Interval{Start: start, End: start.Add(15 + rng.Intn(90))})
		}

		in := calculator.Input{
			StaffActive:        true,
			Windows:            []clock.Interval{window},
			Busy:               busy,
			DurationMinutes:    duration,
			GranularityMinutes: granularity,
			Date:               monday,
			Now:                earlyNow,
		}

		got := calculator.Calculate(in)

		assert.Equal(t, got, calculator.Calculate(in), "calculation must be deterministic")

		for i, slot := range got {
			assert.True(t, window.Contains(slot.Interval()), "slot %s leaves window %s", slot.Interval(), window)
			assert.Equal(t, duration, slot.Interval().Minutes())
			assert.Zero(t, slot.Start.Sub(window.Start)%granularity, "slot %s is off grid", slot.Interval())

			for _, b := range busy {
				assert.False(t, slot.Interval().Overlaps(b), "slot %s overlaps reservation %s", slot.Interval(), b)
			}

			if i > 0 {
				assert.Less(t, int(got[i-1].Start), int(slot.Start))
			}
		}
	}
}
