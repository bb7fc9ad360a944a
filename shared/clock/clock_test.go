package clock_test

import (
	"encoding/json"
	"salon/shared/clock"
	"salon/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    clock.TimeOfDay
		wantErr bool
	}{
		{name: "morning", input: "09:00", want: clock.NewTimeOfDay(9, 0)},
		{name: "afternoon", input: "16:30", want: clock.NewTimeOfDay(16, 30)},
		{name: "midnight", input: "00:00", want: clock.Midnight},
		{name: "end of day", input: "24:00", want: clock.EndOfDay},
		{name: "single digit hour", input: "9:00", wantErr: true},
		{name: "seconds not allowed", input: "09:00:00", wantErr: true},
		{name: "hour out of range", input: "25:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "past end of day", input: "24:01", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := clock.ParseTimeOfDay(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, failure.ReasonValidation, failure.GetReason(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestTimeOfDay_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    clock.TimeOfDay
		wantErr bool
	}{
		{name: "postgres time bytes", src: []byte("09:30:00"), want: clock.NewTimeOfDay(9, 30)},
		{name: "postgres time with micros", src: "17:00:00.000000", want: clock.NewTimeOfDay(17, 0)},
		{name: "short form", src: "08:15", want: clock.NewTimeOfDay(8, 15)},
		{name: "time value", src: time.Date(0, 1, 1, 13, 45, 0, 0, time.UTC), want: clock.NewTimeOfDay(13, 45)},
		{name: "unsupported type", src: 42, wantErr: true},
		{name: "bad text", src: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got clock.TimeOfDay

			err := got.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDay_JSON(t *testing.T) {
	payload := struct {
		Start clock.TimeOfDay `json:"start"`
	}{Start: clock.NewTimeOfDay(10, 5)}

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"10:05"}`, string(data))

	var decoded struct {
		Start clock.TimeOfDay `json:"start"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"start":"11:45"}`), &decoded))
	assert.Equal(t, clock.NewTimeOfDay(11, 45), decoded.Start)

	assert.Error(t, json.Unmarshal([]byte(`{"start":"1145"}`), &decoded))
}

func TestParseDate(t *testing.T) {
	date, err := clock.ParseDate("2026-03-02")
	require.NoError(t, err)

	assert.Equal(t, "2026-03-02", clock.FormatDate(date))
	assert.Equal(t, 1, clock.Weekday(date), "2026-03-02 is a Monday")

	_, err = clock.ParseDate("02/03/2026")
	assert.Error(t, err)

	_, err = clock.ParseDate("2026-02-30")
	assert.Error(t, err)
}

func TestInterval(t *testing.T) {
	nineToTen, err := clock.ParseInterval("09:00", "10:00")
	require.NoError(t, err)

	tenToEleven, err := clock.ParseInterval("10:00", "11:00")
	require.NoError(t, err)

	nineThirtyToTenThirty, err := clock.ParseInterval("09:30", "10:30")
	require.NoError(t, err)

	assert.False(t, nineToTen.Overlaps(tenToEleven), "touching intervals do not overlap")
	assert.True(t, nineToTen.Overlaps(nineThirtyToTenThirty))
	assert.True(t, nineThirtyToTenThirty.Overlaps(tenToEleven))
	assert.Equal(t, 60, nineToTen.Minutes())
	assert.Equal(t, "09:00-10:00", nineToTen.String())

	day, err := clock.ParseInterval("09:00", "17:00")
	require.NoError(t, err)
	assert.True(t, day.Contains(nineToTen))
	assert.False(t, nineToTen.Contains(day))

	_, err = clock.ParseInterval("10:00", "10:00")
	assert.Equal(t, failure.ReasonInvalidInterval, failure.GetReason(err))

	_, err = clock.ParseInterval("11:00", "10:00")
	assert.Equal(t, failure.ReasonInvalidInterval, failure.GetReason(err))
}

func TestTimeOfDay_On(t *testing.T) {
	date, err := clock.ParseDate("2026-03-02")
	require.NoError(t, err)

	at := clock.NewTimeOfDay(14, 30).On(date, time.UTC)

	assert.Equal(t, time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC), at)
	assert.Equal(t, clock.NewTimeOfDay(14, 30), clock.FromTime(at))
}
