package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		hour    int
		minute  int
		wantErr bool
	}{
		{"00:00", 0, 0, false},
		{"10:30", 10, 30, false},
		{"23:59", 23, 59, false},
		{"", 0, 0, true},
		{"9:00", 0, 0, true},
		{"09:5", 0, 0, true},
		{"24:00", 0, 0, true},
		{"12:60", 0, 0, true},
		{"ab:cd", 0, 0, true},
		{"12-30", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrBadClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hour, got.Hour)
			assert.Equal(t, tt.minute, got.Minute)
		})
	}
}

func TestClockRoundTrip(t *testing.T) {
	ct, err := ParseClock("07:05")
	require.NoError(t, err)
	assert.Equal(t, "07:05", ct.String())
}

func TestFromMinutesNormalizes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "00:00"},
		{630, "10:30"},
		{23*60 + 30 + 90, "01:00"}, // перенос через полночь
		{24 * 60, "00:00"},
		{-30, "23:30"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FromMinutes(tt.minutes).String())
	}
}

func TestBeforeAfter(t *testing.T) {
	a := ClockTime{Hour: 10, Minute: 0}
	b := ClockTime{Hour: 10, Minute: 30}

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, b.After(a))
	assert.False(t, a.After(a))
}
