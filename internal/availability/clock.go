package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadClock = errors.New("bad HH:MM value")

// ClockTime is a minute-precision time of day. The schedule domain has no
// second-level granularity.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClock parses a strict zero-padded "HH:MM" string. Anything else,
// including an empty string or a missing leading zero, is rejected so the
// caller can degrade instead of guessing.
func ParseClock(s string) (ClockTime, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrBadClock, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrBadClock, s)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrBadClock, s)
	}

	return ClockTime{Hour: hour, Minute: minute}, nil
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MinutesSinceMidnight supports interval arithmetic on clock times.
func (t ClockTime) MinutesSinceMidnight() int {
	return t.Hour*60 + t.Minute
}

// FromMinutes normalizes minutes-since-midnight into a ClockTime, wrapping
// across midnight so the result never reaches 24:00.
func FromMinutes(m int) ClockTime {
	const day = 24 * 60
	m %= day
	if m < 0 {
		m += day
	}
	return ClockTime{Hour: m / 60, Minute: m % 60}
}

func (t ClockTime) Before(other ClockTime) bool {
	return t.MinutesSinceMidnight() < other.MinutesSinceMidnight()
}

func (t ClockTime) After(other ClockTime) bool {
	return t.MinutesSinceMidnight() > other.MinutesSinceMidnight()
}
