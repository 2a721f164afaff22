package schedule

import (
	"strings"
	"time"

	"github.com/dmssspace/na-predele--crm-sub000/internal/availability"
)

const (
	groupDurationMinutes    = 90
	personalDurationMinutes = 60
)

// DurationMinutes derives a session length from its training type:
// group formats run 90 minutes, personal ones 60.
func DurationMinutes(trainingType string) int {
	if strings.HasPrefix(trainingType, "group") {
		return groupDurationMinutes
	}
	return personalDurationMinutes
}

func Duration(trainingType string) time.Duration {
	return time.Duration(DurationMinutes(trainingType)) * time.Minute
}

// DeriveEndTime computes an event's "HH:MM" end time from its start time
// and training type. The result is normalized through minutes-since-
// midnight arithmetic, so a start late enough to cross midnight wraps
// instead of producing an hour past 23.
func DeriveEndTime(startHHMM, trainingType string) (string, error) {
	start, err := availability.ParseClock(startHHMM)
	if err != nil {
		return "", err
	}

	end := availability.FromMinutes(start.MinutesSinceMidnight() + DurationMinutes(trainingType))
	return end.String(), nil
}
