package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationMinutes(t *testing.T) {
	assert.Equal(t, 90, DurationMinutes(TrainingGroupAdult))
	assert.Equal(t, 90, DurationMinutes(TrainingGroupKids))
	assert.Equal(t, 60, DurationMinutes(TrainingIndividual))
	assert.Equal(t, 60, DurationMinutes(TrainingSplit))
	assert.Equal(t, 60, DurationMinutes("unknown"))
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, Duration(TrainingGroupAdult))
	assert.Equal(t, time.Hour, Duration(TrainingIndividual))
}

func TestDeriveEndTime(t *testing.T) {
	tests := []struct {
		start        string
		trainingType string
		want         string
	}{
		{"10:00", TrainingGroupAdult, "11:30"},
		{"10:00", TrainingIndividual, "11:00"},
		{"18:30", TrainingGroupKids, "20:00"},
		{"09:15", TrainingSplit, "10:15"},
	}

	for _, tt := range tests {
		t.Run(tt.start+"_"+tt.trainingType, func(t *testing.T) {
			got, err := DeriveEndTime(tt.start, tt.trainingType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveEndTimeWrapsAtMidnight(t *testing.T) {
	// Поздний старт переносится через полночь, час никогда не достигает 24
	got, err := DeriveEndTime("23:30", TrainingGroupAdult)
	require.NoError(t, err)
	assert.Equal(t, "01:00", got)

	got, err = DeriveEndTime("23:30", TrainingIndividual)
	require.NoError(t, err)
	assert.Equal(t, "00:30", got)
}

func TestDeriveEndTimeRejectsMalformedStart(t *testing.T) {
	_, err := DeriveEndTime("", TrainingGroupAdult)
	assert.Error(t, err)

	_, err = DeriveEndTime("9:00", TrainingGroupAdult)
	assert.Error(t, err)
}
