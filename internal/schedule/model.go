package schedule

import "time"

// Training types. Anything with the "group" prefix runs 90 minutes,
// everything else is a 60-minute personal session.
const (
	TrainingGroupAdult = "group_adult"
	TrainingGroupKids  = "group_kids"
	TrainingIndividual = "individual"
	TrainingSplit      = "split"
)

const (
	EventKindRecurring = "recurring"
	EventKindOnce      = "once"
)

// Event is a template that generates sessions: either a recurring
// weekday+time slot or a one-off occurrence.
type Event struct {
	ID           int       `db:"id" json:"id"`
	TrainerID    int       `db:"trainer_id" json:"trainer_id"`
	Kind         string    `db:"kind" json:"kind"`
	Weekday      *int      `db:"weekday" json:"weekday,omitempty"`
	StartTime    *string   `db:"start_time" json:"start_time,omitempty"`
	TrainingType string    `db:"training_type" json:"training_type"`
	Capacity     int       `db:"capacity" json:"capacity"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Session is a concrete scheduled occurrence at a specific start/end time.
type Session struct {
	ID           int       `db:"id" json:"id"`
	EventID      *int      `db:"event_id" json:"event_id,omitempty"`
	TrainerID    int       `db:"trainer_id" json:"trainer_id"`
	TrainingType string    `db:"training_type" json:"training_type"`
	StartAt      time.Time `db:"start_at" json:"start_at"`
	EndAt        time.Time `db:"end_at" json:"end_at"`
	Capacity     int       `db:"capacity" json:"capacity"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type SessionWithCounts struct {
	Session
	TrainerName string `db:"trainer_name" json:"trainer_name"`
	BookedCount int    `db:"booked_count" json:"booked_count"`
	IsFull      bool   `json:"is_full"`
}

// ScheduleDay groups a day's sessions for the calendar view.
type ScheduleDay struct {
	Date     string              `json:"date"`
	Weekday  int                 `json:"weekday"`
	Sessions []SessionWithCounts `json:"sessions"`
}

type CreateRecurringEventRequest struct {
	TrainerID    int    `json:"trainer_id" binding:"required"`
	Weekday      int    `json:"weekday" binding:"min=0,max=6"`
	StartTime    string `json:"start_time" binding:"required,clock"`
	TrainingType string `json:"training_type" binding:"required"`
	Capacity     int    `json:"capacity" binding:"required,min=1"`
}
