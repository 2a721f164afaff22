package availability

import "time"

// WeekdayAvailability is one weekday's operating hours. Weekday follows
// time.Weekday: 0 = Sunday .. 6 = Saturday. A weekday with no row is
// closed all day.
type WeekdayAvailability struct {
	ID        int       `db:"id" json:"id"`
	Weekday   int       `db:"weekday" json:"weekday"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type UpsertRequest struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required,clock"`
	EndTime   string `json:"end_time" binding:"required,clock"`
}

// DisabledResponse is consumed by time-picker controls: for the requested
// date it lists the hours that cannot be chosen, the disabled minutes per
// selectable hour, and the disabled seconds.
type DisabledResponse struct {
	Date    string        `json:"date"`
	Hours   []int         `json:"hours"`
	Minutes map[int][]int `json:"minutes"`
	Seconds []int         `json:"seconds"`
}
