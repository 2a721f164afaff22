package booking

import "time"

const (
	StatusBooked   = "booked"
	StatusVisited  = "visited"
	StatusCanceled = "cancelled"

	CanceledByCustomer = "customer"
	CanceledByStaff    = "staff"
)

type Booking struct {
	ID         int       `db:"id" json:"id"`
	SessionID  int       `db:"session_id" json:"session_id"`
	CustomerID int       `db:"customer_id" json:"customer_id"`
	TicketID   *int      `db:"ticket_id" json:"ticket_id,omitempty"`
	Status     string    `db:"status" json:"status"`
	CanceledBy *string   `db:"canceled_by" json:"canceled_by,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type BookingWithDetails struct {
	Booking
	SessionStart  time.Time `db:"session_start" json:"session_start"`
	SessionEnd    time.Time `db:"session_end" json:"session_end"`
	TrainingType  string    `db:"training_type" json:"training_type"`
	TrainerName   string    `db:"trainer_name" json:"trainer_name"`
	CustomerName  string    `db:"customer_name" json:"customer_name"`
	CustomerPhone string    `db:"customer_phone" json:"customer_phone"`
}

// Visit is the record of actual attendance, optionally debiting a ticket.
type Visit struct {
	ID        int       `db:"id" json:"id"`
	BookingID int       `db:"booking_id" json:"booking_id"`
	TicketID  *int      `db:"ticket_id" json:"ticket_id,omitempty"`
	IsCharged bool      `db:"is_charged" json:"is_charged"`
	VisitedAt time.Time `db:"visited_at" json:"visited_at"`
}

type VisitWithDetails struct {
	Visit
	CustomerID   int       `db:"customer_id" json:"customer_id"`
	CustomerName string    `db:"customer_name" json:"customer_name"`
	TrainerName  string    `db:"trainer_name" json:"trainer_name"`
	SessionStart time.Time `db:"session_start" json:"session_start"`
}

type BookSessionRequest struct {
	CustomerID int  `json:"customer_id" binding:"required"`
	TicketID   *int `json:"ticket_id,omitempty"`
}

// OnceRequest books a one-off personal session: a session and its
// booking are created in one call.
type OnceRequest struct {
	TrainerID  int    `json:"trainer_id" binding:"required"`
	CustomerID int    `json:"customer_id" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	TicketID   *int   `json:"ticket_id,omitempty"`
}

type VisitRequest struct {
	TicketID  *int  `json:"ticket_id,omitempty"`
	IsCharged *bool `json:"is_charged,omitempty"`
}

type CancelRequest struct {
	CanceledBy string `json:"canceled_by" binding:"required,oneof=customer staff"`
}

type OnceResponse struct {
	SessionID int      `json:"session_id"`
	Booking   *Booking `json:"booking"`
}
