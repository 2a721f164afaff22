package ticket

import "time"

type Kind string
type Status string

const (
	KindSessionPack Kind = "session_pack"
	KindTimePass    Kind = "time_pass"

	StatusActive    Status = "active"
	StatusExhausted Status = "exhausted"
	StatusExpired   Status = "expired"
	StatusCanceled  Status = "cancelled"
)

// Ticket — абонемент клиента: пакет занятий либо безлимит на период.
type Ticket struct {
	ID            int        `db:"id" json:"id"`
	CustomerID    int        `db:"customer_id" json:"customer_id"`
	Kind          Kind       `db:"kind" json:"kind"`
	Status        Status     `db:"status" json:"status"`
	SessionsTotal *int       `db:"sessions_total" json:"sessions_total,omitempty"`
	SessionsLeft  *int       `db:"sessions_left" json:"sessions_left,omitempty"`
	PriceCents    int64      `db:"price_cents" json:"price_cents"`
	ValidFrom     time.Time  `db:"valid_from" json:"valid_from"`
	ValidUntil    *time.Time `db:"valid_until" json:"valid_until,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

type IssueRequest struct {
	CustomerID    int    `json:"customer_id" binding:"required"`
	Kind          string `json:"kind" binding:"required,oneof=session_pack time_pass"`
	SessionsTotal *int   `json:"sessions_total,omitempty" binding:"omitempty,min=1"`
	ValidDays     int    `json:"valid_days" binding:"required,min=1"`
	PriceCents    int64  `json:"price_cents" binding:"min=0"`
}
