package ticket

import (
	"context"
	"errors"
	"time"

	"github.com/dmssspace/na-predele--crm-sub000/internal/metrics"
)

var (
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrTicketInactive  = errors.New("ticket is not active")
	ErrTicketExhausted = errors.New("ticket has no sessions left")
	ErrTicketExpired   = errors.New("ticket validity period is over")
	ErrBadIssueRequest = errors.New("invalid ticket request")
)

type Service interface {
	Issue(ctx context.Context, req IssueRequest) (*Ticket, error)
	ListByCustomer(ctx context.Context, customerID int) ([]Ticket, error)
	// Debit charges one visit at the given moment against the ticket.
	Debit(ctx context.Context, ticketID int, at time.Time) error
	Cancel(ctx context.Context, ticketID int) error
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) Service {
	return &service{repo: repo}
}

func (s *service) Issue(ctx context.Context, req IssueRequest) (*Ticket, error) {
	kind := Kind(req.Kind)
	if kind == KindSessionPack && req.SessionsTotal == nil {
		return nil, ErrBadIssueRequest
	}

	now := time.Now()
	validUntil := now.AddDate(0, 0, req.ValidDays)

	t := &Ticket{
		CustomerID: req.CustomerID,
		Kind:       kind,
		PriceCents: req.PriceCents,
		ValidFrom:  now,
		ValidUntil: &validUntil,
	}
	if kind == KindSessionPack {
		t.SessionsTotal = req.SessionsTotal
		t.SessionsLeft = req.SessionsTotal
	}

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, err
	}

	metrics.RecordTicketIssued(string(kind))
	return created, nil
}

func (s *service) ListByCustomer(ctx context.Context, customerID int) ([]Ticket, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *service) Debit(ctx context.Context, ticketID int, at time.Time) error {
	t, err := s.repo.GetByID(ctx, ticketID)
	if err != nil {
		return ErrTicketNotFound
	}

	if t.Status != StatusActive {
		return ErrTicketInactive
	}

	if at.Before(t.ValidFrom) || (t.ValidUntil != nil && at.After(*t.ValidUntil)) {
		// Lazily expire instead of running a sweeper.
		_ = s.repo.UpdateStatus(ctx, t.ID, StatusExpired)
		return ErrTicketExpired
	}

	if t.Kind == KindTimePass {
		return nil
	}

	if err := s.repo.DebitSession(ctx, t.ID); err != nil {
		if errors.Is(err, ErrNoSessionsLeft) {
			return ErrTicketExhausted
		}
		return err
	}

	return nil
}

func (s *service) Cancel(ctx context.Context, ticketID int) error {
	t, err := s.repo.GetByID(ctx, ticketID)
	if err != nil {
		return ErrTicketNotFound
	}

	if t.Status != StatusActive {
		return ErrTicketInactive
	}

	return s.repo.UpdateStatus(ctx, t.ID, StatusCanceled)
}
