package booking

import (
	"context"
	"errors"
	"time"

	"github.com/dmssspace/na-predele--crm-sub000/internal/customer"
	"github.com/dmssspace/na-predele--crm-sub000/internal/email"
	"github.com/dmssspace/na-predele--crm-sub000/internal/logger"
	"github.com/dmssspace/na-predele--crm-sub000/internal/metrics"
	"github.com/dmssspace/na-predele--crm-sub000/internal/schedule"
	"github.com/dmssspace/na-predele--crm-sub000/internal/ticket"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionInPast   = errors.New("cannot book a session in the past")
	ErrSessionFull     = errors.New("session is full")
	ErrAlreadyBooked   = errors.New("customer already has a booking for this session")
	ErrBookingNotFound = errors.New("booking not found")
	ErrBadTime         = errors.New("invalid time format")
	ErrTrainerBusy     = errors.New("trainer is busy at this time")
)

type Service interface {
	BookSession(ctx context.Context, sessionID int, req BookSessionRequest) (*Booking, error)
	BookOnce(ctx context.Context, req OnceRequest) (*schedule.Session, *Booking, error)
	RecordVisit(ctx context.Context, bookingID int, req VisitRequest) (*Visit, error)
	Cancel(ctx context.Context, bookingID int, canceledBy string) error
	ListBySession(ctx context.Context, sessionID int) ([]BookingWithDetails, error)
	ListVisits(ctx context.Context, page, limit int) ([]VisitWithDetails, int, error)
}

type service struct {
	repo          *Repository
	scheduleRepo  *schedule.Repository
	customerRepo  *customer.Repository
	ticketService ticket.Service
	emailService  *email.Service
}

func NewService(
	repo *Repository,
	scheduleRepo *schedule.Repository,
	customerRepo *customer.Repository,
	ticketService ticket.Service,
	emailService *email.Service,
) Service {
	return &service{
		repo:          repo,
		scheduleRepo:  scheduleRepo,
		customerRepo:  customerRepo,
		ticketService: ticketService,
		emailService:  emailService,
	}
}

func (s *service) BookSession(ctx context.Context, sessionID int, req BookSessionRequest) (*Booking, error) {
	session, err := s.scheduleRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	if session.StartAt.Before(time.Now()) {
		return nil, ErrSessionInPast
	}

	bookedCount, err := s.repo.CountActiveBookingsForSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if bookedCount >= session.Capacity {
		return nil, ErrSessionFull
	}

	hasBooking, err := s.repo.CustomerHasBookingForSession(ctx, req.CustomerID, sessionID)
	if err != nil {
		return nil, err
	}
	if hasBooking {
		return nil, ErrAlreadyBooked
	}

	booking, err := s.repo.CreateBooking(ctx, sessionID, req.CustomerID, req.TicketID)
	if err != nil {
		return nil, err
	}

	metrics.RecordBooking("session", "created")
	s.notifyConfirmation(ctx, req.CustomerID, session)

	return booking, nil
}

// BookOnce creates a one-off personal session and its booking in one
// step. The database is the arbiter of conflicts: the busy check here is
// the authoritative one, not the picker's advisory disabled-time hints.
func (s *service) BookOnce(ctx context.Context, req OnceRequest) (*schedule.Session, *Booking, error) {
	startAt, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, nil, ErrBadTime
	}
	startAt = startAt.UTC()

	if startAt.Before(time.Now()) {
		return nil, nil, ErrSessionInPast
	}

	endAt := startAt.Add(schedule.Duration(schedule.TrainingIndividual))

	busy, err := s.scheduleRepo.TrainerBusy(ctx, req.TrainerID, startAt, endAt)
	if err != nil {
		return nil, nil, err
	}
	if busy {
		return nil, nil, ErrTrainerBusy
	}

	session, err := s.scheduleRepo.CreateSession(ctx, &schedule.Session{
		TrainerID:    req.TrainerID,
		TrainingType: schedule.TrainingIndividual,
		StartAt:      startAt,
		EndAt:        endAt,
		Capacity:     1,
	})
	if err != nil {
		return nil, nil, err
	}

	booking, err := s.repo.CreateBooking(ctx, session.ID, req.CustomerID, req.TicketID)
	if err != nil {
		return nil, nil, err
	}

	metrics.RecordBooking("once", "created")
	s.notifyConfirmation(ctx, req.CustomerID, session)

	return session, booking, nil
}

func (s *service) RecordVisit(ctx context.Context, bookingID int, req VisitRequest) (*Visit, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	ticketID := req.TicketID
	if ticketID == nil {
		ticketID = booking.TicketID
	}

	charged := ticketID != nil
	if req.IsCharged != nil {
		charged = *req.IsCharged && ticketID != nil
	}

	now := time.Now()

	if charged {
		if err := s.ticketService.Debit(ctx, *ticketID, now); err != nil {
			return nil, err
		}
	}

	if err := s.repo.MarkVisited(ctx, bookingID); err != nil {
		if errors.Is(err, ErrBookingNotFoundOrAlreadyCancelled) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	visit, err := s.repo.CreateVisit(ctx, bookingID, ticketID, charged, now)
	if err != nil {
		return nil, err
	}

	metrics.RecordVisit(charged)
	return visit, nil
}

func (s *service) Cancel(ctx context.Context, bookingID int, canceledBy string) error {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return ErrBookingNotFound
	}

	if err := s.repo.CancelBooking(ctx, bookingID, canceledBy); err != nil {
		if errors.Is(err, ErrBookingNotFoundOrAlreadyCancelled) {
			return ErrBookingNotFound
		}
		return err
	}

	metrics.RecordBookingCancellation(canceledBy)
	s.notifyCancellation(ctx, booking)
	return nil
}

func (s *service) ListBySession(ctx context.Context, sessionID int) ([]BookingWithDetails, error) {
	return s.repo.GetBookingsBySession(ctx, sessionID)
}

func (s *service) ListVisits(ctx context.Context, page, limit int) ([]VisitWithDetails, int, error) {
	visits, err := s.repo.ListVisits(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountVisits(ctx)
	if err != nil {
		return nil, 0, err
	}

	return visits, total, nil
}

func (s *service) notifyConfirmation(ctx context.Context, customerID int, session *schedule.Session) {
	if s.emailService == nil {
		return
	}

	cust, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil || cust.Email == nil {
		return
	}

	if err := s.emailService.SendBookingConfirmation(ctx, *cust.Email, cust.Name, session.TrainingType, session.StartAt); err != nil {
		logger.Warn("failed to queue confirmation email", "customer_id", customerID, "error", err)
	}
}

func (s *service) notifyCancellation(ctx context.Context, booking *Booking) {
	if s.emailService == nil {
		return
	}

	session, err := s.scheduleRepo.GetSessionByID(ctx, booking.SessionID)
	if err != nil {
		return
	}

	cust, err := s.customerRepo.GetByID(ctx, booking.CustomerID)
	if err != nil || cust.Email == nil {
		return
	}

	if err := s.emailService.SendBookingCancellation(ctx, *cust.Email, cust.Name, session.TrainingType, session.StartAt); err != nil {
		logger.Warn("failed to queue cancellation email", "booking_id", booking.ID, "error", err)
	}
}
