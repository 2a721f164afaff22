package booking

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dmssspace/na-predele--crm-sub000/internal/api"
	"github.com/dmssspace/na-predele--crm-sub000/internal/cache"
	"github.com/dmssspace/na-predele--crm-sub000/internal/ticket"
)

type Handler struct {
	service Service
	cache   *cache.Cache
}

func NewHandler(service Service, c *cache.Cache) *Handler {
	return &Handler{service: service, cache: c}
}

// BookSession godoc
// @Summary      Book a session for a customer
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                 true  "Session ID"
// @Param        request  body      BookSessionRequest  true  "Booking details"
// @Success      201      {object}  api.Response
// @Failure      400      {object}  api.Response
// @Failure      409      {object}  api.Response
// @Router       /schedule/sessions/{id}/book [post]
func (h *Handler) BookSession(c *gin.Context) {
	sessionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, "Invalid session ID")
		return
	}

	var req BookSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()

	booking, err := h.service.BookSession(ctx, sessionID, req)
	if err != nil {
		h.failBooking(c, err)
		return
	}

	// Одна инвалидация на группу, не на ключ.
	h.cache.Invalidate(ctx, cache.KeySessions, cache.KeyBookings, cache.KeyVisits)
	api.Created(c, booking)
}

// BookOnce godoc
// @Summary      Book a one-off personal session
// @Description  Creates a single personal session for the trainer and books the customer into it.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      OnceRequest  true  "One-off session details"
// @Success      201      {object}  api.Response
// @Failure      400      {object}  api.Response
// @Failure      409      {object}  api.Response
// @Router       /schedule/events/once [post]
func (h *Handler) BookOnce(c *gin.Context) {
	var req OnceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()

	session, booking, err := h.service.BookOnce(ctx, req)
	if err != nil {
		h.failBooking(c, err)
		return
	}

	h.cache.Invalidate(ctx, cache.KeySessions, cache.KeyBookings, cache.KeyVisits)
	api.Created(c, OnceResponse{SessionID: session.ID, Booking: booking})
}

// RecordVisit godoc
// @Summary      Mark a booking as visited
// @Description  Records the visit and, when charged, debits one session from the ticket.
// @Tags         visits
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int           true   "Booking ID"
// @Param        request  body      VisitRequest  false  "Visit options"
// @Success      201      {object}  api.Response
// @Failure      404      {object}  api.Response
// @Failure      409      {object}  api.Response
// @Router       /schedule/bookings/{id}/visit [post]
func (h *Handler) RecordVisit(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, "Invalid booking ID")
		return
	}

	// Тело запроса необязательно.
	var req VisitRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()

	visit, err := h.service.RecordVisit(ctx, bookingID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			api.Fail(c, http.StatusNotFound, api.CodeNotFound, "Booking not found")
		case errors.Is(err, ticket.ErrTicketExhausted):
			api.Fail(c, http.StatusConflict, api.CodeTicketExhausted, "No sessions left on ticket")
		case errors.Is(err, ticket.ErrTicketExpired):
			api.Fail(c, http.StatusConflict, api.CodeTicketExhausted, "Ticket validity period is over")
		case errors.Is(err, ticket.ErrTicketInactive):
			api.Fail(c, http.StatusConflict, api.CodeConflict, "Ticket is not active")
		case errors.Is(err, ticket.ErrTicketNotFound):
			api.Fail(c, http.StatusNotFound, api.CodeNotFound, "Ticket not found")
		default:
			api.FailInternal(c, "Failed to record visit")
		}
		return
	}

	h.cache.Invalidate(ctx, cache.KeyBookings, cache.KeyVisits)
	api.Created(c, visit)
}

// Cancel godoc
// @Summary      Cancel a booking
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int            true  "Booking ID"
// @Param        request  body      CancelRequest  true  "Who cancels"
// @Success      200      {object}  api.Response
// @Failure      404      {object}  api.Response
// @Router       /schedule/bookings/{id}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, "Invalid booking ID")
		return
	}

	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()

	if err := h.service.Cancel(ctx, bookingID, req.CanceledBy); err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			api.Fail(c, http.StatusNotFound, api.CodeNotFound, "Booking not found or already cancelled")
			return
		}
		api.FailInternal(c, "Failed to cancel booking")
		return
	}

	h.cache.Invalidate(ctx, cache.KeySessions, cache.KeyBookings, cache.KeyVisits)
	api.OK(c, gin.H{"canceled": true})
}

// ListBySession godoc
// @Summary      Bookings of a session
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Session ID"
// @Success      200  {object}  api.Response
// @Router       /schedule/sessions/{id}/bookings [get]
func (h *Handler) ListBySession(c *gin.Context) {
	sessionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, "Invalid session ID")
		return
	}

	ctx := c.Request.Context()
	cacheSub := "session:" + strconv.Itoa(sessionID)

	var bookings []BookingWithDetails
	if h.cache.Get(ctx, cache.KeyBookings, cacheSub, &bookings) {
		api.OK(c, bookings)
		return
	}

	bookings, err = h.service.ListBySession(ctx, sessionID)
	if err != nil {
		api.FailInternal(c, "Failed to fetch bookings")
		return
	}

	h.cache.Set(ctx, cache.KeyBookings, cacheSub, bookings)
	api.OK(c, bookings)
}

// ListVisits godoc
// @Summary      Visit journal
// @Tags         visits
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  api.Response
// @Router       /visits [get]
func (h *Handler) ListVisits(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	ctx := c.Request.Context()
	cacheSub := "page:" + strconv.Itoa(page) + ":" + strconv.Itoa(limit)

	var cached struct {
		Visits []VisitWithDetails `json:"visits"`
		Total  int                `json:"total"`
	}
	if h.cache.Get(ctx, cache.KeyVisits, cacheSub, &cached) {
		api.Paginated(c, cached.Visits, api.Pagination{Page: page, Limit: limit, Total: cached.Total})
		return
	}

	visits, total, err := h.service.ListVisits(ctx, page, limit)
	if err != nil {
		api.FailInternal(c, "Failed to fetch visits")
		return
	}

	cached.Visits = visits
	cached.Total = total
	h.cache.Set(ctx, cache.KeyVisits, cacheSub, cached)
	api.Paginated(c, visits, api.Pagination{Page: page, Limit: limit, Total: total})
}

// failBooking maps booking errors onto the envelope taxonomy shared by
// both submission endpoints.
func (h *Handler) failBooking(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTrainerBusy):
		api.Fail(c, http.StatusConflict, api.CodeBusy, "Trainer is busy at this time")
	case errors.Is(err, ErrBadTime):
		api.Fail(c, http.StatusBadRequest, api.CodeBadTime, "Invalid time format")
	case errors.Is(err, ErrSessionNotFound):
		api.Fail(c, http.StatusNotFound, api.CodeNotFound, "Session not found")
	case errors.Is(err, ErrSessionInPast):
		api.Fail(c, http.StatusBadRequest, api.CodeBadTime, "Cannot book a session in the past")
	case errors.Is(err, ErrSessionFull):
		api.Fail(c, http.StatusConflict, api.CodeConflict, "Session is full")
	case errors.Is(err, ErrAlreadyBooked):
		api.Fail(c, http.StatusConflict, api.CodeConflict, "Customer already booked for this session")
	default:
		api.FailInternal(c, "Failed to create booking")
	}
}
