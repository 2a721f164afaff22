package schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmssspace/na-predele--crm-sub000/internal/api"
	"github.com/dmssspace/na-predele--crm-sub000/internal/availability"
	"github.com/dmssspace/na-predele--crm-sub000/internal/cache"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service     Service
	cache       *cache.Cache
	horizonDays int
}

func NewHandler(db *sqlx.DB, c *cache.Cache, horizonDays int) *Handler {
	return &Handler{
		service:     NewService(NewRepository(db), availability.NewRepository(db)),
		cache:       c,
		horizonDays: horizonDays,
	}
}

// GetSchedule godoc
// @Summary      Calendar view
// @Description  Returns sessions grouped by day for the requested range.
// @Tags         schedule
// @Security     BearerAuth
// @Produce      json
// @Param        from  query     string  true  "Range start (RFC3339)"
// @Param        to    query     string  true  "Range end (RFC3339)"
// @Success      200   {object}  api.Response
// @Failure      400   {object}  api.Response
// @Router       /schedule [get]
func (h *Handler) GetSchedule(c *gin.Context) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, "from and to query params are required")
		return
	}

	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadTime, "invalid from format, use RFC3339")
		return
	}
	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadTime, "invalid to format, use RFC3339")
		return
	}
	if !to.After(from) {
		api.Fail(c, http.StatusBadRequest, api.CodeBadTime, "to must be after from")
		return
	}

	ctx := c.Request.Context()
	cacheSub := fromStr + ":" + toStr

	var days []ScheduleDay
	if h.cache.Get(ctx, cache.KeySessions, cacheSub, &days) {
		api.OK(c, days)
		return
	}

	days, err = h.service.GetSchedule(ctx, from, to)
	if err != nil {
		api.FailInternal(c, "Failed to fetch schedule")
		return
	}

	h.cache.Set(ctx, cache.KeySessions, cacheSub, days)
	api.OK(c, days)
}

// CreateRecurringEvent godoc
// @Summary      Create recurring event
// @Description  Creates a weekly event template and materializes its upcoming sessions.
// @Tags         schedule
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateRecurringEventRequest  true  "Event template"
// @Success      201      {object}  api.Response
// @Failure      400      {object}  api.Response
// @Router       /schedule/events [post]
func (h *Handler) CreateRecurringEvent(c *gin.Context) {
	var req CreateRecurringEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.FailBind(c, err)
		return
	}

	ctx := c.Request.Context()

	event, err := h.service.CreateRecurringEvent(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBadTime):
			api.Fail(c, http.StatusBadRequest, api.CodeBadTime, "Invalid time format")
		case errors.Is(err, ErrOutsideHours):
			api.Fail(c, http.StatusBadRequest, api.CodeBadTime, "Time is outside club hours")
		default:
			api.FailInternal(c, "Failed to create event")
		}
		return
	}

	if _, err := h.service.Materialize(ctx, time.Now(), h.horizonDays); err != nil {
		// Event is stored; occurrences will be backfilled by the nightly run.
		api.Created(c, event)
		return
	}

	h.cache.Invalidate(ctx, cache.KeySessions)
	api.Created(c, event)
}
