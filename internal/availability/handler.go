package availability

import (
	"net/http"
	"time"

	"github.com/dmssspace/na-predele--crm-sub000/internal/api"
	"github.com/dmssspace/na-predele--crm-sub000/internal/cache"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo  *Repository
	cache *cache.Cache
}

func NewHandler(db *sqlx.DB, c *cache.Cache) *Handler {
	return &Handler{
		repo:  NewRepository(db),
		cache: c,
	}
}

// List godoc
// @Summary      Weekly availability
// @Description  Returns the club's per-weekday operating hours. Weekday 0 is Sunday.
// @Tags         schedule
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  api.Response
// @Router       /schedule/availability [get]
func (h *Handler) List(c *gin.Context) {
	list, err := h.listCached(c)
	if err != nil {
		api.FailInternal(c, "Failed to fetch availability")
		return
	}

	api.OK(c, list)
}

// Upsert godoc
// @Summary      Update one weekday's hours
// @Tags         schedule
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      UpsertRequest  true  "Weekday hours"
// @Success      200      {object}  api.Response
// @Failure      400      {object}  api.Response
// @Router       /schedule/availability [put]
func (h *Handler) Upsert(c *gin.Context) {
	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.FailBind(c, err)
		return
	}

	start, err := ParseClock(req.StartTime)
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadTime, "Invalid time format")
		return
	}
	end, err := ParseClock(req.EndTime)
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadTime, "Invalid time format")
		return
	}
	if !start.Before(end) {
		api.Fail(c, http.StatusBadRequest, api.CodeBadTime, "start_time must be before end_time")
		return
	}

	a, err := h.repo.Upsert(c.Request.Context(), req.Weekday, start.String(), end.String())
	if err != nil {
		api.FailInternal(c, "Failed to update availability")
		return
	}

	h.cache.Invalidate(c.Request.Context(), cache.KeyAvailability)

	api.OK(c, a)
}

// Disabled godoc
// @Summary      Disabled time selections for a date
// @Description  Drives date/time pickers: which hours, minutes per hour and seconds cannot be selected on the given date. Without a date nothing is disabled.
// @Tags         schedule
// @Security     BearerAuth
// @Produce      json
// @Param        date  query     string  false  "Candidate date (YYYY-MM-DD)"
// @Success      200   {object}  api.Response
// @Failure      400   {object}  api.Response
// @Router       /schedule/availability/disabled [get]
func (h *Handler) Disabled(c *gin.Context) {
	list, err := h.listCached(c)
	if err != nil {
		api.FailInternal(c, "Failed to fetch availability")
		return
	}

	calc := NewCalculator(list)

	dateStr := c.Query("date")
	if dateStr == "" {
		api.OK(c, buildDisabledResponse("", calc.Inert()))
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadTime, "Invalid date format, use YYYY-MM-DD")
		return
	}

	api.OK(c, buildDisabledResponse(dateStr, calc.ForDate(date)))
}

func buildDisabledResponse(date string, d Disabled) DisabledResponse {
	minutes := make(map[int][]int, 24)
	for h := 0; h < 24; h++ {
		minutes[h] = d.Minutes(h)
	}

	return DisabledResponse{
		Date:    date,
		Hours:   d.Hours(),
		Minutes: minutes,
		Seconds: d.Seconds(),
	}
}

func (h *Handler) listCached(c *gin.Context) ([]WeekdayAvailability, error) {
	ctx := c.Request.Context()

	var list []WeekdayAvailability
	if h.cache.Get(ctx, cache.KeyAvailability, "week", &list) {
		return list, nil
	}

	list, err := h.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	h.cache.Set(ctx, cache.KeyAvailability, "week", list)
	return list, nil
}
