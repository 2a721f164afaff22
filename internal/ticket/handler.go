package ticket

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmssspace/na-predele--crm-sub000/internal/api"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{service: NewService(NewRepository(db))}
}

// Issue godoc
// @Summary      Issue ticket
// @Description  Issues a session pack or a time-bounded pass to a customer.
// @Tags         tickets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      IssueRequest  true  "Ticket parameters"
// @Success      201      {object}  api.Response
// @Failure      400      {object}  api.Response
// @Router       /tickets [post]
func (h *Handler) Issue(c *gin.Context) {
	var req IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, err.Error())
		return
	}

	t, err := h.service.Issue(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrBadIssueRequest) {
			api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, "session_pack requires sessions_total")
			return
		}
		api.FailInternal(c, "Failed to issue ticket")
		return
	}

	api.Created(c, t)
}

// ListByCustomer godoc
// @Summary      Customer's tickets
// @Tags         tickets
// @Security     BearerAuth
// @Produce      json
// @Param        customerID  path      int  true  "Customer ID"
// @Success      200         {object}  api.Response
// @Router       /customers/{customerID}/tickets [get]
func (h *Handler) ListByCustomer(c *gin.Context) {
	customerID, err := strconv.Atoi(c.Param("customerID"))
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, "Invalid customer ID")
		return
	}

	tickets, err := h.service.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		api.FailInternal(c, "Failed to fetch tickets")
		return
	}

	api.OK(c, tickets)
}

// Cancel godoc
// @Summary      Cancel ticket
// @Tags         tickets
// @Security     BearerAuth
// @Produce      json
// @Param        ticketID  path      int  true  "Ticket ID"
// @Success      200       {object}  api.Response
// @Failure      404       {object}  api.Response
// @Failure      409       {object}  api.Response
// @Router       /tickets/{ticketID}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	ticketID, err := strconv.Atoi(c.Param("ticketID"))
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, "Invalid ticket ID")
		return
	}

	if err := h.service.Cancel(c.Request.Context(), ticketID); err != nil {
		switch {
		case errors.Is(err, ErrTicketNotFound):
			api.Fail(c, http.StatusNotFound, api.CodeNotFound, "Ticket not found")
		case errors.Is(err, ErrTicketInactive):
			api.Fail(c, http.StatusConflict, api.CodeConflict, "Ticket is not active")
		default:
			api.FailInternal(c, "Failed to cancel ticket")
		}
		return
	}

	api.OK(c, gin.H{"message": "Ticket cancelled"})
}
