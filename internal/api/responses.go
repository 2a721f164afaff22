package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Error codes carried in the response envelope. Clients key user-facing
// messages off these, not off the message text.
const (
	CodeBadRequest      = "bad_request"
	CodeBadTime         = "bad_time"
	CodeBusy            = "busy"
	CodeConflict        = "conflict"
	CodeForbidden       = "forbidden"
	CodeInternal        = "internal"
	CodeNotFound        = "not_found"
	CodeTicketExhausted = "ticket_exhausted"
	CodeUnauthorized    = "unauthorized"
)

// Response is the envelope every endpoint returns:
// {data, status, error?, pagination?}.
type Response struct {
	Data       interface{} `json:"data"`
	Status     int         `json:"status"`
	Error      *Error      `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Data: data, Status: http.StatusOK})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Data: data, Status: http.StatusCreated})
}

func Paginated(c *gin.Context, data interface{}, p Pagination) {
	c.JSON(http.StatusOK, Response{Data: data, Status: http.StatusOK, Pagination: &p})
}

func Fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, Response{Status: status, Error: &Error{Code: code, Message: message}})
}

func FailInternal(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, CodeInternal, message)
}

// FailBind maps a binding error to the envelope. A failed "clock" rule
// reports bad_time so pickers show the right message.
func FailBind(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "clock" {
				Fail(c, http.StatusBadRequest, CodeBadTime, "Invalid time format")
				return
			}
		}
	}
	Fail(c, http.StatusBadRequest, CodeBadRequest, err.Error())
}
