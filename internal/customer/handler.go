package customer

import (
	"net/http"
	"strconv"

	"github.com/dmssspace/na-predele--crm-sub000/internal/api"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

const defaultLimit = 20

type Handler struct {
	repo *Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// Create godoc
// @Summary      Register customer
// @Tags         customers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateRequest  true  "Customer data"
// @Success      201      {object}  api.Response
// @Failure      400      {object}  api.Response
// @Router       /customers [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, err.Error())
		return
	}

	created, err := h.repo.Create(c.Request.Context(), &Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Comment: req.Comment,
	})
	if err != nil {
		api.FailInternal(c, "Failed to create customer")
		return
	}

	api.Created(c, created)
}

// Get godoc
// @Summary      Customer card
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        customerID  path      int  true  "Customer ID"
// @Success      200         {object}  api.Response
// @Failure      404         {object}  api.Response
// @Router       /customers/{customerID} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("customerID"))
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, "Invalid customer ID")
		return
	}

	cust, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, http.StatusNotFound, api.CodeNotFound, "Customer not found")
		return
	}

	api.OK(c, cust)
}

// Update godoc
// @Summary      Update customer
// @Tags         customers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        customerID  path      int            true  "Customer ID"
// @Param        request     body      UpdateRequest  true  "Customer data"
// @Success      200         {object}  api.Response
// @Failure      404         {object}  api.Response
// @Router       /customers/{customerID} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("customerID"))
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, "Invalid customer ID")
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, err.Error())
		return
	}

	updated, err := h.repo.Update(c.Request.Context(), id, &Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Comment: req.Comment,
	})
	if err != nil {
		api.Fail(c, http.StatusNotFound, api.CodeNotFound, "Customer not found")
		return
	}

	api.OK(c, updated)
}

// List godoc
// @Summary      Search customers
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        q      query     string  false  "Name or phone substring"
// @Param        page   query     int     false  "Page (1-based)"
// @Param        limit  query     int     false  "Page size"
// @Success      200    {object}  api.Response
// @Router       /customers [get]
func (h *Handler) List(c *gin.Context) {
	q := c.Query("q")
	page, limit := pagination(c)

	ctx := c.Request.Context()

	customers, err := h.repo.Search(ctx, q, limit, (page-1)*limit)
	if err != nil {
		api.FailInternal(c, "Failed to search customers")
		return
	}

	total, err := h.repo.Count(ctx, q)
	if err != nil {
		api.FailInternal(c, "Failed to search customers")
		return
	}

	api.Paginated(c, customers, api.Pagination{Page: page, Limit: limit, Total: total})
}

func pagination(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 || limit > 100 {
		limit = defaultLimit
	}

	return page, limit
}
