package trainer

import (
	"net/http"
	"strconv"

	"github.com/dmssspace/na-predele--crm-sub000/internal/api"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo *Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// Create godoc
// @Summary      Register trainer
// @Tags         trainers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateRequest  true  "Trainer data"
// @Success      201      {object}  api.Response
// @Failure      400      {object}  api.Response
// @Router       /trainers [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, err.Error())
		return
	}

	created, err := h.repo.Create(c.Request.Context(), &Trainer{
		Name:      req.Name,
		Phone:     req.Phone,
		Specialty: req.Specialty,
		PhotoURL:  req.PhotoURL,
	})
	if err != nil {
		api.FailInternal(c, "Failed to create trainer")
		return
	}

	api.Created(c, created)
}

// List godoc
// @Summary      Active trainers
// @Tags         trainers
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  api.Response
// @Router       /trainers [get]
func (h *Handler) List(c *gin.Context) {
	trainers, err := h.repo.ListActive(c.Request.Context())
	if err != nil {
		api.FailInternal(c, "Failed to fetch trainers")
		return
	}

	api.OK(c, trainers)
}

// Deactivate godoc
// @Summary      Deactivate trainer
// @Tags         trainers
// @Security     BearerAuth
// @Produce      json
// @Param        trainerID  path      int  true  "Trainer ID"
// @Success      200        {object}  api.Response
// @Router       /trainers/{trainerID}/deactivate [post]
func (h *Handler) Deactivate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, "Invalid trainer ID")
		return
	}

	if err := h.repo.Deactivate(c.Request.Context(), id); err != nil {
		api.FailInternal(c, "Failed to deactivate trainer")
		return
	}

	api.OK(c, gin.H{"message": "Trainer deactivated"})
}
