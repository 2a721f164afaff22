package blog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmssspace/na-predele--crm-sub000/internal/api"
	"github.com/dmssspace/na-predele--crm-sub000/internal/auth"

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
// @Summary      Create blog post
// @Tags         blog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      PostRequest  true  "Post data"
// @Success      201      {object}  api.Response
// @Router       /posts [post]
func (h *Handler) Create(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, err.Error())
		return
	}

	post, err := h.repo.Create(c.Request.Context(), req)
	if err != nil {
		api.FailInternal(c, "Failed to create post")
		return
	}

	api.Created(c, post)
}

// Get godoc
// @Summary      Blog post by ID
// @Tags         blog
// @Produce      json
// @Param        postID  path      int  true  "Post ID"
// @Success      200     {object}  api.Response
// @Failure      404     {object}  api.Response
// @Router       /posts/{postID} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("postID"))
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, "Invalid post ID")
		return
	}

	post, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, http.StatusNotFound, api.CodeNotFound, "Post not found")
		return
	}

	// Черновики видны только персоналу
	if !post.Published {
		if _, authed := auth.GetRole(c); !authed {
			api.Fail(c, http.StatusNotFound, api.CodeNotFound, "Post not found")
			return
		}
	}

	api.OK(c, post)
}

// List godoc
// @Summary      Blog posts
// @Description  Public listing shows published posts; staff see drafts too.
// @Tags         blog
// @Produce      json
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  api.Response
// @Router       /posts [get]
func (h *Handler) List(c *gin.Context) {
	page, limit := pagination(c)
	_, staff := auth.GetRole(c)
	publishedOnly := !staff

	ctx := c.Request.Context()

	posts, err := h.repo.List(ctx, publishedOnly, limit, (page-1)*limit)
	if err != nil {
		api.FailInternal(c, "Failed to fetch posts")
		return
	}

	total, err := h.repo.Count(ctx, publishedOnly)
	if err != nil {
		api.FailInternal(c, "Failed to fetch posts")
		return
	}

	api.Paginated(c, posts, api.Pagination{Page: page, Limit: limit, Total: total})
}

// Update godoc
// @Summary      Update blog post
// @Tags         blog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        postID   path      int          true  "Post ID"
// @Param        request  body      PostRequest  true  "Post data"
// @Success      200      {object}  api.Response
// @Failure      404      {object}  api.Response
// @Router       /posts/{postID} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("postID"))
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, "Invalid post ID")
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, err.Error())
		return
	}

	post, err := h.repo.Update(c.Request.Context(), id, req)
	if err != nil {
		api.Fail(c, http.StatusNotFound, api.CodeNotFound, "Post not found")
		return
	}

	api.OK(c, post)
}

// Delete godoc
// @Summary      Delete blog post
// @Tags         blog
// @Security     BearerAuth
// @Produce      json
// @Param        postID  path      int  true  "Post ID"
// @Success      200     {object}  api.Response
// @Failure      404     {object}  api.Response
// @Router       /posts/{postID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("postID"))
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, "Invalid post ID")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrPostNotFound) {
			api.Fail(c, http.StatusNotFound, api.CodeNotFound, "Post not found")
			return
		}
		api.FailInternal(c, "Failed to delete post")
		return
	}

	api.OK(c, gin.H{"deleted": true})
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
