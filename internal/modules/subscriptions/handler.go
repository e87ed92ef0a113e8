package subscriptions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recipebook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the follow endpoints. All of them require a
// logged-in principal.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/users/:id/subscribe", h.Subscribe)
	protected.DELETE("/users/:id/subscribe", h.Unsubscribe)
	protected.GET("/users/subscriptions", h.Feed)
}

func (h *Handler) Subscribe(c *gin.Context) {
	authorID, ok := pathID(c)
	if !ok {
		return
	}

	entry, err := h.service.Subscribe(c.Request.Context(), principalID(c), authorID, recipesLimit(c))
	if err != nil {
		h.writeError(c, err, "Failed to subscribe")
		return
	}
	response.Success(c, http.StatusCreated, entry)
}

func (h *Handler) Unsubscribe(c *gin.Context) {
	authorID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Unsubscribe(c.Request.Context(), principalID(c), authorID); err != nil {
		h.writeError(c, err, "Failed to unsubscribe")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Feed(c *gin.Context) {
	limit, offset := pagination(c)

	entries, total, err := h.service.Feed(c.Request.Context(), principalID(c), limit, offset, recipesLimit(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list subscriptions")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"count":   total,
		"results": entries,
	})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrSelfSubscribe),
		errors.Is(err, ErrAlreadySubscribed),
		errors.Is(err, ErrNotSubscribed):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user id")
		return 0, false
	}
	return id, true
}

func principalID(c *gin.Context) int64 {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

func recipesLimit(c *gin.Context) int {
	if v, err := strconv.Atoi(c.Query("recipes_limit")); err == nil && v > 0 {
		return v
	}
	return 0
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = 6
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	page := 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	return limit, (page - 1) * limit
}
