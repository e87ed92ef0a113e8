package recipes

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recipebook/internal/pkg/images"
	"recipebook/internal/pkg/response"
	"recipebook/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/recipes", h.List)
	public.GET("/recipes/:id", h.Get)
	public.GET("/recipes/:id/get-link", h.GetLink)

	protected.POST("/recipes", h.Create)
	protected.PATCH("/recipes/:id", h.Update)
	protected.DELETE("/recipes/:id", h.Delete)
	protected.POST("/recipes/:id/favorite", h.AddFavorite)
	protected.DELETE("/recipes/:id/favorite", h.RemoveFavorite)
	protected.POST("/recipes/:id/shopping_cart", h.AddToCart)
	protected.DELETE("/recipes/:id/shopping_cart", h.RemoveFromCart)
	protected.GET("/recipes/download_shopping_cart", h.DownloadShoppingCart)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), principalID(c), req)
	if err != nil {
		h.writeError(c, err, "Failed to create recipe")
		return
	}
	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), principalID(c), id, req)
	if err != nil {
		h.writeError(c, err, "Failed to update recipe")
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), principalID(c), id); err != nil {
		h.writeError(c, err, "Failed to delete recipe")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), id, principalID(c))
	if err != nil {
		h.writeError(c, err, "Failed to load recipe")
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) List(c *gin.Context) {
	limit, offset := pagination(c)
	q := ListQuery{
		Limit:          limit,
		Offset:         offset,
		Favorited:      c.Query("is_favorited") == "1",
		InShoppingCart: c.Query("is_in_shopping_cart") == "1",
	}
	if v, err := strconv.ParseInt(c.Query("author"), 10, 64); err == nil {
		q.AuthorID = v
	}
	if tags := c.QueryArray("tags"); len(tags) > 0 {
		q.TagSlugs = tags
	}

	results, total, err := h.service.List(c.Request.Context(), principalID(c), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list recipes")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"count":   total,
		"results": results,
	})
}

// GetLink returns a stable permalink for sharing a recipe.
func (h *Handler) GetLink(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	if _, err := h.service.Get(c.Request.Context(), id, 0); err != nil {
		h.writeError(c, err, "Failed to load recipe")
		return
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	link := fmt.Sprintf("%s://%s/api/recipes/%d", scheme, c.Request.Host, id)
	response.Success(c, http.StatusOK, gin.H{"short-link": link})
}

func (h *Handler) AddFavorite(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	card, err := h.service.AddFavorite(c.Request.Context(), principalID(c), id)
	if err != nil {
		h.writeError(c, err, "Failed to add favorite")
		return
	}
	response.Success(c, http.StatusCreated, card)
}

func (h *Handler) RemoveFavorite(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := h.service.RemoveFavorite(c.Request.Context(), principalID(c), id); err != nil {
		h.writeError(c, err, "Failed to remove favorite")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) AddToCart(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	card, err := h.service.AddToCart(c.Request.Context(), principalID(c), id)
	if err != nil {
		h.writeError(c, err, "Failed to add to shopping cart")
		return
	}
	response.Success(c, http.StatusCreated, card)
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := h.service.RemoveFromCart(c.Request.Context(), principalID(c), id); err != nil {
		h.writeError(c, err, "Failed to remove from shopping cart")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DownloadShoppingCart(c *gin.Context) {
	text, err := h.service.ShoppingListText(c.Request.Context(), principalID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build shopping list")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

// writeError maps service sentinels onto HTTP statuses. Validation
// sentinels carry the offending field name in the details payload.
func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrRecipeNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrNotAuthor):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrTagsRequired),
		errors.Is(err, ErrDuplicateTags),
		errors.Is(err, ErrUnknownTag):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), gin.H{"tags": err.Error()})
	case errors.Is(err, ErrIngredientsRequired),
		errors.Is(err, ErrDuplicateIngredient),
		errors.Is(err, ErrUnknownIngredient),
		errors.Is(err, ErrAmountTooSmall):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), gin.H{"ingredients": err.Error()})
	case errors.Is(err, ErrCookingTimeTooSmall):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), gin.H{"cooking_time": err.Error()})
	case errors.Is(err, images.ErrInvalidImage),
		errors.Is(err, images.ErrUnsupportedFormat),
		errors.Is(err, images.ErrImageTooLarge):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), gin.H{"image": err.Error()})
	case errors.Is(err, ErrAlreadyFavorited),
		errors.Is(err, ErrNotFavorited),
		errors.Is(err, ErrFavoritesEmpty),
		errors.Is(err, ErrAlreadyInCart),
		errors.Is(err, ErrNotInCart),
		errors.Is(err, ErrCartEmpty):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func recipeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid recipe id")
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
