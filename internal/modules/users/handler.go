package users

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recipebook/internal/pkg/images"
	jwtsvc "recipebook/internal/pkg/jwt"
	"recipebook/internal/pkg/response"
	"recipebook/internal/pkg/validator"
)

type Handler struct {
	service *Service
	jwt     *jwtsvc.Service
}

func NewHandler(service *Service, jwt *jwtsvc.Service) *Handler {
	return &Handler{service: service, jwt: jwt}
}

// RegisterRoutes wires the account endpoints. The public group carries
// OptionalAuth, the protected group carries RequireAuth.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/users", h.Register)
	public.GET("/users", h.List)
	public.GET("/users/:id", h.GetProfile)
	public.POST("/auth/token", h.Token)

	protected.POST("/users/set_password", h.SetPassword)
	protected.PUT("/users/me/avatar", h.UpdateAvatar)
	protected.DELETE("/users/me/avatar", h.DeleteAvatar)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	profile, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidUsername), errors.Is(err, ErrUsernameTaken):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), gin.H{"username": err.Error()})
		case errors.Is(err, ErrEmailTaken):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), gin.H{"email": err.Error()})
		case errors.Is(err, ErrUserExists):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register user")
		}
		return
	}

	response.Success(c, http.StatusCreated, profile)
}

func (h *Handler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	user, err := h.service.Authenticate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusBadRequest, "INVALID_CREDENTIALS", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to issue token")
		return
	}

	token, err := h.jwt.GenerateToken(user.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to issue token")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"auth_token": token})
}

func (h *Handler) List(c *gin.Context) {
	limit, offset := pagination(c)

	profiles, total, err := h.service.List(c.Request.Context(), principalID(c), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list users")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"count":   total,
		"results": profiles,
	})
}

// GetProfile serves both /users/{id} and the /users/me alias. The alias
// requires authentication, numeric ids are public.
func (h *Handler) GetProfile(c *gin.Context) {
	principal := principalID(c)

	raw := c.Param("id")
	var targetID int64
	if raw == "me" {
		if principal == 0 {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}
		targetID = principal
	} else {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user id")
			return
		}
		targetID = id
	}

	profile, err := h.service.GetProfile(c.Request.Context(), targetID, principal)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, profile)
}

func (h *Handler) SetPassword(c *gin.Context) {
	var req SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	err := h.service.SetPassword(c.Request.Context(), principalID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrWrongPassword):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), gin.H{"current_password": err.Error()})
		case errors.Is(err, ErrSamePassword):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), gin.H{"new_password": err.Error()})
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to change password")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) UpdateAvatar(c *gin.Context) {
	var req AvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	url, err := h.service.UpdateAvatar(c.Request.Context(), principalID(c), req.Avatar)
	if err != nil {
		switch {
		case errors.Is(err, images.ErrInvalidImage), errors.Is(err, images.ErrUnsupportedFormat), errors.Is(err, images.ErrImageTooLarge):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), gin.H{"avatar": err.Error()})
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update avatar")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"avatar": url})
}

func (h *Handler) DeleteAvatar(c *gin.Context) {
	if err := h.service.DeleteAvatar(c.Request.Context(), principalID(c)); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete avatar")
		return
	}
	c.Status(http.StatusNoContent)
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
