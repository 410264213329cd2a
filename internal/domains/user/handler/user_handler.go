package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/user"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// Register handles POST /api/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	created, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// Login handles POST /api/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	auth, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, auth)
}

// Me handles GET /api/auth/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, entity)
}

// GetPreferences handles GET /usuarios/:id/notificacoes
func (h *UserHandler) GetPreferences(c *gin.Context) {
	id, ok := h.authorizedTarget(c)
	if !ok {
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"receber_notificacoes": entity.ReceiveNotifications})
}

// UpdatePreferences handles PUT /usuarios/:id/notificacoes
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	id, ok := h.authorizedTarget(c)
	if !ok {
		return
	}

	var req user.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	updated, err := h.service.UpdatePreferences(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"receber_notificacoes": updated.ReceiveNotifications})
}

// authorizedTarget parses the :id param and ensures the caller is either the
// target user or an admin.
func (h *UserHandler) authorizedTarget(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return uuid.Nil, false
	}

	callerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return uuid.Nil, false
	}
	if callerID != id && c.GetString("role") != user.RoleAdmin {
		response.Forbidden(c, "cannot manage another user's preferences")
		return uuid.Nil, false
	}

	return id, true
}

func (h *UserHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid input", verrs)
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, "user not found")
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.Conflict(c, "email already registered")
	case errors.Is(err, user.ErrInvalidCredentials):
		response.Unauthorized(c, "invalid email or password")
	default:
		logger.Error("user handler: unexpected error", err)
		response.InternalServerError(c, "internal server error")
	}
}
