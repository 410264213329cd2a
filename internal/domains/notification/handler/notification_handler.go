package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/config"
	"library-backend/internal/domains/author"
	"library-backend/internal/domains/notification"
	"library-backend/internal/domains/user"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

type NotificationHandler struct {
	service  notification.Service
	emailCfg config.EmailConfig
}

func NewNotificationHandler(service notification.Service, emailCfg config.EmailConfig) *NotificationHandler {
	return &NotificationHandler{
		service:  service,
		emailCfg: emailCfg,
	}
}

// FollowAuthor handles POST /usuarios/:id/seguir-autor/:author_id
func (h *NotificationHandler) FollowAuthor(c *gin.Context) {
	userID, authorID, ok := h.followTarget(c)
	if !ok {
		return
	}

	if err := h.service.FollowAuthor(c.Request.Context(), userID, authorID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": "author followed"})
}

// UnfollowAuthor handles DELETE /usuarios/:id/seguir-autor/:author_id
func (h *NotificationHandler) UnfollowAuthor(c *gin.Context) {
	userID, authorID, ok := h.followTarget(c)
	if !ok {
		return
	}

	if err := h.service.UnfollowAuthor(c.Request.Context(), userID, authorID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "author unfollowed"})
}

// FollowedAuthors handles GET /autores-seguidos for the authenticated user.
func (h *NotificationHandler) FollowedAuthors(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	authors, err := h.service.FollowedAuthors(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, authors)
}

// SendNotifications handles POST /admin/enviar-notificacoes/:id
func (h *NotificationHandler) SendNotifications(c *gin.Context) {
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid article id")
		return
	}

	h.service.NotifyArticlePublished(c.Request.Context(), articleID)
	response.Success(c, http.StatusOK, gin.H{"message": "notification fan-out executed"})
}

// EmailLogs handles GET /admin/email-logs
func (h *NotificationHandler) EmailLogs(c *gin.Context) {
	logs, err := h.service.RecentEmailLogs(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, logs)
}

// TestEmail handles POST /admin/test-email, echoing the SMTP configuration
// state so an operator can verify the wiring without digging through env vars.
func (h *NotificationHandler) TestEmail(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"smtp_host":           h.emailCfg.SMTPHost,
		"smtp_port":           h.emailCfg.SMTPPort,
		"from":                h.emailCfg.From,
		"password_configured": h.emailCfg.Password != "",
	})
}

// followTarget parses both path ids and ensures the caller manages their own
// follows (admins may manage anyone's).
func (h *NotificationHandler) followTarget(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return uuid.Nil, uuid.Nil, false
	}
	authorID, err := uuid.Parse(c.Param("author_id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return uuid.Nil, uuid.Nil, false
	}

	callerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return uuid.Nil, uuid.Nil, false
	}
	if callerID != userID && c.GetString("role") != user.RoleAdmin {
		response.Forbidden(c, "cannot manage another user's follows")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, authorID, true
}

func (h *NotificationHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, notification.ErrFollowNotFound):
		response.NotFound(c, "follow not found")
	case errors.Is(err, notification.ErrAlreadyFollowing):
		response.BadRequest(c, "already following this author")
	case errors.Is(err, author.ErrAuthorNotFound):
		response.NotFound(c, "author not found")
	default:
		logger.Error("notification handler: unexpected error", err)
		response.InternalServerError(c, "internal server error")
	}
}
