package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/article"
	"library-backend/internal/domains/author"
	"library-backend/internal/domains/event"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

type ArticleHandler struct {
	service article.Service
	events  event.Service
}

func NewArticleHandler(service article.Service, events event.Service) *ArticleHandler {
	return &ArticleHandler{
		service: service,
		events:  events,
	}
}

// Create handles POST /artigos
func (h *ArticleHandler) Create(c *gin.Context) {
	var req article.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// List handles GET /artigos with an optional autor_id filter.
func (h *ArticleHandler) List(c *gin.Context) {
	var authorID *uuid.UUID
	if raw := c.Query("autor_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid autor_id")
			return
		}
		authorID = &id
	}

	articles, err := h.service.List(c.Request.Context(), authorID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, articles)
}

// GetByID handles GET /artigos/:id
func (h *ArticleHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid article id")
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, entity)
}

// Update handles PUT /artigos/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid article id")
		return
	}

	var req article.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// Delete handles DELETE /artigos/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid article id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "article deleted"})
}

// ByAuthor handles GET /autores/:slug/artigos
func (h *ArticleHandler) ByAuthor(c *gin.Context) {
	page, err := h.service.ArticlesByAuthorSlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, page)
}

// ByEventEdition handles GET /eventos/:slug/:ano/artigos
func (h *ArticleHandler) ByEventEdition(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("ano"))
	if err != nil {
		response.BadRequest(c, "invalid year")
		return
	}

	edition, err := h.events.EditionByEventSlugYear(c.Request.Context(), c.Param("slug"), year)
	if err != nil {
		h.handleError(c, err)
		return
	}

	articles, err := h.service.ListByEdition(c.Request.Context(), edition.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, articles)
}

func (h *ArticleHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid input", verrs)
	case errors.Is(err, article.ErrArticleNotFound):
		response.NotFound(c, "article not found")
	case errors.Is(err, article.ErrEditionNotFound), errors.Is(err, event.ErrEditionNotFound):
		response.NotFound(c, "edition not found")
	case errors.Is(err, event.ErrEventNotFound):
		response.NotFound(c, "event not found")
	case errors.Is(err, author.ErrAuthorNotFound):
		response.NotFound(c, "author not found")
	case errors.Is(err, article.ErrDuplicateTitle):
		response.Conflict(c, "article already exists in this edition")
	default:
		logger.Error("article handler: unexpected error", err)
		response.InternalServerError(c, "internal server error")
	}
}
