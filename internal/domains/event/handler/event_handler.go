package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/event"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

type EventHandler struct {
	service event.Service
}

func NewEventHandler(service event.Service) *EventHandler {
	return &EventHandler{service: service}
}

// CreateEvent handles POST /eventos
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req event.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	created, err := h.service.CreateEvent(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// ListEvents handles GET /eventos
func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.service.ListEvents(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, events)
}

// GetEventByID handles GET /eventos/by-id/:id
func (h *EventHandler) GetEventByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	entity, err := h.service.GetEventByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, entity)
}

// GetEventBySlug handles GET /eventos/:slug
func (h *EventHandler) GetEventBySlug(c *gin.Context) {
	entity, err := h.service.GetEventBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, entity)
}

// UpdateEvent handles PUT /eventos/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	var req event.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	updated, err := h.service.UpdateEvent(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// DeleteEvent handles DELETE /eventos/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	if err := h.service.DeleteEvent(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "event deleted"})
}

// CreateEdition handles POST /edicoes
func (h *EventHandler) CreateEdition(c *gin.Context) {
	var req event.CreateEditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	created, err := h.service.CreateEdition(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// ListEditions handles GET /edicoes
func (h *EventHandler) ListEditions(c *gin.Context) {
	editions, err := h.service.ListEditions(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, editions)
}

// UpdateEdition handles PUT /edicoes/:id
func (h *EventHandler) UpdateEdition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid edition id")
		return
	}

	var req event.UpdateEditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	updated, err := h.service.UpdateEdition(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// DeleteEdition handles DELETE /edicoes/:id
func (h *EventHandler) DeleteEdition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid edition id")
		return
	}

	if err := h.service.DeleteEdition(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "edition deleted"})
}

// EditionsByEvent handles GET /eventos/:slug/edicoes
func (h *EventHandler) EditionsByEvent(c *gin.Context) {
	editions, err := h.service.EditionsByEventSlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, editions)
}

// EditionByYear handles GET /eventos/:slug/:ano
func (h *EventHandler) EditionByYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("ano"))
	if err != nil {
		response.BadRequest(c, "invalid year")
		return
	}

	edition, err := h.service.EditionByEventSlugYear(c.Request.Context(), c.Param("slug"), year)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, edition)
}

func (h *EventHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid input", verrs)
	case errors.Is(err, event.ErrEventNotFound):
		response.NotFound(c, "event not found")
	case errors.Is(err, event.ErrEditionNotFound):
		response.NotFound(c, "edition not found")
	case errors.Is(err, event.ErrDuplicateSlug):
		// The original API reports sigla collisions as 400.
		response.BadRequest(c, "event slug already exists")
	case errors.Is(err, event.ErrDuplicateEdition):
		response.BadRequest(c, "edition already exists for this event and year")
	case errors.Is(err, event.ErrEventHasArticles):
		response.BadRequest(c, "event has published articles and cannot be deleted")
	default:
		logger.Error("event handler: unexpected error", err)
		response.InternalServerError(c, "internal server error")
	}
}
