package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/author"
	"library-backend/internal/shared/response"
)

type stubAuthorService struct {
	bySlug map[string]*author.Author
	err    error
}

func (s *stubAuthorService) Create(_ context.Context, req author.CreateAuthorRequest) (*author.Author, error) {
	if s.err != nil {
		return nil, s.err
	}
	return author.New(req.FirstName, req.LastName, "slug"), nil
}

func (s *stubAuthorService) GetByID(_ context.Context, _ uuid.UUID) (*author.Author, error) {
	return nil, author.ErrAuthorNotFound
}

func (s *stubAuthorService) GetBySlug(_ context.Context, slug string) (*author.Author, error) {
	if a, ok := s.bySlug[slug]; ok {
		return a, nil
	}
	return nil, author.ErrAuthorNotFound
}

func (s *stubAuthorService) List(_ context.Context) ([]author.Author, error) { return nil, nil }

func (s *stubAuthorService) FindOrCreate(_ context.Context, firstName, lastName string) (*author.Author, error) {
	return author.New(firstName, lastName, "slug"), nil
}

func newAuthorRouter(svc author.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthorHandler(svc)
	r := gin.New()
	r.POST("/autores", h.Create)
	r.GET("/autores/:slug", h.GetBySlug)
	return r
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthorGetBySlugNotFound(t *testing.T) {
	router := newAuthorRouter(&stubAuthorService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/autores/desconhecido", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode(t, rec)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}

func TestAuthorCreateDuplicateNameIsBadRequest(t *testing.T) {
	router := newAuthorRouter(&stubAuthorService{err: author.ErrDuplicateName})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/autores",
		strings.NewReader(`{"nome":"Ana","sobrenome":"Souza"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "BAD_REQUEST", body.Error.Code)
}

func TestAuthorCreateSuccess(t *testing.T) {
	router := newAuthorRouter(&stubAuthorService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/autores",
		strings.NewReader(`{"nome":"Ana","sobrenome":"Souza"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, decode(t, rec).Success)
}
