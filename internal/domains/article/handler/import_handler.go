package handler

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/article"
	"library-backend/internal/domains/user"
	"library-backend/internal/infrastructure/storage"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

// maxUploadSize bounds any single uploaded file (PDF, .bib or zip).
const maxUploadSize = 50 << 20

type ImportHandler struct {
	importer article.Importer
	store    storage.Store
}

func NewImportHandler(importer article.Importer, store storage.Store) *ImportHandler {
	return &ImportHandler{
		importer: importer,
		store:    store,
	}
}

// UploadPDF handles POST /upload-pdf
func (h *ImportHandler) UploadPDF(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		response.BadRequest(c, "only PDF files are accepted")
		return
	}

	content, err := readUpload(fileHeader)
	if err != nil {
		logger.Error("UploadPDF: reading upload failed", err)
		response.BadRequest(c, "could not read uploaded file")
		return
	}

	path, err := h.store.Save(fileHeader.Filename, content)
	if err != nil {
		logger.Error("UploadPDF: storing file failed", err)
		response.InternalServerError(c, "could not store uploaded file")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"pdf_path": path})
}

// UploadBibTeX handles POST /upload-bibtex with action=preview|save.
func (h *ImportHandler) UploadBibTeX(c *gin.Context) {
	action := c.DefaultPostForm("action", "preview")
	if action != "preview" && action != "save" {
		response.BadRequest(c, "action must be preview or save")
		return
	}

	bibHeader, err := c.FormFile("bibtex_file")
	if err != nil {
		response.BadRequest(c, "bibtex_file is required")
		return
	}
	ext := strings.ToLower(filepath.Ext(bibHeader.Filename))
	if ext != ".bib" && ext != ".bibtex" {
		response.BadRequest(c, "only .bib or .bibtex files are accepted")
		return
	}

	bibContent, err := readUpload(bibHeader)
	if err != nil {
		logger.Error("UploadBibTeX: reading upload failed", err)
		response.BadRequest(c, "could not read uploaded file")
		return
	}

	if action == "preview" {
		entries, err := h.importer.Preview(c.Request.Context(), bytes.NewReader(bibContent))
		if err != nil {
			response.BadRequest(c, "invalid BibTeX file")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"entries": entries, "total": len(entries)})
		return
	}

	// Persisting is an administrative operation.
	if c.GetString("role") != user.RoleAdmin {
		response.Forbidden(c, "admin privileges required")
		return
	}

	pdfs, err := h.extractPDFs(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	report, err := h.importer.Save(c.Request.Context(), bytes.NewReader(bibContent), pdfs)
	if err != nil {
		response.BadRequest(c, "invalid BibTeX file")
		return
	}

	response.Success(c, http.StatusOK, report)
}

// extractPDFs pulls every *.pdf out of the optional pdf_zip upload, keyed by
// base file name.
func (h *ImportHandler) extractPDFs(c *gin.Context) (map[string][]byte, error) {
	zipHeader, err := c.FormFile("pdf_zip")
	if err != nil {
		return nil, nil
	}

	content, err := readUpload(zipHeader)
	if err != nil {
		logger.Error("extractPDFs: reading zip failed", err)
		return nil, errInvalidZip
	}

	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, errInvalidZip
	}

	pdfs := make(map[string][]byte)
	for _, file := range reader.File {
		if file.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(file.Name), ".pdf") {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, errInvalidZip
		}
		data, err := io.ReadAll(io.LimitReader(rc, maxUploadSize))
		rc.Close()
		if err != nil {
			return nil, errInvalidZip
		}

		pdfs[filepath.Base(file.Name)] = data
	}

	return pdfs, nil
}

var errInvalidZip = errors.New("pdf_zip is not a valid zip archive")

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(io.LimitReader(file, maxUploadSize))
}
