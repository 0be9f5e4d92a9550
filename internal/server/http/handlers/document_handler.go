package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/onboarding/internal/domain/model"
	"github.com/polkiloo/onboarding/internal/server/http/dto"
)

const documentsField = "documents"

// DocumentHandler manages the documents of the account step.
type DocumentHandler struct {
	facade DocumentFacade
}

// NewDocumentHandler constructs DocumentHandler.
func NewDocumentHandler(facade DocumentFacade) *DocumentHandler {
	return &DocumentHandler{facade: facade}
}

// Upload handles POST /account/documents with one or more "documents"
// file parts.
func (h *DocumentHandler) Upload(c *gin.Context) {
	s, ok := requestSession(c)
	if !ok {
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			message(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("Upload exceeds %d bytes. Please upload fewer files at once.", tooLarge.Limit))
			return
		}
		c.Status(http.StatusBadRequest)
		return
	}
	files := form.File[documentsField]
	if len(files) == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	batch := make([]model.Document, 0, len(files))
	for _, fh := range files {
		doc, err := readDocument(fh)
		if err != nil {
			_ = c.Error(err)
			c.Status(http.StatusBadRequest)
			return
		}
		batch = append(batch, doc)
	}

	list, err := h.facade.UploadDocuments(c.Request.Context(), s, batch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DocumentsResponse{Documents: list})
}

// List handles GET /account/documents.
func (h *DocumentHandler) List(c *gin.Context) {
	s, ok := requestSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.DocumentsResponse{Documents: h.facade.Documents(s)})
}

// Remove handles DELETE /account/documents/:index.
func (h *DocumentHandler) Remove(c *gin.Context) {
	s, ok := requestSession(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	list, err := h.facade.RemoveDocument(c.Request.Context(), s, index)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DocumentsResponse{Documents: list})
}

// Reset handles DELETE /account/documents.
func (h *DocumentHandler) Reset(c *gin.Context) {
	s, ok := requestSession(c)
	if !ok {
		return
	}
	h.facade.ResetDocuments(c.Request.Context(), s)
	c.JSON(http.StatusOK, dto.DocumentsResponse{Documents: []model.DocumentMeta{}})
}

func readDocument(fh *multipart.FileHeader) (model.Document, error) {
	f, err := fh.Open()
	if err != nil {
		return model.Document{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return model.Document{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	return model.Document{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
