package jobs

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"token-analysis-backend/internal/schema"
	"token-analysis-backend/internal/shared/server/middleware"
	"token-analysis-backend/internal/shared/server/respond"
)

// Per-file cap on uploaded sources.
const maxUploadBytes = 20 << 20

// Handler wires HTTP handlers to the jobs service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis job routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.submitAnalysis)
	rg.GET("/analyses/:id", h.pollAnalysis)
}

func (h *Handler) submitAnalysis(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid multipart form", nil)
		return
	}

	var fileHeaders []*multipart.FileHeader
	var urls []string
	if form != nil {
		fileHeaders = form.File["files"]
		for _, raw := range form.Value["url"] {
			if trimmed := strings.TrimSpace(raw); trimmed != "" {
				urls = append(urls, trimmed)
			}
		}
	}

	if len(fileHeaders) == 0 && len(urls) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No files or URL provided.", nil)
		return
	}

	files, err := readUploads(fileHeaders)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	identity := schema.TokenIdentity{
		Name:              c.PostForm("token_name"),
		Symbol:            c.PostForm("token_symbol"),
		TypeMethodology:   c.PostForm("token_type_methodology"),
		AdditionalContext: c.PostForm("additional_context"),
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	jobID, err := h.Svc.Submit(ctx, SubmitRequest{
		Files:    files,
		URLs:     urls,
		Identity: identity,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNoInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "No files or URL provided.", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit analysis", nil)
		}
		return
	}
	c.Set("jobId", jobID)

	respond.JSON(c, http.StatusAccepted, gin.H{
		"jobId":  jobID,
		"status": StatusReceived,
	})
}

func (h *Handler) pollAnalysis(c *gin.Context) {
	jobID := c.Param("id")
	if jobID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "job id is required", nil)
		return
	}
	c.Set("jobId", jobID)

	// Polls never surface a transport-level failure: an unknown id returns a
	// well-formed view with the unknown sentinel.
	view := h.Svc.Poll(c.Request.Context(), jobID)
	respond.JSON(c, http.StatusOK, view)
}

// readUploads captures the submitted files in memory so the background job
// outlives the request body.
func readUploads(fileHeaders []*multipart.FileHeader) ([]Upload, error) {
	uploads := make([]Upload, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		if fh.Size > maxUploadBytes {
			return nil, errors.New("file too large: " + fh.Filename)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, errors.New("cannot read file: " + fh.Filename)
		}
		data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
		f.Close()
		if err != nil {
			return nil, errors.New("cannot read file: " + fh.Filename)
		}
		if int64(len(data)) > maxUploadBytes {
			return nil, errors.New("file too large: " + fh.Filename)
		}
		uploads = append(uploads, Upload{FileName: fh.Filename, Data: data})
	}
	return uploads, nil
}
