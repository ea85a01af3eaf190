package coverletter

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches cover letter routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/projects/:id/cover-letter", h.generate)
}

type generateResponse struct {
	DocumentID string `json:"documentId"`
	FileName   string `json:"fileName"`
	Version    int    `json:"version"`
	Generated  bool   `json:"generated"`
	Narrative  string `json:"narrative"`
}

func (h *Handler) generate(c *gin.Context) {
	result, err := h.Svc.Generate(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "project not found", nil)
		case errors.Is(err, ErrNoDocuments):
			respond.Error(c, http.StatusConflict, "no_documents", "upload at least one document before generating a cover letter", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate cover letter", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, generateResponse{
		DocumentID: result.Document.ID,
		FileName:   result.Document.FileName,
		Version:    result.Document.Version,
		Generated:  result.Generated,
		Narrative:  result.Narrative,
	})
}
