package packaging

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/packaging/archive"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the packaging service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches packaging routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/projects/:id/progress", h.progress)
	rg.POST("/projects/:id/export", h.export)
	rg.GET("/projects/:id/export/download", h.download)
}

type progressResponse struct {
	Percent  int      `json:"percent"`
	Eligible bool     `json:"eligible"`
	Approved int      `json:"approved"`
	Missing  []string `json:"missing"`
}

func (h *Handler) progress(c *gin.Context) {
	report, err := h.Svc.ProjectProgress(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "project not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute progress", nil)
		}
		return
	}
	respond.OK(c, toProgressResponse(report))
}

type exportResponse struct {
	Method   string           `json:"method"`
	Location string           `json:"location"`
	Entries  int              `json:"entries"`
	Skipped  []string         `json:"skipped,omitempty"`
	Progress progressResponse `json:"progress"`
}

func (h *Handler) export(c *gin.Context) {
	result, err := h.Svc.Export(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "project not found", nil)
		case errors.Is(err, ErrNotEligible):
			respond.Error(c, http.StatusConflict, "not_eligible", "project is not ready for submission", toProgressResponse(result.Report))
		case errors.Is(err, ErrNoCoverLetter):
			respond.Error(c, http.StatusConflict, "no_cover_letter", "cover letter content is unavailable", nil)
		case errors.Is(err, archive.ErrCancelled):
			respond.Error(c, http.StatusConflict, "cancelled", "export was cancelled", nil)
		case errors.Is(err, archive.ErrExhausted):
			respond.Error(c, http.StatusInternalServerError, "no_backend", "no archive backend could persist the package", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to export package", nil)
		}
		return
	}

	respond.OK(c, exportResponse{
		Method:   result.Persist.Method,
		Location: result.Persist.Location,
		Entries:  result.Persist.Entries,
		Skipped:  result.Skipped,
		Progress: toProgressResponse(result.Report),
	})
}

func (h *Handler) download(c *gin.Context) {
	name, data, err := h.Svc.BuildArchive(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "project not found", nil)
		case errors.Is(err, ErrNotEligible):
			respond.Error(c, http.StatusConflict, "not_eligible", "project is not ready for submission", nil)
		case errors.Is(err, ErrNoCoverLetter):
			respond.Error(c, http.StatusConflict, "no_cover_letter", "cover letter content is unavailable", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to build package", nil)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/zip", data)
}

func toProgressResponse(r Report) progressResponse {
	missing := make([]string, 0, len(r.Missing))
	for _, cat := range r.Missing {
		missing = append(missing, string(cat))
	}
	return progressResponse{
		Percent:  r.Percent,
		Eligible: r.Eligible,
		Approved: r.Approved,
		Missing:  missing,
	}
}
