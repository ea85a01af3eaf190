package projects

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the repo.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches project routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/projects", h.create)
	rg.GET("/projects/:id", h.get)
}

type createRequest struct {
	Name         string `json:"name"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
}

type projectResponse struct {
	ProjectID    string    `json:"projectId"`
	Name         string    `json:"name"`
	ContactName  string    `json:"contactName"`
	ContactEmail string    `json:"contactEmail"`
	ContactPhone string    `json:"contactPhone"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toResponse(p Project) projectResponse {
	return projectResponse{
		ProjectID:    p.ID,
		Name:         p.Name,
		ContactName:  p.ContactName,
		ContactEmail: p.ContactEmail,
		ContactPhone: p.ContactPhone,
		CreatedAt:    p.CreatedAt,
	}
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "name is required", nil)
		return
	}

	p := Project{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		ContactName:  strings.TrimSpace(req.ContactName),
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		ContactPhone: strings.TrimSpace(req.ContactPhone),
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.Repo.Create(c.Request.Context(), p); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create project", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(p))
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "project not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch project", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(p))
}
