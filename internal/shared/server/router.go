package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/coverletter"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/documents"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/packaging"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/projects"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/config"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/metrics"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/server/middleware"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config             config.Config
	ProjectHandler     *projects.Handler
	DocumentHandler    *documents.Handler
	CoverLetterHandler *coverletter.Handler
	PackagingHandler   *packaging.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: 5, Burst: 20},
				"POLLING": {Rate: 20, Burst: 40},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodGet && c.FullPath() == "/api/v1/projects/:id/progress" {
					return "POLLING"
				}
				return "DEFAULT"
			},
		}),
	)

	r.GET("/healthz", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	if deps.ProjectHandler != nil {
		deps.ProjectHandler.RegisterRoutes(api)
	}
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.CoverLetterHandler != nil {
		deps.CoverLetterHandler.RegisterRoutes(api)
	}
	if deps.PackagingHandler != nil {
		deps.PackagingHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
