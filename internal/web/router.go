package web

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"jobmate/careers-service/internal/metrics"
)

// NewRouter builds the gin engine: recovery, request logging, CORS for the
// careers site origins (any origin when none are configured), the careers
// routes and /metrics.
func NewRouter(h *Handler, m *metrics.Metrics, origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept-Language", SessionHeader}
	cfg.ExposeHeaders = []string{SessionHeader}
	r.Use(cors.New(cfg))

	h.RegisterRoutes(r)
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}
	return r
}
