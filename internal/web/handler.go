// Package web implements the HTTP API of the careers site.
//
// Routes:
//
//	GET    /health                           → liveness
//	GET    /settings                         → public site settings
//	GET    /jobs?filter=&more=true           → job list of the session
//	GET    /applied                          → job ids the session applied to
//	GET    /jobs/:id/apply?source=           → open the apply modal
//	POST   /jobs/:id/apply                   → submit the application (multipart)
//	DELETE /jobs/:id/apply                   → dismiss the apply modal
//	GET    /jobs/:id/apply/privacy-policy    → redirect to the privacy policy
package web

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"jobmate/careers-service/internal/apply"
	"jobmate/careers-service/internal/config"
	"jobmate/careers-service/internal/joblist"
	"jobmate/careers-service/internal/metrics"
	"jobmate/careers-service/internal/notify"
	"jobmate/careers-service/internal/registry"
	"jobmate/careers-service/internal/search"
)

// Version is reported by /health.
const Version = "1.0.0"

// AppliedStore reads and writes the applied-jobs list of a session.
type AppliedStore interface {
	apply.AppliedStore
	List(ctx context.Context, sessionID string) ([]int64, error)
	Has(ctx context.Context, sessionID string, jobID int64) (bool, error)
}

// Options are the collaborators of a Handler. Journal, Metrics and Listener
// may be nil.
type Options struct {
	Settings      *config.Settings
	Searcher      search.Searcher
	Applied       AppliedStore
	Client        apply.Client
	Tracker       apply.Tracker
	Journal       apply.Journal
	Translator    apply.Translator
	Metrics       *metrics.Metrics
	Listener      func(sessionID string) joblist.Listener
	MaxResumeSize int64
	SessionTTL    time.Duration
}

// Handler holds shared dependencies and the per-session state.
type Handler struct {
	opts   Options
	pagers *registry.Registry[*joblist.Pager]
	modals *registry.Registry[*apply.Modal]
}

// NewHandler returns a configured Handler.
func NewHandler(o Options) *Handler {
	return &Handler{
		opts:   o,
		pagers: registry.New[*joblist.Pager](),
		modals: registry.New[*apply.Modal](),
	}
}

// Pagers exposes the per-session job lists for idle eviction.
func (h *Handler) Pagers() *registry.Registry[*joblist.Pager] { return h.pagers }

// Modals exposes the open apply modals for idle eviction.
func (h *Handler) Modals() *registry.Registry[*apply.Modal] { return h.modals }

// RegisterRoutes mounts all careers routes on r.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.health)
	r.GET("/settings", h.publicSettings)

	s := r.Group("", h.sessionMiddleware)
	s.GET("/jobs", h.listJobs)
	s.GET("/applied", h.appliedJobs)
	s.GET("/jobs/:id/apply", h.openApply)
	s.POST("/jobs/:id/apply", h.submitApply)
	s.DELETE("/jobs/:id/apply", h.closeApply)
	s.GET("/jobs/:id/apply/privacy-policy", h.privacyPolicy)
}

// ─── Individual handlers ──────────────────────────────────────────────────────

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "careers-service",
		"version": Version,
	})
}

func (h *Handler) publicSettings(c *gin.Context) {
	s := h.opts.Settings
	c.JSON(http.StatusOK, gin.H{
		"companyName":         s.CompanyName,
		"defaultLocale":       s.DefaultLocale,
		"jobInfoChips":        s.Service.JobInfoChips,
		"privacyConsent":      s.PrivacyConsent,
		"eeoc":                s.EEOC,
		"acceptedResumeTypes": s.AcceptedResumeTypes,
	})
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func jsonError(c *gin.Context, msg string, status int) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func jobIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		jsonError(c, "invalid job id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// locale picks ?locale=, then Accept-Language, then the site default.
func (h *Handler) locale(c *gin.Context) string {
	if l := c.Query("locale"); l != "" {
		return l
	}
	if l := c.GetHeader("Accept-Language"); l != "" {
		return l
	}
	return h.opts.Settings.DefaultLocale
}

func (h *Handler) appliedIDs(ctx context.Context, sid string) []int64 {
	ids, err := h.opts.Applied.List(ctx, sid)
	if err != nil {
		slog.Warn("list applied jobs failed", "sessionId", sid, "err", err)
		return nil
	}
	return ids
}

func (h *Handler) modalDeps() apply.Deps {
	return apply.Deps{
		Settings:   h.opts.Settings,
		Client:     h.opts.Client,
		Tracker:    h.opts.Tracker,
		Notifier:   notify.ContextNotifier{},
		Applied:    h.opts.Applied,
		Journal:    h.opts.Journal,
		Translator: h.opts.Translator,
		Metrics:    h.opts.Metrics,
	}
}
