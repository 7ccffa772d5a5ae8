package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmate/careers-service/internal/joblist"
	"jobmate/careers-service/internal/model"
)

// jobListResponse is the JSON shape of GET /jobs.
type jobListResponse struct {
	Filter        string          `json:"filter"`
	Jobs          []model.JobView `json:"jobs"`
	Total         int             `json:"total"`
	Start         int             `json:"start"`
	MoreAvailable bool            `json:"moreAvailable"`
	Loading       bool            `json:"loading"`
	Meta          joblist.Meta    `json:"meta"`
}

func (h *Handler) pager(sid string) *joblist.Pager {
	return h.pagers.GetOrCreate(sid, func() *joblist.Pager {
		var l joblist.Listener
		if h.opts.Listener != nil {
			l = h.opts.Listener(sid)
		}
		return joblist.NewPager(h.opts.Searcher, h.opts.Settings, l, h.opts.Metrics)
	})
}

// listJobs handles GET /jobs. With more=true the next page is appended;
// otherwise the list is reset to the first page of filter.
func (h *Handler) listJobs(c *gin.Context) {
	sid := sessionID(c)
	p := h.pager(sid)

	var err error
	if c.Query("more") == "true" {
		err = p.LoadMore(c.Request.Context())
	} else {
		err = p.SetFilter(c.Request.Context(), c.Query("filter"))
	}
	switch {
	case err == nil, errors.Is(err, joblist.ErrStale):
		// A stale load was superseded; the snapshot holds the newer state.
	default:
		slog.Warn("job list load failed", "sessionId", sid, "err", err)
		jsonError(c, "job search is unavailable", http.StatusBadGateway)
		return
	}

	v := p.Snapshot()
	c.JSON(http.StatusOK, jobListResponse{
		Filter:        v.Filter,
		Jobs:          model.NewJobViews(v.Jobs, h.opts.Settings.Service.JobInfoChips, h.appliedIDs(c.Request.Context(), sid)),
		Total:         v.Total,
		Start:         v.Start,
		MoreAvailable: v.MoreAvailable,
		Loading:       v.Loading,
		Meta:          v.Meta,
	})
}

// appliedJobs handles GET /applied.
func (h *Handler) appliedJobs(c *gin.Context) {
	ids, err := h.opts.Applied.List(c.Request.Context(), sessionID(c))
	if err != nil {
		slog.Warn("list applied jobs failed", "err", err)
		jsonError(c, "session store error", http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobIds": ids})
}
