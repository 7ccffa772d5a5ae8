// Package search fetches published job orders from the ATS public REST API.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"jobmate/careers-service/internal/metrics"
	"jobmate/careers-service/internal/model"
)

const (
	// PageSize is fixed by convention with the careers site; it is not a
	// per-call parameter.
	PageSize    = 30
	httpTimeout = 15 * time.Second

	baseQuery = "(isOpen:1) AND (isDeleted:0)"
)

// Searcher is the job search collaborator used by the job list pager.
type Searcher interface {
	GetJobs(ctx context.Context, filter string, start int) (*model.JobPage, error)
}

// Client queries GET <base>/search/JobOrder.
type Client struct {
	http    *resty.Client
	fields  string
	metrics *metrics.Metrics
}

// NewClient constructs a Client with a shared HTTP client. fields is the
// projection requested for every job order.
func NewClient(baseURL string, fields []string, m *metrics.Metrics) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(httpTimeout).
			SetHeader("Accept", "application/json"),
		fields:  strings.Join(fields, ","),
		metrics: m,
	}
}

// Query builds the search expression for a filter. The filter is opaque:
// it is an ATS query clause interpreted upstream.
func Query(filter string) string {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return baseQuery
	}
	return fmt.Sprintf("%s AND (%s)", baseQuery, filter)
}

// GetJobs fetches one page of PageSize job orders starting at start.
func (c *Client) GetJobs(ctx context.Context, filter string, start int) (*model.JobPage, error) {
	began := time.Now()
	page, err := c.fetchPage(ctx, filter, start)
	if c.metrics != nil {
		c.metrics.SearchLatency.Observe(time.Since(began).Seconds())
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		c.metrics.SearchRequests.WithLabelValues(outcome).Inc()
	}
	return page, err
}

func (c *Client) fetchPage(ctx context.Context, filter string, start int) (*model.JobPage, error) {
	params := map[string]string{
		"query":            Query(filter),
		"count":            strconv.Itoa(PageSize),
		"start":            strconv.Itoa(start),
		"sort":             "-dateLastPublished",
		"showTotalMatched": "true",
	}
	if c.fields != "" {
		params["fields"] = c.fields
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/search/JobOrder")
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("search returned %d: %s", resp.StatusCode(), resp.String())
	}

	var page model.JobPage
	if err := json.Unmarshal(resp.Body(), &page); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if page.Data == nil {
		page.Data = []model.Job{}
	}
	return &page, nil
}
