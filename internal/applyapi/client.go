// Package applyapi submits job applications to the ATS public REST API.
package applyapi

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"jobmate/careers-service/internal/apply"
	"jobmate/careers-service/internal/metrics"
)

const (
	httpTimeout = 60 * time.Second
	maxErrBody  = 512
)

// Client posts applications to <base>/apply/{jobId}/raw.
type Client struct {
	http    *resty.Client
	metrics *metrics.Metrics
}

// NewClient returns a Client rooted at baseURL. m may be nil.
func NewClient(baseURL string, m *metrics.Metrics) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(httpTimeout).
			SetHeader("Accept", "application/json"),
		metrics: m,
	}
}

// Path returns the request path and raw query for a submission. params are
// already encoded and are appended verbatim in key order.
func Path(jobID int64, params map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "/apply/%d/raw?externalID=Resume&type=Resume", jobID)
	for _, k := range slices.Sorted(maps.Keys(params)) {
		b.WriteString("&")
		b.WriteString(url.QueryEscape(k))
		b.WriteString("=")
		b.WriteString(params[k])
	}
	return b.String()
}

// Apply sends one multipart request with the resume under the "resume"
// field. Any non-2xx answer is an error. Applications are never retried.
func (c *Client) Apply(ctx context.Context, jobID int64, params map[string]string, resume apply.File) error {
	began := time.Now()
	defer func() {
		if c.metrics != nil {
			c.metrics.ApplyLatency.Observe(time.Since(began).Seconds())
		}
	}()

	contentType := resume.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetMultipartField("resume", resume.Name, contentType, bytes.NewReader(resume.Data)).
		Post(Path(jobID, params))
	if err != nil {
		return fmt.Errorf("http POST: %w", err)
	}
	if !resp.IsSuccess() {
		body := resp.String()
		if len(body) > maxErrBody {
			body = body[:maxErrBody]
		}
		return fmt.Errorf("apply returned %d: %s", resp.StatusCode(), body)
	}
	return nil
}
