// internal/app/system/feedclient/feedclient.go

// Package feedclient talks to the upstream registry feed. The feed exposes
// an asynchronous export API: request an export job, poll its status until
// it is ready, then download the produced workbook.
package feedclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Export job statuses reported by the feed.
const (
	JobPending = "pending"
	JobReady   = "ready"
	JobFailed  = "failed"
)

// ExportJob is the feed's job document.
type ExportJob struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	FileURL string `json:"file_url,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Terminal reports whether polling should stop.
func (j ExportJob) Terminal() bool {
	return j.Status == JobReady || j.Status == JobFailed
}

// Client is a thin resty wrapper around the feed API.
type Client struct {
	http *resty.Client
	log  *zap.Logger
}

// New builds a client for the feed at baseURL. apiKey may be empty when the
// feed is anonymous.
func New(baseURL, apiKey string, logger *zap.Logger) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(60 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		c.SetHeader("Authorization", "Token "+apiKey)
	}
	// Per-request id so feed-side logs can be correlated with ours.
	c.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader("X-Request-Id", uuid.NewString())
		return nil
	})
	return &Client{http: c, log: logger}
}

// RequestExport asks the feed to produce an export for one country and
// unit type.
func (c *Client) RequestExport(ctx context.Context, iso3 string, unitType int) (ExportJob, error) {
	var job ExportJob
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"country": iso3, "local_unit_type": unitType}).
		SetResult(&job).
		Post("/exports")
	if err != nil {
		return ExportJob{}, fmt.Errorf("request export: %w", err)
	}
	if resp.IsError() {
		return ExportJob{}, fmt.Errorf("request export: feed returned %s", resp.Status())
	}
	return job, nil
}

// JobStatus fetches the current state of an export job.
func (c *Client) JobStatus(ctx context.Context, id string) (ExportJob, error) {
	var job ExportJob
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&job).
		Get("/exports/" + id)
	if err != nil {
		return ExportJob{}, fmt.Errorf("export status: %w", err)
	}
	if resp.IsError() {
		return ExportJob{}, fmt.Errorf("export status: feed returned %s", resp.Status())
	}
	return job, nil
}

// Download fetches the finished export workbook.
func (c *Client) Download(ctx context.Context, fileURL string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download export: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("download export: feed returned %s", resp.Status())
	}
	return resp.Body(), nil
}
