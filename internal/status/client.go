package status

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"domain_expiry/internal/model"
)

// HTTPError is returned for non-2xx responses
type HTTPError struct {
	StatusCode int
	Reason     string
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	return fmt.Sprintf("API returned %d: %s", e.StatusCode, e.Reason)
}

// Client fetches domain status from the expiry API
type Client struct {
	baseURL string
	client  *http.Client
	logger  *logrus.Entry
}

// Config holds the configuration for the status client
type Config struct {
	BaseURL string
	Timeout time.Duration // 0 means no timeout
	Client  *http.Client
	Logger  *logrus.Entry
}

// NewClient creates a new status client
func NewClient(cfg *Config) *Client {
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  client,
		logger:  cfg.Logger.WithField("component", "status-client"),
	}
}

// BaseURL returns the configured API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Fetch requests {baseURL}/status
func (c *Client) Fetch(ctx context.Context) (*model.StatusResponse, error) {
	url := c.baseURL + "/status"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &HTTPError{StatusCode: resp.StatusCode, Reason: reason(resp)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var data model.StatusResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal json: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"domains":  len(data.Domains),
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("Fetched domain status")
	return &data, nil
}

// reason extracts the reason phrase, e.g. "Internal Server Error" from "500 Internal Server Error"
func reason(resp *http.Response) string {
	prefix := fmt.Sprintf("%d ", resp.StatusCode)
	if r := strings.TrimPrefix(resp.Status, prefix); r != "" && r != resp.Status {
		return r
	}
	return http.StatusText(resp.StatusCode)
}
