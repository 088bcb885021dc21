// Package search wraps the Brave web search API. Every call returns an
// explicit Response with a Status so callers can tell "no matches" from
// "no credential" from "request failed".
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"vcscout/internal/domain"
	"vcscout/internal/metrics"
)

const (
	// EnvAPIKey is consulted when Config.APIKey is empty.
	EnvAPIKey = "BRAVE_SEARCH_API_KEY"

	defaultTimeout = 10 * time.Second
	userAgent      = "vcscout/0.1"
)

// Status classifies the outcome of one search call.
type Status string

const (
	// StatusOK means the request succeeded; Results may still be empty
	// when the query genuinely matched nothing.
	StatusOK Status = "ok"
	// StatusNoCredential means no API key is configured; no request was
	// issued (degraded mode).
	StatusNoCredential Status = "no_credential"
	// StatusFailed means the request was issued and failed (transport
	// error, non-2xx, or unparseable body). Reason carries the cause.
	StatusFailed Status = "failed"
)

// Response is the outcome of a single search call.
type Response struct {
	Query   string
	Status  Status
	Results []domain.SearchResult
	Reason  string // populated when Status == StatusFailed
}

// Config configures the search client.
type Config struct {
	APIKey         string
	BaseURL        string
	Market         string
	SafeSearch     string
	Freshness      string
	TimeoutSeconds int
}

// Client issues web searches against the Brave search API.
type Client struct {
	cfg    Config
	apiKey string
	client *http.Client
	logger *slog.Logger
}

// NewClient builds a search client. The API key is resolved once: the
// config value wins, otherwise the BRAVE_SEARCH_API_KEY environment
// variable. An empty key puts the client in degraded mode.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv(EnvAPIKey))
	}
	if apiKey == "" {
		logger.Warn("no search API key configured, search runs in degraded mode",
			"env", EnvAPIKey)
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		cfg:    cfg,
		apiKey: apiKey,
		client: newHTTPClient(timeout),
		logger: logger,
	}
}

// newHTTPClient returns an HTTP client with connection pooling, shared
// across all searches issued by this process.
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// Available reports whether the client holds a credential.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

// braveResponse is the subset of the Brave API response we consume.
type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// Search issues one GET to the search endpoint and returns up to count
// results. It never returns a Go error: failures are carried on the
// Response so a multi-query aggregation can continue with partial data.
func (c *Client) Search(ctx context.Context, query string, count int) Response {
	if c.apiKey == "" {
		return Response{Query: query, Status: StatusNoCredential}
	}
	if count <= 0 {
		count = 5
	}

	metrics.SearchesTotal.Inc()
	start := time.Now()
	defer func() {
		metrics.SearchLatency.Observe(time.Since(start).Seconds())
	}()

	endpoint, err := c.buildURL(query, count)
	if err != nil {
		return c.failed(query, fmt.Sprintf("build request URL: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return c.failed(query, fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return c.failed(query, fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return c.failed(query, fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var brave braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&brave); err != nil {
		return c.failed(query, fmt.Sprintf("parse response: %v", err))
	}

	results := make([]domain.SearchResult, 0, count)
	for _, entry := range brave.Web.Results {
		if len(results) >= count {
			break
		}
		results = append(results, domain.SearchResult{
			Title:   strings.TrimSpace(entry.Title),
			URL:     entry.URL,
			Snippet: strings.TrimSpace(entry.Description),
		})
	}

	return Response{Query: query, Status: StatusOK, Results: results}
}

func (c *Client) buildURL(query string, count int) (string, error) {
	base, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return "", err
	}
	values := base.Query()
	values.Set("q", query)
	values.Set("count", strconv.Itoa(count))
	values.Set("offset", "0")
	if c.cfg.Market != "" {
		values.Set("mkt", c.cfg.Market)
	}
	if c.cfg.SafeSearch != "" {
		values.Set("safesearch", c.cfg.SafeSearch)
	}
	if c.cfg.Freshness != "" {
		values.Set("freshness", c.cfg.Freshness)
	}
	values.Set("text_decorations", "false")
	values.Set("spellcheck", "true")
	base.RawQuery = values.Encode()
	return base.String(), nil
}

func (c *Client) failed(query, reason string) Response {
	metrics.SearchFailures.Inc()
	c.logger.Warn("search failed", "query", query, "reason", reason)
	return Response{Query: query, Status: StatusFailed, Reason: reason}
}
