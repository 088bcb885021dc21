package domain

import (
	"context"
	"time"
)

// Firm is a static profile of a venture-capital firm.
type Firm struct {
	Key     string   `yaml:"key" json:"key"`
	Name    string   `yaml:"name" json:"name"`
	Focus   string   `yaml:"focus" json:"focus"`
	Notable []string `yaml:"notable" json:"notable"`
}

// SearchResult is a single web search hit. URL is the identity used for
// deduplication across queries.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

// Bundle is the aggregated, URL-deduplicated outcome of researching one firm.
// Results keep first-seen order; TopURLs are the first five result URLs.
type Bundle struct {
	FirmName string         `json:"firm_name"`
	Results  []SearchResult `json:"results"`
	TopURLs  []string       `json:"top_urls"`
	Degraded bool           `json:"degraded,omitempty"` // at least one query ran without credentials or failed
	Failures []string       `json:"failures,omitempty"` // per-query failure reasons
}

// ResearchRun records one completed research invocation for the history log.
type ResearchRun struct {
	ID          int64     `json:"id"`
	FirmName    string    `json:"firm_name"`
	Tool        string    `json:"tool"`
	QueryCount  int       `json:"query_count"`
	ResultCount int       `json:"result_count"`
	URLCount    int       `json:"url_count"`
	Degraded    bool      `json:"degraded"`
	CreatedAt   time.Time `json:"created_at"`
}

// ResearchStore persists research runs.
type ResearchStore interface {
	Record(ctx context.Context, run ResearchRun) error
	Recent(ctx context.Context, limit int) ([]ResearchRun, error)
	Close() error
}
