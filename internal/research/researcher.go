// Package research aggregates multiple web searches about one firm into a
// deduplicated bundle of results and URLs.
package research

import (
	"context"
	"fmt"
	"log/slog"

	"vcscout/internal/domain"
	"vcscout/internal/metrics"
	"vcscout/internal/search"
)

const (
	perQueryCount = 3  // results requested per underlying search
	maxResults    = 10 // cap on deduplicated results in a bundle
	maxTopURLs    = 5  // cap on URLs handed to a downstream fetch tool
)

// queryTemplates are the fixed query variants issued per firm.
var queryTemplates = []string{
	"%s venture capital AI investments",
	"%s portfolio companies artificial intelligence",
	"%s VC firm profile",
}

// QueryCount returns the number of query variants issued per firm.
func QueryCount() int { return len(queryTemplates) }

// Searcher is the slice of the search client the researcher needs.
// Degraded mode is visible on the Response status, so the interface does
// not carry a separate availability check.
type Searcher interface {
	Search(ctx context.Context, query string, count int) search.Response
}

// Researcher runs the multi-query research flow for a firm.
type Researcher struct {
	searcher Searcher
	pacer    Pacer
	logger   *slog.Logger
}

func New(searcher Searcher, pacer Pacer, logger *slog.Logger) *Researcher {
	return &Researcher{searcher: searcher, pacer: pacer, logger: logger}
}

// Research issues the fixed query variants sequentially, pausing between
// requests, and merges the results. Failed queries degrade the bundle
// instead of aborting it; the only hard error is context cancellation.
func (r *Researcher) Research(ctx context.Context, name string) (domain.Bundle, error) {
	metrics.ResearchRuns.Inc()
	bundle := domain.Bundle{FirmName: name}

	var merged []domain.SearchResult
	for i, tmpl := range queryTemplates {
		if i > 0 {
			if err := r.pacer.Wait(ctx); err != nil {
				return bundle, err
			}
		}

		query := fmt.Sprintf(tmpl, name)
		resp := r.searcher.Search(ctx, query, perQueryCount)
		switch resp.Status {
		case search.StatusNoCredential:
			bundle.Degraded = true
			bundle.Failures = append(bundle.Failures, fmt.Sprintf("%q: no search credential configured", query))
		case search.StatusFailed:
			bundle.Degraded = true
			bundle.Failures = append(bundle.Failures, fmt.Sprintf("%q: %s", query, resp.Reason))
		default:
			merged = append(merged, resp.Results...)
		}
	}

	unique := Dedupe(merged)
	if len(unique) > maxResults {
		unique = unique[:maxResults]
	}
	bundle.Results = unique

	for _, res := range unique {
		if len(bundle.TopURLs) >= maxTopURLs {
			break
		}
		bundle.TopURLs = append(bundle.TopURLs, res.URL)
	}

	r.logger.Debug("research complete", "firm", name,
		"results", len(bundle.Results), "urls", len(bundle.TopURLs), "degraded", bundle.Degraded)
	return bundle, nil
}

// Pace exposes the pacer for callers that sequence multiple research runs.
func (r *Researcher) Pace(ctx context.Context) error {
	return r.pacer.Wait(ctx)
}

// Dedupe removes results with duplicate URLs, keeping the first occurrence
// and preserving input order.
func Dedupe(results []domain.SearchResult) []domain.SearchResult {
	seen := make(map[string]struct{}, len(results))
	unique := make([]domain.SearchResult, 0, len(results))
	for _, res := range results {
		if _, ok := seen[res.URL]; ok {
			continue
		}
		seen[res.URL] = struct{}{}
		unique = append(unique, res)
	}
	return unique
}
