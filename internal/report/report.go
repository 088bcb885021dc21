// Package report renders research output as plain-text reports. All
// functions are pure: they take result data and return a newline-joined
// string with fixed section headers.
package report

import (
	"fmt"
	"strings"

	"vcscout/internal/domain"
)

// Search renders a numbered list of search results under a query header.
func Search(query string, results []domain.SearchResult) string {
	out := []string{"Search Results for: " + query, strings.Repeat("=", 50)}
	out = append(out, resultEntries(results)...)
	return strings.Join(out, "\n")
}

// URLs renders the fetchable-URL report for one firm.
func URLs(bundle domain.Bundle) string {
	out := []string{
		"URLs FOR " + strings.ToUpper(bundle.FirmName),
		strings.Repeat("=", 50),
		"",
		"Use these URLs with the web_fetch tool to get detailed content:",
		"",
	}
	for i, u := range bundle.TopURLs {
		out = append(out, fmt.Sprintf("%d. %s", i+1, u))
	}
	out = append(out, "", "All search results:")
	out = append(out, resultEntries(bundle.Results)...)
	out = append(out, degradedNote(bundle)...)
	return strings.Join(out, "\n")
}

// Research renders the full research report for one firm.
func Research(bundle domain.Bundle) string {
	out := []string{
		"RESEARCH REPORT: " + bundle.FirmName,
		strings.Repeat("=", 60),
		"",
		"INSTRUCTIONS:",
		"Use the web_fetch tool on the URLs below to get detailed content.",
		"",
		"TOP URLs FOR CONTENT FETCHING:",
		strings.Repeat("-", 35),
	}
	for i, u := range bundle.TopURLs {
		out = append(out, fmt.Sprintf("%d. %s", i+1, u))
	}
	out = append(out, "", "ALL SEARCH RESULTS:", strings.Repeat("-", 20))
	out = append(out, resultEntries(bundle.Results)...)
	out = append(out, degradedNote(bundle)...)
	return strings.Join(out, "\n")
}

// Portfolio renders portfolio-focused search results for one firm.
func Portfolio(name string, results []domain.SearchResult) string {
	out := []string{
		"PORTFOLIO RESEARCH URLs: " + name,
		strings.Repeat("=", 50),
		"",
		"Use these URLs with web_fetch tool to get portfolio details:",
		"",
	}
	out = append(out, resultEntries(results)...)
	return strings.Join(out, "\n")
}

// Comparison renders one subsection per firm bundle.
func Comparison(bundles []domain.Bundle) string {
	names := make([]string, len(bundles))
	for i, b := range bundles {
		names[i] = b.FirmName
	}

	out := []string{
		"COMPARISON URLs: " + strings.Join(names, " vs "),
		strings.Repeat("=", 80),
		"",
		"Use web_fetch on these URLs to get detailed comparison data:",
		"",
	}

	for _, b := range bundles {
		out = append(out, "", strings.ToUpper(b.FirmName), strings.Repeat("-", len(b.FirmName)))
		out = append(out, "Top URLs to fetch:")
		for _, u := range b.TopURLs {
			out = append(out, "  - "+u)
		}
		out = append(out, "", fmt.Sprintf("All search results (%d found):", len(b.Results)))
		for i, res := range b.Results {
			if i >= 3 {
				break
			}
			out = append(out, "  - "+res.Title, "    "+res.URL)
		}
		out = append(out, degradedNote(b)...)
		out = append(out, "")
	}

	return strings.Join(out, "\n")
}

// resultEntries renders numbered title/URL/snippet blocks.
func resultEntries(results []domain.SearchResult) []string {
	var out []string
	for i, res := range results {
		out = append(out, fmt.Sprintf("%d. %s", i+1, res.Title))
		out = append(out, "   URL: "+res.URL)
		if res.Snippet != "" {
			out = append(out, "   Snippet: "+res.Snippet)
		}
		out = append(out, "")
	}
	return out
}

// degradedNote surfaces incomplete searches instead of silently shipping a
// thinner report.
func degradedNote(bundle domain.Bundle) []string {
	if !bundle.Degraded {
		return nil
	}
	out := []string{"", "NOTE: some searches could not be completed:"}
	for _, f := range bundle.Failures {
		out = append(out, "  - "+f)
	}
	return out
}
