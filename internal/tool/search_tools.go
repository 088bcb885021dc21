package tool

import (
	"context"
	"fmt"

	"vcscout/internal/report"
	"vcscout/internal/research"
	"vcscout/internal/search"
)

const (
	firmSearchCount      = 10
	portfolioSearchCount = 8
)

// degradedMessage renders a caller-facing message for a search that
// produced no usable results, keeping the three outcomes distinct.
func degradedMessage(resp search.Response) (string, bool) {
	switch resp.Status {
	case search.StatusNoCredential:
		return fmt.Sprintf("Web search is disabled: no credential configured. Set %s to enable it.", search.EnvAPIKey), true
	case search.StatusFailed:
		return fmt.Sprintf("Search request failed: %s", resp.Reason), true
	}
	if len(resp.Results) == 0 {
		return fmt.Sprintf("No search results found for: %s", resp.Query), true
	}
	return "", false
}

// SearchFirmsTool searches the web for AI VC firms matching a query.
type SearchFirmsTool struct {
	searcher research.Searcher
}

func NewSearchFirmsTool(searcher research.Searcher) *SearchFirmsTool {
	return &SearchFirmsTool{searcher: searcher}
}

func (t *SearchFirmsTool) Name() string { return "search_ai_vcs" }
func (t *SearchFirmsTool) Description() string {
	return "Search for AI venture capital firms based on a query"
}
func (t *SearchFirmsTool) Parameters() map[string]any {
	return ToolParameters(
		map[string]Param{
			"query": {Type: "string", Description: "Topic or firm to search for"},
		},
		[]string{"query"},
	)
}

func (t *SearchFirmsTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	query := ArgsString(args, "query")
	if query == "" {
		return "", fmt.Errorf("missing argument: query")
	}

	resp := t.searcher.Search(ctx, query+" AI venture capital firms", firmSearchCount)
	if msg, done := degradedMessage(resp); done {
		return msg, nil
	}
	return report.Search(query, resp.Results), nil
}

// PortfolioURLsTool searches for portfolio pages of one firm.
type PortfolioURLsTool struct {
	searcher research.Searcher
}

func NewPortfolioURLsTool(searcher research.Searcher) *PortfolioURLsTool {
	return &PortfolioURLsTool{searcher: searcher}
}

func (t *PortfolioURLsTool) Name() string { return "get_vc_portfolio_urls" }
func (t *PortfolioURLsTool) Description() string {
	return "Get URLs about a VC firm's portfolio for use with web_fetch"
}
func (t *PortfolioURLsTool) Parameters() map[string]any {
	return ToolParameters(
		map[string]Param{
			"vc_name": {Type: "string", Description: "Name of the VC firm"},
		},
		[]string{"vc_name"},
	)
}

func (t *PortfolioURLsTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	name := ArgsString(args, "vc_name")
	if name == "" {
		return "", fmt.Errorf("missing argument: vc_name")
	}

	resp := t.searcher.Search(ctx, name+" portfolio companies investments list", portfolioSearchCount)
	if msg, done := degradedMessage(resp); done {
		return msg, nil
	}
	return report.Portfolio(name, resp.Results), nil
}
