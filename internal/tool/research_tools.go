package tool

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"vcscout/internal/domain"
	"vcscout/internal/report"
	"vcscout/internal/research"
)

// recordRun logs a completed research invocation to the history store.
// History is best-effort: a store failure never fails the tool call.
func recordRun(ctx context.Context, store domain.ResearchStore, logger *slog.Logger, toolName string, bundle domain.Bundle) {
	run := domain.ResearchRun{
		FirmName:    bundle.FirmName,
		Tool:        toolName,
		QueryCount:  research.QueryCount(),
		ResultCount: len(bundle.Results),
		URLCount:    len(bundle.TopURLs),
		Degraded:    bundle.Degraded,
	}
	if err := store.Record(ctx, run); err != nil {
		logger.Warn("cannot record research run", "firm", bundle.FirmName, "err", err)
	}
}

// FirmURLsTool researches one firm and returns URLs for a fetch tool.
type FirmURLsTool struct {
	researcher *research.Researcher
	store      domain.ResearchStore
	logger     *slog.Logger
}

func NewFirmURLsTool(r *research.Researcher, store domain.ResearchStore, logger *slog.Logger) *FirmURLsTool {
	return &FirmURLsTool{researcher: r, store: store, logger: logger}
}

func (t *FirmURLsTool) Name() string { return "get_vc_urls" }
func (t *FirmURLsTool) Description() string {
	return "Get URLs for a VC firm that can be used with web_fetch tool"
}
func (t *FirmURLsTool) Parameters() map[string]any {
	return ToolParameters(
		map[string]Param{
			"vc_name": {Type: "string", Description: "Name of the VC firm"},
		},
		[]string{"vc_name"},
	)
}

func (t *FirmURLsTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	name := ArgsString(args, "vc_name")
	if name == "" {
		return "", fmt.Errorf("missing argument: vc_name")
	}

	t.logger.Info("collecting URLs", "firm", name)
	bundle, err := t.researcher.Research(ctx, name)
	if err != nil {
		return "", err
	}
	recordRun(ctx, t.store, t.logger, t.Name(), bundle)
	return report.URLs(bundle), nil
}

// ResearchFirmTool produces the full research report for one firm.
type ResearchFirmTool struct {
	researcher *research.Researcher
	store      domain.ResearchStore
	logger     *slog.Logger
}

func NewResearchFirmTool(r *research.Researcher, store domain.ResearchStore, logger *slog.Logger) *ResearchFirmTool {
	return &ResearchFirmTool{researcher: r, store: store, logger: logger}
}

func (t *ResearchFirmTool) Name() string { return "research_vc_firm" }
func (t *ResearchFirmTool) Description() string {
	return "Research a specific VC firm and provide URLs for detailed content fetching"
}
func (t *ResearchFirmTool) Parameters() map[string]any {
	return ToolParameters(
		map[string]Param{
			"vc_name": {Type: "string", Description: "Name of the VC firm"},
		},
		[]string{"vc_name"},
	)
}

func (t *ResearchFirmTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	name := ArgsString(args, "vc_name")
	if name == "" {
		return "", fmt.Errorf("missing argument: vc_name")
	}

	t.logger.Info("researching firm", "firm", name)
	bundle, err := t.researcher.Research(ctx, name)
	if err != nil {
		return "", err
	}
	recordRun(ctx, t.store, t.logger, t.Name(), bundle)
	return report.Research(bundle), nil
}

// CompareFirmsTool researches several firms sequentially and renders a
// per-firm comparison report.
type CompareFirmsTool struct {
	researcher *research.Researcher
	store      domain.ResearchStore
	logger     *slog.Logger
}

func NewCompareFirmsTool(r *research.Researcher, store domain.ResearchStore, logger *slog.Logger) *CompareFirmsTool {
	return &CompareFirmsTool{researcher: r, store: store, logger: logger}
}

func (t *CompareFirmsTool) Name() string { return "compare_vc_firms" }
func (t *CompareFirmsTool) Description() string {
	return "Get comparison URLs for multiple VC firms (provide comma-separated list)"
}
func (t *CompareFirmsTool) Parameters() map[string]any {
	return ToolParameters(
		map[string]Param{
			"vc_names": {Type: "string", Description: "Comma-separated firm names, e.g. 'Sequoia Capital, NEA'"},
		},
		[]string{"vc_names"},
	)
}

func (t *CompareFirmsTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	raw := ArgsString(args, "vc_names")
	names := splitNames(raw)
	if len(names) == 0 {
		return "", fmt.Errorf("missing argument: vc_names")
	}

	bundles := make([]domain.Bundle, 0, len(names))
	for i, name := range names {
		if i > 0 {
			if err := t.researcher.Pace(ctx); err != nil {
				return "", err
			}
		}
		t.logger.Info("researching firm for comparison", "firm", name)
		bundle, err := t.researcher.Research(ctx, name)
		if err != nil {
			return "", err
		}
		recordRun(ctx, t.store, t.logger, t.Name(), bundle)
		bundles = append(bundles, bundle)
	}

	return report.Comparison(bundles), nil
}

// splitNames parses a comma-separated name list, dropping empty entries.
func splitNames(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
