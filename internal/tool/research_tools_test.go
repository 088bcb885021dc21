package tool

import (
	"context"
	"strings"
	"testing"

	"vcscout/internal/domain"
	"vcscout/internal/history"
	"vcscout/internal/research"
	"vcscout/internal/search"
)

// seqSearcher returns canned responses in call order, cycling the last one.
type seqSearcher struct {
	responses []search.Response
	calls     int
}

func (s *seqSearcher) Search(ctx context.Context, query string, count int) search.Response {
	s.calls++
	if len(s.responses) == 0 {
		return search.Response{Query: query, Status: search.StatusOK}
	}
	resp := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	resp.Query = query
	return resp
}

// recordingStore captures research runs in memory.
type recordingStore struct {
	runs []domain.ResearchRun
}

func (r *recordingStore) Record(ctx context.Context, run domain.ResearchRun) error {
	r.runs = append(r.runs, run)
	return nil
}
func (r *recordingStore) Recent(ctx context.Context, limit int) ([]domain.ResearchRun, error) {
	return r.runs, nil
}
func (r *recordingStore) Close() error { return nil }

func testResearcher(searcher research.Searcher) *research.Researcher {
	return research.New(searcher, research.NopPacer{}, testLogger())
}

func TestResearchFirmTool_Report(t *testing.T) {
	searcher := &seqSearcher{responses: []search.Response{okResponse("https://example.com/a")}}
	store := &recordingStore{}
	tool := NewResearchFirmTool(testResearcher(searcher), store, testLogger())

	out, err := tool.Execute(context.Background(), map[string]any{"vc_name": "NEA"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "RESEARCH REPORT: NEA") {
		t.Fatalf("expected research report header, got:\n%s", out)
	}
	if searcher.calls != 3 {
		t.Fatalf("expected 3 search calls, got %d", searcher.calls)
	}
}

func TestResearchFirmTool_RecordsHistory(t *testing.T) {
	searcher := &seqSearcher{responses: []search.Response{okResponse("https://example.com/a")}}
	store := &recordingStore{}
	tool := NewResearchFirmTool(testResearcher(searcher), store, testLogger())

	if _, err := tool.Execute(context.Background(), map[string]any{"vc_name": "NEA"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(store.runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(store.runs))
	}
	run := store.runs[0]
	if run.FirmName != "NEA" || run.Tool != "research_vc_firm" {
		t.Fatalf("unexpected run: %+v", run)
	}
	if run.QueryCount != 3 {
		t.Fatalf("expected 3 queries, got %d", run.QueryCount)
	}
}

func TestResearchFirmTool_MissingArg(t *testing.T) {
	tool := NewResearchFirmTool(testResearcher(&seqSearcher{}), history.NopStore{}, testLogger())
	if _, err := tool.Execute(context.Background(), nil); err == nil {
		t.Fatal("expected error for missing vc_name")
	}
}

func TestFirmURLsTool_Report(t *testing.T) {
	searcher := &seqSearcher{responses: []search.Response{okResponse("https://example.com/a", "https://example.com/b")}}
	tool := NewFirmURLsTool(testResearcher(searcher), history.NopStore{}, testLogger())

	out, err := tool.Execute(context.Background(), map[string]any{"vc_name": "GV"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "URLs FOR GV") {
		t.Fatalf("expected URL report header, got:\n%s", out)
	}
	if !strings.Contains(out, "1. https://example.com/a") {
		t.Fatalf("expected numbered URLs, got:\n%s", out)
	}
}

func TestCompareFirmsTool(t *testing.T) {
	searcher := &seqSearcher{responses: []search.Response{okResponse("https://example.com/x")}}
	store := &recordingStore{}
	tool := NewCompareFirmsTool(testResearcher(searcher), store, testLogger())

	out, err := tool.Execute(context.Background(), map[string]any{"vc_names": "Sequoia Capital, NEA"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "COMPARISON URLs: Sequoia Capital vs NEA") {
		t.Fatalf("expected comparison header, got:\n%s", out)
	}
	if searcher.calls != 6 {
		t.Fatalf("expected 6 search calls (3 per firm), got %d", searcher.calls)
	}
	if len(store.runs) != 2 {
		t.Fatalf("expected 2 recorded runs, got %d", len(store.runs))
	}
}

func TestCompareFirmsTool_SkipsEmptyNames(t *testing.T) {
	searcher := &seqSearcher{}
	tool := NewCompareFirmsTool(testResearcher(searcher), history.NopStore{}, testLogger())

	out, err := tool.Execute(context.Background(), map[string]any{"vc_names": " a16z , , "})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "COMPARISON URLs: a16z") {
		t.Fatalf("expected single-firm comparison, got:\n%s", out)
	}
	if searcher.calls != 3 {
		t.Fatalf("expected 3 search calls for one firm, got %d", searcher.calls)
	}
}

func TestCompareFirmsTool_MissingArg(t *testing.T) {
	tool := NewCompareFirmsTool(testResearcher(&seqSearcher{}), history.NopStore{}, testLogger())
	if _, err := tool.Execute(context.Background(), map[string]any{"vc_names": " , "}); err == nil {
		t.Fatal("expected error for empty name list")
	}
}
