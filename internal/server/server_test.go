package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"vcscout/internal/domain"
	"vcscout/internal/metrics"
	"vcscout/internal/tool"
)

func callReq(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	for _, c := range res.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	t.Fatal("no text content in result")
	return ""
}

// stubTool is a minimal tool for testing MCP registration and handling.
type stubTool struct {
	name   string
	result string
	err    error
}

func (s *stubTool) Name() string            { return s.name }
func (s *stubTool) Description() string     { return "stub: " + s.name }
func (s *stubTool) Parameters() map[string]any {
	return tool.ToolParameters(map[string]tool.Param{
		"query": {Type: "string", Description: "test arg"},
	}, []string{"query"})
}
func (s *stubTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	return s.result, s.err
}

var _ domain.Tool = (*stubTool)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestNew_RegistersTools(t *testing.T) {
	reg := tool.NewRegistry(testLogger())
	reg.Register(&stubTool{name: "alpha", result: "ok"})
	reg.Register(&stubTool{name: "beta", result: "ok"})

	srv, err := New(reg, "0.0.1", testLogger())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv == nil {
		t.Fatal("expected a server")
	}
}

func TestToMCPTool_Schema(t *testing.T) {
	mcpTool, err := toMCPTool(&stubTool{name: "alpha"})
	if err != nil {
		t.Fatalf("to mcp tool: %v", err)
	}
	if mcpTool.Name != "alpha" {
		t.Fatalf("expected name alpha, got %q", mcpTool.Name)
	}

	var schema map[string]any
	if err := json.Unmarshal(mcpTool.RawInputSchema, &schema); err != nil {
		t.Fatalf("unmarshal schema: %v", err)
	}
	if schema["type"] != "object" {
		t.Fatalf("expected object schema, got %v", schema["type"])
	}
	props, ok := schema["properties"].(map[string]any)
	if !ok || props["query"] == nil {
		t.Fatalf("expected query property in schema: %v", schema)
	}
}

func newTestRegistry(tools ...*stubTool) *tool.Registry {
	reg := tool.NewRegistry(testLogger())
	for _, t := range tools {
		reg.Register(t)
	}
	return reg
}

func TestHandler_Success(t *testing.T) {
	reg := newTestRegistry(&stubTool{name: "alpha", result: "hello"})
	h := handler(reg, "alpha", testLogger())

	result, err := h(context.Background(), callReq("alpha", map[string]any{"query": "x"}))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if result.IsError {
		t.Fatal("expected success result")
	}
	if text := resultText(t, result); text != "hello" {
		t.Fatalf("expected 'hello', got %q", text)
	}
}

func TestHandler_ToolErrorBecomesErrorResult(t *testing.T) {
	reg := newTestRegistry(&stubTool{name: "alpha", err: errors.New("boom")})
	h := handler(reg, "alpha", testLogger())

	result, err := h(context.Background(), callReq("alpha", nil))
	if err != nil {
		t.Fatalf("tool errors must not become protocol errors: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result")
	}
	text := resultText(t, result)
	if !strings.Contains(text, "alpha") || !strings.Contains(text, "boom") {
		t.Fatalf("expected descriptive error text, got %q", text)
	}
}

func TestHandler_CountsExecutions(t *testing.T) {
	reg := newTestRegistry(&stubTool{name: "alpha", result: "ok"})
	h := handler(reg, "alpha", testLogger())

	before := metrics.ToolExecutions.Value()
	if _, err := h(context.Background(), callReq("alpha", nil)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if got := metrics.ToolExecutions.Value(); got != before+1 {
		t.Fatalf("expected tool execution counter %d, got %d", before+1, got)
	}
}
