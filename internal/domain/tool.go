package domain

import "context"

// Tool is the interface for callable research operations (directory lookups,
// web search, firm research).
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]any
	Execute(ctx context.Context, args map[string]any) (string, error)
}
