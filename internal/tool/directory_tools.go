package tool

import (
	"context"
	"fmt"
	"strings"

	"vcscout/internal/directory"
)

// ListFirmsTool lists the static catalog of well-known AI VC firms.
type ListFirmsTool struct {
	dir *directory.Directory
}

func NewListFirmsTool(dir *directory.Directory) *ListFirmsTool {
	return &ListFirmsTool{dir: dir}
}

func (t *ListFirmsTool) Name() string { return "get_ai_vcs" }
func (t *ListFirmsTool) Description() string {
	return "Get list of top AI venture capital firms"
}
func (t *ListFirmsTool) Parameters() map[string]any {
	return ToolParameters(map[string]Param{}, nil)
}

func (t *ListFirmsTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	return strings.Join(t.dir.List(), "\n"), nil
}

// FirmInfoTool returns the detail block for one firm key.
type FirmInfoTool struct {
	dir *directory.Directory
}

func NewFirmInfoTool(dir *directory.Directory) *FirmInfoTool {
	return &FirmInfoTool{dir: dir}
}

func (t *FirmInfoTool) Name() string { return "get_vc_info" }
func (t *FirmInfoTool) Description() string {
	return fmt.Sprintf("Get detailed info about a specific VC firm (use keys: %s)",
		strings.Join(t.dir.Keys(), ", "))
}
func (t *FirmInfoTool) Parameters() map[string]any {
	return ToolParameters(
		map[string]Param{
			"vc_key": {Type: "string", Description: "Short key of the firm, e.g. a16z"},
		},
		[]string{"vc_key"},
	)
}

func (t *FirmInfoTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	key := ArgsString(args, "vc_key")
	if key == "" {
		return "", fmt.Errorf("missing argument: vc_key")
	}
	return t.dir.Describe(key), nil
}
