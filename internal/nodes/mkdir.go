package nodes

import (
	"fmt"

	"github.com/flowgrid/flowfs/internal/fsops"
	"github.com/flowgrid/flowfs/internal/types"
)

// MkdirNode creates directories.
type MkdirNode struct {
	*Base
}

// GetTools returns the mkdir tool definition.
func (n *MkdirNode) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "fs.mkdir",
			Name:        "Create Directory",
			Description: "Create a directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
				{Name: "parents", Type: "boolean", Description: "Create missing intermediate directories", Required: false, Default: false},
				{Name: "permissions", Type: "string", Description: "Octal mode on creation", Required: false, Default: "0755"},
				{Name: "skipIfExists", Type: "boolean", Description: "Existing directory is a success", Required: false, Default: false},
			},
			Returns: "object",
		},
	}
}

// Run executes the mkdir tool.
func (n *MkdirNode) Run(toolID string, params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	if toolID != "fs.mkdir" {
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}

	path, ok := GetString(params, "path")
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	fullPath, err := n.resolvePath(path, runCtx)
	if err != nil {
		return Failure(err.Error())
	}

	perm, ok := GetMode(params, "permissions", 0o755)
	if !ok {
		return Failure("permissions must be an octal string, e.g. 0755")
	}

	result, err := fsops.Mkdir(fullPath, fsops.MkdirOptions{
		Parents:      GetBool(params, "parents", false),
		Permissions:  perm,
		SkipIfExists: GetBool(params, "skipIfExists", false),
	})
	if err != nil {
		return Failure(err.Error())
	}

	return Success(map[string]interface{}{
		"path":    fullPath,
		"created": result.Created,
		"existed": result.Existed,
	})
}
