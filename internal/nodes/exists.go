package nodes

import (
	"fmt"

	"github.com/flowgrid/flowfs/internal/fsops"
	"github.com/flowgrid/flowfs/internal/types"
)

// ExistsNode answers existence and access queries.
type ExistsNode struct {
	*Base
}

// GetTools returns the exists tool definition.
func (n *ExistsNode) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "fs.exists",
			Name:        "Check Existence",
			Description: "Check whether a path exists and is accessible",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory path", Required: true},
				{Name: "kind", Type: "string", Description: "Kind the target must match", Required: false, Default: "any", Enum: []string{"file", "directory", "any"}},
				{Name: "followSymlinks", Type: "boolean", Description: "Resolve symlinks before matching", Required: false, Default: false},
				{Name: "checkRead", Type: "boolean", Description: "Probe read access", Required: false, Default: false},
				{Name: "checkWrite", Type: "boolean", Description: "Probe write access", Required: false, Default: false},
				{Name: "checkExecute", Type: "boolean", Description: "Probe execute permission", Required: false, Default: false},
				{Name: "includeDetails", Type: "boolean", Description: "Attach full metadata", Required: false, Default: false},
			},
			Returns: "object",
		},
	}
}

// Run executes the exists tool.
func (n *ExistsNode) Run(toolID string, params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	if toolID != "fs.exists" {
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

	kind, _ := GetString(params, "kind")
	if kind == "" {
		kind = string(fsops.KindAny)
	}
	switch fsops.Kind(kind) {
	case fsops.KindFile, fsops.KindDirectory, fsops.KindAny:
	default:
		return Failure(fmt.Sprintf("unsupported kind: %s", kind))
	}

	includeDetails := GetBool(params, "includeDetails", false)
	probe, err := fsops.Exists(fullPath, fsops.ExistsOptions{
		Kind:           fsops.Kind(kind),
		FollowSymlinks: GetBool(params, "followSymlinks", false),
		CheckRead:      GetBool(params, "checkRead", false),
		CheckWrite:     GetBool(params, "checkWrite", false),
		CheckExecute:   GetBool(params, "checkExecute", false),
		IncludeDetails: includeDetails,
	})
	if err != nil {
		return Failure(err.Error())
	}

	out := map[string]interface{}{
		"path":   fullPath,
		"exists": probe.Exists,
	}
	if probe.Exists {
		out["type"] = string(probe.Entry.Kind)
		out["kind_matches"] = probe.KindMatches
		if probe.Target != "" {
			out["target"] = probe.Target
		}
		if includeDetails {
			out["details"] = probe.Entry.Record()
		}
	}
	if probe.CanRead != nil {
		out["can_read"] = *probe.CanRead
	}
	if probe.CanWrite != nil {
		out["can_write"] = *probe.CanWrite
	}
	if probe.CanExecute != nil {
		out["can_execute"] = *probe.CanExecute
	}

	return Success(out)
}
