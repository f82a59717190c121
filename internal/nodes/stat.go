package nodes

import (
	"fmt"

	"github.com/flowgrid/flowfs/internal/fsops"
	"github.com/flowgrid/flowfs/internal/fsutil"
	"github.com/flowgrid/flowfs/internal/types"
)

// StatNode reports metadata and aggregate sizes.
type StatNode struct {
	*Base
}

// GetTools returns the stat tool definitions.
func (n *StatNode) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "fs.stat",
			Name:        "File Info",
			Description: "Get file or directory metadata",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory path", Required: true},
				{Name: "checksum", Type: "string", Description: "Digest over the full content (files only)", Required: false, Default: "none", Enum: []string{"none", "md5", "sha1", "sha256", "blake2b"}},
				{Name: "includeMime", Type: "boolean", Description: "Detect MIME type and text heuristics", Required: false, Default: false},
			},
			Returns: "object",
		},
		{
			ID:          "fs.size",
			Name:        "Aggregate Size",
			Description: "Total byte size of a file or directory subtree",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory path", Required: true},
			},
			Returns: "object",
		},
	}
}

// Run executes a stat tool.
func (n *StatNode) Run(toolID string, params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "fs.stat":
		return n.stat(params, runCtx)
	case "fs.size":
		return n.size(params, runCtx)
	default:
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (n *StatNode) stat(params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	path, ok := GetString(params, "path")
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	fullPath, err := n.resolvePath(path, runCtx)
	if err != nil {
		return Failure(err.Error())
	}

	entry, err := fsops.Stat(fullPath)
	if err != nil {
		return Failure(err.Error())
	}

	out := entry.Record()

	algo, _ := GetString(params, "checksum")
	if algo != "" && algo != "none" {
		if entry.Kind != fsops.KindFile {
			return Failure("checksum applies to files only")
		}
		digest, err := fsutil.Checksum(fullPath, fsutil.Algorithm(algo))
		if err != nil {
			return Failure(fmt.Sprintf("checksum failed: %v", err))
		}
		out["checksum"] = digest
		out["checksum_algorithm"] = algo
	}

	if GetBool(params, "includeMime", false) && entry.Kind == fsops.KindFile {
		if mime, err := fsutil.DetectMime(fullPath); err == nil {
			out["mime"] = mime
			out["is_text"] = fsutil.IsTextMime(mime)
		}
		if prefix, err := fsutil.SniffFile(fullPath); err == nil {
			out["binary"] = fsutil.LooksBinary(prefix)
			if !fsutil.LooksBinary(prefix) {
				out["charset"] = fsutil.DetectCharset(prefix)
			}
		}
	}

	return Success(out)
}

func (n *StatNode) size(params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	path, ok := GetString(params, "path")
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	fullPath, err := n.resolvePath(path, runCtx)
	if err != nil {
		return Failure(err.Error())
	}

	total, files, err := fsops.TreeSize(fullPath)
	if err != nil {
		return Failure(err.Error())
	}

	return Success(map[string]interface{}{
		"path":       fullPath,
		"size":       total,
		"size_human": fsutil.FormatBytes(total),
		"files":      files,
	})
}
