package nodes

import (
	"fmt"

	"github.com/flowgrid/flowfs/internal/fsops"
	"github.com/flowgrid/flowfs/internal/fsutil"
	"github.com/flowgrid/flowfs/internal/types"
)

// CopyNode copies files and directory subtrees.
type CopyNode struct {
	*Base
}

// GetTools returns the copy tool definition.
func (n *CopyNode) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "fs.copy",
			Name:        "Copy",
			Description: "Copy a file or directory subtree",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination path", Required: true},
				{Name: "mode", Type: "string", Description: "Accepted source kind", Required: false, Default: "auto", Enum: []string{"file", "directory", "auto"}},
				{Name: "overwrite", Type: "boolean", Description: "Replace an existing destination", Required: false, Default: false},
				{Name: "recursive", Type: "boolean", Description: "Required for directory sources", Required: false, Default: false},
				{Name: "preserveTimestamps", Type: "boolean", Description: "Keep source modification times", Required: false, Default: false},
				{Name: "createDestinationDirs", Type: "boolean", Description: "Create missing destination parents", Required: false, Default: false},
			},
			Returns: "object",
		},
	}
}

// Run executes the copy tool.
func (n *CopyNode) Run(toolID string, params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	if toolID != "fs.copy" {
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}

	source, destination, kindMode, failMsg := transferArgs(params)
	if failMsg != "" {
		return Failure(failMsg)
	}

	fullSource, err := n.resolvePath(source, runCtx)
	if err != nil {
		return Failure(err.Error())
	}
	fullDest, err := n.resolvePath(destination, runCtx)
	if err != nil {
		return Failure(err.Error())
	}

	if failMsg := checkTransferKind(fullSource, kindMode); failMsg != "" {
		return Failure(failMsg)
	}

	written, err := fsops.Copy(fullSource, fullDest, fsops.TransferOptions{
		Overwrite:             GetBool(params, "overwrite", false),
		PreserveTimestamps:    GetBool(params, "preserveTimestamps", false),
		CreateDestinationDirs: GetBool(params, "createDestinationDirs", false),
		Recursive:             GetBool(params, "recursive", false),
	})
	if err != nil {
		return Failure(err.Error())
	}

	return Success(map[string]interface{}{
		"copied":      true,
		"source":      fullSource,
		"destination": fullDest,
		"bytes":       written,
		"bytes_human": fsutil.FormatBytes(written),
	})
}

// transferArgs extracts the shared copy/move parameters. The last
// return is a failure message, empty on success.
func transferArgs(params map[string]interface{}) (source, destination, kindMode, failMsg string) {
	source, ok := GetString(params, "source")
	if !ok || source == "" {
		return "", "", "", "source parameter required"
	}

	destination, ok = GetString(params, "destination")
	if !ok || destination == "" {
		return "", "", "", "destination parameter required"
	}

	kindMode, _ = GetString(params, "mode")
	if kindMode == "" {
		kindMode = "auto"
	}
	switch kindMode {
	case "file", "directory", "auto":
	default:
		return "", "", "", fmt.Sprintf("unsupported mode: %s", kindMode)
	}

	return source, destination, kindMode, ""
}

// checkTransferKind enforces the file/directory mode restriction
// against the source before any transfer work.
func checkTransferKind(fullSource, kindMode string) string {
	if kindMode == "auto" {
		return ""
	}

	entry, err := fsops.Stat(fullSource)
	if err != nil {
		return err.Error()
	}

	switch kindMode {
	case "file":
		if entry.Kind == fsops.KindDirectory {
			return fmt.Sprintf("source is a directory, expected file: %s", fullSource)
		}
	case "directory":
		if entry.Kind != fsops.KindDirectory {
			return fmt.Sprintf("source is not a directory: %s", fullSource)
		}
	}
	return ""
}
