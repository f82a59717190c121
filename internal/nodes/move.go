package nodes

import (
	"fmt"
	"time"

	"github.com/flowgrid/flowfs/internal/fsops"
	"github.com/flowgrid/flowfs/internal/types"
)

// MoveNode relocates files and directories, falling back from rename
// to copy+delete when asked.
type MoveNode struct {
	*Base
}

// GetTools returns the move tool definition.
func (n *MoveNode) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "fs.move",
			Name:        "Move",
			Description: "Move or rename a file or directory",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination path", Required: true},
				{Name: "mode", Type: "string", Description: "Accepted source kind", Required: false, Default: "auto", Enum: []string{"file", "directory", "auto"}},
				{Name: "overwrite", Type: "boolean", Description: "Replace an existing destination", Required: false, Default: false},
				{Name: "recursive", Type: "boolean", Description: "Required when the fallback copies a directory", Required: false, Default: false},
				{Name: "preserveTimestamps", Type: "boolean", Description: "Keep source times on the fallback copy", Required: false, Default: false},
				{Name: "createDestinationDirs", Type: "boolean", Description: "Create missing destination parents", Required: false, Default: false},
				{Name: "fallbackToCopy", Type: "boolean", Description: "Copy and delete when rename fails (cross-device)", Required: false, Default: false},
				{Name: "backup", Type: "boolean", Description: "Copy the source file aside before moving", Required: false, Default: false},
				{Name: "backupPath", Type: "string", Description: "Explicit backup destination", Required: false},
			},
			Returns: "object",
		},
	}
}

// Run executes the move tool.
func (n *MoveNode) Run(toolID string, params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	if toolID != "fs.move" {
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

	out := map[string]interface{}{
		"moved":       true,
		"source":      fullSource,
		"destination": fullDest,
	}

	if GetBool(params, "backup", false) {
		explicit, _ := GetString(params, "backupPath")
		backupPath, err := fsops.BackupCopy(fullSource, n.backupPath(fullSource, explicit, time.Now().Unix()))
		if err != nil {
			return Failure(err.Error())
		}
		out["backup_path"] = backupPath
	}

	result, err := fsops.Move(fullSource, fullDest, fsops.MoveOptions{
		TransferOptions: fsops.TransferOptions{
			Overwrite:             GetBool(params, "overwrite", false),
			PreserveTimestamps:    GetBool(params, "preserveTimestamps", false),
			CreateDestinationDirs: GetBool(params, "createDestinationDirs", false),
			Recursive:             GetBool(params, "recursive", false),
		},
		FallbackToCopy: GetBool(params, "fallbackToCopy", false),
	})
	if err != nil {
		return Failure(err.Error())
	}

	out["strategy"] = string(result.Strategy)
	if result.Strategy == fsops.MoveCopyDelete {
		out["bytes_copied"] = result.BytesCopied
	}
	return Success(out)
}
