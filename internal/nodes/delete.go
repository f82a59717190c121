package nodes

import (
	"fmt"
	"time"

	"github.com/flowgrid/flowfs/internal/fsops"
	"github.com/flowgrid/flowfs/internal/types"
)

// DeleteNode removes files and directories behind safety gates.
type DeleteNode struct {
	*Base
}

// GetTools returns the delete tool definition.
func (n *DeleteNode) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "fs.delete",
			Name:        "Delete",
			Description: "Delete a file or directory with safety gates",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory path", Required: true},
				{Name: "deleteMode", Type: "string", Description: "Accepted target kind", Required: false, Default: "auto", Enum: []string{"file", "directory", "auto"}},
				{Name: "recursive", Type: "boolean", Description: "Delete non-empty directories", Required: false, Default: false},
				{Name: "skipIfNotExists", Type: "boolean", Description: "Missing target is a skipped success", Required: false, Default: false},
				{Name: "maxSize", Type: "number", Description: "Refuse files larger than this many bytes (0 = off)", Required: false, Default: 0},
				{Name: "requireConfirmation", Type: "boolean", Description: "Demand a matching confirmation text", Required: false, Default: false},
				{Name: "confirmationPhrase", Type: "string", Description: "Phrase the confirmation text must equal", Required: false},
				{Name: "confirmationText", Type: "string", Description: "Caller-supplied confirmation", Required: false},
				{Name: "backup", Type: "boolean", Description: "Copy the file aside before deleting", Required: false, Default: false},
				{Name: "backupPath", Type: "string", Description: "Explicit backup destination", Required: false},
			},
			Returns: "object",
		},
	}
}

// Run executes the delete tool.
func (n *DeleteNode) Run(toolID string, params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	if toolID != "fs.delete" {
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

	deleteMode, _ := GetString(params, "deleteMode")
	if deleteMode == "" {
		deleteMode = string(fsops.DeleteAuto)
	}
	switch fsops.DeleteMode(deleteMode) {
	case fsops.DeleteFileMode, fsops.DeleteDirectoryMode, fsops.DeleteAuto:
	default:
		return Failure(fmt.Sprintf("unsupported deleteMode: %s", deleteMode))
	}

	opts := fsops.DeleteOptions{
		Mode:                fsops.DeleteMode(deleteMode),
		Recursive:           GetBool(params, "recursive", false),
		SkipIfNotExists:     GetBool(params, "skipIfNotExists", false),
		MaxSize:             GetInt64(params, "maxSize", 0),
		RequireConfirmation: GetBool(params, "requireConfirmation", false),
		Backup:              GetBool(params, "backup", false),
	}
	opts.ConfirmationPhrase, _ = GetString(params, "confirmationPhrase")
	opts.ConfirmationText, _ = GetString(params, "confirmationText")
	if opts.Backup {
		explicit, _ := GetString(params, "backupPath")
		opts.BackupPath = n.backupPath(fullPath, explicit, time.Now().Unix())
	}

	result, err := fsops.Delete(fullPath, opts)
	if err != nil {
		return Failure(err.Error())
	}

	out := map[string]interface{}{
		"path":    fullPath,
		"deleted": result.Deleted,
		"skipped": result.Skipped,
	}
	if result.Deleted {
		out["type"] = string(result.Entry.Kind)
		out["size"] = result.Entry.Size
	}
	if result.BackupPath != "" {
		out["backup_path"] = result.BackupPath
	}
	return Success(out)
}
