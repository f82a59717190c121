package nodes

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/flowgrid/flowfs/internal/fsops"
	"github.com/flowgrid/flowfs/internal/types"
)

// WriteNode writes content to a file from one of several sources.
type WriteNode struct {
	*Base
}

// GetTools returns the write tool definition.
func (n *WriteNode) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "fs.write",
			Name:        "Write File",
			Description: "Write text, binary or record content to a file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "source", Type: "string", Description: "Content source", Required: false, Default: "text", Enum: []string{"text", "base64", "binaryField", "json", "property"}},
				{Name: "content", Type: "string", Description: "Content for text/base64 sources", Required: false},
				{Name: "field", Type: "string", Description: "Binary field name for binaryField source", Required: false},
				{Name: "value", Type: "object", Description: "Value for json source", Required: false},
				{Name: "property", Type: "string", Description: "Input record property for property source", Required: false},
				{Name: "writeMode", Type: "string", Description: "Existing destination handling", Required: false, Default: "overwrite", Enum: []string{"overwrite", "append", "createOnly"}},
				{Name: "permissions", Type: "string", Description: "Octal mode on creation, e.g. 0644", Required: false, Default: "0644"},
				{Name: "createParents", Type: "boolean", Description: "Create missing parent directories", Required: false, Default: false},
				{Name: "backup", Type: "boolean", Description: "Back up an existing destination first", Required: false, Default: false},
				{Name: "backupPath", Type: "string", Description: "Explicit backup destination", Required: false},
			},
			Returns: "object",
		},
	}
}

// Run executes the write tool.
func (n *WriteNode) Run(toolID string, params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	if toolID != "fs.write" {
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

	data, failMsg := resolveContent(params, runCtx)
	if failMsg != "" {
		return Failure(failMsg)
	}

	perm, ok := GetMode(params, "permissions", 0o644)
	if !ok {
		return Failure("permissions must be an octal string, e.g. 0644")
	}

	writeMode, _ := GetString(params, "writeMode")
	if writeMode == "" {
		writeMode = string(fsops.WriteOverwrite)
	}
	switch fsops.WriteMode(writeMode) {
	case fsops.WriteOverwrite, fsops.WriteAppend, fsops.WriteCreateOnly:
	default:
		return Failure(fmt.Sprintf("unsupported writeMode: %s", writeMode))
	}

	opts := fsops.WriteOptions{
		Mode:          fsops.WriteMode(writeMode),
		Permissions:   perm,
		CreateParents: GetBool(params, "createParents", false),
		Backup:        GetBool(params, "backup", false),
	}
	if opts.Backup {
		explicit, _ := GetString(params, "backupPath")
		opts.BackupPath = n.backupPath(fullPath, explicit, time.Now().Unix())
	}

	receipt, err := fsops.WriteFile(fullPath, data, opts)
	if err != nil {
		return Failure(err.Error())
	}

	out := map[string]interface{}{
		"path":    fullPath,
		"written": receipt.BytesWritten,
		"created": receipt.Created,
	}
	if receipt.BackupPath != "" {
		out["backup_path"] = receipt.BackupPath
	}
	return Success(out)
}

// resolveContent materializes the bytes to write from the configured
// source. The second return is a failure message, empty on success.
func resolveContent(params map[string]interface{}, runCtx *types.Context) ([]byte, string) {
	source, _ := GetString(params, "source")
	if source == "" {
		source = "text"
	}

	switch source {
	case "text":
		content, ok := GetString(params, "content")
		if !ok {
			return nil, "content parameter required for text source"
		}
		return []byte(content), ""

	case "base64":
		content, ok := GetString(params, "content")
		if !ok || content == "" {
			return nil, "content parameter required for base64 source"
		}
		decoded, err := base64.StdEncoding.DecodeString(content)
		if err != nil {
			return nil, fmt.Sprintf("base64 decode error: %v", err)
		}
		return decoded, ""

	case "binaryField":
		field, ok := GetString(params, "field")
		if !ok || field == "" {
			return nil, "field parameter required for binaryField source"
		}
		if runCtx == nil || runCtx.Binary == nil {
			return nil, fmt.Sprintf("input record has no binary field %q", field)
		}
		data, ok := runCtx.Binary[field]
		if !ok {
			return nil, fmt.Sprintf("input record has no binary field %q", field)
		}
		return data, ""

	case "json":
		value, ok := params["value"]
		if !ok {
			return nil, "value parameter required for json source"
		}
		encoded, err := encodeJSON(value, true)
		if err != nil {
			return nil, fmt.Sprintf("json encoding error: %v", err)
		}
		return encoded, ""

	case "property":
		property, ok := GetString(params, "property")
		if !ok || property == "" {
			return nil, "property parameter required for property source"
		}
		if runCtx == nil || runCtx.Item == nil {
			return nil, fmt.Sprintf("input record has no property %q", property)
		}
		value, ok := runCtx.Item[property]
		if !ok {
			return nil, fmt.Sprintf("input record has no property %q", property)
		}
		// A string property writes verbatim; anything else serializes.
		if s, isString := value.(string); isString {
			return []byte(s), ""
		}
		encoded, err := encodeJSON(value, true)
		if err != nil {
			return nil, fmt.Sprintf("json encoding error: %v", err)
		}
		return encoded, ""

	default:
		return nil, fmt.Sprintf("unsupported source: %s", source)
	}
}
