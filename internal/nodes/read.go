package nodes

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"

	"github.com/flowgrid/flowfs/internal/fsops"
	"github.com/flowgrid/flowfs/internal/fsutil"
	"github.com/flowgrid/flowfs/internal/types"
)

// ReadNode reads file content as text, binary or parsed JSON.
type ReadNode struct {
	*Base
}

// GetTools returns the read tool definitions.
func (n *ReadNode) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "fs.read",
			Name:        "Read File",
			Description: "Read file contents as text, binary or parsed JSON",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "mode", Type: "string", Description: "Content handling", Required: false, Default: "text", Enum: []string{"text", "binary", "json"}},
				{Name: "encoding", Type: "string", Description: "Text decoding", Required: false, Default: "utf8", Enum: []string{"utf8", "ascii", "utf16le", "base64", "hex"}},
				{Name: "maxSize", Type: "number", Description: "Size ceiling in bytes (0 = configured default, negative = unlimited)", Required: false, Default: 0},
			},
			Returns: "object",
		},
		{
			ID:          "fs.read_lines",
			Name:        "Read Lines",
			Description: "Read a line range of a file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "startLine", Type: "number", Description: "First line, 1-based", Required: false, Default: 1},
				{Name: "endLine", Type: "number", Description: "Last line inclusive (0 = to end)", Required: false, Default: 0},
			},
			Returns: "object",
		},
	}
}

// Run executes a read tool.
func (n *ReadNode) Run(toolID string, params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "fs.read":
		return n.read(params, runCtx)
	case "fs.read_lines":
		return n.readLines(params, runCtx)
	default:
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (n *ReadNode) read(params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	path, ok := GetString(params, "path")
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	mode, _ := GetString(params, "mode")
	if mode == "" {
		mode = "text"
	}

	fullPath, err := n.resolvePath(path, runCtx)
	if err != nil {
		return Failure(err.Error())
	}

	maxSize := n.readCap(GetInt64(params, "maxSize", 0))
	data, entry, err := fsops.ReadFileCapped(fullPath, maxSize)
	if err != nil {
		return Failure(err.Error())
	}

	switch mode {
	case "binary":
		mime, _ := fsutil.DetectMime(fullPath)
		return Success(map[string]interface{}{
			"path":    fullPath,
			"content": base64.StdEncoding.EncodeToString(data),
			"size":    entry.Size,
			"mime":    mime,
			"binary":  fsutil.LooksBinary(data),
		})
	case "json":
		parsed, err := parseJSON(data)
		if err != nil {
			return Failure(fmt.Sprintf("json parse error: %v", err))
		}
		return Success(map[string]interface{}{
			"path": fullPath,
			"data": parsed,
			"size": entry.Size,
		})
	default:
		enc, _ := GetString(params, "encoding")
		if enc == "" {
			enc = "utf8"
		}
		content, err := decodeText(data, enc)
		if err != nil {
			return Failure(fmt.Sprintf("decode error: %v", err))
		}
		return Success(map[string]interface{}{
			"path":     fullPath,
			"content":  content,
			"size":     entry.Size,
			"encoding": enc,
		})
	}
}

func (n *ReadNode) readLines(params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	path, ok := GetString(params, "path")
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	fullPath, err := n.resolvePath(path, runCtx)
	if err != nil {
		return Failure(err.Error())
	}

	start := GetInt(params, "startLine", 1)
	end := GetInt(params, "endLine", 0)

	lines, err := fsops.ReadLines(fullPath, start, end)
	if err != nil {
		return Failure(err.Error())
	}

	return Success(map[string]interface{}{
		"path":       fullPath,
		"lines":      lines,
		"count":      len(lines),
		"start_line": start,
		"end_line":   end,
	})
}

// decodeText decodes raw file bytes into a string per encoding.
func decodeText(data []byte, encoding string) (string, error) {
	switch encoding {
	case "utf8", "ascii":
		return string(data), nil
	case "utf16le":
		r, err := charset.NewReaderLabel("utf-16le", bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		decoded, err := io.ReadAll(r)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	case "base64":
		decoded, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace(data)))
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	case "hex":
		decoded, err := hex.DecodeString(string(bytes.TrimSpace(data)))
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	default:
		return "", fmt.Errorf("unsupported encoding: %s", encoding)
	}
}
