package nodes

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/flowgrid/flowfs/internal/fsops"
	"github.com/flowgrid/flowfs/internal/types"
)

// StructuredNode reads and writes JSON, YAML, TOML and CSV documents.
type StructuredNode struct {
	*Base
}

// GetTools returns the structured-format tool definitions.
func (n *StructuredNode) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "fs.read_structured",
			Name:        "Read Structured",
			Description: "Parse a JSON, YAML, TOML or CSV file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "format", Type: "string", Description: "Document format", Required: false, Default: "auto", Enum: []string{"json", "yaml", "toml", "csv", "auto"}},
				{Name: "hasHeader", Type: "boolean", Description: "First CSV row is a header", Required: false, Default: true},
				{Name: "maxSize", Type: "number", Description: "Refuse files larger than this many bytes (0 = configured default)", Required: false, Default: 0},
			},
			Returns: "object",
		},
		{
			ID:          "fs.write_structured",
			Name:        "Write Structured",
			Description: "Encode a value as JSON, YAML, TOML or CSV and write it",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "value", Type: "object", Description: "Value to encode", Required: true},
				{Name: "format", Type: "string", Description: "Document format", Required: false, Default: "auto", Enum: []string{"json", "yaml", "toml", "csv", "auto"}},
				{Name: "pretty", Type: "boolean", Description: "Indent JSON output", Required: false, Default: true},
				{Name: "headers", Type: "string", Description: "Comma-separated CSV column order", Required: false},
				{Name: "createParents", Type: "boolean", Description: "Create missing parent directories", Required: false, Default: false},
			},
			Returns: "object",
		},
	}
}

// Run executes a structured-format tool.
func (n *StructuredNode) Run(toolID string, params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "fs.read_structured":
		return n.read(params, runCtx)
	case "fs.write_structured":
		return n.write(params, runCtx)
	default:
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (n *StructuredNode) read(params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	path, ok := GetString(params, "path")
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	fullPath, err := n.resolvePath(path, runCtx)
	if err != nil {
		return Failure(err.Error())
	}

	format, failMsg := deriveFormat(params, fullPath)
	if failMsg != "" {
		return Failure(failMsg)
	}

	maxSize := n.readCap(GetInt64(params, "maxSize", 0))
	data, _, err := fsops.ReadFileCapped(fullPath, maxSize)
	if err != nil {
		return Failure(err.Error())
	}

	out := map[string]interface{}{"path": fullPath, "format": format}

	switch format {
	case "json":
		parsed, err := parseJSON(data)
		if err != nil {
			return Failure(fmt.Sprintf("JSON parse error: %v", err))
		}
		out["data"] = parsed
	case "yaml":
		var parsed interface{}
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return Failure(fmt.Sprintf("YAML parse error: %v", err))
		}
		out["data"] = parsed
	case "toml":
		var parsed map[string]interface{}
		if err := toml.Unmarshal(data, &parsed); err != nil {
			return Failure(fmt.Sprintf("TOML parse error: %v", err))
		}
		out["data"] = parsed
	case "csv":
		rows, headers, err := parseCSV(data, GetBool(params, "hasHeader", true))
		if err != nil {
			return Failure(fmt.Sprintf("CSV parse error: %v", err))
		}
		out["data"] = rows
		out["headers"] = headers
		out["count"] = len(rows)
	}

	return Success(out)
}

func (n *StructuredNode) write(params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	path, ok := GetString(params, "path")
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	value, ok := params["value"]
	if !ok {
		return Failure("value parameter required")
	}

	fullPath, err := n.resolvePath(path, runCtx)
	if err != nil {
		return Failure(err.Error())
	}

	format, failMsg := deriveFormat(params, fullPath)
	if failMsg != "" {
		return Failure(failMsg)
	}

	var data []byte
	switch format {
	case "json":
		data, err = encodeJSON(value, GetBool(params, "pretty", true))
		if err != nil {
			return Failure(fmt.Sprintf("JSON encoding error: %v", err))
		}
	case "yaml":
		data, err = yaml.Marshal(value)
		if err != nil {
			return Failure(fmt.Sprintf("YAML encoding error: %v", err))
		}
	case "toml":
		data, err = toml.Marshal(value)
		if err != nil {
			return Failure(fmt.Sprintf("TOML encoding error: %v", err))
		}
	case "csv":
		rows, ok := value.([]interface{})
		if !ok || len(rows) == 0 {
			return Failure("csv format requires a non-empty array value")
		}
		data, err = encodeCSV(rows, GetStringList(params, "headers"))
		if err != nil {
			return Failure(err.Error())
		}
	}

	receipt, err := fsops.WriteFile(fullPath, data, fsops.WriteOptions{
		Mode:          fsops.WriteOverwrite,
		CreateParents: GetBool(params, "createParents", false),
	})
	if err != nil {
		return Failure(err.Error())
	}

	return Success(map[string]interface{}{
		"path":    fullPath,
		"format":  format,
		"written": receipt.BytesWritten,
		"created": receipt.Created,
	})
}

// deriveFormat resolves the format parameter, falling back to the file
// extension for "auto". The second return is a failure message, empty on
// success.
func deriveFormat(params map[string]interface{}, fullPath string) (string, string) {
	format, _ := GetString(params, "format")
	if format == "" {
		format = "auto"
	}

	switch format {
	case "json", "yaml", "toml", "csv":
		return format, ""
	case "auto":
	default:
		return "", fmt.Sprintf("unsupported format: %s", format)
	}

	switch strings.ToLower(filepath.Ext(fullPath)) {
	case ".json":
		return "json", ""
	case ".yaml", ".yml":
		return "yaml", ""
	case ".toml":
		return "toml", ""
	case ".csv":
		return "csv", ""
	}
	return "", fmt.Sprintf("cannot derive format from extension of %s", filepath.Base(fullPath))
}

// parseJSON decodes JSON, switching to sonic for payloads over 10KB.
func parseJSON(data []byte) (interface{}, error) {
	var parsed interface{}
	if len(data) > 10240 {
		if err := sonic.Unmarshal(data, &parsed); err != nil {
			return nil, err
		}
		return parsed, nil
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

// encodeJSON encodes a value as JSON, switching to sonic for large
// top-level collections.
func encodeJSON(v interface{}, pretty bool) ([]byte, error) {
	large := false
	switch val := v.(type) {
	case []interface{}:
		large = len(val) > 100
	case map[string]interface{}:
		large = len(val) > 100
	}

	if large {
		if pretty {
			return sonic.MarshalIndent(v, "", "  ")
		}
		return sonic.Marshal(v)
	}
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// parseCSV decodes CSV bytes into header-keyed row maps. Without a header
// row, columns are named col0, col1, ...
func parseCSV(data []byte, hasHeader bool) ([]map[string]interface{}, []string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return []map[string]interface{}{}, []string{}, nil
	}

	var headers []string
	startRow := 0
	if hasHeader {
		headers = records[0]
		startRow = 1
	} else {
		for i := 0; i < len(records[0]); i++ {
			headers = append(headers, fmt.Sprintf("col%d", i))
		}
	}

	rows := []map[string]interface{}{}
	for i := startRow; i < len(records); i++ {
		row := make(map[string]interface{})
		for j, value := range records[i] {
			if j < len(headers) {
				row[headers[j]] = value
			}
		}
		rows = append(rows, row)
	}
	return rows, headers, nil
}

// encodeCSV writes row maps as CSV. Column order follows the headers
// argument when given, else the sorted keys of the first row.
func encodeCSV(rows []interface{}, headers []string) ([]byte, error) {
	if len(headers) == 0 {
		firstRow, ok := rows[0].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("csv rows must be objects")
		}
		for key := range firstRow {
			headers = append(headers, key)
		}
		sort.Strings(headers)
	}

	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("CSV write error: %w", err)
	}
	for _, rowData := range rows {
		rowMap, ok := rowData.(map[string]interface{})
		if !ok {
			continue
		}
		row := make([]string, len(headers))
		for i, header := range headers {
			if val, ok := rowMap[header]; ok {
				row[i] = fmt.Sprintf("%v", val)
			}
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("CSV write error: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV flush error: %w", err)
	}
	return []byte(buf.String()), nil
}
