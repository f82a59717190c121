package nodes

import (
	"fmt"

	"github.com/flowgrid/flowfs/internal/fsops"
	"github.com/flowgrid/flowfs/internal/types"
)

// ListNode enumerates directory contents with filtering and sorting.
type ListNode struct {
	*Base
}

// GetTools returns the list tool definition.
func (n *ListNode) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "fs.list",
			Name:        "List Directory",
			Description: "List directory contents with filters and ordering",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
				{Name: "listMode", Type: "string", Description: "Entry kinds to report", Required: false, Default: "both", Enum: []string{"files", "directories", "both"}},
				{Name: "recursive", Type: "boolean", Description: "Descend into subdirectories", Required: false, Default: false},
				{Name: "includeHidden", Type: "boolean", Description: "Include dot-prefixed entries", Required: false, Default: false},
				{Name: "extensions", Type: "string", Description: "Comma-separated extension allow-list", Required: false},
				{Name: "pattern", Type: "string", Description: "Name regex filter", Required: false},
				{Name: "glob", Type: "string", Description: "Glob filter on the relative path (** supported)", Required: false},
				{Name: "minSize", Type: "number", Description: "Minimum file size in bytes", Required: false},
				{Name: "maxSize", Type: "number", Description: "Maximum file size in bytes", Required: false},
				{Name: "modifiedAfter", Type: "string", Description: "RFC3339 lower bound on modification time", Required: false},
				{Name: "modifiedBefore", Type: "string", Description: "RFC3339 upper bound on modification time", Required: false},
				{Name: "maxResults", Type: "number", Description: "Stop after this many entries (0 = unbounded)", Required: false, Default: 0},
				{Name: "maxDepth", Type: "number", Description: "Deepest level to descend (0 = unbounded)", Required: false, Default: 0},
				{Name: "sortBy", Type: "string", Description: "Ordering key", Required: false, Default: "name", Enum: []string{"name", "size", "modified", "created", "extension"}},
				{Name: "sortOrder", Type: "string", Description: "Ordering direction", Required: false, Default: "asc", Enum: []string{"asc", "desc"}},
				{Name: "outputMode", Type: "string", Description: "One record with all entries, or one record per entry", Required: false, Default: "flat", Enum: []string{"flat", "perEntry"}},
			},
			Returns: "array",
		},
	}
}

// Run executes the list tool.
func (n *ListNode) Run(toolID string, params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	if toolID != "fs.list" {
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

	listMode, _ := GetString(params, "listMode")
	if listMode == "" {
		listMode = string(fsops.ListBoth)
	}
	switch fsops.ListMode(listMode) {
	case fsops.ListFiles, fsops.ListDirectories, fsops.ListBoth:
	default:
		return Failure(fmt.Sprintf("unsupported listMode: %s", listMode))
	}

	filter := &fsops.Filter{
		Extensions: GetStringList(params, "extensions"),
		MinSize:    GetInt64(params, "minSize", 0),
		MaxSize:    GetInt64(params, "maxSize", 0),
	}
	filter.NameRegex, _ = GetString(params, "pattern")
	filter.Glob, _ = GetString(params, "glob")
	if after, ok := GetTime(params, "modifiedAfter"); ok {
		filter.ModifiedAfter = after
	}
	if before, ok := GetTime(params, "modifiedBefore"); ok {
		filter.ModifiedBefore = before
	}
	if err := filter.Compile(); err != nil {
		return Failure(err.Error())
	}

	entries, err := fsops.Walk(fullPath, fsops.TraversalOptions{
		Recursive:     GetBool(params, "recursive", false),
		IncludeHidden: GetBool(params, "includeHidden", false),
		ListMode:      fsops.ListMode(listMode),
		MaxDepth:      GetInt(params, "maxDepth", 0),
		MaxResults:    GetInt(params, "maxResults", 0),
		Filter:        filter,
	})
	if err != nil {
		return Failure(err.Error())
	}

	sortBy, _ := GetString(params, "sortBy")
	if sortBy == "" {
		sortBy = string(fsops.SortByName)
	}
	sortOrder, _ := GetString(params, "sortOrder")
	if sortOrder == "" {
		sortOrder = string(fsops.SortAscending)
	}
	fsops.Sort(entries, fsops.SortKey(sortBy), fsops.SortOrder(sortOrder))

	records := make([]map[string]interface{}, len(entries))
	for i, entry := range entries {
		records[i] = entry.Record()
	}

	outputMode, _ := GetString(params, "outputMode")
	if outputMode == "perEntry" {
		return Fanout(records)
	}

	return Success(map[string]interface{}{
		"path":    fullPath,
		"entries": records,
		"count":   len(records),
	})
}
