package nodes

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/flowgrid/flowfs/internal/fsops"
	"github.com/flowgrid/flowfs/internal/fsutil"
	"github.com/flowgrid/flowfs/internal/types"
)

// SearchNode finds files by glob pattern and by content.
type SearchNode struct {
	*Base
}

// GetTools returns the search tool definitions.
func (n *SearchNode) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "fs.glob",
			Name:        "Glob",
			Description: "Find paths matching a glob pattern (** supported)",
			Parameters: []types.Parameter{
				{Name: "pattern", Type: "string", Description: "Glob pattern, relative to the working directory or absolute", Required: true},
				{Name: "includeHidden", Type: "boolean", Description: "Include dot-prefixed entries", Required: false, Default: false},
				{Name: "maxResults", Type: "number", Description: "Stop after this many matches (0 = unbounded)", Required: false, Default: 0},
			},
			Returns: "array",
		},
		{
			ID:          "fs.grep",
			Name:        "Search Content",
			Description: "Line-oriented content search over text files",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory to search", Required: true},
				{Name: "query", Type: "string", Description: "Text or regex to find", Required: true},
				{Name: "regex", Type: "boolean", Description: "Treat query as a regular expression", Required: false, Default: false},
				{Name: "recursive", Type: "boolean", Description: "Descend into subdirectories", Required: false, Default: true},
				{Name: "extensions", Type: "string", Description: "Comma-separated extension allow-list", Required: false},
				{Name: "caseSensitive", Type: "boolean", Description: "Match case exactly", Required: false, Default: false},
				{Name: "maxResults", Type: "number", Description: "Stop after this many matches (0 = unbounded)", Required: false, Default: 0},
			},
			Returns: "array",
		},
	}
}

// Run executes a search tool.
func (n *SearchNode) Run(toolID string, params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "fs.glob":
		return n.glob(params, runCtx)
	case "fs.grep":
		return n.grep(params, runCtx)
	default:
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (n *SearchNode) glob(params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	pattern, ok := GetString(params, "pattern")
	if !ok || pattern == "" {
		return Failure("pattern parameter required")
	}

	fullPattern := pattern
	if !filepath.IsAbs(pattern) {
		base, err := n.resolvePath(".", runCtx)
		if err != nil {
			return Failure(err.Error())
		}
		fullPattern = filepath.Join(base, pattern)
	}

	matches, err := doublestar.FilepathGlob(fullPattern)
	if err != nil {
		return Failure(fmt.Sprintf("glob failed: %v", err))
	}

	includeHidden := GetBool(params, "includeHidden", false)
	maxResults := GetInt(params, "maxResults", 0)

	records := []map[string]interface{}{}
	for _, match := range matches {
		if !includeHidden && hasHiddenSegment(match) {
			continue
		}
		entry, err := fsops.Stat(match)
		if err != nil {
			continue
		}
		records = append(records, entry.Record())
		if maxResults > 0 && len(records) >= maxResults {
			break
		}
	}

	return Success(map[string]interface{}{
		"pattern": pattern,
		"matches": records,
		"count":   len(records),
	})
}

func (n *SearchNode) grep(params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	path, ok := GetString(params, "path")
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	query, ok := GetString(params, "query")
	if !ok || query == "" {
		return Failure("query parameter required")
	}

	fullPath, err := n.resolvePath(path, runCtx)
	if err != nil {
		return Failure(err.Error())
	}

	caseSensitive := GetBool(params, "caseSensitive", false)
	var re *regexp.Regexp
	if GetBool(params, "regex", false) {
		expr := query
		if !caseSensitive {
			expr = "(?i)" + expr
		}
		re, err = regexp.Compile(expr)
		if err != nil {
			return Failure(fmt.Sprintf("invalid regex: %v", err))
		}
	}

	entry, err := fsops.Stat(fullPath)
	if err != nil {
		return Failure(err.Error())
	}

	var files []string
	if entry.Kind == fsops.KindDirectory {
		filter := &fsops.Filter{Extensions: GetStringList(params, "extensions")}
		if err := filter.Compile(); err != nil {
			return Failure(err.Error())
		}
		entries, err := fsops.Walk(fullPath, fsops.TraversalOptions{
			Recursive: GetBool(params, "recursive", true),
			ListMode:  fsops.ListFiles,
			Filter:    filter,
		})
		if err != nil {
			return Failure(err.Error())
		}
		for _, e := range entries {
			if e.Kind == fsops.KindFile {
				files = append(files, e.Path)
			}
		}
	} else {
		files = []string{fullPath}
	}

	maxResults := GetInt(params, "maxResults", 0)
	matches := []map[string]interface{}{}

	for _, file := range files {
		if maxResults > 0 && len(matches) >= maxResults {
			break
		}
		if prefix, err := fsutil.SniffFile(file); err != nil || fsutil.LooksBinary(prefix) {
			continue
		}
		fileMatches, err := grepFile(file, query, re, caseSensitive, maxResults-len(matches), maxResults > 0)
		if err != nil {
			continue
		}
		matches = append(matches, fileMatches...)
	}

	return Success(map[string]interface{}{
		"path":    fullPath,
		"query":   query,
		"matches": matches,
		"count":   len(matches),
	})
}

// grepFile scans one text file line by line.
func grepFile(path, query string, re *regexp.Regexp, caseSensitive bool, remaining int, limited bool) ([]map[string]interface{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	needle := query
	if re == nil && !caseSensitive {
		needle = strings.ToLower(needle)
	}

	var matches []map[string]interface{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		var found bool
		if re != nil {
			found = re.MatchString(line)
		} else if caseSensitive {
			found = strings.Contains(line, needle)
		} else {
			found = strings.Contains(strings.ToLower(line), needle)
		}

		if found {
			matches = append(matches, map[string]interface{}{
				"path": path,
				"line": lineNo,
				"text": line,
			})
			if limited && len(matches) >= remaining {
				break
			}
		}
	}

	return matches, scanner.Err()
}

// hasHiddenSegment reports whether any path segment is dot-prefixed.
func hasHiddenSegment(path string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if strings.HasPrefix(segment, ".") && segment != "." && segment != ".." {
			return true
		}
	}
	return false
}
