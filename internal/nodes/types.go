package nodes

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/flowgrid/flowfs/internal/types"
)

// Node is one filesystem operation family: its tool schemas plus a Run
// function mapping per-item params to a result.
type Node interface {
	GetTools() []types.Tool
	Run(toolID string, params map[string]interface{}, runCtx *types.Context) (*types.Result, error)
}

// Success creates a successful single-record result.
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Fanout creates a successful result with one output record per entry.
func Fanout(records []map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Records: records}, nil
}

// Failure creates a failed result.
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}

// GetString extracts a string from params with validation.
func GetString(params map[string]interface{}, key string) (string, bool) {
	val, ok := params[key].(string)
	if !ok {
		return "", false
	}
	return val, true
}

// GetBool extracts a bool from params with a default.
func GetBool(params map[string]interface{}, key string, defaultVal bool) bool {
	val, ok := params[key].(bool)
	if !ok {
		return defaultVal
	}
	return val
}

// GetInt extracts an int from params with a default. JSON transports
// numbers as float64.
func GetInt(params map[string]interface{}, key string, defaultVal int) int {
	switch v := params[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return defaultVal
	}
}

// GetInt64 extracts an int64 from params with a default.
func GetInt64(params map[string]interface{}, key string, defaultVal int64) int64 {
	switch v := params[key].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return defaultVal
	}
}

// GetStringList extracts a string list from params, accepting either an
// array or a comma-separated string.
func GetStringList(params map[string]interface{}, key string) []string {
	switch v := params[key].(type) {
	case []interface{}:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				result = append(result, s)
			}
		}
		return result
	case []string:
		return v
	case string:
		if v == "" {
			return nil
		}
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				result = append(result, p)
			}
		}
		return result
	default:
		return nil
	}
}

// GetMode parses an octal permission string ("0644") from params.
func GetMode(params map[string]interface{}, key string, defaultVal os.FileMode) (os.FileMode, bool) {
	s, ok := params[key].(string)
	if !ok || s == "" {
		return defaultVal, true
	}
	parsed, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, false
	}
	return os.FileMode(parsed), true
}

// GetTime parses an RFC3339 timestamp from params.
func GetTime(params map[string]interface{}, key string) (time.Time, bool) {
	s, ok := params[key].(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
