package nodes

import (
	"testing"
	"time"

	"github.com/flowgrid/flowfs/internal/types"
)

func newTestPack(t *testing.T) (*Pack, string) {
	t.Helper()
	dir := t.TempDir()
	return NewPack(Options{WorkDir: dir}, nil), dir
}

func testRunContext(workDir string) *types.Context {
	return &types.Context{WorkDir: &workDir}
}

func TestPackDefinition(t *testing.T) {
	pack, _ := newTestPack(t)

	def := pack.Definition()

	if def.ID != "fs" {
		t.Errorf("Expected service ID 'fs', got %s", def.ID)
	}

	if def.Category != types.CategoryFilesystem {
		t.Errorf("Expected filesystem category, got %s", def.Category)
	}

	if len(def.Tools) != 18 {
		t.Errorf("Expected 18 tools, got %d", len(def.Tools))
	}

	if len(def.Capabilities) != 12 {
		t.Errorf("Expected 12 capabilities, got %d", len(def.Capabilities))
	}

	// Every tool must declare at least one parameter and a unique ID.
	seen := make(map[string]bool)
	for _, tool := range def.Tools {
		if seen[tool.ID] {
			t.Errorf("Duplicate tool ID: %s", tool.ID)
		}
		seen[tool.ID] = true

		if len(tool.Parameters) == 0 {
			t.Errorf("Tool %s has no parameters", tool.ID)
		}
		if tool.Returns == "" {
			t.Errorf("Tool %s declares no return shape", tool.ID)
		}
	}
}

func TestPackRouting(t *testing.T) {
	pack, _ := newTestPack(t)

	// Every advertised tool must route to a node. Empty params fail
	// validation, never routing.
	for _, tool := range pack.Definition().Tools {
		result, err := pack.Execute(tool.ID, map[string]interface{}{}, nil)
		if err != nil {
			t.Fatalf("Execute(%s) returned transport error: %v", tool.ID, err)
		}
		if result.Success {
			t.Errorf("Execute(%s) with no params should fail validation", tool.ID)
		}
		if result.Error != nil && *result.Error == "unknown tool: "+tool.ID {
			t.Errorf("Tool %s advertised but not routed", tool.ID)
		}
	}
}

func TestPackUnknownTool(t *testing.T) {
	pack, _ := newTestPack(t)

	result, err := pack.Execute("fs.teleport", nil, nil)
	if err != nil {
		t.Fatalf("Execute returned transport error: %v", err)
	}
	if result.Success {
		t.Error("Unknown tool should fail")
	}
	if result.Error == nil || *result.Error != "unknown tool: fs.teleport" {
		t.Errorf("Unexpected error message: %v", result.Error)
	}
}

func TestGetString(t *testing.T) {
	params := map[string]interface{}{"name": "value", "number": 42}

	if v, ok := GetString(params, "name"); !ok || v != "value" {
		t.Errorf("GetString(name) = %q, %v", v, ok)
	}
	if _, ok := GetString(params, "number"); ok {
		t.Error("Non-string should not extract")
	}
	if _, ok := GetString(params, "missing"); ok {
		t.Error("Missing key should not extract")
	}
}

func TestGetBool(t *testing.T) {
	params := map[string]interface{}{"on": true, "off": false, "text": "true"}

	if !GetBool(params, "on", false) {
		t.Error("GetBool(on) should be true")
	}
	if GetBool(params, "off", true) {
		t.Error("GetBool(off) should be false")
	}
	if !GetBool(params, "text", true) {
		t.Error("Non-bool should fall back to the default")
	}
	if GetBool(params, "missing", false) {
		t.Error("Missing key should fall back to the default")
	}
}

func TestGetInt(t *testing.T) {
	// JSON transports numbers as float64.
	params := map[string]interface{}{"float": 7.0, "int": 3, "int64": int64(9), "text": "5"}

	if v := GetInt(params, "float", 0); v != 7 {
		t.Errorf("GetInt(float) = %d, want 7", v)
	}
	if v := GetInt(params, "int", 0); v != 3 {
		t.Errorf("GetInt(int) = %d, want 3", v)
	}
	if v := GetInt(params, "int64", 0); v != 9 {
		t.Errorf("GetInt(int64) = %d, want 9", v)
	}
	if v := GetInt(params, "text", 11); v != 11 {
		t.Errorf("GetInt(text) = %d, want default 11", v)
	}
	if v := GetInt64(params, "float", 0); v != 7 {
		t.Errorf("GetInt64(float) = %d, want 7", v)
	}
}

func TestGetStringList(t *testing.T) {
	params := map[string]interface{}{
		"array":  []interface{}{"a", "b", ""},
		"comma":  "x, y ,z",
		"empty":  "",
		"number": 5,
	}

	if got := GetStringList(params, "array"); len(got) != 2 || got[0] != "a" {
		t.Errorf("GetStringList(array) = %v", got)
	}
	if got := GetStringList(params, "comma"); len(got) != 3 || got[1] != "y" {
		t.Errorf("GetStringList(comma) = %v", got)
	}
	if got := GetStringList(params, "empty"); got != nil {
		t.Errorf("GetStringList(empty) = %v, want nil", got)
	}
	if got := GetStringList(params, "number"); got != nil {
		t.Errorf("GetStringList(number) = %v, want nil", got)
	}
}

func TestGetMode(t *testing.T) {
	params := map[string]interface{}{"good": "0600", "bad": "99z", "blank": ""}

	if mode, ok := GetMode(params, "good", 0o644); !ok || mode != 0o600 {
		t.Errorf("GetMode(good) = %v, %v", mode, ok)
	}
	if _, ok := GetMode(params, "bad", 0o644); ok {
		t.Error("Invalid octal should not parse")
	}
	if mode, ok := GetMode(params, "blank", 0o644); !ok || mode != 0o644 {
		t.Errorf("Blank mode should take the default: %v, %v", mode, ok)
	}
	if mode, ok := GetMode(params, "missing", 0o755); !ok || mode != 0o755 {
		t.Errorf("Missing mode should take the default: %v, %v", mode, ok)
	}
}

func TestGetTime(t *testing.T) {
	params := map[string]interface{}{
		"good": "2026-08-25T10:00:00Z",
		"bad":  "yesterday",
	}

	parsed, ok := GetTime(params, "good")
	if !ok {
		t.Fatal("RFC3339 timestamp should parse")
	}
	if parsed.UTC() != time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC) {
		t.Errorf("Parsed time mismatch: %v", parsed)
	}

	if _, ok := GetTime(params, "bad"); ok {
		t.Error("Non-RFC3339 text should not parse")
	}
	if _, ok := GetTime(params, "missing"); ok {
		t.Error("Missing key should not parse")
	}
}
