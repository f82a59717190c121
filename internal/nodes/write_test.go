package nodes

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flowgrid/flowfs/internal/types"
)

func TestWriteText(t *testing.T) {
	pack, dir := newTestPack(t)

	result, err := pack.Execute("fs.write", map[string]interface{}{
		"path":    "out.txt",
		"content": "written by node",
	}, nil)

	if err != nil || !result.Success {
		t.Fatalf("Write failed: %v %v", err, result.Error)
	}

	if result.Data["written"] != int64(15) {
		t.Errorf("Written bytes mismatch: got %v", result.Data["written"])
	}
	if result.Data["created"] != true {
		t.Errorf("Created flag mismatch: got %v", result.Data["created"])
	}

	content, _ := os.ReadFile(filepath.Join(dir, "out.txt"))
	if string(content) != "written by node" {
		t.Errorf("File content mismatch: got %q", content)
	}
}

func TestWriteBase64Source(t *testing.T) {
	pack, dir := newTestPack(t)

	result, err := pack.Execute("fs.write", map[string]interface{}{
		"path":    "decoded.bin",
		"source":  "base64",
		"content": base64.StdEncoding.EncodeToString([]byte{0x01, 0x02, 0x03}),
	}, nil)

	if err != nil || !result.Success {
		t.Fatalf("Write failed: %v %v", err, result.Error)
	}

	content, _ := os.ReadFile(filepath.Join(dir, "decoded.bin"))
	if len(content) != 3 || content[0] != 0x01 {
		t.Errorf("Decoded content mismatch: %v", content)
	}

	result, _ = pack.Execute("fs.write", map[string]interface{}{
		"path":    "bad.bin",
		"source":  "base64",
		"content": "not!valid!",
	}, nil)
	if result.Success {
		t.Error("Invalid base64 should fail")
	}
}

func TestWriteJSONSource(t *testing.T) {
	pack, dir := newTestPack(t)

	result, err := pack.Execute("fs.write", map[string]interface{}{
		"path":   "value.json",
		"source": "json",
		"value":  map[string]interface{}{"kind": "record", "n": 1},
	}, nil)

	if err != nil || !result.Success {
		t.Fatalf("Write failed: %v %v", err, result.Error)
	}

	content, _ := os.ReadFile(filepath.Join(dir, "value.json"))
	if !strings.Contains(string(content), `"kind": "record"`) {
		t.Errorf("JSON content mismatch: %s", content)
	}
}

func TestWritePropertySource(t *testing.T) {
	pack, dir := newTestPack(t)

	runCtx := &types.Context{Item: map[string]interface{}{
		"body":   "record text",
		"nested": map[string]interface{}{"a": 1},
	}}

	// String property writes verbatim.
	result, err := pack.Execute("fs.write", map[string]interface{}{
		"path":     "prop.txt",
		"source":   "property",
		"property": "body",
	}, runCtx)

	if err != nil || !result.Success {
		t.Fatalf("Write failed: %v %v", err, result.Error)
	}
	content, _ := os.ReadFile(filepath.Join(dir, "prop.txt"))
	if string(content) != "record text" {
		t.Errorf("Property content mismatch: %q", content)
	}

	// Non-string property serializes as JSON.
	result, _ = pack.Execute("fs.write", map[string]interface{}{
		"path":     "nested.json",
		"source":   "property",
		"property": "nested",
	}, runCtx)
	if !result.Success {
		t.Fatalf("Write failed: %v", result.Error)
	}
	content, _ = os.ReadFile(filepath.Join(dir, "nested.json"))
	if !strings.Contains(string(content), `"a": 1`) {
		t.Errorf("Serialized property mismatch: %s", content)
	}

	// Unknown property fails.
	result, _ = pack.Execute("fs.write", map[string]interface{}{
		"path":     "missing.txt",
		"source":   "property",
		"property": "absent",
	}, runCtx)
	if result.Success {
		t.Error("Unknown property should fail")
	}

	// No input record at all fails.
	result, _ = pack.Execute("fs.write", map[string]interface{}{
		"path":     "noctx.txt",
		"source":   "property",
		"property": "body",
	}, nil)
	if result.Success {
		t.Error("Property source without an input record should fail")
	}
}

func TestWriteBinaryFieldSource(t *testing.T) {
	pack, dir := newTestPack(t)

	runCtx := &types.Context{Binary: map[string][]byte{
		"attachment": {0xDE, 0xAD, 0xBE, 0xEF},
	}}

	result, err := pack.Execute("fs.write", map[string]interface{}{
		"path":   "blob.bin",
		"source": "binaryField",
		"field":  "attachment",
	}, runCtx)

	if err != nil || !result.Success {
		t.Fatalf("Write failed: %v %v", err, result.Error)
	}

	content, _ := os.ReadFile(filepath.Join(dir, "blob.bin"))
	if len(content) != 4 || content[0] != 0xDE {
		t.Errorf("Binary content mismatch: %v", content)
	}

	result, _ = pack.Execute("fs.write", map[string]interface{}{
		"path":   "gone.bin",
		"source": "binaryField",
		"field":  "other",
	}, runCtx)
	if result.Success {
		t.Error("Unknown binary field should fail")
	}
}

func TestWriteModes(t *testing.T) {
	pack, dir := newTestPack(t)

	path := filepath.Join(dir, "mode.txt")
	if err := os.WriteFile(path, []byte("first"), 0o644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	// Append.
	result, _ := pack.Execute("fs.write", map[string]interface{}{
		"path":      "mode.txt",
		"content":   "+more",
		"writeMode": "append",
	}, nil)
	if !result.Success {
		t.Fatalf("Append failed: %v", result.Error)
	}
	content, _ := os.ReadFile(path)
	if string(content) != "first+more" {
		t.Errorf("Append content mismatch: %q", content)
	}

	// createOnly conflicts.
	result, _ = pack.Execute("fs.write", map[string]interface{}{
		"path":      "mode.txt",
		"content":   "clobber",
		"writeMode": "createOnly",
	}, nil)
	if result.Success {
		t.Error("createOnly against an existing file should fail")
	}

	// Unknown mode refused.
	result, _ = pack.Execute("fs.write", map[string]interface{}{
		"path":      "mode.txt",
		"content":   "x",
		"writeMode": "upsert",
	}, nil)
	if result.Success {
		t.Error("Unknown writeMode should fail")
	}
}

func TestWriteBackup(t *testing.T) {
	pack, dir := newTestPack(t)

	path := filepath.Join(dir, "valuable.txt")
	if err := os.WriteFile(path, []byte("original"), 0o644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	result, err := pack.Execute("fs.write", map[string]interface{}{
		"path":    "valuable.txt",
		"content": "updated",
		"backup":  true,
	}, nil)

	if err != nil || !result.Success {
		t.Fatalf("Write failed: %v %v", err, result.Error)
	}

	backupPath, ok := result.Data["backup_path"].(string)
	if !ok || backupPath == "" {
		t.Fatal("Expected backup_path in result")
	}
	backup, _ := os.ReadFile(backupPath)
	if string(backup) != "original" {
		t.Errorf("Backup content mismatch: %q", backup)
	}
	current, _ := os.ReadFile(path)
	if string(current) != "updated" {
		t.Errorf("Updated content mismatch: %q", current)
	}
}

func TestWriteValidation(t *testing.T) {
	pack, _ := newTestPack(t)

	// Missing content for text source.
	result, _ := pack.Execute("fs.write", map[string]interface{}{"path": "x.txt"}, nil)
	if result.Success {
		t.Error("Text source without content should fail")
	}

	// Bad permissions string.
	result, _ = pack.Execute("fs.write", map[string]interface{}{
		"path":        "x.txt",
		"content":     "x",
		"permissions": "rwxr--r--",
	}, nil)
	if result.Success {
		t.Error("Non-octal permissions should fail")
	}

	// Unknown source.
	result, _ = pack.Execute("fs.write", map[string]interface{}{
		"path":   "x.txt",
		"source": "carrier-pigeon",
	}, nil)
	if result.Success {
		t.Error("Unknown source should fail")
	}
}

func TestWriteCreateParents(t *testing.T) {
	pack, dir := newTestPack(t)

	result, _ := pack.Execute("fs.write", map[string]interface{}{
		"path":    "a/b/c.txt",
		"content": "deep",
	}, nil)
	if result.Success {
		t.Error("Write under a missing directory should fail by default")
	}

	result, _ = pack.Execute("fs.write", map[string]interface{}{
		"path":          "a/b/c.txt",
		"content":       "deep",
		"createParents": true,
	}, nil)
	if !result.Success {
		t.Fatalf("Write with createParents failed: %v", result.Error)
	}
	if _, err := os.Stat(filepath.Join(dir, "a", "b", "c.txt")); err != nil {
		t.Errorf("File missing after createParents write: %v", err)
	}
}
