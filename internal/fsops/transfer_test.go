package fsops

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopy(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "fsops_copy_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	t.Run("File", func(t *testing.T) {
		src := filepath.Join(tmpDir, "src.txt")
		dst := filepath.Join(tmpDir, "dst.txt")
		if err := os.WriteFile(src, []byte("copy me"), 0o640); err != nil {
			t.Fatalf("Failed to create source: %v", err)
		}

		written, err := Copy(src, dst, TransferOptions{})
		if err != nil {
			t.Fatalf("Copy failed: %v", err)
		}
		if written != 7 {
			t.Errorf("Bytes written mismatch: got %d, want 7", written)
		}

		content, _ := os.ReadFile(dst)
		if string(content) != "copy me" {
			t.Errorf("Copied content mismatch: got %q", content)
		}
		info, _ := os.Stat(dst)
		if info.Mode().Perm() != 0o640 {
			t.Errorf("Mode not carried over: got %v", info.Mode().Perm())
		}
		// Source remains.
		if _, err := os.Stat(src); err != nil {
			t.Error("Copy should leave the source in place")
		}
	})

	t.Run("DirectoryNeedsRecursive", func(t *testing.T) {
		src := filepath.Join(tmpDir, "tree")
		if err := os.MkdirAll(filepath.Join(src, "inner"), 0o755); err != nil {
			t.Fatalf("Failed to create tree: %v", err)
		}

		if _, err := Copy(src, filepath.Join(tmpDir, "tree-copy"), TransferOptions{}); err == nil {
			t.Error("Directory copy without Recursive should fail")
		}
	})

	t.Run("DirectoryRecursive", func(t *testing.T) {
		src := filepath.Join(tmpDir, "dir-src")
		if err := os.MkdirAll(filepath.Join(src, "nested"), 0o755); err != nil {
			t.Fatalf("Failed to create tree: %v", err)
		}
		if err := os.WriteFile(filepath.Join(src, "top.txt"), []byte("top"), 0o644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}
		if err := os.WriteFile(filepath.Join(src, "nested", "leaf.txt"), []byte("leaf!"), 0o644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}

		dst := filepath.Join(tmpDir, "dir-dst")
		written, err := Copy(src, dst, TransferOptions{Recursive: true})
		if err != nil {
			t.Fatalf("Copy failed: %v", err)
		}
		// 3 + 5 bytes of file content; directories contribute zero.
		if written != 8 {
			t.Errorf("Bytes written mismatch: got %d, want 8", written)
		}

		leaf, err := os.ReadFile(filepath.Join(dst, "nested", "leaf.txt"))
		if err != nil {
			t.Fatalf("Nested file missing in copy: %v", err)
		}
		if string(leaf) != "leaf!" {
			t.Errorf("Nested content mismatch: got %q", leaf)
		}
	})

	t.Run("DestinationExists", func(t *testing.T) {
		src := filepath.Join(tmpDir, "src2.txt")
		dst := filepath.Join(tmpDir, "dst2.txt")
		if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
			t.Fatalf("Failed to create source: %v", err)
		}
		if err := os.WriteFile(dst, []byte("existing"), 0o644); err != nil {
			t.Fatalf("Failed to create destination: %v", err)
		}

		if _, err := Copy(src, dst, TransferOptions{}); err == nil {
			t.Error("Copy onto an existing destination should fail without Overwrite")
		}
		content, _ := os.ReadFile(dst)
		if string(content) != "existing" {
			t.Error("Refused copy must leave the destination untouched")
		}

		if _, err := Copy(src, dst, TransferOptions{Overwrite: true}); err != nil {
			t.Fatalf("Copy with Overwrite failed: %v", err)
		}
		content, _ = os.ReadFile(dst)
		if string(content) != "new" {
			t.Errorf("Overwrite content mismatch: got %q", content)
		}
	})

	t.Run("CreateDestinationDirs", func(t *testing.T) {
		src := filepath.Join(tmpDir, "src3.txt")
		dst := filepath.Join(tmpDir, "made", "up", "dst3.txt")
		if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
			t.Fatalf("Failed to create source: %v", err)
		}

		if _, err := Copy(src, dst, TransferOptions{}); err == nil {
			t.Error("Copy into a missing directory should fail by default")
		}
		if _, err := Copy(src, dst, TransferOptions{CreateDestinationDirs: true}); err != nil {
			t.Fatalf("Copy with CreateDestinationDirs failed: %v", err)
		}
	})

	t.Run("PreserveTimestamps", func(t *testing.T) {
		src := filepath.Join(tmpDir, "stamped.txt")
		dst := filepath.Join(tmpDir, "stamped-copy.txt")
		if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
			t.Fatalf("Failed to create source: %v", err)
		}
		srcInfo, _ := os.Stat(src)

		if _, err := Copy(src, dst, TransferOptions{PreserveTimestamps: true}); err != nil {
			t.Fatalf("Copy failed: %v", err)
		}
		dstInfo, _ := os.Stat(dst)
		if !dstInfo.ModTime().Equal(srcInfo.ModTime()) {
			t.Errorf("ModTime mismatch: got %v, want %v", dstInfo.ModTime(), srcInfo.ModTime())
		}
	})

	t.Run("MissingSource", func(t *testing.T) {
		if _, err := Copy(filepath.Join(tmpDir, "absent"), filepath.Join(tmpDir, "out"), TransferOptions{}); err == nil {
			t.Error("Copy of a missing source should fail")
		}
	})
}

func TestMove(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "fsops_move_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	t.Run("RenameFile", func(t *testing.T) {
		src := filepath.Join(tmpDir, "move-src.txt")
		dst := filepath.Join(tmpDir, "move-dst.txt")
		if err := os.WriteFile(src, []byte("mobile"), 0o644); err != nil {
			t.Fatalf("Failed to create source: %v", err)
		}

		result, err := Move(src, dst, MoveOptions{})
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if result.Strategy != MoveRename {
			t.Errorf("Strategy mismatch: got %s, want %s", result.Strategy, MoveRename)
		}

		if _, err := os.Lstat(src); !os.IsNotExist(err) {
			t.Error("Source should be gone after move")
		}
		content, _ := os.ReadFile(dst)
		if string(content) != "mobile" {
			t.Errorf("Moved content mismatch: got %q", content)
		}
	})

	t.Run("RenameDirectory", func(t *testing.T) {
		src := filepath.Join(tmpDir, "dir-move")
		if err := os.MkdirAll(src, 0o755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(src, "inside.txt"), []byte("x"), 0o644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}

		dst := filepath.Join(tmpDir, "dir-moved")
		// Same filesystem: rename succeeds with no Recursive needed.
		result, err := Move(src, dst, MoveOptions{})
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if result.Strategy != MoveRename {
			t.Errorf("Strategy mismatch: got %s", result.Strategy)
		}
		if _, err := os.Stat(filepath.Join(dst, "inside.txt")); err != nil {
			t.Errorf("Directory content missing after move: %v", err)
		}
	})

	t.Run("DestinationExists", func(t *testing.T) {
		src := filepath.Join(tmpDir, "src-taken.txt")
		dst := filepath.Join(tmpDir, "dst-taken.txt")
		if err := os.WriteFile(src, []byte("a"), 0o644); err != nil {
			t.Fatalf("Failed to create source: %v", err)
		}
		if err := os.WriteFile(dst, []byte("b"), 0o644); err != nil {
			t.Fatalf("Failed to create destination: %v", err)
		}

		if _, err := Move(src, dst, MoveOptions{}); err == nil {
			t.Error("Move onto an existing destination should fail without Overwrite")
		}
		if _, err := os.Stat(src); err != nil {
			t.Error("Refused move must leave the source in place")
		}
	})

	t.Run("MissingSource", func(t *testing.T) {
		if _, err := Move(filepath.Join(tmpDir, "absent"), filepath.Join(tmpDir, "out"), MoveOptions{}); err == nil {
			t.Error("Move of a missing source should fail")
		}
	})

	// Renaming a directory onto an existing non-empty directory fails,
	// which forces the fallback path without crossing filesystems.
	t.Run("FallbackCopyDelete", func(t *testing.T) {
		src := filepath.Join(tmpDir, "fallback-src")
		if err := os.MkdirAll(src, 0o755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(src, "payload.txt"), []byte("payload"), 0o644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}
		dst := filepath.Join(tmpDir, "fallback-dst")
		if err := os.MkdirAll(dst, 0o755); err != nil {
			t.Fatalf("Failed to create destination: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dst, "old.txt"), []byte("x"), 0o644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}

		result, err := Move(src, dst, MoveOptions{
			TransferOptions: TransferOptions{Overwrite: true, Recursive: true},
			FallbackToCopy:  true,
		})
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if result.Strategy != MoveCopyDelete {
			t.Errorf("Strategy mismatch: got %s, want %s", result.Strategy, MoveCopyDelete)
		}
		if result.BytesCopied != 7 {
			t.Errorf("BytesCopied mismatch: got %d, want 7", result.BytesCopied)
		}

		content, err := os.ReadFile(filepath.Join(dst, "payload.txt"))
		if err != nil || string(content) != "payload" {
			t.Errorf("Destination missing moved content: %v %q", err, content)
		}
		if _, err := os.Lstat(src); !os.IsNotExist(err) {
			t.Error("Source should be gone after fallback move")
		}
	})

	t.Run("FallbackDisabledSurfacesRenameError", func(t *testing.T) {
		src := filepath.Join(tmpDir, "stuck-src")
		if err := os.MkdirAll(src, 0o755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		dst := filepath.Join(tmpDir, "stuck-dst")
		if err := os.MkdirAll(dst, 0o755); err != nil {
			t.Fatalf("Failed to create destination: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dst, "old.txt"), []byte("x"), 0o644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}

		_, err := Move(src, dst, MoveOptions{
			TransferOptions: TransferOptions{Overwrite: true, Recursive: true},
		})
		if err == nil {
			t.Fatal("Move without fallback should surface the rename error")
		}
		if _, statErr := os.Stat(src); statErr != nil {
			t.Error("Failed move must leave the source in place")
		}
	})
}

func TestBackupCopy(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "fsops_backup_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	t.Run("DefaultLocation", func(t *testing.T) {
		path := filepath.Join(tmpDir, "keep.txt")
		if err := os.WriteFile(path, []byte("keep safe"), 0o644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}

		backupPath, err := BackupCopy(path, "")
		if err != nil {
			t.Fatalf("BackupCopy failed: %v", err)
		}
		content, err := os.ReadFile(backupPath)
		if err != nil {
			t.Fatalf("Failed to read backup: %v", err)
		}
		if string(content) != "keep safe" {
			t.Errorf("Backup content mismatch: got %q", content)
		}
	})

	t.Run("ExplicitDestination", func(t *testing.T) {
		path := filepath.Join(tmpDir, "orig.txt")
		explicit := filepath.Join(tmpDir, "orig.snapshot")
		if err := os.WriteFile(path, []byte("snap"), 0o644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}

		backupPath, err := BackupCopy(path, explicit)
		if err != nil {
			t.Fatalf("BackupCopy failed: %v", err)
		}
		if backupPath != explicit {
			t.Errorf("Backup path mismatch: got %s, want %s", backupPath, explicit)
		}
	})

	t.Run("DirectoryRefused", func(t *testing.T) {
		if _, err := BackupCopy(tmpDir, ""); err == nil {
			t.Error("Directory backup should be refused")
		}
	})

	t.Run("MissingRefused", func(t *testing.T) {
		if _, err := BackupCopy(filepath.Join(tmpDir, "absent.txt"), ""); err == nil {
			t.Error("Backup of a missing file should fail")
		}
	})
}
