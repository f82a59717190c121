package fsops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// TransferOptions configure a copy.
type TransferOptions struct {
	Overwrite             bool
	PreserveTimestamps    bool
	CreateDestinationDirs bool
	// Recursive must be set to copy a directory; directories are never
	// copied non-recursively.
	Recursive bool
}

// MoveOptions configure a move.
type MoveOptions struct {
	TransferOptions
	// FallbackToCopy copies the subtree and deletes the original when
	// the rename fails (typically a cross-device destination).
	FallbackToCopy bool
}

// MoveStrategy identifies how a move was carried out.
type MoveStrategy string

const (
	MoveRename     MoveStrategy = "rename"
	MoveCopyDelete MoveStrategy = "copy+delete"
)

// MoveResult reports the strategy taken and, on the fallback path, the
// bytes of file content copied.
type MoveResult struct {
	Strategy    MoveStrategy
	BytesCopied int64
}

const copyBufferSize = 32 * 1024

// Copy copies a file or directory subtree from src to dst and returns
// the total bytes of file content written; directories contribute zero.
// The destination-exists check runs once at the top level: nested
// recursive copies do not re-check per child.
func Copy(src, dst string, opts TransferOptions) (int64, error) {
	entry, err := Stat(src)
	if err != nil {
		return 0, err
	}
	if entry.Kind == KindDirectory && !opts.Recursive {
		return 0, ErrRecursiveRequired.SetData(pathContext{Path: src})
	}

	if err := prepareDestination(src, dst, opts); err != nil {
		return 0, err
	}

	return copyTree(entry, dst, opts.PreserveTimestamps)
}

// Move relocates src to dst, first as an atomic rename. When the rename
// fails and FallbackToCopy is set, the subtree is copied per Copy
// semantics and the original deleted. The fallback is not atomic: a
// crash between copy and delete leaves both trees present.
func Move(src, dst string, opts MoveOptions) (MoveResult, error) {
	entry, err := Stat(src)
	if err != nil {
		return MoveResult{}, err
	}

	if err := prepareDestination(src, dst, opts.TransferOptions); err != nil {
		return MoveResult{}, err
	}

	renameErr := os.Rename(src, dst)
	if renameErr == nil {
		return MoveResult{Strategy: MoveRename}, nil
	}
	if !opts.FallbackToCopy {
		return MoveResult{}, newRenameError(src, dst, renameErr)
	}

	// Rename needs no recursion, so the requirement binds only once the
	// fallback actually copies a directory.
	if entry.Kind == KindDirectory && !opts.Recursive {
		return MoveResult{}, ErrRecursiveRequired.SetData(pathContext{Path: src})
	}

	written, err := copyTree(entry, dst, opts.PreserveTimestamps)
	if err != nil {
		return MoveResult{}, err
	}
	if err := os.RemoveAll(src); err != nil {
		return MoveResult{}, ErrDeleteFile.
			SetError(err).
			SetData(pathContext{
				Path:  src,
				Error: err,
			})
	}

	return MoveResult{Strategy: MoveCopyDelete, BytesCopied: written}, nil
}

// prepareDestination enforces the overwrite policy and, when asked,
// creates the destination's parent directories. Runs before any write.
func prepareDestination(src, dst string, opts TransferOptions) error {
	if !opts.Overwrite {
		if _, err := os.Lstat(dst); err == nil {
			return ErrDestinationExists.
				SetData(transferContext{
					Source:      src,
					Destination: dst,
				})
		}
	}

	if opts.CreateDestinationDirs {
		parent := filepath.Dir(dst)
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return newCreateDirectoryError(parent, err)
		}
	}

	return nil
}

func copyTree(src Entry, dst string, preserveTimes bool) (int64, error) {
	if src.Kind != KindDirectory {
		return copyFile(src, dst, preserveTimes)
	}

	if err := os.MkdirAll(dst, src.Mode.Perm()); err != nil {
		return 0, newCopyDirectoryError(src.Path, dst, err)
	}

	children, err := os.ReadDir(src.Path)
	if err != nil {
		return 0, newCopyDirectoryError(src.Path, dst, err)
	}

	var total int64
	for _, child := range children {
		childEntry, err := Stat(filepath.Join(src.Path, child.Name()))
		if err != nil {
			return total, err
		}
		n, err := copyTree(childEntry, filepath.Join(dst, child.Name()), preserveTimes)
		total += n
		if err != nil {
			return total, err
		}
	}

	// Copying children touches the directory's own times, so they are
	// restored after all children.
	if preserveTimes {
		if err := os.Chtimes(dst, src.AccessedAt, src.ModifiedAt); err != nil {
			return total, newCopyDirectoryError(src.Path, dst, err)
		}
	}

	return total, nil
}

func copyFile(src Entry, dst string, preserveTimes bool) (int64, error) {
	in, err := os.Open(src.Path)
	if err != nil {
		return 0, newCopyFileError(src.Path, dst, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, src.Mode.Perm())
	if err != nil {
		return 0, newCopyFileError(src.Path, dst, err)
	}

	buf := make([]byte, copyBufferSize)
	written, err := io.CopyBuffer(out, in, buf)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return written, newCopyFileError(src.Path, dst, err)
	}

	if preserveTimes {
		if err := os.Chtimes(dst, src.AccessedAt, src.ModifiedAt); err != nil {
			return written, newCopyFileError(src.Path, dst, err)
		}
	}

	return written, nil
}

// BackupCopy copies a file verbatim beside itself (or to an explicit
// destination) before a destructive operation. Directories are refused:
// directory backups are unsupported rather than silently skipped.
func BackupCopy(path, backupPath string) (string, error) {
	entry, err := Stat(path)
	if err != nil {
		return "", err
	}
	if entry.Kind == KindDirectory {
		return "", ErrDirectoryBackup.SetData(pathContext{Path: path})
	}

	if backupPath == "" {
		backupPath = DeriveBackupPath(path, "", time.Now().Unix())
	}
	if _, err := copyFile(entry, backupPath, false); err != nil {
		return "", newBackupError(path, err)
	}

	return backupPath, nil
}

// DeriveBackupPath names a backup beside the target. An empty suffix
// means ".bak".
func DeriveBackupPath(path, suffix string, unixTime int64) string {
	if suffix == "" {
		suffix = ".bak"
	}
	return fmt.Sprintf("%s%s-%d", path, suffix, unixTime)
}
