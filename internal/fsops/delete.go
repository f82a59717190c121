package fsops

import (
	"os"
)

// DeleteMode restricts which kinds a delete accepts.
type DeleteMode string

const (
	DeleteFileMode      DeleteMode = "file"
	DeleteDirectoryMode DeleteMode = "directory"
	DeleteAuto          DeleteMode = "auto"
)

// DeleteOptions configure a gated deletion. The gates are independently
// toggleable and evaluated in declaration order before any destructive
// action; a disabled gate is skipped.
type DeleteOptions struct {
	Mode DeleteMode
	// Recursive permits deleting a non-empty directory. Without it a
	// directory delete succeeds only when the directory is empty.
	Recursive bool

	// Gate (a): a missing target is a skipped success instead of a
	// failure.
	SkipIfNotExists bool
	// Gate (b): files larger than MaxSize bytes are refused; 0 disables
	// the gate and directories are exempt.
	MaxSize int64
	// Gate (c): ConfirmationText must equal ConfirmationPhrase.
	RequireConfirmation bool
	ConfirmationPhrase  string
	ConfirmationText    string
	// Gate (d): a verbatim file copy is made before deletion. Directory
	// backups are unsupported and error loudly.
	Backup     bool
	BackupPath string
}

// DeleteResult reports what a delete did.
type DeleteResult struct {
	Deleted    bool
	Skipped    bool
	BackupPath string
	// Entry describes the target as found before deletion; zero when
	// the target was absent.
	Entry Entry
}

// Delete removes the file or directory at path after its safety gates
// pass. Gate order: existence, size ceiling, confirmation, backup.
func Delete(path string, opts DeleteOptions) (DeleteResult, error) {
	if opts.Mode == "" {
		opts.Mode = DeleteAuto
	}

	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if opts.SkipIfNotExists {
				return DeleteResult{Skipped: true}, nil
			}
			return DeleteResult{}, newNotFoundError(path, err)
		}
		return DeleteResult{}, newStatError(path, err)
	}
	entry := NewEntry(path, info)

	switch opts.Mode {
	case DeleteFileMode:
		if entry.Kind == KindDirectory {
			return DeleteResult{}, newKindMismatchError(path, KindFile, entry.Kind)
		}
	case DeleteDirectoryMode:
		if entry.Kind != KindDirectory {
			return DeleteResult{}, newKindMismatchError(path, KindDirectory, entry.Kind)
		}
	}

	if opts.MaxSize > 0 && entry.Kind != KindDirectory && entry.Size > opts.MaxSize {
		return DeleteResult{}, ErrSizeGateExceeded.
			SetData(sizeGateContext{
				Path:  path,
				Size:  entry.Size,
				Limit: opts.MaxSize,
			})
	}

	if opts.RequireConfirmation && opts.ConfirmationText != opts.ConfirmationPhrase {
		return DeleteResult{}, ErrConfirmationMismatch.SetData(pathContext{Path: path})
	}

	result := DeleteResult{Entry: entry}
	if opts.Backup {
		backupPath, err := BackupCopy(path, opts.BackupPath)
		if err != nil {
			return DeleteResult{}, err
		}
		result.BackupPath = backupPath
	}

	if entry.Kind == KindDirectory {
		if err := deleteDirectory(path, opts.Recursive); err != nil {
			return DeleteResult{}, err
		}
	} else if err := os.Remove(path); err != nil {
		return DeleteResult{}, ErrDeleteFile.
			SetError(err).
			SetData(pathContext{
				Path:  path,
				Error: err,
			})
	}

	result.Deleted = true
	return result, nil
}

// deleteDirectory removes a directory, depth-first when recursive. A
// non-recursive delete of a non-empty directory is refused.
func deleteDirectory(path string, recursive bool) error {
	if recursive {
		if err := os.RemoveAll(path); err != nil {
			return ErrDeleteDirectory.
				SetError(err).
				SetData(pathContext{
					Path:  path,
					Error: err,
				})
		}
		return nil
	}

	if err := os.Remove(path); err != nil {
		entries, readErr := os.ReadDir(path)
		if readErr == nil && len(entries) > 0 {
			return ErrDirectoryNotEmpty.SetData(pathContext{Path: path})
		}
		return ErrDeleteDirectory.
			SetError(err).
			SetData(pathContext{
				Path:  path,
				Error: err,
			})
	}
	return nil
}
