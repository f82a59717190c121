package fsops

import (
	"os"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
)

// MkdirOptions configure directory creation.
type MkdirOptions struct {
	// Parents creates missing intermediate directories.
	Parents bool
	// Permissions apply on creation; 0 means 0755.
	Permissions os.FileMode
	// SkipIfExists makes an existing directory a success instead of a
	// conflict; an existing non-directory is a kind mismatch either way.
	SkipIfExists bool
}

// MkdirResult reports what a mkdir did.
type MkdirResult struct {
	Created bool
	Existed bool
}

// Mkdir creates the directory at path per opts.
func Mkdir(path string, opts MkdirOptions) (MkdirResult, error) {
	perm := opts.Permissions
	if perm == 0 {
		perm = 0o755
	}

	if info, err := os.Lstat(path); err == nil {
		if !info.IsDir() {
			return MkdirResult{}, newKindMismatchError(path, KindDirectory, kindOf(info.Mode()))
		}
		if opts.SkipIfExists || opts.Parents {
			return MkdirResult{Existed: true}, nil
		}
		return MkdirResult{}, ErrCreateExists.SetData(pathContext{Path: path})
	}

	var err error
	if opts.Parents {
		err = os.MkdirAll(path, perm)
	} else {
		err = os.Mkdir(path, perm)
	}
	if err != nil {
		return MkdirResult{}, newCreateDirectoryError(path, err)
	}

	return MkdirResult{Created: true}, nil
}

// TreeSize returns the aggregate byte size at path: the file's size, or
// the total of all file sizes under a directory. The directory total is
// a commutative sum with no ordered output, so a parallel walk is used;
// unreadable entries contribute zero. The second return counts files.
func TreeSize(path string) (int64, int64, error) {
	entry, err := Stat(path)
	if err != nil {
		return 0, 0, err
	}
	if entry.Kind != KindDirectory {
		return entry.Size, 1, nil
	}

	var total, files atomic.Int64
	conf := fastwalk.Config{Follow: false}
	walkErr := fastwalk.Walk(&conf, path, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Mode().IsRegular() {
			total.Add(info.Size())
			files.Add(1)
		}
		return nil
	})
	if walkErr != nil {
		return 0, 0, ErrWalkDirectory.
			SetError(walkErr).
			SetData(pathContext{
				Path:  path,
				Error: walkErr,
			})
	}

	return total.Load(), files.Load(), nil
}
