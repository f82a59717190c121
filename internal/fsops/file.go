package fsops

import (
	"bufio"
	"os"
	"path/filepath"
)

// scanBufferSize bounds the longest line ReadLines accepts.
const scanBufferSize = 1024 * 1024

// ReadFileCapped reads the whole file at path, refusing files whose
// stat size exceeds maxSize before any byte is read. maxSize <= 0
// means unlimited.
func ReadFileCapped(path string, maxSize int64) ([]byte, Entry, error) {
	entry, err := Stat(path)
	if err != nil {
		return nil, Entry{}, err
	}
	if entry.Kind == KindDirectory {
		return nil, entry, newKindMismatchError(path, KindFile, entry.Kind)
	}
	if maxSize > 0 && entry.Size > maxSize {
		return nil, entry, ErrFileTooLarge.
			SetData(sizeGateContext{
				Path:  path,
				Size:  entry.Size,
				Limit: maxSize,
			})
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, entry, ErrReadFile.
			SetError(err).
			SetData(pathContext{
				Path:  path,
				Error: err,
			})
	}
	return data, entry, nil
}

// ReadLines returns the 1-based inclusive line range [start, end] of
// the file at path. end 0 reads to EOF. Out-of-range bounds yield the
// intersection with the file's actual lines.
func ReadLines(path string, start, end int) ([]string, error) {
	if start < 1 {
		start = 1
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newNotFoundError(path, err)
		}
		return nil, ErrOpenFile.
			SetError(err).
			SetData(pathContext{
				Path:  path,
				Error: err,
			})
	}
	defer f.Close()

	lines := make([]string, 0)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), scanBufferSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo < start {
			continue
		}
		if end > 0 && lineNo > end {
			break
		}
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, ErrReadFile.
			SetError(err).
			SetData(pathContext{
				Path:  path,
				Error: err,
			})
	}

	return lines, nil
}

// WriteMode selects how a write treats an existing destination.
type WriteMode string

const (
	WriteOverwrite  WriteMode = "overwrite"
	WriteAppend     WriteMode = "append"
	WriteCreateOnly WriteMode = "createOnly"
)

// WriteOptions configure a file write.
type WriteOptions struct {
	Mode WriteMode
	// Permissions apply on creation; 0 means 0644.
	Permissions   os.FileMode
	CreateParents bool
	// Backup copies an existing destination aside before writing.
	Backup     bool
	BackupPath string
}

// WriteReceipt reports what a write did.
type WriteReceipt struct {
	BytesWritten int64
	Created      bool
	BackupPath   string
}

// WriteFile writes data to path per opts. createOnly fails with a
// conflict when the destination exists and leaves it untouched.
func WriteFile(path string, data []byte, opts WriteOptions) (WriteReceipt, error) {
	if opts.Mode == "" {
		opts.Mode = WriteOverwrite
	}
	perm := opts.Permissions
	if perm == 0 {
		perm = 0o644
	}

	existing, statErr := os.Lstat(path)
	exists := statErr == nil
	if exists && existing.IsDir() {
		return WriteReceipt{}, newKindMismatchError(path, KindFile, KindDirectory)
	}
	if exists && opts.Mode == WriteCreateOnly {
		return WriteReceipt{}, ErrCreateExists.SetData(pathContext{Path: path})
	}

	if opts.CreateParents {
		parent := filepath.Dir(path)
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return WriteReceipt{}, newCreateDirectoryError(parent, err)
		}
	}

	receipt := WriteReceipt{Created: !exists}
	if opts.Backup && exists {
		backupPath, err := BackupCopy(path, opts.BackupPath)
		if err != nil {
			return WriteReceipt{}, err
		}
		receipt.BackupPath = backupPath
	}

	flags := os.O_CREATE | os.O_WRONLY
	switch opts.Mode {
	case WriteAppend:
		flags |= os.O_APPEND
	case WriteCreateOnly:
		flags |= os.O_EXCL
	default:
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, perm)
	if err != nil {
		// A create-only race loses to whoever created the file first.
		if opts.Mode == WriteCreateOnly && os.IsExist(err) {
			return WriteReceipt{}, ErrCreateExists.SetData(pathContext{Path: path})
		}
		return WriteReceipt{}, newWriteError(path, opts.Mode, err)
	}

	n, err := f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return WriteReceipt{}, newWriteError(path, opts.Mode, err)
	}

	receipt.BytesWritten = int64(n)
	return receipt, nil
}

func newWriteError(path string, mode WriteMode, err error) error {
	sentinel := ErrWriteFile
	if mode == WriteAppend {
		sentinel = ErrAppendFile
	}
	return sentinel.
		SetError(err).
		SetData(pathContext{
			Path:  path,
			Error: err,
		})
}
