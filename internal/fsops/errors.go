package fsops

import (
	"github.com/boostgo/errorx"
)

var (
	ErrPathRequired = errorx.New("flowfs.path.required")
	ErrNotFound     = errorx.New("flowfs.path.not_found")
	ErrKindMismatch = errorx.New("flowfs.path.kind_mismatch")
	ErrStatPath     = errorx.New("flowfs.path.stat")

	ErrInvalidPattern = errorx.New("flowfs.filter.pattern")
	ErrWalkDirectory  = errorx.New("flowfs.walk.read_directory")

	ErrOpenFile     = errorx.New("flowfs.file.open")
	ErrReadFile     = errorx.New("flowfs.file.read")
	ErrFileTooLarge = errorx.New("flowfs.file.too_large")
	ErrWriteFile    = errorx.New("flowfs.file.write")
	ErrAppendFile   = errorx.New("flowfs.file.append")
	ErrCreateExists = errorx.New("flowfs.file.create_exists")
	ErrCopyFile     = errorx.New("flowfs.file.copy")
	ErrDeleteFile   = errorx.New("flowfs.file.delete")

	ErrCreateDirectory   = errorx.New("flowfs.directory.create")
	ErrCopyDirectory     = errorx.New("flowfs.directory.copy")
	ErrDeleteDirectory   = errorx.New("flowfs.directory.delete")
	ErrDirectoryNotEmpty = errorx.New("flowfs.directory.not_empty")

	ErrRecursiveRequired = errorx.New("flowfs.transfer.recursive_required")
	ErrDestinationExists = errorx.New("flowfs.transfer.destination_exists")
	ErrRenamePath        = errorx.New("flowfs.move.rename")

	ErrSizeGateExceeded     = errorx.New("flowfs.delete.size_gate")
	ErrConfirmationMismatch = errorx.New("flowfs.delete.confirmation_mismatch")

	ErrCreateBackup      = errorx.New("flowfs.backup.create")
	ErrDirectoryBackup   = errorx.New("flowfs.backup.directory_unsupported")
	ErrChecksumUnsupport = errorx.New("flowfs.checksum.unsupported")
)

type pathContext struct {
	Path  string `json:"path"`
	Error error  `json:"error"`
}

type patternContext struct {
	Pattern string `json:"pattern"`
	Error   error  `json:"error"`
}

type kindContext struct {
	Path string `json:"path"`
	Want string `json:"want"`
	Got  string `json:"got"`
}

type transferContext struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Error       error  `json:"error"`
}

type sizeGateContext struct {
	Path  string `json:"path"`
	Size  int64  `json:"size"`
	Limit int64  `json:"limit"`
}

func newNotFoundError(path string, err error) error {
	return ErrNotFound.
		SetData(pathContext{
			Path:  path,
			Error: err,
		})
}

func newKindMismatchError(path string, want, got Kind) error {
	return ErrKindMismatch.
		SetData(kindContext{
			Path: path,
			Want: string(want),
			Got:  string(got),
		})
}

func newPatternError(pattern string, err error) error {
	return ErrInvalidPattern.
		SetError(err).
		SetData(patternContext{
			Pattern: pattern,
			Error:   err,
		})
}

func newStatError(path string, err error) error {
	return ErrStatPath.
		SetError(err).
		SetData(pathContext{
			Path:  path,
			Error: err,
		})
}

func newCopyFileError(src, dst string, err error) error {
	return ErrCopyFile.
		SetError(err).
		SetData(transferContext{
			Source:      src,
			Destination: dst,
			Error:       err,
		})
}

func newCopyDirectoryError(src, dst string, err error) error {
	return ErrCopyDirectory.
		SetError(err).
		SetData(transferContext{
			Source:      src,
			Destination: dst,
			Error:       err,
		})
}

func newRenameError(src, dst string, err error) error {
	return ErrRenamePath.
		SetError(err).
		SetData(transferContext{
			Source:      src,
			Destination: dst,
			Error:       err,
		})
}

func newCreateDirectoryError(path string, err error) error {
	return ErrCreateDirectory.
		SetError(err).
		SetData(pathContext{
			Path:  path,
			Error: err,
		})
}

func newBackupError(path string, err error) error {
	return ErrCreateBackup.
		SetError(err).
		SetData(pathContext{
			Path:  path,
			Error: err,
		})
}
