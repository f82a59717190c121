package nodes

import (
	"go.uber.org/zap"

	"github.com/flowgrid/flowfs/internal/fsops"
	"github.com/flowgrid/flowfs/internal/types"
)

// Options carry the filesystem settings shared by all nodes.
type Options struct {
	// WorkDir anchors relative paths; empty means the process working
	// directory.
	WorkDir string
	// MaxReadBytes caps reads when the caller does not set maxSize;
	// 0 means unlimited.
	MaxReadBytes int64
	// BackupSuffix names derived backup paths; empty means ".bak".
	BackupSuffix string
}

// Base carries the per-node dependencies. Nodes hold only this and
// their tool schemas; no shared engine.
type Base struct {
	opts Options
	log  *zap.Logger
}

// NewBase creates the shared node base.
func NewBase(opts Options, log *zap.Logger) *Base {
	if log == nil {
		log = zap.NewNop()
	}
	return &Base{opts: opts, log: log}
}

// resolvePath normalizes a caller path. A run context working directory
// overrides the configured one for that run.
func (b *Base) resolvePath(path string, runCtx *types.Context) (string, error) {
	workDir := b.opts.WorkDir
	if runCtx != nil && runCtx.WorkDir != nil && *runCtx.WorkDir != "" {
		workDir = *runCtx.WorkDir
	}
	return fsops.NewResolver(workDir).Resolve(path)
}

// readCap resolves the effective read ceiling from a maxSize parameter:
// 0 takes the configured default, negative means unlimited.
func (b *Base) readCap(maxSize int64) int64 {
	switch {
	case maxSize == 0:
		return b.opts.MaxReadBytes
	case maxSize < 0:
		return 0
	default:
		return maxSize
	}
}

// backupPath resolves an explicit backup destination, deriving one
// beside the target with the configured suffix when empty.
func (b *Base) backupPath(target, explicit string, unixTime int64) string {
	if explicit != "" {
		return explicit
	}
	return fsops.DeriveBackupPath(target, b.opts.BackupSuffix, unixTime)
}
