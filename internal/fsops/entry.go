package fsops

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/flowgrid/flowfs/internal/fsutil"
)

// Kind classifies a filesystem node.
type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
	KindOther     Kind = "other"

	// KindAny is accepted by kind filters; it is never reported on entries.
	KindAny Kind = "any"
)

func kindOf(mode os.FileMode) Kind {
	switch {
	case mode.IsRegular():
		return KindFile
	case mode.IsDir():
		return KindDirectory
	default:
		return KindOther
	}
}

// Entry is one discovered filesystem node. Kind, size and times come from
// a single stat call; no entry exists without a successful stat.
type Entry struct {
	Path       string
	Name       string
	Kind       Kind
	Size       int64
	Mode       os.FileMode
	ModifiedAt time.Time
	CreatedAt  time.Time
	AccessedAt time.Time
	Extension  string
	Hidden     bool
	Depth      int
}

// NewEntry builds an Entry from one stat result for path.
func NewEntry(path string, info os.FileInfo) Entry {
	name := filepath.Base(path)
	created, accessed := statTimes(info)
	return Entry{
		Path:       path,
		Name:       name,
		Kind:       kindOf(info.Mode()),
		Size:       info.Size(),
		Mode:       info.Mode(),
		ModifiedAt: info.ModTime(),
		CreatedAt:  created,
		AccessedAt: accessed,
		Extension:  strings.ToLower(filepath.Ext(name)),
		Hidden:     strings.HasPrefix(name, "."),
	}
}

// Stat resolves path with a single lstat and returns its Entry.
func Stat(path string) (Entry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Entry{}, newNotFoundError(path, err)
		}
		return Entry{}, newStatError(path, err)
	}
	return NewEntry(path, info), nil
}

// Record maps the entry to the output-record shape emitted by nodes.
func (e Entry) Record() map[string]interface{} {
	return map[string]interface{}{
		"path":        e.Path,
		"name":        e.Name,
		"type":        string(e.Kind),
		"size":        e.Size,
		"size_human":  fsutil.FormatBytes(e.Size),
		"mode":        fsutil.FormatMode(uint32(e.Mode.Perm())),
		"extension":   e.Extension,
		"hidden":      e.Hidden,
		"modified_at": e.ModifiedAt.Format(time.RFC3339),
		"created_at":  e.CreatedAt.Format(time.RFC3339),
		"accessed_at": e.AccessedAt.Format(time.RFC3339),
	}
}
