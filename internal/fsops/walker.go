package fsops

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ListMode selects which entry kinds a walk reports. Reporting is
// independent of traversal: a files-only walk still descends into
// directories so file descendants remain discoverable.
type ListMode string

const (
	ListFiles       ListMode = "files"
	ListDirectories ListMode = "directories"
	ListBoth        ListMode = "both"
)

// TraversalOptions configure a walk.
type TraversalOptions struct {
	Recursive     bool
	IncludeHidden bool
	ListMode      ListMode
	// MaxDepth bounds descent; 0 means unbounded. Immediate children of
	// the root are depth 1. Non-recursive walks behave as MaxDepth 1.
	MaxDepth int
	// MaxResults stops the walk once the result set is full; 0 means
	// unbounded.
	MaxResults int
	// Filter, when set, must be compiled before the walk.
	Filter *Filter
}

// errWalkLimit stops a walk early once MaxResults entries are collected.
var errWalkLimit = errors.New("walk result limit reached")

// Walk enumerates the children of root depth-first in pre-order: each
// entry is reported before its own subtree. The root itself is not
// reported. Hidden entries are excluded before traversal, so nothing
// under a hidden directory is ever visited. Unreadable subdirectories
// contribute zero entries and the walk continues with their siblings.
// Symlinks are lstat'ed, reported as Kind Other and never followed.
func Walk(root string, opts TraversalOptions) ([]Entry, error) {
	rootEntry, err := Stat(root)
	if err != nil {
		return nil, err
	}
	if rootEntry.Kind != KindDirectory {
		return nil, newKindMismatchError(root, KindDirectory, rootEntry.Kind)
	}

	if opts.ListMode == "" {
		opts.ListMode = ListBoth
	}
	if !opts.Recursive {
		opts.MaxDepth = 1
	}

	w := &walker{root: root, opts: opts}
	if err := w.walkDir(root, 1); err != nil && err != errWalkLimit {
		return nil, err
	}
	return w.entries, nil
}

type walker struct {
	root    string
	opts    TraversalOptions
	entries []Entry
}

func (w *walker) walkDir(dir string, depth int) error {
	if w.opts.MaxDepth > 0 && depth > w.opts.MaxDepth {
		return nil
	}

	children, err := os.ReadDir(dir)
	if err != nil {
		// An unreadable root fails the walk; an unreadable subtree
		// contributes nothing and siblings continue.
		if dir == w.root {
			return ErrWalkDirectory.
				SetError(err).
				SetData(pathContext{
					Path:  dir,
					Error: err,
				})
		}
		return nil
	}

	for _, child := range children {
		name := child.Name()
		if !w.opts.IncludeHidden && strings.HasPrefix(name, ".") {
			continue
		}

		path := filepath.Join(dir, name)
		info, err := child.Info()
		if err != nil {
			// Removed between readdir and stat.
			continue
		}

		entry := NewEntry(path, info)
		entry.Depth = depth

		if w.keep(entry) {
			w.entries = append(w.entries, entry)
			if w.opts.MaxResults > 0 && len(w.entries) >= w.opts.MaxResults {
				return errWalkLimit
			}
		}

		if entry.Kind == KindDirectory {
			if err := w.walkDir(path, depth+1); err != nil {
				return err
			}
		}
	}

	return nil
}

// keep decides whether an entry joins the result set. ListMode gates by
// kind; the filter applies to non-directory entries only.
func (w *walker) keep(e Entry) bool {
	switch w.opts.ListMode {
	case ListFiles:
		if e.Kind == KindDirectory {
			return false
		}
	case ListDirectories:
		if e.Kind != KindDirectory {
			return false
		}
	}

	if e.Kind != KindDirectory && w.opts.Filter != nil && !w.opts.Filter.Empty() {
		rel, err := filepath.Rel(w.root, e.Path)
		if err != nil {
			rel = e.Name
		}
		return w.opts.Filter.Matches(e, filepath.ToSlash(rel))
	}

	return true
}
