package fsops

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolver normalizes caller-supplied paths against a working directory.
// Relative paths are joined onto WorkDir; absolute paths pass through.
type Resolver struct {
	WorkDir string
}

// NewResolver creates a resolver rooted at workDir. An empty workDir
// falls back to the process working directory.
func NewResolver(workDir string) *Resolver {
	if workDir == "" {
		if wd, err := os.Getwd(); err == nil {
			workDir = wd
		} else {
			workDir = string(os.PathSeparator)
		}
	}
	return &Resolver{WorkDir: workDir}
}

// Resolve returns the absolute, cleaned form of path.
func (r *Resolver) Resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrPathRequired.SetData(pathContext{Path: path})
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.WorkDir, path)
	}
	return filepath.Clean(path), nil
}
