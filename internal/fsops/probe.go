package fsops

import (
	"os"
)

// ExistsOptions configure an existence and access query.
type ExistsOptions struct {
	// Kind filters the match: KindFile, KindDirectory or KindAny.
	Kind Kind
	// FollowSymlinks resolves a symlink and reports the target's kind
	// and metadata instead of the link's.
	FollowSymlinks bool
	// Access probes run independently; one probe's failure does not
	// abort the others.
	CheckRead    bool
	CheckWrite   bool
	CheckExecute bool
	// IncludeDetails attaches the full entry record.
	IncludeDetails bool
}

// Probe reports the outcome of an existence query. Absence is a normal
// outcome, not an error; only an I/O failure while stat-ing a present
// path surfaces as one.
type Probe struct {
	Exists      bool
	KindMatches bool
	Entry       Entry
	// Target holds the symlink target when FollowSymlinks resolved one.
	Target     string
	CanRead    *bool
	CanWrite   *bool
	CanExecute *bool
}

// Exists probes path per opts.
func Exists(path string, opts ExistsOptions) (Probe, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Probe{}, nil
		}
		return Probe{}, newStatError(path, err)
	}

	entry := NewEntry(path, info)
	probe := Probe{Exists: true}

	if opts.FollowSymlinks && info.Mode()&os.ModeSymlink != 0 {
		if target, err := os.Readlink(path); err == nil {
			probe.Target = target
		}
		// A dangling link keeps the link's own entry.
		if resolved, err := os.Stat(path); err == nil {
			entry = NewEntry(path, resolved)
		}
	}
	probe.Entry = entry
	probe.KindMatches = opts.Kind == "" || opts.Kind == KindAny || entry.Kind == opts.Kind

	if opts.CheckRead {
		probe.CanRead = boolPtr(canRead(path))
	}
	if opts.CheckWrite {
		probe.CanWrite = boolPtr(canWrite(path, entry.Kind))
	}
	if opts.CheckExecute {
		probe.CanExecute = boolPtr(entry.Mode.Perm()&0o111 != 0)
	}

	return probe, nil
}

func canRead(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// canWrite probes by opening for write; for directories it creates and
// removes a scratch file, the only reliable portable check.
func canWrite(path string, kind Kind) bool {
	if kind == KindDirectory {
		f, err := os.CreateTemp(path, ".write-probe-*")
		if err != nil {
			return false
		}
		name := f.Name()
		f.Close()
		os.Remove(name)
		return true
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

func boolPtr(b bool) *bool {
	return &b
}
