package fsops

import (
	"regexp"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter narrows which file entries a walk reports. The zero value matches
// everything. Filters apply to files only; directories are never filtered.
type Filter struct {
	// NameRegex matches against the base name.
	NameRegex string
	// Glob matches a doublestar pattern against the path relative to the
	// walk root, slash-separated.
	Glob string
	// Extensions is an allow-list; entries are normalized to ".ext" form.
	Extensions []string
	// MinSize/MaxSize bound the byte size. Zero disables a bound.
	MinSize int64
	MaxSize int64
	// ModifiedAfter/ModifiedBefore bound the modification time. Zero
	// values disable a bound.
	ModifiedAfter  time.Time
	ModifiedBefore time.Time

	nameRe *regexp.Regexp
	extSet map[string]struct{}
}

// Compile validates the regex and glob patterns and prepares the
// extension set. It must be called before Matches.
func (f *Filter) Compile() error {
	if f.NameRegex != "" {
		re, err := regexp.Compile(f.NameRegex)
		if err != nil {
			return newPatternError(f.NameRegex, err)
		}
		f.nameRe = re
	}

	if f.Glob != "" && !doublestar.ValidatePattern(f.Glob) {
		return newPatternError(f.Glob, doublestar.ErrBadPattern)
	}

	if len(f.Extensions) > 0 {
		f.extSet = make(map[string]struct{}, len(f.Extensions))
		for _, ext := range f.Extensions {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			f.extSet[ext] = struct{}{}
		}
	}

	return nil
}

// Matches reports whether the entry passes every configured predicate.
// rel is the entry's slash-separated path relative to the walk root.
func (f *Filter) Matches(e Entry, rel string) bool {
	if f.extSet != nil {
		if _, ok := f.extSet[e.Extension]; !ok {
			return false
		}
	}

	if f.nameRe != nil && !f.nameRe.MatchString(e.Name) {
		return false
	}

	if f.Glob != "" {
		// Pattern validated in Compile; Match cannot fail here.
		matched, _ := doublestar.Match(f.Glob, rel)
		if !matched {
			return false
		}
	}

	if f.MinSize > 0 && e.Size < f.MinSize {
		return false
	}
	if f.MaxSize > 0 && e.Size > f.MaxSize {
		return false
	}

	if !f.ModifiedAfter.IsZero() && !e.ModifiedAt.After(f.ModifiedAfter) {
		return false
	}
	if !f.ModifiedBefore.IsZero() && !e.ModifiedAt.Before(f.ModifiedBefore) {
		return false
	}

	return true
}

// Empty reports whether the filter has no configured predicates.
func (f *Filter) Empty() bool {
	return f.NameRegex == "" &&
		f.Glob == "" &&
		len(f.Extensions) == 0 &&
		f.MinSize == 0 &&
		f.MaxSize == 0 &&
		f.ModifiedAfter.IsZero() &&
		f.ModifiedBefore.IsZero()
}
