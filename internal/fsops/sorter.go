package fsops

import (
	"sort"
	"strings"
)

// SortKey selects the entry attribute used for ordering.
type SortKey string

const (
	SortByName      SortKey = "name"
	SortBySize      SortKey = "size"
	SortByModified  SortKey = "modified"
	SortByCreated   SortKey = "created"
	SortByExtension SortKey = "extension"
)

// SortOrder selects ascending or descending order.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// Sort orders entries in place by key, stably, so equal keys keep their
// discovery order. Name comparison is case-insensitive; extensions are
// already lower-cased at stat time.
func Sort(entries []Entry, key SortKey, order SortOrder) {
	var less func(a, b Entry) bool
	switch key {
	case SortBySize:
		less = func(a, b Entry) bool { return a.Size < b.Size }
	case SortByModified:
		less = func(a, b Entry) bool { return a.ModifiedAt.Before(b.ModifiedAt) }
	case SortByCreated:
		less = func(a, b Entry) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortByExtension:
		less = func(a, b Entry) bool { return a.Extension < b.Extension }
	default:
		less = func(a, b Entry) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if order == SortDescending {
			return less(entries[j], entries[i])
		}
		return less(entries[i], entries[j])
	})
}
