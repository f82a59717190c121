// Package fsutil provides the shared helpers used across the filesystem nodes.
//
// Every concern here has exactly one implementation: size formatting,
// content digests, MIME/charset detection, and the binary-content heuristic.
// Node code must use these instead of reimplementing them per operation.
package fsutil
