// Package fsops implements the filesystem engine behind the nodes.
//
// Components:
//   - Resolver: path normalization against a working directory
//   - Walker: depth-first directory enumeration with filters
//   - Filter: name/extension/size/time predicates for file entries
//   - Sorter: stable entry ordering by name/size/modified/created/extension
//   - Transfer: recursive copy and rename-else-copy+delete move
//   - Deleter: gated deletion (existence, size ceiling, confirmation, backup)
//   - Prober: existence and access queries
//
// All operations are sequential and synchronous. Errors carry the resolved
// absolute path and the attempted operation via errorx context payloads.
package fsops
