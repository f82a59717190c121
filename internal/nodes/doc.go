// Package nodes exposes the filesystem plugin nodes.
//
// Each node is a self-contained operation family: it declares its tools
// (parameter schemas) and runs them against the fsops engine, mapping
// input records to output records. The Pack aggregates all nodes into
// one service (ID "fs") and routes fs.<op> tool IDs to the owning node.
//
// Nodes:
//   - ReadNode: fs.read, fs.read_lines
//   - WriteNode: fs.write
//   - ListNode: fs.list
//   - StatNode: fs.stat, fs.size
//   - DeleteNode: fs.delete
//   - CopyNode: fs.copy
//   - MoveNode: fs.move
//   - MkdirNode: fs.mkdir
//   - ExistsNode: fs.exists
//   - SearchNode: fs.glob, fs.grep
//   - StructuredNode: fs.read_structured, fs.write_structured
//   - ArchiveNode: fs.archive_create, fs.archive_extract, fs.archive_entries
//
// Errors surface as failed results with a message, never as Go errors:
// the batch runner owns the continue-on-fail policy.
package nodes
