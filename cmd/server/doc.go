// Package main is the entry point for the FlowFS server.
//
// This application serves filesystem nodes to a workflow-automation host:
// each node is a declaratively described tool, executable one-off or
// across a batch of input records.
//
// The server provides:
//   - REST API for tool discovery and execution
//   - Batch runs with per-item parameter sets
//   - WebSocket streaming of run lifecycle events
//   - Prometheus metrics
//   - Rate limiting and CORS
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -workdir /srv/data
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
