// Package server provides HTTP server setup and initialization for FlowFS.
//
// This package orchestrates all components:
//   - HTTP routing with Gin framework
//   - Middleware stack (CORS, rate limiting, logging, recovery)
//   - Filesystem node pack registration
//   - Batch runner and WebSocket event hub wiring
//   - Prometheus metrics exposition
//
// Server Lifecycle:
//  1. Load configuration from environment/flags
//  2. Initialize logger (production or development)
//  3. Register the filesystem node pack
//  4. Wire batch runner, event hub, and metrics
//  5. Setup HTTP routes and middleware
//  6. Start HTTP server
//  7. Graceful shutdown on signal
//
// Features:
//   - Configuration-driven setup
//   - Graceful shutdown handling
//   - Health check endpoints
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.New(cfg, logger)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
