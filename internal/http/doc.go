// Package http provides HTTP handlers and routing for the FlowFS REST API.
//
// This package implements all HTTP endpoints using the Gin framework, including
// health checks, tool discovery, single execution, and batch runs.
//
// Endpoints:
//   - Health: / and /health
//   - Services: /services, /services/discover, /services/execute
//   - Batch: /batch
//
// Features:
//   - JSON request/response handling
//   - Proper HTTP status codes
//   - Error response formatting
//   - Request validation
//
// Example Usage:
//
//	handlers := http.NewHandlers(registry, runner, hub, metrics, logger)
//	router.GET("/health", handlers.Health)
//	router.POST("/services/execute", handlers.ExecuteService)
package http
