/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the FlowFS
service, tracking HTTP requests, node operations, batch runs, and system
metrics.

# Features

- HTTP request metrics (latency, throughput, size)
- Node operation metrics (duration, errors per tool)
- Batch run metrics (items, failures, duration, in-flight gauge)
- WebSocket connection metrics
- System metrics (uptime)

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record operation results
	metrics.RecordOperation("fs.read", "success", duration)

	// Time operations
	timer := monitoring.NewTimer(metrics, "fs.write")
	// ... perform operation ...
	timer.Stop("success")

# Metrics Endpoint

Expose metrics via the standard Prometheus endpoint:

	import "github.com/prometheus/client_golang/prometheus/promhttp"
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring
