// Package ws provides WebSocket streaming of batch run events.
//
// This package implements a broadcast hub: clients connect to /stream and
// receive every run lifecycle event published by the batch runner.
//
// Features:
//   - Automatic connection upgrade from HTTP
//   - Broadcast of run events to all connected clients
//   - Keep-alive ping/pong
//   - Dead connections dropped on write failure
//
// Message Types (Client → Server):
//   - ping: Keep-alive ping
//
// Message Types (Server → Client):
//   - system: Connection established
//   - pong: Keep-alive reply
//   - run_started: Batch run began
//   - item_completed: One item produced outputs
//   - item_failed: One item failed
//   - run_finished: Batch run ended
//   - error: Error occurred
//
// Example Usage:
//
//	hub := ws.NewHub(logger, metrics)
//	router.GET("/stream", hub.HandleConnection)
package ws
