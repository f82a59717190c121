// Package service provides the registry the workflow host uses to find
// and invoke node packs.
//
// The registry maintains a catalog of registered packs and handles
// discovery, tool routing, and relevance scoring for host queries.
//
// Components:
//   - Registry: Central node pack catalog
//   - Provider: Interface implemented by node packs
//   - Discovery with relevance scoring
//
// Features:
//   - Thread-safe pack registration
//   - Category-based filtering
//   - Intent-based discovery with scoring
//   - Tool execution with run context passing
//   - Registry statistics
//
// Discovery Algorithm:
//   - Keyword matching in name/description
//   - Capability matching
//   - Category bonus for exact matches
//   - Score-based ranking
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	registry.Register(nodes.NewPack(opts, logger))
//	services := registry.Discover("read file", 5)
//	result, err := registry.Execute("fs.read", params, runCtx)
package service
