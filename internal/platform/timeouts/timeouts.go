// Package timeouts defines shared timeout constants used across the service.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// BackendRequest caps one request to the backend API, retries included.
const BackendRequest = 5 * time.Second

// CachePing caps the startup connectivity check for external cache stores.
const CachePing = 2 * time.Second

// QueryLoad caps one shared query load, retries included.
const QueryLoad = 15 * time.Second
