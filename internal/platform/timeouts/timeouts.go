// Package timeouts defines shared timeout constants used across the admin
// process.
package timeouts

import "time"

// BackendRequest caps a single call from the dashboard to a backend endpoint.
const BackendRequest = 10 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// SessionIdle is how long an untouched session scope survives in memory.
const SessionIdle = 12 * time.Hour
