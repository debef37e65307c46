// Package timeouts defines shared timeout constants used across commands.
// Keeping them together keeps the web server and the fake backend in step.
package timeouts

import "time"

// APIRequest caps a single call from the web server to the account backend.
const APIRequest = 10 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// SessionIdle is how long an untouched browser session is kept.
const SessionIdle = 24 * time.Hour
