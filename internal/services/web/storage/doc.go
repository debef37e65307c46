// Package storage declares persistence contracts for browser session state.
//
// The session store holds values the browser flow owns: the bearer token
// issued at login and the last fetched profile record.
package storage
