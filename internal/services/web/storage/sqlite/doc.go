// Package sqlite provides the session store backed by SQLite.
package sqlite
