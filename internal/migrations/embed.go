// Package migrations provides embedded SQL migration files.
package migrations

import (
	_ "embed"
)

// CacheSQL creates the persisted cache table. It is idempotent.
//
//go:embed sql/001_cache.sql
var CacheSQL string
