// Package migrations provides schema migrations for the snapshot cache.
package migrations

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
)

// Migration defines a database schema migration.
type Migration interface {
	// Version returns the target schema version after this migration is
	// applied. Migrations run in version order (2, 3, ...).
	Version() int

	// Description returns a human-readable summary.
	Description() string

	// Up applies the migration. It must be idempotent.
	Up(db *sql.DB) error
}

var registry []Migration

// Register adds a migration, typically from an init function in the file
// that defines it.
func Register(m Migration) {
	registry = append(registry, m)
}

// All returns the registered migrations sorted by version.
func All() []Migration {
	sorted := make([]Migration, len(registry))
	copy(sorted, registry)

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Version() < sorted[j].Version()
	})

	return sorted
}

// LatestVersion returns the highest registered version, or 1 when only the
// base schema exists.
func LatestVersion() int {
	latest := 1
	for _, m := range registry {
		if m.Version() > latest {
			latest = m.Version()
		}
	}
	return latest
}

// Pending returns migrations newer than currentVersion, in order.
func Pending(currentVersion int) []Migration {
	var pending []Migration
	for _, m := range All() {
		if m.Version() > currentVersion {
			pending = append(pending, m)
		}
	}
	return pending
}

// ExecStatements runs statements in order, tolerating reruns of idempotent
// schema changes.
func ExecStatements(db *sql.DB, statements []string) error {
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			if !isIgnorableError(err) {
				return fmt.Errorf("failed to execute statement: %w", err)
			}
		}
	}
	return nil
}

func isIgnorableError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate column")
}
