package migrations

import "database/sql"

func init() {
	Register(&itemCountMigration{})
}

// itemCountMigration adds a per-snapshot item count so `voltdesk cache stats`
// can report collection sizes without decoding payloads.
type itemCountMigration struct{}

func (m *itemCountMigration) Version() int { return 2 }

func (m *itemCountMigration) Description() string {
	return "add item_count column to snapshots"
}

func (m *itemCountMigration) Up(db *sql.DB) error {
	return ExecStatements(db, []string{
		`ALTER TABLE snapshots ADD COLUMN item_count INTEGER NOT NULL DEFAULT 0`,
	})
}
