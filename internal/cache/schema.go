package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/voltride/voltdesk/internal/cache/migrations"
	"github.com/voltride/voltdesk/internal/logger"
)

// FilePermissions restricts the cache file to the owning user.
const FilePermissions = 0o600

// SchemaVersion is the current database schema version.
var SchemaVersion = migrations.LatestVersion()

const (
	createMetadataTable = `
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`

	createSettingsTable = `
		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`

	createSnapshotsTable = `
		CREATE TABLE IF NOT EXISTS snapshots (
			collection TEXT PRIMARY KEY,
			timestamp INTEGER NOT NULL,
			payload_json TEXT NOT NULL
		)`

	createSnapshotsIndexes = `
		CREATE INDEX IF NOT EXISTS idx_snapshots_timestamp ON snapshots(timestamp)`
)

// openDatabase opens (creating if needed) the sqlite cache at path and brings
// its schema up to date.
func openDatabase(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := migrateSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := os.Chmod(path, FilePermissions); err != nil {
		logger.Log.Debugf("Failed to restrict cache file permissions: %v", err)
	}

	return db, nil
}

// initSchema creates the base (v1) tables.
func initSchema(db *sql.DB) error {
	statements := []string{
		createMetadataTable,
		createSettingsTable,
		createSnapshotsTable,
		createSnapshotsIndexes,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	return nil
}

func getSchemaVersion(db *sql.DB) (int, error) {
	var version int

	err := db.QueryRow("SELECT value FROM metadata WHERE key = 'schema_version'").Scan(&version)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}

	return version, nil
}

func setSchemaVersion(db *sql.DB, version int) error {
	_, err := db.Exec("INSERT OR REPLACE INTO metadata (key, value) VALUES ('schema_version', ?)", version)
	if err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	return nil
}

// migrateSchema applies pending migrations from the registry.
func migrateSchema(db *sql.DB) error {
	current, err := getSchemaVersion(db)
	if err != nil {
		return err
	}

	if current == 0 {
		// Fresh database: the base tables are v1, newer columns come from
		// the migrations below.
		if err := setSchemaVersion(db, 1); err != nil {
			return err
		}
		current = 1
	}

	pending := migrations.Pending(current)
	if len(pending) == 0 {
		return nil
	}

	logger.Log.Debugf("Migrating cache schema from version %d to %d", current, SchemaVersion)

	for _, m := range pending {
		logger.Log.Debugf("Applying cache migration v%d: %s", m.Version(), m.Description())

		if err := m.Up(db); err != nil {
			return fmt.Errorf("cache migration v%d failed: %w", m.Version(), err)
		}
		if err := setSchemaVersion(db, m.Version()); err != nil {
			return err
		}
	}

	return nil
}
