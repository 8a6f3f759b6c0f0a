// Package cache persists the last fetched record collections in a local
// SQLite database. The TUI uses snapshots for instant first paint while a
// fresh fetch runs, and list commands can serve them offline via --cached.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/voltride/voltdesk/internal/api"
	"github.com/voltride/voltdesk/internal/logger"
)

// Collection names used as snapshot keys.
const (
	CollectionStations = "stations"
	CollectionVehicles = "vehicles"
	CollectionStaff    = "staff"
	CollectionReports  = "reports"
)

// Cache manages the snapshot database.
type Cache struct {
	mu    sync.Mutex
	db    *sql.DB
	path  string
	stats *Stats
}

// Open opens or creates the snapshot cache at path.
func Open(path string) (*Cache, error) {
	db, err := openDatabase(path)
	if err != nil {
		return nil, err
	}

	logger.Log.Debugf("Snapshot cache opened at %s", path)

	return &Cache{
		db:    db,
		path:  path,
		stats: newStats(),
	}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// Path returns the database file location.
func (c *Cache) Path() string {
	return c.path
}

// Stats returns the in-process cache statistics.
func (c *Cache) Stats() *Stats {
	return c.stats
}

// SaveStations snapshots the station collection.
func (c *Cache) SaveStations(stations []api.Station) error {
	return saveSnapshot(c, CollectionStations, stations)
}

// Stations returns the cached station collection, or false when the snapshot
// is missing or older than its TTL.
func (c *Cache) Stations() ([]api.Station, bool) {
	return loadSnapshot[api.Station](c, CollectionStations)
}

// SaveVehicles snapshots the vehicle collection.
func (c *Cache) SaveVehicles(vehicles []api.Vehicle) error {
	return saveSnapshot(c, CollectionVehicles, vehicles)
}

// Vehicles returns the cached vehicle collection.
func (c *Cache) Vehicles() ([]api.Vehicle, bool) {
	return loadSnapshot[api.Vehicle](c, CollectionVehicles)
}

// SaveStaff snapshots the staff collection.
func (c *Cache) SaveStaff(staff []api.Staff) error {
	return saveSnapshot(c, CollectionStaff, staff)
}

// Staff returns the cached staff collection.
func (c *Cache) Staff() ([]api.Staff, bool) {
	return loadSnapshot[api.Staff](c, CollectionStaff)
}

// SaveReports snapshots the report collection.
func (c *Cache) SaveReports(reports []api.Report) error {
	return saveSnapshot(c, CollectionReports, reports)
}

// Reports returns the cached report collection.
func (c *Cache) Reports() ([]api.Report, bool) {
	return loadSnapshot[api.Report](c, CollectionReports)
}

// SnapshotInfo describes one stored snapshot for `voltdesk cache stats`.
type SnapshotInfo struct {
	Collection string
	Items      int
	Age        time.Duration
}

// Snapshots lists the stored snapshots, newest first.
func (c *Cache) Snapshots() ([]SnapshotInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return nil, fmt.Errorf("cache is closed")
	}

	rows, err := c.db.Query(
		"SELECT collection, timestamp, item_count FROM snapshots ORDER BY timestamp DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []SnapshotInfo
	for rows.Next() {
		var (
			info SnapshotInfo
			ts   int64
		)
		if err := rows.Scan(&info.Collection, &ts, &info.Items); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		info.Age = time.Since(time.Unix(ts, 0))
		infos = append(infos, info)
	}

	return infos, rows.Err()
}

// Clear drops every snapshot while keeping settings intact.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return fmt.Errorf("cache is closed")
	}

	if _, err := c.db.Exec("DELETE FROM snapshots"); err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}

	logger.Log.Debug("Snapshot cache cleared")
	return nil
}

func saveSnapshot[T any](c *Cache, collection string, items []T) error {
	start := time.Now()
	defer func() { c.stats.recordOperation("save", time.Since(start)) }()

	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s snapshot: %w", collection, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return fmt.Errorf("cache is closed")
	}

	_, err = c.db.Exec(
		"INSERT OR REPLACE INTO snapshots (collection, timestamp, payload_json, item_count) VALUES (?, ?, ?, ?)",
		collection, time.Now().Unix(), string(payload), len(items))
	if err != nil {
		return fmt.Errorf("failed to store %s snapshot: %w", collection, err)
	}

	logger.Log.Debugf("Cached %d %s", len(items), collection)
	return nil
}

func loadSnapshot[T any](c *Cache, collection string) ([]T, bool) {
	start := time.Now()
	defer func() { c.stats.recordOperation("load", time.Since(start)) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return nil, false
	}

	var (
		ts      int64
		payload string
	)
	err := c.db.QueryRow(
		"SELECT timestamp, payload_json FROM snapshots WHERE collection = ?",
		collection).Scan(&ts, &payload)
	if err == sql.ErrNoRows {
		c.stats.recordMiss()
		return nil, false
	}
	if err != nil {
		logger.Log.Warnf("Failed to read %s snapshot: %v", collection, err)
		c.stats.recordMiss()
		return nil, false
	}

	if age := time.Since(time.Unix(ts, 0)); age > c.ttlLocked(collection) {
		logger.Log.Debugf("%s snapshot expired (age: %v)", collection, age)
		if _, err := c.db.Exec("DELETE FROM snapshots WHERE collection = ?", collection); err != nil {
			logger.Log.Warnf("Failed to evict expired %s snapshot: %v", collection, err)
		}
		c.stats.recordMiss()
		return nil, false
	}

	var items []T
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		logger.Log.Warnf("Failed to decode %s snapshot: %v", collection, err)
		c.stats.recordMiss()
		return nil, false
	}

	c.stats.recordHit()
	return items, true
}
