package cache

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/voltride/voltdesk/internal/logger"
)

// DefaultTTL is how long a snapshot stays fresh when nothing overrides it.
const DefaultTTL = 15 * time.Minute

const (
	settingGlobalTTL = "ttl_global"
	settingTTLPrefix = "ttl_"
)

// SetTTL stores a per-collection freshness window. An empty collection name
// sets the global default used by collections without their own TTL.
func (c *Cache) SetTTL(collection string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive, got %v", ttl)
	}

	key := settingGlobalTTL
	if collection != "" {
		key = settingTTLPrefix + collection
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return fmt.Errorf("cache is closed")
	}

	_, err := c.db.Exec(
		"INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)",
		key, strconv.FormatInt(int64(ttl.Seconds()), 10))
	if err != nil {
		return fmt.Errorf("failed to store TTL setting: %w", err)
	}

	logger.Log.Debugf("Cache TTL for %q set to %v", key, ttl)
	return nil
}

// TTL reports the freshness window for a collection, falling back to the
// global setting and then to DefaultTTL.
func (c *Cache) TTL(collection string) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttlLocked(collection)
}

func (c *Cache) ttlLocked(collection string) time.Duration {
	if c.db == nil {
		return DefaultTTL
	}

	if collection != "" {
		if ttl, ok := c.readTTLLocked(settingTTLPrefix + collection); ok {
			return ttl
		}
	}
	if ttl, ok := c.readTTLLocked(settingGlobalTTL); ok {
		return ttl
	}

	return DefaultTTL
}

func (c *Cache) readTTLLocked(key string) (time.Duration, bool) {
	var value string
	err := c.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, false
	}
	if err != nil {
		logger.Log.Warnf("Failed to read setting %q: %v", key, err)
		return 0, false
	}

	seconds, err := strconv.ParseInt(value, 10, 64)
	if err != nil || seconds <= 0 {
		logger.Log.Warnf("Ignoring malformed TTL setting %q: %q", key, value)
		return 0, false
	}

	return time.Duration(seconds) * time.Second, true
}
