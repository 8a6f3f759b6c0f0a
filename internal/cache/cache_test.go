package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltride/voltdesk/internal/api"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()

	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c
}

func TestSaveAndLoadStations(t *testing.T) {
	c := newTestCache(t)

	stations := []api.Station{
		{ID: "st-01", Name: "Trạm Quận 1", District: "Quận 1", Status: api.StationActive, Capacity: 40},
		{ID: "st-02", Name: "Trạm Thủ Đức", District: "Thủ Đức", Status: api.StationMaintenance, Capacity: 25},
	}
	require.NoError(t, c.SaveStations(stations))

	got, ok := c.Stations()
	require.True(t, ok)
	assert.Equal(t, stations, got)
}

func TestLoadMissingCollection(t *testing.T) {
	c := newTestCache(t)

	_, ok := c.Vehicles()
	assert.False(t, ok)

	snap := c.Stats().Snapshot()
	assert.Equal(t, int64(0), snap.Hits)
	assert.Equal(t, int64(1), snap.Misses)
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.SaveVehicles([]api.Vehicle{{ID: "v-01"}, {ID: "v-02"}}))
	require.NoError(t, c.SaveVehicles([]api.Vehicle{{ID: "v-03"}}))

	got, ok := c.Vehicles()
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "v-03", got[0].ID)
}

func TestExpiredSnapshotIsEvicted(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.SaveStaff([]api.Staff{{ID: "u-01", FullName: "Nguyễn Văn An"}}))

	// Backdate the snapshot past the TTL.
	_, err := c.db.Exec("UPDATE snapshots SET timestamp = ? WHERE collection = ?",
		time.Now().Add(-DefaultTTL-time.Minute).Unix(), CollectionStaff)
	require.NoError(t, err)

	_, ok := c.Staff()
	assert.False(t, ok)

	// The expired row is gone, not just skipped.
	infos, err := c.Snapshots()
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestPerCollectionTTLOverridesGlobal(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.SetTTL("", time.Minute))
	require.NoError(t, c.SetTTL(CollectionReports, time.Hour))

	assert.Equal(t, time.Minute, c.TTL(CollectionStations))
	assert.Equal(t, time.Hour, c.TTL(CollectionReports))
}

func TestSetTTLRejectsNonPositive(t *testing.T) {
	c := newTestCache(t)

	assert.Error(t, c.SetTTL(CollectionStations, 0))
	assert.Error(t, c.SetTTL(CollectionStations, -time.Second))
}

func TestSnapshotsReportItemCounts(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.SaveStations([]api.Station{{ID: "st-01"}}))
	require.NoError(t, c.SaveVehicles([]api.Vehicle{{ID: "v-01"}, {ID: "v-02"}, {ID: "v-03"}}))

	infos, err := c.Snapshots()
	require.NoError(t, err)
	require.Len(t, infos, 2)

	counts := map[string]int{}
	for _, info := range infos {
		counts[info.Collection] = info.Items
	}
	assert.Equal(t, 1, counts[CollectionStations])
	assert.Equal(t, 3, counts[CollectionVehicles])
}

func TestClearKeepsSettings(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.SetTTL(CollectionVehicles, time.Hour))
	require.NoError(t, c.SaveVehicles([]api.Vehicle{{ID: "v-01"}}))

	require.NoError(t, c.Clear())

	_, ok := c.Vehicles()
	assert.False(t, ok)
	assert.Equal(t, time.Hour, c.TTL(CollectionVehicles))
}

func TestHitRate(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.SaveStations([]api.Station{{ID: "st-01"}}))

	_, ok := c.Stations()
	require.True(t, ok)
	_, ok = c.Staff()
	require.False(t, ok)

	snap := c.Stats().Snapshot()
	assert.Equal(t, int64(1), snap.Hits)
	assert.Equal(t, int64(1), snap.Misses)
	assert.InDelta(t, 0.5, snap.HitRate, 0.001)
}

func TestReopenPreservesSnapshots(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.db")

	c, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, c.SaveStations([]api.Station{{ID: "st-01", Name: "Trạm Quận 7"}}))
	require.NoError(t, c.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, ok := reopened.Stations()
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Trạm Quận 7", got[0].Name)
}
