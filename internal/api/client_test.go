package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltride/voltdesk/internal/mutation"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), Config{
		BaseURL: server.URL,
		Token:   "test-token",
		Timeout: 2 * time.Second,
	})
	require.NoError(t, err)

	return client, server
}

func TestNewClientValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"empty base URL", Config{Token: "t"}},
		{"relative base URL", Config{BaseURL: "/api", Token: "t"}},
		{"bad scheme", Config{BaseURL: "ftp://host", Token: "t"}},
		{"missing token", Config{BaseURL: "https://host"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(context.Background(), tt.cfg)
			require.Error(t, err)
		})
	}
}

func TestListStationsDecodesEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stations", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "active", r.URL.Query().Get("status"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "st-1", "name": "Trạm Quận 1", "status": "active", "capacity": 20},
				{"id": "st-2", "name": "Trạm Thủ Đức", "status": "active", "capacity": 35},
			},
			"pagination": map[string]int{"page": 1, "page_size": 50, "total_items": 2, "total_pages": 1},
		})
	}))

	stations, info, err := client.ListStations(context.Background(), ListOptions{Status: "active"})
	require.NoError(t, err)
	require.Len(t, stations, 2)
	assert.Equal(t, "Trạm Quận 1", stations[0].Name)
	require.NotNil(t, info)
	assert.Equal(t, 2, info.TotalItems)
}

func TestListAllStationsDrainsPages(t *testing.T) {
	var requests atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		requests.Add(1)

		items := []map[string]any{{"id": "st-" + page, "name": "Station " + page}}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":       items,
			"pagination": map[string]int{"page": 1, "total_pages": 3},
		})
	}))

	stations, err := client.ListAllStations(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Len(t, stations, 3)
	assert.Equal(t, int32(3), requests.Load())
}

func TestBackendErrorIsDefinite(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"code": "fleet_conflict", "message": "station fleet changed during sync"},
		})
	}))

	_, err := client.SyncStation(context.Background(), "st-1")
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.False(t, IsAmbiguous(err))
	assert.Contains(t, err.Error(), "station fleet changed during sync")
}

func TestTransportFailureIsAmbiguous(t *testing.T) {
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := client.CreateStaff(context.Background(), StaffInput{
		FullName:  "Nguyễn Văn An",
		Email:     "an.nguyen@voltride.vn",
		Phone:     "0901234567",
		Role:      RoleTechnician,
		StationID: "st-1",
	}, NewIdempotencyKey())
	require.Error(t, err)
	assert.True(t, IsAmbiguous(err))
}

func TestGetRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"id": "st-1", "name": "Trạm Quận 1"},
		})
	}))

	station, err := client.GetStation(context.Background(), "st-1")
	require.NoError(t, err)
	assert.Equal(t, "st-1", station.ID)
	assert.Equal(t, int32(2), calls.Load())
}

func TestMutationsAreNeverRetried(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := client.AssignVehicle(context.Background(), "v-1", "st-1")
	require.Error(t, err)

	// One POST only: a retried mutation could apply twice.
	assert.Equal(t, int32(1), calls.Load())
}

func TestCreateStaffSendsIdempotencyKey(t *testing.T) {
	keys := make(chan string, 1)
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys <- r.Header.Get("Idempotency-Key")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"id": "sf-1", "full_name": "Nguyễn Văn An"},
		})
	}))

	key := NewIdempotencyKey()
	_, err := client.CreateStaff(context.Background(), StaffInput{
		FullName:  "Nguyễn Văn An",
		Email:     "an.nguyen@voltride.vn",
		Phone:     "0901234567",
		Role:      RoleTechnician,
		StationID: "st-1",
	}, key)
	require.NoError(t, err)
	assert.Equal(t, key, <-keys)
}

func TestCreateStaffRetryAfterTimeoutReusesKey(t *testing.T) {
	var (
		attempts atomic.Int32
		keys     = make(chan string, 2)
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys <- r.Header.Get("Idempotency-Key")
		if attempts.Add(1) == 1 {
			// Let the first attempt time out client-side.
			time.Sleep(500 * time.Millisecond)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"id": "sf-1", "full_name": "Nguyễn Văn An"},
		})
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), Config{
		BaseURL: server.URL,
		Token:   "test-token",
		Timeout: 100 * time.Millisecond,
	})
	require.NoError(t, err)

	input := StaffInput{
		FullName:  "Nguyễn Văn An",
		Email:     "an.nguyen@voltride.vn",
		Phone:     "0901234567",
		Role:      RoleTechnician,
		StationID: "st-1",
	}

	key := NewIdempotencyKey()
	orch := mutation.New(mutation.Config{})
	op := func(ctx context.Context) error {
		_, err := client.CreateStaff(ctx, input, key)
		return err
	}

	err = orch.Invoke(context.Background(), op)
	require.Error(t, err)
	assert.True(t, IsAmbiguous(err))

	// The operator verified the list and found no account; retrying must
	// resubmit the original request, not a second distinct creation.
	require.NoError(t, orch.Retry(context.Background()))

	first, second := <-keys, <-keys
	assert.Equal(t, key, first)
	assert.Equal(t, first, second)
}

func TestInvalidInputNeverReachesBackend(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be contacted for invalid input")
	}))

	_, err := client.CreateStaff(context.Background(), StaffInput{Email: "not-an-email"}, NewIdempotencyKey())
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestCollectPagesStopsOnEmptyPage(t *testing.T) {
	fetched := 0
	items, err := collectPages(func(page int) ([]int, *PageInfo, error) {
		fetched++
		if page > 2 {
			return nil, &PageInfo{TotalPages: 10}, nil
		}
		return []int{page}, &PageInfo{TotalPages: 10}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, items)
	assert.Equal(t, 3, fetched)
}

func TestCollectPagesPropagatesError(t *testing.T) {
	_, err := collectPages(func(page int) ([]int, *PageInfo, error) {
		return nil, nil, fmt.Errorf("page %d failed", page)
	})
	require.EqualError(t, err, "page 1 failed")
}

func TestListAllReportsDrainsPages(t *testing.T) {
	var requests atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "2025-07", r.URL.Query().Get("period"))

		page := r.URL.Query().Get("page")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":       []map[string]any{{"id": "rp-" + page, "period": "2025-07"}},
			"pagination": map[string]int{"page": 1, "total_pages": 2},
		})
	}))

	reports, err := client.ListAllReports(context.Background(), ReportOptions{Period: "2025-07"})
	require.NoError(t, err)
	assert.Len(t, reports, 2)
	assert.Equal(t, int32(2), requests.Load())
}
