package collection

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testVehicle struct {
	ID      string
	Plate   string
	Model   string
	Kind    string
	Status  string
	Battery int
}

func vehicleSchema() Schema[testVehicle] {
	return Schema[testVehicle]{
		SearchFields: func(v testVehicle) []string { return []string{v.Plate, v.Model} },
		Status:       func(v testVehicle) string { return v.Status },
		Kind:         func(v testVehicle) string { return v.Kind },
		Compare: map[string]func(a, b testVehicle) int{
			"plate":   func(a, b testVehicle) int { return CompareStrings(a.Plate, b.Plate) },
			"model":   func(a, b testVehicle) int { return CompareStrings(a.Model, b.Model) },
			"battery": func(a, b testVehicle) int { return CompareInts(a.Battery, b.Battery) },
		},
	}
}

// fleet builds 23 vehicles: 10 available, 8 rented, 5 maintenance.
func fleet() []testVehicle {
	var out []testVehicle
	add := func(n int, status string) {
		for i := 0; i < n; i++ {
			idx := len(out)
			out = append(out, testVehicle{
				ID:      fmt.Sprintf("v-%02d", idx),
				Plate:   fmt.Sprintf("59X-%03d", idx),
				Model:   fmt.Sprintf("Model %c", 'Z'-idx),
				Kind:    "scooter",
				Status:  status,
				Battery: idx * 4,
			})
		}
	}
	add(10, "available")
	add(8, "rented")
	add(5, "maintenance")
	return out
}

func TestApplyStatusFilterWithPagination(t *testing.T) {
	schema := vehicleSchema()
	d := DefaultDirectives()
	d.Status = "available"
	d.SortField = "model"
	d.PageSize = 5

	view := schema.Apply(fleet(), d)

	require.Len(t, view.Page, 5)
	for _, v := range view.Page {
		assert.Equal(t, "available", v.Status)
	}
	assert.Equal(t, 10, view.TotalFiltered)
	assert.Equal(t, 2, view.TotalPages)
	assert.Equal(t, 10, view.StatusCounts["available"])
	assert.Equal(t, 8, view.StatusCounts["rented"])
	assert.Equal(t, 5, view.StatusCounts["maintenance"])

	// Case-insensitive ascending by model.
	for i := 1; i < len(view.Page); i++ {
		assert.LessOrEqual(t, CompareStrings(view.Page[i-1].Model, view.Page[i].Model), 0)
	}

	// A larger page size collapses to one page and page 2 becomes invalid.
	d.PageSize = 20
	view = schema.Apply(fleet(), d)
	assert.Equal(t, 1, view.TotalPages)
	assert.Equal(t, 1, ClampPage(2, view.TotalFiltered, d.PageSize))
}

func TestApplyIsDeterministic(t *testing.T) {
	schema := vehicleSchema()
	records := fleet()
	d := DefaultDirectives()
	d.Search = "59x-00"
	d.SortField = "battery"
	d.SortDir = Desc

	first := schema.Apply(records, d)
	second := schema.Apply(records, d)

	assert.Equal(t, first, second)
}

func TestApplySearchIsPlainSubstring(t *testing.T) {
	schema := vehicleSchema()
	records := []testVehicle{
		{ID: "a", Plate: "51F-001", Model: "VinFast Evo", Status: "available", Kind: "scooter"},
		{ID: "b", Plate: "51F-002", Model: "Klara S", Status: "rented", Kind: "scooter"},
	}

	d := DefaultDirectives()
	d.Search = "evo"
	view := schema.Apply(records, d)
	require.Equal(t, 1, view.TotalFiltered)
	assert.Equal(t, "a", view.Page[0].ID)

	// No diacritic folding: the accented form only matches itself.
	records[0].Model = "Trạm Evo"
	d.Search = "tram"
	view = schema.Apply(records, d)
	assert.Equal(t, 0, view.TotalFiltered)

	d.Search = "trạm"
	view = schema.Apply(records, d)
	assert.Equal(t, 1, view.TotalFiltered)
}

func TestApplyEmptyCollection(t *testing.T) {
	schema := vehicleSchema()
	view := schema.Apply(nil, DefaultDirectives())

	assert.Empty(t, view.Page)
	assert.Zero(t, view.TotalFiltered)
	assert.Zero(t, view.TotalPages)
	assert.Empty(t, view.StatusCounts)
}

func TestApplyUnknownSortFieldKeepsOrder(t *testing.T) {
	schema := vehicleSchema()
	records := fleet()
	d := DefaultDirectives()
	d.SortField = "no-such-field"
	d.PageSize = len(records)

	view := schema.Apply(records, d)
	require.Len(t, view.Page, len(records))
	for i, v := range records {
		assert.Equal(t, v.ID, view.Page[i].ID)
	}
}

func TestApplyDescendingKeepsTieOrder(t *testing.T) {
	schema := vehicleSchema()
	records := []testVehicle{
		{ID: "first", Battery: 50},
		{ID: "second", Battery: 50},
		{ID: "third", Battery: 80},
	}
	d := DefaultDirectives()
	d.SortField = "battery"
	d.SortDir = Desc

	view := schema.Apply(records, d)
	require.Len(t, view.Page, 3)
	assert.Equal(t, "third", view.Page[0].ID)
	// Ties keep input order because descending reverses the comparator,
	// not the sorted slice.
	assert.Equal(t, "first", view.Page[1].ID)
	assert.Equal(t, "second", view.Page[2].ID)
}

func TestApplyClampsPageSize(t *testing.T) {
	schema := vehicleSchema()
	d := DefaultDirectives()
	d.PageSize = 0

	view := schema.Apply(fleet(), d)
	assert.Len(t, view.Page, 1)
	assert.Equal(t, 23, view.TotalPages)
}

func TestApplyStalePageComesBackEmpty(t *testing.T) {
	schema := vehicleSchema()
	d := DefaultDirectives()
	d.PageSize = 5
	d.Page = 3
	d.Status = "maintenance" // 5 records, 1 page

	view := schema.Apply(fleet(), d)
	assert.Empty(t, view.Page)
	assert.Equal(t, 5, view.TotalFiltered)
	assert.Equal(t, 1, ClampPage(d.Page, view.TotalFiltered, d.PageSize))
}

func TestClampPageBounds(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		total    int
		pageSize int
		expected int
	}{
		{"below range", 0, 50, 10, 1},
		{"negative", -3, 50, 10, 1},
		{"in range", 3, 50, 10, 3},
		{"above range", 9, 50, 10, 5},
		{"empty collection", 4, 0, 10, 1},
		{"zero page size", 2, 5, 0, 1},
		{"exact boundary", 5, 50, 10, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, ClampPage(tt.page, tt.total, tt.pageSize))
		})
	}
}

func TestCompareStrings(t *testing.T) {
	assert.Negative(t, CompareStrings("alpha", "Beta"))
	assert.Positive(t, CompareStrings("Gamma", "beta"))
	assert.Zero(t, CompareStrings("same", "same"))
	// Distinct values never compare equal.
	assert.NotZero(t, CompareStrings("Same", "same"))
}

func TestCompareInt64sKeepsFullPrecision(t *testing.T) {
	assert.Zero(t, CompareInt64s(42, 42))
	assert.Negative(t, CompareInt64s(-1, 0))
	// Values past 32 bits must not wrap into a reversed order.
	assert.Positive(t, CompareInt64s(5_000_000_000, 1))
	assert.Negative(t, CompareInt64s(1, 5_000_000_000))
}
