package api

import "github.com/voltride/voltdesk/internal/collection"

// The schemas below are the explicit projections from API records into the
// collection pipeline: which fields are searched, which classify, and how
// each sortable column orders.

// StationSchema projects stations into the collection engine.
func StationSchema() collection.Schema[Station] {
	return collection.Schema[Station]{
		SearchFields: func(s Station) []string {
			return []string{s.Name, s.Address, s.District}
		},
		Status: func(s Station) string { return s.Status },
		Compare: map[string]func(a, b Station) int{
			"name":      func(a, b Station) int { return collection.CompareStrings(a.Name, b.Name) },
			"district":  func(a, b Station) int { return collection.CompareStrings(a.District, b.District) },
			"capacity":  func(a, b Station) int { return collection.CompareInts(a.Capacity, b.Capacity) },
			"available": func(a, b Station) int { return collection.CompareInts(a.AvailableCount, b.AvailableCount) },
		},
	}
}

// VehicleSchema projects vehicles into the collection engine.
func VehicleSchema() collection.Schema[Vehicle] {
	return collection.Schema[Vehicle]{
		SearchFields: func(v Vehicle) []string {
			return []string{v.Plate, v.Model, v.StationName}
		},
		Status: func(v Vehicle) string { return v.Status },
		Kind:   func(v Vehicle) string { return v.Kind },
		Compare: map[string]func(a, b Vehicle) int{
			"plate":    func(a, b Vehicle) int { return collection.CompareStrings(a.Plate, b.Plate) },
			"model":    func(a, b Vehicle) int { return collection.CompareStrings(a.Model, b.Model) },
			"battery":  func(a, b Vehicle) int { return collection.CompareInts(a.BatteryLevel, b.BatteryLevel) },
			"odometer": func(a, b Vehicle) int { return collection.CompareFloats(a.OdometerKm, b.OdometerKm) },
			"station":  func(a, b Vehicle) int { return collection.CompareStrings(a.StationName, b.StationName) },
		},
	}
}

// StaffSchema projects staff accounts into the collection engine. Role acts
// as the kind filter.
func StaffSchema() collection.Schema[Staff] {
	return collection.Schema[Staff]{
		SearchFields: func(s Staff) []string {
			return []string{s.FullName, s.Email, s.Phone}
		},
		Status: func(s Staff) string { return s.Status },
		Kind:   func(s Staff) string { return s.Role },
		Compare: map[string]func(a, b Staff) int{
			"name":  func(a, b Staff) int { return collection.CompareStrings(a.FullName, b.FullName) },
			"email": func(a, b Staff) int { return collection.CompareStrings(a.Email, b.Email) },
			"role":  func(a, b Staff) int { return collection.CompareStrings(a.Role, b.Role) },
		},
	}
}

// ReportSchema projects reports into the collection engine.
func ReportSchema() collection.Schema[Report] {
	return collection.Schema[Report]{
		SearchFields: func(r Report) []string {
			return []string{r.Period, r.StationName}
		},
		Compare: map[string]func(a, b Report) int{
			"period":      func(a, b Report) int { return collection.CompareStrings(a.Period, b.Period) },
			"station":     func(a, b Report) int { return collection.CompareStrings(a.StationName, b.StationName) },
			"rentals":     func(a, b Report) int { return collection.CompareInts(a.Rentals, b.Rentals) },
			"revenue":     func(a, b Report) int { return collection.CompareInt64s(a.RevenueVND, b.RevenueVND) },
			"utilization": func(a, b Report) int { return collection.CompareFloats(a.UtilizationPct, b.UtilizationPct) },
		},
	}
}
