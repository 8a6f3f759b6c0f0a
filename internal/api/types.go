// Package api is the typed client for the rental operation's REST backend.
// It exposes list and mutation calls for stations, vehicles, staff, and
// reports, and classifies every failure as definite or ambiguous.
package api

import "time"

// Station statuses.
const (
	StationActive      = "active"
	StationInactive    = "inactive"
	StationMaintenance = "maintenance"
)

// Vehicle statuses.
const (
	VehicleAvailable   = "available"
	VehicleRented      = "rented"
	VehicleMaintenance = "maintenance"
	VehicleCharging    = "charging"
)

// Vehicle kinds.
const (
	KindScooter = "scooter"
	KindEBike   = "ebike"
	KindCar     = "car"
)

// Staff roles.
const (
	RoleManager    = "manager"
	RoleTechnician = "technician"
	RoleSupport    = "support"
)

// Staff statuses.
const (
	StaffActive    = "active"
	StaffSuspended = "suspended"
)

// Station is a rental station with its current fleet occupancy.
type Station struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	District       string    `json:"district"`
	Status         string    `json:"status"`
	Capacity       int       `json:"capacity"`
	AvailableCount int       `json:"available_count"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Vehicle is one vehicle of the rental fleet.
type Vehicle struct {
	ID           string    `json:"id"`
	Plate        string    `json:"plate"`
	Model        string    `json:"model"`
	Kind         string    `json:"kind"`
	Status       string    `json:"status"`
	BatteryLevel int       `json:"battery_level"`
	OdometerKm   float64   `json:"odometer_km"`
	StationID    string    `json:"station_id"`
	StationName  string    `json:"station_name"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Staff is a staff account assigned to a station.
type Staff struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	StationID string    `json:"station_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Report is a monthly per-station operations report.
type Report struct {
	ID             string    `json:"id"`
	Period         string    `json:"period"` // YYYY-MM
	StationID      string    `json:"station_id"`
	StationName    string    `json:"station_name"`
	Rentals        int       `json:"rentals"`
	RevenueVND     int64     `json:"revenue_vnd"`
	UtilizationPct float64   `json:"utilization_pct"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// PageInfo is the backend's pagination envelope for list endpoints.
type PageInfo struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// SyncResult summarizes a station fleet reconciliation.
type SyncResult struct {
	StationID string    `json:"station_id"`
	Added     int       `json:"added"`
	Removed   int       `json:"removed"`
	Updated   int       `json:"updated"`
	SyncedAt  time.Time `json:"synced_at"`
}

// Summary holds the aggregates rendered on the dashboard.
type Summary struct {
	Stations       int            `json:"stations"`
	Vehicles       int            `json:"vehicles"`
	Staff          int            `json:"staff"`
	VehiclesByKind map[string]int `json:"vehicles_by_kind"`
	VehicleStatus  map[string]int `json:"vehicle_status"`
	RevenueMTDVND  int64          `json:"revenue_mtd_vnd"`
	ActiveRentals  int            `json:"active_rentals"`
}
