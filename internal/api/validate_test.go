package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStaffInput() StaffInput {
	return StaffInput{
		FullName:  "Trần Thị Bình",
		Email:     "binh.tran@voltride.vn",
		Phone:     "0907654321",
		Role:      RoleManager,
		StationID: "st-7",
	}
}

func TestValidateStaffInput(t *testing.T) {
	require.NoError(t, ValidateInput(validStaffInput()))
}

func TestValidateStaffInputFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*StaffInput)
		field  string
	}{
		{"missing name", func(s *StaffInput) { s.FullName = "" }, "FullName"},
		{"bad email", func(s *StaffInput) { s.Email = "not-an-email" }, "Email"},
		{"short phone", func(s *StaffInput) { s.Phone = "123" }, "Phone"},
		{"unknown role", func(s *StaffInput) { s.Role = "driver" }, "Role"},
		{"missing station", func(s *StaffInput) { s.StationID = "" }, "StationID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validStaffInput()
			tt.mutate(&input)

			err := ValidateInput(input)
			require.Error(t, err)
			require.True(t, IsValidation(err))

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestValidateStationInput(t *testing.T) {
	input := StationInput{
		Name:     "Trạm Quận 1",
		Address:  "12 Nguyễn Huệ",
		District: "Quận 1",
		Status:   StationActive,
		Capacity: 30,
		Latitude: 10.77, Longitude: 106.70,
	}
	require.NoError(t, ValidateInput(input))

	input.Capacity = 0
	err := ValidateInput(input)
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	input.Capacity = 30
	input.Latitude = 120
	err = ValidateInput(input)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Latitude")
}
