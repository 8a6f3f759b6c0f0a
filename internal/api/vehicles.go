package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListVehicles fetches one page of vehicles.
func (c *Client) ListVehicles(ctx context.Context, opts ListOptions) ([]Vehicle, *PageInfo, error) {
	var out listEnvelope[Vehicle]
	req := c.newRequest(ctx).
		SetQueryParams(opts.query()).
		SetResult(&out)

	if _, err := c.do(req, http.MethodGet, "/vehicles", "list vehicles"); err != nil {
		return nil, nil, err
	}
	return out.Data, out.Pagination, nil
}

// ListAllVehicles drains every page of the vehicle list.
func (c *Client) ListAllVehicles(ctx context.Context, opts ListOptions) ([]Vehicle, error) {
	return collectPages(func(page int) ([]Vehicle, *PageInfo, error) {
		opts.Page = page
		return c.ListVehicles(ctx, opts)
	})
}

// GetVehicle fetches a single vehicle by ID.
func (c *Client) GetVehicle(ctx context.Context, id string) (*Vehicle, error) {
	var out dataEnvelope[Vehicle]
	req := c.newRequest(ctx).SetResult(&out)

	if _, err := c.do(req, http.MethodGet, "/vehicles/"+id, "get vehicle"); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// AssignVehicle moves a vehicle to a station. Assigning to a full station
// yields a 409 conflict.
func (c *Client) AssignVehicle(ctx context.Context, vehicleID, stationID string) (*Vehicle, error) {
	var out dataEnvelope[Vehicle]
	req := c.newRequest(ctx).
		SetBody(map[string]string{"station_id": stationID}).
		SetResult(&out)

	path := fmt.Sprintf("/vehicles/%s/assign", vehicleID)
	if _, err := c.do(req, http.MethodPost, path, "assign vehicle"); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UpdateVehicleStatus changes a vehicle's operational status, e.g. marking it
// for maintenance. Status must be one of the Vehicle* constants.
func (c *Client) UpdateVehicleStatus(ctx context.Context, id, status string) (*Vehicle, error) {
	var out dataEnvelope[Vehicle]
	req := c.newRequest(ctx).
		SetBody(map[string]string{"status": status}).
		SetResult(&out)

	path := fmt.Sprintf("/vehicles/%s/status", id)
	if _, err := c.do(req, http.MethodPut, path, "update vehicle status"); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
