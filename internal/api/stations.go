package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// ListOptions are the query parameters shared by the list endpoints. Zero
// values are omitted from the request.
type ListOptions struct {
	Search   string
	Status   string
	Kind     string
	Page     int
	PageSize int
}

func (o ListOptions) query() map[string]string {
	q := make(map[string]string)
	if o.Search != "" {
		q["search"] = o.Search
	}
	if o.Status != "" && o.Status != "all" {
		q["status"] = o.Status
	}
	if o.Kind != "" && o.Kind != "all" {
		q["kind"] = o.Kind
	}
	if o.Page > 0 {
		q["page"] = strconv.Itoa(o.Page)
	}
	if o.PageSize > 0 {
		q["page_size"] = strconv.Itoa(o.PageSize)
	}
	return q
}

// ListStations fetches one page of stations.
func (c *Client) ListStations(ctx context.Context, opts ListOptions) ([]Station, *PageInfo, error) {
	var out listEnvelope[Station]
	req := c.newRequest(ctx).
		SetQueryParams(opts.query()).
		SetResult(&out)

	if _, err := c.do(req, http.MethodGet, "/stations", "list stations"); err != nil {
		return nil, nil, err
	}
	return out.Data, out.Pagination, nil
}

// ListAllStations drains every page of the station list.
func (c *Client) ListAllStations(ctx context.Context, opts ListOptions) ([]Station, error) {
	return collectPages(func(page int) ([]Station, *PageInfo, error) {
		opts.Page = page
		return c.ListStations(ctx, opts)
	})
}

// GetStation fetches a single station by ID.
func (c *Client) GetStation(ctx context.Context, id string) (*Station, error) {
	var out dataEnvelope[Station]
	req := c.newRequest(ctx).SetResult(&out)

	if _, err := c.do(req, http.MethodGet, "/stations/"+id, "get station"); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// CreateStation registers a new station.
func (c *Client) CreateStation(ctx context.Context, input StationInput) (*Station, error) {
	if err := ValidateInput(input); err != nil {
		return nil, err
	}

	var out dataEnvelope[Station]
	req := c.newRequest(ctx).
		SetBody(input).
		SetResult(&out)

	if _, err := c.do(req, http.MethodPost, "/stations", "create station"); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UpdateStation patches an existing station.
func (c *Client) UpdateStation(ctx context.Context, id string, input StationInput) (*Station, error) {
	if err := ValidateInput(input); err != nil {
		return nil, err
	}

	var out dataEnvelope[Station]
	req := c.newRequest(ctx).
		SetBody(input).
		SetResult(&out)

	if _, err := c.do(req, http.MethodPut, "/stations/"+id, "update station"); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// DeleteStation removes a station. Deleting a station with assigned vehicles
// yields a 409, surfaced via IsConflict.
func (c *Client) DeleteStation(ctx context.Context, id string) error {
	req := c.newRequest(ctx)
	_, err := c.do(req, http.MethodDelete, "/stations/"+id, "delete station")
	return err
}

// SyncStation reconciles the station's fleet with the backend's source of
// truth. A concurrent modification yields a 409 conflict; the caller should
// re-fetch and retry from fresh state.
func (c *Client) SyncStation(ctx context.Context, id string) (*SyncResult, error) {
	var out dataEnvelope[SyncResult]
	req := c.newRequest(ctx).SetResult(&out)

	if _, err := c.do(req, http.MethodPost, fmt.Sprintf("/stations/%s/sync", id), "sync station"); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
