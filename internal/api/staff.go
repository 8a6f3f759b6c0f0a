package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// ListStaff fetches one page of staff accounts.
func (c *Client) ListStaff(ctx context.Context, opts ListOptions) ([]Staff, *PageInfo, error) {
	var out listEnvelope[Staff]
	req := c.newRequest(ctx).
		SetQueryParams(opts.query()).
		SetResult(&out)

	if _, err := c.do(req, http.MethodGet, "/staff", "list staff"); err != nil {
		return nil, nil, err
	}
	return out.Data, out.Pagination, nil
}

// ListAllStaff drains every page of the staff list.
func (c *Client) ListAllStaff(ctx context.Context, opts ListOptions) ([]Staff, error) {
	return collectPages(func(page int) ([]Staff, *PageInfo, error) {
		opts.Page = page
		return c.ListStaff(ctx, opts)
	})
}

// NewIdempotencyKey returns the key for one logical staff creation. Callers
// generate it once and pass the same key to every attempt, retries included.
func NewIdempotencyKey() string {
	return uuid.NewString()
}

// CreateStaff provisions a staff account. Account provisioning is the slowest
// mutation in the backend and the one most likely to time out; the caller
// supplies the idempotency key so a verify-then-retry resubmits the original
// request instead of creating a duplicate account.
func (c *Client) CreateStaff(ctx context.Context, input StaffInput, idempotencyKey string) (*Staff, error) {
	if err := ValidateInput(input); err != nil {
		return nil, err
	}

	var out dataEnvelope[Staff]
	req := c.newRequest(ctx).
		SetHeader("Idempotency-Key", idempotencyKey).
		SetBody(input).
		SetResult(&out)

	if _, err := c.do(req, http.MethodPost, "/staff", "create staff"); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UpdateStaff patches an existing staff account.
func (c *Client) UpdateStaff(ctx context.Context, id string, input StaffInput) (*Staff, error) {
	if err := ValidateInput(input); err != nil {
		return nil, err
	}

	var out dataEnvelope[Staff]
	req := c.newRequest(ctx).
		SetBody(input).
		SetResult(&out)

	if _, err := c.do(req, http.MethodPut, "/staff/"+id, "update staff"); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// DeleteStaff removes a staff account.
func (c *Client) DeleteStaff(ctx context.Context, id string) error {
	req := c.newRequest(ctx)
	_, err := c.do(req, http.MethodDelete, "/staff/"+id, "delete staff")
	return err
}
