package api

import (
	"context"
	"net/http"
	"strconv"
)

// ReportOptions narrows the report list by period and station.
type ReportOptions struct {
	Period    string // YYYY-MM, empty for all periods
	StationID string
	Page      int
	PageSize  int
}

func (o ReportOptions) query() map[string]string {
	q := make(map[string]string)
	if o.Period != "" {
		q["period"] = o.Period
	}
	if o.StationID != "" {
		q["station_id"] = o.StationID
	}
	if o.Page > 0 {
		q["page"] = strconv.Itoa(o.Page)
	}
	if o.PageSize > 0 {
		q["page_size"] = strconv.Itoa(o.PageSize)
	}
	return q
}

// ListReports fetches one page of operations reports.
func (c *Client) ListReports(ctx context.Context, opts ReportOptions) ([]Report, *PageInfo, error) {
	var out listEnvelope[Report]
	req := c.newRequest(ctx).
		SetQueryParams(opts.query()).
		SetResult(&out)

	if _, err := c.do(req, http.MethodGet, "/reports", "list reports"); err != nil {
		return nil, nil, err
	}
	return out.Data, out.Pagination, nil
}

// ListAllReports drains every page of the report list.
func (c *Client) ListAllReports(ctx context.Context, opts ReportOptions) ([]Report, error) {
	return collectPages(func(page int) ([]Report, *PageInfo, error) {
		opts.Page = page
		return c.ListReports(ctx, opts)
	})
}

// GetSummary fetches the dashboard aggregates.
func (c *Client) GetSummary(ctx context.Context) (*Summary, error) {
	var out dataEnvelope[Summary]
	req := c.newRequest(ctx).SetResult(&out)

	if _, err := c.do(req, http.MethodGet, "/summary", "get summary"); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
