package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voltride/voltdesk/internal/collection"
	"github.com/voltride/voltdesk/internal/output"
)

// listFlags is the shared flag set of every list command. It maps one-to-one
// onto collection.Directives so the CLI and the TUI drive the same pipeline.
type listFlags struct {
	search    string
	status    string
	kind      string
	sortField string
	sortOrder string
	page      int
	pageSize  int
	format    string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "Substring filter over searchable fields (diacritics must match exactly)")
	cmd.Flags().StringVar(&f.status, "status", collection.FilterAll, "Filter by status, or 'all'")
	cmd.Flags().StringVar(&f.kind, "kind", collection.FilterAll, "Filter by kind, or 'all'")
	cmd.Flags().StringVar(&f.sortField, "sort", "", "Sort field (empty keeps backend order)")
	cmd.Flags().StringVar(&f.sortOrder, "order", string(collection.Asc), "Sort order: asc, desc")
	cmd.Flags().IntVar(&f.page, "page", 1, "Page to display")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 10, "Records per page")
	cmd.Flags().StringVarP(&f.format, "output", "o",
		output.DefaultFormat(output.FormatTable, []string{output.FormatTable, output.FormatText, output.FormatJSON}),
		"Output format: table, text, json")
}

// directives validates the flags and converts them into pipeline directives.
// The requested page is kept as-is here; list commands clamp it against the
// filtered total once the collection is in hand.
func (f *listFlags) directives() (collection.Directives, error) {
	d := collection.DefaultDirectives()
	d.Search = f.search
	d.Status = f.status
	d.Kind = f.kind
	d.SortField = f.sortField

	switch strings.ToLower(f.sortOrder) {
	case string(collection.Asc), "":
		d.SortDir = collection.Asc
	case string(collection.Desc):
		d.SortDir = collection.Desc
	default:
		return d, fmt.Errorf("invalid sort order %q: use asc or desc", f.sortOrder)
	}

	if f.page < 1 {
		return d, fmt.Errorf("page must be at least 1, got %d", f.page)
	}
	d.Page = f.page

	if f.pageSize < 1 || f.pageSize > 100 {
		return d, fmt.Errorf("page size must be between 1 and 100, got %d", f.pageSize)
	}
	d.PageSize = f.pageSize

	return d, nil
}

// applyClamped runs the pipeline and re-applies with a clamped page when the
// requested page falls past the filtered set.
func applyClamped[T any](schema collection.Schema[T], records []T, d collection.Directives) (collection.View[T], collection.Directives) {
	view := schema.Apply(records, d)

	clamped := collection.ClampPage(d.Page, view.TotalFiltered, d.PageSize)
	if clamped != d.Page {
		d.Page = clamped
		view = schema.Apply(records, d)
	}

	return view, d
}
