package collection

import "sync"

// PageItem is one element of a compact page strip: either a page number or an
// ellipsis standing in for a run of hidden pages.
type PageItem struct {
	Page     int
	Ellipsis bool
}

// PageStrip builds the compact list of page buttons for a pager footer.
//
// When totalPages fits within maxVisible every page is listed. Otherwise the
// strip always contains page 1, page totalPages, and a window around current,
// with ellipsis markers wherever pages are skipped. Page numbers are strictly
// increasing and never duplicated, and current is always present.
func PageStrip(current, totalPages, maxVisible int) []PageItem {
	if totalPages <= 0 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}
	if maxVisible < 3 {
		maxVisible = 3
	}

	if totalPages <= maxVisible {
		strip := make([]PageItem, 0, totalPages)
		for p := 1; p <= totalPages; p++ {
			strip = append(strip, PageItem{Page: p})
		}
		return strip
	}

	lo := current - 1
	if lo < 2 {
		lo = 2
	}
	hi := current + 1
	if hi > totalPages-1 {
		hi = totalPages - 1
	}

	strip := []PageItem{{Page: 1}}
	if lo > 2 {
		strip = append(strip, PageItem{Ellipsis: true})
	}
	for p := lo; p <= hi; p++ {
		strip = append(strip, PageItem{Page: p})
	}
	if hi < totalPages-1 {
		strip = append(strip, PageItem{Ellipsis: true})
	}
	strip = append(strip, PageItem{Page: totalPages})

	return strip
}

// Pager tracks the current page over a changing total and fires a callback on
// every accepted page change. It is safe for use from UI callbacks and
// background fetch goroutines.
type Pager struct {
	mu       sync.Mutex
	page     int
	pageSize int
	total    int
	disabled bool
	onChange func(page int)
}

// NewPager creates a pager starting on page 1.
func NewPager(pageSize int, onChange func(page int)) *Pager {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Pager{
		page:     1,
		pageSize: pageSize,
		onChange: onChange,
	}
}

// Page returns the current page.
func (p *Pager) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// PageSize returns the current page size.
func (p *Pager) PageSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pageSize
}

// TotalPages derives the page count from the last known total.
func (p *Pager) TotalPages() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalPagesLocked()
}

func (p *Pager) totalPagesLocked() int {
	return (p.total + p.pageSize - 1) / p.pageSize
}

// SetTotal records the filtered item total and clamps the current page into
// the new valid range without firing the change callback.
func (p *Pager) SetTotal(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if total < 0 {
		total = 0
	}
	p.total = total
	p.page = ClampPage(p.page, p.total, p.pageSize)
}

// SetPageSize changes the page size and re-clamps the current page.
func (p *Pager) SetPageSize(size int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if size < 1 {
		size = 1
	}
	p.pageSize = size
	p.page = ClampPage(p.page, p.total, p.pageSize)
}

// SetDisabled toggles the pager. A disabled pager ignores GoToPage, which
// views use while a fetch is in flight.
func (p *Pager) SetDisabled(disabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disabled = disabled
}

// GoToPage moves to target. Out-of-range targets, the current page, and calls
// on a disabled pager are ignored. An accepted move fires the change callback
// exactly once.
func (p *Pager) GoToPage(target int) {
	p.mu.Lock()
	if p.disabled || target == p.page || target < 1 || target > p.totalPagesLocked() {
		p.mu.Unlock()
		return
	}
	p.page = target
	onChange := p.onChange
	page := p.page
	p.mu.Unlock()

	if onChange != nil {
		onChange(page)
	}
}

// Next advances one page.
func (p *Pager) Next() {
	p.GoToPage(p.Page() + 1)
}

// Prev goes back one page.
func (p *Pager) Prev() {
	p.GoToPage(p.Page() - 1)
}

// Strip returns the compact page strip for the current state.
func (p *Pager) Strip(maxVisible int) []PageItem {
	p.mu.Lock()
	page, total := p.page, p.totalPagesLocked()
	p.mu.Unlock()
	return PageStrip(page, total, maxVisible)
}
