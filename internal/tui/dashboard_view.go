package tui

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"golang.org/x/sync/errgroup"

	"github.com/voltride/voltdesk/internal/api"
)

// DashboardView renders the fleet-wide aggregates and flags active stations
// running low on available vehicles.
type DashboardView struct {
	*BaseComponent
	app     *App
	content *tview.TextView

	mu       sync.Mutex
	summary  *api.Summary
	lowAvail []api.Station
	fetchGen int
	stopped  bool
}

func NewDashboardView(app *App) *DashboardView {
	v := &DashboardView{
		BaseComponent: NewBaseComponent("Dashboard"),
		app:           app,
	}

	v.content = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	v.content.SetBorder(true).SetTitle(" Dashboard ")
	v.content.SetBackgroundColor(app.styles.BgColor)

	v.actions.Add(tcell.KeyCtrlR, KeyAction{
		Description: "Refresh",
		Action: func(evt *tcell.EventKey) *tcell.EventKey {
			go v.fetch()
			return nil
		},
		Visible: true,
	})

	return v
}

func (v *DashboardView) Primitive() tview.Primitive {
	return v.content
}

func (v *DashboardView) Start(ctx context.Context) {
	v.BaseComponent.Start(ctx)

	v.mu.Lock()
	v.stopped = false
	v.mu.Unlock()

	v.content.SetText("\n  Loading…")
	go v.fetch()
}

func (v *DashboardView) Stop() {
	v.BaseComponent.Stop()

	v.mu.Lock()
	v.stopped = true
	v.fetchGen++
	v.mu.Unlock()
}

func (v *DashboardView) fetch() {
	v.mu.Lock()
	v.fetchGen++
	gen := v.fetchGen
	v.mu.Unlock()

	var (
		summary  *api.Summary
		stations []api.Station
	)

	g, ctx := errgroup.WithContext(v.app.GetContext())
	g.Go(func() error {
		var err error
		summary, err = v.app.Client().GetSummary(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stations, err = v.app.Client().ListAllStations(ctx, api.ListOptions{Status: api.StationActive})
		return err
	})
	if err := g.Wait(); err != nil {
		v.app.Flash(fmt.Sprintf("Failed to fetch dashboard: %v", err), true)
		return
	}

	low := lowAvailability(stations)

	v.app.QueueUpdateDraw(func() {
		v.mu.Lock()
		if gen != v.fetchGen || v.stopped {
			v.mu.Unlock()
			return
		}
		v.summary = summary
		v.lowAvail = low
		v.mu.Unlock()

		v.render()
	})
}

// lowAvailability returns active stations with less than 20% of capacity
// available, sorted by available count ascending.
func lowAvailability(stations []api.Station) []api.Station {
	var low []api.Station
	for _, st := range stations {
		if st.Capacity > 0 && st.AvailableCount*5 < st.Capacity {
			low = append(low, st)
		}
	}
	sort.Slice(low, func(i, j int) bool {
		return low[i].AvailableCount < low[j].AvailableCount
	})
	return low
}

func (v *DashboardView) render() {
	v.mu.Lock()
	summary := v.summary
	low := v.lowAvail
	v.mu.Unlock()

	if summary == nil {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  [aqua::b]VoltRide Operations[-::-]\n\n")
	fmt.Fprintf(&b, "  Stations         %d\n", summary.Stations)
	fmt.Fprintf(&b, "  Vehicles         %d\n", summary.Vehicles)
	fmt.Fprintf(&b, "  Staff            %d\n", summary.Staff)
	fmt.Fprintf(&b, "  Active rentals   %d\n", summary.ActiveRentals)
	fmt.Fprintf(&b, "  Revenue MTD      %s\n", formatDong(summary.RevenueMTDVND))

	if len(summary.VehicleStatus) > 0 {
		fmt.Fprintf(&b, "\n  [::b]Fleet status[-:-:-]\n")
		for _, k := range sortedCountKeys(summary.VehicleStatus) {
			fmt.Fprintf(&b, "  %-16s %d\n", v.app.styles.FormatStatus(k), summary.VehicleStatus[k])
		}
	}

	if len(summary.VehiclesByKind) > 0 {
		fmt.Fprintf(&b, "\n  [::b]Fleet by kind[-:-:-]\n")
		for _, k := range sortedCountKeys(summary.VehiclesByKind) {
			fmt.Fprintf(&b, "  %-16s %d\n", k, summary.VehiclesByKind[k])
		}
	}

	if len(low) > 0 {
		fmt.Fprintf(&b, "\n  [red::b]Low availability[-::-]\n")
		for _, st := range low {
			fmt.Fprintf(&b, "  %-28s %d/%d available\n", st.Name, st.AvailableCount, st.Capacity)
		}
	}

	v.content.SetText(b.String())
}

func sortedCountKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatDong renders an amount in Vietnamese đồng with dot grouping.
func formatDong(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ".")
	if neg {
		out = "-" + out
	}
	return out + " ₫"
}
