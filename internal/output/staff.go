package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/voltride/voltdesk/internal/api"
	"github.com/voltride/voltdesk/internal/collection"
)

// DisplayStaff renders one page of the staff collection.
func DisplayStaff(view collection.View[api.Staff], d collection.Directives, format string) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		return displayJSON(view.Page)
	case FormatText:
		return displayStaffText(view, d)
	default:
		return displayStaffTable(view, d)
	}
}

func displayStaffTable(view collection.View[api.Staff], d collection.Directives) error {
	if view.TotalFiltered == 0 {
		fmt.Println("No staff found")

		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "Name", "Email", "Role", "Status", "Station"})

	for _, member := range view.Page {
		t.AppendRow(table.Row{
			member.ID,
			truncate(member.FullName, 28),
			truncate(member.Email, 32),
			member.Role,
			colorStatus(member.Status),
			member.StationID,
		})
	}

	t.Render()
	pageFooter(d.Page, view.TotalPages, view.TotalFiltered, "staff members")

	return nil
}

func displayStaffText(view collection.View[api.Staff], d collection.Directives) error {
	if view.TotalFiltered == 0 {
		fmt.Println("No staff found")

		return nil
	}

	for _, member := range view.Page {
		fmt.Printf("👤 %s (%s)\n", member.FullName, member.ID)
		fmt.Printf("  Email:    %s\n", member.Email)
		fmt.Printf("  Phone:    %s\n", member.Phone)
		fmt.Printf("  Role:     %s\n", member.Role)
		fmt.Printf("  Status:   %s\n", colorStatus(member.Status))

		if member.StationID != "" {
			fmt.Printf("  Station:  %s\n", member.StationID)
		}

		if !member.CreatedAt.IsZero() {
			fmt.Printf("  Created:  %s\n", member.CreatedAt.Format(time.RFC3339))
		}

		fmt.Println()
	}

	pageFooter(d.Page, view.TotalPages, view.TotalFiltered, "staff members")

	return nil
}

// DisplayStaffMember renders a single staff account.
func DisplayStaffMember(member *api.Staff, format string) error {
	if member == nil {
		fmt.Println("Staff member not found")

		return nil
	}

	if strings.ToLower(format) == FormatJSON {
		return displayJSON(member)
	}

	fmt.Printf("👤 %s (%s)\n", member.FullName, member.ID)
	fmt.Printf("  Email:    %s\n", member.Email)
	fmt.Printf("  Phone:    %s\n", member.Phone)
	fmt.Printf("  Role:     %s\n", member.Role)
	fmt.Printf("  Status:   %s\n", colorStatus(member.Status))

	if member.StationID != "" {
		fmt.Printf("  Station:  %s\n", member.StationID)
	}

	return nil
}
