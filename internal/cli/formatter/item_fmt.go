package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ddtrack/internal/domain"
)

// FormatItemList renders items grouped under category headings.
func FormatItemList(items []*domain.ChecklistItem, now time.Time) string {
	var b strings.Builder
	current := ""
	var rows [][]string
	flush := func() {
		if len(rows) == 0 {
			return
		}
		b.WriteString(Table{
			Headers:    []string{"ID", "ITEM", "STATUS", "RESPONSIBLE", "DUE"},
			Rows:       rows,
			RightAlign: map[int]bool{0: true},
		}.Render())
		rows = nil
	}
	for _, it := range items {
		if it.Category != current {
			flush()
			if current != "" {
				b.WriteString("\n")
			}
			current = it.Category
			b.WriteString(Header(current) + "\n")
		}
		rows = append(rows, []string{
			Dim(fmt.Sprint(it.ID)),
			Truncate(it.ItemName, 40),
			ItemStatusPill(it.Status),
			orDash(it.ResponsibleParty),
			DueLabel(it, now),
		})
	}
	flush()
	return b.String()
}

func FormatItemDetail(it *domain.ChecklistItem, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(it.ItemName), Dim(fmt.Sprintf("#%d", it.ID)))
	fmt.Fprintf(&b, "%-12s %s\n", Dim("Category"), it.Category)
	fmt.Fprintf(&b, "%-12s %s\n", Dim("Status"), ItemStatusPill(it.Status))
	fmt.Fprintf(&b, "%-12s %s\n", Dim("Responsible"), orDash(it.ResponsibleParty))
	fmt.Fprintf(&b, "%-12s %s\n", Dim("Due"), DueLabel(it, now))
	fmt.Fprintf(&b, "%-12s %s\n", Dim("Notes"), orDash(it.Notes))
	fmt.Fprintf(&b, "%-12s %s", Dim("Updated"), it.UpdatedAt.Format(time.RFC3339))
	return RenderBox("Checklist Item", b.String())
}
