package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ddtrack/internal/domain"
	"github.com/alexanderramin/ddtrack/internal/report"
)

func FormatPortfolioSummary(s domain.PortfolioSummary, props []domain.PropertyStats) string {
	var b strings.Builder
	metrics := fmt.Sprintf("%s %d   %s %d   %s %d   %s %d   %s %d",
		Dim("Active"), s.ActiveProperties,
		Dim("Inactive"), s.InactiveProperties,
		Dim("Items"), s.TotalItems,
		Dim("Complete"), s.CompleteItems,
		Dim("Flagged"), s.FlaggedItems)
	b.WriteString(RenderBox("Portfolio", metrics+"\n\n"+RenderProgress(s.CompletionPct(), 40)))
	b.WriteString("\n\n")
	b.WriteString(FormatPropertyStats(props))
	return b.String()
}

// FormatPropertyStats renders the per-property table of the portfolio view.
func FormatPropertyStats(rows []domain.PropertyStats) string {
	if len(rows) == 0 {
		return Dim("No active properties.") + "\n"
	}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			Dim(fmt.Sprint(r.Property.ID)),
			Bold(r.Property.Name),
			StylePurple.Render(string(r.Property.AssetType)),
			fmt.Sprint(r.TotalItems),
			RenderProgress(r.CompletionPct(), 16),
			flaggedCount(r.FlaggedItems),
			dueSoonCount(r.DueSoonItems),
		})
	}
	return Table{
		Headers:    []string{"ID", "PROPERTY", "TYPE", "ITEMS", "PROGRESS", "FLAGGED", "DUE SOON"},
		Rows:       out,
		RightAlign: map[int]bool{0: true, 3: true, 5: true, 6: true},
	}.Render()
}

func FormatRisk(rows []domain.PropertyRisk, days, threshold int) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Properties at risk (%d+ open items due within %d days)", threshold, days)) + "\n")
	if len(rows) == 0 {
		b.WriteString(StyleGreen.Render("No properties at risk.") + "\n")
		return b.String()
	}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			Dim(fmt.Sprint(r.PropertyID)),
			Bold(r.PropertyName),
			StylePurple.Render(string(r.AssetType)),
			StyleRed.Render(fmt.Sprint(r.ItemsDueSoon)),
		})
	}
	b.WriteString(Table{
		Headers:    []string{"ID", "PROPERTY", "TYPE", "DUE"},
		Rows:       out,
		RightAlign: map[int]bool{0: true, 3: true},
	}.Render())
	return b.String()
}

// FormatFlaggedByProperty groups flagged items under their property.
func FormatFlaggedByProperty(items []domain.PropertyItem) string {
	if len(items) == 0 {
		return StyleGreen.Render("No issues flagged across the portfolio.") + "\n"
	}
	var b strings.Builder
	current := ""
	for _, it := range items {
		if it.PropertyName != current {
			if current != "" {
				b.WriteString("\n")
			}
			current = it.PropertyName
			b.WriteString(Header(current) + "\n")
		}
		fmt.Fprintf(&b, "%s %s %s: %s %s\n", StyleRed.Render("⚑"), Dim(fmt.Sprintf("#%d", it.ID)), Dim(it.Category), it.ItemName, Dim("("+orDash(it.ResponsibleParty)+")"))
	}
	return b.String()
}

// FormatHeatmap renders the property x category completion matrix. Cells
// without items show a dash.
func FormatHeatmap(m domain.CompletionMatrix) string {
	if len(m.Properties) == 0 {
		return Dim("No active properties with checklist items.") + "\n"
	}
	headers := append([]string{"PROPERTY"}, abbreviate(m.Categories)...)
	align := make(map[int]bool, len(m.Categories))
	rows := make([][]string, 0, len(m.Properties))
	for i, name := range m.Properties {
		row := []string{Bold(Truncate(name, 24))}
		for j := range m.Categories {
			align[j+1] = true
			cell := m.Cells[i][j]
			if cell == nil {
				row = append(row, Dim("--"))
				continue
			}
			row = append(row, PctStyle(cell.CompletionPct).Render(fmt.Sprintf("%.0f%%", cell.CompletionPct)))
		}
		rows = append(rows, row)
	}

	var b strings.Builder
	b.WriteString(Table{Headers: headers, Rows: rows, RightAlign: align}.Render())
	b.WriteString("\n" + Dim("Categories: "+strings.Join(m.Categories, ", ")) + "\n")
	return b.String()
}

// abbreviate shortens long category names to fit a column header.
func abbreviate(cats []string) []string {
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = strings.ToUpper(Truncate(c, 12))
	}
	return out
}

// FormatDeadlines renders deadlines grouped by urgency bucket.
func FormatDeadlines(ds []domain.Deadline, days int) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Deadlines in the next %d days", days)) + "\n")
	if len(ds) == 0 {
		b.WriteString(StyleGreen.Render("No upcoming deadlines.") + "\n")
		return b.String()
	}
	for _, u := range []domain.Urgency{domain.UrgencyOverdue, domain.UrgencyUrgent, domain.UrgencySoon, domain.UrgencyNormal} {
		var rows [][]string
		for _, d := range ds {
			if d.Urgency != u {
				continue
			}
			rows = append(rows, []string{
				domain.FormatDate(d.DueDate),
				UrgencyStyle(u).Render(RelativeDays(d.DaysUntil)),
				Bold(d.PropertyName),
				Dim(d.Category),
				d.ItemName,
				ItemStatusPill(d.Status),
			})
		}
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s\n", UrgencyStyle(u).Bold(true).Render(fmt.Sprintf("%s (%d)", report.UrgencyLabel(u), len(rows))))
		b.WriteString(RenderTable([]string{"DUE", "WHEN", "PROPERTY", "CATEGORY", "ITEM", "STATUS"}, rows))
	}
	return b.String()
}

func dueSoonCount(n int) string {
	if n == 0 {
		return Dim("0")
	}
	return StyleYellow.Render(fmt.Sprint(n))
}
