package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ddtrack/internal/domain"
)

func FormatPropertyList(props []*domain.Property) string {
	rows := make([][]string, 0, len(props))
	for _, p := range props {
		rows = append(rows, []string{
			Dim(fmt.Sprint(p.ID)),
			Bold(p.Name),
			StylePurple.Render(string(p.AssetType)),
			PropertyStatusPill(p.Status),
			orDash(p.Address),
		})
	}
	return Table{
		Headers:    []string{"ID", "NAME", "TYPE", "STATUS", "ADDRESS"},
		Rows:       rows,
		RightAlign: map[int]bool{0: true},
	}.Render()
}

func FormatPropertyDetail(p *domain.Property, stats domain.OverallStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(p.Name), Dim(fmt.Sprintf("#%d", p.ID)))
	fmt.Fprintf(&b, "%-10s %s\n", Dim("Address"), orDash(p.Address))
	fmt.Fprintf(&b, "%-10s %s\n", Dim("Type"), StylePurple.Render(string(p.AssetType)))
	fmt.Fprintf(&b, "%-10s %s\n", Dim("Status"), PropertyStatusPill(p.Status))
	fmt.Fprintf(&b, "%-10s %s\n", Dim("Created"), p.CreatedAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "%-10s %d items, %d complete, %d flagged\n", Dim("Checklist"), stats.Total, stats.Complete, stats.Flagged)
	fmt.Fprintf(&b, "%-10s %s", Dim("Progress"), RenderProgress(stats.CompletionPct(), 24))
	return RenderBox("Property", b.String())
}
