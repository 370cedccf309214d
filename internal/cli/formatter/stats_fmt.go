package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ddtrack/internal/domain"
)

// DashboardView is the single-property dashboard.
type DashboardView struct {
	Property    *domain.Property
	Stats       domain.OverallStats
	Categories  []domain.CategorySummary
	Flagged     []*domain.ChecklistItem
	DueSoon     []*domain.ChecklistItem
	DueSoonDays int
	Now         time.Time
}

func FormatDashboard(v DashboardView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s  %s\n\n", Bold(v.Property.Name), StylePurple.Render(string(v.Property.AssetType)), PropertyStatusPill(v.Property.Status))

	metrics := fmt.Sprintf("%s %d   %s %d   %s %d   %s %s",
		Dim("Total"), v.Stats.Total,
		Dim("Complete"), v.Stats.Complete,
		Dim("Flagged"), v.Stats.Flagged,
		Dim("Done"), PctStyle(v.Stats.CompletionPct()).Render(fmt.Sprintf("%.1f%%", v.Stats.CompletionPct())))
	b.WriteString(RenderBox("Overview", metrics+"\n\n"+RenderProgress(v.Stats.CompletionPct(), 40)))
	b.WriteString("\n\n")

	b.WriteString(Header("Progress by category") + "\n")
	if len(v.Categories) == 0 {
		b.WriteString(Dim("No checklist items.") + "\n")
	} else {
		rows := make([][]string, 0, len(v.Categories))
		for _, c := range v.Categories {
			rows = append(rows, []string{
				c.Category,
				fmt.Sprintf("%d/%d", c.Complete, c.Total),
				RenderProgress(c.CompletionPct(), 20),
				flaggedCount(c.Flagged),
			})
		}
		b.WriteString(Table{
			Headers:    []string{"CATEGORY", "DONE", "PROGRESS", "FLAGGED"},
			Rows:       rows,
			RightAlign: map[int]bool{1: true, 3: true},
		}.Render())
	}

	b.WriteString("\n" + Header("Flagged issues") + "\n")
	if len(v.Flagged) == 0 {
		b.WriteString(StyleGreen.Render("No issues flagged.") + "\n")
	}
	for _, it := range v.Flagged {
		fmt.Fprintf(&b, "%s %s: %s %s\n", StyleRed.Render("⚑"), Dim(it.Category), it.ItemName, Dim("("+orDash(it.ResponsibleParty)+")"))
		if it.Notes != "" {
			fmt.Fprintf(&b, "    %s\n", Dim(it.Notes))
		}
	}

	b.WriteString("\n" + Header(fmt.Sprintf("Due in the next %d days", v.DueSoonDays)) + "\n")
	if len(v.DueSoon) == 0 {
		b.WriteString(StyleGreen.Render("Nothing due.") + "\n")
	}
	for _, it := range v.DueSoon {
		fmt.Fprintf(&b, "%s  %s: %s  %s\n", DueLabel(it, v.Now), Dim(it.Category), it.ItemName, ItemStatusPill(it.Status))
	}
	return b.String()
}

func flaggedCount(n int) string {
	if n == 0 {
		return Dim("0")
	}
	return StyleRed.Render(fmt.Sprint(n))
}
