// Package report renders due diligence status reports as markdown.
//
// Renderers are pure: callers gather the aggregation results and pass them
// in, so the same report can be written to a file, served over HTTP or
// rendered in the terminal.
package report

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/alexanderramin/ddtrack/internal/domain"
)

const (
	unassigned = "Unassigned"
	notSet     = "Not set"
	noNotes    = "No notes"
	timeLayout = "2006-01-02 15:04:05"
)

// PropertyData is everything a single-property report shows.
type PropertyData struct {
	Property    *domain.Property
	Stats       domain.OverallStats
	Categories  []domain.CategorySummary
	Flagged     []*domain.ChecklistItem
	DueSoon     []*domain.ChecklistItem
	DueSoonDays int
	GeneratedAt time.Time
}

// PortfolioData is everything the portfolio report shows.
type PortfolioData struct {
	Summary      domain.PortfolioSummary
	Properties   []domain.PropertyStats
	AtRisk       []domain.PropertyRisk
	RiskDays     int
	Flagged      []domain.PropertyItem
	Deadlines    []domain.Deadline
	DeadlineDays int
	GeneratedAt  time.Time
}

// Property renders the status report for one property.
func Property(d PropertyData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Due Diligence Status Report\n## %s\n", d.Property.Name)
	if d.Property.Address != "" {
		fmt.Fprintf(&b, "%s\n", d.Property.Address)
	}
	fmt.Fprintf(&b, "**Asset Type:** %s | **Status:** %s\n", d.Property.AssetType, d.Property.Status)
	fmt.Fprintf(&b, "**Generated:** %s\n\n---\n\n", d.GeneratedAt.Format(timeLayout))

	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&b, "- **Total Items:** %d\n", d.Stats.Total)
	fmt.Fprintf(&b, "- **Completed:** %d (%.1f%%)\n", d.Stats.Complete, d.Stats.CompletionPct())
	fmt.Fprintf(&b, "- **Open:** %d\n", d.Stats.Open())
	fmt.Fprintf(&b, "- **Issues Flagged:** %d\n\n---\n\n", d.Stats.Flagged)

	b.WriteString("## Status by Category\n\n")
	if len(d.Categories) == 0 {
		b.WriteString("No checklist items.\n")
	}
	for _, c := range d.Categories {
		fmt.Fprintf(&b, "### %s\n", c.Category)
		fmt.Fprintf(&b, "- Progress: %d/%d (%.0f%%)\n", c.Complete, c.Total, c.CompletionPct())
		fmt.Fprintf(&b, "- Not Started: %d\n", c.NotStarted)
		fmt.Fprintf(&b, "- In Progress: %d\n", c.InProgress)
		fmt.Fprintf(&b, "- Under Review: %d\n", c.UnderReview)
		fmt.Fprintf(&b, "- Complete: %d\n", c.Complete)
		fmt.Fprintf(&b, "- Flagged: %d\n\n", c.Flagged)
	}

	b.WriteString("\n---\n\n## Flagged Issues\n\n")
	if len(d.Flagged) == 0 {
		b.WriteString("No issues flagged.\n")
	}
	for _, it := range d.Flagged {
		fmt.Fprintf(&b, "### %s: %s\n", it.Category, it.ItemName)
		fmt.Fprintf(&b, "- **Responsible:** %s\n", orDefault(it.ResponsibleParty, unassigned))
		fmt.Fprintf(&b, "- **Due Date:** %s\n", orDefault(domain.FormatDate(it.DueDate), notSet))
		fmt.Fprintf(&b, "- **Notes:** %s\n\n", orDefault(it.Notes, noNotes))
	}

	fmt.Fprintf(&b, "\n---\n\n## Items Due in Next %d Days\n\n", d.DueSoonDays)
	if len(d.DueSoon) == 0 {
		fmt.Fprintf(&b, "No items due in the next %d days.\n", d.DueSoonDays)
	}
	for _, it := range d.DueSoon {
		fmt.Fprintf(&b, "- **%s**: %s\n", it.Category, it.ItemName)
		fmt.Fprintf(&b, "  - Status: %s\n", it.Status)
		fmt.Fprintf(&b, "  - Responsible: %s\n", orDefault(it.ResponsibleParty, unassigned))
		fmt.Fprintf(&b, "  - Due: %s\n", domain.FormatDate(it.DueDate))
	}

	b.WriteString("\n---\n\n*End of Report*\n")
	return b.String()
}

// Portfolio renders the cross-property report.
func Portfolio(d PortfolioData) string {
	var b strings.Builder

	b.WriteString("# Portfolio Due Diligence Report\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n---\n\n", d.GeneratedAt.Format(timeLayout))

	s := d.Summary
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- **Active Properties:** %d\n", s.ActiveProperties)
	fmt.Fprintf(&b, "- **Inactive Properties:** %d\n", s.InactiveProperties)
	fmt.Fprintf(&b, "- **Total Items:** %d\n", s.TotalItems)
	fmt.Fprintf(&b, "- **Completed:** %d (%.1f%%)\n", s.CompleteItems, s.CompletionPct())
	fmt.Fprintf(&b, "- **Issues Flagged:** %d\n\n---\n\n", s.FlaggedItems)

	b.WriteString("## Properties\n\n")
	if len(d.Properties) == 0 {
		b.WriteString("No active properties.\n")
	} else {
		b.WriteString("| Property | Asset Type | Items | Complete | Flagged | Due Soon |\n")
		b.WriteString("|---|---|---:|---:|---:|---:|\n")
		for _, p := range d.Properties {
			fmt.Fprintf(&b, "| %s | %s | %d | %.0f%% | %d | %d |\n",
				escapeCell(p.Property.Name), p.Property.AssetType, p.TotalItems,
				p.CompletionPct(), p.FlaggedItems, p.DueSoonItems)
		}
	}

	fmt.Fprintf(&b, "\n---\n\n## Properties at Risk (next %d days)\n\n", d.RiskDays)
	if len(d.AtRisk) == 0 {
		b.WriteString("No properties at risk.\n")
	}
	for _, r := range d.AtRisk {
		fmt.Fprintf(&b, "- **%s** (%s): %d open items due\n", r.PropertyName, r.AssetType, r.ItemsDueSoon)
	}

	b.WriteString("\n---\n\n## Flagged Issues\n\n")
	if len(d.Flagged) == 0 {
		b.WriteString("No issues flagged.\n")
	}
	current := ""
	for _, it := range d.Flagged {
		if it.PropertyName != current {
			current = it.PropertyName
			fmt.Fprintf(&b, "### %s\n", current)
		}
		fmt.Fprintf(&b, "- **%s**: %s (%s)\n", it.Category, it.ItemName, orDefault(it.ResponsibleParty, unassigned))
	}

	fmt.Fprintf(&b, "\n---\n\n## Upcoming Deadlines (next %d days)\n\n", d.DeadlineDays)
	if len(d.Deadlines) == 0 {
		b.WriteString("No upcoming deadlines.\n")
	}
	for _, u := range []domain.Urgency{domain.UrgencyOverdue, domain.UrgencyUrgent, domain.UrgencySoon, domain.UrgencyNormal} {
		group := filterUrgency(d.Deadlines, u)
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s (%d)\n", UrgencyLabel(u), len(group))
		for _, dl := range group {
			fmt.Fprintf(&b, "- %s | **%s** | %s: %s (%s)\n",
				domain.FormatDate(dl.DueDate), dl.PropertyName, dl.Category, dl.ItemName, DaysLabel(dl.DaysUntil))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n---\n\n*End of Report*\n")
	return b.String()
}

// UrgencyLabel is the section heading for an urgency bucket.
func UrgencyLabel(u domain.Urgency) string {
	switch u {
	case domain.UrgencyOverdue:
		return "Overdue"
	case domain.UrgencyUrgent:
		return "Due within 3 days"
	case domain.UrgencySoon:
		return "Due within 7 days"
	default:
		return "Later"
	}
}

// DaysLabel phrases a day count relative to today.
func DaysLabel(days int) string {
	switch {
	case days < -1:
		return fmt.Sprintf("%d days overdue", -days)
	case days == -1:
		return "1 day overdue"
	case days == 0:
		return "due today"
	case days == 1:
		return "due tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Filename is the suggested download name for a property report,
// e.g. DD_Report_Oak_Plaza_20250602.md.
func Filename(propertyName string, now time.Time) string {
	name := unsafeFilename.ReplaceAllString(strings.ReplaceAll(strings.TrimSpace(propertyName), " ", "_"), "")
	if name == "" {
		name = "Property"
	}
	return fmt.Sprintf("DD_Report_%s_%s.md", name, now.Format("20060102"))
}

func filterUrgency(ds []domain.Deadline, u domain.Urgency) []domain.Deadline {
	var out []domain.Deadline
	for _, d := range ds {
		if d.Urgency == u {
			out = append(out, d)
		}
	}
	return out
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
