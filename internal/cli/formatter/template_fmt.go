package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ddtrack/internal/domain"
)

func FormatTemplateList(ts []*domain.Template) string {
	rows := make([][]string, 0, len(ts))
	for _, t := range ts {
		name := Bold(t.Name)
		if t.IsDefault {
			name += " " + StyleGreen.Render("(default)")
		}
		rows = append(rows, []string{
			Dim(fmt.Sprint(t.ID)),
			name,
			StylePurple.Render(orDash(t.AssetType)),
			orDash(Truncate(t.Description, 50)),
		})
	}
	return Table{
		Headers:    []string{"ID", "NAME", "ASSET TYPE", "DESCRIPTION"},
		Rows:       rows,
		RightAlign: map[int]bool{0: true},
	}.Render()
}

func FormatTemplateDetail(t *domain.Template, items []*domain.TemplateItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(t.Name), Dim(fmt.Sprintf("#%d", t.ID)))
	if t.Description != "" {
		b.WriteString(Dim(t.Description) + "\n")
	}
	fmt.Fprintf(&b, "%s %s   %s %d\n\n", Dim("Asset type"), orDash(t.AssetType), Dim("Items"), len(items))

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			Dim(it.Category),
			it.ItemName,
			fmt.Sprintf("%+dd", it.DefaultDueDays),
		})
	}
	b.WriteString(Table{
		Headers:    []string{"CATEGORY", "ITEM", "DUE"},
		Rows:       rows,
		RightAlign: map[int]bool{2: true},
	}.Render())
	return b.String()
}
