package domain

import "sort"

// Percent returns part/total*100, or 0 when total is zero.
func Percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// OverallStats counts a single property's items.
type OverallStats struct {
	Total    int
	Complete int
	Flagged  int
}

func (s OverallStats) CompletionPct() float64 { return Percent(s.Complete, s.Total) }

// Open is the number of items not yet complete.
func (s OverallStats) Open() int { return s.Total - s.Complete }

// CategorySummary is a per-status count for one category of one property.
type CategorySummary struct {
	Category    string
	Total       int
	Complete    int
	InProgress  int
	UnderReview int
	Flagged     int
	NotStarted  int
}

func (c CategorySummary) CompletionPct() float64 { return Percent(c.Complete, c.Total) }

// PortfolioSummary rolls up items across all active properties.
type PortfolioSummary struct {
	ActiveProperties   int
	InactiveProperties int
	TotalItems         int
	CompleteItems      int
	FlaggedItems       int
}

func (p PortfolioSummary) CompletionPct() float64 { return Percent(p.CompleteItems, p.TotalItems) }

// PropertyStats is an active property with its item counts.
type PropertyStats struct {
	Property      Property
	TotalItems    int
	CompleteItems int
	FlaggedItems  int
	DueSoonItems  int
}

func (p PropertyStats) CompletionPct() float64 { return Percent(p.CompleteItems, p.TotalItems) }

// PropertyRisk is an active property with a concentration of near-term open items.
type PropertyRisk struct {
	PropertyID   int64
	PropertyName string
	AssetType    AssetType
	ItemsDueSoon int
}

// PropertyItem is a checklist item annotated with its property's name.
type PropertyItem struct {
	ChecklistItem
	PropertyName string
}

// CategoryCompletion is one (property, category) cell of the completion matrix.
type CategoryCompletion struct {
	PropertyID    int64
	PropertyName  string
	Category      string
	Total         int
	Complete      int
	CompletionPct float64
}

// CompletionMatrix pivots CategoryCompletion rows into property rows and category columns.
type CompletionMatrix struct {
	Properties []string
	Categories []string
	// Cells[i][j] is nil when property i has no items in category j.
	Cells [][]*CategoryCompletion
}

// NewCompletionMatrix builds the pivot. Properties keep their first-seen order;
// categories are sorted by name.
func NewCompletionMatrix(rows []CategoryCompletion) CompletionMatrix {
	propIndex := make(map[int64]int)
	var m CompletionMatrix
	catSet := make(map[string]bool)
	for _, r := range rows {
		if _, ok := propIndex[r.PropertyID]; !ok {
			propIndex[r.PropertyID] = len(m.Properties)
			m.Properties = append(m.Properties, r.PropertyName)
		}
		if !catSet[r.Category] {
			catSet[r.Category] = true
			m.Categories = append(m.Categories, r.Category)
		}
	}
	sort.Strings(m.Categories)
	catIndex := make(map[string]int, len(m.Categories))
	for i, c := range m.Categories {
		catIndex[c] = i
	}

	m.Cells = make([][]*CategoryCompletion, len(m.Properties))
	for i := range m.Cells {
		m.Cells[i] = make([]*CategoryCompletion, len(m.Categories))
	}
	for i := range rows {
		r := rows[i]
		m.Cells[propIndex[r.PropertyID]][catIndex[r.Category]] = &r
	}
	return m
}

// Deadline is an open item on an active property with its urgency bucket.
type Deadline struct {
	PropertyItem
	DaysUntil int
	Urgency   Urgency
}
