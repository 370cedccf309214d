package api

import (
	"time"

	"github.com/alexanderramin/ddtrack/internal/domain"
)

type propertyDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	AssetType string `json:"asset_type"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type itemDTO struct {
	ID               int64  `json:"id"`
	PropertyID       int64  `json:"property_id"`
	Category         string `json:"category"`
	ItemName         string `json:"item_name"`
	Status           string `json:"status"`
	ResponsibleParty string `json:"responsible_party"`
	DueDate          string `json:"due_date,omitempty"`
	Notes            string `json:"notes"`
	LastUpdated      string `json:"last_updated"`
}

type propertyItemDTO struct {
	itemDTO
	PropertyName string `json:"property_name"`
}

type deadlineDTO struct {
	propertyItemDTO
	DaysUntil int    `json:"days_until"`
	Urgency   string `json:"urgency"`
}

type templateDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AssetType   string `json:"asset_type"`
	IsDefault   bool   `json:"is_default"`
	CreatedAt   string `json:"created_at"`
}

type overallStatsDTO struct {
	Total         int     `json:"total"`
	Complete      int     `json:"complete"`
	Flagged       int     `json:"flagged"`
	CompletionPct float64 `json:"completion_pct"`
}

type categorySummaryDTO struct {
	Category      string  `json:"category"`
	Total         int     `json:"total"`
	Complete      int     `json:"complete"`
	InProgress    int     `json:"in_progress"`
	UnderReview   int     `json:"under_review"`
	Flagged       int     `json:"flagged"`
	NotStarted    int     `json:"not_started"`
	CompletionPct float64 `json:"completion_pct"`
}

type portfolioSummaryDTO struct {
	ActiveProperties   int     `json:"active_properties"`
	InactiveProperties int     `json:"inactive_properties"`
	TotalItems         int     `json:"total_items"`
	CompleteItems      int     `json:"complete_items"`
	FlaggedItems       int     `json:"flagged_items"`
	CompletionPct      float64 `json:"completion_pct"`
}

type propertyStatsDTO struct {
	propertyDTO
	TotalItems    int     `json:"total_items"`
	CompleteItems int     `json:"complete_items"`
	FlaggedItems  int     `json:"flagged_items"`
	DueSoonItems  int     `json:"due_soon_items"`
	CompletionPct float64 `json:"completion_pct"`
}

type propertyRiskDTO struct {
	PropertyID   int64  `json:"property_id"`
	PropertyName string `json:"property_name"`
	AssetType    string `json:"asset_type"`
	ItemsDueSoon int    `json:"items_due_soon"`
}

type heatmapDTO struct {
	Properties []string `json:"properties"`
	Categories []string `json:"categories"`
	// Nil cells mean the property has no items in that category.
	Cells [][]*float64 `json:"cells"`
}

type itemPatchRequest struct {
	Status           *string `json:"status"`
	ResponsibleParty *string `json:"responsible_party"`
	DueDate          *string `json:"due_date"`
	Notes            *string `json:"notes"`
}

type applyResultDTO struct {
	PropertyID int64 `json:"property_id"`
	TemplateID int64 `json:"template_id"`
	ItemsAdded int   `json:"items_added"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func toPropertyDTO(p *domain.Property) propertyDTO {
	return propertyDTO{
		ID:        p.ID,
		Name:      p.Name,
		Address:   p.Address,
		AssetType: string(p.AssetType),
		Status:    string(p.Status),
		CreatedAt: formatTime(p.CreatedAt),
		UpdatedAt: formatTime(p.UpdatedAt),
	}
}

func toPropertyDTOs(ps []*domain.Property) []propertyDTO {
	out := make([]propertyDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPropertyDTO(p))
	}
	return out
}

func toItemDTO(it *domain.ChecklistItem) itemDTO {
	return itemDTO{
		ID:               it.ID,
		PropertyID:       it.PropertyID,
		Category:         it.Category,
		ItemName:         it.ItemName,
		Status:           string(it.Status),
		ResponsibleParty: it.ResponsibleParty,
		DueDate:          domain.FormatDate(it.DueDate),
		Notes:            it.Notes,
		LastUpdated:      formatTime(it.UpdatedAt),
	}
}

func toItemDTOs(items []*domain.ChecklistItem) []itemDTO {
	out := make([]itemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toItemDTO(it))
	}
	return out
}

func toPropertyItemDTOs(items []domain.PropertyItem) []propertyItemDTO {
	out := make([]propertyItemDTO, 0, len(items))
	for i := range items {
		out = append(out, propertyItemDTO{itemDTO: toItemDTO(&items[i].ChecklistItem), PropertyName: items[i].PropertyName})
	}
	return out
}

func toDeadlineDTOs(ds []domain.Deadline) []deadlineDTO {
	out := make([]deadlineDTO, 0, len(ds))
	for i := range ds {
		d := ds[i]
		out = append(out, deadlineDTO{
			propertyItemDTO: propertyItemDTO{itemDTO: toItemDTO(&d.ChecklistItem), PropertyName: d.PropertyName},
			DaysUntil:       d.DaysUntil,
			Urgency:         string(d.Urgency),
		})
	}
	return out
}

func toTemplateDTOs(ts []*domain.Template) []templateDTO {
	out := make([]templateDTO, 0, len(ts))
	for _, t := range ts {
		out = append(out, templateDTO{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			AssetType:   t.AssetType,
			IsDefault:   t.IsDefault,
			CreatedAt:   formatTime(t.CreatedAt),
		})
	}
	return out
}

func toOverallStatsDTO(s domain.OverallStats) overallStatsDTO {
	return overallStatsDTO{Total: s.Total, Complete: s.Complete, Flagged: s.Flagged, CompletionPct: s.CompletionPct()}
}

func toCategorySummaryDTOs(rows []domain.CategorySummary) []categorySummaryDTO {
	out := make([]categorySummaryDTO, 0, len(rows))
	for _, c := range rows {
		out = append(out, categorySummaryDTO{
			Category:      c.Category,
			Total:         c.Total,
			Complete:      c.Complete,
			InProgress:    c.InProgress,
			UnderReview:   c.UnderReview,
			Flagged:       c.Flagged,
			NotStarted:    c.NotStarted,
			CompletionPct: c.CompletionPct(),
		})
	}
	return out
}

func toPortfolioSummaryDTO(s domain.PortfolioSummary) portfolioSummaryDTO {
	return portfolioSummaryDTO{
		ActiveProperties:   s.ActiveProperties,
		InactiveProperties: s.InactiveProperties,
		TotalItems:         s.TotalItems,
		CompleteItems:      s.CompleteItems,
		FlaggedItems:       s.FlaggedItems,
		CompletionPct:      s.CompletionPct(),
	}
}

func toPropertyStatsDTOs(rows []domain.PropertyStats) []propertyStatsDTO {
	out := make([]propertyStatsDTO, 0, len(rows))
	for i := range rows {
		r := rows[i]
		out = append(out, propertyStatsDTO{
			propertyDTO:   toPropertyDTO(&r.Property),
			TotalItems:    r.TotalItems,
			CompleteItems: r.CompleteItems,
			FlaggedItems:  r.FlaggedItems,
			DueSoonItems:  r.DueSoonItems,
			CompletionPct: r.CompletionPct(),
		})
	}
	return out
}

func toPropertyRiskDTOs(rows []domain.PropertyRisk) []propertyRiskDTO {
	out := make([]propertyRiskDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, propertyRiskDTO{
			PropertyID:   r.PropertyID,
			PropertyName: r.PropertyName,
			AssetType:    string(r.AssetType),
			ItemsDueSoon: r.ItemsDueSoon,
		})
	}
	return out
}

func toHeatmapDTO(m domain.CompletionMatrix) heatmapDTO {
	out := heatmapDTO{
		Properties: append([]string{}, m.Properties...),
		Categories: append([]string{}, m.Categories...),
		Cells:      make([][]*float64, len(m.Cells)),
	}
	for i, row := range m.Cells {
		out.Cells[i] = make([]*float64, len(row))
		for j, cell := range row {
			if cell != nil {
				pct := cell.CompletionPct
				out.Cells[i][j] = &pct
			}
		}
	}
	return out
}
