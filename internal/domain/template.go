package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTemplateName is the name of the seeded, undeletable template.
const DefaultTemplateName = "Standard DD Checklist"

// DefaultDueDays is the offset used when a captured item has no usable due date.
const DefaultDueDays = 30

// Template is a reusable, time-relative checklist definition.
type Template struct {
	ID          int64
	Name        string
	Description string
	AssetType   string
	IsDefault   bool
	CreatedAt   time.Time
}

type TemplateItem struct {
	ID             int64
	TemplateID     int64
	Category       string
	ItemName       string
	Notes          string
	DefaultDueDays int
}

func (t *Template) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: template name is required", ErrValidation)
	}
	return nil
}

func (ti *TemplateItem) Validate() error {
	if strings.TrimSpace(ti.Category) == "" {
		return fmt.Errorf("%w: template item category is required", ErrValidation)
	}
	if strings.TrimSpace(ti.ItemName) == "" {
		return fmt.Errorf("%w: template item name is required", ErrValidation)
	}
	return nil
}

// OffsetFor converts an absolute due date into a day offset relative to now.
// Items without a due date fall back to DefaultDueDays.
func OffsetFor(due *time.Time, now time.Time) int {
	if due == nil {
		return DefaultDueDays
	}
	return DaysUntil(*due, now)
}

// Instantiate builds a Not Started checklist item for propertyID dated
// DefaultDueDays after now.
func (ti *TemplateItem) Instantiate(propertyID int64, now time.Time) *ChecklistItem {
	due := AddDays(now, ti.DefaultDueDays)
	return &ChecklistItem{
		PropertyID: propertyID,
		Category:   ti.Category,
		ItemName:   ti.ItemName,
		Status:     ItemNotStarted,
		DueDate:    &due,
		Notes:      ti.Notes,
		UpdatedAt:  now.UTC(),
	}
}
