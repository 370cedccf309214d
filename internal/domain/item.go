package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO date format used for due dates.
const DateLayout = "2006-01-02"

// ChecklistItem is one due-diligence task tracked against a property.
// Category, ItemName and PropertyID are fixed after creation.
type ChecklistItem struct {
	ID               int64
	PropertyID       int64
	Category         string
	ItemName         string
	Status           ItemStatus
	ResponsibleParty string
	DueDate          *time.Time
	Notes            string
	UpdatedAt        time.Time
}

// ItemUpdate carries the mutable fields of a checklist item.
type ItemUpdate struct {
	Status           ItemStatus
	ResponsibleParty string
	DueDate          *time.Time
	Notes            string
}

// ItemFilter scopes item listings. Empty or "All" category/status means no filter.
type ItemFilter struct {
	PropertyID int64
	Category   string
	Status     string
}

// CategoryFilter returns the category to filter on, or "" for none.
func (f ItemFilter) CategoryFilter() string {
	return activeFilter(f.Category)
}

// StatusFilter returns the status to filter on, or "" for none.
func (f ItemFilter) StatusFilter() string {
	return activeFilter(f.Status)
}

func activeFilter(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, FilterAll) {
		return ""
	}
	return v
}

func (w *ChecklistItem) Normalize() {
	w.Category = strings.TrimSpace(w.Category)
	w.ItemName = strings.TrimSpace(w.ItemName)
	w.ResponsibleParty = strings.TrimSpace(w.ResponsibleParty)
	if w.Status == "" {
		w.Status = ItemNotStarted
	}
}

func (w *ChecklistItem) Validate() error {
	if w.PropertyID <= 0 {
		return fmt.Errorf("%w: property id is required", ErrValidation)
	}
	if w.Category == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	if w.ItemName == "" {
		return fmt.Errorf("%w: item name is required", ErrValidation)
	}
	if !w.Status.Valid() {
		return fmt.Errorf("%w: unknown item status %q", ErrValidation, w.Status)
	}
	return nil
}

// IsOpen reports whether the item still needs work.
func (w *ChecklistItem) IsOpen() bool {
	return w.Status != ItemComplete
}

// ParseDate parses an optional YYYY-MM-DD string. Blank input yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q (want YYYY-MM-DD)", ErrValidation, s)
	}
	return &t, nil
}

// FormatDate renders an optional date, returning "" for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
