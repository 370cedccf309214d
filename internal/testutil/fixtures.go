package testutil

import (
	"time"

	"github.com/alexanderramin/ddtrack/internal/domain"
)

// Property options
type PropertyOption func(*domain.Property)

func WithAddress(a string) PropertyOption {
	return func(p *domain.Property) {
		p.Address = a
	}
}

func WithAssetType(a domain.AssetType) PropertyOption {
	return func(p *domain.Property) {
		p.AssetType = a
	}
}

func WithPropertyStatus(s domain.PropertyStatus) PropertyOption {
	return func(p *domain.Property) {
		p.Status = s
	}
}

func NewTestProperty(name string, opts ...PropertyOption) *domain.Property {
	now := time.Now().UTC()
	p := &domain.Property{
		Name:      name,
		AssetType: domain.AssetOther,
		Status:    domain.PropertyActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ChecklistItem options
type ItemOption func(*domain.ChecklistItem)

func WithItemStatus(s domain.ItemStatus) ItemOption {
	return func(i *domain.ChecklistItem) {
		i.Status = s
	}
}

func WithDueDate(d time.Time) ItemOption {
	return func(i *domain.ChecklistItem) {
		i.DueDate = &d
	}
}

// WithDueIn dates the item days after now's calendar date.
func WithDueIn(now time.Time, days int) ItemOption {
	return WithDueDate(domain.AddDays(now, days))
}

func WithResponsible(party string) ItemOption {
	return func(i *domain.ChecklistItem) {
		i.ResponsibleParty = party
	}
}

func WithNotes(n string) ItemOption {
	return func(i *domain.ChecklistItem) {
		i.Notes = n
	}
}

func NewTestItem(propertyID int64, category, name string, opts ...ItemOption) *domain.ChecklistItem {
	i := &domain.ChecklistItem{
		PropertyID: propertyID,
		Category:   category,
		ItemName:   name,
		Status:     domain.ItemNotStarted,
		UpdatedAt:  time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Template options
type TemplateOption func(*domain.Template)

func WithDescription(d string) TemplateOption {
	return func(t *domain.Template) {
		t.Description = d
	}
}

func WithTemplateAssetType(a string) TemplateOption {
	return func(t *domain.Template) {
		t.AssetType = a
	}
}

func NewTestTemplate(name string, opts ...TemplateOption) *domain.Template {
	t := &domain.Template{
		Name:      name,
		AssetType: domain.TemplateAssetAll,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestTemplateItem(templateID int64, category, name string, dueDays int) *domain.TemplateItem {
	return &domain.TemplateItem{
		TemplateID:     templateID,
		Category:       category,
		ItemName:       name,
		DefaultDueDays: dueDays,
	}
}
