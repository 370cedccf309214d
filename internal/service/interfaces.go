package service

import (
	"context"
	"io"

	"github.com/alexanderramin/ddtrack/internal/domain"
)

type PropertyService interface {
	Create(ctx context.Context, p *domain.Property) error
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Property, error)
	Update(ctx context.Context, p *domain.Property) error
	// Delete removes the property and all of its checklist items atomically.
	Delete(ctx context.Context, id int64) error
}

type ItemService interface {
	Create(ctx context.Context, item *domain.ChecklistItem) error
	GetByID(ctx context.Context, id int64) (*domain.ChecklistItem, error)
	List(ctx context.Context, filter domain.ItemFilter) ([]*domain.ChecklistItem, error)
	ListCategories(ctx context.Context, propertyID int64) ([]string, error)
	Update(ctx context.Context, id int64, upd domain.ItemUpdate) (*domain.ChecklistItem, error)
	Delete(ctx context.Context, id int64) error
}

type TemplateService interface {
	Create(ctx context.Context, t *domain.Template) error
	GetByID(ctx context.Context, id int64) (*domain.Template, error)
	List(ctx context.Context) ([]*domain.Template, error)
	ListItems(ctx context.Context, templateID int64) ([]*domain.TemplateItem, error)
	AddItem(ctx context.Context, item *domain.TemplateItem) error
	Delete(ctx context.Context, id int64) error

	// SaveAsTemplate captures a property's checklist as a reusable template
	// with due dates converted to day offsets.
	SaveAsTemplate(ctx context.Context, propertyID int64, name, description string) (*domain.Template, error)
	// ApplyTemplate adds the template's items to a property and returns how
	// many were created. Applying twice duplicates items.
	ApplyTemplate(ctx context.Context, propertyID, templateID int64) (int, error)

	ExportTemplate(ctx context.Context, templateID int64, w io.Writer) error
	ImportTemplate(ctx context.Context, r io.Reader) (*domain.Template, error)
}

type StatsService interface {
	OverallStats(ctx context.Context, propertyID int64) (domain.OverallStats, error)
	SummaryByCategory(ctx context.Context, propertyID int64) ([]domain.CategorySummary, error)
	FlaggedItems(ctx context.Context, propertyID int64) ([]*domain.ChecklistItem, error)
	ItemsDueSoon(ctx context.Context, propertyID int64, days int) ([]*domain.ChecklistItem, error)

	PortfolioSummary(ctx context.Context) (domain.PortfolioSummary, error)
	PropertiesWithStats(ctx context.Context) ([]domain.PropertyStats, error)
	PropertiesAtRisk(ctx context.Context, days int) ([]domain.PropertyRisk, error)
	AllFlaggedItemsByProperty(ctx context.Context) ([]domain.PropertyItem, error)
	CategoryCompletionByProperty(ctx context.Context) ([]domain.CategoryCompletion, error)
	CompletionMatrix(ctx context.Context) (domain.CompletionMatrix, error)
	UpcomingDeadlines(ctx context.Context, days int) ([]domain.Deadline, error)
}

// ReportService renders markdown status reports from live aggregates.
type ReportService interface {
	PropertyReport(ctx context.Context, propertyID int64, dueSoonDays int) (string, error)
	PortfolioReport(ctx context.Context, riskDays, deadlineDays int) (string, error)
}
