package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/ddtrack/internal/domain"
)

type PropertyRepo interface {
	Create(ctx context.Context, p *domain.Property) error
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Property, error)
	Update(ctx context.Context, p *domain.Property) error
	Delete(ctx context.Context, id int64) error
}

type ItemRepo interface {
	Create(ctx context.Context, item *domain.ChecklistItem) error
	GetByID(ctx context.Context, id int64) (*domain.ChecklistItem, error)
	List(ctx context.Context, filter domain.ItemFilter) ([]*domain.ChecklistItem, error)
	// ListCategories returns distinct categories; propertyID 0 spans every property.
	ListCategories(ctx context.Context, propertyID int64) ([]string, error)
	Update(ctx context.Context, item *domain.ChecklistItem) error
	Delete(ctx context.Context, id int64) error
	DeleteByProperty(ctx context.Context, propertyID int64) (int64, error)
}

type TemplateRepo interface {
	Create(ctx context.Context, t *domain.Template) error
	GetByID(ctx context.Context, id int64) (*domain.Template, error)
	List(ctx context.Context) ([]*domain.Template, error)
	Delete(ctx context.Context, id int64) error
	AddItem(ctx context.Context, item *domain.TemplateItem) error
	ListItems(ctx context.Context, templateID int64) ([]*domain.TemplateItem, error)
}

// StatsRepo runs the aggregate queries. Methods that compare due dates take
// now so callers control the clock.
type StatsRepo interface {
	OverallStats(ctx context.Context, propertyID int64) (domain.OverallStats, error)
	SummaryByCategory(ctx context.Context, propertyID int64) ([]domain.CategorySummary, error)
	FlaggedItems(ctx context.Context, propertyID int64) ([]*domain.ChecklistItem, error)
	ItemsDueSoon(ctx context.Context, propertyID int64, days int, now time.Time) ([]*domain.ChecklistItem, error)
	PortfolioSummary(ctx context.Context) (domain.PortfolioSummary, error)
	PropertiesWithStats(ctx context.Context, dueSoonDays int, now time.Time) ([]domain.PropertyStats, error)
	PropertiesAtRisk(ctx context.Context, days, threshold int, now time.Time) ([]domain.PropertyRisk, error)
	AllFlaggedItemsByProperty(ctx context.Context) ([]domain.PropertyItem, error)
	CategoryCompletionByProperty(ctx context.Context) ([]domain.CategoryCompletion, error)
	UpcomingDeadlines(ctx context.Context, days int, now time.Time) ([]domain.PropertyItem, error)
}
