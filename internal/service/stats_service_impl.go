package service

import (
	"context"

	"github.com/alexanderramin/ddtrack/internal/domain"
	"github.com/alexanderramin/ddtrack/internal/repository"
)

type statsService struct {
	stats      repository.StatsRepo
	properties repository.PropertyRepo
	opts       options
}

func NewStatsService(stats repository.StatsRepo, properties repository.PropertyRepo, opts ...Option) StatsService {
	return &statsService{stats: stats, properties: properties, opts: newOptions(opts)}
}

// requireProperty turns an unknown property id into ErrNotFound instead of
// an all-zero aggregate.
func (s *statsService) requireProperty(ctx context.Context, propertyID int64) error {
	_, err := s.properties.GetByID(ctx, propertyID)
	return err
}

func (s *statsService) OverallStats(ctx context.Context, propertyID int64) (domain.OverallStats, error) {
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return domain.OverallStats{}, err
	}
	return s.stats.OverallStats(ctx, propertyID)
}

func (s *statsService) SummaryByCategory(ctx context.Context, propertyID int64) ([]domain.CategorySummary, error) {
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	return s.stats.SummaryByCategory(ctx, propertyID)
}

func (s *statsService) FlaggedItems(ctx context.Context, propertyID int64) ([]*domain.ChecklistItem, error) {
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	return s.stats.FlaggedItems(ctx, propertyID)
}

func (s *statsService) ItemsDueSoon(ctx context.Context, propertyID int64, days int) ([]*domain.ChecklistItem, error) {
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	return s.stats.ItemsDueSoon(ctx, propertyID, days, s.opts.now())
}

func (s *statsService) PortfolioSummary(ctx context.Context) (domain.PortfolioSummary, error) {
	return s.stats.PortfolioSummary(ctx)
}

func (s *statsService) PropertiesWithStats(ctx context.Context) ([]domain.PropertyStats, error) {
	return s.stats.PropertiesWithStats(ctx, s.opts.dueSoonDays, s.opts.now())
}

func (s *statsService) PropertiesAtRisk(ctx context.Context, days int) ([]domain.PropertyRisk, error) {
	return s.stats.PropertiesAtRisk(ctx, days, s.opts.riskThreshold, s.opts.now())
}

func (s *statsService) AllFlaggedItemsByProperty(ctx context.Context) ([]domain.PropertyItem, error) {
	return s.stats.AllFlaggedItemsByProperty(ctx)
}

func (s *statsService) CategoryCompletionByProperty(ctx context.Context) ([]domain.CategoryCompletion, error) {
	return s.stats.CategoryCompletionByProperty(ctx)
}

func (s *statsService) CompletionMatrix(ctx context.Context) (domain.CompletionMatrix, error) {
	rows, err := s.stats.CategoryCompletionByProperty(ctx)
	if err != nil {
		return domain.CompletionMatrix{}, err
	}
	return domain.NewCompletionMatrix(rows), nil
}

// UpcomingDeadlines classifies each open item by days until due.
func (s *statsService) UpcomingDeadlines(ctx context.Context, days int) ([]domain.Deadline, error) {
	now := s.opts.now()
	items, err := s.stats.UpcomingDeadlines(ctx, days, now)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Deadline, 0, len(items))
	for _, it := range items {
		if it.DueDate == nil {
			continue
		}
		due := *it.DueDate
		out = append(out, domain.Deadline{
			PropertyItem: it,
			DaysUntil:    domain.DaysUntil(due, now),
			Urgency:      domain.UrgencyFor(due, now),
		})
	}
	return out, nil
}
