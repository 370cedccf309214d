package service

import (
	"context"
	"time"

	"github.com/alexanderramin/ddtrack/internal/domain"
	"github.com/alexanderramin/ddtrack/internal/report"
	"github.com/alexanderramin/ddtrack/internal/repository"
)

type reportService struct {
	properties repository.PropertyRepo
	stats      StatsService
	opts       options
}

func NewReportService(properties repository.PropertyRepo, stats StatsService, opts ...Option) ReportService {
	return &reportService{properties: properties, stats: stats, opts: newOptions(opts)}
}

func (s *reportService) PropertyReport(ctx context.Context, propertyID int64, dueSoonDays int) (out string, err error) {
	startedAt := time.Now()
	fields := map[string]any{"property_id": propertyID}
	defer func() {
		finishUseCase(ctx, s.opts.observer, "property-report", startedAt, fields, err)
	}()

	p, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return "", err
	}
	data := report.PropertyData{Property: p, DueSoonDays: dueSoonDays, GeneratedAt: s.opts.now()}
	if data.Stats, err = s.stats.OverallStats(ctx, propertyID); err != nil {
		return "", err
	}
	if data.Categories, err = s.stats.SummaryByCategory(ctx, propertyID); err != nil {
		return "", err
	}
	if data.Flagged, err = s.stats.FlaggedItems(ctx, propertyID); err != nil {
		return "", err
	}
	if data.DueSoon, err = s.stats.ItemsDueSoon(ctx, propertyID, dueSoonDays); err != nil {
		return "", err
	}
	return report.Property(data), nil
}

func (s *reportService) PortfolioReport(ctx context.Context, riskDays, deadlineDays int) (out string, err error) {
	startedAt := time.Now()
	defer func() {
		finishUseCase(ctx, s.opts.observer, "portfolio-report", startedAt, nil, err)
	}()

	data := report.PortfolioData{RiskDays: riskDays, DeadlineDays: deadlineDays, GeneratedAt: s.opts.now()}
	if data.Summary, err = s.stats.PortfolioSummary(ctx); err != nil {
		return "", err
	}
	if data.Properties, err = s.stats.PropertiesWithStats(ctx); err != nil {
		return "", err
	}
	if data.AtRisk, err = s.stats.PropertiesAtRisk(ctx, riskDays); err != nil {
		return "", err
	}
	if data.Flagged, err = s.stats.AllFlaggedItemsByProperty(ctx); err != nil {
		return "", err
	}
	var deadlines []domain.Deadline
	if deadlines, err = s.stats.UpcomingDeadlines(ctx, deadlineDays); err != nil {
		return "", err
	}
	data.Deadlines = deadlines
	return report.Portfolio(data), nil
}
