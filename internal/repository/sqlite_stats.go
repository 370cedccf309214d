package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/ddtrack/internal/db"
	"github.com/alexanderramin/ddtrack/internal/domain"
)

// SQLiteStatsRepo computes aggregates directly in SQL. Nothing is cached;
// every call reads current store state.
type SQLiteStatsRepo struct {
	db db.DBTX
}

func NewSQLiteStatsRepo(db db.DBTX) *SQLiteStatsRepo {
	return &SQLiteStatsRepo{db: db}
}

// joinedItemColumns selects item columns from dd_items aliased as i.
const joinedItemColumns = `i.id, i.property_id, i.category, i.item_name, i.status, i.responsible_party, i.due_date, i.notes, i.last_updated`

// openDueBy matches incomplete items with a due date on or before a cutoff.
// NULL due dates never match.
const openDueBy = `i.status != 'Complete' AND i.due_date IS NOT NULL AND i.due_date <= ?`

func (r *SQLiteStatsRepo) OverallStats(ctx context.Context, propertyID int64) (domain.OverallStats, error) {
	var s domain.OverallStats
	err := r.db.QueryRowContext(ctx, `SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'Complete' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'Issue Flagged' THEN 1 ELSE 0 END), 0)
		FROM dd_items WHERE property_id = ?`, propertyID).Scan(&s.Total, &s.Complete, &s.Flagged)
	if err != nil {
		return s, fmt.Errorf("computing overall stats: %w", err)
	}
	return s, nil
}

func (r *SQLiteStatsRepo) SummaryByCategory(ctx context.Context, propertyID int64) ([]domain.CategorySummary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT
			category,
			COUNT(*),
			SUM(CASE WHEN status = 'Complete' THEN 1 ELSE 0 END),
			SUM(CASE WHEN status = 'In Progress' THEN 1 ELSE 0 END),
			SUM(CASE WHEN status = 'Under Review' THEN 1 ELSE 0 END),
			SUM(CASE WHEN status = 'Issue Flagged' THEN 1 ELSE 0 END),
			SUM(CASE WHEN status = 'Not Started' THEN 1 ELSE 0 END)
		FROM dd_items
		WHERE property_id = ?
		GROUP BY category
		ORDER BY category`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("summarizing categories: %w", err)
	}
	defer rows.Close()

	var out []domain.CategorySummary
	for rows.Next() {
		var c domain.CategorySummary
		if err := rows.Scan(&c.Category, &c.Total, &c.Complete, &c.InProgress, &c.UnderReview, &c.Flagged, &c.NotStarted); err != nil {
			return nil, fmt.Errorf("scanning category summary: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category summary: %w", err)
	}
	return out, nil
}

func (r *SQLiteStatsRepo) FlaggedItems(ctx context.Context, propertyID int64) ([]*domain.ChecklistItem, error) {
	return queryItems(ctx, r.db, `SELECT `+itemColumns+` FROM dd_items
		WHERE property_id = ? AND status = ?
		ORDER BY category, item_name, id`, propertyID, string(domain.ItemIssueFlagged))
}

// ItemsDueSoon returns incomplete items due on or before today+days,
// overdue items included, ordered by due date.
func (r *SQLiteStatsRepo) ItemsDueSoon(ctx context.Context, propertyID int64, days int, now time.Time) ([]*domain.ChecklistItem, error) {
	return queryItems(ctx, r.db, `SELECT `+joinedItemColumns+` FROM dd_items i
		WHERE i.property_id = ? AND `+openDueBy+`
		ORDER BY i.due_date, i.category, i.item_name`, propertyID, domain.Cutoff(now, days))
}

func (r *SQLiteStatsRepo) PortfolioSummary(ctx context.Context) (domain.PortfolioSummary, error) {
	var s domain.PortfolioSummary
	err := r.db.QueryRowContext(ctx, `SELECT
			COALESCE(SUM(CASE WHEN status = 'Active' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status != 'Active' THEN 1 ELSE 0 END), 0)
		FROM properties`).Scan(&s.ActiveProperties, &s.InactiveProperties)
	if err != nil {
		return s, fmt.Errorf("counting properties: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `SELECT
			COUNT(i.id),
			COALESCE(SUM(CASE WHEN i.status = 'Complete' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN i.status = 'Issue Flagged' THEN 1 ELSE 0 END), 0)
		FROM dd_items i
		JOIN properties p ON p.id = i.property_id
		WHERE p.status = 'Active'`).Scan(&s.TotalItems, &s.CompleteItems, &s.FlaggedItems)
	if err != nil {
		return s, fmt.Errorf("counting portfolio items: %w", err)
	}
	return s, nil
}

// PropertiesWithStats lists every active property with its item counts.
// Properties without items appear with zeros.
func (r *SQLiteStatsRepo) PropertiesWithStats(ctx context.Context, dueSoonDays int, now time.Time) ([]domain.PropertyStats, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT
			p.id, p.name, p.address, p.asset_type, p.status, p.created_date, p.last_updated,
			COUNT(i.id),
			COALESCE(SUM(CASE WHEN i.status = 'Complete' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN i.status = 'Issue Flagged' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN `+openDueBy+` THEN 1 ELSE 0 END), 0)
		FROM properties p
		LEFT JOIN dd_items i ON i.property_id = p.id
		WHERE p.status = 'Active'
		GROUP BY p.id
		ORDER BY p.name, p.id`, domain.Cutoff(now, dueSoonDays))
	if err != nil {
		return nil, fmt.Errorf("listing property stats: %w", err)
	}
	defer rows.Close()

	var out []domain.PropertyStats
	for rows.Next() {
		var ps domain.PropertyStats
		var assetType, status, createdStr, updatedStr string
		p := &ps.Property
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &assetType, &status, &createdStr, &updatedStr,
			&ps.TotalItems, &ps.CompleteItems, &ps.FlaggedItems, &ps.DueSoonItems); err != nil {
			return nil, fmt.Errorf("scanning property stats: %w", err)
		}
		p.AssetType = domain.AssetType(assetType)
		p.Status = domain.PropertyStatus(status)
		if p.CreatedAt, err = parseTimestamp(createdStr); err != nil {
			return nil, fmt.Errorf("parsing created_date: %w", err)
		}
		if p.UpdatedAt, err = parseTimestamp(updatedStr); err != nil {
			return nil, fmt.Errorf("parsing last_updated: %w", err)
		}
		out = append(out, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating property stats: %w", err)
	}
	return out, nil
}

// PropertiesAtRisk returns active properties with at least threshold
// incomplete items due within days, most loaded first.
func (r *SQLiteStatsRepo) PropertiesAtRisk(ctx context.Context, days, threshold int, now time.Time) ([]domain.PropertyRisk, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT p.id, p.name, p.asset_type, COUNT(i.id) AS due_soon
		FROM properties p
		JOIN dd_items i ON i.property_id = p.id
		WHERE p.status = 'Active' AND `+openDueBy+`
		GROUP BY p.id
		HAVING COUNT(i.id) >= ?
		ORDER BY due_soon DESC, p.name`, domain.Cutoff(now, days), threshold)
	if err != nil {
		return nil, fmt.Errorf("finding properties at risk: %w", err)
	}
	defer rows.Close()

	var out []domain.PropertyRisk
	for rows.Next() {
		var pr domain.PropertyRisk
		var assetType string
		if err := rows.Scan(&pr.PropertyID, &pr.PropertyName, &assetType, &pr.ItemsDueSoon); err != nil {
			return nil, fmt.Errorf("scanning property risk: %w", err)
		}
		pr.AssetType = domain.AssetType(assetType)
		out = append(out, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating properties at risk: %w", err)
	}
	return out, nil
}

func (r *SQLiteStatsRepo) AllFlaggedItemsByProperty(ctx context.Context) ([]domain.PropertyItem, error) {
	return r.queryPropertyItems(ctx, `SELECT `+joinedItemColumns+`, p.name
		FROM dd_items i
		JOIN properties p ON p.id = i.property_id
		WHERE p.status = 'Active' AND i.status = ?
		ORDER BY p.name, i.category, i.item_name`, string(domain.ItemIssueFlagged))
}

func (r *SQLiteStatsRepo) CategoryCompletionByProperty(ctx context.Context) ([]domain.CategoryCompletion, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT p.id, p.name, i.category,
			COUNT(i.id),
			SUM(CASE WHEN i.status = 'Complete' THEN 1 ELSE 0 END)
		FROM properties p
		JOIN dd_items i ON i.property_id = p.id
		WHERE p.status = 'Active'
		GROUP BY p.id, i.category
		ORDER BY p.name, p.id, i.category`)
	if err != nil {
		return nil, fmt.Errorf("computing category completion: %w", err)
	}
	defer rows.Close()

	var out []domain.CategoryCompletion
	for rows.Next() {
		var c domain.CategoryCompletion
		if err := rows.Scan(&c.PropertyID, &c.PropertyName, &c.Category, &c.Total, &c.Complete); err != nil {
			return nil, fmt.Errorf("scanning category completion: %w", err)
		}
		c.CompletionPct = domain.Percent(c.Complete, c.Total)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category completion: %w", err)
	}
	return out, nil
}

// UpcomingDeadlines returns incomplete items on active properties due within
// days, overdue included, ordered by due date then property name.
func (r *SQLiteStatsRepo) UpcomingDeadlines(ctx context.Context, days int, now time.Time) ([]domain.PropertyItem, error) {
	return r.queryPropertyItems(ctx, `SELECT `+joinedItemColumns+`, p.name
		FROM dd_items i
		JOIN properties p ON p.id = i.property_id
		WHERE p.status = 'Active' AND `+openDueBy+`
		ORDER BY i.due_date, p.name, i.category, i.item_name`, domain.Cutoff(now, days))
}

func (r *SQLiteStatsRepo) queryPropertyItems(ctx context.Context, query string, args ...any) ([]domain.PropertyItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying property items: %w", err)
	}
	defer rows.Close()

	var out []domain.PropertyItem
	for rows.Next() {
		var name sql.NullString
		item, err := scanItem(rows, &name)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.PropertyItem{ChecklistItem: *item, PropertyName: name.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating property items: %w", err)
	}
	return out, nil
}
