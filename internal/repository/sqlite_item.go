package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/ddtrack/internal/db"
	"github.com/alexanderramin/ddtrack/internal/domain"
)

// SQLiteItemRepo implements ItemRepo over the dd_items table.
type SQLiteItemRepo struct {
	db db.DBTX
}

func NewSQLiteItemRepo(db db.DBTX) *SQLiteItemRepo {
	return &SQLiteItemRepo{db: db}
}

const itemColumns = `id, property_id, category, item_name, status, responsible_party, due_date, notes, last_updated`

func (r *SQLiteItemRepo) Create(ctx context.Context, item *domain.ChecklistItem) error {
	item.UpdatedAt = stamp(item.UpdatedAt)
	res, err := r.db.ExecContext(ctx, `INSERT INTO dd_items
		(property_id, category, item_name, status, responsible_party, due_date, notes, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.PropertyID,
		item.Category,
		item.ItemName,
		string(item.Status),
		item.ResponsibleParty,
		nullableDate(item.DueDate),
		item.Notes,
		formatTimestamp(item.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting checklist item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading checklist item id: %w", err)
	}
	item.ID = id
	return nil
}

func (r *SQLiteItemRepo) GetByID(ctx context.Context, id int64) (*domain.ChecklistItem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM dd_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: checklist item %d", domain.ErrNotFound, id)
	}
	return item, err
}

// List returns items matching filter ordered by category, then item name.
// A zero PropertyID lists items across every property.
func (r *SQLiteItemRepo) List(ctx context.Context, filter domain.ItemFilter) ([]*domain.ChecklistItem, error) {
	var where []string
	var args []any
	if filter.PropertyID != 0 {
		where = append(where, "property_id = ?")
		args = append(args, filter.PropertyID)
	}
	if c := filter.CategoryFilter(); c != "" {
		where = append(where, "category = ?")
		args = append(args, c)
	}
	if s := filter.StatusFilter(); s != "" {
		where = append(where, "status = ?")
		args = append(args, s)
	}

	query := `SELECT ` + itemColumns + ` FROM dd_items`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY category, item_name, id`

	return queryItems(ctx, r.db, query, args...)
}

func (r *SQLiteItemRepo) ListCategories(ctx context.Context, propertyID int64) ([]string, error) {
	query := `SELECT DISTINCT category FROM dd_items`
	var args []any
	if propertyID != 0 {
		query += ` WHERE property_id = ?`
		args = append(args, propertyID)
	}
	query += ` ORDER BY category`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return categories, nil
}

// Update writes the mutable fields only; category, name and property stay fixed.
func (r *SQLiteItemRepo) Update(ctx context.Context, item *domain.ChecklistItem) error {
	item.UpdatedAt = stamp(item.UpdatedAt)
	res, err := r.db.ExecContext(ctx, `UPDATE dd_items
		SET status = ?, responsible_party = ?, due_date = ?, notes = ?, last_updated = ?
		WHERE id = ?`,
		string(item.Status),
		item.ResponsibleParty,
		nullableDate(item.DueDate),
		item.Notes,
		formatTimestamp(item.UpdatedAt),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating checklist item: %w", err)
	}
	return requireAffected(res, "checklist item", item.ID)
}

func (r *SQLiteItemRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dd_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting checklist item: %w", err)
	}
	return requireAffected(res, "checklist item", id)
}

// DeleteByProperty removes every item of a property and reports how many went.
func (r *SQLiteItemRepo) DeleteByProperty(ctx context.Context, propertyID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dd_items WHERE property_id = ?`, propertyID)
	if err != nil {
		return 0, fmt.Errorf("deleting items of property %d: %w", propertyID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}
	return n, nil
}

func queryItems(ctx context.Context, q db.DBTX, query string, args ...any) ([]*domain.ChecklistItem, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying checklist items: %w", err)
	}
	defer rows.Close()

	var items []*domain.ChecklistItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating checklist items: %w", err)
	}
	return items, nil
}

func scanItem(s rowScanner, extra ...any) (*domain.ChecklistItem, error) {
	var item domain.ChecklistItem
	var status, updatedStr string
	var due sql.NullString
	dest := []any{
		&item.ID, &item.PropertyID, &item.Category, &item.ItemName, &status,
		&item.ResponsibleParty, &due, &item.Notes, &updatedStr,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning checklist item: %w", err)
	}
	item.Status = domain.ItemStatus(status)
	item.DueDate = parseNullableDate(due)

	updated, err := parseTimestamp(updatedStr)
	if err != nil {
		return nil, fmt.Errorf("parsing last_updated: %w", err)
	}
	item.UpdatedAt = updated
	return &item, nil
}
