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

// SQLiteTemplateRepo implements TemplateRepo over templates and template_items.
type SQLiteTemplateRepo struct {
	db db.DBTX
}

func NewSQLiteTemplateRepo(db db.DBTX) *SQLiteTemplateRepo {
	return &SQLiteTemplateRepo{db: db}
}

const templateColumns = `id, name, description, asset_type, is_default, created_date`

func (r *SQLiteTemplateRepo) Create(ctx context.Context, t *domain.Template) error {
	t.CreatedAt = stamp(t.CreatedAt)
	res, err := r.db.ExecContext(ctx, `INSERT INTO templates (name, description, asset_type, is_default, created_date)
		VALUES (?, ?, ?, ?, ?)`,
		t.Name,
		t.Description,
		t.AssetType,
		boolToInt(t.IsDefault),
		formatTimestamp(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading template id: %w", err)
	}
	t.ID = id
	return nil
}

func (r *SQLiteTemplateRepo) GetByID(ctx context.Context, id int64) (*domain.Template, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+templateColumns+` FROM templates WHERE id = ?`, id)
	t, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: template %d", domain.ErrNotFound, id)
	}
	return t, err
}

// List returns templates with the default first, then by name.
func (r *SQLiteTemplateRepo) List(ctx context.Context) ([]*domain.Template, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+templateColumns+` FROM templates ORDER BY is_default DESC, name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	defer rows.Close()

	var templates []*domain.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}
	return templates, nil
}

// Delete removes a template and, through the foreign key, its items. The
// store refuses to delete the default template.
func (r *SQLiteTemplateRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		if isDefaultTemplateGuard(err) {
			return fmt.Errorf("%w: default template cannot be deleted", domain.ErrConstraintViolation)
		}
		return fmt.Errorf("deleting template: %w", err)
	}
	return requireAffected(res, "template", id)
}

func (r *SQLiteTemplateRepo) AddItem(ctx context.Context, item *domain.TemplateItem) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO template_items (template_id, category, item_name, notes, default_due_days)
		VALUES (?, ?, ?, ?, ?)`,
		item.TemplateID,
		item.Category,
		item.ItemName,
		item.Notes,
		item.DefaultDueDays,
	)
	if err != nil {
		return fmt.Errorf("inserting template item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading template item id: %w", err)
	}
	item.ID = id
	return nil
}

// ListItems returns a template's items ordered by category, then item name.
func (r *SQLiteTemplateRepo) ListItems(ctx context.Context, templateID int64) ([]*domain.TemplateItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, template_id, category, item_name, notes, default_due_days
		FROM template_items WHERE template_id = ? ORDER BY category, item_name, id`, templateID)
	if err != nil {
		return nil, fmt.Errorf("listing template items: %w", err)
	}
	defer rows.Close()

	var items []*domain.TemplateItem
	for rows.Next() {
		var ti domain.TemplateItem
		if err := rows.Scan(&ti.ID, &ti.TemplateID, &ti.Category, &ti.ItemName, &ti.Notes, &ti.DefaultDueDays); err != nil {
			return nil, fmt.Errorf("scanning template item: %w", err)
		}
		items = append(items, &ti)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating template items: %w", err)
	}
	return items, nil
}

func scanTemplate(s rowScanner) (*domain.Template, error) {
	var t domain.Template
	var isDefault int
	var createdStr string
	if err := s.Scan(&t.ID, &t.Name, &t.Description, &t.AssetType, &isDefault, &createdStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning template: %w", err)
	}
	t.IsDefault = isDefault != 0

	created, err := parseTimestamp(createdStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_date: %w", err)
	}
	t.CreatedAt = created
	return &t, nil
}

func isDefaultTemplateGuard(err error) bool {
	return err != nil && strings.Contains(err.Error(), "default template cannot be deleted")
}
