package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/ddtrack/internal/db"
	"github.com/alexanderramin/ddtrack/internal/domain"
)

// SQLitePropertyRepo implements PropertyRepo using a SQLite database.
type SQLitePropertyRepo struct {
	db db.DBTX
}

// NewSQLitePropertyRepo creates a new SQLitePropertyRepo.
func NewSQLitePropertyRepo(db db.DBTX) *SQLitePropertyRepo {
	return &SQLitePropertyRepo{db: db}
}

const propertyColumns = `id, name, address, asset_type, status, created_date, last_updated`

// Create inserts p and sets its generated ID. Zero timestamps are stamped with the current time.
func (r *SQLitePropertyRepo) Create(ctx context.Context, p *domain.Property) error {
	p.CreatedAt = stamp(p.CreatedAt)
	p.UpdatedAt = stamp(p.UpdatedAt)
	res, err := r.db.ExecContext(ctx, `INSERT INTO properties (name, address, asset_type, status, created_date, last_updated)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.Name,
		p.Address,
		string(p.AssetType),
		string(p.Status),
		formatTimestamp(p.CreatedAt),
		formatTimestamp(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting property: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading property id: %w", err)
	}
	p.ID = id
	return nil
}

func (r *SQLitePropertyRepo) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+propertyColumns+` FROM properties WHERE id = ?`, id)
	p, err := scanProperty(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: property %d", domain.ErrNotFound, id)
	}
	return p, err
}

// List returns properties ordered by status descending, then name.
func (r *SQLitePropertyRepo) List(ctx context.Context, activeOnly bool) ([]*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties`
	var args []any
	if activeOnly {
		query += ` WHERE status = ?`
		args = append(args, string(domain.PropertyActive))
	}
	query += ` ORDER BY status DESC, name, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}
	defer rows.Close()

	var properties []*domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating properties: %w", err)
	}
	return properties, nil
}

func (r *SQLitePropertyRepo) Update(ctx context.Context, p *domain.Property) error {
	p.UpdatedAt = stamp(p.UpdatedAt)
	res, err := r.db.ExecContext(ctx, `UPDATE properties SET name = ?, address = ?, asset_type = ?, status = ?, last_updated = ?
		WHERE id = ?`,
		p.Name,
		p.Address,
		string(p.AssetType),
		string(p.Status),
		formatTimestamp(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating property: %w", err)
	}
	return requireAffected(res, "property", p.ID)
}

func (r *SQLitePropertyRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting property: %w", err)
	}
	return requireAffected(res, "property", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(s rowScanner) (*domain.Property, error) {
	var p domain.Property
	var assetType, status, createdStr, updatedStr string
	if err := s.Scan(&p.ID, &p.Name, &p.Address, &assetType, &status, &createdStr, &updatedStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning property: %w", err)
	}
	p.AssetType = domain.AssetType(assetType)
	p.Status = domain.PropertyStatus(status)

	var err error
	if p.CreatedAt, err = parseTimestamp(createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_date: %w", err)
	}
	if p.UpdatedAt, err = parseTimestamp(updatedStr); err != nil {
		return nil, fmt.Errorf("parsing last_updated: %w", err)
	}
	return &p, nil
}
