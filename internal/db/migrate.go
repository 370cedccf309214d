package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/ddtrack/internal/domain"
)

// storeState describes what Migrate found when it opened the store.
type storeState int

const (
	stateFresh   storeState = iota // no checklist table yet
	stateLegacy                    // single-property layout: dd_items without property_id
	stateCurrent                   // multi-property layout
	statePartial                   // dd_items without property_id and no property_info
	stateDetached                  // dd_items with property_id but no properties or templates table
)

const timestampLayout = time.RFC3339

// Migrate brings the store to the multi-property schema. It is safe to run on
// every start: a fresh store is created and seeded, a legacy single-property
// store is migrated once, and a current store is left untouched.
func Migrate(db *sql.DB) error {
	return migrate(context.Background(), db, time.Now())
}

func migrate(ctx context.Context, db *sql.DB, now time.Time) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquiring db connection: %w", err)
	}
	defer conn.Close()

	state, err := detectState(ctx, conn)
	if err != nil {
		return err
	}

	switch state {
	case statePartial:
		return fmt.Errorf("%w: dd_items has no property_id column and property_info is missing", domain.ErrMigrationState)
	case stateDetached:
		return fmt.Errorf("%w: dd_items has property_id but the properties or templates table is missing", domain.ErrMigrationState)
	case stateLegacy:
		if err := migrateLegacy(ctx, conn, now); err != nil {
			return fmt.Errorf("migrating single-property store: %w", err)
		}
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting schema transaction: %w", err)
	}
	return runTx(ctx, tx, func(ctx context.Context, tx DBTX) error {
		for i, stmt := range schema {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("schema statement %d: %w", i, err)
			}
		}
		if state == stateFresh {
			if err := seedDefaultProperty(ctx, tx, now); err != nil {
				return err
			}
		}
		return ensureDefaultTemplate(ctx, tx, now)
	})
}

func detectState(ctx context.Context, conn DBTX) (storeState, error) {
	hasItems, err := tableExists(ctx, conn, "dd_items")
	if err != nil {
		return 0, err
	}
	if !hasItems {
		return stateFresh, nil
	}
	hasPropertyID, err := columnExists(ctx, conn, "dd_items", "property_id")
	if err != nil {
		return 0, err
	}
	if hasPropertyID {
		for _, table := range []string{"properties", "templates"} {
			ok, err := tableExists(ctx, conn, table)
			if err != nil {
				return 0, err
			}
			if !ok {
				return stateDetached, nil
			}
		}
		return stateCurrent, nil
	}
	hasInfo, err := tableExists(ctx, conn, "property_info")
	if err != nil {
		return 0, err
	}
	if !hasInfo {
		return statePartial, nil
	}
	return stateLegacy, nil
}

// migrateLegacy rebuilds dd_items with a property_id foreign key, moves the
// single property_info row into properties as id 1 and drops property_info.
// Foreign keys are switched off for the rebuild and the whole change commits
// or rolls back as one transaction.
func migrateLegacy(ctx context.Context, conn *sql.Conn, now time.Time) error {
	if _, err := conn.ExecContext(ctx, `PRAGMA foreign_keys = OFF`); err != nil {
		return fmt.Errorf("disabling foreign keys: %w", err)
	}
	defer func() {
		_, _ = conn.ExecContext(ctx, `PRAGMA foreign_keys = ON`)
	}()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting migration transaction: %w", err)
	}
	return runTx(ctx, tx, func(ctx context.Context, tx DBTX) error {
		for _, stmt := range []string{propertiesTable, templatesTable, templateItemsTable} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("creating multi-property tables: %w", err)
			}
		}

		name := domain.DefaultPropertyName
		var legacyName sql.NullString
		err := tx.QueryRowContext(ctx, `SELECT property_name FROM property_info WHERE id = 1`).Scan(&legacyName)
		switch {
		case err == sql.ErrNoRows:
		case err != nil:
			return fmt.Errorf("reading property_info: %w", err)
		case legacyName.Valid && legacyName.String != "":
			name = legacyName.String
		}

		ts := now.UTC().Format(timestampLayout)
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO properties
			(id, name, address, asset_type, status, created_date, last_updated)
			VALUES (1, ?, '', ?, ?, ?, ?)`,
			name, string(domain.AssetOther), string(domain.PropertyActive), ts, ts); err != nil {
			return fmt.Errorf("creating property from property_info: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS dd_items_new`); err != nil {
			return fmt.Errorf("dropping stale dd_items_new: %w", err)
		}
		if _, err := tx.ExecContext(ctx, itemsTableDDL("dd_items_new")); err != nil {
			return fmt.Errorf("creating dd_items_new: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO dd_items_new (
			id, property_id, category, item_name, status,
			responsible_party, due_date, notes, last_updated
		) SELECT
			id, 1, category, item_name, COALESCE(NULLIF(status, ''), 'Not Started'),
			COALESCE(responsible_party, ''), NULLIF(due_date, ''), COALESCE(notes, ''),
			COALESCE(last_updated, ?)
		FROM dd_items`, ts); err != nil {
			return fmt.Errorf("copying dd_items: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DROP TABLE dd_items`); err != nil {
			return fmt.Errorf("dropping legacy dd_items: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `ALTER TABLE dd_items_new RENAME TO dd_items`); err != nil {
			return fmt.Errorf("renaming dd_items_new: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_dd_items_property ON dd_items(property_id)`); err != nil {
			return fmt.Errorf("indexing dd_items.property_id: %w", err)
		}

		if err := ensureDefaultTemplate(ctx, tx, now); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DROP TABLE property_info`); err != nil {
			return fmt.Errorf("dropping property_info: %w", err)
		}
		return nil
	})
}

// seedDefaultProperty creates property 1 with the standard checklist, each
// item due its seed offset after now.
func seedDefaultProperty(ctx context.Context, tx DBTX, now time.Time) error {
	ts := now.UTC().Format(timestampLayout)
	if _, err := tx.ExecContext(ctx, `INSERT INTO properties
		(id, name, address, asset_type, status, created_date, last_updated)
		VALUES (1, ?, '', ?, ?, ?, ?)`,
		domain.DefaultPropertyName, string(domain.AssetOther), string(domain.PropertyActive), ts, ts); err != nil {
		return fmt.Errorf("seeding default property: %w", err)
	}

	for _, seed := range domain.DefaultChecklist {
		due := domain.Cutoff(now, seed.OffsetDays)
		if _, err := tx.ExecContext(ctx, `INSERT INTO dd_items
			(property_id, category, item_name, status, responsible_party, due_date, notes, last_updated)
			VALUES (1, ?, ?, ?, '', ?, ?, ?)`,
			seed.Category, seed.ItemName, string(domain.ItemNotStarted), due, seed.Notes, ts); err != nil {
			return fmt.Errorf("seeding checklist item %q: %w", seed.ItemName, err)
		}
	}
	return nil
}

// ensureDefaultTemplate creates the "Standard DD Checklist" template when no
// default template exists. It prefers id 1 when that id is free.
func ensureDefaultTemplate(ctx context.Context, tx DBTX, now time.Time) error {
	var defaults int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM templates WHERE is_default = 1`).Scan(&defaults); err != nil {
		return fmt.Errorf("checking default template: %w", err)
	}
	if defaults > 0 {
		return nil
	}

	var idTaken int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM templates WHERE id = 1`).Scan(&idTaken); err != nil {
		return fmt.Errorf("checking template id 1: %w", err)
	}

	ts := now.UTC().Format(timestampLayout)
	const description = "Standard due diligence checklist for commercial real estate acquisitions"
	var res sql.Result
	var err error
	if idTaken == 0 {
		res, err = tx.ExecContext(ctx, `INSERT INTO templates (id, name, description, asset_type, is_default, created_date)
			VALUES (1, ?, ?, ?, 1, ?)`, domain.DefaultTemplateName, description, domain.TemplateAssetAll, ts)
	} else {
		res, err = tx.ExecContext(ctx, `INSERT INTO templates (name, description, asset_type, is_default, created_date)
			VALUES (?, ?, ?, 1, ?)`, domain.DefaultTemplateName, description, domain.TemplateAssetAll, ts)
	}
	if err != nil {
		return fmt.Errorf("seeding default template: %w", err)
	}
	templateID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading default template id: %w", err)
	}

	for _, seed := range domain.DefaultChecklist {
		if _, err := tx.ExecContext(ctx, `INSERT INTO template_items
			(template_id, category, item_name, notes, default_due_days)
			VALUES (?, ?, ?, ?, ?)`,
			templateID, seed.Category, seed.ItemName, seed.Notes, seed.OffsetDays); err != nil {
			return fmt.Errorf("seeding template item %q: %w", seed.ItemName, err)
		}
	}
	return nil
}

func tableExists(ctx context.Context, q DBTX, table string) (bool, error) {
	var count int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking table %s: %w", table, err)
	}
	return count > 0, nil
}

func columnExists(ctx context.Context, q DBTX, table, column string) (bool, error) {
	var count int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("inspecting %s columns: %w", table, err)
	}
	return count > 0, nil
}
