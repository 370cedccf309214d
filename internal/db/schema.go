package db

import "fmt"

const propertiesTable = `CREATE TABLE IF NOT EXISTS properties (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	name         TEXT NOT NULL,
	address      TEXT NOT NULL DEFAULT '',
	asset_type   TEXT NOT NULL DEFAULT 'Other'
	             CHECK(asset_type IN ('Office','Retail','Multifamily','Industrial','Mixed-Use','Land','Hospitality','Other')),
	status       TEXT NOT NULL DEFAULT 'Active'
	             CHECK(status IN ('Active','On Hold','Closed','Cancelled')),
	created_date TEXT NOT NULL,
	last_updated TEXT NOT NULL
)`

const templatesTable = `CREATE TABLE IF NOT EXISTS templates (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	name         TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	asset_type   TEXT NOT NULL DEFAULT '',
	is_default   INTEGER NOT NULL DEFAULT 0,
	created_date TEXT NOT NULL
)`

const templateItemsTable = `CREATE TABLE IF NOT EXISTS template_items (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	template_id      INTEGER NOT NULL REFERENCES templates(id) ON DELETE CASCADE,
	category         TEXT NOT NULL,
	item_name        TEXT NOT NULL,
	notes            TEXT NOT NULL DEFAULT '',
	default_due_days INTEGER NOT NULL DEFAULT 30
)`

// itemsTableDDL is shared by the current schema and the legacy rebuild, which
// creates the table under a temporary name before swapping it in.
func itemsTableDDL(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	property_id       INTEGER NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
	category          TEXT NOT NULL,
	item_name         TEXT NOT NULL,
	status            TEXT NOT NULL DEFAULT 'Not Started'
	                  CHECK(status IN ('Not Started','In Progress','Under Review','Complete','Issue Flagged')),
	responsible_party TEXT NOT NULL DEFAULT '',
	due_date          TEXT,
	notes             TEXT NOT NULL DEFAULT '',
	last_updated      TEXT NOT NULL
)`, table)
}

var schema = []string{
	propertiesTable,
	itemsTableDDL("dd_items"),
	`CREATE INDEX IF NOT EXISTS idx_dd_items_property ON dd_items(property_id)`,
	`CREATE INDEX IF NOT EXISTS idx_dd_items_status ON dd_items(status)`,
	`CREATE INDEX IF NOT EXISTS idx_dd_items_due ON dd_items(due_date)`,
	templatesTable,
	templateItemsTable,
	`CREATE INDEX IF NOT EXISTS idx_template_items_template ON template_items(template_id)`,
	`CREATE TRIGGER IF NOT EXISTS trg_templates_protect_default
	BEFORE DELETE ON templates
	WHEN OLD.is_default = 1
	BEGIN
		SELECT RAISE(ABORT, 'default template cannot be deleted');
	END`,
}
