package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/ddtrack/internal/config"
	"github.com/alexanderramin/ddtrack/internal/domain"
	"github.com/alexanderramin/ddtrack/internal/repository"
	"github.com/alexanderramin/ddtrack/internal/service"
	"github.com/alexanderramin/ddtrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)

// testApp wires a full App backed by an empty in-memory DB.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewEmptyTestDB(t)
	uow := testutil.NewTestUoW(database)
	props := repository.NewSQLitePropertyRepo(database)
	clock := func() time.Time { return fixedNow }
	opts := []service.Option{service.WithClock(clock)}
	stats := service.NewStatsService(repository.NewSQLiteStatsRepo(database), props, opts...)

	return &App{
		Properties: service.NewPropertyService(props, uow, opts...),
		Items:      service.NewItemService(repository.NewSQLiteItemRepo(database), props, opts...),
		Templates:  service.NewTemplateService(repository.NewSQLiteTemplateRepo(database), uow, opts...),
		Stats:      stats,
		Reports:    service.NewReportService(props, stats, opts...),
		Config: &config.Config{
			Risk:      config.RiskConfig{Threshold: 5, Days: 3},
			DueSoon:   config.WindowConfig{Days: 7},
			Deadlines: config.WindowConfig{Days: 30},
		},
		Now:           clock,
		IsInteractive: func() bool { return false },
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func seedProperty(t *testing.T, app *App, name string) *domain.Property {
	t.Helper()
	p := testutil.NewTestProperty(name)
	require.NoError(t, app.Properties.Create(context.Background(), p))
	return p
}

func TestPropertyAddListShow(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "property", "add", "--name", "Oak Plaza", "--type", "Retail", "--address", "9 Elm St")
	require.NoError(t, err)
	assert.Contains(t, out, "Created property Oak Plaza [1]")

	out, err = executeCmd(t, app, "property", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Oak Plaza")
	assert.Contains(t, out, "Retail")
	assert.Contains(t, out, "9 Elm St")

	out, err = executeCmd(t, app, "property", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "0 items, 0 complete, 0 flagged")
}

func TestPropertyAdd_InvalidType(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "property", "add", "--name", "X", "--type", "Castle")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestPropertyUpdate_OnlyChangedFlags(t *testing.T) {
	app := testApp(t)
	p := seedProperty(t, app, "Oak Plaza")

	_, err := executeCmd(t, app, "property", "update", "1", "--status", "On Hold")
	require.NoError(t, err)

	got, err := app.Properties.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oak Plaza", got.Name)
	assert.Equal(t, domain.PropertyOnHold, got.Status)
}

func TestPropertyRemove_Confirmation(t *testing.T) {
	app := testApp(t)
	p := seedProperty(t, app, "Oak Plaza")
	ctx := context.Background()
	require.NoError(t, app.Items.Create(ctx, testutil.NewTestItem(p.ID, "Legal", "PSA Review")))

	_, err := executeCmd(t, app, "property", "remove", "1")
	require.Error(t, err, "non-interactive removal needs --yes")

	app.Confirm = func(string) (bool, error) { return false, nil }
	out, err := executeCmd(t, app, "property", "remove", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")

	out, err = executeCmd(t, app, "property", "remove", "1", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted property Oak Plaza [1]")

	_, err = app.Properties.GetByID(ctx, p.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	cats, err := app.Items.ListCategories(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestItemLifecycle(t *testing.T) {
	app := testApp(t)
	seedProperty(t, app, "Oak Plaza")

	out, err := executeCmd(t, app, "item", "add", "--property", "1", "--category", "Legal", "--name", "PSA Review", "--due", "2025-06-04", "--responsible", "Counsel")
	require.NoError(t, err)
	assert.Contains(t, out, "Added item PSA Review [1] to Legal")

	out, err = executeCmd(t, app, "item", "list", "--property", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "PSA Review")
	assert.Contains(t, out, "2025-06-04 In 2d")

	out, err = executeCmd(t, app, "item", "update", "1", "--status", "Complete")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated PSA Review [1]: Complete")

	item, err := app.Items.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Counsel", item.ResponsibleParty, "unchanged flags keep their values")
	assert.Equal(t, "2025-06-04", domain.FormatDate(item.DueDate))

	_, err = executeCmd(t, app, "item", "update", "1", "--due", "")
	require.NoError(t, err)
	item, err = app.Items.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, item.DueDate)

	out, err = executeCmd(t, app, "item", "list", "--property", "1", "--status", "Not Started")
	require.NoError(t, err)
	assert.Contains(t, out, "No items found.")

	out, err = executeCmd(t, app, "item", "categories")
	require.NoError(t, err)
	assert.Equal(t, "Legal\n", out)

	_, err = executeCmd(t, app, "item", "remove", "1", "-y")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "item", "show", "1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestItemAdd_BadDate(t *testing.T) {
	app := testApp(t)
	seedProperty(t, app, "Oak Plaza")

	_, err := executeCmd(t, app, "item", "add", "--property", "1", "--category", "Legal", "--name", "X", "--due", "June 4")
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestTemplateApplySaveExportImport(t *testing.T) {
	app := testApp(t)
	seedProperty(t, app, "Tower A")
	dir := t.TempDir()

	out, err := executeCmd(t, app, "template", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Standard DD Checklist (default)")

	out, err = executeCmd(t, app, "template", "apply", "--property", "1", "--template", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 28 items to property 1")

	out, err = executeCmd(t, app, "template", "save", "--property", "1", "--name", "Tower Copy")
	require.NoError(t, err)
	assert.Contains(t, out, "with 28 items")

	file := filepath.Join(dir, "tower.yaml")
	_, err = executeCmd(t, app, "template", "export", "2", "--out", file)
	require.NoError(t, err)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Tower Copy")

	out, err = executeCmd(t, app, "template", "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported template Tower Copy [3]")

	out, err = executeCmd(t, app, "template", "show", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Items 28")
	assert.Contains(t, out, "+7d")

	_, err = executeCmd(t, app, "template", "remove", "1", "--yes")
	assert.True(t, errors.Is(err, domain.ErrConstraintViolation))
	_, err = executeCmd(t, app, "template", "remove", "3", "--yes")
	require.NoError(t, err)
}

func TestDashboard(t *testing.T) {
	app := testApp(t)
	p := seedProperty(t, app, "Oak Plaza")
	ctx := context.Background()
	require.NoError(t, app.Items.Create(ctx, testutil.NewTestItem(p.ID, "Legal", "Entity Formation", testutil.WithItemStatus(domain.ItemIssueFlagged))))
	require.NoError(t, app.Items.Create(ctx, testutil.NewTestItem(p.ID, "Zoning", "CO Review", testutil.WithDueIn(fixedNow, 10))))

	out, err := executeCmd(t, app, "dashboard", "--property", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Entity Formation")
	assert.Contains(t, out, "Nothing due.")

	out, err = executeCmd(t, app, "dashboard", "-p", "1", "--days", "14")
	require.NoError(t, err)
	assert.Contains(t, out, "DUE IN THE NEXT 14 DAYS")
	assert.Contains(t, out, "CO Review")
}

func TestPortfolioCommands(t *testing.T) {
	app := testApp(t)
	p := seedProperty(t, app, "Tower A")
	ctx := context.Background()
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, app.Items.Create(ctx, testutil.NewTestItem(p.ID, "Legal", name, testutil.WithDueIn(fixedNow, 2))))
	}

	out, err := executeCmd(t, app, "portfolio")
	require.NoError(t, err)
	assert.Contains(t, out, "Tower A")
	assert.Contains(t, out, "PORTFOLIO")

	out, err = executeCmd(t, app, "portfolio", "risk")
	require.NoError(t, err)
	assert.Contains(t, out, "5+ OPEN ITEMS DUE WITHIN 3 DAYS")
	assert.Contains(t, out, "Tower A")

	out, err = executeCmd(t, app, "portfolio", "risk", "--days", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "No properties at risk.")

	out, err = executeCmd(t, app, "portfolio", "deadlines")
	require.NoError(t, err)
	assert.Contains(t, out, "Due within 3 days (5)")

	out, err = executeCmd(t, app, "portfolio", "heatmap")
	require.NoError(t, err)
	assert.Contains(t, out, "LEGAL")

	out, err = executeCmd(t, app, "portfolio", "flagged")
	require.NoError(t, err)
	assert.Contains(t, out, "No issues flagged")
}

func TestReport(t *testing.T) {
	app := testApp(t)
	seedProperty(t, app, "Oak Plaza")

	_, err := executeCmd(t, app, "report")
	require.Error(t, err)
	_, err = executeCmd(t, app, "report", "--property", "1", "--portfolio")
	require.Error(t, err)

	out, err := executeCmd(t, app, "report", "--property", "1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Due Diligence Status Report\n## Oak Plaza"))

	file := filepath.Join(t.TempDir(), "portfolio.md")
	out, err = executeCmd(t, app, "report", "--portfolio", "--out", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+file)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Portfolio Due Diligence Report")

	out, err = executeCmd(t, app, "report", "--property", "1", "--render")
	require.NoError(t, err)
	assert.Contains(t, out, "Oak Plaza")
	assert.Contains(t, out, "Executive Summary")
}

func TestRootCmd_LoadsConfigAndRunsSetup(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	dbPath := filepath.Join(dir, "custom.db")

	var got *config.Config
	app := &App{
		Setup: func(cfg *config.Config) error {
			got = cfg
			return errors.New("stop here")
		},
	}

	_, err := executeCmd(t, app, "--db", dbPath, "--log-level", "debug", "template", "list")
	require.EqualError(t, err, "stop here")
	require.NotNil(t, got)
	assert.Equal(t, dbPath, got.DB.Path)
	assert.Equal(t, "debug", got.Log.Level)
}

func TestParseID(t *testing.T) {
	id, err := parseID("42", "property")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"0", "-1", "abc", ""} {
		_, err := parseID(raw, "property")
		assert.True(t, errors.Is(err, domain.ErrValidation), raw)
	}
}
