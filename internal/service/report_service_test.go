package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/ddtrack/internal/domain"
	"github.com/alexanderramin/ddtrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportService(env *testEnv) ReportService {
	return NewReportService(env.properties, env.statsSvc,
		WithClock(func() time.Time { return fixedNow }), WithObserver(env.observer))
}

func TestReportService_PropertyReport(t *testing.T) {
	env := newEmptyTestEnv(t)
	ctx := context.Background()

	p := testutil.NewTestProperty("Oak Plaza", testutil.WithAssetType(domain.AssetRetail))
	require.NoError(t, env.propertySvc.Create(ctx, p))
	require.NoError(t, env.itemSvc.Create(ctx, testutil.NewTestItem(p.ID, "Legal", "PSA Review",
		testutil.WithItemStatus(domain.ItemIssueFlagged), testutil.WithNotes("seller pushback"))))
	require.NoError(t, env.itemSvc.Create(ctx, testutil.NewTestItem(p.ID, "Financial", "Rent Roll",
		testutil.WithDueIn(fixedNow, 2), testutil.WithResponsible("Analyst"))))

	out, err := newReportService(env).PropertyReport(ctx, p.ID, 7)
	require.NoError(t, err)
	assert.Contains(t, out, "## Oak Plaza")
	assert.Contains(t, out, "**Generated:** 2025-06-02 14:00:00")
	assert.Contains(t, out, "- **Total Items:** 2")
	assert.Contains(t, out, "### Legal: PSA Review")
	assert.Contains(t, out, "- **Notes:** seller pushback")
	assert.Contains(t, out, "  - Due: 2025-06-04")
	assert.Equal(t, "property-report", env.observer.last().Name)
}

func TestReportService_PropertyReport_NotFound(t *testing.T) {
	env := newEmptyTestEnv(t)

	_, err := newReportService(env).PropertyReport(context.Background(), 42, 7)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.False(t, env.observer.last().Success)
}

func TestReportService_PortfolioReport(t *testing.T) {
	env := newEmptyTestEnv(t)
	ctx := context.Background()

	busy := testutil.NewTestProperty("Busy Tower")
	require.NoError(t, env.propertySvc.Create(ctx, busy))
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, env.itemSvc.Create(ctx, testutil.NewTestItem(busy.ID, "Legal", name, testutil.WithDueIn(fixedNow, 1))))
	}
	closed := testutil.NewTestProperty("Old Mill", testutil.WithPropertyStatus(domain.PropertyClosed))
	require.NoError(t, env.propertySvc.Create(ctx, closed))

	out, err := newReportService(env).PortfolioReport(ctx, 3, 30)
	require.NoError(t, err)
	assert.Contains(t, out, "- **Active Properties:** 1")
	assert.Contains(t, out, "- **Inactive Properties:** 1")
	assert.Contains(t, out, "- **Busy Tower** (Other): 5 open items due")
	assert.Contains(t, out, "### Due within 3 days (5)")
	assert.NotContains(t, out, "Old Mill")
}
