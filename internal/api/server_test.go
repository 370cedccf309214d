package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/ddtrack/internal/domain"
	"github.com/alexanderramin/ddtrack/internal/repository"
	"github.com/alexanderramin/ddtrack/internal/service"
	"github.com/alexanderramin/ddtrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var fixedNow = time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)

type harness struct {
	server *Server
	svc    Services
	logs   *observer.ObservedLogs
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	database := testutil.NewEmptyTestDB(t)
	uow := testutil.NewTestUoW(database)
	props := repository.NewSQLitePropertyRepo(database)
	opts := []service.Option{service.WithClock(func() time.Time { return fixedNow })}

	stats := service.NewStatsService(repository.NewSQLiteStatsRepo(database), props, opts...)
	svc := Services{
		Properties: service.NewPropertyService(props, uow, opts...),
		Items:      service.NewItemService(repository.NewSQLiteItemRepo(database), props, opts...),
		Templates:  service.NewTemplateService(repository.NewSQLiteTemplateRepo(database), uow, opts...),
		Stats:      stats,
		Reports:    service.NewReportService(props, stats, opts...),
	}
	core, logs := observer.New(zapcore.InfoLevel)
	return &harness{server: New(svc, WithLogger(zap.New(core))), svc: svc, logs: logs}
}

func (h *harness) do(t *testing.T, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	rec := httptest.NewRecorder()
	h.server.ServeHTTP(rec, req)
	return rec
}

func (h *harness) property(t *testing.T, name string, opts ...testutil.PropertyOption) *domain.Property {
	t.Helper()
	p := testutil.NewTestProperty(name, opts...)
	require.NoError(t, h.svc.Properties.Create(context.Background(), p))
	return p
}

func (h *harness) item(t *testing.T, propertyID int64, category, name string, opts ...testutil.ItemOption) *domain.ChecklistItem {
	t.Helper()
	it := testutil.NewTestItem(propertyID, category, name, opts...)
	require.NoError(t, h.svc.Items.Create(context.Background(), it))
	return it
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	entries := h.logs.FilterMessage("access").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "/healthz", entries[0].ContextMap()["path"])
	assert.NotEmpty(t, entries[0].ContextMap()["request_id"])
}

func TestPropertyEndpoints(t *testing.T) {
	h := newHarness(t)
	p := h.property(t, "Oak Plaza", testutil.WithAssetType(domain.AssetRetail))
	h.item(t, p.ID, "Legal", "PSA Review", testutil.WithItemStatus(domain.ItemComplete))
	h.item(t, p.ID, "Legal", "Entity Formation", testutil.WithItemStatus(domain.ItemIssueFlagged))
	h.item(t, p.ID, "Zoning", "CO", testutil.WithDueIn(fixedNow, 2))

	rec := h.do(t, http.MethodGet, "/api/properties", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]propertyDTO](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "Retail", list[0].AssetType)

	rec = h.do(t, http.MethodGet, "/api/properties/"+itoa(p.ID)+"/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[overallStatsDTO](t, rec)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Complete)
	assert.Equal(t, 1, stats.Flagged)
	assert.InDelta(t, 33.33, stats.CompletionPct, 0.01)

	rec = h.do(t, http.MethodGet, "/api/properties/"+itoa(p.ID)+"/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cats := decode[[]categorySummaryDTO](t, rec)
	require.Len(t, cats, 2)
	assert.Equal(t, "Legal", cats[0].Category)
	assert.Equal(t, 50.0, cats[0].CompletionPct)

	rec = h.do(t, http.MethodGet, "/api/properties/"+itoa(p.ID)+"/items?category=Legal&status=All", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]itemDTO](t, rec), 2)

	rec = h.do(t, http.MethodGet, "/api/properties/"+itoa(p.ID)+"/flagged", "")
	flagged := decode[[]itemDTO](t, rec)
	require.Len(t, flagged, 1)
	assert.Equal(t, "Entity Formation", flagged[0].ItemName)

	rec = h.do(t, http.MethodGet, "/api/properties/"+itoa(p.ID)+"/due-soon?days=1", "")
	assert.Empty(t, decode[[]itemDTO](t, rec))
	rec = h.do(t, http.MethodGet, "/api/properties/"+itoa(p.ID)+"/due-soon", "")
	due := decode[[]itemDTO](t, rec)
	require.Len(t, due, 1)
	assert.Equal(t, "2025-06-04", due[0].DueDate)
}

func TestPropertyReportEndpoint(t *testing.T) {
	h := newHarness(t)
	p := h.property(t, "Oak Plaza")

	rec := h.do(t, http.MethodGet, "/api/properties/"+itoa(p.ID)+"/report", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/markdown"))
	assert.Contains(t, rec.Body.String(), "# Due Diligence Status Report\n## Oak Plaza")
}

func TestErrorMapping(t *testing.T) {
	h := newHarness(t)
	p := h.property(t, "Oak Plaza")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown property", http.MethodGet, "/api/properties/99", "", http.StatusNotFound},
		{"unknown property stats", http.MethodGet, "/api/properties/99/stats", "", http.StatusNotFound},
		{"unknown property items", http.MethodGet, "/api/properties/99/items", "", http.StatusNotFound},
		{"bad id", http.MethodGet, "/api/properties/abc", "", http.StatusBadRequest},
		{"bad days", http.MethodGet, "/api/portfolio/risk?days=-2", "", http.StatusBadRequest},
		{"unknown template", http.MethodPost, "/api/properties/" + itoa(p.ID) + "/templates/77/apply", "", http.StatusNotFound},
		{"unknown item", http.MethodPatch, "/api/items/404", `{"status":"Complete"}`, http.StatusNotFound},
		{"bad body", http.MethodPatch, "/api/items/1", `{"colour":"red"}`, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := h.do(t, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
			body := decode[errorResponse](t, rec)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusConflict, statusFor(domain.ErrConstraintViolation))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}

func TestPatchItem(t *testing.T) {
	h := newHarness(t)
	p := h.property(t, "Oak Plaza")
	it := h.item(t, p.ID, "Legal", "PSA Review", testutil.WithResponsible("Counsel"), testutil.WithNotes("draft"))

	rec := h.do(t, http.MethodPatch, "/api/items/"+itoa(it.ID), `{"status":"Under Review","due_date":"2025-07-01"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[itemDTO](t, rec)
	assert.Equal(t, "Under Review", got.Status)
	assert.Equal(t, "2025-07-01", got.DueDate)
	assert.Equal(t, "Counsel", got.ResponsibleParty, "omitted fields are kept")
	assert.Equal(t, "draft", got.Notes)
	assert.Equal(t, "2025-06-02T14:00:00Z", got.LastUpdated)

	rec = h.do(t, http.MethodPatch, "/api/items/"+itoa(it.ID), `{"due_date":""}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[itemDTO](t, rec).DueDate, "empty due_date clears it")

	rec = h.do(t, http.MethodPatch, "/api/items/"+itoa(it.ID), `{"status":"Done"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(t, http.MethodPatch, "/api/items/"+itoa(it.ID), `{"due_date":"07/01/2025"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(t, http.MethodPatch, "/api/items/"+itoa(it.ID), `{"status":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = h.do(t, http.MethodGet, "/api/properties/"+itoa(p.ID)+"/items", "")
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode[[]itemDTO](t, rec)
	require.Len(t, items, 1)
	assert.Equal(t, "Under Review", items[0].Status, "blank status leaves the item unchanged")
}

func TestApplyTemplateAndPortfolio(t *testing.T) {
	h := newHarness(t)
	tower := h.property(t, "Tower A", testutil.WithAssetType(domain.AssetOffice))
	h.property(t, "Old Mill", testutil.WithPropertyStatus(domain.PropertyClosed))

	rec := h.do(t, http.MethodGet, "/api/templates", "")
	templates := decode[[]templateDTO](t, rec)
	require.Len(t, templates, 1)
	assert.True(t, templates[0].IsDefault)

	rec = h.do(t, http.MethodPost, "/api/properties/"+itoa(tower.ID)+"/templates/"+itoa(templates[0].ID)+"/apply", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 28, decode[applyResultDTO](t, rec).ItemsAdded)

	rec = h.do(t, http.MethodGet, "/api/portfolio", "")
	sum := decode[portfolioSummaryDTO](t, rec)
	assert.Equal(t, 1, sum.ActiveProperties)
	assert.Equal(t, 1, sum.InactiveProperties)
	assert.Equal(t, 28, sum.TotalItems)

	rec = h.do(t, http.MethodGet, "/api/portfolio/properties", "")
	rows := decode[[]propertyStatsDTO](t, rec)
	require.Len(t, rows, 1)
	assert.Equal(t, "Tower A", rows[0].Name)
	assert.Equal(t, 28, rows[0].TotalItems)

	// Purchase Agreement Review (3 days) and Rent Roll Verification (5 days)
	// fall inside a 5-day window; the threshold needs five.
	rec = h.do(t, http.MethodGet, "/api/portfolio/risk?days=5", "")
	assert.Empty(t, decode[[]propertyRiskDTO](t, rec))
	rec = h.do(t, http.MethodGet, "/api/portfolio/risk?days=10", "")
	risks := decode[[]propertyRiskDTO](t, rec)
	require.Len(t, risks, 1)
	assert.Equal(t, "Tower A", risks[0].PropertyName)

	rec = h.do(t, http.MethodGet, "/api/portfolio/deadlines?days=3", "")
	deadlines := decode[[]deadlineDTO](t, rec)
	require.Len(t, deadlines, 1)
	assert.Equal(t, "Purchase Agreement Review", deadlines[0].ItemName)
	assert.Equal(t, "urgent", deadlines[0].Urgency)
	assert.Equal(t, 3, deadlines[0].DaysUntil)

	rec = h.do(t, http.MethodGet, "/api/portfolio/heatmap", "")
	heat := decode[heatmapDTO](t, rec)
	assert.Equal(t, []string{"Tower A"}, heat.Properties)
	require.Len(t, heat.Categories, 8)
	require.NotNil(t, heat.Cells[0][0])
	assert.Equal(t, 0.0, *heat.Cells[0][0])

	rec = h.do(t, http.MethodGet, "/api/portfolio/flagged", "")
	assert.Empty(t, decode[[]propertyItemDTO](t, rec))
}

func itoa(id int64) string {
	return fmt.Sprint(id)
}
