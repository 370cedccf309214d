package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/ddtrack/internal/db"
	"github.com/alexanderramin/ddtrack/internal/repository"
	"github.com/alexanderramin/ddtrack/internal/testutil"
)

var fixedNow = time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)

type testEnv struct {
	db         *sql.DB
	uow        db.UnitOfWork
	properties repository.PropertyRepo
	items      repository.ItemRepo
	templates  repository.TemplateRepo
	observer   *recordingObserver

	propertySvc PropertyService
	itemSvc     ItemService
	templateSvc TemplateService
	statsSvc    StatsService
}

// newTestEnv wires every service over a seeded in-memory store with the
// clock pinned to fixedNow.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return wireTestEnv(testutil.NewTestDB(t))
}

// newEmptyTestEnv is newTestEnv without the seeded property.
func newEmptyTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return wireTestEnv(testutil.NewEmptyTestDB(t))
}

func wireTestEnv(database *sql.DB) *testEnv {
	env := &testEnv{
		db:         database,
		uow:        testutil.NewTestUoW(database),
		properties: repository.NewSQLitePropertyRepo(database),
		items:      repository.NewSQLiteItemRepo(database),
		templates:  repository.NewSQLiteTemplateRepo(database),
		observer:   &recordingObserver{},
	}
	opts := []Option{WithClock(func() time.Time { return fixedNow }), WithObserver(env.observer)}
	stats := repository.NewSQLiteStatsRepo(database)

	env.propertySvc = NewPropertyService(env.properties, env.uow, opts...)
	env.itemSvc = NewItemService(env.items, env.properties, opts...)
	env.templateSvc = NewTemplateService(env.templates, env.uow, opts...)
	env.statsSvc = NewStatsService(stats, env.properties, opts...)
	return env
}

func (e *testEnv) countItems(t *testing.T, propertyID int64) int {
	t.Helper()
	var n int
	if err := e.db.QueryRow(`SELECT COUNT(*) FROM dd_items WHERE property_id = ?`, propertyID).Scan(&n); err != nil {
		t.Fatalf("counting items: %v", err)
	}
	return n
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return UseCaseEvent{}
	}
	return r.events[len(r.events)-1]
}
