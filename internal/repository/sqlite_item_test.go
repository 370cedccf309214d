package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/ddtrack/internal/domain"
	"github.com/alexanderramin/ddtrack/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewEmptyTestDB(t)
	props := NewSQLitePropertyRepo(db)
	repo := NewSQLiteItemRepo(db)
	ctx := context.Background()

	p := testutil.NewTestProperty("Tower A")
	require.NoError(t, props.Create(ctx, p))

	due := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	item := testutil.NewTestItem(p.ID, "Legal", "PSA Review",
		testutil.WithDueDate(due),
		testutil.WithResponsible("Counsel"),
		testutil.WithNotes("redline v2"))
	require.NoError(t, repo.Create(ctx, item))
	assert.NotZero(t, item.ID)

	fetched, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, fetched.PropertyID)
	assert.Equal(t, "Legal", fetched.Category)
	assert.Equal(t, "PSA Review", fetched.ItemName)
	assert.Equal(t, domain.ItemNotStarted, fetched.Status)
	assert.Equal(t, "Counsel", fetched.ResponsibleParty)
	assert.Equal(t, "redline v2", fetched.Notes)
	require.NotNil(t, fetched.DueDate)
	assert.Equal(t, "2025-05-01", fetched.DueDate.Format(domain.DateLayout))
}

func TestItemRepo_NoDueDateStoredAsNull(t *testing.T) {
	db := testutil.NewEmptyTestDB(t)
	props := NewSQLitePropertyRepo(db)
	repo := NewSQLiteItemRepo(db)
	ctx := context.Background()

	p := testutil.NewTestProperty("Tower A")
	require.NoError(t, props.Create(ctx, p))
	item := testutil.NewTestItem(p.ID, "Legal", "Entity Docs")
	require.NoError(t, repo.Create(ctx, item))

	var nulls int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM dd_items WHERE id = ? AND due_date IS NULL`, item.ID).Scan(&nulls))
	assert.Equal(t, 1, nulls)

	fetched, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.DueDate)
}

func TestItemRepo_CreateRequiresExistingProperty(t *testing.T) {
	db := testutil.NewEmptyTestDB(t)
	repo := NewSQLiteItemRepo(db)

	err := repo.Create(context.Background(), testutil.NewTestItem(77, "Legal", "Orphan"))
	assert.Error(t, err, "foreign key should reject unknown property")
}

func TestItemRepo_ListFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteItemRepo(db)
	ctx := context.Background()

	all, err := repo.List(ctx, domain.ItemFilter{PropertyID: 1, Category: domain.FilterAll, Status: domain.FilterAll})
	require.NoError(t, err)
	assert.Len(t, all, 28)
	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		ordered := prev.Category < cur.Category ||
			(prev.Category == cur.Category && prev.ItemName <= cur.ItemName)
		assert.True(t, ordered, "items must be ordered by category then name: %q/%q before %q/%q",
			prev.Category, prev.ItemName, cur.Category, cur.ItemName)
	}

	env, err := repo.List(ctx, domain.ItemFilter{PropertyID: 1, Category: "Environmental"})
	require.NoError(t, err)
	assert.Len(t, env, 5)

	_, err = db.Exec(`UPDATE dd_items SET status = 'Complete' WHERE item_name IN ('Phase I ESA', 'Rent Roll Verification')`)
	require.NoError(t, err)

	done, err := repo.List(ctx, domain.ItemFilter{PropertyID: 1, Status: "Complete"})
	require.NoError(t, err)
	require.Len(t, done, 2)
	assert.Equal(t, "Phase I ESA", done[0].ItemName)

	both, err := repo.List(ctx, domain.ItemFilter{PropertyID: 1, Category: "Environmental", Status: "Complete"})
	require.NoError(t, err)
	assert.Len(t, both, 1)
}

func TestItemRepo_ListCategories(t *testing.T) {
	db := testutil.NewTestDB(t)
	props := NewSQLitePropertyRepo(db)
	repo := NewSQLiteItemRepo(db)
	ctx := context.Background()

	want := []string{
		"Environmental", "Financial", "Insurance", "Lease Review",
		"Legal", "Physical/Engineering", "Title & Survey", "Zoning",
	}
	got, err := repo.ListCategories(ctx, 1)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}

	p := testutil.NewTestProperty("Annex")
	require.NoError(t, props.Create(ctx, p))
	require.NoError(t, repo.Create(ctx, testutil.NewTestItem(p.ID, "Capital Plan", "Roof reserve")))

	scoped, err := repo.ListCategories(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Capital Plan"}, scoped)

	everywhere, err := repo.ListCategories(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, everywhere, 9)
}

func TestItemRepo_UpdateTouchesOnlyMutableFields(t *testing.T) {
	db := testutil.NewEmptyTestDB(t)
	props := NewSQLitePropertyRepo(db)
	repo := NewSQLiteItemRepo(db)
	ctx := context.Background()

	p := testutil.NewTestProperty("Tower A")
	require.NoError(t, props.Create(ctx, p))
	item := testutil.NewTestItem(p.ID, "Legal", "PSA Review", testutil.WithDueDate(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, repo.Create(ctx, item))

	item.Category = "Changed"
	item.ItemName = "Changed"
	item.Status = domain.ItemIssueFlagged
	item.ResponsibleParty = "Seller"
	item.DueDate = nil
	item.Notes = "missing exhibit"
	item.UpdatedAt = time.Time{}
	require.NoError(t, repo.Update(ctx, item))

	fetched, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Legal", fetched.Category)
	assert.Equal(t, "PSA Review", fetched.ItemName)
	assert.Equal(t, domain.ItemIssueFlagged, fetched.Status)
	assert.Equal(t, "Seller", fetched.ResponsibleParty)
	assert.Nil(t, fetched.DueDate)
	assert.Equal(t, "missing exhibit", fetched.Notes)
	assert.WithinDuration(t, time.Now(), fetched.UpdatedAt, time.Minute)
}

func TestItemRepo_DeleteMissing(t *testing.T) {
	db := testutil.NewEmptyTestDB(t)
	repo := NewSQLiteItemRepo(db)

	err := repo.Delete(context.Background(), 12345)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestItemRepo_DeleteByProperty(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteItemRepo(db)

	n, err := repo.DeleteByProperty(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(28), n)
}
