package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/ddtrack/internal/domain"
	"github.com/alexanderramin/ddtrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRepo_ListDefaultFirst(t *testing.T) {
	db := testutil.NewEmptyTestDB(t)
	repo := NewSQLiteTemplateRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestTemplate("Alpha Retail")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTemplate("Zeta Land")))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, domain.DefaultTemplateName, list[0].Name)
	assert.True(t, list[0].IsDefault)
	assert.Equal(t, "Alpha Retail", list[1].Name)
	assert.Equal(t, "Zeta Land", list[2].Name)
}

func TestTemplateRepo_ItemsOrderedByCategoryThenName(t *testing.T) {
	db := testutil.NewEmptyTestDB(t)
	repo := NewSQLiteTemplateRepo(db)
	ctx := context.Background()

	tmpl := testutil.NewTestTemplate("Custom", testutil.WithDescription("hand built"))
	require.NoError(t, repo.Create(ctx, tmpl))
	require.NoError(t, repo.AddItem(ctx, testutil.NewTestTemplateItem(tmpl.ID, "Zoning", "Variance", 12)))
	require.NoError(t, repo.AddItem(ctx, testutil.NewTestTemplateItem(tmpl.ID, "Legal", "Title", 5)))
	require.NoError(t, repo.AddItem(ctx, testutil.NewTestTemplateItem(tmpl.ID, "Legal", "Entity", 9)))

	items, err := repo.ListItems(ctx, tmpl.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Entity", items[0].ItemName)
	assert.Equal(t, "Title", items[1].ItemName)
	assert.Equal(t, "Variance", items[2].ItemName)
	assert.Equal(t, 12, items[2].DefaultDueDays)

	fetched, err := repo.GetByID(ctx, tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "hand built", fetched.Description)
	assert.False(t, fetched.IsDefault)
}

func TestTemplateRepo_DeleteCascadesItems(t *testing.T) {
	db := testutil.NewEmptyTestDB(t)
	repo := NewSQLiteTemplateRepo(db)
	ctx := context.Background()

	tmpl := testutil.NewTestTemplate("Disposable")
	require.NoError(t, repo.Create(ctx, tmpl))
	require.NoError(t, repo.AddItem(ctx, testutil.NewTestTemplateItem(tmpl.ID, "Legal", "Title", 5)))

	require.NoError(t, repo.Delete(ctx, tmpl.ID))

	var orphans int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM template_items WHERE template_id = ?`, tmpl.ID).Scan(&orphans))
	assert.Equal(t, 0, orphans)

	_, err := repo.GetByID(ctx, tmpl.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTemplateRepo_DeleteDefaultIsConstraintViolation(t *testing.T) {
	db := testutil.NewEmptyTestDB(t)
	repo := NewSQLiteTemplateRepo(db)

	err := repo.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConstraintViolation))
}
