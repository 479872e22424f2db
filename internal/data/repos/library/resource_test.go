package library

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/learnpath-backend/internal/data/repos/testutil"
	types "github.com/yungbote/learnpath-backend/internal/domain"
	domainlib "github.com/yungbote/learnpath-backend/internal/domain/library"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
)

func seedResources(t *testing.T, repo ResourceRepo, dbc dbctx.Context, userID uuid.UUID) []*types.LibraryResource {
	t.Helper()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	rows := []*types.LibraryResource{
		{UserID: userID, Title: "Effective Go", Description: "Idioms", ResourceType: domainlib.ResourceDocumentation, DifficultyLevel: "beginner", CreatedAt: base},
		{UserID: userID, Title: "Concurrency Patterns", Description: "Talk on GO channels", ResourceType: domainlib.ResourceVideo, DifficultyLevel: "advanced", IsFavorite: true, CreatedAt: base.Add(time.Hour)},
		{UserID: userID, Title: "100% coverage", Description: "testing", ResourceType: domainlib.ResourceArticle, DifficultyLevel: "intermediate", CreatedAt: base.Add(2 * time.Hour)},
	}
	created, err := repo.Create(dbc, rows)
	require.NoError(t, err)
	return created
}

func TestResourceRepoListFilters(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewResourceRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "library@example.com")
	other := testutil.SeedUser(t, ctx, tx, "library-other@example.com")
	rows := seedResources(t, repo, dbc, u.ID)
	seedResources(t, repo, dbc, other.ID)

	all, err := repo.ListByUser(dbc, u.ID, types.LibraryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, rows[2].ID, all[0].ID, "newest first")

	cases := []struct {
		name   string
		filter types.LibraryFilter
		want   []uuid.UUID
	}{
		{name: "title search ignores case", filter: types.LibraryFilter{Query: "effective"}, want: []uuid.UUID{rows[0].ID}},
		{name: "description search", filter: types.LibraryFilter{Query: "go channels"}, want: []uuid.UUID{rows[1].ID}},
		{name: "percent is literal", filter: types.LibraryFilter{Query: "100%"}, want: []uuid.UUID{rows[2].ID}},
		{name: "type", filter: types.LibraryFilter{ResourceType: domainlib.ResourceVideo}, want: []uuid.UUID{rows[1].ID}},
		{name: "difficulty", filter: types.LibraryFilter{Difficulty: "beginner"}, want: []uuid.UUID{rows[0].ID}},
		{name: "favorites", filter: types.LibraryFilter{FavoritesOnly: true}, want: []uuid.UUID{rows[1].ID}},
		{name: "no match", filter: types.LibraryFilter{Query: "rust"}, want: nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.ListByUser(dbc, u.ID, tc.filter)
			require.NoError(t, err)
			var ids []uuid.UUID
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestResourceRepoSetFavoriteScopedToOwner(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewResourceRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "fav@example.com")
	intruder := testutil.SeedUser(t, ctx, tx, "fav-intruder@example.com")
	rows := seedResources(t, repo, dbc, u.ID)

	n, err := repo.SetFavorite(dbc, intruder.ID, rows[0].ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	got, err := repo.GetByID(dbc, rows[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsFavorite)

	n, err = repo.SetFavorite(dbc, u.ID, rows[0].ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	total, favorites, err := repo.CountByUser(dbc, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, int64(2), favorites)

	n, err = repo.SetFavorite(dbc, u.ID, rows[1].ID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, favorites, err = repo.CountByUser(dbc, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), favorites)
}
