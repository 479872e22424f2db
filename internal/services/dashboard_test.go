package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/learnpath-backend/internal/data/repos/testutil"
)

func TestDashboardAggregates(t *testing.T) {
	env := newTestEnv(t)
	paths := newPathService(env, nil)
	library := NewLibraryService(env.log, env.validator, env.resources)
	svc := NewDashboardService(env.log, paths, env.resources)

	bg := context.Background()
	u := testutil.SeedUser(t, bg, env.db, "dash@example.com")
	done := testutil.SeedPath(t, bg, env.db, u.ID, 5)
	testutil.SeedPath(t, bg, env.db, u.ID, 6)
	for i := 0; i < 5; i++ {
		testutil.SeedProgress(t, bg, env.db, u.ID, done.ID, i, true)
	}

	ctx := asUser(u.ID)
	a, err := library.Add(ctx, AddResourceRequest{Title: "A", ResourceType: "book", DifficultyLevel: "beginner"})
	require.NoError(t, err)
	_, err = library.Add(ctx, AddResourceRequest{Title: "B", ResourceType: "podcast", DifficultyLevel: "advanced"})
	require.NoError(t, err)
	require.NoError(t, library.SetFavorite(ctx, a.ID, true))

	d, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, d.ActivePaths)
	assert.Equal(t, 1, d.CompletedPaths)
	assert.Equal(t, int64(2), d.ResourceCount)
	assert.Equal(t, int64(1), d.FavoriteCount)
	assert.Len(t, d.Paths, 2)
}
