package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/learnpath-backend/internal/data/repos/testutil"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
)

func newProgressService(env *testEnv) *progressService {
	s := NewProgressService(env.db, env.log, env.paths, env.progress).(*progressService)
	s.now = func() time.Time { return time.Date(2026, 10, 5, 8, 0, 0, 0, time.UTC) }
	return s
}

func TestProgressUpdateScenarioA(t *testing.T) {
	env := newTestEnv(t)
	svc := newProgressService(env)
	bg := context.Background()

	u := testutil.SeedUser(t, bg, env.db, "scenario-a@example.com")
	p := testutil.SeedPath(t, bg, env.db, u.ID, 4)
	ctx := asUser(u.ID)

	before, err := svc.GetPathProgress(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, before.Path.ID)
	assert.Equal(t, 0, before.Progress.CompletedCount)
	assert.Equal(t, 4, before.Progress.TotalMilestones)
	assert.Equal(t, 0, before.Progress.Percentage)

	res, err := svc.Update(ctx, ProgressUpdate{PathID: p.ID, MilestoneIndex: 2, Completed: true})
	require.NoError(t, err)
	require.NotNil(t, res.Entry)
	assert.NotEqual(t, uuid.Nil, res.Entry.ID)
	assert.True(t, res.Entry.Completed)
	require.NotNil(t, res.Entry.CompletedAt)
	assert.Equal(t, 1, res.Progress.CompletedCount)
	assert.Equal(t, 25, res.Progress.Percentage)
	require.NotNil(t, res.Progress.Milestones[2].ProgressID)
	assert.Equal(t, res.Entry.ID, *res.Progress.Milestones[2].ProgressID)

	id := res.Entry.ID
	res, err = svc.Update(ctx, ProgressUpdate{PathID: p.ID, MilestoneIndex: 2, Completed: false, ProgressID: &id})
	require.NoError(t, err)
	assert.Equal(t, id, res.Entry.ID)
	assert.False(t, res.Entry.Completed)
	assert.Nil(t, res.Entry.CompletedAt)
	assert.Equal(t, 0, res.Progress.CompletedCount)
	assert.Equal(t, 0, res.Progress.Percentage)
}

func TestProgressUpdateScenarioB(t *testing.T) {
	env := newTestEnv(t)
	svc := newProgressService(env)
	bg := context.Background()

	u := testutil.SeedUser(t, bg, env.db, "scenario-b@example.com")
	p := testutil.SeedPath(t, bg, env.db, u.ID, 5)
	for _, i := range []int{0, 1, 2} {
		testutil.SeedProgress(t, bg, env.db, u.ID, p.ID, i, true)
	}

	got, err := svc.GetPathProgress(asUser(u.ID), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Progress.CompletedCount)
	assert.Equal(t, 5, got.Progress.TotalMilestones)
	assert.Equal(t, 60, got.Progress.Percentage)
}

func TestProgressUpdateWithoutIDUpserts(t *testing.T) {
	env := newTestEnv(t)
	svc := newProgressService(env)
	bg := context.Background()

	u := testutil.SeedUser(t, bg, env.db, "upsert@example.com")
	p := testutil.SeedPath(t, bg, env.db, u.ID, 3)
	ctx := asUser(u.ID)

	first, err := svc.Update(ctx, ProgressUpdate{PathID: p.ID, MilestoneIndex: 1, Completed: true})
	require.NoError(t, err)
	second, err := svc.Update(ctx, ProgressUpdate{PathID: p.ID, MilestoneIndex: 1, Completed: true})
	require.NoError(t, err)

	assert.Equal(t, first.Entry.ID, second.Entry.ID)
	assert.Equal(t, first.Progress.CompletedCount, second.Progress.CompletedCount)
	assert.Equal(t, 33, second.Progress.Percentage)

	rows, err := env.progress.ListByUserAndPath(dbctx.Of(bg), u.ID, p.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	third, err := svc.Update(ctx, ProgressUpdate{PathID: p.ID, MilestoneIndex: 1, Completed: false})
	require.NoError(t, err)
	assert.Equal(t, first.Entry.ID, third.Entry.ID)
	assert.False(t, third.Entry.Completed)
	assert.Nil(t, third.Entry.CompletedAt)
	assert.Equal(t, 0, third.Progress.CompletedCount)
}

func TestProgressUpdateRejections(t *testing.T) {
	env := newTestEnv(t)
	svc := newProgressService(env)
	bg := context.Background()

	owner := testutil.SeedUser(t, bg, env.db, "owner@example.com")
	intruder := testutil.SeedUser(t, bg, env.db, "intruder@example.com")
	p := testutil.SeedPath(t, bg, env.db, owner.ID, 4)
	other := testutil.SeedPath(t, bg, env.db, owner.ID, 4)
	intruderPath := testutil.SeedPath(t, bg, env.db, intruder.ID, 4)

	entry := testutil.SeedProgress(t, bg, env.db, owner.ID, p.ID, 1, false)
	intruderEntry := testutil.SeedProgress(t, bg, env.db, intruder.ID, intruderPath.ID, 0, false)
	missing := uuid.New()

	cases := []struct {
		name   string
		ctx    context.Context
		req    ProgressUpdate
		status int
		code   string
	}{
		{name: "anonymous", ctx: bg, req: ProgressUpdate{PathID: p.ID}, status: http.StatusUnauthorized, code: "unauthorized"},
		{name: "missing path id", ctx: asUser(owner.ID), req: ProgressUpdate{}, status: http.StatusBadRequest, code: "invalid_path_id"},
		{name: "unknown path", ctx: asUser(owner.ID), req: ProgressUpdate{PathID: uuid.New()}, status: http.StatusNotFound, code: "path_not_found"},
		{name: "foreign path", ctx: asUser(intruder.ID), req: ProgressUpdate{PathID: p.ID, MilestoneIndex: 1, Completed: true}, status: http.StatusForbidden, code: "forbidden"},
		{name: "index too large", ctx: asUser(owner.ID), req: ProgressUpdate{PathID: p.ID, MilestoneIndex: 4, Completed: true}, status: http.StatusBadRequest, code: "invalid_milestone_index"},
		{name: "negative index", ctx: asUser(owner.ID), req: ProgressUpdate{PathID: p.ID, MilestoneIndex: -1, Completed: true}, status: http.StatusBadRequest, code: "invalid_milestone_index"},
		{name: "unknown entry", ctx: asUser(owner.ID), req: ProgressUpdate{PathID: p.ID, MilestoneIndex: 1, Completed: true, ProgressID: &missing}, status: http.StatusNotFound, code: "progress_not_found"},
		{name: "foreign entry", ctx: asUser(owner.ID), req: ProgressUpdate{PathID: p.ID, MilestoneIndex: 0, Completed: true, ProgressID: &intruderEntry.ID}, status: http.StatusForbidden, code: "forbidden"},
		{name: "entry of another path", ctx: asUser(owner.ID), req: ProgressUpdate{PathID: other.ID, MilestoneIndex: 1, Completed: true, ProgressID: &entry.ID}, status: http.StatusBadRequest, code: "progress_mismatch"},
		{name: "entry of another index", ctx: asUser(owner.ID), req: ProgressUpdate{PathID: p.ID, MilestoneIndex: 2, Completed: true, ProgressID: &entry.ID}, status: http.StatusBadRequest, code: "progress_mismatch"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Update(tc.ctx, tc.req)
			requireAPIErr(t, err, tc.status, tc.code)
		})
	}

	rows, err := env.progress.ListByUserAndPaths(dbctx.Of(bg), owner.ID, []uuid.UUID{p.ID, other.ID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Completed)

	rows, err = env.progress.ListByUserAndPath(dbctx.Of(bg), intruder.ID, p.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	got, err := env.progress.GetByID(dbctx.Of(bg), intruderEntry.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
}

func TestGetPathProgressOwnership(t *testing.T) {
	env := newTestEnv(t)
	svc := newProgressService(env)
	bg := context.Background()

	owner := testutil.SeedUser(t, bg, env.db, "gp-owner@example.com")
	other := testutil.SeedUser(t, bg, env.db, "gp-other@example.com")
	p := testutil.SeedPath(t, bg, env.db, owner.ID, 2)

	_, err := svc.GetPathProgress(asUser(other.ID), p.ID)
	requireAPIErr(t, err, http.StatusForbidden, "forbidden")

	_, err = svc.GetPathProgress(asUser(owner.ID), uuid.New())
	requireAPIErr(t, err, http.StatusNotFound, "path_not_found")

	_, err = svc.GetPathProgress(asUser(owner.ID), uuid.Nil)
	requireAPIErr(t, err, http.StatusBadRequest, "invalid_path_id")

	_, err = svc.GetPathProgress(context.Background(), p.ID)
	requireAPIErr(t, err, http.StatusUnauthorized, "unauthorized")
}
