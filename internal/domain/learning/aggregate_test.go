package learning

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func milestones(n int) []Milestone {
	out := make([]Milestone, n)
	for i := range out {
		out[i] = Milestone{Title: "m"}
	}
	return out
}

func entry(index int, completed bool) *ProgressEntry {
	return &ProgressEntry{ID: uuid.New(), MilestoneIndex: index, Completed: completed}
}

func TestAggregateProgressNoMilestones(t *testing.T) {
	p := AggregateProgress(nil, []*ProgressEntry{entry(0, true)})
	assert.Equal(t, 0, p.CompletedCount)
	assert.Equal(t, 0, p.TotalMilestones)
	assert.Equal(t, 0, p.Percentage)
	assert.Empty(t, p.Milestones)
}

func TestAggregateProgressCounts(t *testing.T) {
	cases := []struct {
		name      string
		total     int
		completed []int
		wantCount int
		wantPct   int
	}{
		{name: "none of four", total: 4, wantCount: 0, wantPct: 0},
		{name: "one of four", total: 4, completed: []int{2}, wantCount: 1, wantPct: 25},
		{name: "three of five", total: 5, completed: []int{0, 1, 2}, wantCount: 3, wantPct: 60},
		{name: "one of three rounds down", total: 3, completed: []int{1}, wantCount: 1, wantPct: 33},
		{name: "two of three rounds up", total: 3, completed: []int{0, 2}, wantCount: 2, wantPct: 67},
		{name: "one of eight rounds half up", total: 8, completed: []int{7}, wantCount: 1, wantPct: 13},
		{name: "all of six", total: 6, completed: []int{0, 1, 2, 3, 4, 5}, wantCount: 6, wantPct: 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var entries []*ProgressEntry
			for _, i := range tc.completed {
				entries = append(entries, entry(i, true))
			}
			p := AggregateProgress(milestones(tc.total), entries)
			assert.Equal(t, tc.wantCount, p.CompletedCount)
			assert.Equal(t, tc.total, p.TotalMilestones)
			assert.Equal(t, tc.wantPct, p.Percentage)
		})
	}
}

func TestAggregateProgressDedupesByIndex(t *testing.T) {
	done := entry(1, true)
	entries := []*ProgressEntry{
		entry(1, false),
		done,
		entry(1, true),
		entry(3, false),
	}
	p := AggregateProgress(milestones(4), entries)

	assert.Equal(t, 1, p.CompletedCount)
	assert.Equal(t, 25, p.Percentage)
	require.Len(t, p.Milestones, 4)
	assert.True(t, p.Milestones[1].Completed)
	require.NotNil(t, p.Milestones[1].ProgressID)
	assert.Equal(t, done.ID, *p.Milestones[1].ProgressID)
	assert.False(t, p.Milestones[3].Completed)
	assert.NotNil(t, p.Milestones[3].ProgressID)
	assert.Nil(t, p.Milestones[0].ProgressID)
}

func TestAggregateProgressIgnoresOutOfRange(t *testing.T) {
	p := AggregateProgress(milestones(2), []*ProgressEntry{entry(-1, true), entry(2, true), nil})
	assert.Equal(t, 0, p.CompletedCount)
	assert.Equal(t, 0, p.Percentage)
}

func TestPercentageBounds(t *testing.T) {
	assert.Equal(t, 0, Percentage(0, 0))
	assert.Equal(t, 0, Percentage(3, 0))
	assert.Equal(t, 100, Percentage(7, 7))
}

func TestToggle(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	e := &ProgressEntry{}

	e.Toggle(true, now)
	require.NotNil(t, e.CompletedAt)
	assert.True(t, e.Completed)
	assert.Equal(t, now, *e.CompletedAt)
	assert.Equal(t, now, e.UpdatedAt)

	later := now.Add(time.Hour)
	e.Toggle(false, later)
	assert.False(t, e.Completed)
	assert.Nil(t, e.CompletedAt)
	assert.Equal(t, later, e.UpdatedAt)
}

func TestDifficultyValid(t *testing.T) {
	assert.True(t, DifficultyIntermediate.Valid())
	assert.False(t, Difficulty("expert").Valid())
}
