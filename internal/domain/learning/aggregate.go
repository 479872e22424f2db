package learning

import (
	"math"

	"github.com/google/uuid"
)

// Progress summarizes a path's milestones against a user's entries.
type Progress struct {
	CompletedCount  int              `json:"completedCount"`
	TotalMilestones int              `json:"totalMilestones"`
	Percentage      int              `json:"percentage"`
	Milestones      []MilestoneState `json:"milestones"`
}

// MilestoneState is the per-index view used by clients to render checkboxes
// and to address an existing entry.
type MilestoneState struct {
	Index      int        `json:"index"`
	Completed  bool       `json:"completed"`
	ProgressID *uuid.UUID `json:"progressId,omitempty"`
}

// AggregateProgress computes completion for milestones from entries. Several
// entries at one index count once: the milestone is complete if any of them is.
// Entries outside [0, len(milestones)) are ignored.
func AggregateProgress(milestones []Milestone, entries []*ProgressEntry) Progress {
	total := len(milestones)
	states := make([]MilestoneState, total)
	for i := range states {
		states[i].Index = i
	}
	for _, e := range entries {
		if e == nil || e.MilestoneIndex < 0 || e.MilestoneIndex >= total {
			continue
		}
		st := &states[e.MilestoneIndex]
		if st.ProgressID == nil || (e.Completed && !st.Completed) {
			id := e.ID
			st.ProgressID = &id
		}
		st.Completed = st.Completed || e.Completed
	}

	completed := 0
	for _, st := range states {
		if st.Completed {
			completed++
		}
	}
	return Progress{
		CompletedCount:  completed,
		TotalMilestones: total,
		Percentage:      Percentage(completed, total),
		Milestones:      states,
	}
}

// Percentage is round(completed/total*100), and 0 when total is 0.
func Percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
