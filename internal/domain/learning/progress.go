package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressEntry is the completion state of one milestone for one user.
// (user_id, learning_path_id, milestone_index) is unique.
type ProgressEntry struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_progress_milestone,priority:1" json:"user_id"`
	LearningPathID uuid.UUID  `gorm:"type:uuid;not null;column:learning_path_id;uniqueIndex:idx_user_progress_milestone,priority:2;index" json:"learning_path_id"`
	MilestoneIndex int        `gorm:"column:milestone_index;not null;uniqueIndex:idx_user_progress_milestone,priority:3" json:"milestone_index"`
	Completed      bool       `gorm:"column:completed;not null" json:"completed"`
	CompletedAt    *time.Time `gorm:"column:completed_at" json:"completed_at"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null" json:"updated_at"`
}

func (ProgressEntry) TableName() string { return "user_progress" }

func (e *ProgressEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Toggle applies a completion flip at now. completed_at follows the flag.
func (e *ProgressEntry) Toggle(completed bool, now time.Time) {
	e.Completed = completed
	e.UpdatedAt = now
	if completed {
		at := now
		e.CompletedAt = &at
		return
	}
	e.CompletedAt = nil
}
