package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

const (
	MinMilestones = 5
	MaxMilestones = 8
)

// Milestone is addressed by its position inside LearningPath.Milestones.
type Milestone struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Resources   []string `json:"resources"`
}

// LearningPath is created once by generation; milestones are never reordered.
type LearningPath struct {
	ID                uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID                      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title             string                         `gorm:"column:title;not null" json:"title"`
	Description       string                         `gorm:"column:description;type:text" json:"description"`
	DifficultyLevel   Difficulty                     `gorm:"column:difficulty_level;not null" json:"difficulty_level"`
	EstimatedDuration string                         `gorm:"column:estimated_duration" json:"estimated_duration"`
	Topics            datatypes.JSONSlice[string]    `gorm:"column:topics" json:"topics"`
	Milestones        datatypes.JSONSlice[Milestone] `gorm:"column:milestones" json:"milestones"`
	CreatedAt         time.Time                      `gorm:"not null;index" json:"created_at"`
	UpdatedAt         time.Time                      `gorm:"not null" json:"updated_at"`
	DeletedAt         gorm.DeletedAt                 `gorm:"index" json:"deleted_at,omitempty"`
}

func (LearningPath) TableName() string { return "learning_path" }

func (p *LearningPath) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// HasMilestone reports whether index addresses an existing milestone.
func (p *LearningPath) HasMilestone(index int) bool {
	return index >= 0 && index < len(p.Milestones)
}
