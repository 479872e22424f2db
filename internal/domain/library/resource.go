package library

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ResourceType string

const (
	ResourceArticle       ResourceType = "article"
	ResourceVideo         ResourceType = "video"
	ResourceCourse        ResourceType = "course"
	ResourceBook          ResourceType = "book"
	ResourcePodcast       ResourceType = "podcast"
	ResourceTutorial      ResourceType = "tutorial"
	ResourceDocumentation ResourceType = "documentation"
	ResourceOther         ResourceType = "other"
)

// Resource is a link a user saved to their library.
type Resource struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID                   `gorm:"type:uuid;not null;index" json:"user_id"`
	Title           string                      `gorm:"column:title;not null" json:"title"`
	Description     string                      `gorm:"column:description;type:text" json:"description"`
	ResourceType    ResourceType                `gorm:"column:resource_type;not null;index" json:"resource_type"`
	URL             string                      `gorm:"column:url" json:"url"`
	Tags            datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
	DifficultyLevel string                      `gorm:"column:difficulty_level;not null" json:"difficulty_level"`
	IsFavorite      bool                        `gorm:"column:is_favorite;not null" json:"is_favorite"`
	CreatedAt       time.Time                   `gorm:"not null;index" json:"created_at"`
	UpdatedAt       time.Time                   `gorm:"not null" json:"updated_at"`
	DeletedAt       gorm.DeletedAt              `gorm:"index" json:"deleted_at,omitempty"`
}

func (Resource) TableName() string { return "library_resource" }

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Filter narrows a library listing. Empty fields match everything.
type Filter struct {
	Query         string
	ResourceType  ResourceType
	Difficulty    string
	FavoritesOnly bool
}
