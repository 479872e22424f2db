package domain

import (
	"github.com/yungbote/learnpath-backend/internal/domain/auth"
	"github.com/yungbote/learnpath-backend/internal/domain/learning"
	"github.com/yungbote/learnpath-backend/internal/domain/library"
	"github.com/yungbote/learnpath-backend/internal/domain/user"
)

type User = user.User
type UserToken = auth.UserToken

type LearningPath = learning.LearningPath
type Milestone = learning.Milestone
type Difficulty = learning.Difficulty
type ProgressEntry = learning.ProgressEntry
type Progress = learning.Progress
type MilestoneState = learning.MilestoneState

type LibraryResource = library.Resource
type ResourceType = library.ResourceType
type LibraryFilter = library.Filter

const (
	DifficultyBeginner     = learning.DifficultyBeginner
	DifficultyIntermediate = learning.DifficultyIntermediate
	DifficultyAdvanced     = learning.DifficultyAdvanced
)

// Models lists every persisted type in migration order.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&UserToken{},
		&LearningPath{},
		&ProgressEntry{},
		&LibraryResource{},
	}
}
