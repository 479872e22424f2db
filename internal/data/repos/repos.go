package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/learnpath-backend/internal/data/repos/auth"
	"github.com/yungbote/learnpath-backend/internal/data/repos/learning"
	"github.com/yungbote/learnpath-backend/internal/data/repos/library"
	"github.com/yungbote/learnpath-backend/internal/data/repos/user"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo

type PathRepo = learning.PathRepo
type ProgressRepo = learning.ProgressRepo

type ResourceRepo = library.ResourceRepo

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo { return user.NewUserRepo(db, log) }
func NewUserTokenRepo(db *gorm.DB, log *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, log)
}
func NewPathRepo(db *gorm.DB, log *logger.Logger) PathRepo { return learning.NewPathRepo(db, log) }
func NewProgressRepo(db *gorm.DB, log *logger.Logger) ProgressRepo {
	return learning.NewProgressRepo(db, log)
}
func NewResourceRepo(db *gorm.DB, log *logger.Logger) ResourceRepo {
	return library.NewResourceRepo(db, log)
}
