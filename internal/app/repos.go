package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/learnpath-backend/internal/data/repos"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo
	Path      repos.PathRepo
	Progress  repos.ProgressRepo
	Resource  repos.ResourceRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),
		Path:      repos.NewPathRepo(db, log),
		Progress:  repos.NewProgressRepo(db, log),
		Resource:  repos.NewResourceRepo(db, log),
	}
}
