package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/learnpath-backend/internal/platform/logger"
	"github.com/yungbote/learnpath-backend/internal/platform/validate"
	"github.com/yungbote/learnpath-backend/internal/services"
)

type Services struct {
	Auth      services.AuthService
	User      services.UserService
	Path      services.PathService
	Progress  services.ProgressService
	Library   services.LibraryService
	Chat      services.ChatService
	Dashboard services.DashboardService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	validator, err := validate.New()
	if err != nil {
		return Services{}, fmt.Errorf("init validator: %w", err)
	}

	auth := services.NewAuthService(
		db,
		log,
		validator,
		repos.User,
		repos.UserToken,
		cfg.JWTSecretKey,
		cfg.AccessTTL(),
		cfg.RefreshTTL(),
	)
	progress := services.NewProgressService(db, log, repos.Path, repos.Progress)
	path := services.NewPathService(log, validator, clients.OpenAI, repos.Path, repos.Progress, progress)

	return Services{
		Auth:      auth,
		User:      services.NewUserService(log, repos.User),
		Path:      path,
		Progress:  progress,
		Library:   services.NewLibraryService(log, validator, repos.Resource),
		Chat:      services.NewChatService(log, clients.OpenAI, repos.Path),
		Dashboard: services.NewDashboardService(log, path, repos.Resource),
	}, nil
}
