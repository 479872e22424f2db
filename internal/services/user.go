package services

import (
	"context"
	"fmt"

	"github.com/yungbote/learnpath-backend/internal/data/repos"
	types "github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/platform/apierr"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

//go:generate mockgen -source=user.go -destination=../mocks/services/mock_user.go -package=mock_services

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{log: log.With("service", "UserService"), userRepo: userRepo}
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	uid, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	u, err := us.userRepo.GetByID(dbctx.Of(ctx), uid)
	if err != nil {
		return nil, apierr.Storage("user_lookup_failed", fmt.Errorf("load user: %w", err))
	}
	if u == nil {
		return nil, apierr.NotFound("user_not_found", "user not found")
	}
	return u, nil
}
