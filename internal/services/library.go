package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/learnpath-backend/internal/data/repos"
	types "github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/platform/apierr"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
	"github.com/yungbote/learnpath-backend/internal/platform/validate"
)

//go:generate mockgen -source=library.go -destination=../mocks/services/mock_library.go -package=mock_services

type LibraryService interface {
	Add(ctx context.Context, req AddResourceRequest) (*types.LibraryResource, error)
	SetFavorite(ctx context.Context, resourceID uuid.UUID, favorite bool) error
	List(ctx context.Context, filter types.LibraryFilter) ([]*types.LibraryResource, error)
}

type AddResourceRequest struct {
	Title           string   `json:"title" validate:"notblank,max=300"`
	Description     string   `json:"description" validate:"max=5000"`
	ResourceType    string   `json:"resource_type" validate:"required,oneof=article video course book podcast tutorial documentation other"`
	URL             string   `json:"url" validate:"omitempty,url,max=2048"`
	Tags            []string `json:"tags" validate:"max=20,dive,notblank,max=50"`
	DifficultyLevel string   `json:"difficulty_level" validate:"required,oneof=beginner intermediate advanced"`
}

type libraryFilterInput struct {
	ResourceType string `json:"type" validate:"omitempty,oneof=article video course book podcast tutorial documentation other"`
	Difficulty   string `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Query        string `json:"q" validate:"max=200"`
}

type libraryService struct {
	log          *logger.Logger
	validator    *validate.Validator
	resourceRepo repos.ResourceRepo
}

func NewLibraryService(log *logger.Logger, validator *validate.Validator, resourceRepo repos.ResourceRepo) LibraryService {
	return &libraryService{
		log:          log.With("service", "LibraryService"),
		validator:    validator,
		resourceRepo: resourceRepo,
	}
}

func (ls *libraryService) Add(ctx context.Context, req AddResourceRequest) (*types.LibraryResource, error) {
	uid, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	req.Title = strings.TrimSpace(req.Title)
	req.URL = strings.TrimSpace(req.URL)
	req.ResourceType = strings.ToLower(strings.TrimSpace(req.ResourceType))
	req.DifficultyLevel = strings.ToLower(strings.TrimSpace(req.DifficultyLevel))
	if err := ls.validator.Struct(req); err != nil {
		return nil, apierr.Invalid("invalid_request", err)
	}

	tags := make([]string, 0, len(req.Tags))
	for _, t := range req.Tags {
		tags = append(tags, strings.TrimSpace(t))
	}
	row := &types.LibraryResource{
		UserID:          uid,
		Title:           req.Title,
		Description:     strings.TrimSpace(req.Description),
		ResourceType:    types.ResourceType(req.ResourceType),
		URL:             req.URL,
		Tags:            tags,
		DifficultyLevel: req.DifficultyLevel,
	}
	if _, err := ls.resourceRepo.Create(dbctx.Of(ctx), []*types.LibraryResource{row}); err != nil {
		return nil, apierr.Storage("resource_save_failed", fmt.Errorf("create resource: %w", err))
	}
	return row, nil
}

func (ls *libraryService) SetFavorite(ctx context.Context, resourceID uuid.UUID, favorite bool) error {
	uid, err := requireUser(ctx)
	if err != nil {
		return err
	}
	if resourceID == uuid.Nil {
		return apierr.Invalid("invalid_resource_id", errors.New("resourceId is required"))
	}
	n, err := ls.resourceRepo.SetFavorite(dbctx.Of(ctx), uid, resourceID, favorite)
	if err != nil {
		return apierr.Storage("favorite_update_failed", fmt.Errorf("set favorite: %w", err))
	}
	if n == 0 {
		return apierr.NotFound("resource_not_found", "resource not found")
	}
	return nil
}

func (ls *libraryService) List(ctx context.Context, filter types.LibraryFilter) ([]*types.LibraryResource, error) {
	uid, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	filter.Query = strings.TrimSpace(filter.Query)
	filter.ResourceType = types.ResourceType(strings.ToLower(strings.TrimSpace(string(filter.ResourceType))))
	filter.Difficulty = strings.ToLower(strings.TrimSpace(filter.Difficulty))
	if err := ls.validator.Struct(libraryFilterInput{
		ResourceType: string(filter.ResourceType),
		Difficulty:   filter.Difficulty,
		Query:        filter.Query,
	}); err != nil {
		return nil, apierr.Invalid("invalid_filter", err)
	}

	rows, err := ls.resourceRepo.ListByUser(dbctx.Of(ctx), uid, filter)
	if err != nil {
		return nil, apierr.Storage("resource_list_failed", fmt.Errorf("list resources: %w", err))
	}
	return rows, nil
}
