package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/learnpath-backend/internal/data/repos"
	types "github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/domain/learning"
	"github.com/yungbote/learnpath-backend/internal/platform/apierr"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

//go:generate mockgen -source=progress.go -destination=../mocks/services/mock_progress.go -package=mock_services

type ProgressService interface {
	// Update flips one milestone for the caller and returns the stored entry
	// with the recomputed aggregate. Nothing is written when a check fails.
	Update(ctx context.Context, req ProgressUpdate) (*ProgressResult, error)
	GetPathProgress(ctx context.Context, pathID uuid.UUID) (*PathWithProgress, error)
}

type ProgressUpdate struct {
	PathID         uuid.UUID
	MilestoneIndex int
	Completed      bool
	ProgressID     *uuid.UUID
}

type ProgressResult struct {
	Entry    *types.ProgressEntry
	Progress types.Progress
}

type progressService struct {
	db           *gorm.DB
	log          *logger.Logger
	pathRepo     repos.PathRepo
	progressRepo repos.ProgressRepo
	now          func() time.Time
}

func NewProgressService(
	db *gorm.DB,
	log *logger.Logger,
	pathRepo repos.PathRepo,
	progressRepo repos.ProgressRepo,
) ProgressService {
	return &progressService{
		db:           db,
		log:          log.With("service", "ProgressService"),
		pathRepo:     pathRepo,
		progressRepo: progressRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *progressService) Update(ctx context.Context, req ProgressUpdate) (*ProgressResult, error) {
	uid, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.PathID == uuid.Nil {
		return nil, apierr.Invalid("invalid_path_id", errors.New("pathId is required"))
	}

	var result *ProgressResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		path, err := s.ownedPath(dbc, uid, req.PathID)
		if err != nil {
			return err
		}
		if !path.HasMilestone(req.MilestoneIndex) {
			return apierr.Invalid("invalid_milestone_index",
				fmt.Errorf("milestoneIndex %d out of range [0, %d)", req.MilestoneIndex, len(path.Milestones)))
		}

		var entry *types.ProgressEntry
		if req.ProgressID != nil && *req.ProgressID != uuid.Nil {
			entry, err = s.toggleExisting(dbc, uid, path, req)
		} else {
			entry, err = s.upsert(dbc, uid, path, req)
		}
		if err != nil {
			return err
		}

		entries, err := s.progressRepo.ListByUserAndPath(dbc, uid, path.ID)
		if err != nil {
			return apierr.Storage("progress_update_failed", fmt.Errorf("list progress: %w", err))
		}
		result = &ProgressResult{
			Entry:    entry,
			Progress: learning.AggregateProgress(path.Milestones, entries),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("milestone toggled",
		"user_id", uid,
		"path_id", req.PathID,
		"milestone_index", req.MilestoneIndex,
		"completed", req.Completed,
		"percentage", result.Progress.Percentage,
	)
	return result, nil
}

func (s *progressService) ownedPath(dbc dbctx.Context, uid, pathID uuid.UUID) (*types.LearningPath, error) {
	path, err := s.pathRepo.GetByID(dbc, pathID)
	if err != nil {
		return nil, apierr.Storage("progress_update_failed", fmt.Errorf("load path: %w", err))
	}
	if path == nil {
		return nil, apierr.NotFound("path_not_found", "learning path not found")
	}
	if path.UserID != uid {
		return nil, apierr.Forbidden("forbidden", "learning path belongs to another user")
	}
	return path, nil
}

func (s *progressService) toggleExisting(dbc dbctx.Context, uid uuid.UUID, path *types.LearningPath, req ProgressUpdate) (*types.ProgressEntry, error) {
	existing, err := s.progressRepo.GetByID(dbc, *req.ProgressID)
	if err != nil {
		return nil, apierr.Storage("progress_update_failed", fmt.Errorf("load progress: %w", err))
	}
	if existing == nil {
		return nil, apierr.NotFound("progress_not_found", "progress entry not found")
	}
	if existing.UserID != uid {
		return nil, apierr.Forbidden("forbidden", "progress entry belongs to another user")
	}
	if existing.LearningPathID != path.ID || existing.MilestoneIndex != req.MilestoneIndex {
		return nil, apierr.Invalid("progress_mismatch",
			errors.New("progressId does not match pathId and milestoneIndex"))
	}

	updated, err := s.progressRepo.SetCompleted(dbc, existing.ID, req.Completed, s.now())
	if err != nil {
		return nil, apierr.Storage("progress_update_failed", fmt.Errorf("update progress: %w", err))
	}
	return updated, nil
}

func (s *progressService) upsert(dbc dbctx.Context, uid uuid.UUID, path *types.LearningPath, req ProgressUpdate) (*types.ProgressEntry, error) {
	row := &types.ProgressEntry{
		UserID:         uid,
		LearningPathID: path.ID,
		MilestoneIndex: req.MilestoneIndex,
	}
	row.Toggle(req.Completed, s.now())
	stored, err := s.progressRepo.Upsert(dbc, row)
	if err != nil {
		return nil, apierr.Storage("progress_update_failed", fmt.Errorf("upsert progress: %w", err))
	}
	return stored, nil
}

// GetPathProgress loads a path owned by the caller together with its
// aggregated progress. Path detail is served from here.
func (s *progressService) GetPathProgress(ctx context.Context, pathID uuid.UUID) (*PathWithProgress, error) {
	uid, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if pathID == uuid.Nil {
		return nil, apierr.Invalid("invalid_path_id", errors.New("path id is required"))
	}

	var (
		path    *types.LearningPath
		entries []*types.ProgressEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.pathRepo.GetByID(dbctx.Of(gctx), pathID)
		if err != nil {
			return fmt.Errorf("load path: %w", err)
		}
		path = p
		return nil
	})
	g.Go(func() error {
		rows, err := s.progressRepo.ListByUserAndPath(dbctx.Of(gctx), uid, pathID)
		if err != nil {
			return fmt.Errorf("list progress: %w", err)
		}
		entries = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, apierr.Storage("path_load_failed", err)
	}

	if path == nil {
		return nil, apierr.NotFound("path_not_found", "learning path not found")
	}
	if path.UserID != uid {
		return nil, apierr.Forbidden("forbidden", "learning path belongs to another user")
	}
	return &PathWithProgress{
		Path:     path,
		Progress: learning.AggregateProgress(path.Milestones, entries),
	}, nil
}
