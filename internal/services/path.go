package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/learnpath-backend/internal/data/repos"
	types "github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/domain/learning"
	"github.com/yungbote/learnpath-backend/internal/learning/prompts"
	"github.com/yungbote/learnpath-backend/internal/platform/apierr"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
	"github.com/yungbote/learnpath-backend/internal/platform/openai"
	"github.com/yungbote/learnpath-backend/internal/platform/validate"
)

//go:generate mockgen -source=path.go -destination=../mocks/services/mock_path.go -package=mock_services

type PathService interface {
	Generate(ctx context.Context, req GeneratePathRequest) (*types.LearningPath, error)
	List(ctx context.Context) ([]*PathWithProgress, error)
	Get(ctx context.Context, pathID uuid.UUID) (*PathWithProgress, error)
}

type GeneratePathRequest struct {
	Goal           string `json:"goal" validate:"notblank,max=500"`
	CurrentLevel   string `json:"currentLevel" validate:"notblank,max=100"`
	TimeCommitment string `json:"timeCommitment" validate:"max=100"`
	SpecificTopics string `json:"specificTopics" validate:"max=500"`
}

type PathWithProgress struct {
	Path     *types.LearningPath `json:"path"`
	Progress types.Progress      `json:"progress"`
}

// generatedPath mirrors the learning_path response schema.
type generatedPath struct {
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	DifficultyLevel   string            `json:"difficulty_level"`
	EstimatedDuration string            `json:"estimated_duration"`
	Topics            []string          `json:"topics"`
	Milestones        []types.Milestone `json:"milestones"`
}

type pathService struct {
	log          *logger.Logger
	validator    *validate.Validator
	ai           openai.Client
	pathRepo     repos.PathRepo
	progressRepo repos.ProgressRepo
	progress     ProgressService
}

func NewPathService(
	log *logger.Logger,
	validator *validate.Validator,
	ai openai.Client,
	pathRepo repos.PathRepo,
	progressRepo repos.ProgressRepo,
	progress ProgressService,
) PathService {
	return &pathService{
		log:          log.With("service", "PathService"),
		validator:    validator,
		ai:           ai,
		pathRepo:     pathRepo,
		progressRepo: progressRepo,
		progress:     progress,
	}
}

func (ps *pathService) Generate(ctx context.Context, req GeneratePathRequest) (*types.LearningPath, error) {
	uid, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := ps.validator.Struct(req); err != nil {
		return nil, apierr.Invalid("invalid_request", err)
	}

	p, err := prompts.Build(prompts.PromptLearningPath, prompts.Input{
		Goal:           strings.TrimSpace(req.Goal),
		CurrentLevel:   strings.TrimSpace(req.CurrentLevel),
		TimeCommitment: strings.TrimSpace(req.TimeCommitment),
		SpecificTopics: strings.TrimSpace(req.SpecificTopics),
	})
	if err != nil {
		return nil, apierr.Invalid("invalid_request", err)
	}

	var out generatedPath
	if err := ps.ai.GenerateJSON(ctx, p.System, p.User, p.SchemaName, p.Schema, &out); err != nil {
		ps.log.Warn("learning path generation failed", "prompt", p.Name, "fingerprint", p.Fingerprint(), "error", err)
		return nil, apierr.Upstream("generation_failed", errors.New("failed to generate learning path"))
	}

	path, err := out.toPath(uid)
	if err != nil {
		ps.log.Warn("model returned an unusable learning path", "error", err)
		return nil, apierr.Upstream("generation_invalid", fmt.Errorf("generated learning path rejected: %w", err))
	}

	if _, err := ps.pathRepo.Create(dbctx.Of(ctx), []*types.LearningPath{path}); err != nil {
		return nil, apierr.Storage("path_save_failed", fmt.Errorf("create learning path: %w", err))
	}
	ps.log.Info("learning path generated", "user_id", uid, "path_id", path.ID, "milestones", len(path.Milestones))
	return path, nil
}

func (g generatedPath) toPath(userID uuid.UUID) (*types.LearningPath, error) {
	title := strings.TrimSpace(g.Title)
	if title == "" {
		return nil, errors.New("empty title")
	}
	difficulty := types.Difficulty(strings.ToLower(strings.TrimSpace(g.DifficultyLevel)))
	if !difficulty.Valid() {
		return nil, fmt.Errorf("unknown difficulty %q", g.DifficultyLevel)
	}
	if n := len(g.Milestones); n < learning.MinMilestones || n > learning.MaxMilestones {
		return nil, fmt.Errorf("expected %d-%d milestones, got %d", learning.MinMilestones, learning.MaxMilestones, n)
	}
	milestones := make([]types.Milestone, 0, len(g.Milestones))
	for i, m := range g.Milestones {
		m.Title = strings.TrimSpace(m.Title)
		if m.Title == "" {
			return nil, fmt.Errorf("milestone %d has no title", i)
		}
		if m.Resources == nil {
			m.Resources = []string{}
		}
		milestones = append(milestones, m)
	}
	topics := g.Topics
	if topics == nil {
		topics = []string{}
	}
	return &types.LearningPath{
		UserID:            userID,
		Title:             title,
		Description:       strings.TrimSpace(g.Description),
		DifficultyLevel:   difficulty,
		EstimatedDuration: strings.TrimSpace(g.EstimatedDuration),
		Topics:            topics,
		Milestones:        milestones,
	}, nil
}

func (ps *pathService) List(ctx context.Context) ([]*PathWithProgress, error) {
	uid, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	dbc := dbctx.Of(ctx)
	paths, err := ps.pathRepo.ListByUser(dbc, uid, 0)
	if err != nil {
		return nil, apierr.Storage("path_list_failed", fmt.Errorf("list paths: %w", err))
	}
	ids := make([]uuid.UUID, 0, len(paths))
	for _, p := range paths {
		ids = append(ids, p.ID)
	}
	entries, err := ps.progressRepo.ListByUserAndPaths(dbc, uid, ids)
	if err != nil {
		return nil, apierr.Storage("path_list_failed", fmt.Errorf("list progress: %w", err))
	}
	byPath := map[uuid.UUID][]*types.ProgressEntry{}
	for _, e := range entries {
		byPath[e.LearningPathID] = append(byPath[e.LearningPathID], e)
	}

	out := make([]*PathWithProgress, 0, len(paths))
	for _, p := range paths {
		out = append(out, &PathWithProgress{
			Path:     p,
			Progress: learning.AggregateProgress(p.Milestones, byPath[p.ID]),
		})
	}
	return out, nil
}

// Get returns one path with the caller's progress. Ownership and aggregation
// live in ProgressService so path detail and progress share one read path.
func (ps *pathService) Get(ctx context.Context, pathID uuid.UUID) (*PathWithProgress, error) {
	return ps.progress.GetPathProgress(ctx, pathID)
}
