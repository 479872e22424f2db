package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/learnpath-backend/internal/data/repos"
	"github.com/yungbote/learnpath-backend/internal/platform/apierr"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

//go:generate mockgen -source=dashboard.go -destination=../mocks/services/mock_dashboard.go -package=mock_services

type DashboardService interface {
	Get(ctx context.Context) (*Dashboard, error)
}

type Dashboard struct {
	ActivePaths    int                 `json:"activePaths"`
	CompletedPaths int                 `json:"completedPaths"`
	ResourceCount  int64               `json:"resourceCount"`
	FavoriteCount  int64               `json:"favoriteCount"`
	Paths          []*PathWithProgress `json:"paths"`
}

type dashboardService struct {
	log          *logger.Logger
	pathService  PathService
	resourceRepo repos.ResourceRepo
}

func NewDashboardService(log *logger.Logger, pathService PathService, resourceRepo repos.ResourceRepo) DashboardService {
	return &dashboardService{
		log:          log.With("service", "DashboardService"),
		pathService:  pathService,
		resourceRepo: resourceRepo,
	}
}

func (ds *dashboardService) Get(ctx context.Context) (*Dashboard, error) {
	uid, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	out := &Dashboard{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		paths, err := ds.pathService.List(gctx)
		if err != nil {
			return err
		}
		out.Paths = paths
		return nil
	})
	g.Go(func() error {
		total, favorites, err := ds.resourceRepo.CountByUser(dbctx.Of(gctx), uid)
		if err != nil {
			return apierr.Storage("dashboard_failed", fmt.Errorf("count resources: %w", err))
		}
		out.ResourceCount = total
		out.FavoriteCount = favorites
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.ActivePaths = len(out.Paths)
	for _, p := range out.Paths {
		if p.Progress.TotalMilestones > 0 && p.Progress.CompletedCount == p.Progress.TotalMilestones {
			out.CompletedPaths++
		}
	}
	return out, nil
}
