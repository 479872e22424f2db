package learning

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type PathRepo interface {
	Create(dbc dbctx.Context, rows []*types.LearningPath) ([]*types.LearningPath, error)

	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.LearningPath, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.LearningPath, error)

	// ListByUser returns the user's paths newest first. limit <= 0 means no limit.
	ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.LearningPath, error)
	CountByUser(dbc dbctx.Context, userID uuid.UUID) (int64, error)
}

type pathRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPathRepo(db *gorm.DB, baseLog *logger.Logger) PathRepo {
	return &pathRepo{db: db, log: baseLog.With("repo", "PathRepo")}
}

func (r *pathRepo) Create(dbc dbctx.Context, rows []*types.LearningPath) ([]*types.LearningPath, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.LearningPath{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *pathRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.LearningPath, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.LearningPath
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *pathRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.LearningPath, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *pathRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.LearningPath, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.LearningPath
	if userID == uuid.Nil {
		return out, nil
	}
	q := t.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *pathRepo) CountByUser(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var n int64
	if userID == uuid.Nil {
		return 0, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Model(&types.LearningPath{}).
		Where("user_id = ?", userID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
