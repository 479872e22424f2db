package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type ProgressRepo interface {
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ProgressEntry, error)
	ListByUserAndPath(dbc dbctx.Context, userID, pathID uuid.UUID) ([]*types.ProgressEntry, error)
	ListByUserAndPaths(dbc dbctx.Context, userID uuid.UUID, pathIDs []uuid.UUID) ([]*types.ProgressEntry, error)

	// Upsert writes row keyed on (user_id, learning_path_id, milestone_index) and
	// returns the stored row, whose ID is the pre-existing one on conflict.
	Upsert(dbc dbctx.Context, row *types.ProgressEntry) (*types.ProgressEntry, error)
	SetCompleted(dbc dbctx.Context, id uuid.UUID, completed bool, now time.Time) (*types.ProgressEntry, error)
}

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	return &progressRepo{db: db, log: baseLog.With("repo", "ProgressRepo")}
}

func (r *progressRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ProgressEntry, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var rows []*types.ProgressEntry
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *progressRepo) ListByUserAndPath(dbc dbctx.Context, userID, pathID uuid.UUID) ([]*types.ProgressEntry, error) {
	return r.ListByUserAndPaths(dbc, userID, []uuid.UUID{pathID})
}

func (r *progressRepo) ListByUserAndPaths(dbc dbctx.Context, userID uuid.UUID, pathIDs []uuid.UUID) ([]*types.ProgressEntry, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.ProgressEntry
	if userID == uuid.Nil || len(pathIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ? AND learning_path_id IN ?", userID, pathIDs).
		Order("learning_path_id ASC, milestone_index ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *progressRepo) Upsert(dbc dbctx.Context, row *types.ProgressEntry) (*types.ProgressEntry, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil || row.UserID == uuid.Nil || row.LearningPathID == uuid.Nil {
		return nil, nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = time.Now().UTC()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = row.UpdatedAt
	}

	err := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "learning_path_id"}, {Name: "milestone_index"}},
			DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_at", "updated_at"}),
		}).
		Create(row).Error
	if err != nil {
		return nil, err
	}

	var stored types.ProgressEntry
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ? AND learning_path_id = ? AND milestone_index = ?", row.UserID, row.LearningPathID, row.MilestoneIndex).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *progressRepo) SetCompleted(dbc dbctx.Context, id uuid.UUID, completed bool, now time.Time) (*types.ProgressEntry, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	row, err := r.GetByID(dbctx.Context{Ctx: dbc.Ctx, Tx: t}, id)
	if err != nil || row == nil {
		return row, err
	}
	row.Toggle(completed, now)
	if err := t.WithContext(dbc.Ctx).
		Model(&types.ProgressEntry{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"completed":    row.Completed,
			"completed_at": row.CompletedAt,
			"updated_at":   row.UpdatedAt,
		}).Error; err != nil {
		return nil, err
	}
	return row, nil
}
