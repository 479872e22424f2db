package library

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type ResourceRepo interface {
	Create(dbc dbctx.Context, rows []*types.LibraryResource) ([]*types.LibraryResource, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.LibraryResource, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID, filter types.LibraryFilter) ([]*types.LibraryResource, error)

	// SetFavorite only touches rows owned by userID and reports how many matched.
	SetFavorite(dbc dbctx.Context, userID, id uuid.UUID, favorite bool) (int64, error)
	CountByUser(dbc dbctx.Context, userID uuid.UUID) (total int64, favorites int64, err error)
}

type resourceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResourceRepo(db *gorm.DB, baseLog *logger.Logger) ResourceRepo {
	return &resourceRepo{db: db, log: baseLog.With("repo", "ResourceRepo")}
}

func (r *resourceRepo) Create(dbc dbctx.Context, rows []*types.LibraryResource) ([]*types.LibraryResource, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.LibraryResource{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *resourceRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.LibraryResource, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var rows []*types.LibraryResource
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *resourceRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, filter types.LibraryFilter) ([]*types.LibraryResource, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.LibraryResource
	if userID == uuid.Nil {
		return out, nil
	}

	q := t.WithContext(dbc.Ctx).Where("user_id = ?", userID)
	if s := strings.ToLower(strings.TrimSpace(filter.Query)); s != "" {
		like := "%" + escapeLike(s) + "%"
		q = q.Where("(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\')", like, like)
	}
	if filter.ResourceType != "" {
		q = q.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.Difficulty != "" {
		q = q.Where("difficulty_level = ?", filter.Difficulty)
	}
	if filter.FavoritesOnly {
		q = q.Where("is_favorite = ?", true)
	}

	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *resourceRepo) SetFavorite(dbc dbctx.Context, userID, id uuid.UUID, favorite bool) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || id == uuid.Nil {
		return 0, nil
	}
	res := t.WithContext(dbc.Ctx).
		Model(&types.LibraryResource{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_favorite", favorite)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *resourceRepo) CountByUser(dbc dbctx.Context, userID uuid.UUID) (int64, int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return 0, 0, nil
	}
	var total, favorites int64
	if err := t.WithContext(dbc.Ctx).
		Model(&types.LibraryResource{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := t.WithContext(dbc.Ctx).
		Model(&types.LibraryResource{}).
		Where("user_id = ? AND is_favorite = ?", userID, true).
		Count(&favorites).Error; err != nil {
		return 0, 0, err
	}
	return total, favorites, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
