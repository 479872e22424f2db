package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	types "github.com/yungbote/learnpath-backend/internal/domain"
	mock_services "github.com/yungbote/learnpath-backend/internal/mocks/services"
	"github.com/yungbote/learnpath-backend/internal/platform/apierr"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
	"github.com/yungbote/learnpath-backend/internal/services"
)

func pathTestRouter(t *testing.T) (http.Handler, *mock_services.MockPathService) {
	ctrl := gomock.NewController(t)
	svc := mock_services.NewMockPathService(ctrl)
	h := NewPathHandler(logger.Nop(), svc)
	r := newTestRouter()
	r.POST("/api/learning-paths/generate", h.Generate)
	r.GET("/api/learning-paths", h.List)
	r.GET("/api/learning-paths/:id", h.Get)
	return r, svc
}

func TestGeneratePath(t *testing.T) {
	r, svc := pathTestRouter(t)
	pathID := uuid.New()
	svc.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req services.GeneratePathRequest) (*types.LearningPath, error) {
			assert.Equal(t, "Learn Go", req.Goal)
			assert.Equal(t, "beginner", req.CurrentLevel)
			assert.Equal(t, "5h/week", req.TimeCommitment)
			return &types.LearningPath{ID: pathID, Title: "Go"}, nil
		})

	rec := doJSON(r, http.MethodPost, "/api/learning-paths/generate", map[string]string{
		"goal": "Learn Go", "currentLevel": "beginner", "timeCommitment": "5h/week",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, pathID.String(), decodeBody(t, rec)["pathId"])
}

func TestGeneratePathUpstreamFailure(t *testing.T) {
	r, svc := pathTestRouter(t)
	svc.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(nil, apierr.Upstream("generation_failed", assert.AnError))

	rec := doJSON(r, http.MethodPost, "/api/learning-paths/generate", map[string]string{"goal": "x", "currentLevel": "y"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "generation_failed", decodeBody(t, rec)["code"])
}

func TestListPathsEmpty(t *testing.T) {
	r, svc := pathTestRouter(t)
	svc.EXPECT().List(gomock.Any()).Return(nil, nil)

	rec := doJSON(r, http.MethodGet, "/api/learning-paths", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"paths":[]}`, rec.Body.String())
}

func TestGetPath(t *testing.T) {
	r, svc := pathTestRouter(t)
	pathID := uuid.New()
	svc.EXPECT().Get(gomock.Any(), pathID).Return(&services.PathWithProgress{
		Path:     &types.LearningPath{ID: pathID, Title: "Go"},
		Progress: types.Progress{CompletedCount: 2, TotalMilestones: 5, Percentage: 40},
	}, nil)

	rec := doJSON(r, http.MethodGet, "/api/learning-paths/"+pathID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Go", body["path"].(map[string]any)["title"])
	assert.Equal(t, float64(40), body["progress"].(map[string]any)["percentage"])
}

func TestGetPathBadID(t *testing.T) {
	r, _ := pathTestRouter(t)
	rec := doJSON(r, http.MethodGet, "/api/learning-paths/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_path_id", decodeBody(t, rec)["code"])
}

func TestGetPathForbidden(t *testing.T) {
	r, svc := pathTestRouter(t)
	pathID := uuid.New()
	svc.EXPECT().Get(gomock.Any(), pathID).Return(nil, apierr.Forbidden("forbidden", "path belongs to another user"))

	rec := doJSON(r, http.MethodGet, "/api/learning-paths/"+pathID.String(), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
