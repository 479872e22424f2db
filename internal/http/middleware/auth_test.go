package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_services "github.com/yungbote/learnpath-backend/internal/mocks/services"
	"github.com/yungbote/learnpath-backend/internal/platform/apierr"
	"github.com/yungbote/learnpath-backend/internal/platform/ctxutil"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

func authRouter(t *testing.T, svc *mock_services.MockAuthService) (*gin.Engine, *uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	require.NoError(t, err)

	var seen uuid.UUID
	r := gin.New()
	r.GET("/api/me", NewAuthMiddleware(log, svc).RequireAuth(), func(c *gin.Context) {
		seen = ctxutil.UserID(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestRequireAuthMissingToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	r, _ := authRouter(t, mock_services.NewMockAuthService(ctrl))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"missing or invalid token","code":"unauthorized"}`, rec.Body.String())
}

func TestRequireAuthBearer(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock_services.NewMockAuthService(ctrl)
	r, seen := authRouter(t, svc)
	uid := uuid.New()

	svc.EXPECT().
		SetContextFromToken(gomock.Any(), "tok").
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, error) {
			return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: uid}), nil
		})

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uid, *seen)
}

func TestRequireAuthQueryToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock_services.NewMockAuthService(ctrl)
	r, _ := authRouter(t, svc)

	svc.EXPECT().
		SetContextFromToken(gomock.Any(), "qtok").
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, error) {
			return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: uuid.New()}), nil
		})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me?token=qtok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuthRejectedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock_services.NewMockAuthService(ctrl)
	r, _ := authRouter(t, svc)

	svc.EXPECT().
		SetContextFromToken(gomock.Any(), "expired").
		Return(nil, apierr.Unauthenticated("invalid or expired token"))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid or expired token","code":"unauthorized"}`, rec.Body.String())
}

func TestRequireAuthStorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock_services.NewMockAuthService(ctrl)
	r, _ := authRouter(t, svc)

	svc.EXPECT().
		SetContextFromToken(gomock.Any(), "tok").
		Return(nil, apierr.Storage("session_lookup_failed", errors.New("conn reset")))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "conn reset")
}
