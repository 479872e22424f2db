package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/learnpath-backend/internal/data/repos"
	"github.com/yungbote/learnpath-backend/internal/data/repos/testutil"
	"github.com/yungbote/learnpath-backend/internal/platform/apierr"
	"github.com/yungbote/learnpath-backend/internal/platform/ctxutil"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
	"github.com/yungbote/learnpath-backend/internal/platform/validate"
)

type testEnv struct {
	db        *gorm.DB
	log       *logger.Logger
	validator *validate.Validator

	users     repos.UserRepo
	tokens    repos.UserTokenRepo
	paths     repos.PathRepo
	progress  repos.ProgressRepo
	resources repos.ResourceRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	v, err := validate.New()
	require.NoError(t, err)
	return &testEnv{
		db:        db,
		log:       log,
		validator: v,
		users:     repos.NewUserRepo(db, log),
		tokens:    repos.NewUserTokenRepo(db, log),
		paths:     repos.NewPathRepo(db, log),
		progress:  repos.NewProgressRepo(db, log),
		resources: repos.NewResourceRepo(db, log),
	}
}

func asUser(userID uuid.UUID) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: userID})
}

func requireAPIErr(t *testing.T, err error, status int, code string) {
	t.Helper()
	require.Error(t, err)
	ae, ok := apierr.As(err)
	require.True(t, ok, "expected *apierr.Error, got %T: %v", err, err)
	require.Equal(t, status, ae.Status, "status for %v", err)
	if code != "" {
		require.Equal(t, code, ae.Code)
	}
}
