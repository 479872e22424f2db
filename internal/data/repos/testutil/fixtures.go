package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/learnpath-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedPath creates a path owned by userID with n numbered milestones.
func SeedPath(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, n int) *types.LearningPath {
	tb.Helper()
	milestones := make([]types.Milestone, n)
	for i := range milestones {
		milestones[i] = types.Milestone{
			Title:       fmt.Sprintf("Milestone %d", i+1),
			Description: "step",
			Resources:   []string{"https://go.dev/doc"},
		}
	}
	p := &types.LearningPath{
		ID:                uuid.New(),
		UserID:            userID,
		Title:             "Learn Go",
		Description:       "From zero to services",
		DifficultyLevel:   types.DifficultyBeginner,
		EstimatedDuration: "6 weeks",
		Topics:            []string{"go"},
		Milestones:        milestones,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed path: %v", err)
	}
	return p
}

func SeedProgress(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, pathID uuid.UUID, index int, completed bool) *types.ProgressEntry {
	tb.Helper()
	e := &types.ProgressEntry{
		ID:             uuid.New(),
		UserID:         userID,
		LearningPathID: pathID,
		MilestoneIndex: index,
		Completed:      completed,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed progress: %v", err)
	}
	return e
}
