package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/dataarena/dataarena-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *domain.User {
	tb.Helper()
	u := &domain.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "pw",
		Name:     "Test User",
		Role:     domain.RoleParticipant,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedAdmin(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *domain.User {
	tb.Helper()
	u := SeedUser(tb, ctx, tx, email)
	u.Role = domain.RoleAdmin
	if err := tx.WithContext(ctx).Model(u).Update("role", domain.RoleAdmin).Error; err != nil {
		tb.Fatalf("seed admin: %v", err)
	}
	return u
}

func SeedChallenge(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *domain.Challenge {
	tb.Helper()
	c := &domain.Challenge{
		ID:          uuid.New(),
		Title:       title,
		Description: "desc",
		Difficulty:  domain.DifficultyMedium,
		Points:      800,
		DatasetURL:  "https://drive.google.com/file/d/abc",
		Tags:        datatypes.NewJSONSlice([]string{"Python"}),
		Deadline:    time.Now().UTC().Add(30 * 24 * time.Hour),
		Status:      domain.ChallengeStatusActive,
		MaxScore:    100,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed challenge: %v", err)
	}
	return c
}

func PtrTime(v time.Time) *time.Time { return &v }
