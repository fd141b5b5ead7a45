package services

import (
	"context"
	"testing"
	"time"

	"github.com/dataarena/dataarena-backend/internal/data/repos"
	"github.com/dataarena/dataarena-backend/internal/data/repos/testutil"
	"github.com/dataarena/dataarena-backend/internal/domain"
	"github.com/dataarena/dataarena-backend/internal/requestdata"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	return NewAuthService(
		tx, log,
		repos.NewUserRepo(tx, log),
		repos.NewUserTokenRepo(tx, log),
		"test-secret", time.Hour, 24*time.Hour,
	)
}

func TestAuthRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	auth := newAuthService(t)

	user, err := auth.RegisterUser(ctx, "Ada", "Ada@Test.Dev", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "ada@test.dev" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if user.Password == "hunter22" {
		t.Fatal("password must be stored hashed")
	}
	if user.Role != domain.RoleParticipant {
		t.Fatalf("new users default to participant, got %q", user.Role)
	}

	if _, err := auth.RegisterUser(ctx, "Ada Again", "ada@test.dev", "other"); err == nil {
		t.Fatal("duplicate email must be rejected")
	}

	if _, err := auth.LoginUser(ctx, "ada@test.dev", "wrong"); err == nil {
		t.Fatal("wrong password must be rejected")
	}

	pair, err := auth.LoginUser(ctx, "ada@test.dev", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("login must return both tokens")
	}
}

func TestAuthTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	auth := newAuthService(t)

	user, err := auth.RegisterUser(ctx, "Grace", "grace@test.dev", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := auth.LoginUser(ctx, "grace@test.dev", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	authedCtx, err := auth.SetContextFromToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("set context: %v", err)
	}
	rd := requestdata.GetRequestData(authedCtx)
	if rd == nil || rd.UserID != user.ID {
		t.Fatal("context must carry the token subject")
	}
	if rd.UserName != "Grace" || rd.Role != domain.RoleParticipant {
		t.Fatalf("context must carry name and role, got %+v", rd)
	}

	if _, err := auth.SetContextFromToken(ctx, pair.AccessToken+"x"); err == nil {
		t.Fatal("tampered token must be rejected")
	}
}

func TestAuthRefreshRotates(t *testing.T) {
	ctx := context.Background()
	auth := newAuthService(t)

	if _, err := auth.RegisterUser(ctx, "Linus", "linus@test.dev", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := auth.LoginUser(ctx, "linus@test.dev", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	next, err := auth.RefreshTokens(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatal("refresh must rotate the refresh token")
	}

	// The old refresh token died with the rotation.
	if _, err := auth.RefreshTokens(ctx, pair.RefreshToken); err == nil {
		t.Fatal("rotated-out refresh token must be rejected")
	}
}

func TestAuthLogoutRevokes(t *testing.T) {
	ctx := context.Background()
	auth := newAuthService(t)

	user, err := auth.RegisterUser(ctx, "Barbara", "barbara@test.dev", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := auth.LoginUser(ctx, "barbara@test.dev", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	authedCtx := requestdata.WithRequestData(ctx, &requestdata.RequestData{
		UserID: user.ID,
		Role:   domain.RoleParticipant,
	})
	if err := auth.LogoutUser(authedCtx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := auth.RefreshTokens(ctx, pair.RefreshToken); err == nil {
		t.Fatal("refresh token must be revoked after logout")
	}
}
