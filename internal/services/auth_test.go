package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mathfacts/backend/internal/domain"
	"github.com/mathfacts/backend/internal/repos"
	"github.com/mathfacts/backend/internal/repos/testutil"
	"github.com/mathfacts/backend/internal/requestdata"
	"github.com/mathfacts/backend/internal/services"
	"github.com/mathfacts/backend/internal/types"
)

func newAuthFixture(t *testing.T) services.AuthService {
	t.Helper()

	db := testutil.DB(t)
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(db, log)
	userTokenRepo := repos.NewUserTokenRepo(db, log)
	return services.NewAuthService(db, log, userRepo, userTokenRepo, "test-secret", 15*time.Minute, 24*time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newAuthFixture(t)
	ctx := context.Background()

	user := &types.User{Name: "Braylee", Pin: "1234"}
	if err := auth.RegisterUser(ctx, user); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.Level != types.LevelOne {
		t.Fatalf("new user starts at level %d, want %d", user.Level, types.LevelOne)
	}
	if user.Pin == "1234" {
		t.Fatalf("pin stored in plaintext")
	}

	access, refresh, err := auth.LoginUser(ctx, "Braylee", "1234")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("login returned empty tokens")
	}

	authedCtx, err := auth.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(authedCtx)
	if rd == nil || rd.UserID != user.ID {
		t.Fatalf("token did not resolve to the registered user")
	}
	if rd.RefreshToken != refresh {
		t.Fatalf("refresh token not attached to request data")
	}
}

func TestRegisterRejectsDuplicateName(t *testing.T) {
	auth := newAuthFixture(t)
	ctx := context.Background()

	if err := auth.RegisterUser(ctx, &types.User{Name: "Dad", Pin: "1111"}); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	err := auth.RegisterUser(ctx, &types.User{Name: "Dad", Pin: "2222"})
	if err == nil || !domain.IsCode(err, domain.CodeConflict) {
		t.Fatalf("got %v, want conflict", err)
	}
}

func TestLoginRejectsWrongPin(t *testing.T) {
	auth := newAuthFixture(t)
	ctx := context.Background()

	if err := auth.RegisterUser(ctx, &types.User{Name: "Mom", Pin: "1234"}); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	_, _, err := auth.LoginUser(ctx, "Mom", "9999")
	if err == nil || !domain.IsCode(err, domain.CodeUnauthorized) {
		t.Fatalf("got %v, want unauthorized", err)
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	auth := newAuthFixture(t)
	ctx := context.Background()

	if err := auth.RegisterUser(ctx, &types.User{Name: "Braylee", Pin: "1234"}); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	access, refresh, err := auth.LoginUser(ctx, "Braylee", "1234")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}

	authedCtx, err := auth.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}

	newAccess, newRefresh, err := auth.RefreshUser(authedCtx)
	if err != nil {
		t.Fatalf("RefreshUser: %v", err)
	}
	if newRefresh == refresh {
		t.Fatalf("refresh token was not rotated")
	}
	if newAccess == "" {
		t.Fatalf("refresh returned empty access token")
	}

	// the old refresh token is dead after rotation
	staleCtx := requestdata.WithRequestData(ctx, &requestdata.RequestData{
		UserID:       uuid.New(),
		RefreshToken: refresh,
	})
	_, _, err = auth.RefreshUser(staleCtx)
	if err == nil || !domain.IsCode(err, domain.CodeUnauthorized) {
		t.Fatalf("got %v, want unauthorized for rotated-out token", err)
	}
}

func TestLogoutInvalidatesToken(t *testing.T) {
	auth := newAuthFixture(t)
	ctx := context.Background()

	if err := auth.RegisterUser(ctx, &types.User{Name: "Braylee", Pin: "1234"}); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	access, _, err := auth.LoginUser(ctx, "Braylee", "1234")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}

	authedCtx, err := auth.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	if err := auth.LogoutUser(authedCtx); err != nil {
		t.Fatalf("LogoutUser: %v", err)
	}

	// token parses but no longer has a refresh token bound to it
	after, err := auth.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("SetContextFromToken after logout: %v", err)
	}
	rd := requestdata.GetRequestData(after)
	if rd == nil || rd.RefreshToken != "" {
		t.Fatalf("logout left the refresh token bound: %+v", rd)
	}
}
