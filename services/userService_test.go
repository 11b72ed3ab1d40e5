package services

import (
	"testing"

	"github.com/Ayush-478/Veggio/helper"
	"github.com/Ayush-478/Veggio/models"
)

const testSecret = "test-secret"

func TestSignUpLoginRefresh(t *testing.T) {
	f := newFixture(t)
	users := NewUserService(f.st, testSecret)

	session, err := users.SignUp(f.ctx, SignUpInput{Name: "Dana", Email: " Dana@Example.com ", Password: "hunter22"})
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if session.User.Email != "dana@example.com" || session.User.Role != models.RoleUser {
		t.Errorf("user = %+v", session.User)
	}
	claims, err := helper.ValidateToken(testSecret, session.Token, helper.AccessToken)
	if err != nil || claims.Uid != session.User.ID.Hex() {
		t.Fatalf("access token: %+v, %v", claims, err)
	}

	_, err = users.SignUp(f.ctx, SignUpInput{Name: "Dana", Email: "dana@example.com", Password: "another"})
	wantKind(t, err, KindConflict)

	_, err = users.Login(f.ctx, LoginInput{Email: "dana@example.com", Password: "wrong-password"})
	wantKind(t, err, KindUnauthenticated)
	_, err = users.Login(f.ctx, LoginInput{Email: "nobody@example.com", Password: "hunter22"})
	wantKind(t, err, KindUnauthenticated)
	if _, err := users.Login(f.ctx, LoginInput{Email: "DANA@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	_, err = users.Refresh(f.ctx, session.Token)
	wantKind(t, err, KindUnauthenticated)
	refreshed, err := users.Refresh(f.ctx, session.RefreshToken)
	if err != nil || refreshed.User.ID != session.User.ID {
		t.Fatalf("refresh: %+v, %v", refreshed, err)
	}
}

func TestSetPreferences(t *testing.T) {
	f := newFixture(t)
	users := NewUserService(f.st, testSecret)
	user := f.user(t, "dana", models.RoleUser)

	updated, err := users.SetPreferences(f.ctx, user, []string{"vegan", "gluten-free"})
	if err != nil {
		t.Fatalf("set preferences: %v", err)
	}
	if !updated.Prefers("vegan") || !updated.Prefers("gluten-free") {
		t.Errorf("preferences = %v", updated.DietaryPreferences)
	}
}

func TestEnsureAdmin(t *testing.T) {
	f := newFixture(t)
	users := NewUserService(f.st, testSecret)

	admin, err := users.EnsureAdmin(f.ctx, "Root@Example.com", "s3cret!")
	if err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if !admin.IsAdmin() {
		t.Errorf("role = %q", admin.Role)
	}
	again, err := users.EnsureAdmin(f.ctx, "root@example.com", "ignored")
	if err != nil || again.ID != admin.ID {
		t.Errorf("second call = %+v, %v", again, err)
	}

	f.user(t, "dana", models.RoleUser)
	_, err = users.EnsureAdmin(f.ctx, "dana@example.com", "s3cret!")
	wantKind(t, err, KindConflict)
}
