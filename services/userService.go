package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Ayush-478/Veggio/helper"
	"github.com/Ayush-478/Veggio/models"
	"github.com/Ayush-478/Veggio/store"
)

type SignUpInput struct {
	Name               string   `json:"name" validate:"required,min=2,max=100"`
	Email              string   `json:"email" validate:"required,email"`
	Password           string   `json:"password" validate:"required,min=6"`
	DietaryPreferences []string `json:"dietaryPreferences"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Session struct {
	User         *models.User `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
}

type UserService struct {
	users  store.UserStore
	secret string
	now    func() time.Time
}

func NewUserService(st store.UserStore, secret string) *UserService {
	return &UserService{users: st, secret: secret, now: time.Now}
}

func (s *UserService) SignUp(ctx context.Context, in SignUpInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	hash, err := helper.HashPassword(in.Password)
	if err != nil {
		return nil, Internal("hash password", err)
	}
	now := s.now()
	user := &models.User{
		Name:               strings.TrimSpace(in.Name),
		Email:              email,
		Password:           hash,
		Role:               models.RoleUser,
		DietaryPreferences: in.DietaryPreferences,
		CalorieGoal:        models.DefaultCalorieGoal,
		Created_at:         now,
		Updated_at:         now,
	}
	if user.DietaryPreferences == nil {
		user.DietaryPreferences = []string{}
	}
	if err := s.users.InsertUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, Conflict("Email already exists")
		}
		return nil, Internal("create user", err)
	}
	return s.session(user)
}

func (s *UserService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	user, err := s.users.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if errors.Is(err, store.ErrNotFound) {
		return nil, Unauthenticated("Invalid email or password")
	}
	if err != nil {
		return nil, Internal("load user", err)
	}
	if ok, _ := helper.VerifyPassword(in.Password, user.Password); !ok {
		return nil, Unauthenticated("Invalid email or password")
	}
	return s.session(user)
}

func (s *UserService) session(user *models.User) (*Session, error) {
	token, refresh, err := helper.GenerateAllTokens(s.secret, user)
	if err != nil {
		return nil, Internal("generate tokens", err)
	}
	return &Session{User: user, Token: token, RefreshToken: refresh}, nil
}

// Refresh exchanges a refresh token for a new pair of tokens.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	claims, err := helper.ValidateToken(s.secret, refreshToken, helper.RefreshToken)
	if err != nil {
		return nil, Unauthenticated("Invalid refresh token")
	}
	user, err := s.Get(ctx, claims.Uid)
	if err != nil {
		return nil, err
	}
	return s.session(user)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.FindUser(ctx, id)
	if err != nil {
		return nil, fromStore("load user", err, "User not found")
	}
	return user, nil
}

func (s *UserService) SetPreferences(ctx context.Context, user *models.User, preferences []string) (*models.User, error) {
	if preferences == nil {
		preferences = []string{}
	}
	if err := s.users.SetDietaryPreferences(ctx, user.ID.Hex(), preferences); err != nil {
		return nil, fromStore("update preferences", err, "User not found")
	}
	return s.Get(ctx, user.ID.Hex())
}

// EnsureAdmin creates an admin account for email unless one exists.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	existing, err := s.users.FindUserByEmail(ctx, email)
	if err == nil {
		if !existing.IsAdmin() {
			return nil, Conflict("Email belongs to a non-admin account")
		}
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, Internal("load user", err)
	}
	hash, err := helper.HashPassword(password)
	if err != nil {
		return nil, Internal("hash password", err)
	}
	now := s.now()
	admin := &models.User{
		Name:               "Administrator",
		Email:              email,
		Password:           hash,
		Role:               models.RoleAdmin,
		DietaryPreferences: []string{},
		CalorieGoal:        models.DefaultCalorieGoal,
		Created_at:         now,
		Updated_at:         now,
	}
	if err := s.users.InsertUser(ctx, admin); err != nil {
		return nil, Internal("create admin", err)
	}
	return admin, nil
}
