package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Ayush-478/Veggio/helper"
	"github.com/Ayush-478/Veggio/models"
	"github.com/Ayush-478/Veggio/store"
)

type contextKey string

const userKey contextKey = "user"

// Auth authenticates requests with the access tokens issued at login.
type Auth struct {
	secret string
	users  store.UserStore
	logger *zap.Logger
}

func NewAuth(secret string, users store.UserStore, logger *zap.Logger) *Auth {
	return &Auth{secret: secret, users: users, logger: logger.Named("auth")}
}

// tokenFrom reads "Authorization: Bearer <token>", falling back to the token
// query parameter that browser websocket clients use.
func tokenFrom(r *http.Request) (string, string) {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", "Invalid Authorization format"
		}
		return parts[1], ""
	}
	if token := r.URL.Query().Get("token"); token != "" {
		return token, ""
	}
	return "", "No Authorization header provided"
}

// Authentication rejects requests without a valid token and stores the
// current user in the request context.
func (a *Auth) Authentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, msg := tokenFrom(r)
		if msg != "" {
			deny(w, http.StatusUnauthorized, msg)
			return
		}
		claims, err := helper.ValidateToken(a.secret, token, helper.AccessToken)
		if err != nil {
			deny(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}

		user, err := a.users.FindUser(r.Context(), claims.Uid)
		if errors.Is(err, store.ErrNotFound) {
			deny(w, http.StatusUnauthorized, "Not authorized, user not found")
			return
		}
		if err != nil {
			a.logger.Error("load authenticated user", zap.String("user", claims.Uid), zap.Error(err))
			deny(w, http.StatusInternalServerError, "Server error")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// AdminOnly must run after Authentication.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r)
		if user == nil || !user.IsAdmin() {
			deny(w, http.StatusForbidden, "Not authorized as an admin")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext returns the authenticated user, or nil.
func GetUserFromContext(r *http.Request) *models.User {
	user, _ := r.Context().Value(userKey).(*models.User)
	return user
}

func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
