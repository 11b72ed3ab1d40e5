package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Ayush-478/Veggio/helper"
	"github.com/Ayush-478/Veggio/models"
	"github.com/Ayush-478/Veggio/store"
)

const secret = "middleware-secret"

func seedUser(t *testing.T, st *store.MemoryStore, role string) (*models.User, string) {
	t.Helper()
	user := &models.User{Name: "Sam", Email: role + "@example.com", Role: role}
	if err := st.InsertUser(context.Background(), user); err != nil {
		t.Fatal(err)
	}
	token, _, err := helper.GenerateAllTokens(secret, user)
	if err != nil {
		t.Fatal(err)
	}
	return user, token
}

func whoAmI(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	w.Write([]byte(user.Email))
}

func TestAuthentication(t *testing.T) {
	st := store.NewMemoryStore()
	user, token := seedUser(t, st, models.RoleUser)
	_, refresh, _ := helper.GenerateAllTokens(secret, user)
	auth := NewAuth(secret, st, zap.NewNop())
	handler := auth.Authentication(http.HandlerFunc(whoAmI))

	cases := []struct {
		name       string
		header     string
		query      string
		wantStatus int
		wantMsg    string
	}{
		{"missing", "", "", http.StatusUnauthorized, "No Authorization header provided"},
		{"malformed", "Token " + token, "", http.StatusUnauthorized, "Invalid Authorization format"},
		{"refresh token", "Bearer " + refresh, "", http.StatusUnauthorized, "Not authorized, token failed"},
		{"bearer", "Bearer " + token, "", http.StatusOK, ""},
		{"query", "", "?token=" + token, http.StatusOK, ""},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/cart"+tc.query, nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != tc.wantStatus {
			t.Errorf("%s: status %d, want %d", tc.name, rec.Code, tc.wantStatus)
			continue
		}
		if tc.wantStatus == http.StatusOK {
			if rec.Body.String() != user.Email {
				t.Errorf("%s: user in context = %q", tc.name, rec.Body.String())
			}
			continue
		}
		var body struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if body.Success || body.Message != tc.wantMsg {
			t.Errorf("%s: body = %+v", tc.name, body)
		}
	}
}

func TestAuthenticationUnknownUser(t *testing.T) {
	st := store.NewMemoryStore()
	ghost := &models.User{ID: primitive.NewObjectID(), Name: "Ghost", Email: "ghost@example.com"}
	token, _, err := helper.GenerateAllTokens(secret, ghost)
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	NewAuth(secret, st, zap.NewNop()).Authentication(http.HandlerFunc(whoAmI)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestAdminOnly(t *testing.T) {
	st := store.NewMemoryStore()
	_, userToken := seedUser(t, st, models.RoleUser)
	_, adminToken := seedUser(t, st, models.RoleAdmin)
	handler := NewAuth(secret, st, zap.NewNop()).Authentication(AdminOnly(http.HandlerFunc(whoAmI)))

	for token, want := range map[string]int{userToken: http.StatusForbidden, adminToken: http.StatusOK} {
		req := httptest.NewRequest(http.MethodPost, "/food", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Errorf("status = %d, want %d", rec.Code, want)
		}
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	var seen string
	handler := RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	id := rec.Header().Get("X-Request-ID")
	if id == "" || id != seen {
		t.Errorf("request id header %q, context %q", id, seen)
	}
	entries := logs.FilterMessage("request completed").All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusNotFound) || fields["path"] != "/missing" {
		t.Errorf("fields = %v", fields)
	}
	if entries[0].Level != zap.WarnLevel {
		t.Errorf("level = %v", entries[0].Level)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "given")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") != "given" {
		t.Errorf("incoming request id not kept")
	}
}
