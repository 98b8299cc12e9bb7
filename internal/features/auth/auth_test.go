package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/servepupil/api/internal/config"
	"github.com/servepupil/api/internal/features/profiles"
	"github.com/servepupil/api/internal/pkg/token"
	"github.com/servepupil/api/internal/pkg/treestore"
	apperrors "github.com/servepupil/api/pkg/errors"
)

// fakeProvider resolves id tokens of the form "token:{uid}:{email}".
type fakeProvider struct {
	created map[string]string
}

func (f *fakeProvider) CreateUser(ctx context.Context, email, password string) (string, error) {
	uid := "uid-" + email
	f.created[email] = uid
	return uid, nil
}

func (f *fakeProvider) VerifyIDToken(ctx context.Context, idToken string) (string, string, error) {
	parts := strings.SplitN(idToken, ":", 3)
	if len(parts) != 3 || parts[0] != "token" {
		return "", "", apperrors.ErrUnauthorized
	}
	return parts[1], parts[2], nil
}

func (f *fakeProvider) PasswordResetLink(ctx context.Context, email string) (string, error) {
	return "https://reset.example.com/" + email, nil
}

func setupAuthRouter(store *treestore.MemoryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{AdminEmail: "admin@gmail.com", JWTSecret: "s", JWTExpireHours: 1}
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTExpireHours)

	r := gin.New()
	api := r.Group("/api/v1")
	RegisterRoutes(api, &fakeProvider{created: map[string]string{}}, profiles.NewRepository(store), tokens, cfg, nil)
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSignup(t *testing.T) {
	r := setupAuthRouter(treestore.NewMemoryStore())

	w := postJSON(r, "/api/v1/auth/signup", SignupRequest{Email: "a@example.com", Password: "secret1"})
	require.Equal(t, 201, w.Code)

	var resp struct {
		Data SignupResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "uid-a@example.com", resp.Data.UID)
}

func TestSignupRejectsShortPassword(t *testing.T) {
	r := setupAuthRouter(treestore.NewMemoryStore())

	w := postJSON(r, "/api/v1/auth/signup", SignupRequest{Email: "a@example.com", Password: "abc"})
	require.Equal(t, 400, w.Code)
}

func TestSessionIssuesToken(t *testing.T) {
	r := setupAuthRouter(treestore.NewMemoryStore())

	w := postJSON(r, "/api/v1/auth/session", SessionRequest{IDToken: "token:u1:u1@example.com"})
	require.Equal(t, 200, w.Code)

	var resp struct {
		Data SessionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "u1", resp.Data.UID)
	require.False(t, resp.Data.Admin)
	require.NotEmpty(t, resp.Data.Token)

	claims, err := token.NewManager("s", 1).Validate(resp.Data.Token)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UID)
}

func TestSessionAdminEmailIsCaseInsensitive(t *testing.T) {
	r := setupAuthRouter(treestore.NewMemoryStore())

	w := postJSON(r, "/api/v1/auth/session", SessionRequest{IDToken: "token:a1:Admin@Gmail.com"})
	require.Equal(t, 200, w.Code)

	var resp struct {
		Data SessionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Data.Admin)
}

func TestSessionRefusedWhenBlocked(t *testing.T) {
	store := treestore.NewMemoryStore()
	require.NoError(t, store.Set(t.Context(), "users/u1/isBlocked", true))
	r := setupAuthRouter(store)

	w := postJSON(r, "/api/v1/auth/session", SessionRequest{IDToken: "token:u1:u1@example.com"})
	require.Equal(t, 403, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "ACCOUNT_BLOCKED", body["code"])
}

func TestSessionRejectsBadToken(t *testing.T) {
	r := setupAuthRouter(treestore.NewMemoryStore())

	w := postJSON(r, "/api/v1/auth/session", SessionRequest{IDToken: "garbage"})
	require.Equal(t, 401, w.Code)
}

func TestPasswordReset(t *testing.T) {
	r := setupAuthRouter(treestore.NewMemoryStore())

	w := postJSON(r, "/api/v1/auth/password-reset", PasswordResetRequest{Email: "a@example.com"})
	require.Equal(t, 200, w.Code)

	var resp struct {
		Data PasswordResetResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "https://reset.example.com/a@example.com", resp.Data.ResetLink)
}
