package comments

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/servepupil/api/internal/features/profiles"
	"github.com/servepupil/api/internal/features/requests"
	"github.com/servepupil/api/internal/pkg/token"
	"github.com/servepupil/api/internal/pkg/treestore"
	apperrors "github.com/servepupil/api/pkg/errors"
)

func seedStore(t *testing.T) (*treestore.MemoryStore, string) {
	t.Helper()
	store := treestore.NewMemoryStore()

	require.NoError(t, store.Set(t.Context(), "users/alice", map[string]interface{}{
		"name": "Alice", "bio": "", "phone": "", "imageUrl": "",
	}))
	require.NoError(t, store.Set(t.Context(), "users/bob", map[string]interface{}{
		"name": "Bob", "bio": "", "phone": "", "imageUrl": "",
	}))

	requestID, err := store.Push(t.Context(), "requests/alice")
	require.NoError(t, err)
	require.NoError(t, store.Set(t.Context(), "requests/alice/"+requestID, map[string]interface{}{
		"description": "need a ride",
		"requestType": "transport",
		"place":       "town",
		"timestamp":   treestore.ServerTimestamp,
		"likes":       0,
	}))
	return store, requestID
}

func TestAddAndListOrdering(t *testing.T) {
	store, requestID := seedStore(t)
	repo := NewRepository(store)

	now := time.UnixMilli(1700000000000)
	store.Now = func() time.Time { return now }

	first, err := repo.Add(t.Context(), "alice", requestID, "bob", "first")
	require.NoError(t, err)

	now = now.Add(time.Second)
	second, err := repo.Add(t.Context(), "alice", requestID, "alice", "second")
	require.NoError(t, err)

	list, err := repo.List(t.Context(), "alice", requestID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, first, list[0].ID)
	require.Equal(t, "first", list[0].Text)
	require.Equal(t, second, list[1].ID)
	require.Less(t, list[0].Timestamp, list[1].Timestamp)
}

func TestGetAbsentComment(t *testing.T) {
	store, requestID := seedStore(t)
	repo := NewRepository(store)

	_, err := repo.Get(t.Context(), "alice", requestID, "missing")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteComment(t *testing.T) {
	store, requestID := seedStore(t)
	repo := NewRepository(store)

	id, err := repo.Add(t.Context(), "alice", requestID, "bob", "bye")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(t.Context(), "alice", requestID, id))

	list, err := repo.List(t.Context(), "alice", requestID)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestFindParent(t *testing.T) {
	store, requestID := seedStore(t)
	repo := NewRepository(store)

	id, err := repo.Add(t.Context(), "alice", requestID, "bob", "where am I")
	require.NoError(t, err)

	owner, reqID, err := repo.FindParent(t.Context(), id)
	require.NoError(t, err)
	require.Equal(t, "alice", owner)
	require.Equal(t, requestID, reqID)

	_, _, err = repo.FindParent(t.Context(), "nope")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestValidateText(t *testing.T) {
	_, err := validateText("   ")
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = validateText(strings.Repeat("x", 1001))
	require.ErrorIs(t, err, apperrors.ErrValidation)

	text, err := validateText("  hello  ")
	require.NoError(t, err)
	require.Equal(t, "hello", text)
}

func setupCommentsRouter(store *treestore.MemoryStore, tokens *token.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	RegisterRoutes(api, store, requests.NewRepository(store), profiles.NewRepository(store), tokens)
	return r
}

func TestCreateAndListOverHTTP(t *testing.T) {
	store, requestID := seedStore(t)
	tokens := token.NewManager("s", 1)
	r := setupCommentsRouter(store, tokens)

	bobTok, err := tokens.Generate("bob", "bob@example.com", false)
	require.NoError(t, err)

	body, _ := json.Marshal(CreateCommentRequest{Text: "nice request"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/requests/alice/"+requestID+"/comments", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+bobTok)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, 201, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/v1/requests/alice/"+requestID+"/comments", nil)
	req.Header.Set("Authorization", "Bearer "+bobTok)
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var resp struct {
		Data []CommentResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	require.Equal(t, "bob", resp.Data[0].UID)
	require.Equal(t, "Bob", resp.Data[0].AuthorName)
	require.Equal(t, "nice request", resp.Data[0].Text)
}

func TestCreateCommentOnMissingRequest(t *testing.T) {
	store, _ := seedStore(t)
	tokens := token.NewManager("s", 1)
	r := setupCommentsRouter(store, tokens)

	bobTok, _ := tokens.Generate("bob", "bob@example.com", false)

	body, _ := json.Marshal(CreateCommentRequest{Text: "hello"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/requests/alice/missing/comments", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+bobTok)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, 404, w.Code)
}

func TestDeleteCommentRequiresAdmin(t *testing.T) {
	store, requestID := seedStore(t)
	repo := NewRepository(store)
	id, err := repo.Add(t.Context(), "alice", requestID, "bob", "rude")
	require.NoError(t, err)

	tokens := token.NewManager("s", 1)
	r := setupCommentsRouter(store, tokens)

	bobTok, _ := tokens.Generate("bob", "bob@example.com", false)
	adminTok, _ := tokens.Generate("admin", "admin@gmail.com", true)

	path := "/api/v1/requests/alice/" + requestID + "/comments/" + id

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", path, nil)
	req.Header.Set("Authorization", "Bearer "+bobTok)
	r.ServeHTTP(w, req)
	require.Equal(t, 403, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("DELETE", path, nil)
	req.Header.Set("Authorization", "Bearer "+adminTok)
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)
}
