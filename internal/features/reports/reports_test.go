package reports

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/servepupil/api/internal/features/requests"
	"github.com/servepupil/api/internal/pkg/token"
	"github.com/servepupil/api/internal/pkg/treestore"
	apperrors "github.com/servepupil/api/pkg/errors"
)

func TestReportFirstWins(t *testing.T) {
	store := treestore.NewMemoryStore()
	repo := NewRepository(store)

	require.NoError(t, repo.Report(t.Context(), KindRequests, "r1"))

	err := repo.Report(t.Context(), KindRequests, "r1")
	require.ErrorIs(t, err, apperrors.ErrAlreadyReported)

	flagged, err := repo.IsReported(t.Context(), KindRequests, "r1")
	require.NoError(t, err)
	require.True(t, flagged)
}

func TestListAndClear(t *testing.T) {
	store := treestore.NewMemoryStore()
	repo := NewRepository(store)

	require.NoError(t, repo.Report(t.Context(), KindComments, "c2"))
	require.NoError(t, repo.Report(t.Context(), KindComments, "c1"))
	require.NoError(t, repo.Report(t.Context(), KindUsers, "u1"))

	ids, err := repo.List(t.Context(), KindComments)
	require.NoError(t, err)
	require.Equal(t, []string{"c1", "c2"}, ids)

	require.NoError(t, repo.Clear(t.Context(), "comments", "c1"))
	ids, err = repo.List(t.Context(), KindComments)
	require.NoError(t, err)
	require.Equal(t, []string{"c2"}, ids)

	// clearing an absent flag is a no-op
	require.NoError(t, repo.Clear(t.Context(), "comments", "c1"))

	err = repo.Clear(t.Context(), "bogus", "x")
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func setupReportsRouter(store *treestore.MemoryStore, tokens *token.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	RegisterRoutes(api, NewRepository(store), requests.NewRepository(store), tokens)
	return r
}

func postReport(r *gin.Engine, tok, kind, targetID string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(CreateReportRequest{Kind: kind, TargetID: targetID})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/reports", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateReportOverHTTP(t *testing.T) {
	store := treestore.NewMemoryStore()
	require.NoError(t, store.Set(t.Context(), "requests/alice/r1", map[string]interface{}{
		"description": "x", "requestType": "y", "place": "z", "timestamp": 1.0,
	}))

	tokens := token.NewManager("s", 1)
	r := setupReportsRouter(store, tokens)

	bobTok, _ := tokens.Generate("bob", "bob@example.com", false)
	aliceTok, _ := tokens.Generate("alice", "alice@example.com", false)

	w := postReport(r, bobTok, "requests", "r1")
	require.Equal(t, 201, w.Code)

	// repeat report is acknowledged, not failed
	w = postReport(r, bobTok, "requests", "r1")
	require.Equal(t, 200, w.Code)
	var resp struct {
		Code string `json:"code"`
		Data ReportResponse
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "ALREADY_REPORTED", resp.Code)
	require.Equal(t, StatusAlreadyReported, resp.Data.Status)

	// owners cannot report their own request
	w = postReport(r, aliceTok, "requests", "r1")
	require.Equal(t, 403, w.Code)

	w = postReport(r, bobTok, "sideways", "r1")
	require.Equal(t, 400, w.Code)
}
