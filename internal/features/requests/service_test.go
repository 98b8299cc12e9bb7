package requests

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/servepupil/api/internal/features/profiles"
	"github.com/servepupil/api/internal/pkg/objectstore"
	"github.com/servepupil/api/internal/pkg/treestore"
	apperrors "github.com/servepupil/api/pkg/errors"
)

type recordingFlags struct {
	cleared []string
	fail    error
}

func (f *recordingFlags) Clear(ctx context.Context, kind, targetID string) error {
	if f.fail != nil {
		return f.fail
	}
	f.cleared = append(f.cleared, kind+"/"+targetID)
	return nil
}

func newTestService(store *treestore.MemoryStore, objects *objectstore.MemoryStore, flags ReportFlags) *Service {
	return NewService(NewRepository(store), profiles.NewRepository(store), objects, flags)
}

// brokenDeleteStore fails every Delete while passing other ops through.
type brokenDeleteStore struct {
	treestore.Store
}

func (b *brokenDeleteStore) Delete(ctx context.Context, path string) error {
	return errors.New("simulated outage")
}

func registerUser(t *testing.T, store *treestore.MemoryStore, uid, name string) {
	t.Helper()
	require.NoError(t, store.Set(t.Context(), "users/"+uid, map[string]interface{}{
		"name": name, "bio": "", "phone": "", "imageUrl": "",
	}))
}

func TestCreateRequiresImage(t *testing.T) {
	store := treestore.NewMemoryStore()
	svc := newTestService(store, objectstore.NewMemoryStore(), &recordingFlags{})

	_, err := svc.Create(t.Context(), "alice", CreateInput{Description: "d", RequestType: "t", Place: "p"})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateRequiresProfile(t *testing.T) {
	store := treestore.NewMemoryStore()
	svc := newTestService(store, objectstore.NewMemoryStore(), &recordingFlags{})

	_, err := svc.Create(t.Context(), "ghost", CreateInput{
		Description: "d", RequestType: "t", Place: "p",
		Image: strings.NewReader("jpeg"),
	})
	require.ErrorIs(t, err, apperrors.ErrNotRegistered)
}

func TestCreateWritesRecordAndImage(t *testing.T) {
	store := treestore.NewMemoryStore()
	objects := objectstore.NewMemoryStore()
	svc := newTestService(store, objects, &recordingFlags{})
	registerUser(t, store, "alice", "Alice")

	req, err := svc.Create(t.Context(), "alice", CreateInput{
		Description: "need a ladder",
		RequestType: "tools",
		Place:       "garage",
		Latitude:    1.5,
		Longitude:   2.5,
		Image:       strings.NewReader("jpeg"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, req.ID)
	require.Equal(t, "alice", req.OwnerUID)
	require.Equal(t, "need a ladder", req.Description)
	require.NotZero(t, req.Timestamp)
	require.True(t, objects.Has("request_images/"+req.ID+".jpg"))

	// the legacy counter is written as zero; the count is derived
	var likes int
	require.NoError(t, store.Get(t.Context(), "requests/alice/"+req.ID+"/likes", &likes))
	require.Zero(t, likes)
	require.Zero(t, req.LikeCount())
}

func TestCreateSurfacesUploadFailure(t *testing.T) {
	store := treestore.NewMemoryStore()
	objects := objectstore.NewMemoryStore()
	objects.FailUploads = errors.New("cloud down")
	svc := newTestService(store, objects, &recordingFlags{})
	registerUser(t, store, "alice", "Alice")

	_, err := svc.Create(t.Context(), "alice", CreateInput{
		Description: "d", RequestType: "t", Place: "p",
		Image: strings.NewReader("jpeg"),
	})
	require.ErrorIs(t, err, apperrors.ErrRemoteOperation)
}

func TestEditMergePreservesChildren(t *testing.T) {
	store := treestore.NewMemoryStore()
	objects := objectstore.NewMemoryStore()
	svc := newTestService(store, objects, &recordingFlags{})
	registerUser(t, store, "alice", "Alice")

	req, err := svc.Create(t.Context(), "alice", CreateInput{
		Description: "before", RequestType: "t", Place: "p",
		Image: strings.NewReader("jpeg"),
	})
	require.NoError(t, err)

	require.NoError(t, store.Set(t.Context(), "requests/alice/"+req.ID+"/likedBy/bob", true))

	edited, err := svc.Edit(t.Context(), "alice", req.ID, EditInput{
		Description: "after", RequestType: "t", Place: "p",
	})
	require.NoError(t, err)
	require.Equal(t, "after", edited.Description)
	require.Equal(t, 1, edited.LikeCount())
	require.Equal(t, req.ImageURL, edited.ImageURL)
}

func TestEditUnknownRequest(t *testing.T) {
	store := treestore.NewMemoryStore()
	svc := newTestService(store, objectstore.NewMemoryStore(), &recordingFlags{})
	registerUser(t, store, "alice", "Alice")

	_, err := svc.Edit(t.Context(), "alice", "missing", EditInput{Description: "x"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteOwnerOnly(t *testing.T) {
	store := treestore.NewMemoryStore()
	svc := newTestService(store, objectstore.NewMemoryStore(), &recordingFlags{})
	registerUser(t, store, "alice", "Alice")

	req, err := svc.Create(t.Context(), "alice", CreateInput{
		Description: "d", RequestType: "t", Place: "p",
		Image: strings.NewReader("jpeg"),
	})
	require.NoError(t, err)

	err = svc.Delete(t.Context(), "mallory", false, "alice", req.ID)
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	// an admin may delete someone else's request
	require.NoError(t, svc.Delete(t.Context(), "admin", true, "alice", req.ID))
}

func TestDeleteClearsFlagAndSubtree(t *testing.T) {
	store := treestore.NewMemoryStore()
	flags := &recordingFlags{}
	svc := newTestService(store, objectstore.NewMemoryStore(), flags)
	registerUser(t, store, "alice", "Alice")

	req, err := svc.Create(t.Context(), "alice", CreateInput{
		Description: "d", RequestType: "t", Place: "p",
		Image: strings.NewReader("jpeg"),
	})
	require.NoError(t, err)
	require.NoError(t, store.Set(t.Context(), "requests/alice/"+req.ID+"/comments/c1", map[string]interface{}{
		"uid": "bob", "text": "hi", "timestamp": 1.0,
	}))

	require.NoError(t, svc.Delete(t.Context(), "alice", false, "alice", req.ID))

	ok, err := treestore.Exists(t.Context(), store, "requests/alice/"+req.ID)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, []string{"requests/" + req.ID}, flags.cleared)
}

func TestDeleteFlagFailureIsPartial(t *testing.T) {
	store := treestore.NewMemoryStore()
	flags := &recordingFlags{fail: errors.New("flag store down")}
	svc := newTestService(store, objectstore.NewMemoryStore(), flags)
	registerUser(t, store, "alice", "Alice")

	req, err := svc.Create(t.Context(), "alice", CreateInput{
		Description: "d", RequestType: "t", Place: "p",
		Image: strings.NewReader("jpeg"),
	})
	require.NoError(t, err)

	err = svc.Delete(t.Context(), "alice", false, "alice", req.ID)
	require.ErrorIs(t, err, apperrors.ErrPartialFailure)

	// the subtree is gone even though the flag clear failed
	ok, err := treestore.Exists(t.Context(), store, "requests/alice/"+req.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDeleteFailedSubtreeLeavesFlag(t *testing.T) {
	mem := treestore.NewMemoryStore()
	flags := &recordingFlags{}
	svc := newTestService(mem, objectstore.NewMemoryStore(), flags)
	registerUser(t, mem, "alice", "Alice")

	req, err := svc.Create(t.Context(), "alice", CreateInput{
		Description: "d", RequestType: "t", Place: "p",
		Image: strings.NewReader("jpeg"),
	})
	require.NoError(t, err)

	broken := NewService(NewRepository(&brokenDeleteStore{Store: mem}), profiles.NewRepository(mem), objectstore.NewMemoryStore(), flags)
	err = broken.Delete(t.Context(), "alice", false, "alice", req.ID)
	require.Error(t, err)
	require.NotErrorIs(t, err, apperrors.ErrPartialFailure)

	// the flag clear was never attempted and the subtree is intact
	require.Empty(t, flags.cleared)
	ok, err := treestore.Exists(t.Context(), mem, "requests/alice/"+req.ID)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestGlobalFeedExcludesViewerNewestFirst(t *testing.T) {
	store := treestore.NewMemoryStore()
	now := time.UnixMilli(1700000000000)
	store.Now = func() time.Time { return now }
	svc := newTestService(store, objectstore.NewMemoryStore(), &recordingFlags{})
	registerUser(t, store, "alice", "Alice")
	registerUser(t, store, "bob", "Bob")

	first, err := svc.Create(t.Context(), "alice", CreateInput{
		Description: "old", RequestType: "t", Place: "p",
		Image: strings.NewReader("jpeg"),
	})
	require.NoError(t, err)

	now = now.Add(time.Minute)
	second, err := svc.Create(t.Context(), "alice", CreateInput{
		Description: "new", RequestType: "t", Place: "p",
		Image: strings.NewReader("jpeg"),
	})
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = svc.Create(t.Context(), "bob", CreateInput{
		Description: "mine", RequestType: "t", Place: "p",
		Image: strings.NewReader("jpeg"),
	})
	require.NoError(t, err)

	feed, err := svc.GlobalFeed(t.Context(), "bob")
	require.NoError(t, err)
	require.Len(t, feed, 2)
	require.Equal(t, second.ID, feed[0].ID)
	require.Equal(t, first.ID, feed[1].ID)
}
