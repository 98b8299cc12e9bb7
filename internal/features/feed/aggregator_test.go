package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/servepupil/api/internal/pkg/treestore"
)

func putRequest(t *testing.T, store *treestore.MemoryStore, owner string) string {
	t.Helper()
	id, err := store.Push(t.Context(), "requests/"+owner)
	require.NoError(t, err)
	require.NoError(t, store.Set(t.Context(), "requests/"+owner+"/"+id, map[string]interface{}{
		"description": "help",
		"requestType": "errand",
		"place":       "park",
		"timestamp":   treestore.ServerTimestamp,
		"likes":       0,
	}))
	return id
}

func follow(t *testing.T, store *treestore.MemoryStore, follower, followee string) {
	t.Helper()
	require.NoError(t, store.Set(t.Context(), "users/"+follower+"/following/"+followee, true))
	require.NoError(t, store.Set(t.Context(), "users/"+followee+"/followers/"+follower, true))
}

func feedIDs(a *Aggregator) []string {
	snap := a.Snapshot()
	ids := make([]string, 0, len(snap))
	for _, req := range snap {
		ids = append(ids, req.ID)
	}
	return ids
}

func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 10*time.Millisecond, msg)
}

func TestSnapshotSeesExistingRequests(t *testing.T) {
	store := treestore.NewMemoryStore()
	follow(t, store, "bob", "alice")
	r1 := putRequest(t, store, "alice")

	agg, err := NewAggregator(t.Context(), store, "bob")
	require.NoError(t, err)
	defer agg.Close()

	require.NoError(t, agg.WaitReady(t.Context()))
	require.Equal(t, []string{r1}, feedIDs(agg))
}

func TestNewRequestAppears(t *testing.T) {
	store := treestore.NewMemoryStore()
	follow(t, store, "bob", "alice")

	agg, err := NewAggregator(t.Context(), store, "bob")
	require.NoError(t, err)
	defer agg.Close()
	require.NoError(t, agg.WaitReady(t.Context()))
	require.Empty(t, feedIDs(agg))

	r1 := putRequest(t, store, "alice")
	eventually(t, func() bool {
		ids := feedIDs(agg)
		return len(ids) == 1 && ids[0] == r1
	}, "new request should reach the feed")
}

func TestDeletedRequestDisappears(t *testing.T) {
	store := treestore.NewMemoryStore()
	follow(t, store, "bob", "alice")
	r1 := putRequest(t, store, "alice")
	r2 := putRequest(t, store, "alice")

	agg, err := NewAggregator(t.Context(), store, "bob")
	require.NoError(t, err)
	defer agg.Close()
	require.NoError(t, agg.WaitReady(t.Context()))
	require.Len(t, feedIDs(agg), 2)

	require.NoError(t, store.Delete(t.Context(), "requests/alice/"+r1))
	eventually(t, func() bool {
		ids := feedIDs(agg)
		return len(ids) == 1 && ids[0] == r2
	}, "deleted request should leave the feed")
}

func TestFollowAndUnfollowReshapeFeed(t *testing.T) {
	store := treestore.NewMemoryStore()
	rAlice := putRequest(t, store, "alice")
	putRequest(t, store, "carol")

	agg, err := NewAggregator(t.Context(), store, "bob")
	require.NoError(t, err)
	defer agg.Close()
	require.NoError(t, agg.WaitReady(t.Context()))
	require.Empty(t, feedIDs(agg))

	follow(t, store, "bob", "alice")
	eventually(t, func() bool {
		ids := feedIDs(agg)
		return len(ids) == 1 && ids[0] == rAlice
	}, "followee content should appear after follow")

	follow(t, store, "bob", "carol")
	eventually(t, func() bool {
		return len(feedIDs(agg)) == 2
	}, "second followee should contribute")

	require.NoError(t, store.Delete(t.Context(), "users/bob/following/carol"))
	eventually(t, func() bool {
		ids := feedIDs(agg)
		return len(ids) == 1 && ids[0] == rAlice
	}, "unfollowed content should drop out")
}

func TestFeedIsNewestFirst(t *testing.T) {
	store := treestore.NewMemoryStore()
	now := time.UnixMilli(1700000000000)
	store.Now = func() time.Time { return now }

	follow(t, store, "bob", "alice")
	follow(t, store, "bob", "carol")

	old := putRequest(t, store, "alice")
	now = now.Add(time.Minute)
	fresh := putRequest(t, store, "carol")

	agg, err := NewAggregator(t.Context(), store, "bob")
	require.NoError(t, err)
	defer agg.Close()
	require.NoError(t, agg.WaitReady(t.Context()))

	require.Equal(t, []string{fresh, old}, feedIDs(agg))
}

func TestCloseStopsUpdates(t *testing.T) {
	store := treestore.NewMemoryStore()
	follow(t, store, "bob", "alice")

	agg, err := NewAggregator(t.Context(), store, "bob")
	require.NoError(t, err)
	require.NoError(t, agg.WaitReady(t.Context()))

	agg.Close()
	putRequest(t, store, "alice")

	time.Sleep(50 * time.Millisecond)
	require.Empty(t, feedIDs(agg))
}
