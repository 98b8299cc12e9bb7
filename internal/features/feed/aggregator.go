package feed

import (
	"context"
	"sort"
	"sync"

	"github.com/servepupil/api/internal/features/requests"
	"github.com/servepupil/api/internal/pkg/logger"
	"github.com/servepupil/api/internal/pkg/treestore"
	apperrors "github.com/servepupil/api/pkg/errors"
)

// Aggregator maintains one user's personal feed as a live view over the
// tree: a subscription on users/{me}/following drives per-followee
// subscriptions on requests/{uid}, and every followee event replaces
// that followee's whole slice of the feed. All state lives behind a
// single event loop goroutine; Snapshot reads a copy under a lock.
//
// There is no cross-followee ordering guarantee. Each followee's slab
// is internally current, and the merged feed is the union of the latest
// snapshots sorted newest first.
type Aggregator struct {
	store treestore.Store
	uid   string

	mu        sync.Mutex
	byUID     map[string][]*requests.Request
	followees map[string]*followee

	followingSub treestore.Subscription
	events       chan followeeEvent

	ready     chan struct{}
	readyOnce sync.Once
	changes   chan struct{}

	done      chan struct{}
	closeOnce sync.Once
	loopDone  chan struct{}
}

type followee struct {
	uid    string
	sub    treestore.Subscription
	cancel context.CancelFunc
}

type followeeEvent struct {
	uid   string
	value interface{}
	// gone marks a followee whose subscription ended
	gone bool
}

// NewAggregator opens the following-set subscription and starts the
// event loop. The caller owns the aggregator and must Close it.
func NewAggregator(ctx context.Context, store treestore.Store, uid string) (*Aggregator, error) {
	sub, err := store.Observe(ctx, "users/"+uid+"/following")
	if err != nil {
		return nil, apperrors.Remote(err)
	}

	a := &Aggregator{
		store:        store,
		uid:          uid,
		byUID:        make(map[string][]*requests.Request),
		followees:    make(map[string]*followee),
		followingSub: sub,
		events:       make(chan followeeEvent, 16),
		ready:        make(chan struct{}),
		changes:      make(chan struct{}, 1),
		done:         make(chan struct{}),
		loopDone:     make(chan struct{}),
	}
	go a.loop(ctx)
	return a, nil
}

// WaitReady blocks until the initial following-set snapshot has been
// applied and every initial followee has delivered its first slab.
func (a *Aggregator) WaitReady(ctx context.Context) error {
	select {
	case <-a.ready:
		return nil
	case <-a.done:
		return apperrors.Remote(context.Canceled)
	case <-ctx.Done():
		return apperrors.Remote(ctx.Err())
	}
}

// Changes signals that the feed content may have moved. Signals are
// coalesced; consumers re-read Snapshot on each tick.
func (a *Aggregator) Changes() <-chan struct{} {
	return a.changes
}

func (a *Aggregator) notifyChange() {
	select {
	case a.changes <- struct{}{}:
	default:
	}
}

// Snapshot returns the merged feed, newest first. The slice is a copy.
func (a *Aggregator) Snapshot() []*requests.Request {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []*requests.Request
	for _, slab := range a.byUID {
		out = append(out, slab...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp > out[j].Timestamp
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// Close tears down the following subscription and every per-followee
// subscription, then waits for the event loop to drain.
func (a *Aggregator) Close() {
	a.closeOnce.Do(func() {
		close(a.done)
		a.followingSub.Close()
		<-a.loopDone
	})
}

func (a *Aggregator) loop(ctx context.Context) {
	defer close(a.loopDone)
	defer func() {
		a.mu.Lock()
		for _, f := range a.followees {
			f.cancel()
			f.sub.Close()
		}
		a.followees = make(map[string]*followee)
		a.mu.Unlock()
	}()

	// pending counts the initial followees that have not yet delivered
	// their first slab; ready fires when it reaches zero.
	firstSet := true
	pending := 0
	seeded := make(map[string]bool)

	maybeReady := func() {
		if pending == 0 {
			a.readyOnce.Do(func() { close(a.ready) })
		}
	}

	for {
		select {
		case <-a.done:
			return
		case ev, ok := <-a.followingSub.Events():
			if !ok {
				return
			}
			added, _ := a.applyFollowingSet(ctx, ev.Value)
			if firstSet {
				pending = len(added)
				for _, uid := range added {
					seeded[uid] = false
				}
				firstSet = false
				maybeReady()
			}
			a.notifyChange()
		case fe := <-a.events:
			if fe.gone {
				continue
			}
			a.applyFolloweeSlab(fe.uid, fe.value)
			a.notifyChange()
			if done, tracked := seeded[fe.uid]; tracked && !done {
				seeded[fe.uid] = true
				pending--
				maybeReady()
			}
		}
	}
}

// applyFollowingSet diffs the new following set against the live
// followee subscriptions, starting and stopping pumps as needed.
func (a *Aggregator) applyFollowingSet(ctx context.Context, value interface{}) (added, removed []string) {
	next := make(map[string]bool)
	if set, ok := value.(map[string]interface{}); ok {
		for uid := range set {
			next[uid] = true
		}
	}

	a.mu.Lock()
	for uid := range next {
		if _, live := a.followees[uid]; !live {
			added = append(added, uid)
		}
	}
	for uid, f := range a.followees {
		if !next[uid] {
			removed = append(removed, uid)
			f.cancel()
			f.sub.Close()
			delete(a.followees, uid)
			delete(a.byUID, uid)
		}
	}
	a.mu.Unlock()

	for _, uid := range added {
		a.watchFollowee(ctx, uid)
	}
	sort.Strings(added)
	sort.Strings(removed)
	return added, removed
}

func (a *Aggregator) watchFollowee(ctx context.Context, uid string) {
	subCtx, cancel := context.WithCancel(ctx)
	sub, err := a.store.Observe(subCtx, "requests/"+uid)
	if err != nil {
		cancel()
		logger.Warn("feed: cannot observe requests of %s: %v", uid, err)
		// an unobservable followee still counts as seeded
		select {
		case a.events <- followeeEvent{uid: uid, value: nil}:
		case <-a.done:
		}
		return
	}

	a.mu.Lock()
	a.followees[uid] = &followee{uid: uid, sub: sub, cancel: cancel}
	a.mu.Unlock()

	go func() {
		for ev := range sub.Events() {
			select {
			case a.events <- followeeEvent{uid: uid, value: ev.Value}:
			case <-a.done:
				return
			}
		}
		select {
		case a.events <- followeeEvent{uid: uid, gone: true}:
		case <-a.done:
		}
	}()
}

// applyFolloweeSlab replaces one followee's whole contribution to the
// feed with the content of the latest snapshot.
func (a *Aggregator) applyFolloweeSlab(uid string, value interface{}) {
	var slab []*requests.Request
	if tree, ok := value.(map[string]interface{}); ok {
		slab = make([]*requests.Request, 0, len(tree))
		for id, raw := range tree {
			record, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			slab = append(slab, decodeRequest(uid, id, record))
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	// drop slabs from followees that were unfollowed while the event
	// was in flight
	if _, live := a.followees[uid]; !live {
		return
	}
	if slab == nil {
		delete(a.byUID, uid)
	} else {
		a.byUID[uid] = slab
	}
}

func decodeRequest(ownerUID, id string, record map[string]interface{}) *requests.Request {
	req := &requests.Request{ID: id, OwnerUID: ownerUID}
	if s, ok := record["description"].(string); ok {
		req.Description = s
	}
	if s, ok := record["requestType"].(string); ok {
		req.RequestType = s
	}
	if s, ok := record["place"].(string); ok {
		req.Place = s
	}
	if f, ok := record["latitude"].(float64); ok {
		req.Latitude = f
	}
	if f, ok := record["longitude"].(float64); ok {
		req.Longitude = f
	}
	if f, ok := record["timestamp"].(float64); ok {
		req.Timestamp = f
	}
	if s, ok := record["imageUrl"].(string); ok {
		req.ImageURL = s
	}
	if set, ok := record["likedBy"].(map[string]interface{}); ok {
		req.LikedBy = make(map[string]bool, len(set))
		for uid := range set {
			req.LikedBy[uid] = true
		}
	}
	if cs, ok := record["comments"].(map[string]interface{}); ok {
		req.Comments = cs
	}
	return req
}
