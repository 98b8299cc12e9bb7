package treestore

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"firebase.google.com/go/v4/db"
	"golang.org/x/oauth2"

	"github.com/servepupil/api/internal/pkg/logger"
)

// FirebaseStore implements Store over the Firebase Realtime Database.
//
// Point operations go through the admin SDK db client. The Go admin SDK has
// no listener API, so Observe streams the REST endpoint of the same database
// (text/event-stream) and mirrors put/patch events into a local snapshot of
// the observed subtree.
type FirebaseStore struct {
	client *db.Client
	dbURL  string
	tokens oauth2.TokenSource
	http   *http.Client
}

func NewFirebaseStore(client *db.Client, databaseURL string, tokens oauth2.TokenSource) *FirebaseStore {
	return &FirebaseStore{
		client: client,
		dbURL:  strings.TrimRight(databaseURL, "/"),
		tokens: tokens,
		http:   &http.Client{},
	}
}

func (f *FirebaseStore) Get(ctx context.Context, path string, v interface{}) error {
	return f.client.NewRef(path).Get(ctx, v)
}

func (f *FirebaseStore) Set(ctx context.Context, path string, v interface{}) error {
	return f.client.NewRef(path).Set(ctx, v)
}

func (f *FirebaseStore) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	return f.client.NewRef(path).Update(ctx, fields)
}

func (f *FirebaseStore) Delete(ctx context.Context, path string) error {
	return f.client.NewRef(path).Delete(ctx)
}

func (f *FirebaseStore) Push(ctx context.Context, path string) (string, error) {
	ref, err := f.client.NewRef(path).Push(ctx, nil)
	if err != nil {
		return "", err
	}
	return ref.Key, nil
}

func (f *FirebaseStore) Observe(ctx context.Context, path string) (Subscription, error) {
	ctx, cancel := context.WithCancel(ctx)
	sub := &firebaseSub{
		path:   Join(path),
		events: make(chan Event),
		cancel: cancel,
	}
	go sub.stream(ctx, f)
	return sub, nil
}

type firebaseSub struct {
	path   string
	events chan Event
	cancel context.CancelFunc
	once   sync.Once

	// mirror of the observed subtree, owned by the stream goroutine
	mirror interface{}
}

func (s *firebaseSub) Events() <-chan Event { return s.events }

func (s *firebaseSub) Close() {
	s.once.Do(s.cancel)
}

// stream keeps one SSE connection open, reconnecting with backoff until the
// subscription is closed.
func (s *firebaseSub) stream(ctx context.Context, f *FirebaseStore) {
	defer close(s.events)

	backoff := time.Second
	for {
		err := s.consume(ctx, f)
		if ctx.Err() != nil {
			return
		}
		logger.Warn("treestore: stream for %s dropped: %v, reconnecting in %s", s.path, err, backoff)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (s *firebaseSub) consume(ctx context.Context, f *FirebaseStore) error {
	tok, err := f.tokens.Token()
	if err != nil {
		return fmt.Errorf("token source: %w", err)
	}

	url := fmt.Sprintf("%s/%s.json?access_token=%s", f.dbURL, s.path, tok.AccessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := f.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream status %d", resp.StatusCode)
	}

	reader := bufio.NewReader(resp.Body)
	var eventName string
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimRight(line, "\r\n")

		switch {
		case strings.HasPrefix(line, "event:"):
			eventName = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if err := s.handle(ctx, eventName, data); err != nil {
				return err
			}
		}
	}
}

type streamPayload struct {
	Path string          `json:"path"`
	Data json.RawMessage `json:"data"`
}

func (s *firebaseSub) handle(ctx context.Context, event, data string) error {
	switch event {
	case "put", "patch":
	case "keep-alive", "":
		return nil
	case "cancel", "auth_revoked":
		return fmt.Errorf("stream terminated by server: %s", event)
	default:
		return nil
	}

	var payload streamPayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return err
	}
	var value interface{}
	if err := json.Unmarshal(payload.Data, &value); err != nil {
		return err
	}

	if event == "put" {
		s.mirror = applyPut(s.mirror, splitPath(payload.Path), value)
	} else {
		s.mirror = applyPatch(s.mirror, splitPath(payload.Path), value)
	}

	select {
	case s.events <- Event{Path: s.path, Value: deepCopy(s.mirror)}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func applyPut(mirror interface{}, segments []string, value interface{}) interface{} {
	if len(segments) == 0 {
		return value
	}
	node, ok := mirror.(map[string]interface{})
	if !ok {
		node = make(map[string]interface{})
	}
	child := applyPut(node[segments[0]], segments[1:], value)
	if child == nil {
		delete(node, segments[0])
	} else {
		node[segments[0]] = child
	}
	if len(node) == 0 {
		return nil
	}
	return node
}

func applyPatch(mirror interface{}, segments []string, value interface{}) interface{} {
	fields, ok := value.(map[string]interface{})
	if !ok {
		return applyPut(mirror, segments, value)
	}
	out := mirror
	for k, v := range fields {
		out = applyPut(out, append(append([]string{}, segments...), splitPath(k)...), v)
	}
	return out
}

var _ Store = (*FirebaseStore)(nil)
