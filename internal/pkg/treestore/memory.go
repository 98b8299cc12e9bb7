package treestore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-process Store with full Observe support. It backs
// every test and local development runs without a realtime database.
//
// Mutations are applied under one lock and events are fanned out to
// subscriptions in commit order, matching the per-path ordering guarantee
// of the real store. Empty nodes do not exist: deleting the last child of a
// node prunes the node itself.
type MemoryStore struct {
	mu   sync.Mutex
	root map[string]interface{}
	subs map[*memorySub]struct{}
	gen  *pushIDGenerator

	// Now is the clock used for server timestamps and push ids.
	Now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		root: make(map[string]interface{}),
		subs: make(map[*memorySub]struct{}),
		gen:  newPushIDGenerator(),
		Now:  time.Now,
	}
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// normalize round-trips v through JSON so the tree only ever holds
// map[string]interface{}, []interface{}, float64, string, bool and nil,
// then resolves server timestamps.
func (m *MemoryStore) normalize(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return m.resolveServerValues(out), nil
}

func (m *MemoryStore) resolveServerValues(v interface{}) interface{} {
	node, ok := v.(map[string]interface{})
	if !ok {
		return v
	}
	if sv, ok := node[".sv"]; ok && len(node) == 1 && sv == "timestamp" {
		return float64(m.Now().UnixMilli())
	}
	for k, child := range node {
		node[k] = m.resolveServerValues(child)
	}
	return node
}

func (m *MemoryStore) lookup(segments []string) interface{} {
	var cur interface{} = m.root
	for _, seg := range segments {
		node, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur, ok = node[seg]
		if !ok {
			return nil
		}
	}
	return cur
}

func (m *MemoryStore) Get(ctx context.Context, path string, v interface{}) error {
	m.mu.Lock()
	value := m.lookup(splitPath(path))
	raw, err := json.Marshal(value)
	m.mu.Unlock()
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func (m *MemoryStore) Set(ctx context.Context, path string, v interface{}) error {
	value, err := m.normalize(v)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	segments := splitPath(path)
	if value == nil || isEmptyNode(value) {
		m.deleteAt(segments)
	} else {
		m.setAt(segments, value)
	}
	m.notify(path)
	return nil
}

func (m *MemoryStore) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	segments := splitPath(path)
	for key, v := range fields {
		value, err := m.normalize(v)
		if err != nil {
			return err
		}
		child := append(append([]string{}, segments...), splitPath(key)...)
		if value == nil || isEmptyNode(value) {
			m.deleteAt(child)
		} else {
			m.setAt(child, value)
		}
	}
	m.notify(path)
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deleteAt(splitPath(path))
	m.notify(path)
	return nil
}

func (m *MemoryStore) Push(ctx context.Context, path string) (string, error) {
	return m.gen.next(m.Now()), nil
}

func isEmptyNode(v interface{}) bool {
	node, ok := v.(map[string]interface{})
	return ok && len(node) == 0
}

func (m *MemoryStore) setAt(segments []string, value interface{}) {
	if len(segments) == 0 {
		node, ok := value.(map[string]interface{})
		if !ok {
			return
		}
		m.root = node
		return
	}

	cur := m.root
	for _, seg := range segments[:len(segments)-1] {
		child, ok := cur[seg].(map[string]interface{})
		if !ok {
			child = make(map[string]interface{})
			cur[seg] = child
		}
		cur = child
	}
	cur[segments[len(segments)-1]] = value
}

func (m *MemoryStore) deleteAt(segments []string) {
	if len(segments) == 0 {
		m.root = make(map[string]interface{})
		return
	}

	parents := make([]map[string]interface{}, 0, len(segments))
	cur := m.root
	for _, seg := range segments[:len(segments)-1] {
		parents = append(parents, cur)
		child, ok := cur[seg].(map[string]interface{})
		if !ok {
			return
		}
		cur = child
	}
	delete(cur, segments[len(segments)-1])

	// Prune now-empty ancestors.
	for i := len(parents) - 1; i >= 0; i-- {
		if len(cur) > 0 {
			break
		}
		delete(parents[i], segments[i])
		cur = parents[i]
	}
}

// notify delivers fresh snapshots to every subscription whose path is an
// ancestor or descendant of the mutated path. Called with m.mu held.
func (m *MemoryStore) notify(mutated string) {
	mutatedSegs := splitPath(mutated)
	for sub := range m.subs {
		if !pathsRelated(sub.segments, mutatedSegs) {
			continue
		}
		sub.enqueue(Event{Path: sub.path, Value: deepCopy(m.lookup(sub.segments))})
	}
}

func pathsRelated(a, b []string) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func deepCopy(v interface{}) interface{} {
	node, ok := v.(map[string]interface{})
	if !ok {
		return v
	}
	out := make(map[string]interface{}, len(node))
	for k, child := range node {
		out[k] = deepCopy(child)
	}
	return out
}

func (m *MemoryStore) Observe(ctx context.Context, path string) (Subscription, error) {
	sub := &memorySub{
		store:    m,
		path:     Join(path),
		segments: splitPath(path),
		events:   make(chan Event),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}

	m.mu.Lock()
	m.subs[sub] = struct{}{}
	// Initial attach replays current state as the first event.
	sub.enqueue(Event{Path: sub.path, Value: deepCopy(m.lookup(sub.segments))})
	m.mu.Unlock()

	go sub.pump()
	return sub, nil
}

// memorySub buffers events so that writers never block on slow consumers
// while still delivering in commit order.
type memorySub struct {
	store    *MemoryStore
	path     string
	segments []string

	mu    sync.Mutex
	queue []Event

	events chan Event
	wake   chan struct{}
	done   chan struct{}
	once   sync.Once
}

func (s *memorySub) Events() <-chan Event { return s.events }

func (s *memorySub) Close() {
	s.once.Do(func() {
		s.store.mu.Lock()
		delete(s.store.subs, s)
		s.store.mu.Unlock()
		close(s.done)
	})
}

func (s *memorySub) enqueue(ev Event) {
	s.mu.Lock()
	s.queue = append(s.queue, ev)
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *memorySub) pump() {
	defer close(s.events)
	for {
		s.mu.Lock()
		var next *Event
		if len(s.queue) > 0 {
			next = &s.queue[0]
			s.queue = s.queue[1:]
		}
		s.mu.Unlock()

		if next == nil {
			select {
			case <-s.wake:
				continue
			case <-s.done:
				return
			}
		}

		select {
		case s.events <- *next:
		case <-s.done:
			return
		}
	}
}

var _ Store = (*MemoryStore)(nil)

// Dump returns the whole tree as indented JSON, for debugging.
func (m *MemoryStore) Dump() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := json.MarshalIndent(m.root, "", "  ")
	if err != nil {
		return fmt.Sprintf("dump failed: %v", err)
	}
	return string(raw)
}
