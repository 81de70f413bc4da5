// Package reconcile merges a device-local collection into the per-user remote
// collection after sign-in.
package reconcile

import (
	"sync"
	"time"
)

// Union returns remote followed by the local entries whose key is not present
// in remote. When both sides hold the same key, combine decides the surviving
// entry; a nil combine keeps the remote one. Duplicate keys inside one side
// collapse onto their first occurrence.
func Union[T any, K comparable](remote, local []T, key func(T) K, combine func(remote, local T) T) []T {
	merged := make([]T, 0, len(remote)+len(local))
	index := make(map[K]int, len(remote)+len(local))
	for _, item := range remote {
		k := key(item)
		if _, ok := index[k]; ok {
			continue
		}
		index[k] = len(merged)
		merged = append(merged, item)
	}
	for _, item := range local {
		k := key(item)
		i, ok := index[k]
		if !ok {
			index[k] = len(merged)
			merged = append(merged, item)
			continue
		}
		if combine != nil {
			merged[i] = combine(merged[i], item)
		}
	}
	return merged
}

// Missing returns the local entries whose key is absent from remote.
func Missing[T any, K comparable](remote, local []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(remote))
	for _, item := range remote {
		seen[key(item)] = struct{}{}
	}
	missing := []T{}
	for _, item := range local {
		k := key(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		missing = append(missing, item)
	}
	return missing
}

// Key identifies one sign-in of a user on a device session. SignInID changes
// on every sign-in, so signing out and back in on the same session merges again.
type Key struct {
	SessionID string
	UserID    string
	SignInID  string
}

// Gate remembers which sign-ins already merged in this process. A key is
// marked only after its merge completed and is forgotten after ttl.
type Gate struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	merged map[Key]time.Time
}

func NewGate(ttl time.Duration) *Gate {
	return &Gate{ttl: ttl, now: time.Now, merged: map[Key]time.Time{}}
}

func (g *Gate) Done(k Key) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	expiresAt, ok := g.merged[k]
	return ok && g.now().Before(expiresAt)
}

// Mark records k and drops every expired key.
func (g *Gate) Mark(k Key) {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	for key, expiresAt := range g.merged {
		if !now.Before(expiresAt) {
			delete(g.merged, key)
		}
	}
	g.merged[k] = now.Add(g.ttl)
}

func (g *Gate) Reset(k Key) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.merged, k)
}

// Len reports how many keys the gate currently holds.
func (g *Gate) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.merged)
}
