// Package guard deduplicates form submissions. Every rendered form carries a
// one-time token; posts with the same token run the submission once and all
// receive its result.
package guard

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const DefaultTTL = 10 * time.Minute

type outcome struct {
	val any
	err error
	at  time.Time
}

type Guard struct {
	group singleflight.Group
	ttl   time.Duration
	now   func() time.Time

	mu   sync.Mutex
	done map[string]outcome
}

func New(ttl time.Duration) *Guard {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Guard{
		ttl:  ttl,
		now:  time.Now,
		done: make(map[string]outcome),
	}
}

// Token issues a fresh form token.
func (g *Guard) Token() string {
	return uuid.NewString()
}

// Do runs fn once per token. Concurrent calls with the same token wait for the
// first one, later calls within the TTL get the remembered outcome. repeated
// reports whether the caller did not run fn itself. An empty token disables
// deduplication.
func (g *Guard) Do(token string, fn func() (any, error)) (val any, err error, repeated bool) {
	if token == "" {
		val, err = fn()
		return val, err, false
	}

	if out, ok := g.lookup(token); ok {
		return out.val, out.err, true
	}

	ran := false
	val, err, _ = g.group.Do(token, func() (any, error) {
		// A caller may have completed between lookup and Do.
		if out, ok := g.lookup(token); ok {
			return out.val, out.err
		}

		ran = true
		v, e := fn()

		g.mu.Lock()
		g.done[token] = outcome{val: v, err: e, at: g.now()}
		g.mu.Unlock()
		return v, e
	})
	return val, err, !ran
}

func (g *Guard) lookup(token string) (outcome, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out, ok := g.done[token]
	if ok && g.now().Sub(out.at) > g.ttl {
		delete(g.done, token)
		return outcome{}, false
	}
	return out, ok
}

// Sweep forgets outcomes older than the TTL and reports how many went.
func (g *Guard) Sweep(now time.Time) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := 0
	for k, out := range g.done {
		if now.Sub(out.at) > g.ttl {
			delete(g.done, k)
			n++
		}
	}
	return n
}
