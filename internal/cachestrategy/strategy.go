// Package cachestrategy provides the bounded eviction policies behind the
// LRU transposition table and the book shard cache.
package cachestrategy

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Strategy is a bounded map. Implementations are safe for concurrent use.
type Strategy[K comparable, V any] interface {
	// Get returns the value for key and counts it as a use.
	Get(key K) (V, bool)
	// Add stores value under key, evicting if the cache is full.
	Add(key K, value V)
	Len() int
	Purge()
}

// Policy names an eviction policy.
type Policy string

const (
	// LRU evicts the least recently used entry.
	LRU Policy = "lru"
	// TwoQ keeps entries read more than once apart from entries read once,
	// so a run of one-off late-game shards cannot flush the opening shards
	// every game reads.
	TwoQ Policy = "2q"
)

// New returns a cache of the given policy holding at most capacity
// entries. The empty policy means LRU.
func New[K comparable, V any](policy Policy, capacity int) (Strategy[K, V], error) {
	switch policy {
	case LRU, "":
		c, err := lru.New[K, V](capacity)
		if err != nil {
			return nil, err
		}
		return recency[K, V]{c}, nil
	case TwoQ:
		c, err := lru.New2Q[K, V](capacity)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache policy %q", policy)
	}
}

// recency drops the eviction flag lru.Cache.Add reports.
type recency[K comparable, V any] struct {
	*lru.Cache[K, V]
}

func (r recency[K, V]) Add(key K, value V) { r.Cache.Add(key, value) }
