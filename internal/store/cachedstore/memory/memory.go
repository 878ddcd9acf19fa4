// Package memory adapts a cachestrategy eviction policy into a shard cache
// backend.
package memory

import (
	"github.com/discochess/tictactoe/internal/cachestrategy"
	"github.com/discochess/tictactoe/internal/store/cachedstore"
)

var _ cachedstore.Backend = Backend{}

// Backend holds shards in process memory. Capacity and eviction order are
// those of the wrapped policy.
type Backend struct {
	policy cachestrategy.Strategy[int, []byte]
}

// New returns a Backend evicting by policy.
func New(policy cachestrategy.Strategy[int, []byte]) Backend {
	return Backend{policy: policy}
}

func (b Backend) Get(shardID int) ([]byte, bool) { return b.policy.Get(shardID) }

func (b Backend) Set(shardID int, data []byte) { b.policy.Add(shardID, data) }

func (b Backend) Purge() { b.policy.Purge() }

func (b Backend) Len() int { return b.policy.Len() }
