// Package cachedstore keeps recently read book shards in memory in front of
// a slower store.
package cachedstore

// Backend holds shard bytes under some eviction policy. The Store wrapping
// it does all accounting, so a Backend only stores and forgets.
type Backend interface {
	Get(shardID int) ([]byte, bool)
	Set(shardID int, data []byte)
	Purge()
	Len() int
}

// Stats reports how shard reads were served.
type Stats struct {
	// Hits were served from the backend.
	Hits int64
	// Misses went to the underlying store, either directly or by joining a
	// read already in flight.
	Misses int64
	// Loads counts reads actually issued to the underlying store.
	Loads int64
	// Size is the number of shards currently held.
	Size int
}

// HitRate returns the percentage of reads served from memory.
func (s Stats) HitRate() float64 {
	if s.Hits+s.Misses == 0 {
		return 0
	}
	return 100 * float64(s.Hits) / float64(s.Hits+s.Misses)
}

// Shared returns how many misses piggybacked on another reader's load.
func (s Stats) Shared() int64 {
	return s.Misses - s.Loads
}
