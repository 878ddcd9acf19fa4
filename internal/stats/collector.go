// Package stats names the engine's metrics and defines the sink they are
// reported to.
package stats

const (
	MetricSearches      = "tictactoe_searches_total"
	MetricNodes         = "tictactoe_nodes_total"
	MetricSearchSeconds = "tictactoe_search_seconds"
	MetricResets        = "tictactoe_resets_total"

	MetricTTHits       = "tictactoe_tt_hits_total"
	MetricTTMisses     = "tictactoe_tt_misses_total"
	MetricTTCollisions = "tictactoe_tt_collisions_total"
	MetricTTSize       = "tictactoe_tt_size"

	MetricBookLookups  = "tictactoe_book_lookups_total"
	MetricBookHits     = "tictactoe_book_hits_total"
	MetricBookMisses   = "tictactoe_book_misses_total"
	MetricShardFetches = "tictactoe_shard_fetches_total"

	MetricCacheHits   = "tictactoe_cache_hits_total"
	MetricCacheMisses = "tictactoe_cache_misses_total"
	MetricCacheSize   = "tictactoe_cache_size"
)

var help = map[string]string{
	MetricSearches:      "Engine searches run (best move, evaluate or analyze).",
	MetricNodes:         "Positions visited by negamax.",
	MetricSearchSeconds: "Wall time of one engine search.",
	MetricResets:        "Transposition table resets.",
	MetricTTHits:        "Transposition table probes that found their key.",
	MetricTTMisses:      "Transposition table probes that found nothing.",
	MetricTTCollisions:  "Stores that replaced an entry for a different position.",
	MetricTTSize:        "Occupied transposition table slots.",
	MetricBookLookups:   "Opening book lookups.",
	MetricBookHits:      "Opening book lookups that found the position.",
	MetricBookMisses:    "Opening book lookups that did not find the position.",
	MetricShardFetches:  "Book shards requested from storage or cache.",
	MetricCacheHits:     "Book shard reads served from memory.",
	MetricCacheMisses:   "Book shard reads that went to storage.",
	MetricCacheSize:     "Book shards held in memory.",
}

// Help describes a metric for exposition formats that want one. Unknown
// names describe themselves.
func Help(name string) string {
	if h, ok := help[name]; ok {
		return h
	}
	return name
}

// Collector receives metric updates. Implementations must be safe for
// concurrent use.
type Collector interface {
	IncCounter(name string, delta int64)
	SetGauge(name string, value int64)
	ObserveHistogram(name string, value float64)
}
