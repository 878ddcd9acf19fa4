package builder

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
)

// Phase names a stage of a build.
type Phase string

const (
	PhaseSolve Phase = "solve"
	PhaseShard Phase = "shard"
	PhaseDone  Phase = "done"
)

// Progress is a snapshot passed to a ProgressFunc.
type Progress struct {
	Phase Phase

	// Reachable is the number of legal positions before symmetry reduction.
	Reachable int
	// Solved counts canonical positions searched so far.
	Solved int
	// Written counts records stored in completed shards.
	Written int
	// Shards counts shards written out of TotalShards.
	Shards, TotalShards int

	Started time.Time
}

// Elapsed is the time since the build started.
func (p Progress) Elapsed() time.Duration {
	return time.Since(p.Started)
}

// ProgressFunc receives progress snapshots. Calls are serialized.
type ProgressFunc func(Progress)

// FormatBytes renders a size in IEC units, e.g. "1.5 KiB".
func FormatBytes(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}

// FormatDuration renders d at a precision suited to its magnitude.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	}
}

// DefaultProgressFunc redraws a single status line on stdout.
func DefaultProgressFunc(p Progress) {
	printProgress(os.Stdout, p)
}

func printProgress(w io.Writer, p Progress) {
	switch p.Phase {
	case PhaseSolve:
		fmt.Fprintf(w, "\r[solve] %s canonical positions of %s reachable",
			humanize.Comma(int64(p.Solved)), humanize.Comma(int64(p.Reachable)))
	case PhaseShard:
		fmt.Fprintf(w, "\r[shard] %d/%d shards, %s records", p.Shards, p.TotalShards, humanize.Comma(int64(p.Written)))
	case PhaseDone:
		fmt.Fprintf(w, "\n[done] %s records in %d shards (%s)\n",
			humanize.Comma(int64(p.Written)), p.Shards, FormatDuration(p.Elapsed()))
	}
}
