package matrixscene

import (
	"fmt"
	"os"
	"time"
)

// renderStats holds per-pass timing and cache metrics. Only populated when
// the render context has Debug set.
type renderStats struct {
	sampleTime    time.Duration
	compositeTime time.Duration
	cacheHits     int
	cacheMisses   int
	nodeCount     int
	animCount     int
}

// logStats prints one render pass worth of stats to stderr.
func logStats(t float64, stats renderStats) {
	total := stats.sampleTime + stats.compositeTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[matrixscene] t=%.3f sample: %v | composite: %v | total: %v\n",
		t, stats.sampleTime, stats.compositeTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[matrixscene] nodes: %d | animations: %d | cache hits: %d | misses: %d\n",
		stats.nodeCount, stats.animCount, stats.cacheHits, stats.cacheMisses)
}

// logError is the fallback sink for isolated non-fatal errors when no
// handler is configured.
func logError(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "[matrixscene] error: %v\n", err)
}
