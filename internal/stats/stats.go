package stats

import (
	"log"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Collector counts the silent skips the run tolerates and tracks the
// shape of the generated sessions for the end-of-run summary.
type Collector struct {
	DroppedTimestamps    int64
	OrdersWithoutItems   int64
	CustomerLookupMisses int64

	sessionEvents *hdrhistogram.Histogram
	stepGaps      *hdrhistogram.Histogram
}

func New() *Collector {
	return &Collector{
		// events per session: small counts, 3 significant figures
		sessionEvents: hdrhistogram.New(1, 1000, 3),
		// inter-event gaps in seconds, up to an hour
		stepGaps: hdrhistogram.New(1, 3600, 3),
	}
}

func (c *Collector) RecordSession(events int) {
	c.sessionEvents.RecordValue(int64(events))
}

func (c *Collector) RecordGap(gap time.Duration) {
	c.stepGaps.RecordValue(int64(gap.Seconds()))
}

// Sessions is the number of sessions recorded so far.
func (c *Collector) Sessions() int64 {
	return c.sessionEvents.TotalCount()
}

func (c *Collector) LogSummary(logger *log.Logger) {
	logger.Printf("Skips: dropped_timestamps=%d orders_without_items=%d customer_lookup_misses=%d",
		c.DroppedTimestamps, c.OrdersWithoutItems, c.CustomerLookupMisses)
	if c.sessionEvents.TotalCount() > 0 {
		logger.Printf("Events per session: p50=%d p95=%d max=%d",
			c.sessionEvents.ValueAtQuantile(50),
			c.sessionEvents.ValueAtQuantile(95),
			c.sessionEvents.Max())
	}
	if c.stepGaps.TotalCount() > 0 {
		logger.Printf("Inter-event gap seconds: p50=%d p95=%d max=%d",
			c.stepGaps.ValueAtQuantile(50),
			c.stepGaps.ValueAtQuantile(95),
			c.stepGaps.Max())
	}
}
