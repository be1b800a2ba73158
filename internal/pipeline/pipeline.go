package pipeline

import (
	"context"
	"fmt"
	"log"

	"clickstream-generator/internal/clickstream"
	"clickstream-generator/internal/config"
	"clickstream-generator/internal/dataset"
	"clickstream-generator/internal/sink"
	"clickstream-generator/internal/stats"
)

// Run executes the whole batch: load and join the inputs, generate the
// funnel and browsing sessions, sort everything by timestamp, and write
// through the already-opened sink. Any stage error aborts the run.
func Run(ctx context.Context, cfg *config.Config, out sink.EventSink, dest string, logger *log.Logger) error {
	collector := stats.New()

	ds, err := dataset.Load(cfg.Inputs, cfg.Generation.MaxPurchaseSessions, cfg.Generation.Seed, logger)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	collector.DroppedTimestamps = int64(ds.DroppedTimestamps)

	policy := clickstream.PolicyFromConfig(cfg.Generation.Seed, cfg.Generation.Policy)

	funnel := &clickstream.FunnelGenerator{
		Policy:        policy,
		Stats:         collector,
		Logger:        logger,
		ProgressEvery: cfg.Generation.ProgressEvery,
	}
	funnelEvents := funnel.Generate(ds)

	browsing := &clickstream.BrowsingGenerator{
		Policy:        policy,
		Stats:         collector,
		Logger:        logger,
		Sessions:      cfg.Generation.NonConversionSessions,
		ProgressEvery: cfg.Generation.ProgressEvery,
	}
	browsingEvents := browsing.Generate(ds)

	events := make([]clickstream.Event, 0, len(funnelEvents)+len(browsingEvents))
	events = append(events, funnelEvents...)
	events = append(events, browsingEvents...)
	logger.Printf("Total events created (before sort): %d", len(events))

	clickstream.SortByTimestamp(events)

	written, err := out.Write(ctx, events)
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}

	collector.LogSummary(logger)
	logger.Printf("Done. Written %d rows to %s", written, dest)
	return nil
}
