package sink

import (
	"context"
	"fmt"
	"sort"

	"clickstream-generator/internal/clickstream"
)

// EventSink receives the final, globally sorted event stream. The csv
// sink is the default; the database sinks load the same rows straight
// into a warehouse table instead.
type EventSink interface {
	Open(dsn string) error
	Write(ctx context.Context, events []clickstream.Event) (int, error)
	Close() error
}

var registry = map[string]func() EventSink{
	"csv":        func() EventSink { return &CSVSink{} },
	"postgres":   func() EventSink { return &PostgresSink{} },
	"mysql":      func() EventSink { return &MySQLSink{} },
	"mongo":      func() EventSink { return &MongoSink{} },
	"clickhouse": func() EventSink { return &ClickHouseSink{} },
}

func New(name string) (EventSink, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unsupported sink type: %s (known: %v)", name, Names())
	}
	return factory(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
