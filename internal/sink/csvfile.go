package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"clickstream-generator/internal/clickstream"
)

// CSVSink writes the event table as delimited text with a header row.
// The DSN is the output file path.
type CSVSink struct {
	file *os.File
}

func (s *CSVSink) Open(dsn string) error {
	f, err := os.Create(dsn)
	if err != nil {
		return fmt.Errorf("create %s: %w", dsn, err)
	}
	s.file = f
	return nil
}

func (s *CSVSink) Write(ctx context.Context, events []clickstream.Event) (int, error) {
	w := csv.NewWriter(s.file)
	if err := w.Write(clickstream.Columns); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}
	for i := range events {
		if err := w.Write(events[i].Record()); err != nil {
			return 0, fmt.Errorf("write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("flush output: %w", err)
	}
	return len(events), nil
}

func (s *CSVSink) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}
