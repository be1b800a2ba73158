package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"clickstream-generator/internal/clickstream"
)

const mysqlSchema = `
	CREATE TABLE IF NOT EXISTS clickstream_events (
		event_id VARCHAR(255) PRIMARY KEY,
		session_id VARCHAR(255) NOT NULL,
		customer_id VARCHAR(255) NOT NULL DEFAULT '',
		event_type VARCHAR(32) NOT NULL,
		event_ts TIMESTAMP NOT NULL,
		product_id VARCHAR(255) NOT NULL DEFAULT '',
		order_id VARCHAR(255) NOT NULL DEFAULT '',
		device_type VARCHAR(16) NOT NULL,
		traffic_source VARCHAR(16) NOT NULL,
		is_authenticated TINYINT NOT NULL,
		customer_city VARCHAR(255) NOT NULL DEFAULT '',
		customer_state VARCHAR(255) NOT NULL DEFAULT ''
	);
`

// mysqlBatchSize bounds the placeholder count of one multi-row insert.
const mysqlBatchSize = 500

type MySQLSink struct {
	db *sql.DB
}

func (s *MySQLSink) Open(dsn string) error {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

func (s *MySQLSink) Write(ctx context.Context, events []clickstream.Event) (int, error) {
	if _, err := s.db.ExecContext(ctx, mysqlSchema); err != nil {
		return 0, fmt.Errorf("create clickstream_events: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	written := 0
	for start := 0; start < len(events); start += mysqlBatchSize {
		end := start + mysqlBatchSize
		if end > len(events) {
			end = len(events)
		}
		batch := events[start:end]

		placeholders := make([]string, 0, len(batch))
		args := make([]interface{}, 0, len(batch)*len(clickstream.Columns))
		for i := range batch {
			e := &batch[i]
			placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				e.EventID, e.SessionID, e.CustomerID, e.EventType,
				e.TimestampString(), e.ProductID, e.OrderID, e.DeviceType,
				e.TrafficSource, e.AuthInt(), e.CustomerCity, e.CustomerState,
			)
		}

		query := fmt.Sprintf(
			"INSERT INTO clickstream_events (%s) VALUES %s",
			strings.Join(clickstream.Columns, ", "),
			strings.Join(placeholders, ", "),
		)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("insert batch at row %d: %w", start, err)
		}
		written += len(batch)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return written, nil
}

func (s *MySQLSink) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
