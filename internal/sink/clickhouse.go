package sink

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"

	"clickstream-generator/internal/clickstream"
)

const clickhouseSchema = `
	CREATE TABLE IF NOT EXISTS clickstream_events (
		event_id String,
		session_id String,
		customer_id String,
		event_type LowCardinality(String),
		event_ts DateTime,
		product_id String,
		order_id String,
		device_type LowCardinality(String),
		traffic_source LowCardinality(String),
		is_authenticated UInt8,
		customer_city String,
		customer_state String
	) ENGINE = MergeTree()
	ORDER BY (event_ts, session_id)
`

type ClickHouseSink struct {
	conn clickhouse.Conn
}

func (s *ClickHouseSink) Open(dsn string) error {
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return fmt.Errorf("parse clickhouse dsn: %w", err)
	}
	opts.Compression = &clickhouse.Compression{
		Method: clickhouse.CompressionLZ4,
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return fmt.Errorf("connect to clickhouse: %w", err)
	}
	if err := conn.Ping(context.Background()); err != nil {
		return fmt.Errorf("ping clickhouse: %w", err)
	}
	s.conn = conn
	return nil
}

func (s *ClickHouseSink) Write(ctx context.Context, events []clickstream.Event) (int, error) {
	if err := s.conn.Exec(ctx, clickhouseSchema); err != nil {
		return 0, fmt.Errorf("create clickstream_events: %w", err)
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO clickstream_events (
			event_id, session_id, customer_id, event_type, event_ts, product_id,
			order_id, device_type, traffic_source, is_authenticated,
			customer_city, customer_state
		)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare batch insert: %w", err)
	}

	for i := range events {
		e := &events[i]
		err := batch.Append(
			e.EventID,
			e.SessionID,
			e.CustomerID,
			e.EventType,
			e.Timestamp,
			e.ProductID,
			e.OrderID,
			e.DeviceType,
			e.TrafficSource,
			uint8(e.AuthInt()),
			e.CustomerCity,
			e.CustomerState,
		)
		if err != nil {
			return 0, fmt.Errorf("append event %s to batch: %w", e.EventID, err)
		}
	}

	if err := batch.Send(); err != nil {
		return 0, fmt.Errorf("send batch: %w", err)
	}
	return len(events), nil
}

func (s *ClickHouseSink) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
