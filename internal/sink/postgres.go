package sink

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"clickstream-generator/internal/clickstream"
)

const postgresSchema = `
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
		is_authenticated SMALLINT NOT NULL,
		customer_city VARCHAR(255) NOT NULL DEFAULT '',
		customer_state VARCHAR(255) NOT NULL DEFAULT ''
	);
`

type PostgresSink struct {
	conn *pgx.Conn
}

func (s *PostgresSink) Open(dsn string) error {
	conn, err := pgx.Connect(context.Background(), dsn)
	if err != nil {
		return err
	}
	s.conn = conn
	return nil
}

func (s *PostgresSink) Write(ctx context.Context, events []clickstream.Event) (int, error) {
	if _, err := s.conn.Exec(ctx, postgresSchema); err != nil {
		return 0, fmt.Errorf("create clickstream_events: %w", err)
	}

	rows := make([][]interface{}, 0, len(events))
	for i := range events {
		e := &events[i]
		rows = append(rows, []interface{}{
			e.EventID, e.SessionID, e.CustomerID, e.EventType, e.Timestamp,
			e.ProductID, e.OrderID, e.DeviceType, e.TrafficSource,
			e.AuthInt(), e.CustomerCity, e.CustomerState,
		})
	}

	copied, err := s.conn.CopyFrom(
		ctx,
		pgx.Identifier{"clickstream_events"},
		clickstream.Columns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("copy into clickstream_events: %w", err)
	}
	return int(copied), nil
}

func (s *PostgresSink) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close(context.Background())
}
