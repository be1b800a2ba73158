package sink

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clickstream-generator/internal/clickstream"
)

type MongoSink struct {
	client *mongo.Client
}

func (s *MongoSink) Open(dsn string) error {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(dsn))
	if err != nil {
		return err
	}
	s.client = client
	return nil
}

func (s *MongoSink) Write(ctx context.Context, events []clickstream.Event) (int, error) {
	docs := make([]interface{}, 0, len(events))
	for i := range events {
		e := &events[i]
		docs = append(docs, bson.M{
			"_id":              e.EventID,
			"session_id":       e.SessionID,
			"customer_id":      e.CustomerID,
			"event_type":       e.EventType,
			"event_ts":         e.Timestamp,
			"product_id":       e.ProductID,
			"order_id":         e.OrderID,
			"device_type":      e.DeviceType,
			"traffic_source":   e.TrafficSource,
			"is_authenticated": e.AuthInt(),
			"customer_city":    e.CustomerCity,
			"customer_state":   e.CustomerState,
		})
	}

	collection := s.client.Database("clickstream").Collection("events")
	res, err := collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

func (s *MongoSink) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(context.Background())
}
