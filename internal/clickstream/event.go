package clickstream

import (
	"sort"
	"time"
)

const (
	EventPageView    = "page_view"
	EventViewProduct = "view_product"
	EventAddToCart   = "add_to_cart"
	EventCheckout    = "checkout"
	EventPurchase    = "purchase"
)

// TimeLayout is the second-precision format events are serialized with.
// Lexicographic order of formatted values matches chronological order.
const TimeLayout = "2006-01-02 15:04:05"

// Columns is the output header, in serialization order.
var Columns = []string{
	"event_id",
	"session_id",
	"customer_id",
	"event_type",
	"event_ts",
	"product_id",
	"order_id",
	"device_type",
	"traffic_source",
	"is_authenticated",
	"customer_city",
	"customer_state",
}

// Event is one synthetic clickstream event. String fields that do not
// apply to the event type are empty.
type Event struct {
	EventID         string
	SessionID       string
	CustomerID      string
	EventType       string
	Timestamp       time.Time
	ProductID       string
	OrderID         string
	DeviceType      string
	TrafficSource   string
	IsAuthenticated bool
	CustomerCity    string
	CustomerState   string
}

func (e *Event) TimestampString() string {
	return e.Timestamp.Format(TimeLayout)
}

// Record returns the event as output field values, aligned with Columns.
func (e *Event) Record() []string {
	auth := "0"
	if e.IsAuthenticated {
		auth = "1"
	}
	return []string{
		e.EventID,
		e.SessionID,
		e.CustomerID,
		e.EventType,
		e.TimestampString(),
		e.ProductID,
		e.OrderID,
		e.DeviceType,
		e.TrafficSource,
		auth,
		e.CustomerCity,
		e.CustomerState,
	}
}

// AuthInt is the 0/1 form of IsAuthenticated for database sinks.
func (e *Event) AuthInt() int {
	if e.IsAuthenticated {
		return 1
	}
	return 0
}

// SortByTimestamp orders events ascending by their serialized timestamp.
// The sort is stable, so events sharing a second keep generation order.
func SortByTimestamp(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].TimestampString() < events[j].TimestampString()
	})
}
