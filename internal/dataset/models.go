package dataset

import "time"

// Order is an input order row joined with its customer's location.
// City and State are empty when the customer join missed.
type Order struct {
	ID         string
	CustomerID string
	Status     string
	PurchaseTS time.Time
	City       string
	State      string
}

// OrderItem is an input order-item row joined with product metadata.
type OrderItem struct {
	OrderID   string
	ProductID string
	Category  string
}

// Location is a customer's city/state pair.
type Location struct {
	City  string
	State string
}

// Dataset is everything the generators need, loaded and joined once.
type Dataset struct {
	// DeliveredOrders are the orders selected for funnel generation:
	// status "delivered", parseable purchase timestamp, capped by a
	// seeded uniform sample when the qualifying set is too large.
	DeliveredOrders []Order

	// Orders are all orders with a parseable purchase timestamp,
	// regardless of status. Used only as browsing-session time anchors
	// when no delivered orders exist.
	Orders []Order

	ItemsByOrder map[string][]OrderItem
	ProductIDs   []string
	CustomerIDs  []string
	Locations    map[string]Location

	// DroppedTimestamps counts order rows discarded because their
	// purchase timestamp failed to parse.
	DroppedTimestamps int
}
