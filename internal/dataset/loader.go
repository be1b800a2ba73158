package dataset

import (
	"encoding/csv"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"clickstream-generator/internal/config"
)

// TimeLayout is the timestamp format used by the input tables and the
// generated events.
const TimeLayout = "2006-01-02 15:04:05"

// table is a loaded delimited file: a header index plus the data rows.
type table struct {
	cols map[string]int
	rows [][]string
}

func (t *table) get(row []string, col string) string {
	idx, ok := t.cols[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func readTable(path string, required []string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}

	t := &table{cols: make(map[string]int, len(records[0]))}
	for i, name := range records[0] {
		t.cols[name] = i
	}
	for _, col := range required {
		if _, ok := t.cols[col]; !ok {
			return nil, fmt.Errorf("%s: missing required column %q", path, col)
		}
	}
	t.rows = records[1:]
	return t, nil
}

// Load reads the four input tables, joins order items to products and
// orders to customers, filters delivered orders, and caps the delivered
// set with a seeded uniform sample when it exceeds maxPurchase.
func Load(inputs config.Inputs, maxPurchase int, seed int64, logger *log.Logger) (*Dataset, error) {
	logger.Println("Loading input CSVs...")

	orders, err := readTable(inputs.Orders, []string{
		"order_id", "customer_id", "order_status", "order_purchase_timestamp",
	})
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	items, err := readTable(inputs.OrderItems, []string{"order_id", "product_id"})
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	products, err := readTable(inputs.Products, []string{"product_id", "product_category_name"})
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	customers, err := readTable(inputs.Customers, []string{
		"customer_id", "customer_unique_id", "customer_city", "customer_state",
	})
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}

	logger.Printf("Validating input shapes: orders=%d order_items=%d products=%d customers=%d",
		len(orders.rows), len(items.rows), len(products.rows), len(customers.rows))

	ds := &Dataset{
		ItemsByOrder: make(map[string][]OrderItem),
		Locations:    make(map[string]Location),
	}

	categories := make(map[string]string, len(products.rows))
	seenProduct := make(map[string]bool, len(products.rows))
	for _, row := range products.rows {
		id := products.get(row, "product_id")
		if id == "" {
			continue
		}
		categories[id] = products.get(row, "product_category_name")
		if !seenProduct[id] {
			seenProduct[id] = true
			ds.ProductIDs = append(ds.ProductIDs, id)
		}
	}

	seenCustomer := make(map[string]bool, len(customers.rows))
	for _, row := range customers.rows {
		id := customers.get(row, "customer_id")
		if id == "" {
			continue
		}
		if !seenCustomer[id] {
			seenCustomer[id] = true
			ds.CustomerIDs = append(ds.CustomerIDs, id)
		}
		ds.Locations[id] = Location{
			City:  customers.get(row, "customer_city"),
			State: customers.get(row, "customer_state"),
		}
	}

	// order_items left-joined with products
	for _, row := range items.rows {
		oi := OrderItem{
			OrderID:   items.get(row, "order_id"),
			ProductID: items.get(row, "product_id"),
		}
		oi.Category = categories[oi.ProductID]
		ds.ItemsByOrder[oi.OrderID] = append(ds.ItemsByOrder[oi.OrderID], oi)
	}

	logger.Println("Filtering delivered orders...")

	var delivered []Order
	for _, row := range orders.rows {
		ts, err := time.Parse(TimeLayout, orders.get(row, "order_purchase_timestamp"))
		if err != nil {
			ds.DroppedTimestamps++
			continue
		}
		o := Order{
			ID:         orders.get(row, "order_id"),
			CustomerID: orders.get(row, "customer_id"),
			Status:     orders.get(row, "order_status"),
			PurchaseTS: ts,
		}
		// left join: unknown customer keeps empty city/state
		if loc, ok := ds.Locations[o.CustomerID]; ok {
			o.City = loc.City
			o.State = loc.State
		}
		ds.Orders = append(ds.Orders, o)
		if o.Status == "delivered" {
			delivered = append(delivered, o)
		}
	}

	if len(delivered) == 0 {
		return nil, fmt.Errorf("no delivered orders found, check the orders input")
	}
	logger.Printf("Delivered orders available: %d", len(delivered))

	if maxPurchase > 0 && len(delivered) > maxPurchase {
		rng := rand.New(rand.NewSource(seed))
		perm := rng.Perm(len(delivered))
		sampled := make([]Order, 0, maxPurchase)
		for _, idx := range perm[:maxPurchase] {
			sampled = append(sampled, delivered[idx])
		}
		delivered = sampled
		logger.Printf("Sampled %d delivered orders for funnel generation", len(delivered))
	}
	ds.DeliveredOrders = delivered

	return ds, nil
}
