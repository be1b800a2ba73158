package clickstream

import (
	"log"
	"time"

	"github.com/google/uuid"

	"clickstream-generator/internal/dataset"
	"clickstream-generator/internal/stats"
)

// FunnelGenerator emits one purchase-terminated session per delivered
// order that has at least one order item.
type FunnelGenerator struct {
	Policy        *Policy
	Stats         *stats.Collector
	Logger        *log.Logger
	ProgressEvery int
}

// Generate walks the selected delivered orders and returns the funnel
// events in generation order. Orders without items are skipped and
// counted, not reported as errors.
func (g *FunnelGenerator) Generate(ds *dataset.Dataset) []Event {
	g.Logger.Println("Generating purchase funnel sessions...")

	var events []Event
	processed := 0
	for _, order := range ds.DeliveredOrders {
		items := ds.ItemsByOrder[order.ID]
		if len(items) == 0 {
			g.Stats.OrdersWithoutItems++
			continue
		}

		events = append(events, g.session(order, items)...)

		processed++
		if processed%g.ProgressEvery == 0 {
			g.Logger.Printf("  Processed %d purchase sessions...", processed)
		}
	}

	g.Logger.Println("Purchase sessions generation complete.")
	return events
}

func (g *FunnelGenerator) session(order dataset.Order, items []dataset.OrderItem) []Event {
	sessionID := uuid.New().String()
	device := g.Policy.Device()
	source := g.Policy.Source()

	base := func(eventType string, ts time.Time) Event {
		return Event{
			EventID:         uuid.New().String(),
			SessionID:       sessionID,
			CustomerID:      order.CustomerID,
			EventType:       eventType,
			Timestamp:       ts,
			DeviceType:      device,
			TrafficSource:   source,
			IsAuthenticated: true, // purchase sessions are always logged in
			CustomerCity:    order.City,
			CustomerState:   order.State,
		}
	}

	sampled := g.Policy.SampleIndexes(len(items), g.Policy.MaxFunnelProducts)

	// the funnel starts a little before the real purchase
	cur := order.PurchaseTS.Add(-g.Policy.FunnelLead())

	events := make([]Event, 0, len(sampled)+4)
	events = append(events, base(EventPageView, cur))

	advance := func() {
		step := g.Policy.FunnelStep()
		g.Stats.RecordGap(step)
		cur = cur.Add(step)
	}
	advance()

	for _, idx := range sampled {
		ev := base(EventViewProduct, cur)
		ev.ProductID = items[idx].ProductID
		events = append(events, ev)
		advance()
	}

	cart := base(EventAddToCart, cur)
	cart.ProductID = items[sampled[0]].ProductID
	events = append(events, cart)
	advance()

	events = append(events, base(EventCheckout, cur))

	// the purchase is anchored to the order's recorded timestamp, which
	// can fall before the synthetic checkout time
	purchase := base(EventPurchase, order.PurchaseTS)
	purchase.OrderID = order.ID
	events = append(events, purchase)

	g.Stats.RecordSession(len(events))
	return events
}
