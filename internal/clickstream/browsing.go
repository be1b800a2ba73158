package clickstream

import (
	"log"

	"github.com/google/uuid"

	"clickstream-generator/internal/dataset"
	"clickstream-generator/internal/stats"
)

// BrowsingGenerator emits sessions that explore the catalog but never
// reach checkout or purchase.
type BrowsingGenerator struct {
	Policy        *Policy
	Stats         *stats.Collector
	Logger        *log.Logger
	Sessions      int
	ProgressEvery int
}

// Generate returns the browsing events in generation order. Each
// session anchors its start time on a random order so that the
// synthetic traffic lands in the same date range as the real purchases.
func (g *BrowsingGenerator) Generate(ds *dataset.Dataset) []Event {
	g.Logger.Println("Generating non-conversion browsing sessions...")

	anchors := ds.DeliveredOrders
	if len(anchors) == 0 {
		anchors = ds.Orders
	}

	var events []Event
	for i := 1; i <= g.Sessions; i++ {
		events = append(events, g.session(anchors, ds)...)

		if i%g.ProgressEvery == 0 {
			g.Logger.Printf("  Generated %d non-conversion sessions...", i)
		}
	}

	g.Logger.Println("Non-conversion sessions generation complete.")
	return events
}

func (g *BrowsingGenerator) session(anchors []dataset.Order, ds *dataset.Dataset) []Event {
	anchor := anchors[g.Policy.PickIndex(len(anchors))]
	cur := anchor.PurchaseTS.Add(-g.Policy.AnchorLead())

	sessionID := uuid.New().String()
	device := g.Policy.Device()
	source := g.Policy.Source()
	auth := g.Policy.BrowseAuthenticated()

	var customerID, city, state string
	if auth && len(ds.CustomerIDs) > 0 {
		customerID = ds.CustomerIDs[g.Policy.PickIndex(len(ds.CustomerIDs))]
		if loc, ok := ds.Locations[customerID]; ok {
			city = loc.City
			state = loc.State
		} else {
			g.Stats.CustomerLookupMisses++
		}
	}

	steps := g.Policy.BrowseSteps()
	events := make([]Event, 0, steps)
	for s := 0; s < steps; s++ {
		eventType := g.Policy.BrowseEventType()

		var productID string
		if eventType != EventPageView {
			if len(ds.ProductIDs) == 0 {
				// no catalog to draw from, degrade to a plain page view
				eventType = EventPageView
			} else {
				productID = ds.ProductIDs[g.Policy.PickIndex(len(ds.ProductIDs))]
			}
		}

		events = append(events, Event{
			EventID:         uuid.New().String(),
			SessionID:       sessionID,
			CustomerID:      customerID,
			EventType:       eventType,
			Timestamp:       cur,
			ProductID:       productID,
			DeviceType:      device,
			TrafficSource:   source,
			IsAuthenticated: auth,
			CustomerCity:    city,
			CustomerState:   state,
		})

		step := g.Policy.BrowseStep()
		g.Stats.RecordGap(step)
		cur = cur.Add(step)
	}

	g.Stats.RecordSession(len(events))
	return events
}
