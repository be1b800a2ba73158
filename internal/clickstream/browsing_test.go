package clickstream

import (
	"testing"

	"clickstream-generator/internal/dataset"
	"clickstream-generator/internal/stats"
)

func newBrowsing(seed int64, sessions int) *BrowsingGenerator {
	return &BrowsingGenerator{
		Policy:        NewPolicy(seed),
		Stats:         stats.New(),
		Logger:        discard(),
		Sessions:      sessions,
		ProgressEvery: 1000,
	}
}

func bySession(events []Event) map[string][]Event {
	grouped := make(map[string][]Event)
	for _, ev := range events {
		grouped[ev.SessionID] = append(grouped[ev.SessionID], ev)
	}
	return grouped
}

func TestBrowsingNeverConverts(t *testing.T) {
	events := newBrowsing(42, 50).Generate(funnelDataset(t))
	if len(events) == 0 {
		t.Fatal("no browsing events generated")
	}
	for _, ev := range events {
		if ev.EventType == EventCheckout || ev.EventType == EventPurchase {
			t.Fatalf("browsing session emitted %s", ev.EventType)
		}
		if ev.OrderID != "" {
			t.Fatalf("browsing event carries order_id %q", ev.OrderID)
		}
	}
}

func TestBrowsingSessionShape(t *testing.T) {
	events := newBrowsing(42, 50).Generate(funnelDataset(t))

	for id, session := range bySession(events) {
		if len(session) < 2 || len(session) > 6 {
			t.Errorf("session %s has %d events, want [2,6]", id, len(session))
		}
		first := session[0]
		for i, ev := range session {
			if ev.DeviceType != first.DeviceType || ev.TrafficSource != first.TrafficSource ||
				ev.IsAuthenticated != first.IsAuthenticated ||
				ev.CustomerID != first.CustomerID ||
				ev.CustomerCity != first.CustomerCity || ev.CustomerState != first.CustomerState {
				t.Errorf("session %s: event attributes vary within session", id)
			}
			if i > 0 && session[i].Timestamp.Before(session[i-1].Timestamp) {
				t.Errorf("session %s: timestamps decrease", id)
			}
			if !contains(DeviceTypes, ev.DeviceType) {
				t.Errorf("device %q invalid", ev.DeviceType)
			}
			if !contains(TrafficSources, ev.TrafficSource) {
				t.Errorf("source %q invalid", ev.TrafficSource)
			}
		}
	}
}

func TestBrowsingAuthIdentity(t *testing.T) {
	events := newBrowsing(42, 200).Generate(funnelDataset(t))

	sawAuth, sawAnon := false, false
	for _, ev := range events {
		if ev.IsAuthenticated {
			sawAuth = true
			if ev.CustomerID == "" {
				t.Errorf("authenticated event has no customer id")
			}
			if ev.CustomerCity != "sao paulo" || ev.CustomerState != "SP" {
				t.Errorf("authenticated event location = %q/%q, want lookup result",
					ev.CustomerCity, ev.CustomerState)
			}
		} else {
			sawAnon = true
			if ev.CustomerID != "" || ev.CustomerCity != "" || ev.CustomerState != "" {
				t.Errorf("anonymous event carries identity: %+v", ev)
			}
		}
	}
	if !sawAuth || !sawAnon {
		t.Errorf("expected both authenticated and anonymous sessions over 200 draws (auth=%v anon=%v)",
			sawAuth, sawAnon)
	}
}

func TestBrowsingCustomerLookupMiss(t *testing.T) {
	ds := funnelDataset(t)
	ds.Locations = map[string]dataset.Location{} // customer ids known, locations not

	g := newBrowsing(42, 100)
	events := g.Generate(ds)

	for _, ev := range events {
		if ev.IsAuthenticated && (ev.CustomerCity != "" || ev.CustomerState != "") {
			t.Errorf("lookup miss must fall back to empty location, got %q/%q",
				ev.CustomerCity, ev.CustomerState)
		}
	}
	if g.Stats.CustomerLookupMisses == 0 {
		t.Error("customer lookup misses not counted")
	}
}

func TestBrowsingProductEvents(t *testing.T) {
	events := newBrowsing(42, 100).Generate(funnelDataset(t))

	for _, ev := range events {
		switch ev.EventType {
		case EventPageView:
			if ev.ProductID != "" {
				t.Errorf("page_view carries product %q", ev.ProductID)
			}
		case EventViewProduct, EventAddToCart:
			if ev.ProductID != "p1" && ev.ProductID != "p2" {
				t.Errorf("%s product %q not in catalog", ev.EventType, ev.ProductID)
			}
		default:
			t.Errorf("unexpected browsing event type %q", ev.EventType)
		}
	}
}

func TestBrowsingEmptyCatalogDegradesToPageView(t *testing.T) {
	ds := funnelDataset(t)
	ds.ProductIDs = nil

	events := newBrowsing(42, 50).Generate(ds)
	for _, ev := range events {
		if ev.EventType != EventPageView {
			t.Fatalf("event type %q with empty catalog, want page_view only", ev.EventType)
		}
		if ev.ProductID != "" {
			t.Fatalf("product id %q with empty catalog", ev.ProductID)
		}
	}
}

func TestBrowsingZeroSessions(t *testing.T) {
	events := newBrowsing(42, 0).Generate(funnelDataset(t))
	if len(events) != 0 {
		t.Fatalf("requested 0 sessions, got %d events", len(events))
	}
}

func TestBrowsingAnchorsBeforePurchases(t *testing.T) {
	ds := funnelDataset(t)
	events := newBrowsing(42, 20).Generate(ds)
	for _, ev := range events {
		// base time is at least one day before the anchor order's purchase;
		// with 2-6 steps of at most a minute each it stays before it
		if !ev.Timestamp.Before(ds.DeliveredOrders[0].PurchaseTS) {
			t.Errorf("browsing event at %v not before the anchor purchase", ev.Timestamp)
		}
	}
}
