package clickstream

import (
	"math/rand"
	"time"

	"clickstream-generator/internal/config"
)

var (
	DeviceTypes    = []string{"desktop", "mobile", "tablet"}
	TrafficSources = []string{"direct", "seo", "ads", "email", "social"}
)

// Policy holds every random decision both generators make: the single
// seeded source plus the timing and sampling constants, so tests can
// inject deterministic values instead of scattering magic numbers
// through the generation loops.
type Policy struct {
	rng *rand.Rand

	DeviceTypes    []string
	TrafficSources []string

	FunnelLeadMinMinutes int
	FunnelLeadMaxMinutes int
	FunnelStepMinSeconds int
	FunnelStepMaxSeconds int
	MaxFunnelProducts    int

	BrowseStepMinSeconds int
	BrowseStepMaxSeconds int
	BrowseMinSteps       int
	BrowseMaxSteps       int
	BrowseAuthProb       float64
	PageViewWeight       float64
	ViewProductWeight    float64
	AddToCartWeight      float64
	AnchorMaxLeadDays    int
	AnchorMaxLeadMinutes int
}

// NewPolicy returns the default policy with a source seeded from seed.
func NewPolicy(seed int64) *Policy {
	return &Policy{
		rng:                  rand.New(rand.NewSource(seed)),
		DeviceTypes:          DeviceTypes,
		TrafficSources:       TrafficSources,
		FunnelLeadMinMinutes: 5,
		FunnelLeadMaxMinutes: 40,
		FunnelStepMinSeconds: 5,
		FunnelStepMaxSeconds: 40,
		MaxFunnelProducts:    3,
		BrowseStepMinSeconds: 5,
		BrowseStepMaxSeconds: 60,
		BrowseMinSteps:       2,
		BrowseMaxSteps:       6,
		BrowseAuthProb:       0.4,
		PageViewWeight:       0.40,
		ViewProductWeight:    0.35,
		AddToCartWeight:      0.25,
		AnchorMaxLeadDays:    60,
		AnchorMaxLeadMinutes: 1440,
	}
}

// PolicyFromConfig applies non-zero config overrides on top of defaults.
func PolicyFromConfig(seed int64, o config.Policy) *Policy {
	p := NewPolicy(seed)
	if o.FunnelLeadMinMinutes > 0 {
		p.FunnelLeadMinMinutes = o.FunnelLeadMinMinutes
	}
	if o.FunnelLeadMaxMinutes > 0 {
		p.FunnelLeadMaxMinutes = o.FunnelLeadMaxMinutes
	}
	if o.FunnelStepMinSeconds > 0 {
		p.FunnelStepMinSeconds = o.FunnelStepMinSeconds
	}
	if o.FunnelStepMaxSeconds > 0 {
		p.FunnelStepMaxSeconds = o.FunnelStepMaxSeconds
	}
	if o.MaxFunnelProducts > 0 {
		p.MaxFunnelProducts = o.MaxFunnelProducts
	}
	if o.BrowseStepMinSeconds > 0 {
		p.BrowseStepMinSeconds = o.BrowseStepMinSeconds
	}
	if o.BrowseStepMaxSeconds > 0 {
		p.BrowseStepMaxSeconds = o.BrowseStepMaxSeconds
	}
	if o.BrowseMinSteps > 0 {
		p.BrowseMinSteps = o.BrowseMinSteps
	}
	if o.BrowseMaxSteps > 0 {
		p.BrowseMaxSteps = o.BrowseMaxSteps
	}
	if o.BrowseAuthProb > 0 {
		p.BrowseAuthProb = o.BrowseAuthProb
	}
	if o.PageViewWeight > 0 {
		p.PageViewWeight = o.PageViewWeight
	}
	if o.ViewProductWeight > 0 {
		p.ViewProductWeight = o.ViewProductWeight
	}
	if o.AddToCartWeight > 0 {
		p.AddToCartWeight = o.AddToCartWeight
	}
	if o.AnchorMaxLeadDays > 0 {
		p.AnchorMaxLeadDays = o.AnchorMaxLeadDays
	}
	if o.AnchorMaxLeadMinutes > 0 {
		p.AnchorMaxLeadMinutes = o.AnchorMaxLeadMinutes
	}
	return p
}

// intBetween returns a uniform value in [lo, hi] inclusive.
func (p *Policy) intBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + p.rng.Intn(hi-lo+1)
}

func (p *Policy) Device() string {
	return p.DeviceTypes[p.rng.Intn(len(p.DeviceTypes))]
}

func (p *Policy) Source() string {
	return p.TrafficSources[p.rng.Intn(len(p.TrafficSources))]
}

// FunnelLead is how far before the real purchase the funnel starts.
func (p *Policy) FunnelLead() time.Duration {
	return time.Duration(p.intBetween(p.FunnelLeadMinMinutes, p.FunnelLeadMaxMinutes)) * time.Minute
}

func (p *Policy) FunnelStep() time.Duration {
	return time.Duration(p.intBetween(p.FunnelStepMinSeconds, p.FunnelStepMaxSeconds)) * time.Second
}

func (p *Policy) BrowseStep() time.Duration {
	return time.Duration(p.intBetween(p.BrowseStepMinSeconds, p.BrowseStepMaxSeconds)) * time.Second
}

func (p *Policy) BrowseSteps() int {
	return p.intBetween(p.BrowseMinSteps, p.BrowseMaxSteps)
}

func (p *Policy) BrowseAuthenticated() bool {
	return p.rng.Float64() < p.BrowseAuthProb
}

// AnchorLead is how far before the anchor order's purchase time a
// browsing session starts.
func (p *Policy) AnchorLead() time.Duration {
	days := time.Duration(p.intBetween(1, p.AnchorMaxLeadDays)) * 24 * time.Hour
	minutes := time.Duration(p.intBetween(0, p.AnchorMaxLeadMinutes)) * time.Minute
	return days + minutes
}

// BrowseEventType draws one weighted browsing step type.
func (p *Policy) BrowseEventType() string {
	r := p.rng.Float64() * (p.PageViewWeight + p.ViewProductWeight + p.AddToCartWeight)
	switch {
	case r < p.PageViewWeight:
		return EventPageView
	case r < p.PageViewWeight+p.ViewProductWeight:
		return EventViewProduct
	default:
		return EventAddToCart
	}
}

// PickIndex returns a uniform index into a slice of length n.
func (p *Policy) PickIndex(n int) int {
	return p.rng.Intn(n)
}

// SampleIndexes returns k distinct indexes into a slice of length n,
// in random order, without replacement.
func (p *Policy) SampleIndexes(n, k int) []int {
	if k > n {
		k = n
	}
	return p.rng.Perm(n)[:k]
}
