package observability

import "sync"

type observe struct {
	Kind   string  `json:"kind"`
	Name   string  `json:"name,omitempty"`
	Source string  `json:"source,omitempty"`
	Status int     `json:"status,omitempty"`
	Ms     float64 `json:"ms"`
	OK     bool    `json:"ok,omitempty"`
}

// Totals are the running counters kept next to the observation ring.
type Totals struct {
	CacheHits     map[string]int `json:"cache_hits"`
	CacheMisses   map[string]int `json:"cache_misses"`
	Invalidations map[string]int `json:"invalidations"`
}

// Inmem keeps the last max observations plus running counters.
type Inmem struct {
	mu     sync.Mutex
	last   []*observe
	max    int
	totals Totals
}

func NewInmem(max int) *Inmem {
	return &Inmem{
		max: max,
		totals: Totals{
			CacheHits:     make(map[string]int),
			CacheMisses:   make(map[string]int),
			Invalidations: make(map[string]int),
		},
	}
}

func (m *Inmem) push(v *observe) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.max <= 0 {
		m.last = []*observe{}
		return
	}
	m.last = append(m.last, v)
	if len(m.last) > m.max {
		m.last = m.last[len(m.last)-m.max:]
	}
}

func (m *Inmem) ObserveLookup(resource, source string, ms float64) {
	m.push(&observe{Kind: "lookup", Name: resource, Source: source, Ms: ms})
}

func (m *Inmem) ObserveHTTP(method, route string, status int, durMs float64) {
	m.push(&observe{Kind: "http", Name: method + " " + route, Status: status, Ms: durMs})
}

func (m *Inmem) ObserveKafka(processMs float64, ok bool) {
	m.push(&observe{Kind: "kafka", Ms: processMs, OK: ok})
}

func (m *Inmem) IncCacheHit(resource string) {
	m.mu.Lock()
	m.totals.CacheHits[resource]++
	m.mu.Unlock()
}

func (m *Inmem) IncCacheMiss(resource string) {
	m.mu.Lock()
	m.totals.CacheMisses[resource]++
	m.mu.Unlock()
}

func (m *Inmem) IncInvalidation(scope string) {
	m.mu.Lock()
	m.totals.Invalidations[scope]++
	m.mu.Unlock()
}

// Snapshot copies the counters so callers can serialize them without holding the lock.
func (m *Inmem) Snapshot() Totals {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Totals{
		CacheHits:     copyCounts(m.totals.CacheHits),
		CacheMisses:   copyCounts(m.totals.CacheMisses),
		Invalidations: copyCounts(m.totals.Invalidations),
	}
}

func copyCounts(src map[string]int) map[string]int {
	dst := make(map[string]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Count returns how many retained observations are of the given kind.
func (m *Inmem) Count(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, o := range m.last {
		if o.Kind == kind {
			n++
		}
	}
	return n
}
