package observability

type Metrics interface {
	ObserveLookup(resource, source string, ms float64)
	ObserveHTTP(method, route string, status int, durMs float64)
	ObserveKafka(processMs float64, ok bool)
	IncCacheHit(resource string)
	IncCacheMiss(resource string)
	IncInvalidation(scope string)
}

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) ObserveLookup(string, string, float64)    {}
func (Noop) ObserveHTTP(string, string, int, float64) {}
func (Noop) ObserveKafka(float64, bool)               {}
func (Noop) IncCacheHit(string)                       {}
func (Noop) IncCacheMiss(string)                      {}
func (Noop) IncInvalidation(string)                   {}
