package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric summarizes one best-move search.
type SearchMetric struct {
	Candidates  int           // legal placements generated
	Discarded   int           // candidates that ended the game
	Evaluations int           // evaluator calls
	Duration    time.Duration // wall time of the search
}

// Collector accumulates search metrics. Counters may be bumped from
// concurrent scoring goroutines.
type Collector interface {
	Start()
	AddCandidates(n int)
	AddDiscarded()
	AddEvaluation()
	Complete() SearchMetric
}

type collector struct {
	startTime   time.Time
	candidates  atomic.Int32
	discarded   atomic.Int32
	evaluations atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start() {
	c.startTime = time.Now()
	c.candidates.Store(0)
	c.discarded.Store(0)
	c.evaluations.Store(0)
}

func (c *collector) AddCandidates(n int) {
	c.candidates.Add(int32(n))
}

func (c *collector) AddDiscarded() {
	c.discarded.Add(1)
}

func (c *collector) AddEvaluation() {
	c.evaluations.Add(1)
}

func (c *collector) Complete() SearchMetric {
	return SearchMetric{
		Candidates:  int(c.candidates.Load()),
		Discarded:   int(c.discarded.Load()),
		Evaluations: int(c.evaluations.Load()),
		Duration:    time.Since(c.startTime),
	}
}

// NewDummyCollector returns a no-op collector for when metrics are not
// being gathered.
func NewDummyCollector() Collector {
	return dummyCollector{}
}

type dummyCollector struct{}

func (dummyCollector) Start()                 {}
func (dummyCollector) AddCandidates(int)      {}
func (dummyCollector) AddDiscarded()          {}
func (dummyCollector) AddEvaluation()         {}
func (dummyCollector) Complete() SearchMetric { return SearchMetric{} }
