package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Variant  string
	Depth    int
	Duration time.Duration
	Nodes    int // States the search examined
	Leaves   int // Terminal and cutoff evaluations
	Cutoffs  int // Alpha and beta cutoffs
	Partial  bool
}

type MoveMetric struct {
	Turn   int
	Agent  int
	Action string
	Score  float64
	SearchMetric
}

type GameMetric struct {
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	Rounds     int
	Terminal   bool
	FinalScore float64
}

type Collector interface {
	Start(variant string, depth int)
	AddNode()
	AddLeaf()
	AddCutoff()
	SetPartial(value bool)
	Complete() SearchMetric
}

type collector struct {
	variant   string
	depth     int
	startTime time.Time
	nodes     atomic.Int64
	leaves    atomic.Int64
	cutoffs   atomic.Int64
	partial   atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new decision
func (m *collector) Start(variant string, depth int) {
	m.startTime = time.Now()
	m.variant = variant
	m.depth = depth
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.cutoffs.Store(0)
	m.partial.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) SetPartial(value bool) {
	m.partial.Store(value)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Variant:  m.variant,
		Depth:    m.depth,
		Duration: time.Since(m.startTime),
		Nodes:    int(m.nodes.Load()),
		Leaves:   int(m.leaves.Load()),
		Cutoffs:  int(m.cutoffs.Load()),
		Partial:  m.partial.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(variant string, depth int) {}
func (m *dummyCollector) AddNode()                        {}
func (m *dummyCollector) AddLeaf()                        {}
func (m *dummyCollector) AddCutoff()                      {}
func (m *dummyCollector) SetPartial(value bool)           {}
func (m *dummyCollector) Complete() SearchMetric          { return SearchMetric{} }
