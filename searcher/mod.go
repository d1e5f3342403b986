package searcher

import (
	"errors"
	"fmt"

	"multiagent/experiments/metrics"
	"multiagent/game"
)

var ErrInvalidConfiguration = errors.New("invalid configuration")

// Variant selects how adversary nodes are reduced
type Variant int

const (
	Minimax    Variant = iota // Adversaries minimize
	AlphaBeta                 // Minimax with pruning, same decision with less work
	Expectimax                // Adversaries choose uniformly at random
	Reflex                    // No lookahead, heuristic of the immediate successor
)

var variantNames = map[Variant]string{
	Minimax:    "minimax",
	AlphaBeta:  "alphabeta",
	Expectimax: "expectimax",
	Reflex:     "reflex",
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

func (v Variant) valid() bool {
	_, ok := variantNames[v]
	return ok
}

func ParseVariant(name string) (Variant, error) {
	for v, n := range variantNames {
		if n == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown variant %q", ErrInvalidConfiguration, name)
}

// Decision is the outcome of one top-level search
type Decision struct {
	Action game.Action
	Value  float64
	// Values of completed root actions. Alpha-beta reports an upper bound for actions that cannot be best.
	Values  map[game.Action]float64
	Partial bool // Stopped early by the context, Action is the best among completed root actions
	Metric  metrics.SearchMetric
}
