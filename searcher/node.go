package searcher

import (
	"context"

	"multiagent/experiments/metrics"
	"multiagent/game"
)

// search holds what every frame of one decision shares. It carries no per-node state.
type search struct {
	ctx      context.Context
	evaluate game.Evaluate
	metrics  metrics.Collector
}

// enter counts the visit and reports cancellation between frames
func (s *search) enter() error {
	s.metrics.AddNode()
	select {
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return nil
	}
}

// expand returns the actions to recurse into, or the value of a state that must not be expanded.
// Terminal states win over an exhausted depth budget, and a state without legal actions is treated as terminal.
func (s *search) expand(state game.State, depth, agent int) (actions []game.Action, value float64, leaf bool) {
	if state.IsTerminal() {
		s.metrics.AddLeaf()
		return nil, state.Score(), true
	}
	if depth == 0 {
		s.metrics.AddLeaf()
		return nil, s.evaluate(state), true
	}
	actions = state.LegalActions(agent)
	if len(actions) == 0 {
		s.metrics.AddLeaf()
		return nil, state.Score(), true
	}
	return actions, 0, false
}

// next returns the depth budget and agent after agent has moved.
// The budget only decreases once the last agent has finished its turn.
func next(state game.State, depth, agent int) (int, int) {
	if agent == state.AgentCount()-1 {
		return depth - 1, game.Controlled
	}
	return depth, agent + 1
}
