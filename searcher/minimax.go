package searcher

import (
	"math"

	"multiagent/game"
)

// minimax visits every reachable node up to the depth budget
func (s *search) minimax(state game.State, depth, agent int) (float64, error) {
	if err := s.enter(); err != nil {
		return 0, err
	}
	actions, value, leaf := s.expand(state, depth, agent)
	if leaf {
		return value, nil
	}

	childDepth, childAgent := next(state, depth, agent)
	maximizing := agent == game.Controlled
	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	for _, action := range actions {
		value, err := s.minimax(state.Successor(agent, action), childDepth, childAgent)
		if err != nil {
			return 0, err
		}
		if maximizing {
			best = max(best, value)
		} else {
			best = min(best, value)
		}
	}
	return best, nil
}
