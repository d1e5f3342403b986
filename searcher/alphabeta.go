package searcher

import (
	"math"

	"multiagent/game"
)

// alphaBeta returns the minimax value when it lies within [alpha, beta], and otherwise a bound on the same side.
// The bounds are passed by value: updates made here only reach later siblings of this frame.
func (s *search) alphaBeta(state game.State, depth, agent int, alpha, beta float64) (float64, error) {
	if err := s.enter(); err != nil {
		return 0, err
	}
	actions, value, leaf := s.expand(state, depth, agent)
	if leaf {
		return value, nil
	}

	childDepth, childAgent := next(state, depth, agent)
	if agent == game.Controlled {
		maxValue := math.Inf(-1)
		for _, action := range actions {
			value, err := s.alphaBeta(state.Successor(agent, action), childDepth, childAgent, alpha, beta)
			if err != nil {
				return 0, err
			}
			maxValue = max(maxValue, value)
			if maxValue > beta { // Beta cutoff
				s.metrics.AddCutoff()
				return maxValue, nil
			}
			alpha = max(alpha, maxValue)
		}
		return maxValue, nil
	}

	minValue := math.Inf(1)
	for _, action := range actions {
		value, err := s.alphaBeta(state.Successor(agent, action), childDepth, childAgent, alpha, beta)
		if err != nil {
			return 0, err
		}
		minValue = min(minValue, value)
		if minValue < alpha { // Alpha cutoff
			s.metrics.AddCutoff()
			return minValue, nil
		}
		beta = min(beta, minValue)
	}
	return minValue, nil
}
