package searcher

import (
	"math"

	"multiagent/game"
)

// expectimax treats every adversary node as a chance node whose value is the unweighted mean of its children
func (s *search) expectimax(state game.State, depth, agent int) (float64, error) {
	if err := s.enter(); err != nil {
		return 0, err
	}
	actions, value, leaf := s.expand(state, depth, agent)
	if leaf {
		return value, nil
	}

	childDepth, childAgent := next(state, depth, agent)
	if agent == game.Controlled {
		best := math.Inf(-1)
		for _, action := range actions {
			value, err := s.expectimax(state.Successor(agent, action), childDepth, childAgent)
			if err != nil {
				return 0, err
			}
			best = max(best, value)
		}
		return best, nil
	}

	sum := 0.0
	for _, action := range actions {
		value, err := s.expectimax(state.Successor(agent, action), childDepth, childAgent)
		if err != nil {
			return 0, err
		}
		sum += value
	}
	return sum / float64(len(actions)), nil
}

// reflex scores a root successor without looking at any further turn
func (s *search) reflex(state game.State) (float64, error) {
	if err := s.enter(); err != nil {
		return 0, err
	}
	_, value, _ := s.expand(state, 0, game.Controlled)
	return value, nil
}
