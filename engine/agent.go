package engine

import (
	"context"
	"fmt"

	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/searcher"

	"golang.org/x/exp/rand"
)

// SearchAgent plays the controlled agent with a depth-limited search
type SearchAgent struct {
	searcher *searcher.Searcher
	depth    int
}

func NewSearchAgent(s *searcher.Searcher, depth int) *SearchAgent {
	return &SearchAgent{searcher: s, depth: depth}
}

func (a *SearchAgent) FindAction(ctx context.Context, state game.State, agent int) (game.Action, metrics.SearchMetric, error) {
	if agent != game.Controlled {
		return "", metrics.SearchMetric{}, fmt.Errorf("%w: search agent cannot play agent %d", ErrUnsupportedAgent, agent)
	}
	decision, err := a.searcher.Decide(ctx, state, a.depth)
	if err != nil {
		return "", metrics.SearchMetric{}, err
	}
	return decision.Action, decision.Metric, nil
}

// RandomAgent plays a uniformly random legal action
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) FindAction(_ context.Context, state game.State, agent int) (game.Action, metrics.SearchMetric, error) {
	actions := state.LegalActions(agent)
	if len(actions) == 0 {
		return game.Stop, metrics.SearchMetric{}, nil
	}
	return actions[a.rng.Intn(len(actions))], metrics.SearchMetric{}, nil
}

// GreedyAgent plays the action whose successor the heuristic rates lowest for the controlled agent
type GreedyAgent struct {
	evaluate game.Evaluate
}

func NewGreedyAgent(evaluate game.Evaluate) *GreedyAgent {
	if evaluate == nil {
		evaluate = game.EvaluateScore
	}
	return &GreedyAgent{evaluate: evaluate}
}

func (a *GreedyAgent) FindAction(_ context.Context, state game.State, agent int) (game.Action, metrics.SearchMetric, error) {
	actions := state.LegalActions(agent)
	if len(actions) == 0 {
		return game.Stop, metrics.SearchMetric{}, nil
	}
	best, bestValue := actions[0], a.evaluate(state.Successor(agent, actions[0]))
	for _, action := range actions[1:] {
		value := a.evaluate(state.Successor(agent, action))
		if value < bestValue {
			best, bestValue = action, value
		}
	}
	return best, metrics.SearchMetric{}, nil
}
