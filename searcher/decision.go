package searcher

import (
	"context"
	"fmt"
	"math"
	"time"

	"multiagent/experiments/metrics"
	"multiagent/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Searcher picks the controlled agent's action by searching a bounded-depth game tree.
// It is not safe for concurrent use.
type Searcher struct {
	variant  Variant
	evaluate game.Evaluate
	tieBreak TieBreak
	rng      *rand.Rand
	noOp     game.Action
	timeout  time.Duration
	metrics  metrics.Collector
}

func NewSearcher(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		variant:  Minimax,
		evaluate: game.EvaluateScore,
		tieBreak: TieBreakFirst,
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		noOp:     game.Stop,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Searcher) Variant() Variant {
	return s.variant
}

// Decide searches depth full rounds ahead and returns the best root action.
// Depth 0 scores each immediate successor with the heuristic. Panics raised by the state or
// the heuristic are not recovered.
func (s *Searcher) Decide(ctx context.Context, state game.State, depth int) (Decision, error) {
	if err := s.validate(depth); err != nil {
		return Decision{}, err
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.metrics.Start(s.variant.String(), depth)
	actions := state.LegalActions(game.Controlled)
	if len(actions) == 0 {
		log.Debug().Msgf("no legal actions for the controlled agent, playing %s", s.noOp)
		return Decision{Action: s.noOp, Value: state.Score(), Metric: s.metrics.Complete()}, nil
	}

	run := &search{ctx: ctx, evaluate: s.evaluate, metrics: s.metrics}
	childDepth, childAgent := next(state, depth, game.Controlled)
	childDepth = max(childDepth, 0) // A single agent's round ends at the root

	alpha, beta := math.Inf(-1), math.Inf(1)
	best := math.Inf(-1)
	values := make(map[game.Action]float64, len(actions))
	maximizers := make([]game.Action, 0, len(actions))
	partial := false
	for _, action := range actions {
		successor := state.Successor(game.Controlled, action)

		var value float64
		var err error
		switch s.variant {
		case Minimax:
			value, err = run.minimax(successor, childDepth, childAgent)
		case AlphaBeta:
			value, err = run.alphaBeta(successor, childDepth, childAgent, alpha, beta)
		case Expectimax:
			value, err = run.expectimax(successor, childDepth, childAgent)
		case Reflex:
			value, err = run.reflex(successor)
		}
		if err != nil {
			if len(values) == 0 {
				return Decision{}, fmt.Errorf("search stopped before any root action completed: %w", err)
			}
			partial = true
			break
		}

		values[action] = value
		if value > best {
			best = value
			maximizers = append(maximizers[:0], action)
		} else if value == best {
			maximizers = append(maximizers, action)
		}
		alpha = max(alpha, best)
	}
	if len(maximizers) == 0 { // Only NaN values
		maximizers = append(maximizers, actions[0])
	}

	s.metrics.SetPartial(partial)
	decision := Decision{
		Action:  s.tieBreak.pick(s.rng, maximizers),
		Value:   best,
		Values:  values,
		Partial: partial,
		Metric:  s.metrics.Complete(),
	}
	if partial {
		log.Warn().Msgf("%s search stopped after %d of %d root actions, playing %s", s.variant, len(values), len(actions), decision.Action)
	}
	log.Debug().
		Str("variant", s.variant.String()).
		Int("depth", depth).
		Str("action", string(decision.Action)).
		Float64("value", decision.Value).
		Int("nodes", decision.Metric.Nodes).
		Msg("decided")
	return decision, nil
}

func (s *Searcher) validate(depth int) error {
	if depth < 0 {
		return fmt.Errorf("%w: depth budget must not be negative, got %d", ErrInvalidConfiguration, depth)
	}
	if !s.variant.valid() {
		return fmt.Errorf("%w: unknown variant %s", ErrInvalidConfiguration, s.variant)
	}
	if s.tieBreak != TieBreakFirst && s.tieBreak != TieBreakRandom {
		return fmt.Errorf("%w: unknown tie-break policy %s", ErrInvalidConfiguration, s.tieBreak)
	}
	return nil
}

// Decide runs a single search with a fresh searcher and the score heuristic
func Decide(state game.State, depth int, variant Variant, tieBreak TieBreak) (game.Action, error) {
	s := NewSearcher(WithVariant(variant), WithTieBreak(tieBreak))
	decision, err := s.Decide(context.Background(), state, depth)
	if err != nil {
		return "", err
	}
	return decision.Action, nil
}
