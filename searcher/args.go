package searcher

import (
	"time"

	"multiagent/experiments/metrics"
	"multiagent/game"

	"golang.org/x/exp/rand"
)

type Option func(s *Searcher)

func WithVariant(variant Variant) Option {
	return func(s *Searcher) {
		s.variant = variant
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithTieBreak(tieBreak TieBreak) Option {
	return func(s *Searcher) {
		s.tieBreak = tieBreak
	}
}

// WithSeed makes random tie-breaking reproducible
func WithSeed(seed uint64) Option {
	return func(s *Searcher) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithNoOp sets the action returned when the controlled agent has no legal moves
func WithNoOp(action game.Action) Option {
	return func(s *Searcher) {
		s.noOp = action
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = metrics.NewCollector()
	}
}

// WithTimeout bounds each decision, the best completed root action is returned when it expires
func WithTimeout(timeout time.Duration) Option {
	return func(s *Searcher) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}
