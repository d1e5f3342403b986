package engine

import (
	"context"
	"errors"

	"multiagent/experiments/metrics"
	"multiagent/game"
)

const MaxTurns = 500

var (
	ErrIllegalAction    = errors.New("illegal action")
	ErrUnsupportedAgent = errors.New("unsupported agent")
)

type Engine interface {
	// Run plays until the state is terminal, an agent is stuck or the turn limit is reached
	Run(ctx context.Context) (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

// Agent picks an action for the agent whose turn it is
type Agent interface {
	FindAction(ctx context.Context, state game.State, agent int) (game.Action, metrics.SearchMetric, error)
}
