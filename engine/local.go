package engine

import (
	"context"
	"fmt"
	"slices"
	"time"

	"multiagent/experiments/metrics"
	"multiagent/game"

	"github.com/rs/zerolog/log"
)

type Local struct {
	State    game.State
	Agents   []Agent
	MaxTurns int
}

// LocalEngine plays agents[i] as agent i. A non-positive maxTurns uses MaxTurns.
func LocalEngine(state game.State, agents []Agent, maxTurns int) *Local {
	if len(agents) != state.AgentCount() {
		panic(fmt.Sprintf("number of agents %d does not match the state's %d", len(agents), state.AgentCount()))
	}
	if maxTurns <= 0 {
		maxTurns = MaxTurns
	}
	return &Local{
		State:    state,
		Agents:   agents,
		MaxTurns: maxTurns,
	}
}

// Run executes the game loop. On an agent failure the metrics of the moves played so far are returned with the error.
func (e *Local) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric
	finish := func() metrics.GameMetric {
		gameMetric.EndTime = time.Now()
		gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
		gameMetric.TotalMoves = len(moveMetrics)
		gameMetric.Rounds = len(moveMetrics) / len(e.Agents)
		gameMetric.Terminal = e.State.IsTerminal()
		gameMetric.FinalScore = e.State.Score()
		return gameMetric
	}

	log.Info().Msgf("starting game with %d agents", len(e.Agents))

	agent := game.Controlled
	for turn := 1; turn <= e.MaxTurns && !e.State.IsTerminal(); turn++ {
		actions := e.State.LegalActions(agent)
		if len(actions) == 0 {
			log.Info().Msgf("agent %d has no legal actions on turn %d", agent, turn)
			break
		}

		action, searchMetric, err := e.Agents[agent].FindAction(ctx, e.State, agent)
		if err != nil {
			return finish(), moveMetrics, fmt.Errorf("agent %d failed on turn %d: %w", agent, turn, err)
		}
		if !slices.Contains(actions, action) {
			return finish(), moveMetrics, fmt.Errorf("%w: agent %d played %s on turn %d", ErrIllegalAction, agent, action, turn)
		}

		e.State = e.State.Successor(agent, action)
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Turn:         turn,
			Agent:        agent,
			Action:       string(action),
			Score:        e.State.Score(),
			SearchMetric: searchMetric,
		})
		agent = (agent + 1) % len(e.Agents)
	}

	gameMetric = finish()
	log.Info().
		Int("moves", gameMetric.TotalMoves).
		Bool("terminal", gameMetric.Terminal).
		Float64("score", gameMetric.FinalScore).
		Msg("game over")
	return gameMetric, moveMetrics, nil
}
