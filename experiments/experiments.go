package experiments

import (
	"context"
	"fmt"

	"multiagent/engine"
	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/searcher"

	"github.com/rs/zerolog/log"
)

// NewSearcher resolves an agent config into a searcher that collects metrics.
// A zero seed leaves random tie-breaking seeded from the clock.
func NewSearcher(config metrics.AgentConfig, weights game.Weights) (*searcher.Searcher, error) {
	variant, err := searcher.ParseVariant(config.Variant)
	if err != nil {
		return nil, err
	}
	tieBreak, err := searcher.ParseTieBreak(config.TieBreak)
	if err != nil {
		return nil, err
	}
	heuristic, err := game.ParseHeuristic(config.Heuristic)
	if err != nil {
		return nil, err
	}

	options := []searcher.Option{
		searcher.WithVariant(variant),
		searcher.WithTieBreak(tieBreak),
		searcher.WithEvaluationFn(heuristic.Evaluate(weights)),
		searcher.WithTimeout(config.Timeout),
		searcher.WithMetrics(),
	}
	if config.Seed != 0 {
		options = append(options, searcher.WithSeed(config.Seed))
	}
	return searcher.NewSearcher(options...), nil
}

// Compare lets every config decide on the same state
func Compare(ctx context.Context, state game.State, configs []metrics.AgentConfig, weights game.Weights) ([]metrics.DecisionRecord, error) {
	records := make([]metrics.DecisionRecord, 0, len(configs))
	for _, config := range configs {
		s, err := NewSearcher(config, weights)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", config.Name, err)
		}

		decision, err := s.Decide(ctx, state, config.Depth)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", config.Name, err)
		}
		log.Info().Msgf("config %s chose %s with value %g after %d nodes", config.Name, decision.Action, decision.Value, decision.Metric.Nodes)

		records = append(records, metrics.DecisionRecord{
			Config:       config.Name,
			TieBreak:     config.TieBreak,
			Heuristic:    config.Heuristic,
			Action:       string(decision.Action),
			Value:        decision.Value,
			SearchMetric: decision.Metric,
		})
	}
	return records, nil
}

// RunComparison compares configs on one state and stores the decisions, it returns the output directory
func RunComparison(ctx context.Context, root, name string, state game.State, configs []metrics.AgentConfig, weights game.Weights) (string, error) {
	log.Info().Msgf("starting %s comparison of %d configs...", name, len(configs))

	records, err := Compare(ctx, state, configs, weights)
	if err != nil {
		return "", err
	}

	writer, err := newWriter(root, name, configs)
	if err != nil {
		return "", err
	}
	err = writer.WriteDecisionRecords(records)
	if err != nil {
		return "", fmt.Errorf("failed to store decision records: %w", err)
	}
	log.Info().Msgf("stored decision records in %s", writer.Dir())
	return writer.Dir(), nil
}

// RunGames plays every config on every start state against random adversaries, it returns the output directory
func RunGames(ctx context.Context, root, name string, states []game.State, configs []metrics.AgentConfig, weights game.Weights) (string, error) {
	log.Info().Msgf("starting %s experiment...", name)

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	for ci, config := range configs {
		s, err := NewSearcher(config, weights)
		if err != nil {
			return "", fmt.Errorf("config %s: %w", config.Name, err)
		}

		log.Info().Msgf("starting config %d of %d %+v...", ci+1, len(configs), config)
		for i, state := range states {
			agents := []engine.Agent{engine.NewSearchAgent(s, config.Depth)}
			for adversary := 1; adversary < state.AgentCount(); adversary++ {
				agents = append(agents, engine.NewRandomAgent(config.Seed+uint64(i*state.AgentCount()+adversary)))
			}

			gameMetric, moveMetrics, err := engine.LocalEngine(state, agents, engine.MaxTurns).Run(ctx)
			if err != nil {
				return "", fmt.Errorf("config %s game %d: %w", config.Name, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Config:     config.Name,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed config %d of %d game %d with score %g", ci+1, len(configs), i+1, gameMetric.FinalScore)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := newWriter(root, name, configs)
	if err != nil {
		return "", err
	}

	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return "", fmt.Errorf("failed to store game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return "", fmt.Errorf("failed to store move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}

// newWriter creates the experiment directory and stores the configs taking part
func newWriter(root, name string, configs []metrics.AgentConfig) (*metrics.Writer, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return nil, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")
	return writer, nil
}
