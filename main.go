package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"multiagent/config"
	"multiagent/experiments"
	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/gametree"
	"multiagent/searcher"
	"multiagent/server"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

func main() {
	cfgPath := flag.String("config", "", "Path to a YAML, JSON or TOML search config")
	treePath := flag.String("tree", "", "Path to a YAML game tree, a random tree is generated when empty")
	agents := flag.Int("agents", 2, "Agents of the generated tree")
	rounds := flag.Int("rounds", 3, "Rounds of the generated tree")
	branching := flag.Int("branching", 3, "Maximum branching factor of the generated tree")
	compare := flag.String("compare", "", "Comma separated variants to compare on the tree, e.g. minimax,alphabeta")
	games := flag.Int("games", 0, "Number of generated trees to play the configured searcher on")
	out := flag.String("out", "results", "Directory for experiment records")
	addr := flag.String("serve", "", "Serve decisions over HTTP on this address instead, e.g. :8080")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Setup(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up configuration")
	}
	level, _ := cfg.Level()
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *addr != "":
		err = server.New(cfg).Start(ctx, *addr)
	case *games > 0:
		err = runGames(ctx, cfg, *games, *agents, *rounds, *branching, *out)
	default:
		var tree *gametree.Tree
		tree, err = loadTree(cfg, *treePath, *agents, *rounds, *branching)
		if err != nil {
			break
		}
		if *compare != "" {
			err = runComparison(ctx, cfg, tree, strings.Split(*compare, ","), *out)
		} else {
			err = decide(ctx, cfg, tree)
		}
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed")
	}
}

func loadTree(cfg *config.Config, path string, agents, rounds, branching int) (*gametree.Tree, error) {
	if path != "" {
		return gametree.LoadFile(path)
	}
	if agents < 1 || rounds < 1 || branching < 1 {
		return nil, fmt.Errorf("%w: generated trees need positive agents, rounds and branching", gametree.ErrInvalidTree)
	}
	tree := gametree.Random(rand.New(rand.NewSource(cfg.Seed)), agents, rounds, branching)
	log.Info().Msgf("generated a tree of %d nodes with seed %d", tree.Size(), cfg.Seed)
	return tree, nil
}

func decide(ctx context.Context, cfg *config.Config, tree *gametree.Tree) error {
	options, err := cfg.Options()
	if err != nil {
		return err
	}
	depth, err := cfg.DepthBudget()
	if err != nil {
		return err
	}

	decision, err := searcher.NewSearcher(append(options, searcher.WithMetrics())...).Decide(ctx, tree.Start(), depth)
	if err != nil {
		return err
	}
	fmt.Printf("action: %s\nvalue: %g\nnodes: %d\npartial: %t\n", decision.Action, decision.Value, decision.Metric.Nodes, decision.Partial)
	return nil
}

func runComparison(ctx context.Context, cfg *config.Config, tree *gametree.Tree, variants []string, out string) error {
	base, err := cfg.AgentConfig("")
	if err != nil {
		return err
	}
	configs := make([]metrics.AgentConfig, len(variants))
	for i, variant := range variants {
		configs[i] = base
		configs[i].Name = strings.TrimSpace(variant)
		configs[i].Variant = strings.TrimSpace(variant)
	}

	dir, err := experiments.RunComparison(ctx, out, "comparison", tree.Start(), configs, cfg.Weights)
	if err != nil {
		return err
	}
	fmt.Printf("Stored comparison in %s\n", dir)
	return nil
}

func runGames(ctx context.Context, cfg *config.Config, games, agents, rounds, branching int, out string) error {
	agentConfig, err := cfg.AgentConfig(cfg.Variant)
	if err != nil {
		return err
	}
	if agents < 1 || rounds < 1 || branching < 1 {
		return fmt.Errorf("%w: generated trees need positive agents, rounds and branching", gametree.ErrInvalidTree)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	states := make([]game.State, games)
	for i := range states {
		states[i] = gametree.Random(rng, agents, rounds, branching).Start()
	}

	dir, err := experiments.RunGames(ctx, out, "games", states, []metrics.AgentConfig{agentConfig}, cfg.Weights)
	if err != nil {
		return err
	}
	fmt.Printf("Stored %d games in %s\n", games, dir)
	return nil
}
