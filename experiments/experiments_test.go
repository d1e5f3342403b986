package experiments

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/gametree"
	"multiagent/searcher"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

var configs = []metrics.AgentConfig{
	{Name: "mm", Variant: "minimax", Depth: 1},
	{Name: "ab", Variant: "alphabeta", Depth: 1},
	{Name: "ex", Variant: "expectimax", Depth: 1, TieBreak: "random", Seed: 3},
	{Name: "rf", Variant: "reflex", Heuristic: "score"},
}

func scenarioTree() *gametree.Tree {
	return gametree.New(2, gametree.Branch("root", 0,
		gametree.Branch("A", 0, gametree.Leaf("C", 3), gametree.Leaf("D", 5)),
		gametree.Branch("B", 0, gametree.Leaf("E", 2), gametree.Leaf("F", 8)),
	))
}

func TestCompare(t *testing.T) {
	t.Run("every config decides on the same state", func(t *testing.T) {
		records, err := Compare(context.Background(), scenarioTree().Start(), configs, game.DefaultWeights())

		require.NoError(t, err)
		require.Len(t, records, 4)
		require.Equal(t, "A", records[0].Action)
		require.Equal(t, 3.0, records[0].Value)
		require.Equal(t, "A", records[1].Action)
		require.Less(t, records[1].Nodes, records[0].Nodes, "Alpha-beta should prune on this tree")
		require.Equal(t, "B", records[2].Action)
		require.Equal(t, 5.0, records[2].Value)
		require.Equal(t, "reflex", records[3].Variant)
	})

	t.Run("unknown names are rejected", func(t *testing.T) {
		_, err := Compare(context.Background(), scenarioTree().Start(), []metrics.AgentConfig{{Name: "bad", Variant: "negamax"}}, game.DefaultWeights())
		require.ErrorIs(t, err, searcher.ErrInvalidConfiguration)

		_, err = Compare(context.Background(), scenarioTree().Start(), []metrics.AgentConfig{{Name: "bad", Variant: "minimax", Heuristic: "learned"}}, game.DefaultWeights())
		require.ErrorIs(t, err, game.ErrUnknownHeuristic)
	})

	t.Run("search errors are reported", func(t *testing.T) {
		_, err := Compare(context.Background(), scenarioTree().Start(), []metrics.AgentConfig{{Name: "neg", Variant: "minimax", Depth: -1}}, game.DefaultWeights())

		require.ErrorIs(t, err, searcher.ErrInvalidConfiguration)
	})
}

func TestNewSearcher(t *testing.T) {
	tied := gametree.New(2, gametree.Branch("root", 0,
		gametree.Leaf("X", 5),
		gametree.Leaf("Y", 5),
	))
	decide := func(seed uint64) game.Action {
		s, err := NewSearcher(metrics.AgentConfig{Variant: "minimax", Depth: 1, TieBreak: "random", Seed: seed}, game.DefaultWeights())
		require.NoError(t, err)
		decision, err := s.Decide(context.Background(), tied.Start(), 1)
		require.NoError(t, err)
		return decision.Action
	}

	t.Run("a seed makes tie-breaking reproducible", func(t *testing.T) {
		first := decide(11)
		for range 8 {
			require.Equal(t, first, decide(11))
		}
	})

	t.Run("a zero seed is not a fixed seed", func(t *testing.T) {
		chosen := make(map[game.Action]bool)
		for range 64 {
			chosen[decide(0)] = true
			time.Sleep(time.Microsecond)
		}

		require.Len(t, chosen, 2, "Clock seeded searchers should reach both tied actions")
	})
}

func TestRunComparison(t *testing.T) {
	dir, err := RunComparison(context.Background(), t.TempDir(), "scenario", scenarioTree().Start(), configs, game.DefaultWeights())

	require.NoError(t, err)
	require.Len(t, readCSV(t, filepath.Join(dir, "agent_configs.csv")), len(configs)+1)
	decisions := readCSV(t, filepath.Join(dir, "decision_records.csv"))
	require.Len(t, decisions, len(configs)+1)
	require.Equal(t, []string{"mm", "minimax", "1"}, decisions[1][:3])
}

func TestRunGames(t *testing.T) {
	states := make([]game.State, 3)
	for i := range states {
		states[i] = gametree.Random(rand.New(rand.NewSource(uint64(i))), 2, 3, 3).Start()
	}

	dir, err := RunGames(context.Background(), t.TempDir(), "random", states, configs[:2], game.DefaultWeights())

	require.NoError(t, err)
	games := readCSV(t, filepath.Join(dir, "game_records.csv"))
	require.Len(t, games, 2*len(states)+1, "Every config should play every state")
	require.Equal(t, "mm", games[1][1])
	require.Equal(t, "ab", games[len(states)+1][1])
	moves := readCSV(t, filepath.Join(dir, "move_records.csv"))
	require.Greater(t, len(moves), 1)
}

func readCSV(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}
