package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counting a decision", func(t *testing.T) {
		c := NewCollector()
		c.Start("alphabeta", 2)
		for range 3 {
			c.AddNode()
		}
		c.AddLeaf()
		c.AddCutoff()
		c.SetPartial(true)

		got := c.Complete()

		require.Equal(t, "alphabeta", got.Variant)
		require.Equal(t, 2, got.Depth)
		require.Equal(t, 3, got.Nodes)
		require.Equal(t, 1, got.Leaves)
		require.Equal(t, 1, got.Cutoffs)
		require.True(t, got.Partial)
	})

	t.Run("restarting resets the counters", func(t *testing.T) {
		c := NewCollector()
		c.Start("minimax", 1)
		c.AddNode()
		c.SetPartial(true)
		c.Start("minimax", 1)

		got := c.Complete()

		require.Zero(t, got.Nodes, "Start should reset node visits")
		require.False(t, got.Partial, "Start should reset the partial flag")
	})

	t.Run("dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start("minimax", 1)
		c.AddNode()

		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

func TestWriter(t *testing.T) {
	t.Run("writing decision records", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "compare")
		require.NoError(t, err)

		err = w.WriteDecisionRecords([]DecisionRecord{{
			Config:       "ab",
			TieBreak:     "first",
			Heuristic:    "score",
			Action:       "A",
			Value:        3,
			SearchMetric: SearchMetric{Variant: "alphabeta", Depth: 1, Nodes: 6, Leaves: 3, Cutoffs: 1, Duration: time.Millisecond},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "decision_records.csv"))
		require.Len(t, rows, 2, "Should write a header and one row")
		require.Equal(t, "config", rows[0][0])
		require.Equal(t, []string{"ab", "alphabeta", "1", "first", "score", "A", "3", "6", "3", "1", "false", "1ms"}, rows[1])
	})

	t.Run("writing move and game records", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "game")
		require.NoError(t, err)

		require.NoError(t, w.WriteMoveRecords([]MoveRecord{{Game: 2, MoveMetric: MoveMetric{Turn: 1, Agent: 0, Action: "North", Score: 1.5}}}))
		require.NoError(t, w.WriteGameRecords([]GameRecord{{ID: 2, Config: "ab", GameMetric: GameMetric{TotalMoves: 4, Rounds: 2, Terminal: true, FinalScore: 10}}}))

		moves := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Equal(t, []string{"2", "1", "0", "North", "1.5"}, moves[1][:5])
		games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Equal(t, []string{"2", "ab"}, games[1][:2])
		require.Equal(t, []string{"4", "2", "true", "10"}, games[1][5:])
	})

	t.Run("writing agent configs", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "configs")
		require.NoError(t, err)

		err = w.WriteAgentConfigs([]AgentConfig{{Name: "ex", Variant: "expectimax", Depth: 2, TieBreak: "random", Heuristic: "composite", Seed: 7, Timeout: time.Second}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Equal(t, []string{"ex", "expectimax", "2", "random", "composite", "7", "1s"}, rows[1])
	})

	t.Run("root path that is a file fails", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(root, nil, 0644))

		_, err := NewWriter(root, "compare")

		require.Error(t, err)
	})
}

func readCSV(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}
