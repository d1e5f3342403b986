package gametree

import (
	"strings"
	"testing"

	"multiagent/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

const scenarioYAML = `
agents: 2
root:
  action: root
  children:
    - action: A
      children:
        - {action: C, score: 3, terminal: true}
        - {action: D, score: 5, terminal: true}
    - action: B
      position: {x: 1, y: 2}
      objectives: [{x: 1, y: 3}]
      adversaries:
        - {position: {x: 0, y: 0}, scared_timer: 4}
      children:
        - {action: E, score: 2, terminal: true}
        - {action: F, score: 8, terminal: true}
`

func TestLoad(t *testing.T) {
	t.Run("decoding a two agent tree", func(t *testing.T) {
		tree, err := Load(strings.NewReader(scenarioYAML))

		require.NoError(t, err)
		require.Equal(t, 2, tree.Agents)
		require.Equal(t, 7, tree.Size(), "Should decode every node")

		state := tree.Start()
		require.Equal(t, []game.Action{"A", "B"}, state.LegalActions(0))
		b := state.Successor(0, "B").(State)
		require.Equal(t, game.Position{X: 1, Y: 2}, b.Position(), "Should decode node features")
		require.Equal(t, []game.Adversary{{Position: game.Position{}, ScaredTimer: 4}}, b.Adversaries())
	})

	t.Run("rejecting duplicate sibling actions", func(t *testing.T) {
		doc := "agents: 2\nroot:\n  children:\n    - {action: A}\n    - {action: A}\n"

		_, err := Load(strings.NewReader(doc))

		require.ErrorIs(t, err, ErrInvalidTree)
	})

	t.Run("rejecting a tree without agents", func(t *testing.T) {
		_, err := Load(strings.NewReader("root: {score: 1}\n"))

		require.ErrorIs(t, err, ErrInvalidTree)
	})

	t.Run("rejecting malformed yaml", func(t *testing.T) {
		_, err := Load(strings.NewReader("agents: [\n"))

		require.Error(t, err)
		require.NotErrorIs(t, err, ErrInvalidTree)
	})
}

func TestState(t *testing.T) {
	tree := New(3, Branch("root", 1,
		Branch("x", 2,
			Branch("y", 3,
				Leaf("z", 4)))))

	t.Run("cycling turns in index order", func(t *testing.T) {
		var s game.State = tree.Start()
		for _, step := range []struct {
			agent  int
			action game.Action
		}{{0, "x"}, {1, "y"}, {2, "z"}} {
			s = s.Successor(step.agent, step.action)
		}

		require.True(t, s.IsTerminal())
		require.Equal(t, 4.0, s.Score())
		require.Equal(t, 0, s.(State).Turn(), "Turn should wrap back to the controlled agent")
	})

	t.Run("successor does not change the original state", func(t *testing.T) {
		start := tree.Start()
		_ = start.Successor(0, "x")

		require.Equal(t, 1.0, start.Score())
		require.Equal(t, 0, start.Turn())
	})

	t.Run("panics when an agent moves out of turn", func(t *testing.T) {
		require.Panics(t, func() {
			tree.Start().LegalActions(1)
		})
	})

	t.Run("panics on an illegal action", func(t *testing.T) {
		require.Panics(t, func() {
			tree.Start().Successor(0, "nope")
		})
	})
}

func TestRandom(t *testing.T) {
	t.Run("same seed builds the same tree", func(t *testing.T) {
		a := Random(rand.New(rand.NewSource(7)), 3, 2, 3)
		b := Random(rand.New(rand.NewSource(7)), 3, 2, 3)

		require.Equal(t, a, b)
	})

	t.Run("depth is bounded by rounds times agents", func(t *testing.T) {
		tree := Random(rand.New(rand.NewSource(1)), 2, 3, 2)

		var depth func(n *Node) int
		depth = func(n *Node) int {
			deepest := 0
			for _, child := range n.Children {
				deepest = max(deepest, depth(child)+1)
			}
			return deepest
		}
		require.LessOrEqual(t, depth(tree.Root), 6)
		require.NotEmpty(t, tree.Root.Children, "Root should always expand")
		require.NoError(t, tree.Validate())
	})
}
