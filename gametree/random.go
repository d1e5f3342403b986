package gametree

import (
	"fmt"

	"multiagent/game"

	"golang.org/x/exp/rand"
)

// Scores are drawn from [-MaxScore, MaxScore]
const MaxScore = 50

// Random builds a tree of the given number of full rounds, where every agent moves once per round.
// Each node has between 1 and branching children and a small chance of ending the game early.
func Random(rng *rand.Rand, agents, rounds, branching int) *Tree {
	if agents < 1 || rounds < 0 || branching < 1 {
		panic(fmt.Sprintf("invalid random tree shape: agents=%d rounds=%d branching=%d", agents, rounds, branching))
	}
	return New(agents, randomNode(rng, "root", agents*rounds, branching, false))
}

func randomNode(rng *rand.Rand, action game.Action, plies, branching int, canEnd bool) *Node {
	node := &Node{
		Action: action,
		Score:  float64(rng.Intn(2*MaxScore+1) - MaxScore),
	}
	if plies == 0 || (canEnd && rng.Intn(10) == 0) {
		node.Terminal = true
		return node
	}
	width := 1 + rng.Intn(branching)
	node.Children = make([]*Node, width)
	for i := range width {
		node.Children[i] = randomNode(rng, game.Action(fmt.Sprintf("a%d", i)), plies-1, branching, true)
	}
	return node
}
