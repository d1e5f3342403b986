package gametree

import (
	"fmt"

	"multiagent/game"
)

// State is a position in a Tree. It is a value type, successors never share mutable data with it.
type State struct {
	agents int
	node   *Node
	turn   int
}

func (s State) IsTerminal() bool {
	return s.node.Terminal
}

func (s State) Score() float64 {
	return s.node.Score
}

func (s State) AgentCount() int {
	return s.agents
}

// Turn is the agent expected to move next
func (s State) Turn() int {
	return s.turn
}

func (s State) Node() *Node {
	return s.node
}

// LegalActions panics when agents move out of index order, so a search that loses track of turns fails loudly
func (s State) LegalActions(agent int) []game.Action {
	s.checkTurn(agent)
	actions := make([]game.Action, len(s.node.Children))
	for i, child := range s.node.Children {
		actions[i] = child.Action
	}
	return actions
}

func (s State) Successor(agent int, action game.Action) game.State {
	s.checkTurn(agent)
	for _, child := range s.node.Children {
		if child.Action == action {
			return State{agents: s.agents, node: child, turn: (agent + 1) % s.agents}
		}
	}
	panic(fmt.Sprintf("action %q is not legal for agent %d", action, agent))
}

func (s State) checkTurn(agent int) {
	if agent != s.turn {
		panic(fmt.Sprintf("agent %d moved out of turn, expected agent %d", agent, s.turn))
	}
}

func (s State) Position() game.Position {
	return s.node.Position
}

func (s State) Objectives() []game.Position {
	return s.node.Objectives
}

func (s State) Bonuses() []game.Position {
	return s.node.Bonuses
}

func (s State) Adversaries() []game.Adversary {
	return s.node.Adversaries
}
