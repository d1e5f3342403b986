// Package gametree is an explicit, finite game tree that satisfies game.State.
// Trees are declared in YAML or generated at random, and are used to exercise the searchers on known values.
package gametree

import (
	"errors"
	"fmt"
	"io"
	"os"

	"multiagent/game"

	"gopkg.in/yaml.v3"
)

var ErrInvalidTree = errors.New("invalid game tree")

// Node is a state in the tree, children belong to the agent whose turn it is at this node
type Node struct {
	Action      game.Action      `json:"action" yaml:"action"` // Edge label from the parent
	Score       float64          `json:"score" yaml:"score"`
	Terminal    bool             `json:"terminal" yaml:"terminal"`
	Children    []*Node          `json:"children" yaml:"children"`
	Position    game.Position    `json:"position" yaml:"position"`
	Objectives  []game.Position  `json:"objectives" yaml:"objectives"`
	Bonuses     []game.Position  `json:"bonuses" yaml:"bonuses"`
	Adversaries []game.Adversary `json:"adversaries" yaml:"adversaries"`
}

type Tree struct {
	Agents int   `json:"agents" yaml:"agents"`
	Root   *Node `json:"root" yaml:"root"`
}

func New(agents int, root *Node) *Tree {
	return &Tree{Agents: agents, Root: root}
}

// Leaf is a terminal node
func Leaf(action game.Action, score float64) *Node {
	return &Node{Action: action, Score: score, Terminal: true}
}

func Branch(action game.Action, score float64, children ...*Node) *Node {
	return &Node{Action: action, Score: score, Children: children}
}

// Load decodes and validates a YAML tree
func Load(r io.Reader) (*Tree, error) {
	var t Tree
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to decode game tree: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func LoadFile(path string) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open game tree file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func (t *Tree) Validate() error {
	if t.Agents < 1 {
		return fmt.Errorf("%w: need at least one agent, got %d", ErrInvalidTree, t.Agents)
	}
	if t.Root == nil {
		return fmt.Errorf("%w: missing root", ErrInvalidTree)
	}
	return validate(t.Root)
}

func validate(n *Node) error {
	seen := make(map[game.Action]bool, len(n.Children))
	for _, child := range n.Children {
		if child == nil {
			return fmt.Errorf("%w: nil child under %q", ErrInvalidTree, n.Action)
		}
		if child.Action == "" {
			return fmt.Errorf("%w: unlabeled child under %q", ErrInvalidTree, n.Action)
		}
		if seen[child.Action] {
			return fmt.Errorf("%w: duplicate action %q under %q", ErrInvalidTree, child.Action, n.Action)
		}
		seen[child.Action] = true
		if err := validate(child); err != nil {
			return err
		}
	}
	return nil
}

// Size counts every node in the tree
func (t *Tree) Size() int {
	var count func(n *Node) int
	count = func(n *Node) int {
		size := 1
		for _, child := range n.Children {
			size += count(child)
		}
		return size
	}
	return count(t.Root)
}

// Start returns the root state with agent 0 to move
func (t *Tree) Start() State {
	return State{agents: t.Agents, node: t.Root}
}
