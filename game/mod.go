package game

// Action identifies one legal move for one agent in one state
type Action string

// Stop is the default no-op action returned when the controlled agent has no legal moves
const Stop Action = "Stop"

// Controlled is the index of the maximizing agent whose action is decided
const Controlled = 0

// State should be immutable - Successor always returns a new state and never mutates the receiver.
// Agent 0 is the controlled agent, agents 1..AgentCount()-1 are adversaries moving in index order.
type State interface {
	// IsTerminal reports a win or a loss
	IsTerminal() bool
	// Score is higher when better for the controlled agent, for terminal and non-terminal states alike
	Score() float64
	AgentCount() int
	LegalActions(agent int) []Action
	// Successor is only defined for an action in LegalActions(agent)
	Successor(agent int, action Action) State
}

// Evaluates a state to a scalar desirability estimate from the controlled agent's perspective.
// Must be deterministic and pure.
type Evaluate func(State) float64
