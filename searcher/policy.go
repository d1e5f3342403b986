package searcher

import (
	"fmt"

	"multiagent/game"

	"golang.org/x/exp/rand"
)

// TieBreak picks among root actions that share the maximum value
type TieBreak int

const (
	TieBreakFirst  TieBreak = iota // First maximizing action in legal order, deterministic
	TieBreakRandom                 // Uniform among all maximizing actions
)

func (t TieBreak) String() string {
	switch t {
	case TieBreakFirst:
		return "first"
	case TieBreakRandom:
		return "random"
	default:
		return fmt.Sprintf("tiebreak(%d)", int(t))
	}
}

func ParseTieBreak(name string) (TieBreak, error) {
	switch name {
	case "first", "":
		return TieBreakFirst, nil
	case "random":
		return TieBreakRandom, nil
	default:
		return 0, fmt.Errorf("%w: unknown tie-break policy %q", ErrInvalidConfiguration, name)
	}
}

func (t TieBreak) pick(rng *rand.Rand, candidates []game.Action) game.Action {
	if t == TieBreakRandom && len(candidates) > 1 {
		return candidates[rng.Intn(len(candidates))]
	}
	return candidates[0]
}
