package game

import (
	"errors"
	"fmt"
)

var ErrUnknownHeuristic = errors.New("unknown heuristic")

// Heuristic names one of the built-in evaluation functions
type Heuristic string

const (
	HeuristicScore     Heuristic = "score"
	HeuristicComposite Heuristic = "composite"
)

func ParseHeuristic(name string) (Heuristic, error) {
	switch h := Heuristic(name); h {
	case HeuristicScore, HeuristicComposite:
		return h, nil
	case "":
		return HeuristicScore, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownHeuristic, name)
	}
}

// Evaluate resolves the built-in heuristic, weights only apply to the composite one
func (h Heuristic) Evaluate(w Weights) Evaluate {
	if h == HeuristicComposite {
		return NewComposite(w)
	}
	return EvaluateScore
}
