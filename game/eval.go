package game

import (
	"fmt"
	"math"
)

// EvaluateScore simply returns the state's score. It is the baseline heuristic and the fallback for every search variant.
func EvaluateScore(s State) float64 {
	return s.Score()
}

// Position is a cell on a grid
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Adversary is an opponent agent's location and how many turns it remains harmless
type Adversary struct {
	Position    Position `json:"position" yaml:"position"`
	ScaredTimer int      `json:"scared_timer" yaml:"scared_timer"`
}

func (a Adversary) IsScared() bool {
	return a.ScaredTimer > 0
}

// Features exposes the positional attributes the composite heuristic needs.
// States that only ever use EvaluateScore do not have to implement it.
type Features interface {
	Position() Position
	Objectives() []Position
	Bonuses() []Position
	Adversaries() []Adversary
}

// Weights scale each term of the composite heuristic
type Weights struct {
	Score               float64 `mapstructure:"score"`
	RemainingObjectives float64 `mapstructure:"remaining_objectives"`
	NearestObjective    float64 `mapstructure:"nearest_objective"`
	ObjectiveSpread     float64 `mapstructure:"objective_spread"`
	RemainingBonuses    float64 `mapstructure:"remaining_bonuses"`
	NearestBonus        float64 `mapstructure:"nearest_bonus"`
	NearestScared       float64 `mapstructure:"nearest_scared"`
}

func DefaultWeights() Weights {
	return Weights{
		Score:               1,
		RemainingObjectives: 20,
		NearestObjective:    10,
		ObjectiveSpread:     22,
		RemainingBonuses:    20,
		NearestBonus:        22,
		NearestScared:       155,
	}
}

// NewComposite returns a heuristic that adds reciprocal distance and count terms to the score:
// fewer remaining objectives, a closer objective, a closer bonus and a closer scared adversary all raise the value.
// Every denominator is offset by 1, and a nearest-distance term over an empty set contributes nothing.
func NewComposite(w Weights) Evaluate {
	return func(s State) float64 {
		f, ok := s.(Features)
		if !ok {
			panic(fmt.Sprintf("composite heuristic: state %T does not expose features", s))
		}
		pos := f.Position()
		objectives := f.Objectives()
		bonuses := f.Bonuses()

		value := w.Score * s.Score()
		value += w.RemainingObjectives / float64(len(objectives)+1)
		value += w.RemainingBonuses / float64(len(bonuses)+1)

		if nearest, total, ok := distances(pos, objectives); ok {
			value += w.NearestObjective / float64(nearest+1)
			value += w.ObjectiveSpread / float64(total+1)
		}
		if nearest, _, ok := distances(pos, bonuses); ok {
			value += w.NearestBonus / float64(nearest+1)
		}
		if nearest, _, ok := distances(pos, scaredPositions(f.Adversaries())); ok {
			value += w.NearestScared / float64(nearest+1)
		}
		return value
	}
}

// Manhattan returns the grid distance between two positions
func Manhattan(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// distances returns the nearest and summed distance from pos to targets, ok is false without targets
func distances(pos Position, targets []Position) (nearest int, total int, ok bool) {
	if len(targets) == 0 {
		return 0, 0, false
	}
	nearest = math.MaxInt
	for _, target := range targets {
		d := Manhattan(pos, target)
		nearest = min(nearest, d)
		total += d
	}
	return nearest, total, true
}

func scaredPositions(adversaries []Adversary) []Position {
	var scared []Position
	for _, a := range adversaries {
		if a.IsScared() {
			scared = append(scared, a.Position)
		}
	}
	return scared
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
