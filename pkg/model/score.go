package model

import "fmt"

// Score counts hard and soft constraint penalties; lower is better on both levels.
// Scores compare lexicographically: hard first, soft breaks ties.
type Score struct {
	Hard int
	Soft int
}

// Checks whether no hard constraint is violated
func (s Score) Feasible() bool {
	return s.Hard == 0
}

// Returns a negative number if s is better than other, zero if equal and a positive number if worse
func (s Score) Compare(other Score) int {
	if s.Hard != other.Hard {
		return s.Hard - other.Hard
	}
	return s.Soft - other.Soft
}

func (s Score) BetterThan(other Score) bool {
	return s.Compare(other) < 0
}

// Returns the score obtained after applying delta
func (s Score) Add(delta Delta) Score {
	return Score{Hard: s.Hard + delta.Hard, Soft: s.Soft + delta.Soft}
}

// Returns the delta that transforms other into s
func (s Score) Sub(other Score) Delta {
	return Delta{Hard: s.Hard - other.Hard, Soft: s.Soft - other.Soft}
}

func (s Score) String() string {
	return fmt.Sprintf("%dhard/%dsoft", s.Hard, s.Soft)
}

// Delta is the signed change of a Score caused by a move
type Delta struct {
	Hard int
	Soft int
}

func (d Delta) Add(other Delta) Delta {
	return Delta{Hard: d.Hard + other.Hard, Soft: d.Soft + other.Soft}
}

func (d Delta) Compare(other Delta) int {
	if d.Hard != other.Hard {
		return d.Hard - other.Hard
	}
	return d.Soft - other.Soft
}

// Checks whether applying the delta leaves the score equal or better
func (d Delta) NotWorse() bool {
	return d.Compare(Delta{}) <= 0
}

func (d Delta) String() string {
	return fmt.Sprintf("%+dhard/%+dsoft", d.Hard, d.Soft)
}
