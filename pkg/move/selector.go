package move

import (
	"fmt"
	"math/rand/v2"

	"github.com/limaJavier/localsearch-timetabling/pkg/model"
)

type Strategy string

const (
	Exhaustive Strategy = "exhaustive"
	Randomized Strategy = "randomized"
)

// Selector yields a lazy, restartable sequence of candidate moves. Selectors never mutate the timetable they read.
type Selector interface {
	// Returns the next candidate for the timetable's current assignment.
	// It returns false once the current pass has no moves left; Reset starts a new pass.
	Next(timetable *model.Timetable) (Move, bool)

	Reset()
}

// NewSelector builds the selector of the given strategy. random is only drawn from by the randomized strategy.
func NewSelector(strategy Strategy, timetable *model.Timetable, random *rand.Rand) (Selector, error) {
	switch strategy {
	case Exhaustive:
		return NewExhaustive(timetable), nil
	case Randomized:
		return NewRandomized(timetable, random), nil
	}
	return nil, fmt.Errorf("cannot build a move selector for unknown strategy \"%v\"", strategy)
}

// Size of the value range of a lesson: every (timeslot, room) pair
func targets(timetable *model.Timetable) int {
	return len(timetable.Timeslots) * len(timetable.Rooms)
}

// Decodes a value range position into a complete assignment
func target(timetable *model.Timetable, position int) model.Assignment {
	rooms := len(timetable.Rooms)
	return model.Assign(position/rooms, position%rooms)
}
