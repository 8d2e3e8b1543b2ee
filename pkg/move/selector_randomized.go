package move

import (
	"math/rand/v2"

	"github.com/limaJavier/localsearch-timetabling/pkg/model"
)

// Draws that may hit a no-op before the selector reports that no move could be found
const maxAttempts = 128

// randomizedSelector samples uniformly among every change move and every unordered swap pair.
// Its passes never end by themselves: Next only fails when no effective move is drawn after maxAttempts draws.
type randomizedSelector struct {
	random *rand.Rand
}

func NewRandomized(_ *model.Timetable, random *rand.Rand) Selector {
	return &randomizedSelector{random: random}
}

func (s *randomizedSelector) Next(timetable *model.Timetable) (Move, bool) {
	lessons, targets := len(timetable.Lessons), targets(timetable)
	changes, swaps := lessons*targets, lessons*(lessons-1)/2
	if changes+swaps == 0 {
		return nil, false
	}

	for range maxAttempts {
		var move Move
		if s.random.IntN(changes+swaps) < changes {
			move = ChangeMove{Lesson: s.random.IntN(lessons), To: target(timetable, s.random.IntN(targets))}
		} else {
			// Drawing an ordered pair of distinct lessons is uniform over unordered pairs as well
			a, b := s.random.IntN(lessons), s.random.IntN(lessons-1)
			if b >= a {
				b++
			}
			move = SwapMove{A: a, B: b}
		}

		if !move.IsNoOp(timetable) {
			return move, true
		}
	}
	return nil, false
}

func (s *randomizedSelector) Reset() {}
