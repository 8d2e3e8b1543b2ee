package move

import "github.com/limaJavier/localsearch-timetabling/pkg/model"

// exhaustiveSelector enumerates once per pass every change move (lesson by lesson, over timeslot then room)
// followed by every swap of two lessons (a < b). Moves that would not change the assignment are skipped.
type exhaustiveSelector struct {
	change int // Position among change moves
	a, b   int // Next swap pair
}

func NewExhaustive(_ *model.Timetable) Selector {
	selector := &exhaustiveSelector{}
	selector.Reset()
	return selector
}

func (s *exhaustiveSelector) Next(timetable *model.Timetable) (Move, bool) {
	lessons, targets := len(timetable.Lessons), targets(timetable)

	for s.change < lessons*targets {
		move := ChangeMove{Lesson: s.change / targets, To: target(timetable, s.change%targets)}
		s.change++
		if !move.IsNoOp(timetable) {
			return move, true
		}
	}

	for s.a < lessons {
		if s.b >= lessons {
			s.a++
			s.b = s.a + 1
			continue
		}
		move := SwapMove{A: s.a, B: s.b}
		s.b++
		if !move.IsNoOp(timetable) {
			return move, true
		}
	}
	return nil, false
}

func (s *exhaustiveSelector) Reset() {
	s.change = 0
	s.a, s.b = 0, 1
}
