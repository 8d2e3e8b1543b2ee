package score

import "github.com/limaJavier/localsearch-timetabling/pkg/model"

type Level int

const (
	Hard Level = iota
	Soft
)

func (level Level) String() string {
	if level == Hard {
		return "hard"
	}
	return "soft"
}

// Constraint penalizes an assignment. full evaluates the whole index, delta evaluates only the buckets touched by an overlay.
type Constraint struct {
	Name  string
	Level Level
	full  func(idx *index) int
	delta func(idx *index, ov *overlay) int

	completeness bool // Only counts lessons left unassigned
}

// ConstraintScore is the penalty a single constraint contributes to a score
type ConstraintScore struct {
	Name    string
	Level   Level
	Penalty int
}

func DefaultConstraints() []Constraint {
	return []Constraint{
		RoomConflict(),
		TeacherConflict(),
		StudentGroupConflict(),
		UnassignedLesson(),
		TeacherRoomStability(),
		TeacherTimeGaps(),
		StudentGroupSubjectRepetition(),
	}
}

// Two lessons in the same room and timeslot
func RoomConflict() Constraint {
	return pairConflict("Room conflict", roomSlot)
}

// Two lessons of the same teacher in the same timeslot
func TeacherConflict() Constraint {
	return pairConflict("Teacher conflict", teacherSlot)
}

// Two lessons of the same student group in the same timeslot
func StudentGroupConflict() Constraint {
	return pairConflict("Student group conflict", groupSlot)
}

// A lesson without timeslot or room
func UnassignedLesson() Constraint {
	return Constraint{
		Name:         "Unassigned lesson",
		Level:        Hard,
		completeness: true,
		full: func(idx *index) int {
			return idx.unassigned
		},
		delta: func(_ *index, ov *overlay) int {
			return ov.unassigned
		},
	}
}

// Penalizes once per unordered pair of lessons sharing a bucket
func pairConflict(name string, kind cellKind) Constraint {
	return Constraint{
		Name:  name,
		Level: Hard,
		full: func(idx *index) int {
			penalty := 0
			for _, count := range idx.counts[kind] {
				penalty += pairs(count)
			}
			return penalty
		},
		delta: func(idx *index, ov *overlay) int {
			delta := 0
			for _, change := range ov.changes[kind] {
				count := idx.counts[kind][change.key]
				delta += pairs(count+change.delta) - pairs(count)
			}
			return delta
		},
	}
}

func pairs(count int) int {
	return count * (count - 1) / 2
}

func apply(score model.Score, level Level, penalty int) model.Score {
	if level == Hard {
		score.Hard += penalty
	} else {
		score.Soft += penalty
	}
	return score
}

func applyDelta(delta model.Delta, level Level, penalty int) model.Delta {
	if level == Hard {
		delta.Hard += penalty
	} else {
		delta.Soft += penalty
	}
	return delta
}
