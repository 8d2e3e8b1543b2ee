package solver

import (
	"github.com/limaJavier/localsearch-timetabling/pkg/model"
	"github.com/limaJavier/localsearch-timetabling/pkg/score"
)

// construct places every incomplete lesson, in input order, on the first (timeslot, room) pair that adds no hard
// conflict with the lessons placed so far. Lessons without such a pair are left as they are.
// Complete lessons are kept, so a partially solved timetable can be warm started.
func construct(timetable *model.Timetable, calculator *score.Calculator) (placed int, err error) {
	rooms := len(timetable.Rooms)
	for lesson := range timetable.Lessons {
		current := timetable.Lessons[lesson].Assignment
		if current.Complete() {
			continue
		}

		for position := range len(timetable.Timeslots) * rooms {
			reassignments := []model.Reassignment{{
				Lesson: lesson,
				From:   current,
				To:     model.Assign(position/rooms, position%rooms),
			}}
			conflicts, err := calculator.ConflictDelta(reassignments)
			if err != nil {
				return placed, err
			}

			if conflicts <= 0 {
				calculator.Commit(reassignments)
				timetable.Apply(reassignments)
				placed++
				break
			}
		}
	}
	return placed, nil
}
