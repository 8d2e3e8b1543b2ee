package model

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Timetable is both the problem and the solution: the problem facts, the planning entities and the score of their current assignment
type Timetable struct {
	Timeslots []Timeslot
	Rooms     []Room
	Lessons   []Lesson
	Score     Score
}

// NewTimetable validates the problem facts and entities and builds a timetable out of them
func NewTimetable(timeslots []Timeslot, rooms []Room, lessons []Lesson) (*Timetable, error) {
	timetable := &Timetable{
		Timeslots: timeslots,
		Rooms:     rooms,
		Lessons:   lessons,
	}
	if err := timetable.Validate(); err != nil {
		return nil, err
	}
	return timetable, nil
}

// Validate checks that the timetable has timeslots and rooms, that lesson ids are unique and that every assignment references the timetable's own facts
func (t *Timetable) Validate() error {
	if len(t.Timeslots) == 0 {
		return ErrNoTimeslots
	} else if len(t.Rooms) == 0 {
		return ErrNoRooms
	}

	ids := make(map[string]bool, len(t.Lessons))
	for _, lesson := range t.Lessons {
		if ids[lesson.Id] {
			return DuplicateLessonError{Id: lesson.Id}
		}
		ids[lesson.Id] = true

		if err := t.CheckAssignment(lesson.Id, lesson.Assignment); err != nil {
			return err
		}
	}
	return nil
}

// CheckAssignment verifies that assignment only references timeslots and rooms of t (or is unassigned)
func (t *Timetable) CheckAssignment(lessonId string, assignment Assignment) error {
	if assignment.Timeslot != Unassigned && (assignment.Timeslot < 0 || assignment.Timeslot >= len(t.Timeslots)) {
		return InvalidReferenceError{Lesson: lessonId, Field: "timeslot", Index: assignment.Timeslot}
	} else if assignment.Room != Unassigned && (assignment.Room < 0 || assignment.Room >= len(t.Rooms)) {
		return InvalidReferenceError{Lesson: lessonId, Field: "room", Index: assignment.Room}
	}
	return nil
}

// Apply sets every reassignment's target on the corresponding lesson. It doesn't touch the score.
func (t *Timetable) Apply(reassignments []Reassignment) {
	for _, reassignment := range reassignments {
		t.Lessons[reassignment.Lesson].Assignment = reassignment.To
	}
}

// Clone returns a structural copy of t; the copy shares nothing mutable with t
func (t *Timetable) Clone() *Timetable {
	return &Timetable{
		Timeslots: slices.Clone(t.Timeslots),
		Rooms:     slices.Clone(t.Rooms),
		Lessons:   slices.Clone(t.Lessons),
		Score:     t.Score,
	}
}

// Unassigned returns the lessons with at least one unset assignment slot
func (t *Timetable) Unassigned() []Lesson {
	return lo.Filter(t.Lessons, func(lesson Lesson, _ int) bool {
		return !lesson.Complete()
	})
}

// TimeslotOf returns the timeslot assigned to the lesson, if any
func (t *Timetable) TimeslotOf(lesson Lesson) (Timeslot, bool) {
	if lesson.Timeslot == Unassigned {
		return Timeslot{}, false
	}
	return t.Timeslots[lesson.Timeslot], true
}

// RoomOf returns the room assigned to the lesson, if any
func (t *Timetable) RoomOf(lesson Lesson) (Room, bool) {
	if lesson.Room == Unassigned {
		return Room{}, false
	}
	return t.Rooms[lesson.Room], true
}

// Describes a lesson's assignment with the referenced timeslot and room
func (t *Timetable) Describe(lesson Lesson) string {
	timeslot, okTimeslot := t.TimeslotOf(lesson)
	room, okRoom := t.RoomOf(lesson)
	if !okTimeslot || !okRoom {
		return fmt.Sprintf("%v: unassigned", lesson)
	}
	return fmt.Sprintf("%v: %v in %v", lesson, timeslot, room)
}
