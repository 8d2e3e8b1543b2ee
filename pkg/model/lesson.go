package model

import "fmt"

// Unassigned marks an assignment slot that does not reference any timeslot or room
const Unassigned = -1

// Assignment holds the two planning slots of a lesson: indexes into the timetable's timeslots and rooms, or Unassigned
type Assignment struct {
	Timeslot int
	Room     int
}

// UnassignedSlots is the assignment every lesson starts with
var UnassignedSlots = Assignment{Timeslot: Unassigned, Room: Unassigned}

func Assign(timeslot, room int) Assignment {
	return Assignment{Timeslot: timeslot, Room: room}
}

// Checks whether both slots reference a timeslot and a room
func (a Assignment) Complete() bool {
	return a.Timeslot != Unassigned && a.Room != Unassigned
}

func (a Assignment) String() string {
	slot := func(value int) string {
		if value == Unassigned {
			return "-"
		}
		return fmt.Sprint(value)
	}
	return fmt.Sprintf("(%v, %v)", slot(a.Timeslot), slot(a.Room))
}

// Lesson is the planning entity. Id, Subject, Teacher and StudentGroup are immutable facts.
// The embedded Assignment is mutated by the solver only.
type Lesson struct {
	Id           string
	Subject      string
	Teacher      string
	StudentGroup string
	Assignment
}

// NewLesson builds a lesson with both assignment slots explicitly unset
func NewLesson(id, subject, teacher, studentGroup string) Lesson {
	return Lesson{
		Id:           id,
		Subject:      subject,
		Teacher:      teacher,
		StudentGroup: studentGroup,
		Assignment:   UnassignedSlots,
	}
}

func (l Lesson) String() string {
	return fmt.Sprintf("%v(%v)", l.Subject, l.Id)
}

// Reassignment describes the change of a single lesson's assignment. Lesson is an index into Timetable.Lessons.
type Reassignment struct {
	Lesson int
	From   Assignment
	To     Assignment
}
