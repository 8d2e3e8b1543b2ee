package model

import (
	"errors"
	"fmt"
)

var (
	ErrNoTimeslots = errors.New("timetable must contain at least one timeslot")
	ErrNoRooms     = errors.New("timetable must contain at least one room")
)

type DuplicateLessonError struct {
	Id string
}

func (err DuplicateLessonError) Error() string {
	return fmt.Sprintf("lesson id \"%v\" is not unique", err.Id)
}

// InvalidReferenceError reports an assignment slot pointing outside the timetable's own timeslots or rooms
type InvalidReferenceError struct {
	Lesson string
	Field  string
	Index  int
}

func (err InvalidReferenceError) Error() string {
	return fmt.Sprintf("lesson \"%v\" references %v %v which does not belong to the timetable", err.Lesson, err.Field, err.Index)
}
