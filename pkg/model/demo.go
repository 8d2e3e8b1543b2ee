package model

import (
	"fmt"
	"time"
)

// DemoData builds the classic school timetabling dataset: ten timeslots over Monday and Tuesday, three rooms and twenty lessons for two student groups
func DemoData() *Timetable {
	timeslots := make([]Timeslot, 0, 10)
	for _, day := range []time.Weekday{time.Monday, time.Tuesday} {
		timeslots = append(timeslots,
			NewTimeslot(day, At(8, 30), At(9, 30)),
			NewTimeslot(day, At(9, 30), At(10, 30)),
			NewTimeslot(day, At(10, 30), At(11, 30)),
			NewTimeslot(day, At(13, 30), At(14, 30)),
			NewTimeslot(day, At(14, 30), At(15, 30)),
		)
	}

	rooms := []Room{{Name: "Room A"}, {Name: "Room B"}, {Name: "Room C"}}

	facts := [][3]string{
		{"Math", "A. Turing", "9th grade"},
		{"Math", "A. Turing", "9th grade"},
		{"Physics", "M. Curie", "9th grade"},
		{"Chemistry", "M. Curie", "9th grade"},
		{"Biology", "C. Darwin", "9th grade"},
		{"History", "I. Jones", "9th grade"},
		{"English", "I. Jones", "9th grade"},
		{"English", "I. Jones", "9th grade"},
		{"Spanish", "P. Cruz", "9th grade"},
		{"Spanish", "P. Cruz", "9th grade"},

		{"Math", "A. Turing", "10th grade"},
		{"Math", "A. Turing", "10th grade"},
		{"Math", "A. Turing", "10th grade"},
		{"Physics", "M. Curie", "10th grade"},
		{"Chemistry", "M. Curie", "10th grade"},
		{"French", "M. Curie", "10th grade"},
		{"Geography", "C. Darwin", "10th grade"},
		{"History", "I. Jones", "10th grade"},
		{"English", "P. Cruz", "10th grade"},
		{"Spanish", "P. Cruz", "10th grade"},
	}

	lessons := make([]Lesson, 0, len(facts))
	for i, fact := range facts {
		lessons = append(lessons, NewLesson(fmt.Sprint(i), fact[0], fact[1], fact[2]))
	}

	return &Timetable{Timeslots: timeslots, Rooms: rooms, Lessons: lessons}
}
