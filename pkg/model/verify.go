package model

// Verify checks, independently from any score bookkeeping, that every lesson is assigned and that no room, teacher or student group is booked twice in the same timeslot
func Verify(timetable *Timetable) bool {
	if timetable.Validate() != nil {
		return false
	}

	//** Initialize assistances
	roomAssistance := make(map[[2]int]bool)
	teacherAssistance := make(map[string][]bool)
	groupAssistance := make(map[string][]bool)

	for _, lesson := range timetable.Lessons {
		if !lesson.Complete() {
			return false
		}
		timeslot, room := lesson.Timeslot, lesson.Room

		if _, ok := teacherAssistance[lesson.Teacher]; !ok {
			teacherAssistance[lesson.Teacher] = make([]bool, len(timetable.Timeslots))
		}
		if _, ok := groupAssistance[lesson.StudentGroup]; !ok {
			groupAssistance[lesson.StudentGroup] = make([]bool, len(timetable.Timeslots))
		}

		// Check that:
		// - Room is not already occupied in the timeslot
		// - Teacher is not already teaching in the timeslot
		// - Student group is not already attending a lesson in the timeslot
		if roomAssistance[[2]int{timeslot, room}] ||
			teacherAssistance[lesson.Teacher][timeslot] ||
			groupAssistance[lesson.StudentGroup][timeslot] {
			return false
		}

		roomAssistance[[2]int{timeslot, room}] = true      // Store room assistance
		teacherAssistance[lesson.Teacher][timeslot] = true // Store teacher assistance
		groupAssistance[lesson.StudentGroup][timeslot] = true
	}
	return true
}
