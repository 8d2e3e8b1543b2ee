package score

import "slices"

// A teacher teaching in more than one room: each room beyond the first costs one
func TeacherRoomStability() Constraint {
	return Constraint{
		Name:  "Teacher room stability",
		Level: Soft,
		full: func(idx *index) int {
			penalty := 0
			for _, rooms := range idx.distinctRooms {
				penalty += stability(rooms)
			}
			return penalty
		},
		delta: func(idx *index, ov *overlay) int {
			// Change of distinct rooms per affected teacher
			affected := make([]change, 0, 2)
			for _, roomChange := range ov.changes[teacherRoom] {
				teacher, _ := idx.indexers[teacherRoom].Attributes(roomChange.key)
				count := idx.counts[teacherRoom][roomChange.key]
				diff := used(count+roomChange.delta) - used(count)
				affected = accumulate(affected, teacher, diff)
			}

			delta := 0
			for _, teacherChange := range affected {
				rooms := idx.distinctRooms[teacherChange.key]
				delta += stability(rooms+teacherChange.delta) - stability(rooms)
			}
			return delta
		},
	}
}

func stability(rooms int) int {
	return max(0, rooms-1)
}

// Idle timeslots between a teacher's first and last lesson of a day
func TeacherTimeGaps() Constraint {
	return Constraint{
		Name:  "Teacher time gaps",
		Level: Soft,
		full: func(idx *index) int {
			penalty := 0
			for teacher := range idx.teachers {
				occupied := func(timeslot int) bool {
					return idx.counts[teacherSlot][idx.indexers[teacherSlot].Index(timeslot, teacher)] > 0
				}
				for day := range idx.days {
					penalty += gaps(idx.days[day], occupied)
				}
			}
			return penalty
		},
		delta: func(idx *index, ov *overlay) int {
			visited := make([][2]int, 0, 4)
			delta := 0
			for _, slotChange := range ov.changes[teacherSlot] {
				timeslot, teacher := idx.indexers[teacherSlot].Attributes(slotChange.key)
				teacherDay := [2]int{teacher, idx.dayOf[timeslot]}
				if slices.Contains(visited, teacherDay) {
					continue
				}
				visited = append(visited, teacherDay)

				before := func(timeslot int) bool {
					return idx.counts[teacherSlot][idx.indexers[teacherSlot].Index(timeslot, teacher)] > 0
				}
				after := func(timeslot int) bool {
					return ov.count(idx, teacherSlot, idx.indexers[teacherSlot].Index(timeslot, teacher)) > 0
				}
				day := idx.days[teacherDay[1]]
				delta += gaps(day, after) - gaps(day, before)
			}
			return delta
		},
	}
}

// Counts the unoccupied timeslots between the first and the last occupied one of an ordered day
func gaps(day []int, occupied func(timeslot int) bool) int {
	first, last, count := -1, -1, 0
	for position, timeslot := range day {
		if !occupied(timeslot) {
			continue
		}
		if first == -1 {
			first = position
		}
		last = position
		count++
	}
	if first == -1 {
		return 0
	}
	return last - first + 1 - count
}

// The same student group having the same subject in two consecutive timeslots of a day
func StudentGroupSubjectRepetition() Constraint {
	return Constraint{
		Name:  "Student group subject repetition",
		Level: Soft,
		full: func(idx *index) int {
			penalty := 0
			for timeslot, next := range idx.next {
				if next == -1 {
					continue
				}
				for subjectGroup := range idx.indexers[subjectGroupSlot].columns {
					penalty += idx.counts[subjectGroupSlot][idx.indexers[subjectGroupSlot].Index(timeslot, subjectGroup)] *
						idx.counts[subjectGroupSlot][idx.indexers[subjectGroupSlot].Index(next, subjectGroup)]
				}
			}
			return penalty
		},
		delta: func(idx *index, ov *overlay) int {
			// An edge is identified by its earlier timeslot and the subject-group
			visited := make([][2]int, 0, 4)
			delta := 0
			visit := func(timeslot, subjectGroup int) {
				edge := [2]int{timeslot, subjectGroup}
				if slices.Contains(visited, edge) {
					return
				}
				visited = append(visited, edge)

				first := idx.indexers[subjectGroupSlot].Index(timeslot, subjectGroup)
				second := idx.indexers[subjectGroupSlot].Index(idx.next[timeslot], subjectGroup)
				before := idx.counts[subjectGroupSlot][first] * idx.counts[subjectGroupSlot][second]
				after := ov.count(idx, subjectGroupSlot, first) * ov.count(idx, subjectGroupSlot, second)
				delta += after - before
			}

			for _, slotChange := range ov.changes[subjectGroupSlot] {
				timeslot, subjectGroup := idx.indexers[subjectGroupSlot].Attributes(slotChange.key)
				if previous := idx.previous[timeslot]; previous != -1 {
					visit(previous, subjectGroup)
				}
				if idx.next[timeslot] != -1 {
					visit(timeslot, subjectGroup)
				}
			}
			return delta
		},
	}
}

func accumulate(changes []change, key, delta int) []change {
	for i := range changes {
		if changes[i].key == key {
			changes[i].delta += delta
			return changes
		}
	}
	return append(changes, change{key: key, delta: delta})
}
