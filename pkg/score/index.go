package score

import (
	"slices"

	"github.com/limaJavier/localsearch-timetabling/pkg/model"
	"github.com/samber/lo"
)

// Kinds of buckets kept by the index. Each bucket counts the lessons sharing a pair of attributes.
type cellKind int

const (
	roomSlot         cellKind = iota // (timeslot, room)
	teacherSlot                      // (timeslot, teacher)
	groupSlot                        // (timeslot, student group)
	subjectGroupSlot                 // (timeslot, student group + subject)
	teacherRoom                      // (teacher, room)
	cellKinds
)

// counter receives the bucket changes caused by placing or removing a lesson
type counter interface {
	add(kind cellKind, key, delta int)
	addUnassigned(delta int)
}

type lessonFacts struct {
	teacher      int
	group        int
	subjectGroup int
}

// index buckets lessons by timeslot and, within it, by room, teacher and student group
type index struct {
	facts       []lessonFacts
	assignments []model.Assignment
	teachers    int

	indexers      [cellKinds]indexer
	counts        [cellKinds][]int
	distinctRooms []int // Rooms used per teacher
	unassigned    int

	dayOf    []int   // Day (position in days) of each timeslot
	days     [][]int // Timeslots of each day ordered by start time
	previous []int   // Previous timeslot within the same day, or -1
	next     []int   // Next timeslot within the same day, or -1
}

func newIndex(timetable *model.Timetable) (*index, error) {
	for _, lesson := range timetable.Lessons {
		if err := timetable.CheckAssignment(lesson.Id, lesson.Assignment); err != nil {
			return nil, err
		}
	}

	teacherIds, teachers := intern(lo.Map(timetable.Lessons, func(lesson model.Lesson, _ int) string { return lesson.Teacher }))
	groupIds, groups := intern(lo.Map(timetable.Lessons, func(lesson model.Lesson, _ int) string { return lesson.StudentGroup }))
	subjectGroupIds, subjectGroups := intern(lo.Map(timetable.Lessons, func(lesson model.Lesson, _ int) string {
		return lesson.StudentGroup + "\x00" + lesson.Subject
	}))

	timeslots, rooms := len(timetable.Timeslots), len(timetable.Rooms)
	idx := &index{
		facts:         make([]lessonFacts, len(timetable.Lessons)),
		assignments:   make([]model.Assignment, len(timetable.Lessons)),
		teachers:      teachers,
		distinctRooms: make([]int, teachers),
	}
	idx.indexers[roomSlot] = newIndexer(timeslots, rooms)
	idx.indexers[teacherSlot] = newIndexer(timeslots, teachers)
	idx.indexers[groupSlot] = newIndexer(timeslots, groups)
	idx.indexers[subjectGroupSlot] = newIndexer(timeslots, subjectGroups)
	idx.indexers[teacherRoom] = newIndexer(teachers, rooms)
	for kind := range cellKinds {
		idx.counts[kind] = make([]int, idx.indexers[kind].Size())
	}
	idx.orderTimeslots(timetable.Timeslots)

	for i, lesson := range timetable.Lessons {
		idx.facts[i] = lessonFacts{teacher: teacherIds[i], group: groupIds[i], subjectGroup: subjectGroupIds[i]}
		idx.assignments[i] = lesson.Assignment
		idx.emit(i, lesson.Assignment, 1, idx)
	}
	return idx, nil
}

// Groups timeslots per day and links each one with its neighbors in start-time order
func (idx *index) orderTimeslots(timeslots []model.Timeslot) {
	order := lo.Range(len(timeslots))
	slices.SortStableFunc(order, func(a, b int) int { return timeslots[a].Compare(timeslots[b]) })

	idx.dayOf = make([]int, len(timeslots))
	idx.previous = make([]int, len(timeslots))
	idx.next = make([]int, len(timeslots))
	idx.days = make([][]int, 0)

	for position, timeslot := range order {
		idx.previous[timeslot], idx.next[timeslot] = -1, -1
		if position == 0 || timeslots[order[position-1]].DayOfWeek != timeslots[timeslot].DayOfWeek {
			idx.days = append(idx.days, make([]int, 0))
		} else {
			idx.previous[timeslot] = order[position-1]
			idx.next[order[position-1]] = timeslot
		}
		day := len(idx.days) - 1
		idx.days[day] = append(idx.days[day], timeslot)
		idx.dayOf[timeslot] = day
	}
}

// Emits to target the bucket changes of placing (sign = 1) or removing (sign = -1) the lesson at the given assignment
func (idx *index) emit(lesson int, assignment model.Assignment, sign int, target counter) {
	facts := idx.facts[lesson]
	if !assignment.Complete() {
		target.addUnassigned(sign)
	}
	if timeslot := assignment.Timeslot; timeslot != model.Unassigned {
		target.add(teacherSlot, idx.indexers[teacherSlot].Index(timeslot, facts.teacher), sign)
		target.add(groupSlot, idx.indexers[groupSlot].Index(timeslot, facts.group), sign)
		target.add(subjectGroupSlot, idx.indexers[subjectGroupSlot].Index(timeslot, facts.subjectGroup), sign)
		if assignment.Room != model.Unassigned {
			target.add(roomSlot, idx.indexers[roomSlot].Index(timeslot, assignment.Room), sign)
		}
	}
	if assignment.Room != model.Unassigned {
		target.add(teacherRoom, idx.indexers[teacherRoom].Index(facts.teacher, assignment.Room), sign)
	}
}

func (idx *index) add(kind cellKind, key, delta int) {
	before := idx.counts[kind][key]
	after := before + delta
	idx.counts[kind][key] = after

	if kind == teacherRoom {
		teacher, _ := idx.indexers[teacherRoom].Attributes(key)
		idx.distinctRooms[teacher] += used(after) - used(before)
	}
}

func (idx *index) addUnassigned(delta int) {
	idx.unassigned += delta
}

// Returns 1 if a bucket holding count lessons is in use, else 0
func used(count int) int {
	if count > 0 {
		return 1
	}
	return 0
}

// Gives each distinct value a dense id, in order of first appearance
func intern(values []string) (ids []int, count int) {
	dictionary := make(map[string]int)
	ids = make([]int, len(values))
	for i, value := range values {
		id, ok := dictionary[value]
		if !ok {
			id = len(dictionary)
			dictionary[value] = id
		}
		ids[i] = id
	}
	return ids, len(dictionary)
}
