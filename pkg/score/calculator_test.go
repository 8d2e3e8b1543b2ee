package score

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/limaJavier/localsearch-timetabling/pkg/model"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	monday0830 = model.NewTimeslot(time.Monday, model.At(8, 30), model.At(9, 30))
	monday0930 = model.NewTimeslot(time.Monday, model.At(9, 30), model.At(10, 30))
	monday1030 = model.NewTimeslot(time.Monday, model.At(10, 30), model.At(11, 30))
	tuesday    = model.NewTimeslot(time.Tuesday, model.At(8, 30), model.At(9, 30))
)

func buildTimetable(t *testing.T, lessons ...model.Lesson) *model.Timetable {
	// Timeslots are intentionally not sorted to exercise the day ordering
	timetable, err := model.NewTimetable(
		[]model.Timeslot{monday0930, monday0830, tuesday, monday1030},
		[]model.Room{{Name: "Room A"}, {Name: "Room B"}},
		lessons,
	)
	require.NoError(t, err)
	return timetable
}

func assigned(lesson model.Lesson, timeslot, room int) model.Lesson {
	lesson.Assignment = model.Assign(timeslot, room)
	return lesson
}

func penalty(t *testing.T, timetable *model.Timetable, name string) int {
	scores, err := Explain(timetable)
	require.NoError(t, err)
	constraintScore, ok := lo.Find(scores, func(score ConstraintScore) bool { return score.Name == name })
	require.True(t, ok, "constraint %v not found", name)
	return constraintScore.Penalty
}

func TestRoomConflict(t *testing.T) {
	//** Arrange
	timetable := buildTimetable(t,
		assigned(model.NewLesson("1", "Subject1", "Teacher1", "Group1"), 1, 0),
		assigned(model.NewLesson("2", "Subject2", "Teacher2", "Group2"), 1, 0),
		assigned(model.NewLesson("3", "Subject3", "Teacher3", "Group3"), 2, 0),
	)

	//** Act
	score, err := FullScore(timetable)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, 1, penalty(t, timetable, "Room conflict"))
	assert.Equal(t, 0, penalty(t, timetable, "Teacher conflict"))
	assert.Equal(t, 0, penalty(t, timetable, "Student group conflict"))
	assert.Equal(t, 1, score.Hard)
}

func TestTeacherConflict(t *testing.T) {
	timetable := buildTimetable(t,
		assigned(model.NewLesson("1", "Physics", "M. Curie", "9th grade"), 1, 0),
		assigned(model.NewLesson("2", "Chemistry", "M. Curie", "10th grade"), 1, 1),
	)

	assert.Equal(t, 1, penalty(t, timetable, "Teacher conflict"))
	assert.Equal(t, 0, penalty(t, timetable, "Room conflict"))
	assert.Equal(t, 0, penalty(t, timetable, "Student group conflict"))
}

func TestStudentGroupConflict(t *testing.T) {
	// Three lessons in the same bucket make three conflicting pairs
	timetable := buildTimetable(t,
		assigned(model.NewLesson("1", "Math", "A. Turing", "9th grade"), 0, 0),
		assigned(model.NewLesson("2", "Biology", "C. Darwin", "9th grade"), 0, 1),
		assigned(model.NewLesson("3", "History", "I. Jones", "9th grade"), 0, model.Unassigned),
	)

	assert.Equal(t, 3, penalty(t, timetable, "Student group conflict"))
	assert.Equal(t, 1, penalty(t, timetable, "Unassigned lesson"))
	assert.Equal(t, 0, penalty(t, timetable, "Room conflict"))
}

func TestUnassignedLesson(t *testing.T) {
	timetable := buildTimetable(t,
		model.NewLesson("1", "Math", "A. Turing", "9th grade"),
		assigned(model.NewLesson("2", "Math", "A. Turing", "9th grade"), model.Unassigned, 0),
		assigned(model.NewLesson("3", "Math", "A. Turing", "9th grade"), 0, 0),
	)

	score, err := FullScore(timetable)

	require.NoError(t, err)
	assert.Equal(t, 2, penalty(t, timetable, "Unassigned lesson"))
	assert.Equal(t, model.Score{Hard: 2, Soft: 0}, score)
}

func TestTeacherRoomStability(t *testing.T) {
	timetable := buildTimetable(t,
		assigned(model.NewLesson("1", "Math", "A. Turing", "9th grade"), 0, 0),
		assigned(model.NewLesson("2", "Math", "A. Turing", "10th grade"), 1, 1),
		assigned(model.NewLesson("3", "Math", "A. Turing", "9th grade"), 2, 0),
		assigned(model.NewLesson("4", "Physics", "M. Curie", "9th grade"), 3, 1),
	)

	assert.Equal(t, 1, penalty(t, timetable, "Teacher room stability"))
}

func TestTeacherTimeGaps(t *testing.T) {
	// Monday 08:30 and Monday 10:30 leave Monday 09:30 idle; Tuesday is a different day
	timetable := buildTimetable(t,
		assigned(model.NewLesson("1", "Math", "A. Turing", "9th grade"), 1, 0),
		assigned(model.NewLesson("2", "Math", "A. Turing", "10th grade"), 3, 0),
		assigned(model.NewLesson("3", "Math", "A. Turing", "9th grade"), 2, 0),
		assigned(model.NewLesson("4", "Physics", "M. Curie", "9th grade"), 0, 1),
	)

	assert.Equal(t, 1, penalty(t, timetable, "Teacher time gaps"))
}

func TestStudentGroupSubjectRepetition(t *testing.T) {
	// Monday 08:30, 09:30 and 10:30 make two consecutive pairs, Tuesday belongs to another day
	timetable := buildTimetable(t,
		assigned(model.NewLesson("1", "Math", "A. Turing", "9th grade"), 1, 0),
		assigned(model.NewLesson("2", "Math", "I. Jones", "9th grade"), 0, 0),
		assigned(model.NewLesson("3", "Math", "A. Turing", "9th grade"), 3, 0),
		assigned(model.NewLesson("4", "Math", "A. Turing", "9th grade"), 2, 0),
		assigned(model.NewLesson("5", "Math", "A. Turing", "10th grade"), 1, 1),
	)

	assert.Equal(t, 2, penalty(t, timetable, "Student group subject repetition"))
}

func TestInvalidReference(t *testing.T) {
	timetable := buildTimetable(t, model.NewLesson("1", "Math", "A. Turing", "9th grade"))

	t.Run("Timetable", func(t *testing.T) {
		broken := timetable.Clone()
		broken.Lessons[0].Assignment = model.Assign(7, 0)

		_, err := NewCalculator(broken)

		var referenceErr model.InvalidReferenceError
		require.True(t, errors.As(err, &referenceErr))
		assert.Equal(t, "timeslot", referenceErr.Field)
	})

	t.Run("Reassignment", func(t *testing.T) {
		calculator, err := NewCalculator(timetable)
		require.NoError(t, err)

		_, err = calculator.Delta([]model.Reassignment{{Lesson: 0, From: model.UnassignedSlots, To: model.Assign(0, 5)}})

		var referenceErr model.InvalidReferenceError
		require.True(t, errors.As(err, &referenceErr))
		assert.Equal(t, "room", referenceErr.Field)
	})

	t.Run("Stale reassignment", func(t *testing.T) {
		calculator, err := NewCalculator(timetable)
		require.NoError(t, err)

		_, err = calculator.Delta([]model.Reassignment{{Lesson: 0, From: model.Assign(0, 0), To: model.Assign(1, 1)}})

		assert.Error(t, err)
	})
}

func TestDeltaMatchesFullScore(t *testing.T) {
	//** Arrange
	timetable := model.DemoData()
	random := rand.New(rand.NewPCG(7, 11))
	randomAssignment := func() model.Assignment {
		return model.Assign(random.IntN(len(timetable.Timeslots)+1)-1, random.IntN(len(timetable.Rooms)+1)-1)
	}
	for i := range timetable.Lessons {
		timetable.Lessons[i].Assignment = randomAssignment()
	}
	calculator, err := NewCalculator(timetable)
	require.NoError(t, err)
	current := calculator.Score()

	for range 2000 {
		//** Act
		reassignments := make([]model.Reassignment, 0, 2)
		first := random.IntN(len(timetable.Lessons))
		if random.IntN(2) == 0 {
			reassignments = append(reassignments, model.Reassignment{Lesson: first, From: timetable.Lessons[first].Assignment, To: randomAssignment()})
		} else {
			// Swap
			second := (first + 1 + random.IntN(len(timetable.Lessons)-1)) % len(timetable.Lessons)
			a, b := timetable.Lessons[first].Assignment, timetable.Lessons[second].Assignment
			reassignments = append(reassignments,
				model.Reassignment{Lesson: first, From: a, To: b},
				model.Reassignment{Lesson: second, From: b, To: a},
			)
		}
		delta, err := calculator.Delta(reassignments)
		require.NoError(t, err)

		timetable.Apply(reassignments)
		calculator.Commit(reassignments)
		current = current.Add(delta)

		//** Assert
		expected, err := FullScore(timetable)
		require.NoError(t, err)
		require.Equal(t, expected, current, "after %v", reassignments)
		require.Equal(t, expected, calculator.Score())
	}
}

func TestSwapDeltaEqualsSequentialChanges(t *testing.T) {
	timetable := buildTimetable(t,
		assigned(model.NewLesson("1", "Math", "A. Turing", "9th grade"), 0, 0),
		assigned(model.NewLesson("2", "Math", "A. Turing", "9th grade"), 1, 0),
		assigned(model.NewLesson("3", "Physics", "A. Turing", "10th grade"), 1, 1),
		model.NewLesson("4", "Physics", "M. Curie", "10th grade"),
	)

	for _, pair := range [][2]int{{0, 1}, {0, 2}, {1, 2}, {2, 3}, {0, 3}} {
		calculator, err := NewCalculator(timetable.Clone())
		require.NoError(t, err)
		a, b := timetable.Lessons[pair[0]].Assignment, timetable.Lessons[pair[1]].Assignment

		swap, err := calculator.Delta([]model.Reassignment{
			{Lesson: pair[0], From: a, To: b},
			{Lesson: pair[1], From: b, To: a},
		})
		require.NoError(t, err)

		first := []model.Reassignment{{Lesson: pair[0], From: a, To: b}}
		firstDelta, err := calculator.Delta(first)
		require.NoError(t, err)
		calculator.Commit(first)
		secondDelta, err := calculator.Delta([]model.Reassignment{{Lesson: pair[1], From: b, To: a}})
		require.NoError(t, err)

		assert.Equal(t, firstDelta.Add(secondDelta), swap, "swap %v", pair)
	}
}

func TestCustomConstraintSet(t *testing.T) {
	timetable := buildTimetable(t,
		assigned(model.NewLesson("1", "Math", "A. Turing", "9th grade"), 0, 0),
		assigned(model.NewLesson("2", "Math", "A. Turing", "9th grade"), 0, 0),
	)

	score, err := FullScore(timetable, RoomConflict())

	require.NoError(t, err)
	assert.Equal(t, model.Score{Hard: 1}, score)
}

func TestConflictDelta(t *testing.T) {
	timetable := buildTimetable(t,
		assigned(model.NewLesson("1", "Math", "A. Turing", "9th grade"), 0, 0),
		model.NewLesson("2", "Physics", "M. Curie", "9th grade"),
	)
	calculator, err := NewCalculator(timetable)
	require.NoError(t, err)

	clean := []model.Reassignment{{Lesson: 1, From: model.UnassignedSlots, To: model.Assign(1, 0)}}
	conflict, err := calculator.ConflictDelta(clean)
	require.NoError(t, err)
	delta, err := calculator.Delta(clean)
	require.NoError(t, err)
	assert.Equal(t, 0, conflict)
	assert.Equal(t, -1, delta.Hard)

	// Same timeslot and room as lesson 1, which also shares its student group
	clash := []model.Reassignment{{Lesson: 1, From: model.UnassignedSlots, To: model.Assign(0, 0)}}
	conflict, err = calculator.ConflictDelta(clash)
	require.NoError(t, err)
	assert.Equal(t, 2, conflict)
}
