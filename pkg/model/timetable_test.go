package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimetable(t *testing.T) {
	timeslots := []Timeslot{NewTimeslot(time.Monday, At(8, 30), At(9, 30))}
	rooms := []Room{{Name: "Room A"}}

	t.Run("No timeslots", func(t *testing.T) {
		_, err := NewTimetable(nil, rooms, nil)
		assert.ErrorIs(t, err, ErrNoTimeslots)
	})

	t.Run("No rooms", func(t *testing.T) {
		_, err := NewTimetable(timeslots, nil, nil)
		assert.ErrorIs(t, err, ErrNoRooms)
	})

	t.Run("Duplicate lesson", func(t *testing.T) {
		_, err := NewTimetable(timeslots, rooms, []Lesson{
			NewLesson("1", "Math", "A. Turing", "9th grade"),
			NewLesson("1", "Physics", "M. Curie", "9th grade"),
		})

		var duplicateErr DuplicateLessonError
		require.True(t, errors.As(err, &duplicateErr))
		assert.Equal(t, "1", duplicateErr.Id)
	})

	t.Run("Foreign room", func(t *testing.T) {
		lesson := NewLesson("1", "Math", "A. Turing", "9th grade")
		lesson.Assignment = Assign(0, 1)

		_, err := NewTimetable(timeslots, rooms, []Lesson{lesson})

		var referenceErr InvalidReferenceError
		require.True(t, errors.As(err, &referenceErr))
		assert.Equal(t, InvalidReferenceError{Lesson: "1", Field: "room", Index: 1}, referenceErr)
	})

	t.Run("No lessons", func(t *testing.T) {
		timetable, err := NewTimetable(timeslots, rooms, nil)
		require.NoError(t, err)
		assert.Empty(t, timetable.Unassigned())
	})
}

func TestCloneIsIndependent(t *testing.T) {
	//** Arrange
	original := DemoData()

	//** Act
	clone := original.Clone()
	clone.Apply([]Reassignment{{Lesson: 0, From: UnassignedSlots, To: Assign(0, 0)}})
	clone.Rooms[0].Name = "Renamed"

	//** Assert
	assert.Equal(t, UnassignedSlots, original.Lessons[0].Assignment)
	assert.Equal(t, "Room A", original.Rooms[0].Name)
	assert.Equal(t, Assign(0, 0), clone.Lessons[0].Assignment)
	assert.Len(t, clone.Unassigned(), len(original.Lessons)-1)
}

func TestScoreCompare(t *testing.T) {
	assert.True(t, Score{Hard: 0, Soft: 10}.BetterThan(Score{Hard: 1, Soft: 0}))
	assert.True(t, Score{Hard: 1, Soft: 2}.BetterThan(Score{Hard: 1, Soft: 3}))
	assert.False(t, Score{Hard: 1, Soft: 3}.BetterThan(Score{Hard: 1, Soft: 3}))
	assert.Zero(t, Score{Hard: 1, Soft: 3}.Compare(Score{Hard: 1, Soft: 3}))

	assert.True(t, Score{}.Feasible())
	assert.False(t, Score{Hard: 1}.Feasible())

	assert.Equal(t, Delta{Hard: -1, Soft: 2}, Score{Hard: 1, Soft: 3}.Sub(Score{Hard: 2, Soft: 1}))
	assert.Equal(t, Score{Hard: 1, Soft: 3}, Score{Hard: 2, Soft: 1}.Add(Delta{Hard: -1, Soft: 2}))
	assert.True(t, Delta{Hard: -1, Soft: 5}.NotWorse())
	assert.True(t, Delta{}.NotWorse())
	assert.False(t, Delta{Hard: 0, Soft: 1}.NotWorse())

	assert.Equal(t, "0hard/-3soft", Score{Hard: 0, Soft: -3}.String())
	assert.Equal(t, "-1hard/+2soft", Delta{Hard: -1, Soft: 2}.String())
}

func TestVerify(t *testing.T) {
	build := func(assignments ...Assignment) *Timetable {
		timetable := DemoData()
		timetable.Lessons = timetable.Lessons[:len(assignments)]
		for i, assignment := range assignments {
			timetable.Lessons[i].Assignment = assignment
		}
		return timetable
	}

	// Lessons 0 and 1 are both Math by A. Turing for 9th grade
	tests := []struct {
		name      string
		timetable *Timetable
		expected  bool
	}{
		{"Valid", build(Assign(0, 0), Assign(1, 0), Assign(2, 1)), true},
		{"Unassigned", build(Assign(0, 0), Assign(1, Unassigned)), false},
		{"Room double booked", build(Assign(0, 0), Assign(1, 0), Assign(1, 0)), false},
		{"Teacher double booked", build(Assign(0, 0), Assign(0, 1)), false},
		{"Foreign timeslot", build(Assign(10, 0)), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Verify(test.timetable))
		})
	}
}

func TestDemoData(t *testing.T) {
	timetable := DemoData()

	require.NoError(t, timetable.Validate())
	assert.Len(t, timetable.Timeslots, 10)
	assert.Len(t, timetable.Rooms, 3)
	assert.Len(t, timetable.Lessons, 20)
	assert.Len(t, timetable.Unassigned(), 20)
	assert.Equal(t, "Mon 08:30", timetable.Timeslots[0].String())
	assert.Equal(t, "Math(0): unassigned", timetable.Describe(timetable.Lessons[0]))
}
