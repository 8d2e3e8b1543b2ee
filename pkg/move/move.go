package move

import (
	"fmt"

	"github.com/limaJavier/localsearch-timetabling/pkg/model"
)

// Move is a candidate mutation of a timetable's assignment. Building or describing a move never mutates the timetable.
type Move interface {
	// Describes the move as reassignments against the timetable's current assignment
	Reassignments(timetable *model.Timetable) []model.Reassignment

	// Returns the move that restores the assignment the timetable holds right now.
	// It must be computed before the move is applied.
	Undo(timetable *model.Timetable) Move

	// Checks whether doing the move would leave the assignment untouched
	IsNoOp(timetable *model.Timetable) bool

	String() string
}

// ChangeMove reassigns the timeslot and room of a single lesson. Either slot may be model.Unassigned.
type ChangeMove struct {
	Lesson int
	To     model.Assignment
}

func (m ChangeMove) Reassignments(timetable *model.Timetable) []model.Reassignment {
	return []model.Reassignment{{
		Lesson: m.Lesson,
		From:   timetable.Lessons[m.Lesson].Assignment,
		To:     m.To,
	}}
}

func (m ChangeMove) Undo(timetable *model.Timetable) Move {
	return ChangeMove{Lesson: m.Lesson, To: timetable.Lessons[m.Lesson].Assignment}
}

func (m ChangeMove) IsNoOp(timetable *model.Timetable) bool {
	return timetable.Lessons[m.Lesson].Assignment == m.To
}

func (m ChangeMove) String() string {
	return fmt.Sprintf("lesson %v -> %v", m.Lesson, m.To)
}

// SwapMove exchanges the assignments of two distinct lessons, whether they are set or not
type SwapMove struct {
	A int
	B int
}

func (m SwapMove) Reassignments(timetable *model.Timetable) []model.Reassignment {
	a, b := timetable.Lessons[m.A].Assignment, timetable.Lessons[m.B].Assignment
	return []model.Reassignment{
		{Lesson: m.A, From: a, To: b},
		{Lesson: m.B, From: b, To: a},
	}
}

// A swap is its own inverse
func (m SwapMove) Undo(_ *model.Timetable) Move {
	return m
}

func (m SwapMove) IsNoOp(timetable *model.Timetable) bool {
	return m.A == m.B || timetable.Lessons[m.A].Assignment == timetable.Lessons[m.B].Assignment
}

func (m SwapMove) String() string {
	return fmt.Sprintf("lesson %v <-> lesson %v", m.A, m.B)
}
