package score

import (
	"fmt"

	"github.com/limaJavier/localsearch-timetabling/pkg/model"
	"github.com/samber/lo"
)

// Move is anything that can describe itself as a set of lesson reassignments against a timetable
type Move interface {
	Reassignments(timetable *model.Timetable) []model.Reassignment
}

// Calculator keeps an index of a timetable's assignment and scores moves against it incrementally.
// Delta and MoveDelta only read the index and may be called concurrently; Commit must not run concurrently with them.
type Calculator struct {
	timetable   *model.Timetable
	constraints []Constraint
	index       *index
}

// NewCalculator indexes the timetable's current assignment. DefaultConstraints are used when none are given.
func NewCalculator(timetable *model.Timetable, constraints ...Constraint) (*Calculator, error) {
	if len(constraints) == 0 {
		constraints = DefaultConstraints()
	}
	idx, err := newIndex(timetable)
	if err != nil {
		return nil, err
	}
	return &Calculator{
		timetable:   timetable,
		constraints: constraints,
		index:       idx,
	}, nil
}

// FullScore evaluates every constraint over the complete assignment of the timetable, from scratch
func FullScore(timetable *model.Timetable, constraints ...Constraint) (model.Score, error) {
	calculator, err := NewCalculator(timetable, constraints...)
	if err != nil {
		return model.Score{}, err
	}
	return calculator.Score(), nil
}

// Explain evaluates every constraint over the complete assignment of the timetable and reports each penalty separately
func Explain(timetable *model.Timetable, constraints ...Constraint) ([]ConstraintScore, error) {
	calculator, err := NewCalculator(timetable, constraints...)
	if err != nil {
		return nil, err
	}
	return calculator.Explain(), nil
}

// Score evaluates every constraint over the indexed assignment
func (c *Calculator) Score() model.Score {
	return lo.Reduce(c.Explain(), func(score model.Score, constraintScore ConstraintScore, _ int) model.Score {
		return apply(score, constraintScore.Level, constraintScore.Penalty)
	}, model.Score{})
}

func (c *Calculator) Explain() []ConstraintScore {
	return lo.Map(c.constraints, func(constraint Constraint, _ int) ConstraintScore {
		return ConstraintScore{
			Name:    constraint.Name,
			Level:   constraint.Level,
			Penalty: constraint.full(c.index),
		}
	})
}

// MoveDelta returns the score change that applying the move would cause, without applying it
func (c *Calculator) MoveDelta(move Move) (model.Delta, error) {
	return c.Delta(move.Reassignments(c.timetable))
}

// Delta returns the score change that the reassignments would cause. Only the buckets touched by the reassigned lessons are visited.
func (c *Calculator) Delta(reassignments []model.Reassignment) (model.Delta, error) {
	return c.delta(reassignments, func(Constraint) bool { return true })
}

// ConflictDelta returns the hard penalty change that the reassignments would cause, leaving out the penalty of lessons being unassigned
func (c *Calculator) ConflictDelta(reassignments []model.Reassignment) (int, error) {
	delta, err := c.delta(reassignments, func(constraint Constraint) bool {
		return constraint.Level == Hard && !constraint.completeness
	})
	return delta.Hard, err
}

func (c *Calculator) delta(reassignments []model.Reassignment, include func(Constraint) bool) (model.Delta, error) {
	ov := &overlay{}
	seen := make([]int, 0, len(reassignments))
	for _, reassignment := range reassignments {
		if err := c.check(reassignment, seen); err != nil {
			return model.Delta{}, err
		}
		seen = append(seen, reassignment.Lesson)

		c.index.emit(reassignment.Lesson, reassignment.From, -1, ov)
		c.index.emit(reassignment.Lesson, reassignment.To, 1, ov)
	}

	delta := model.Delta{}
	for _, constraint := range c.constraints {
		if include(constraint) {
			delta = applyDelta(delta, constraint.Level, constraint.delta(c.index, ov))
		}
	}
	return delta, nil
}

// Commit updates the index with reassignments previously evaluated by Delta. The caller applies them to the timetable.
func (c *Calculator) Commit(reassignments []model.Reassignment) {
	for _, reassignment := range reassignments {
		c.index.emit(reassignment.Lesson, reassignment.From, -1, c.index)
		c.index.emit(reassignment.Lesson, reassignment.To, 1, c.index)
		c.index.assignments[reassignment.Lesson] = reassignment.To
	}
}

func (c *Calculator) check(reassignment model.Reassignment, seen []int) error {
	if reassignment.Lesson < 0 || reassignment.Lesson >= len(c.index.assignments) {
		return fmt.Errorf("cannot reassign lesson %v: index out of range", reassignment.Lesson)
	}
	lessonId := c.timetable.Lessons[reassignment.Lesson].Id
	if lo.Contains(seen, reassignment.Lesson) {
		return fmt.Errorf("cannot reassign lesson \"%v\" more than once in the same move", lessonId)
	} else if reassignment.From != c.index.assignments[reassignment.Lesson] {
		return fmt.Errorf("cannot reassign lesson \"%v\" from %v: its current assignment is %v", lessonId, reassignment.From, c.index.assignments[reassignment.Lesson])
	}
	return c.timetable.CheckAssignment(lessonId, reassignment.To)
}
