package solver

import (
	"github.com/limaJavier/localsearch-timetabling/pkg/model"
	"github.com/limaJavier/localsearch-timetabling/pkg/move"
	"github.com/limaJavier/localsearch-timetabling/pkg/score"
)

type evaluation struct {
	move          move.Move
	reassignments []model.Reassignment
	delta         model.Delta
	err           error
}

// evaluator scores candidate moves against the working timetable. Evaluation only reads the timetable and the calculator.
type evaluator struct {
	calculator *score.Calculator
	workers    int
}

// Evaluate returns the candidate with the best delta; ties go to the earliest candidate.
// The first evaluation error, in candidate order, is returned instead.
func (e evaluator) Evaluate(timetable *model.Timetable, candidates []move.Move) (evaluation, error) {
	evaluations := make([]evaluation, len(candidates))
	workers := min(e.workers, len(candidates))

	if workers <= 1 {
		for i, candidate := range candidates {
			evaluations[i] = e.evaluate(timetable, candidate)
		}
	} else {
		indexes := make(chan int, len(candidates))
		for i := range candidates {
			indexes <- i
		}
		close(indexes)

		// Evaluate candidates on different goroutines, each one writing only its own entries
		finished := make(chan struct{})
		for range workers {
			go func() {
				for i := range indexes {
					evaluations[i] = e.evaluate(timetable, candidates[i])
				}
				finished <- struct{}{}
			}()
		}
		for range workers {
			<-finished
		}
	}

	best := 0
	for i, evaluation := range evaluations {
		if evaluation.err != nil {
			return evaluation, evaluation.err
		} else if evaluation.delta.Compare(evaluations[best].delta) < 0 {
			best = i
		}
	}
	return evaluations[best], nil
}

func (e evaluator) evaluate(timetable *model.Timetable, candidate move.Move) evaluation {
	reassignments := candidate.Reassignments(timetable)
	delta, err := e.calculator.Delta(reassignments)
	return evaluation{move: candidate, reassignments: reassignments, delta: delta, err: err}
}
