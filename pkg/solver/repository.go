package solver

import (
	"sync/atomic"

	"github.com/limaJavier/localsearch-timetabling/pkg/model"
)

// Repository holds the best snapshot found by a solve. Snapshots are replaced wholesale and never mutated,
// so it can be read while the solve is in progress.
type Repository struct {
	best atomic.Pointer[model.Timetable]
}

// Stores a structural copy of the working timetable as the new best snapshot
func (r *Repository) publish(working *model.Timetable) {
	r.best.Store(working.Clone())
}

// Best returns a copy of the best snapshot, or nil if nothing has been published yet
func (r *Repository) Best() *model.Timetable {
	if best := r.best.Load(); best != nil {
		return best.Clone()
	}
	return nil
}

func (r *Repository) BestScore() (model.Score, bool) {
	if best := r.best.Load(); best != nil {
		return best.Score, true
	}
	return model.Score{}, false
}

// Unassigned returns the lessons of the best snapshot with an unset slot
func (r *Repository) Unassigned() []model.Lesson {
	if best := r.best.Load(); best != nil {
		return best.Unassigned()
	}
	return nil
}
