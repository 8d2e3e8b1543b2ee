package solver

import (
	"math"
	"time"
)

// Steps after which an unbounded annealing schedule has spent half its temperature
const halfLifeSteps = 10_000

// termination stops the search as soon as any configured limit is reached
type termination struct {
	timeLimit           time.Duration
	stepLimit           *int64
	unimprovedStepLimit *int64
}

func newTermination(config Config) termination {
	return termination{
		timeLimit:           config.TimeLimit,
		stepLimit:           config.StepLimit,
		unimprovedStepLimit: config.UnimprovedStepLimit,
	}
}

// Returns whether the search must stop and the limit that was reached
func (t termination) ShouldStop(elapsed time.Duration, steps, stepsSinceImprovement int64) (bool, string) {
	if t.timeLimit > 0 && elapsed >= t.timeLimit {
		return true, "time limit"
	} else if t.stepLimit != nil && steps >= *t.stepLimit {
		return true, "step limit"
	} else if t.unimprovedStepLimit != nil && stepsSinceImprovement >= *t.unimprovedStepLimit {
		return true, "unimproved step limit"
	}
	return false, ""
}

// Progress estimates the fraction of the search already spent, in [0, 1].
// Without a time or step limit it decays with a fixed half-life instead.
func (t termination) Progress(elapsed time.Duration, steps int64) float64 {
	progress, bounded := 0.0, false
	if t.timeLimit > 0 {
		progress, bounded = max(progress, float64(elapsed)/float64(t.timeLimit)), true
	}
	if t.stepLimit != nil && *t.stepLimit > 0 {
		progress, bounded = max(progress, float64(steps)/float64(*t.stepLimit)), true
	}
	if !bounded {
		progress = 1 - math.Pow(0.5, float64(steps)/halfLifeSteps)
	}
	return min(progress, 1)
}
