package solver

import (
	"time"

	"github.com/limaJavier/localsearch-timetabling/pkg/model"
)

type Phase int

const (
	Initializing Phase = iota
	Improving
	Terminated
)

func (phase Phase) String() string {
	switch phase {
	case Initializing:
		return "initializing"
	case Improving:
		return "improving"
	}
	return "terminated"
}

// Event describes the state of a solve when a phase starts or a step ends
type Event struct {
	RunId     string
	Phase     Phase
	Step      int64
	Elapsed   time.Duration
	Score     model.Score // Score of the working timetable
	BestScore model.Score
	Accepted  bool
	Improved  bool
}

// Listener is notified synchronously from the solving goroutine; implementations must return quickly
type Listener interface {
	PhaseStarted(event Event)
	StepEnded(event Event)
}
