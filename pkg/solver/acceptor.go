package solver

import (
	"math"
	"math/rand/v2"

	"github.com/limaJavier/localsearch-timetabling/pkg/model"
)

// acceptor decides whether a move with the given delta is applied. progress is the fraction of the search already spent.
type acceptor interface {
	Accept(delta model.Delta, progress float64) bool
}

func newAcceptor(config Config, random *rand.Rand) acceptor {
	if config.Acceptance == HillClimbing {
		return hillClimbingAcceptor{}
	}
	return &simulatedAnnealingAcceptor{
		startingTemperature: config.StartingTemperature,
		hardWeight:          config.HardWeight,
		random:              random,
	}
}

// Accepts moves that do not worsen the score
type hillClimbingAcceptor struct{}

func (hillClimbingAcceptor) Accept(delta model.Delta, _ float64) bool {
	return delta.NotWorse()
}

// Accepts worsening moves with probability exp(-cost/temperature), the temperature cooling linearly to zero as the search progresses.
// The cost of a move that worsens the hard score is its weighted hard delta; otherwise it is its soft delta.
type simulatedAnnealingAcceptor struct {
	startingTemperature float64
	hardWeight          float64
	random              *rand.Rand
}

func (a *simulatedAnnealingAcceptor) Accept(delta model.Delta, progress float64) bool {
	if delta.NotWorse() {
		return true
	}

	temperature := a.startingTemperature * (1 - progress)
	if temperature <= 0 {
		return false
	}

	cost := float64(delta.Soft)
	if delta.Hard > 0 {
		cost = a.hardWeight * float64(delta.Hard)
	}
	return a.random.Float64() < math.Exp(-cost/temperature)
}
