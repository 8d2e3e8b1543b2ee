package solver

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/limaJavier/localsearch-timetabling/pkg/move"
)

type AcceptanceStrategy string

const (
	SimulatedAnnealing AcceptanceStrategy = "simulatedAnnealing"
	HillClimbing       AcceptanceStrategy = "hillClimbing"
)

const DefaultTimeLimit = 5 * time.Second

var ErrNoTermination = errors.New("at least one of timeLimit, stepLimit or unimprovedStepLimit must be configured")

// ConfigError reports a solver configuration that is rejected before solving starts
type ConfigError struct {
	Err error
}

func (err ConfigError) Error() string {
	return fmt.Sprintf("invalid solver configuration: %v", err.Err)
}

func (err ConfigError) Unwrap() error {
	return err.Err
}

// Config tunes the local search. A zero TimeLimit and nil step limits mean "not configured";
// at least one of the three limits must be configured.
type Config struct {
	TimeLimit           time.Duration `mapstructure:"timeLimit" validate:"gte=0"`
	StepLimit           *int64        `mapstructure:"stepLimit" validate:"omitempty,gte=0"`
	UnimprovedStepLimit *int64        `mapstructure:"unimprovedStepLimit" validate:"omitempty,gte=0"`
	RandomSeed          uint64        `mapstructure:"randomSeed"`

	MoveSelection       move.Strategy      `mapstructure:"moveSelection" validate:"omitempty,oneof=exhaustive randomized"`
	Acceptance          AcceptanceStrategy `mapstructure:"acceptance" validate:"omitempty,oneof=simulatedAnnealing hillClimbing"`
	StartingTemperature float64            `mapstructure:"startingTemperature" validate:"gte=0"`
	HardWeight          float64            `mapstructure:"hardWeight" validate:"gte=0"`

	// Candidate moves sampled and evaluated per step, and goroutines evaluating them
	Candidates int `mapstructure:"candidates" validate:"gte=0"`
	Workers    int `mapstructure:"workers" validate:"gte=0"`
}

// DefaultConfig stops after DefaultTimeLimit and uses the default strategies
func DefaultConfig() Config {
	return Config{TimeLimit: DefaultTimeLimit}.withDefaults()
}

// Fills every unset tuning option. Limits are never defaulted.
func (c Config) withDefaults() Config {
	if c.MoveSelection == "" {
		c.MoveSelection = move.Randomized
	}
	if c.Acceptance == "" {
		c.Acceptance = SimulatedAnnealing
	}
	if c.StartingTemperature == 0 {
		c.StartingTemperature = 2
	}
	if c.HardWeight == 0 {
		c.HardWeight = 10
	}
	if c.Candidates == 0 {
		c.Candidates = 1
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	return c
}

var validate = validator.New()

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return ConfigError{Err: err}
	} else if c.TimeLimit == 0 && c.StepLimit == nil && c.UnimprovedStepLimit == nil {
		return ConfigError{Err: ErrNoTermination}
	}
	return nil
}
