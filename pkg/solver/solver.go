package solver

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/limaJavier/localsearch-timetabling/pkg/model"
	"github.com/limaJavier/localsearch-timetabling/pkg/move"
	"github.com/limaJavier/localsearch-timetabling/pkg/score"
	"go.uber.org/zap"
)

// Solver improves a timetable by local search: a construction heuristic builds a starting assignment,
// then candidate moves are sampled, scored incrementally and applied according to the acceptance strategy.
type Solver struct {
	config      Config
	constraints []score.Constraint
	logger      *zap.Logger
	listeners   []Listener
	repository  atomic.Pointer[Repository]
}

type Option func(*Solver)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Solver) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithListener(listener Listener) Option {
	return func(s *Solver) {
		s.listeners = append(s.listeners, listener)
	}
}

// WithConstraints replaces the default constraint set
func WithConstraints(constraints ...score.Constraint) Option {
	return func(s *Solver) {
		s.constraints = constraints
	}
}

// New validates the configuration, after filling its unset tuning options, and builds a solver
func New(config Config, options ...Option) (*Solver, error) {
	config = config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	solver := &Solver{
		config: config,
		logger: zap.NewNop(),
	}
	for _, option := range options {
		option(solver)
	}
	solver.repository.Store(&Repository{})
	return solver, nil
}

// Solve builds a solver for the configuration and solves the problem with it
func Solve(ctx context.Context, problem *model.Timetable, config Config, options ...Option) (*model.Timetable, error) {
	solver, err := New(config, options...)
	if err != nil {
		return nil, err
	}
	return solver.Solve(ctx, problem)
}

// Best returns a copy of the best timetable of the latest solve, while it runs or after it ended
func (s *Solver) Best() *model.Timetable {
	return s.repository.Load().Best()
}

func (s *Solver) Repository() *Repository {
	return s.repository.Load()
}

// Solve searches for the best assignment of the problem's lessons until a limit is reached or ctx is done.
// The problem is not mutated. The result may be infeasible or leave lessons unassigned; that is not an error.
func (s *Solver) Solve(ctx context.Context, problem *model.Timetable) (*model.Timetable, error) {
	start := time.Now()
	if err := problem.Validate(); err != nil {
		if errors.Is(err, model.ErrNoTimeslots) || errors.Is(err, model.ErrNoRooms) {
			return nil, ConfigError{Err: err}
		}
		return nil, err
	}

	r := &run{
		solver:     s,
		id:         uuid.NewString(),
		start:      start,
		working:    problem.Clone(),
		repository: &Repository{},
		random:     rand.New(rand.NewPCG(s.config.RandomSeed, s.config.RandomSeed^0x9e3779b97f4a7c15)),
	}
	r.logger = s.logger.With(zap.String("run_id", r.id))
	s.repository.Store(r.repository)

	if err := r.initialize(); err != nil {
		return nil, err
	}
	if err := r.improve(ctx); err != nil {
		return nil, err
	}
	return r.repository.Best(), nil
}

// run holds the state of a single solve. Only its goroutine mutates the working timetable.
type run struct {
	solver     *Solver
	id         string
	start      time.Time
	logger     *zap.Logger
	random     *rand.Rand
	working    *model.Timetable
	calculator *score.Calculator
	repository *Repository

	steps, stepsSinceImprovement int64
}

func (r *run) initialize() error {
	r.logger.Info("Solving started",
		zap.Int("lessons", len(r.working.Lessons)),
		zap.Int("timeslots", len(r.working.Timeslots)),
		zap.Int("rooms", len(r.working.Rooms)),
		zap.Uint64("seed", r.solver.config.RandomSeed),
	)
	r.notifyPhase(Initializing)

	calculator, err := score.NewCalculator(r.working, r.solver.constraints...)
	if err != nil {
		return err
	}
	r.calculator = calculator

	placed, err := construct(r.working, calculator)
	if err != nil {
		return err
	}
	r.working.Score = calculator.Score()
	r.repository.publish(r.working)

	r.logger.Info("Construction heuristic ended",
		zap.Int("placed", placed),
		zap.Int("unassigned", len(r.working.Unassigned())),
		zap.Stringer("score", r.working.Score),
		zap.Duration("elapsed", time.Since(r.start)),
	)
	return nil
}

func (r *run) improve(ctx context.Context) error {
	config := r.solver.config
	termination := newTermination(config)
	acceptor := newAcceptor(config, r.random)
	pool := evaluator{calculator: r.calculator, workers: config.Workers}
	selector, err := move.NewSelector(config.MoveSelection, r.working, r.random)
	if err != nil {
		return err
	}

	r.notifyPhase(Improving)
	best := r.working.Score
	reason := ""
	for {
		elapsed := time.Since(r.start)
		if ctx.Err() != nil {
			reason = "cancelled"
			break
		} else if stop, limit := termination.ShouldStop(elapsed, r.steps, r.stepsSinceImprovement); stop {
			reason = limit
			break
		}

		candidates := r.sample(selector, config.Candidates)
		if len(candidates) == 0 {
			reason = "no moves left"
			break
		}
		chosen, err := pool.Evaluate(r.working, candidates)
		if err != nil {
			return err
		}
		r.steps++

		// Apply, score update and snapshot form a single step; nothing outside this goroutine sees the working timetable
		accepted := acceptor.Accept(chosen.delta, termination.Progress(elapsed, r.steps))
		if accepted {
			r.calculator.Commit(chosen.reassignments)
			r.working.Apply(chosen.reassignments)
			r.working.Score = r.working.Score.Add(chosen.delta)
		}

		improved := r.working.Score.BetterThan(best)
		if improved {
			best = r.working.Score
			r.stepsSinceImprovement = 0
			r.repository.publish(r.working)
			r.logger.Debug("New best score", zap.Int64("step", r.steps), zap.Stringer("score", best), zap.Stringer("move", chosen.move))
		} else {
			r.stepsSinceImprovement++
		}

		r.notifyStep(accepted, improved, best)
	}

	r.notifyPhase(Terminated)
	r.logger.Info("Solving ended",
		zap.String("reason", reason),
		zap.Int64("steps", r.steps),
		zap.Duration("elapsed", time.Since(r.start)),
		zap.Stringer("score", best),
	)
	return nil
}

// Draws up to count candidates. A selector whose pass is over is restarted once; if the new pass is empty as well, no candidates are returned.
func (r *run) sample(selector move.Selector, count int) []move.Move {
	candidates := make([]move.Move, 0, count)
	restarted := false
	for len(candidates) < count {
		candidate, ok := selector.Next(r.working)
		if ok {
			candidates = append(candidates, candidate)
			continue
		}

		selector.Reset()
		if len(candidates) > 0 || restarted {
			break
		}
		restarted = true
	}
	return candidates
}

func (r *run) event(phase Phase) Event {
	bestScore, _ := r.repository.BestScore()
	return Event{
		RunId:     r.id,
		Phase:     phase,
		Step:      r.steps,
		Elapsed:   time.Since(r.start),
		Score:     r.working.Score,
		BestScore: bestScore,
	}
}

func (r *run) notifyPhase(phase Phase) {
	r.logger.Debug("Phase started", zap.Stringer("phase", phase))
	for _, listener := range r.solver.listeners {
		listener.PhaseStarted(r.event(phase))
	}
}

func (r *run) notifyStep(accepted, improved bool, best model.Score) {
	if len(r.solver.listeners) == 0 {
		return
	}
	event := r.event(Improving)
	event.Accepted, event.Improved, event.BestScore = accepted, improved, best
	for _, listener := range r.solver.listeners {
		listener.StepEnded(event)
	}
}
