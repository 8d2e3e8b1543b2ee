package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/limaJavier/localsearch-timetabling/pkg/solver"
)

// Collector exposes the progress of solves as Prometheus metrics. It is a solver.Listener.
type Collector struct {
	registry     *prometheus.Registry
	handler      http.Handler
	steps        *prometheus.CounterVec
	improvements prometheus.Counter
	solves       prometheus.Counter
	score        *prometheus.GaugeVec
	phase        *prometheus.GaugeVec
	elapsed      prometheus.Gauge
}

var phases = []solver.Phase{solver.Initializing, solver.Improving, solver.Terminated}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	steps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_solver_steps_total",
		Help: "Local search steps by outcome",
	}, []string{"outcome"})

	improvements := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_solver_improvements_total",
		Help: "Steps that improved the best score",
	})

	solves := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_solver_solves_total",
		Help: "Finished solves",
	})

	score := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "timetable_solver_score",
		Help: "Penalty of the working and best timetables by constraint level",
	}, []string{"solution", "level"})

	phase := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "timetable_solver_phase",
		Help: "1 for the phase the latest solve is in, 0 otherwise",
	}, []string{"phase"})

	elapsed := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "timetable_solver_elapsed_seconds",
		Help: "Time spent by the latest solve",
	})

	registry.MustRegister(steps, improvements, solves, score, phase, elapsed)

	return &Collector{
		registry:     registry,
		handler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		steps:        steps,
		improvements: improvements,
		solves:       solves,
		score:        score,
		phase:        phase,
		elapsed:      elapsed,
	}
}

// Handler exposes the Prometheus HTTP handler
func (c *Collector) Handler() http.Handler {
	return c.handler
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) PhaseStarted(event solver.Event) {
	for _, phase := range phases {
		value := 0.0
		if phase == event.Phase {
			value = 1
		}
		c.phase.WithLabelValues(phase.String()).Set(value)
	}
	if event.Phase == solver.Terminated {
		c.solves.Inc()
	}
	c.observe(event)
}

func (c *Collector) StepEnded(event solver.Event) {
	outcome := "rejected"
	if event.Accepted {
		outcome = "accepted"
	}
	c.steps.WithLabelValues(outcome).Inc()
	if event.Improved {
		c.improvements.Inc()
	}
	c.observe(event)
}

func (c *Collector) observe(event solver.Event) {
	c.score.WithLabelValues("working", "hard").Set(float64(event.Score.Hard))
	c.score.WithLabelValues("working", "soft").Set(float64(event.Score.Soft))
	c.score.WithLabelValues("best", "hard").Set(float64(event.BestScore.Hard))
	c.score.WithLabelValues("best", "soft").Set(float64(event.BestScore.Soft))
	c.elapsed.Set(event.Elapsed.Seconds())
}
