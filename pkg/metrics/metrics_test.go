package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/limaJavier/localsearch-timetabling/pkg/model"
	"github.com/limaJavier/localsearch-timetabling/pkg/solver"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	//** Arrange
	collector := NewCollector()

	//** Act
	result, err := solver.Solve(context.Background(), model.DemoData(),
		solver.Config{StepLimit: lo.ToPtr[int64](200), RandomSeed: 3},
		solver.WithListener(collector),
	)

	//** Assert
	require.NoError(t, err)
	steps := testutil.ToFloat64(collector.steps.WithLabelValues("accepted")) + testutil.ToFloat64(collector.steps.WithLabelValues("rejected"))
	assert.Equal(t, 200.0, steps)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.solves))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.phase.WithLabelValues("terminated")))
	assert.Equal(t, 0.0, testutil.ToFloat64(collector.phase.WithLabelValues("improving")))
	assert.Equal(t, float64(result.Score.Hard), testutil.ToFloat64(collector.score.WithLabelValues("best", "hard")))
	assert.Equal(t, float64(result.Score.Soft), testutil.ToFloat64(collector.score.WithLabelValues("best", "soft")))
}

func TestHandler(t *testing.T) {
	collector := NewCollector()
	collector.StepEnded(solver.Event{Accepted: true, Improved: true, Score: model.Score{Hard: 2}, BestScore: model.Score{Hard: 2}})

	recorder := httptest.NewRecorder()
	collector.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `timetable_solver_steps_total{outcome="accepted"} 1`)
	assert.Contains(t, recorder.Body.String(), "timetable_solver_improvements_total 1")
}
