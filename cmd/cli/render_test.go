package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/limaJavier/localsearch-timetabling/pkg/model"
	"github.com/limaJavier/localsearch-timetabling/pkg/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTimetable(t *testing.T) {
	//** Arrange
	timetable := model.DemoData()
	timetable.Lessons[0].Assignment = model.Assign(0, 1)
	timetable.Lessons[2].Assignment = model.Assign(0, 1)
	var buffer bytes.Buffer

	//** Act
	renderTimetable(&buffer, timetable)

	//** Assert
	lines := strings.Split(buffer.String(), "\n")
	assert.Equal(t, "|            | Room A     | Room B     | Room C     |", lines[0])
	assert.Equal(t, "|------------|------------|------------|------------|", lines[1])
	assert.Equal(t, "| Mon 08:30  |            | Math, Physics |            |", lines[2])
	assert.Equal(t, "|            |            | A. Turing, M. Curie |            |", lines[3])
	assert.Contains(t, buffer.String(), "Unassigned lessons\n  Math - A. Turing - 9th grade\n  Chemistry - M. Curie - 9th grade\n")
	assert.NotContains(t, buffer.String(), "  Physics - M. Curie - 9th grade\n")
}

func TestBuildOutput(t *testing.T) {
	timetable := model.DemoData()
	timetable.Lessons[0].Assignment = model.Assign(1, 2)
	explanation, err := score.Explain(timetable)
	require.NoError(t, err)
	timetable.Score, err = score.FullScore(timetable)
	require.NoError(t, err)

	outputJson, err := json.Marshal(buildOutput(timetable, explanation))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(outputJson, &decoded))
	lessons := decoded["lessons"].([]any)
	assert.Len(t, lessons, 20)
	assert.Equal(t, map[string]any{
		"id":           "0",
		"subject":      "Math",
		"teacher":      "A. Turing",
		"studentGroup": "9th grade",
		"assigned":     true,
		"dayOfWeek":    "MONDAY",
		"startTime":    "09:30",
		"endTime":      "10:30",
		"room":         "Room C",
	}, lessons[0])
	assert.Equal(t, false, lessons[1].(map[string]any)["assigned"])
	assert.Equal(t, map[string]any{"hard": 19.0, "soft": 0.0, "feasible": false}, decoded["score"])
	assert.Len(t, decoded["constraints"], 7)
}
