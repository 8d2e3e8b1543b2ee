package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/limaJavier/localsearch-timetabling/pkg/model"
	"github.com/limaJavier/localsearch-timetabling/pkg/score"
	"github.com/samber/lo"
)

// Prints one row per timeslot and one column per room; each cell lists subjects, teachers and student groups on three lines
func renderTimetable(w io.Writer, timetable *model.Timetable) {
	// Lessons by timeslot and room
	cells := make(map[[2]int][]model.Lesson)
	for _, lesson := range timetable.Lessons {
		if lesson.Complete() {
			key := [2]int{lesson.Timeslot, lesson.Room}
			cells[key] = append(cells[key], lesson)
		}
	}

	row := func(first string, values []string) string {
		columns := lo.Map(values, func(value string, _ int) string { return fmt.Sprintf("%-10s", value) })
		return fmt.Sprintf("| %-10s | %v |", first, strings.Join(columns, " | "))
	}
	separator := "|" + strings.Repeat("------------|", len(timetable.Rooms)+1)

	fmt.Fprintln(w, row("", lo.Map(timetable.Rooms, func(room model.Room, _ int) string { return room.Name })))
	fmt.Fprintln(w, separator)
	for timeslotIndex, timeslot := range timetable.Timeslots {
		line := func(field func(model.Lesson) string) []string {
			return lo.Map(lo.Range(len(timetable.Rooms)), func(room int, _ int) string {
				return strings.Join(lo.Map(cells[[2]int{timeslotIndex, room}], func(lesson model.Lesson, _ int) string {
					return field(lesson)
				}), ", ")
			})
		}

		fmt.Fprintln(w, row(timeslot.String(), line(func(lesson model.Lesson) string { return lesson.Subject })))
		fmt.Fprintln(w, row("", line(func(lesson model.Lesson) string { return lesson.Teacher })))
		fmt.Fprintln(w, row("", line(func(lesson model.Lesson) string { return lesson.StudentGroup })))
		fmt.Fprintln(w, separator)
	}

	if unassigned := timetable.Unassigned(); len(unassigned) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Unassigned lessons")
		for _, lesson := range unassigned {
			fmt.Fprintf(w, "  %v - %v - %v\n", lesson.Subject, lesson.Teacher, lesson.StudentGroup)
		}
	}
}

type scoreOutput struct {
	Hard     int  `json:"hard"`
	Soft     int  `json:"soft"`
	Feasible bool `json:"feasible"`
}

type constraintOutput struct {
	Name    string `json:"name"`
	Level   string `json:"level"`
	Penalty int    `json:"penalty"`
}

type lessonOutput struct {
	Id           string `json:"id"`
	Subject      string `json:"subject"`
	Teacher      string `json:"teacher"`
	StudentGroup string `json:"studentGroup"`
	Assigned     bool   `json:"assigned"`
	DayOfWeek    string `json:"dayOfWeek,omitempty"`
	StartTime    string `json:"startTime,omitempty"`
	EndTime      string `json:"endTime,omitempty"`
	Room         string `json:"room,omitempty"`
}

type output struct {
	Score       scoreOutput        `json:"score"`
	Constraints []constraintOutput `json:"constraints"`
	Lessons     []lessonOutput     `json:"lessons"`
}

func buildOutput(timetable *model.Timetable, explanation []score.ConstraintScore) output {
	return output{
		Score: scoreOutput{
			Hard:     timetable.Score.Hard,
			Soft:     timetable.Score.Soft,
			Feasible: timetable.Score.Feasible(),
		},
		Constraints: lo.Map(explanation, func(constraintScore score.ConstraintScore, _ int) constraintOutput {
			return constraintOutput{Name: constraintScore.Name, Level: constraintScore.Level.String(), Penalty: constraintScore.Penalty}
		}),
		Lessons: lo.Map(timetable.Lessons, func(lesson model.Lesson, _ int) lessonOutput {
			entry := lessonOutput{
				Id:           lesson.Id,
				Subject:      lesson.Subject,
				Teacher:      lesson.Teacher,
				StudentGroup: lesson.StudentGroup,
				Assigned:     lesson.Complete(),
			}
			if timeslot, ok := timetable.TimeslotOf(lesson); ok {
				entry.DayOfWeek = strings.ToUpper(timeslot.DayOfWeek.String())
				entry.StartTime = timeslot.StartTime.String()
				entry.EndTime = timeslot.EndTime.String()
			}
			if room, ok := timetable.RoomOf(lesson); ok {
				entry.Room = room.Name
			}
			return entry
		}),
	}
}
