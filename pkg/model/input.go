package model

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type RawTimeslot struct {
	DayOfWeek string
	StartTime string
	EndTime   string
}

type RawLesson struct {
	Id           string
	Subject      string
	Teacher      string
	StudentGroup string `mapstructure:"studentGroup"`
}

type RawModelInput struct {
	Timeslots []RawTimeslot
	Rooms     []Room
	Lessons   []RawLesson
}

func InputFromJson(file string) (*Timetable, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("cannot read input file: %w", err)
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return nil, err
	}

	var rawInput RawModelInput
	if err := mapstructure.Decode(inputJson, &rawInput); err != nil {
		return nil, fmt.Errorf("cannot decode input: %w", err)
	}
	return ProcessRawInput(rawInput)
}

// ProcessRawInput turns the raw input into a timetable whose lessons are all unassigned.
// Lessons without an id are given a random one.
func ProcessRawInput(rawInput RawModelInput) (*Timetable, error) {
	timeslots := make([]Timeslot, 0, len(rawInput.Timeslots))
	for _, rawTimeslot := range rawInput.Timeslots {
		timeslot, err := parseTimeslot(rawTimeslot)
		if err != nil {
			return nil, err
		}
		timeslots = append(timeslots, timeslot)
	}

	lessons := lo.Map(rawInput.Lessons, func(rawLesson RawLesson, _ int) Lesson {
		id := rawLesson.Id
		if id == "" {
			id = uuid.NewString()
		}
		return NewLesson(id, rawLesson.Subject, rawLesson.Teacher, rawLesson.StudentGroup)
	})

	return NewTimetable(timeslots, rawInput.Rooms, lessons)
}

func parseTimeslot(rawTimeslot RawTimeslot) (Timeslot, error) {
	day, err := parseWeekday(rawTimeslot.DayOfWeek)
	if err != nil {
		return Timeslot{}, err
	}
	start, err := ParseTimeOfDay(rawTimeslot.StartTime)
	if err != nil {
		return Timeslot{}, err
	}
	end, err := ParseTimeOfDay(rawTimeslot.EndTime)
	if err != nil {
		return Timeslot{}, err
	} else if end.Minutes() <= start.Minutes() {
		return Timeslot{}, fmt.Errorf("timeslot must end after it starts: %v-%v", start, end)
	}
	return NewTimeslot(day, start, end), nil
}

// Accepts full ("MONDAY", "Monday") and abbreviated ("Mon") day names
func parseWeekday(value string) (time.Weekday, error) {
	day, ok := lo.Find(lo.Range(7), func(day int) bool {
		name := time.Weekday(day).String()
		return strings.EqualFold(value, name) || strings.EqualFold(value, name[:3])
	})
	if !ok {
		return 0, fmt.Errorf("cannot parse day of week \"%v\"", value)
	}
	return time.Weekday(day), nil
}
