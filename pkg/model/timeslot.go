package model

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time within a day, with minute precision
type TimeOfDay struct {
	Hour   int
	Minute int
}

func At(hour, minute int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute}
}

// Returns the number of minutes elapsed since midnight
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTimeOfDay parses a "15:04" formatted string
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("cannot parse time of day \"%v\": %w", value, err)
	}
	return At(parsed.Hour(), parsed.Minute()), nil
}

// Timeslot is an immutable problem fact. Two timeslots are equal if and only if all their fields are equal.
type Timeslot struct {
	DayOfWeek time.Weekday
	StartTime TimeOfDay
	EndTime   TimeOfDay
}

func NewTimeslot(dayOfWeek time.Weekday, startTime, endTime TimeOfDay) Timeslot {
	return Timeslot{DayOfWeek: dayOfWeek, StartTime: startTime, EndTime: endTime}
}

// Compares two timeslots by day and then by start time
func (t Timeslot) Compare(other Timeslot) int {
	if t.DayOfWeek != other.DayOfWeek {
		return int(t.DayOfWeek) - int(other.DayOfWeek)
	}
	return t.StartTime.Minutes() - other.StartTime.Minutes()
}

func (t Timeslot) String() string {
	return fmt.Sprintf("%v %v", t.DayOfWeek.String()[:3], t.StartTime)
}

// Room is an immutable problem fact
type Room struct {
	Name string
}

func (r Room) String() string {
	return r.Name
}
