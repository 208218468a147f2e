// internal/roster/roster.go
//
// Core domain types shared by the availability, rules, schedule, and export
// packages. A roster run assigns one engineer to each weekly role slot across
// a sequence of fixed-length blocks.

package roster

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Role describes one weekly on-call role: a short code used in the model and
// exports, a display name, and the concrete shift times the role covers.
type Role struct {
	Code   string
	Name   string
	Shifts []ShiftSpan
}

// ShiftSpan is one entry of a role's shift-time definition. It produces one
// shift event per listed weekday per scheduled week.
//
// SpanDays controls how the end timestamp is derived:
//   - SpanDays > 1: the shift runs into a later day (Friday evening through
//     Monday morning is SpanDays=3 starting Friday).
//   - SpanDays <= 1 with End earlier than Start: overnight, ends next day.
//   - otherwise: starts and ends on the same day.
type ShiftSpan struct {
	Weekdays []time.Weekday
	Start    TimeOfDay
	End      TimeOfDay
	SpanDays int
}

// TimeOfDay is a wall-clock time within a day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM". The whole string must be the time; trailing
// characters are rejected.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return TimeOfDay{}, fmt.Errorf("roster: invalid time of day %q (expected HH:MM)", s)
	}
	hour, hourErr := strconv.Atoi(hh)
	minute, minuteErr := strconv.Atoi(mm)
	if hourErr != nil || minuteErr != nil {
		return TimeOfDay{}, fmt.Errorf("roster: invalid time of day %q (expected HH:MM)", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("roster: time of day %q out of range", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// Before reports whether t is strictly earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}
	return t.Minute < other.Minute
}

// On returns the instant at time-of-day t on the same calendar day as day.
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Slot identifies one assignable position: a block-relative week index plus a
// role code.
type Slot struct {
	Week int
	Role string
}

// Assignment maps each filled slot of one block to the engineer covering it.
// With the roster-completeness rule enabled every slot is present; under a
// relaxed rule set slots may be missing.
type Assignment map[Slot]string

// Engineer returns the engineer covering the given slot, if any.
func (a Assignment) Engineer(week int, role string) (string, bool) {
	e, ok := a[Slot{Week: week, Role: role}]
	return e, ok
}

// WorksIn reports whether the engineer holds any role in the given week.
func (a Assignment) WorksIn(engineer string, week int, roles []Role) bool {
	for _, r := range roles {
		if e, ok := a[Slot{Week: week, Role: r.Code}]; ok && e == engineer {
			return true
		}
	}
	return false
}

// ScheduleBlock is one solved block: its position in the run, the Monday its
// first week starts on, its length in weeks, and the decoded assignment.
// Blocks are immutable once produced.
type ScheduleBlock struct {
	Index      int
	Start      time.Time
	Weeks      int
	Assignment Assignment
}

// WeekStart returns the Monday of the given block-relative week.
func (b ScheduleBlock) WeekStart(week int) time.Time {
	return b.Start.AddDate(0, 0, 7*week)
}
