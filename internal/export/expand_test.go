package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"oncall-scheduler/internal/roster"
)

var monday = time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC)

func tod(h, m int) roster.TimeOfDay {
	return roster.TimeOfDay{Hour: h, Minute: m}
}

func dayRole() roster.Role {
	return roster.Role{
		Code: "D",
		Name: "Day",
		Shifts: []roster.ShiftSpan{{
			Weekdays: []time.Weekday{time.Monday, time.Tuesday},
			Start:    tod(9, 0),
			End:      tod(18, 0),
			SpanDays: 1,
		}},
	}
}

func nightRole() roster.Role {
	return roster.Role{
		Code: "NP",
		Name: "Night Primary",
		Shifts: []roster.ShiftSpan{
			{
				Weekdays: []time.Weekday{time.Monday},
				Start:    tod(18, 0),
				End:      tod(9, 0),
				SpanDays: 1,
			},
			{
				Weekdays: []time.Weekday{time.Friday},
				Start:    tod(18, 0),
				End:      tod(9, 0),
				SpanDays: 3,
			},
		},
	}
}

func solvedBlock(index int) roster.ScheduleBlock {
	return roster.ScheduleBlock{
		Index: index,
		Start: monday.AddDate(0, 0, 7*index),
		Weeks: 1,
		Assignment: roster.Assignment{
			{Week: 0, Role: "D"}:  "Alice",
			{Week: 0, Role: "NP"}: "Bob",
		},
	}
}

func TestExpandSameDayEvents(t *testing.T) {
	events := Expand([]roster.ScheduleBlock{solvedBlock(0)}, []roster.Role{dayRole()})
	require.Len(t, events, 2)

	require.Equal(t, "Alice", events[0].Engineer)
	require.Equal(t, time.Monday, events[0].Weekday)
	require.Equal(t, monday.Add(9*time.Hour), events[0].Start)
	require.Equal(t, monday.Add(18*time.Hour), events[0].End)

	require.Equal(t, time.Tuesday, events[1].Weekday)
	require.Equal(t, monday.AddDate(0, 0, 1).Add(9*time.Hour), events[1].Start)
	require.Equal(t, monday.AddDate(0, 0, 1).Add(18*time.Hour), events[1].End)
}

func TestExpandOvernightAndMultiDayEvents(t *testing.T) {
	events := Expand([]roster.ScheduleBlock{solvedBlock(0)}, []roster.Role{nightRole()})
	require.Len(t, events, 2)

	// Monday 18:00 ends Tuesday 09:00: end time earlier than start means
	// the shift crosses midnight.
	require.Equal(t, monday.Add(18*time.Hour), events[0].Start)
	require.Equal(t, monday.AddDate(0, 0, 1).Add(9*time.Hour), events[0].End)

	// Friday 18:00 with a 3-day span ends Monday 09:00.
	friday := monday.AddDate(0, 0, 4)
	require.Equal(t, friday.Add(18*time.Hour), events[1].Start)
	require.Equal(t, friday.AddDate(0, 0, 3).Add(9*time.Hour), events[1].End)
}

func TestExpandNumbersWeeksAcrossBlocks(t *testing.T) {
	blocks := []roster.ScheduleBlock{solvedBlock(0), solvedBlock(1)}
	events := Expand(blocks, []roster.Role{dayRole()})
	require.Len(t, events, 4)
	require.Equal(t, 1, events[0].AbsoluteWeek)
	require.Equal(t, 2, events[2].AbsoluteWeek)
	require.Equal(t, 1, events[2].Block)
	require.Equal(t, monday.AddDate(0, 0, 7).Add(9*time.Hour), events[2].Start)
}

func TestExpandSkipsUnfilledSlots(t *testing.T) {
	block := solvedBlock(0)
	delete(block.Assignment, roster.Slot{Week: 0, Role: "NP"})
	events := Expand([]roster.ScheduleBlock{block}, []roster.Role{dayRole(), nightRole()})
	for _, ev := range events {
		require.NotEqual(t, "NP", ev.RoleCode)
	}
}

func TestExpandIsIdempotent(t *testing.T) {
	blocks := []roster.ScheduleBlock{solvedBlock(0), solvedBlock(1)}
	roles := []roster.Role{dayRole(), nightRole()}
	first := Expand(blocks, roles)
	second := Expand(blocks, roles)
	require.Equal(t, first, second)
}
