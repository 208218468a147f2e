// internal/export/expand.go
//
// Expands the abstract week/role/engineer grid of solved blocks into
// concrete, timestamped shift events. Expansion is a pure function of the
// blocks and role definitions: rerunning it yields an identical sequence.

package export

import (
	"time"

	"oncall-scheduler/internal/roster"
)

// Event is one concrete shift occurrence.
type Event struct {
	Block int
	// Week is the block-relative week index; AbsoluteWeek counts 1-based
	// across all blocks, which is what exports display.
	Week         int
	AbsoluteWeek int
	RoleCode     string
	RoleName     string
	Engineer     string
	Weekday      time.Weekday
	Start        time.Time
	End          time.Time
}

// Expand produces the full event sequence for the given blocks, ordered by
// block, week, role definition order, span order, then weekday order within
// each span. Slots left unfilled under a relaxed rule set produce no events.
func Expand(blocks []roster.ScheduleBlock, roles []roster.Role) []Event {
	var events []Event
	for _, block := range blocks {
		for w := 0; w < block.Weeks; w++ {
			weekStart := block.WeekStart(w)
			for _, role := range roles {
				engineer, ok := block.Assignment.Engineer(w, role.Code)
				if !ok {
					continue
				}
				for _, span := range role.Shifts {
					for _, weekday := range span.Weekdays {
						start := span.Start.On(weekStart.AddDate(0, 0, mondayOffset(weekday)))
						events = append(events, Event{
							Block:        block.Index,
							Week:         w,
							AbsoluteWeek: block.Index*block.Weeks + w + 1,
							RoleCode:     role.Code,
							RoleName:     role.Name,
							Engineer:     engineer,
							Weekday:      weekday,
							Start:        start,
							End:          spanEnd(span, start),
						})
					}
				}
			}
		}
	}
	return events
}

// spanEnd derives the end timestamp. Multi-day spans win over the overnight
// heuristic; otherwise an end time earlier than the start means the shift
// crosses midnight.
func spanEnd(span roster.ShiftSpan, start time.Time) time.Time {
	switch {
	case span.SpanDays > 1:
		return span.End.On(start.AddDate(0, 0, span.SpanDays))
	case span.End.Before(span.Start):
		return span.End.On(start.AddDate(0, 0, 1))
	default:
		return span.End.On(start)
	}
}

// mondayOffset maps a weekday to its day offset from Monday.
func mondayOffset(d time.Weekday) int {
	return (int(d) + 6) % 7
}
