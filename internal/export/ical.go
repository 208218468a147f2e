// internal/export/ical.go
//
// Minimal iCalendar writer. The output shape is a fixed contract (one
// VEVENT per shift event, floating local timestamps, a deterministic UID),
// so the lines are emitted directly rather than through a calendar library.

package export

import (
	"bufio"
	"fmt"
	"io"
)

const icalTimestampLayout = "20060102T150405"

// WriteICal emits a VCALENDAR with one VEVENT per shift event. UIDs are
// deterministic so re-importing an unchanged schedule updates in place.
func WriteICal(w io.Writer, events []Event) error {
	out := bufio.NewWriter(w)
	writeLine(out, "BEGIN:VCALENDAR")
	writeLine(out, "VERSION:2.0")
	writeLine(out, "PRODID:-//oncall-scheduler//EN")
	writeLine(out, "CALSCALE:GREGORIAN")
	for _, ev := range events {
		writeLine(out, "BEGIN:VEVENT")
		writeLine(out, fmt.Sprintf("UID:%d-%d-%s-%d@oncall", ev.Block, ev.Week, ev.RoleCode, int(ev.Weekday)))
		writeLine(out, "DTSTART:"+ev.Start.Format(icalTimestampLayout))
		writeLine(out, "DTEND:"+ev.End.Format(icalTimestampLayout))
		writeLine(out, fmt.Sprintf("SUMMARY:On-Call: %s (%s)", ev.Engineer, ev.RoleName))
		writeLine(out, "END:VEVENT")
	}
	writeLine(out, "END:VCALENDAR")
	if err := out.Flush(); err != nil {
		return fmt.Errorf("export: flush ical: %w", err)
	}
	return nil
}

// writeLine terminates with CRLF per RFC 5545.
func writeLine(w *bufio.Writer, line string) {
	w.WriteString(line)
	w.WriteString("\r\n")
}
