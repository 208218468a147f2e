// internal/export/csv.go

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

const timestampLayout = "2006-01-02 15:04"

// WriteCSV emits the schedule CSV: one row per shift event, weeks numbered
// absolutely across all blocks.
func WriteCSV(w io.Writer, events []Event) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Week", "Role", "Engineer", "Start DateTime", "End DateTime"}); err != nil {
		return fmt.Errorf("export: write csv header: %w", err)
	}
	for _, ev := range events {
		record := []string{
			strconv.Itoa(ev.AbsoluteWeek),
			ev.RoleCode,
			ev.Engineer,
			ev.Start.Format(timestampLayout),
			ev.End.Format(timestampLayout),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("export: write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("export: flush csv: %w", err)
	}
	return nil
}
