// internal/availability/csv.go
//
// Availability CSV ingestion. Format: header `engineer,start_date,end_date`,
// one row per absence period, dates YYYY-MM-DD, range inclusive.

package availability

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseAbsenceCSV reads date-range absence records. Malformed rows fail the
// whole load; there are no silent defaults.
func ParseAbsenceCSV(r io.Reader) ([]Absence, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("availability: csv is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("availability: read csv header: %w", err)
	}
	if len(header) < 3 ||
		!strings.EqualFold(strings.TrimSpace(header[0]), "engineer") ||
		!strings.EqualFold(strings.TrimSpace(header[1]), "start_date") ||
		!strings.EqualFold(strings.TrimSpace(header[2]), "end_date") {
		return nil, fmt.Errorf("availability: csv header must be engineer,start_date,end_date, got %q", strings.Join(header, ","))
	}

	var absences []Absence
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("availability: csv line %d: %w", line, err)
		}
		if len(record) < 3 {
			return nil, fmt.Errorf("availability: csv line %d: expected 3 fields, got %d", line, len(record))
		}
		engineer := strings.TrimSpace(record[0])
		if engineer == "" {
			return nil, fmt.Errorf("availability: csv line %d: engineer is empty", line)
		}
		from, err := time.Parse(dateLayout, strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("availability: csv line %d: start_date %q is not YYYY-MM-DD", line, record[1])
		}
		to, err := time.Parse(dateLayout, strings.TrimSpace(record[2]))
		if err != nil {
			return nil, fmt.Errorf("availability: csv line %d: end_date %q is not YYYY-MM-DD", line, record[2])
		}
		if to.Before(from) {
			return nil, fmt.Errorf("availability: csv line %d: end_date %s before start_date %s", line, record[2], record[1])
		}
		absences = append(absences, Absence{Engineer: engineer, From: from, To: to})
	}
	return absences, nil
}
