// internal/availability/availability.go
//
// Merges every availability source into a single per-block table keyed by
// (engineer, block-relative week). Precedence, lowest to highest: default
// available, date-range absences, explicit per-week overrides, and the
// boundary ban carried over from the previous block.

package availability

import (
	"fmt"
	"time"
)

// Key addresses one cell of the availability table.
type Key struct {
	Engineer string
	Week     int
}

// Table is a total availability function over the roster and the weeks of
// one block. Missing keys never occur after Resolve; Available guards anyway.
type Table map[Key]bool

// Available reports whether the engineer may be assigned in the given week.
func (t Table) Available(engineer string, week int) bool {
	v, ok := t[Key{Engineer: engineer, Week: week}]
	return !ok || v
}

// Unavailable returns the number of banned (engineer, week) cells.
func (t Table) Unavailable() int {
	n := 0
	for _, v := range t {
		if !v {
			n++
		}
	}
	return n
}

// Absence is a date-range unavailability record, inclusive on both ends.
type Absence struct {
	Engineer string
	From     time.Time
	To       time.Time
}

// Override is an explicit per-week availability decision. It wins over any
// date-range absence for the same cell.
type Override struct {
	Engineer  string
	Week      int
	Available bool
}

// Request bundles the inputs for one block's table.
type Request struct {
	Engineers []string
	Weeks     int
	// BlockStart is the Monday of the block's first week. Week w spans
	// [BlockStart+7w, BlockStart+7w+6].
	BlockStart time.Time
	Absences   []Absence
	Overrides  []Override
	// BoundaryBan lists engineers forced unavailable in week 0 because they
	// worked the final week of the previous block.
	BoundaryBan []string
}

// Resolve produces the merged availability table for one block.
func Resolve(req Request) (Table, error) {
	if req.Weeks <= 0 {
		return nil, fmt.Errorf("availability: weeks must be positive, got %d", req.Weeks)
	}
	onRoster := make(map[string]bool, len(req.Engineers))
	table := make(Table, len(req.Engineers)*req.Weeks)
	for _, e := range req.Engineers {
		onRoster[e] = true
		for w := 0; w < req.Weeks; w++ {
			table[Key{Engineer: e, Week: w}] = true
		}
	}
	// Absence bounds are calendar days, not instants: re-anchor them to the
	// block's location so a date parsed in another zone cannot shift across a
	// week boundary.
	loc := req.BlockStart.Location()
	for _, a := range req.Absences {
		from := dateIn(a.From, loc)
		to := dateIn(a.To, loc)
		if to.Before(from) {
			return nil, fmt.Errorf("availability: absence for %s ends %s before it starts %s",
				a.Engineer, a.To.Format("2006-01-02"), a.From.Format("2006-01-02"))
		}
		if !onRoster[a.Engineer] {
			continue
		}
		for w := 0; w < req.Weeks; w++ {
			weekStart := req.BlockStart.AddDate(0, 0, 7*w)
			weekEnd := weekStart.AddDate(0, 0, 6)
			// A partial-week absence bans the whole week.
			if !to.Before(weekStart) && !from.After(weekEnd) {
				table[Key{Engineer: a.Engineer, Week: w}] = false
			}
		}
	}
	for _, o := range req.Overrides {
		if o.Week < 0 || o.Week >= req.Weeks || !onRoster[o.Engineer] {
			continue
		}
		table[Key{Engineer: o.Engineer, Week: o.Week}] = o.Available
	}
	for _, e := range req.BoundaryBan {
		if onRoster[e] {
			table[Key{Engineer: e, Week: 0}] = false
		}
	}
	return table, nil
}

// dateIn maps an instant to midnight of its calendar day in loc.
func dateIn(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
