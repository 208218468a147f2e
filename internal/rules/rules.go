// internal/rules/rules.go
//
// The closed set of constraint-generating rules. Each rule is independently
// toggleable and emits constraints against the shared decision-variable
// space owned by Model. The enumeration is fixed at compile time; unknown
// rule names coming from configuration are rejected, not ignored.

package rules

import (
	"fmt"
	"sort"
)

// Name identifies one rule.
type Name string

const (
	// RosterCompleteness fills every (week, role) slot with exactly one
	// engineer. Disabling it allows unfilled slots.
	RosterCompleteness Name = "roster-completeness"
	// NoConsecutiveWeeks forbids an engineer from working two weeks running
	// within the block.
	NoConsecutiveWeeks Name = "no-consecutive-weeks"
	// MaxWorkload caps each engineer's total shifts in the block.
	MaxWorkload Name = "max-workload"
	// WeekendLimit caps each engineer's assignments to the weekend role.
	WeekendLimit Name = "weekend-limit"
	// RoleExclusivity caps each engineer at one role per week.
	RoleExclusivity Name = "role-exclusivity"
	// Availability zeroes every role variable of an unavailable week.
	Availability Name = "availability"
)

// All lists every known rule in emission order.
func All() []Name {
	return []Name{
		RosterCompleteness,
		NoConsecutiveWeeks,
		MaxWorkload,
		WeekendLimit,
		RoleExclusivity,
		Availability,
	}
}

// Selection maps rules to enabled flags. Rules absent from the map keep
// their default (enabled).
type Selection map[Name]bool

// DefaultSelection enables every rule.
func DefaultSelection() Selection {
	sel := make(Selection, len(All()))
	for _, n := range All() {
		sel[n] = true
	}
	return sel
}

// Enabled reports whether the rule is active under this selection. A nil or
// partial selection defaults to enabled.
func (s Selection) Enabled(n Name) bool {
	if s == nil {
		return true
	}
	v, ok := s[n]
	return !ok || v
}

// ParseSelection validates raw rule toggles from configuration. Unknown rule
// names are an error so that a typo cannot silently disable nothing.
func ParseSelection(raw map[string]bool) (Selection, error) {
	sel := DefaultSelection()
	if len(raw) == 0 {
		return sel, nil
	}
	known := make(map[Name]bool, len(All()))
	for _, n := range All() {
		known[n] = true
	}
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !known[Name(name)] {
			return nil, fmt.Errorf("rules: unknown rule %q", name)
		}
		sel[Name(name)] = raw[name]
	}
	return sel, nil
}
