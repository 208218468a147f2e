// internal/config/roles.go
//
// Role definitions. YAML presents roles as a mapping of role code to
// definition, but document order matters for deterministic exports, so the
// mapping is decoded by hand off the yaml.Node tree.

package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"oncall-scheduler/internal/roster"
)

// RoleEntry is one role definition with its code from the mapping key.
type RoleEntry struct {
	Code   string
	Name   string
	Shifts []ShiftEntry
}

// ShiftEntry is one day-span of a role's shift-time definition.
type ShiftEntry struct {
	Days     []string `yaml:"days"`
	Start    string   `yaml:"start"`
	End      string   `yaml:"end"`
	SpanDays int      `yaml:"span_days,omitempty"`
}

// RoleList preserves the document order of the roles mapping.
type RoleList []RoleEntry

type roleBody struct {
	Name   string       `yaml:"name"`
	Shifts []ShiftEntry `yaml:"shifts"`
}

// UnmarshalYAML decodes the roles mapping while keeping key order.
func (rl *RoleList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("roles must be a mapping of role code to definition")
	}
	entries := make(RoleList, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		var body roleBody
		if err := valueNode.Decode(&body); err != nil {
			return fmt.Errorf("role %q: %w", keyNode.Value, err)
		}
		entries = append(entries, RoleEntry{
			Code:   strings.TrimSpace(keyNode.Value),
			Name:   body.Name,
			Shifts: body.Shifts,
		})
	}
	*rl = entries
	return nil
}

// MarshalYAML re-emits the ordered mapping.
func (rl RoleList) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, entry := range rl {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: entry.Code}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(roleBody{Name: entry.Name, Shifts: entry.Shifts}); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

func (rl RoleList) hasCode(code string) bool {
	for _, entry := range rl {
		if entry.Code == code {
			return true
		}
	}
	return false
}

func (rl RoleList) validate() error {
	seen := make(map[string]bool, len(rl))
	for _, entry := range rl {
		field := fmt.Sprintf("roles.%s", entry.Code)
		if entry.Code == "" {
			return &FieldError{Field: "roles", Reason: "role code is empty"}
		}
		if seen[entry.Code] {
			return &FieldError{Field: field, Reason: "duplicate role code"}
		}
		seen[entry.Code] = true
		if strings.TrimSpace(entry.Name) == "" {
			return &FieldError{Field: field + ".name", Reason: "is required"}
		}
		if len(entry.Shifts) == 0 {
			return &FieldError{Field: field + ".shifts", Reason: "must list at least one day-span"}
		}
		for i, shift := range entry.Shifts {
			shiftField := fmt.Sprintf("%s.shifts[%d]", field, i)
			if len(shift.Days) == 0 {
				return &FieldError{Field: shiftField + ".days", Reason: "must list at least one weekday"}
			}
			for _, day := range shift.Days {
				if _, err := parseWeekday(day); err != nil {
					return &FieldError{Field: shiftField + ".days", Reason: err.Error()}
				}
			}
			if _, err := roster.ParseTimeOfDay(shift.Start); err != nil {
				return &FieldError{Field: shiftField + ".start", Reason: err.Error()}
			}
			if _, err := roster.ParseTimeOfDay(shift.End); err != nil {
				return &FieldError{Field: shiftField + ".end", Reason: err.Error()}
			}
			if shift.SpanDays < 0 {
				return &FieldError{Field: shiftField + ".span_days", Reason: "must not be negative"}
			}
		}
	}
	return nil
}

// rosterRoles assumes validate has passed; conversion errors still surface.
func (rl RoleList) rosterRoles() ([]roster.Role, error) {
	roles := make([]roster.Role, 0, len(rl))
	for _, entry := range rl {
		role := roster.Role{Code: entry.Code, Name: entry.Name}
		for _, shift := range entry.Shifts {
			span := roster.ShiftSpan{SpanDays: shift.SpanDays}
			for _, day := range shift.Days {
				weekday, err := parseWeekday(day)
				if err != nil {
					return nil, fmt.Errorf("config: roles.%s: %w", entry.Code, err)
				}
				span.Weekdays = append(span.Weekdays, weekday)
			}
			start, err := roster.ParseTimeOfDay(shift.Start)
			if err != nil {
				return nil, fmt.Errorf("config: roles.%s: %w", entry.Code, err)
			}
			end, err := roster.ParseTimeOfDay(shift.End)
			if err != nil {
				return nil, fmt.Errorf("config: roles.%s: %w", entry.Code, err)
			}
			span.Start, span.End = start, end
			role.Shifts = append(role.Shifts, span)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

var weekdays = map[string]time.Weekday{
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
	"sun": time.Sunday, "sunday": time.Sunday,
}

func parseWeekday(s string) (time.Weekday, error) {
	if d, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}
