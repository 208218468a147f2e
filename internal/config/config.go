// internal/config/config.go
//
// This package models the YAML configuration document for a scheduling run:
// team roster, role definitions, block layout, fairness constraints, file
// I/O choices, rule toggles, and the solver budget. Loading fails fast with
// the offending field named; nothing downstream runs on a bad config.

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"oncall-scheduler/internal/roster"
)

const (
	dateLayout = "2006-01-02"

	defaultWeekendRole    = "NP"
	defaultTimeoutSeconds = 60
)

// FieldError reports a missing or invalid configuration field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Config is the parsed configuration document.
type Config struct {
	Team        []string           `yaml:"team"`
	Roles       RoleList           `yaml:"roles"`
	Schedule    ScheduleSection    `yaml:"schedule"`
	Constraints ConstraintsSection `yaml:"constraints"`
	Files       FilesSection       `yaml:"files"`
	Rules       map[string]bool    `yaml:"rules,omitempty"`
	Solver      SolverSection      `yaml:"solver,omitempty"`
}

// ScheduleSection lays out the block structure of the run.
type ScheduleSection struct {
	StartDate     string `yaml:"start_date"`
	NumBlocks     int    `yaml:"num_blocks"`
	WeeksPerBlock int    `yaml:"weeks_per_block"`
	Timezone      string `yaml:"timezone,omitempty"`
}

// ConstraintsSection carries the fairness caps.
type ConstraintsSection struct {
	MaxShiftsPerEngineer   int    `yaml:"max_shifts_per_engineer"`
	MaxWeekendsPerEngineer int    `yaml:"max_weekends_per_engineer"`
	WeekendRole            string `yaml:"weekend_role,omitempty"`
}

// FilesSection names the availability input and the export formats.
type FilesSection struct {
	AvailabilityCSV string   `yaml:"availability_csv,omitempty"`
	ExportFormats   []string `yaml:"export_formats"`
}

// SolverSection bounds the per-block search.
type SolverSection struct {
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Constraints.WeekendRole) == "" {
		c.Constraints.WeekendRole = defaultWeekendRole
	}
	if c.Solver.TimeoutSeconds == 0 {
		c.Solver.TimeoutSeconds = defaultTimeoutSeconds
	}
}

// Validate checks every required section and field. The first problem found
// is returned as a FieldError.
func (c *Config) Validate() error {
	if len(c.Team) == 0 {
		return &FieldError{Field: "team", Reason: "must be a non-empty list of engineer names"}
	}
	seen := make(map[string]bool, len(c.Team))
	for i, name := range c.Team {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return &FieldError{Field: fmt.Sprintf("team[%d]", i), Reason: "engineer name is empty"}
		}
		if seen[trimmed] {
			return &FieldError{Field: fmt.Sprintf("team[%d]", i), Reason: fmt.Sprintf("duplicate engineer %q", trimmed)}
		}
		seen[trimmed] = true
	}

	if len(c.Roles) == 0 {
		return &FieldError{Field: "roles", Reason: "must be a non-empty mapping of role code to definition"}
	}
	if err := c.Roles.validate(); err != nil {
		return err
	}

	if c.Schedule.StartDate == "" {
		return &FieldError{Field: "schedule.start_date", Reason: "is required"}
	}
	start, err := time.Parse(dateLayout, c.Schedule.StartDate)
	if err != nil {
		return &FieldError{Field: "schedule.start_date", Reason: fmt.Sprintf("%q is not YYYY-MM-DD", c.Schedule.StartDate)}
	}
	if start.Weekday() != time.Monday {
		return &FieldError{Field: "schedule.start_date", Reason: fmt.Sprintf("%s is a %s; schedules start on a Monday", c.Schedule.StartDate, start.Weekday())}
	}
	if c.Schedule.NumBlocks <= 0 {
		return &FieldError{Field: "schedule.num_blocks", Reason: "must be a positive count"}
	}
	if c.Schedule.WeeksPerBlock <= 0 {
		return &FieldError{Field: "schedule.weeks_per_block", Reason: "must be a positive count"}
	}
	if c.Schedule.Timezone != "" {
		if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
			return &FieldError{Field: "schedule.timezone", Reason: fmt.Sprintf("unknown timezone %q", c.Schedule.Timezone)}
		}
	}

	if c.Constraints.MaxShiftsPerEngineer <= 0 {
		return &FieldError{Field: "constraints.max_shifts_per_engineer", Reason: "must be a positive count"}
	}
	if c.Constraints.MaxWeekendsPerEngineer < 0 {
		return &FieldError{Field: "constraints.max_weekends_per_engineer", Reason: "must not be negative"}
	}
	// The defaulted weekend role may be absent from roles (the weekend cap
	// then has nothing to bound), but an explicitly configured one must exist.
	if c.Constraints.WeekendRole != defaultWeekendRole && !c.Roles.hasCode(c.Constraints.WeekendRole) {
		return &FieldError{Field: "constraints.weekend_role", Reason: fmt.Sprintf("role %q is not defined under roles", c.Constraints.WeekendRole)}
	}

	for i, format := range c.Files.ExportFormats {
		switch format {
		case "csv", "ical":
		default:
			return &FieldError{Field: fmt.Sprintf("files.export_formats[%d]", i), Reason: fmt.Sprintf("unknown format %q (expected csv or ical)", format)}
		}
	}

	if c.Solver.TimeoutSeconds <= 0 {
		return &FieldError{Field: "solver.timeout_seconds", Reason: "must be a positive count"}
	}
	return nil
}

// StartDate returns the parsed schedule start in the configured timezone.
func (c *Config) StartDate() time.Time {
	start, _ := time.Parse(dateLayout, c.Schedule.StartDate)
	loc := c.Location()
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
}

// Location returns the configured timezone, defaulting to the local one.
func (c *Config) Location() *time.Location {
	if c.Schedule.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// SolverBudget returns the per-block solve budget.
func (c *Config) SolverBudget() time.Duration {
	return time.Duration(c.Solver.TimeoutSeconds) * time.Second
}

// RosterRoles converts the role definitions into domain roles, preserving
// document order.
func (c *Config) RosterRoles() ([]roster.Role, error) {
	return c.Roles.rosterRoles()
}
