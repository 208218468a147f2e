// internal/cli/render.go
//
// Human-readable terminal output: the solved roster as a week-by-week grid
// and the capacity analysis shown by `oncall validate`.

package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"oncall-scheduler/internal/roster"
	"oncall-scheduler/internal/schedule"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	okStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50"))
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
)

// renderRoster formats solved blocks as a table with one row per week and
// one column per role, numbering weeks absolutely across the run.
func renderRoster(blocks []roster.ScheduleBlock, roles []roster.Role) string {
	widths := make([]int, len(roles))
	for i, role := range roles {
		widths[i] = len(role.Name)
	}
	for _, block := range blocks {
		for w := 0; w < block.Weeks; w++ {
			for i, role := range roles {
				if e, ok := block.Assignment.Engineer(w, role.Code); ok && len(e) > widths[i] {
					widths[i] = len(e)
				}
			}
		}
	}

	var b strings.Builder
	header := fmt.Sprintf("%-6s", "Week")
	for i, role := range roles {
		header += fmt.Sprintf(" | %-*s", widths[i], role.Name)
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Repeat("-", lipgloss.Width(header))))
	for _, block := range blocks {
		for w := 0; w < block.Weeks; w++ {
			row := fmt.Sprintf("%-6d", block.Index*block.Weeks+w+1)
			for i, role := range roles {
				engineer, ok := block.Assignment.Engineer(w, role.Code)
				if !ok {
					engineer = "-"
				}
				row += fmt.Sprintf(" | %-*s", widths[i], engineer)
			}
			b.WriteString("\n")
			b.WriteString(row)
		}
	}
	return b.String()
}

// renderCapacity formats the per-block supply and demand figures.
func renderCapacity(plan schedule.Plan, diag schedule.Diagnostics) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Capacity analysis"))
	fmt.Fprintf(&b, "\n  Engineers:           %d", len(plan.Engineers))
	fmt.Fprintf(&b, "\n  Blocks:              %d x %d weeks", plan.NumBlocks, plan.WeeksPerBlock)
	fmt.Fprintf(&b, "\n  Roles per week:      %d", len(plan.Roles))
	fmt.Fprintf(&b, "\n  Required per block:  %d person-shifts", diag.RequiredShifts)
	fmt.Fprintf(&b, "\n  Available per block: %d person-shifts", diag.AvailableShifts)
	if diag.UnavailableSlots > 0 {
		fmt.Fprintf(&b, "\n  Unavailable slots:   %d", diag.UnavailableSlots)
	}
	b.WriteString("\n")
	if diag.AvailableShifts < diag.RequiredShifts {
		b.WriteString(warnStyle.Render("Insufficient capacity: reduce absences, relax caps, or add engineers."))
		b.WriteString("\n")
	}
	return b.String()
}
