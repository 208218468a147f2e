// internal/rules/model.go
//
// Model owns the x[engineer, week, role] decision variables for one block,
// asks each enabled rule to emit its constraints, hands the result to the
// solver, and decodes the valuation back into a roster.Assignment.

package rules

import (
	"fmt"
	"time"

	"oncall-scheduler/internal/availability"
	"oncall-scheduler/internal/roster"
	"oncall-scheduler/internal/solver"
)

// Problem is everything a block's rules need to emit constraints.
type Problem struct {
	Engineers    []string
	Weeks        int
	Roles        []roster.Role
	MaxShifts    int
	MaxWeekends  int
	WeekendRole  string
	Availability availability.Table
}

// Model is the constraint model for one block. Build it, solve it, decode
// it, discard it.
type Model struct {
	problem Problem
	sat     *solver.Model
	vars    map[varKey]solver.Var
}

type varKey struct {
	engineer string
	week     int
	role     string
}

// emitters is the fixed rule dispatch table. The rule set is small and known
// at design time, so this stays a closed enumeration rather than an open
// registry.
var emitters = map[Name]func(*Model){
	RosterCompleteness: (*Model).emitRosterCompleteness,
	NoConsecutiveWeeks: (*Model).emitNoConsecutiveWeeks,
	MaxWorkload:        (*Model).emitMaxWorkload,
	WeekendLimit:       (*Model).emitWeekendLimit,
	RoleExclusivity:    (*Model).emitRoleExclusivity,
	Availability:       (*Model).emitAvailability,
}

// Build allocates the decision variables and emits constraints for every
// enabled rule.
func Build(p Problem, sel Selection) (*Model, error) {
	if len(p.Engineers) == 0 {
		return nil, fmt.Errorf("rules: no engineers")
	}
	if len(p.Roles) == 0 {
		return nil, fmt.Errorf("rules: no roles")
	}
	if p.Weeks <= 0 {
		return nil, fmt.Errorf("rules: weeks must be positive, got %d", p.Weeks)
	}
	m := &Model{
		problem: p,
		sat:     solver.NewModel(),
		vars:    make(map[varKey]solver.Var, len(p.Engineers)*p.Weeks*len(p.Roles)),
	}
	for _, e := range p.Engineers {
		for w := 0; w < p.Weeks; w++ {
			for _, r := range p.Roles {
				m.vars[varKey{engineer: e, week: w, role: r.Code}] = m.sat.NewVar()
			}
		}
	}
	for _, name := range All() {
		if sel.Enabled(name) {
			emitters[name](m)
		}
	}
	return m, nil
}

// Solve hands the model to the solver collaborator under the given time
// budget and decodes a feasible valuation. The first satisfying assignment
// is accepted; no optimality search happens.
func (m *Model) Solve(slv solver.Solver, budget time.Duration) (roster.Assignment, solver.Status, error) {
	res, err := slv.Solve(m.sat, budget)
	if err != nil {
		return nil, "", fmt.Errorf("rules: solve block model: %w", err)
	}
	if res.Status != solver.StatusFeasible {
		return nil, res.Status, nil
	}
	return m.decode(res.Values), solver.StatusFeasible, nil
}

// decode scans each (week, role) slot for its assigned engineer. Under a
// relaxed rule set a slot may have no engineer; it is simply left out.
func (m *Model) decode(values []bool) roster.Assignment {
	assignment := make(roster.Assignment, m.problem.Weeks*len(m.problem.Roles))
	for w := 0; w < m.problem.Weeks; w++ {
		for _, r := range m.problem.Roles {
			for _, e := range m.problem.Engineers {
				if values[m.vars[varKey{engineer: e, week: w, role: r.Code}]] {
					assignment[roster.Slot{Week: w, Role: r.Code}] = e
					break
				}
			}
		}
	}
	return assignment
}

func (m *Model) emitRosterCompleteness() {
	for w := 0; w < m.problem.Weeks; w++ {
		for _, r := range m.problem.Roles {
			vars := make([]solver.Var, 0, len(m.problem.Engineers))
			for _, e := range m.problem.Engineers {
				vars = append(vars, m.vars[varKey{engineer: e, week: w, role: r.Code}])
			}
			m.sat.AddExactlyOne(vars)
		}
	}
}

func (m *Model) emitNoConsecutiveWeeks() {
	for _, e := range m.problem.Engineers {
		for w := 0; w < m.problem.Weeks-1; w++ {
			vars := make([]solver.Var, 0, 2*len(m.problem.Roles))
			for _, r := range m.problem.Roles {
				vars = append(vars,
					m.vars[varKey{engineer: e, week: w, role: r.Code}],
					m.vars[varKey{engineer: e, week: w + 1, role: r.Code}])
			}
			m.sat.AddAtMost(vars, 1)
		}
	}
}

func (m *Model) emitMaxWorkload() {
	for _, e := range m.problem.Engineers {
		vars := make([]solver.Var, 0, m.problem.Weeks*len(m.problem.Roles))
		for w := 0; w < m.problem.Weeks; w++ {
			for _, r := range m.problem.Roles {
				vars = append(vars, m.vars[varKey{engineer: e, week: w, role: r.Code}])
			}
		}
		m.sat.AddAtMost(vars, m.problem.MaxShifts)
	}
}

func (m *Model) emitWeekendLimit() {
	role := m.problem.WeekendRole
	found := false
	for _, r := range m.problem.Roles {
		if r.Code == role {
			found = true
			break
		}
	}
	if !found {
		return
	}
	for _, e := range m.problem.Engineers {
		vars := make([]solver.Var, 0, m.problem.Weeks)
		for w := 0; w < m.problem.Weeks; w++ {
			vars = append(vars, m.vars[varKey{engineer: e, week: w, role: role}])
		}
		m.sat.AddAtMost(vars, m.problem.MaxWeekends)
	}
}

func (m *Model) emitRoleExclusivity() {
	for _, e := range m.problem.Engineers {
		for w := 0; w < m.problem.Weeks; w++ {
			vars := make([]solver.Var, 0, len(m.problem.Roles))
			for _, r := range m.problem.Roles {
				vars = append(vars, m.vars[varKey{engineer: e, week: w, role: r.Code}])
			}
			m.sat.AddAtMost(vars, 1)
		}
	}
}

func (m *Model) emitAvailability() {
	for _, e := range m.problem.Engineers {
		for w := 0; w < m.problem.Weeks; w++ {
			if m.problem.Availability.Available(e, w) {
				continue
			}
			for _, r := range m.problem.Roles {
				m.sat.AddForbid(m.vars[varKey{engineer: e, week: w, role: r.Code}])
			}
		}
	}
}
