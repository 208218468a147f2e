// internal/solver/solver.go
//
// Declarative model handed to the constraint solver: boolean variables plus
// cardinality constraints bounding how many variables in a set may be 1. The
// scheduling packages build a Model, pass it to a Solver with a time budget,
// and read back a 0/1 valuation.

package solver

import (
	"fmt"
	"time"
)

// Var identifies one boolean decision variable within a Model.
type Var int

// Constraint bounds the number of true variables in Vars to [Min, Max].
type Constraint struct {
	Vars []Var
	Min  int
	Max  int
}

// Model is a set of boolean variables and cardinality constraints over them.
// A Model is built once, solved once, and discarded.
type Model struct {
	numVars     int
	constraints []Constraint
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{}
}

// NewVar allocates a fresh boolean variable.
func (m *Model) NewVar() Var {
	v := Var(m.numVars)
	m.numVars++
	return v
}

// NumVars returns the number of allocated variables.
func (m *Model) NumVars() int { return m.numVars }

// AddConstraint requires that between min and max of vars are 1.
func (m *Model) AddConstraint(vars []Var, min, max int) {
	m.constraints = append(m.constraints, Constraint{Vars: vars, Min: min, Max: max})
}

// AddExactlyOne requires exactly one of vars to be 1.
func (m *Model) AddExactlyOne(vars []Var) {
	m.AddConstraint(vars, 1, 1)
}

// AddAtMost requires at most k of vars to be 1.
func (m *Model) AddAtMost(vars []Var, k int) {
	m.AddConstraint(vars, 0, k)
}

// AddForbid forces v to 0.
func (m *Model) AddForbid(v Var) {
	m.AddConstraint([]Var{v}, 0, 0)
}

// Status is the outcome of a solve attempt.
type Status string

const (
	// StatusFeasible means a satisfying valuation was found.
	StatusFeasible Status = "feasible"
	// StatusInfeasible means the solver proved no valuation satisfies the model.
	StatusInfeasible Status = "infeasible"
	// StatusTimeout means the time budget expired without a proof either way.
	StatusTimeout Status = "timeout"
)

// Result carries the solve status and, when feasible, the valuation indexed
// by Var.
type Result struct {
	Status Status
	Values []bool
}

// Solver is the search collaborator. Implementations must return within
// roughly the given budget; exceeding it without a feasible valuation or an
// infeasibility proof yields StatusTimeout.
type Solver interface {
	Solve(m *Model, budget time.Duration) (Result, error)
}

// Validate checks the model for structurally impossible constraints before
// any search runs.
func (m *Model) Validate() error {
	for i, c := range m.constraints {
		if c.Min > len(c.Vars) {
			return fmt.Errorf("solver: constraint %d requires %d of %d variables", i, c.Min, len(c.Vars))
		}
		if c.Min > c.Max {
			return fmt.Errorf("solver: constraint %d has min %d above max %d", i, c.Min, c.Max)
		}
		for _, v := range c.Vars {
			if int(v) < 0 || int(v) >= m.numVars {
				return fmt.Errorf("solver: constraint %d references unknown variable %d", i, v)
			}
		}
	}
	return nil
}
