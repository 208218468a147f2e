// internal/solver/backtrack.go
//
// Default Solver implementation: depth-first search with bounds propagation.
// Each unsatisfied lower-bound constraint becomes a branching point; forced
// assignments (a constraint at its max, or needing every free variable) are
// propagated to a fixpoint before the next decision.

package solver

import (
	"time"
)

const unset = int8(-1)

// Backtracking is the built-in search engine. It is stateless and safe to
// reuse across models.
type Backtracking struct{}

// NewBacktracking returns the default solver.
func NewBacktracking() *Backtracking {
	return &Backtracking{}
}

// Solve searches for a valuation satisfying every constraint in m.
func (b *Backtracking) Solve(m *Model, budget time.Duration) (Result, error) {
	if err := m.Validate(); err != nil {
		return Result{}, err
	}
	s := newSearch(m, budget)
	// Seed propagation with single-variable bounds (forbids and forces).
	for _, c := range m.constraints {
		if len(c.Vars) != 1 {
			continue
		}
		if c.Max == 0 && !s.assign(c.Vars[0], 0) {
			return Result{Status: StatusInfeasible}, nil
		}
		if c.Min == 1 && !s.assign(c.Vars[0], 1) {
			return Result{Status: StatusInfeasible}, nil
		}
	}
	status := s.run()
	res := Result{Status: status}
	if status == StatusFeasible {
		res.Values = make([]bool, m.numVars)
		for v, val := range s.values {
			res.Values[v] = val == 1
		}
	}
	return res, nil
}

type search struct {
	model    *Model
	values   []int8
	ones     []int // true vars per constraint
	free     []int // unassigned vars per constraint
	occurs   [][]int
	trail    []Var
	lower    []int // indices of constraints with Min > 0
	deadline time.Time
}

func newSearch(m *Model, budget time.Duration) *search {
	s := &search{
		model:    m,
		values:   make([]int8, m.numVars),
		ones:     make([]int, len(m.constraints)),
		free:     make([]int, len(m.constraints)),
		occurs:   make([][]int, m.numVars),
		deadline: time.Now().Add(budget),
	}
	for i := range s.values {
		s.values[i] = unset
	}
	for ci, c := range m.constraints {
		s.free[ci] = len(c.Vars)
		if c.Min > 0 {
			s.lower = append(s.lower, ci)
		}
		for _, v := range c.Vars {
			s.occurs[v] = append(s.occurs[v], ci)
		}
	}
	return s
}

// run is the recursive search. It returns StatusTimeout as soon as the
// deadline passes; the partial state is abandoned by the caller.
func (s *search) run() Status {
	if time.Now().After(s.deadline) {
		return StatusTimeout
	}
	ci := s.pick()
	if ci < 0 {
		// No lower bound is unsatisfied; zeroing the remaining variables
		// cannot violate any upper bound.
		for v := range s.values {
			if s.values[v] == unset && !s.assign(Var(v), 0) {
				return StatusInfeasible
			}
		}
		return StatusFeasible
	}
	mark := len(s.trail)
	for _, v := range s.model.constraints[ci].Vars {
		if s.values[v] != unset {
			continue
		}
		probe := len(s.trail)
		if s.assign(v, 1) {
			if st := s.run(); st != StatusInfeasible {
				return st
			}
		}
		s.undo(probe)
		if !s.assign(v, 0) {
			s.undo(mark)
			return StatusInfeasible
		}
	}
	// Propagation while zeroing candidates may have satisfied the lower
	// bound through another constraint; that sub-space still counts.
	if s.ones[ci] >= s.model.constraints[ci].Min {
		if st := s.run(); st != StatusInfeasible {
			return st
		}
	}
	s.undo(mark)
	return StatusInfeasible
}

// pick selects the unsatisfied lower-bound constraint with the fewest free
// variables (fail-first). Returns -1 when every lower bound is met.
func (s *search) pick() int {
	best, bestFree := -1, 0
	for _, ci := range s.lower {
		if s.ones[ci] >= s.model.constraints[ci].Min {
			continue
		}
		if best < 0 || s.free[ci] < bestFree {
			best, bestFree = ci, s.free[ci]
		}
	}
	return best
}

// assign sets v and propagates all consequences. It returns false on
// conflict, leaving the trail consistent so the caller can undo to a mark.
func (s *search) assign(v Var, val int8) bool {
	type pending struct {
		v   Var
		val int8
	}
	queue := []pending{{v, val}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if cur := s.values[p.v]; cur != unset {
			if cur != p.val {
				return false
			}
			continue
		}
		s.values[p.v] = p.val
		s.trail = append(s.trail, p.v)
		for _, ci := range s.occurs[p.v] {
			c := &s.model.constraints[ci]
			s.free[ci]--
			if p.val == 1 {
				s.ones[ci]++
			}
			if s.ones[ci] > c.Max {
				return false
			}
			if s.ones[ci]+s.free[ci] < c.Min {
				return false
			}
			if s.free[ci] == 0 {
				continue
			}
			if s.ones[ci] == c.Max {
				for _, w := range c.Vars {
					if s.values[w] == unset {
						queue = append(queue, pending{w, 0})
					}
				}
			} else if s.ones[ci]+s.free[ci] == c.Min {
				for _, w := range c.Vars {
					if s.values[w] == unset {
						queue = append(queue, pending{w, 1})
					}
				}
			}
		}
	}
	return true
}

func (s *search) undo(mark int) {
	for len(s.trail) > mark {
		v := s.trail[len(s.trail)-1]
		s.trail = s.trail[:len(s.trail)-1]
		val := s.values[v]
		s.values[v] = unset
		for _, ci := range s.occurs[v] {
			s.free[ci]++
			if val == 1 {
				s.ones[ci]--
			}
		}
	}
}
