package solver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSolveExactlyOne(t *testing.T) {
	m := NewModel()
	a, b, c := m.NewVar(), m.NewVar(), m.NewVar()
	m.AddExactlyOne([]Var{a, b, c})
	m.AddForbid(a)
	m.AddForbid(b)

	res, err := NewBacktracking().Solve(m, time.Second)
	require.NoError(t, err)
	require.Equal(t, StatusFeasible, res.Status)
	require.False(t, res.Values[a])
	require.False(t, res.Values[b])
	require.True(t, res.Values[c])
}

func TestSolveInfeasibleWhenEveryCandidateForbidden(t *testing.T) {
	m := NewModel()
	a, b := m.NewVar(), m.NewVar()
	m.AddExactlyOne([]Var{a, b})
	m.AddForbid(a)
	m.AddForbid(b)

	res, err := NewBacktracking().Solve(m, time.Second)
	require.NoError(t, err)
	require.Equal(t, StatusInfeasible, res.Status)
}

func TestSolveHonorsUpperBounds(t *testing.T) {
	m := NewModel()
	vars := make([]Var, 6)
	for i := range vars {
		vars[i] = m.NewVar()
	}
	// Three disjoint pairs each need one; the global cap allows exactly three.
	for i := 0; i < 6; i += 2 {
		m.AddExactlyOne([]Var{vars[i], vars[i+1]})
	}
	m.AddAtMost(vars, 3)

	res, err := NewBacktracking().Solve(m, time.Second)
	require.NoError(t, err)
	require.Equal(t, StatusFeasible, res.Status)
	count := 0
	for _, v := range vars {
		if res.Values[v] {
			count++
		}
	}
	require.Equal(t, 3, count)
}

func TestSolvePigeonholeInfeasible(t *testing.T) {
	m := NewModel()
	a, b := m.NewVar(), m.NewVar()
	// Both variables must be 1 while exactly one may be: no valuation works.
	m.AddExactlyOne([]Var{a, b})
	m.AddConstraint([]Var{a, b}, 2, 2)

	res, err := NewBacktracking().Solve(m, time.Second)
	require.NoError(t, err)
	require.Equal(t, StatusInfeasible, res.Status)
}

func TestSolveTimeoutWithoutBudget(t *testing.T) {
	m := NewModel()
	a, b := m.NewVar(), m.NewVar()
	m.AddExactlyOne([]Var{a, b})

	res, err := NewBacktracking().Solve(m, -time.Second)
	require.NoError(t, err)
	require.Equal(t, StatusTimeout, res.Status)
}

func TestValidateRejectsBrokenConstraints(t *testing.T) {
	m := NewModel()
	a := m.NewVar()
	m.AddConstraint([]Var{a}, 2, 2)
	require.Error(t, m.Validate())

	m = NewModel()
	a = m.NewVar()
	m.AddConstraint([]Var{a, Var(7)}, 0, 1)
	require.Error(t, m.Validate())

	m = NewModel()
	a = m.NewVar()
	m.AddConstraint([]Var{a}, 1, 0)
	require.Error(t, m.Validate())
}

func TestSolveEmptyModelIsFeasible(t *testing.T) {
	m := NewModel()
	m.NewVar()
	res, err := NewBacktracking().Solve(m, time.Second)
	require.NoError(t, err)
	require.Equal(t, StatusFeasible, res.Status)
	require.Len(t, res.Values, 1)
}
