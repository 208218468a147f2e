// internal/schedule/errors.go

package schedule

import (
	"fmt"
	"time"
)

// CapacityError reports a block whose demand structurally exceeds the
// person-shifts the roster can supply, before any solving happens.
type CapacityError struct {
	Block     int
	Required  int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("schedule: block %d needs %d person-shifts but at most %d are available",
		e.Block, e.Required, e.Available)
}

// InfeasibleError reports a block the solver proved unsatisfiable under the
// active rule set. The run aborts; earlier blocks are discarded.
type InfeasibleError struct {
	Block int
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("schedule: no feasible assignment for block %d", e.Block)
}

// TimeoutError reports a block whose solve exhausted the time budget without
// a proof either way. It aborts the run like infeasibility, but is reported
// distinctly: the remedy is a larger budget, not relaxed rules.
type TimeoutError struct {
	Block  int
	Budget time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("schedule: block %d exceeded the %s solver budget", e.Block, e.Budget)
}
