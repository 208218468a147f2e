// internal/schedule/scheduler.go
//
// Scheduler is the rolling orchestrator. Blocks are solved strictly in
// order: each block's availability folds in the boundary ban derived from
// the previous block's final week, so no engineer works back-to-back across
// a block seam even though every block is an independent model. Solving one
// global model instead would be simpler here but its size grows with the
// whole horizon; the per-block stitch keeps the decision space bounded.

package schedule

import (
	"fmt"
	"time"

	"oncall-scheduler/internal/availability"
	"oncall-scheduler/internal/roster"
	"oncall-scheduler/internal/rules"
	"oncall-scheduler/internal/solver"
)

// DefaultBudget is the per-block solver time budget when none is configured.
const DefaultBudget = 60 * time.Second

// Plan is the full input for one scheduling run.
type Plan struct {
	Engineers []string
	Roles     []roster.Role
	// Start is the Monday the first block's first week begins on.
	Start         time.Time
	NumBlocks     int
	WeeksPerBlock int
	MaxShifts     int
	MaxWeekends   int
	WeekendRole   string
	Rules         rules.Selection
	Absences      []availability.Absence
	Overrides     []availability.Override
}

// Scheduler runs a Plan against a solver collaborator.
type Scheduler struct {
	solver   solver.Solver
	observer Observer
	budget   time.Duration
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithObserver installs a progress observer.
func WithObserver(obs Observer) Option {
	return func(s *Scheduler) {
		if obs != nil {
			s.observer = obs
		}
	}
}

// WithBudget sets the per-block solver time budget.
func WithBudget(budget time.Duration) Option {
	return func(s *Scheduler) {
		if budget > 0 {
			s.budget = budget
		}
	}
}

// New wires a Scheduler to its solver collaborator.
func New(slv solver.Solver, opts ...Option) (*Scheduler, error) {
	if slv == nil {
		return nil, fmt.Errorf("schedule: solver is required")
	}
	s := &Scheduler{
		solver:   slv,
		observer: NopObserver{},
		budget:   DefaultBudget,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run solves every block in sequence. The first failure aborts the whole
// run and nothing is returned: a partially valid roster is never emitted.
func (s *Scheduler) Run(plan Plan) ([]roster.ScheduleBlock, error) {
	if err := validatePlan(plan); err != nil {
		return nil, err
	}
	selection := plan.Rules
	if selection == nil {
		selection = rules.DefaultSelection()
	}

	blocks := make([]roster.ScheduleBlock, 0, plan.NumBlocks)
	var boundaryBan []string
	for i := 0; i < plan.NumBlocks; i++ {
		blockStart := plan.Start.AddDate(0, 0, 7*plan.WeeksPerBlock*i)
		s.observer.BlockStarted(i, blockStart, plan.WeeksPerBlock)

		table, err := availability.Resolve(availability.Request{
			Engineers:   plan.Engineers,
			Weeks:       plan.WeeksPerBlock,
			BlockStart:  blockStart,
			Absences:    plan.Absences,
			Overrides:   overridesForBlock(plan, i),
			BoundaryBan: boundaryBan,
		})
		if err != nil {
			return nil, err
		}

		diag := diagnose(plan, table)
		if err := s.checkCapacity(i, diag); err != nil {
			s.observer.BlockFailed(i, err, diag)
			return nil, err
		}

		model, err := rules.Build(rules.Problem{
			Engineers:    plan.Engineers,
			Weeks:        plan.WeeksPerBlock,
			Roles:        plan.Roles,
			MaxShifts:    plan.MaxShifts,
			MaxWeekends:  plan.MaxWeekends,
			WeekendRole:  plan.WeekendRole,
			Availability: table,
		}, selection)
		if err != nil {
			return nil, err
		}

		solveStart := time.Now()
		assignment, status, err := model.Solve(s.solver, s.budget)
		if err != nil {
			return nil, err
		}
		switch status {
		case solver.StatusFeasible:
			// keep going below
		case solver.StatusTimeout:
			failure := &TimeoutError{Block: i, Budget: s.budget}
			s.observer.BlockFailed(i, failure, diag)
			return nil, failure
		default:
			failure := &InfeasibleError{Block: i}
			s.observer.BlockFailed(i, failure, diag)
			return nil, failure
		}

		block := roster.ScheduleBlock{
			Index:      i,
			Start:      blockStart,
			Weeks:      plan.WeeksPerBlock,
			Assignment: assignment,
		}
		blocks = append(blocks, block)
		s.observer.BlockSolved(i, time.Since(solveStart))

		// The seam constraint is applied unconditionally: the two blocks are
		// separate models, so the no-consecutive-weeks rule alone cannot see
		// across the boundary.
		if i < plan.NumBlocks-1 {
			boundaryBan = finalWeekAssignees(block, plan.Roles)
		}
	}
	return blocks, nil
}

// CheckCapacity runs the structural supply check for every block of the plan
// without solving anything. Used by `oncall validate`.
func (s *Scheduler) CheckCapacity(plan Plan) (Diagnostics, error) {
	if err := validatePlan(plan); err != nil {
		return Diagnostics{}, err
	}
	var worst Diagnostics
	for i := 0; i < plan.NumBlocks; i++ {
		table, err := availability.Resolve(availability.Request{
			Engineers:  plan.Engineers,
			Weeks:      plan.WeeksPerBlock,
			BlockStart: plan.Start.AddDate(0, 0, 7*plan.WeeksPerBlock*i),
			Absences:   plan.Absences,
			Overrides:  overridesForBlock(plan, i),
		})
		if err != nil {
			return Diagnostics{}, err
		}
		diag := diagnose(plan, table)
		if i == 0 || diag.AvailableShifts < worst.AvailableShifts {
			worst = diag
		}
		if err := s.checkCapacity(i, diag); err != nil {
			return diag, err
		}
	}
	return worst, nil
}

func (s *Scheduler) checkCapacity(block int, diag Diagnostics) error {
	if diag.AvailableShifts < diag.RequiredShifts {
		return &CapacityError{
			Block:     block,
			Required:  diag.RequiredShifts,
			Available: diag.AvailableShifts,
		}
	}
	return nil
}

// diagnose computes a block's demand against the shifts the roster can still
// supply. An engineer contributes at most MaxShifts, and no more than the
// weeks they are actually available.
func diagnose(plan Plan, table availability.Table) Diagnostics {
	required := plan.WeeksPerBlock * len(plan.Roles)
	available := 0
	for _, e := range plan.Engineers {
		weeksFree := 0
		for w := 0; w < plan.WeeksPerBlock; w++ {
			if table.Available(e, w) {
				weeksFree++
			}
		}
		if weeksFree < plan.MaxShifts {
			available += weeksFree
		} else {
			available += plan.MaxShifts
		}
	}
	return Diagnostics{
		RequiredShifts:   required,
		AvailableShifts:  available,
		UnavailableSlots: table.Unavailable(),
	}
}

// finalWeekAssignees collects the engineers working any role in the block's
// last week; they form the next block's boundary ban.
func finalWeekAssignees(block roster.ScheduleBlock, roles []roster.Role) []string {
	last := block.Weeks - 1
	seen := make(map[string]bool, len(roles))
	var banned []string
	for _, r := range roles {
		if e, ok := block.Assignment.Engineer(last, r.Code); ok && !seen[e] {
			seen[e] = true
			banned = append(banned, e)
		}
	}
	return banned
}

func overridesForBlock(plan Plan, block int) []availability.Override {
	if len(plan.Overrides) == 0 {
		return nil
	}
	// Override weeks are absolute across the run; translate to block-relative
	// indices and keep only those landing inside this block.
	lo := block * plan.WeeksPerBlock
	hi := lo + plan.WeeksPerBlock
	var out []availability.Override
	for _, o := range plan.Overrides {
		if o.Week >= lo && o.Week < hi {
			out = append(out, availability.Override{
				Engineer:  o.Engineer,
				Week:      o.Week - lo,
				Available: o.Available,
			})
		}
	}
	return out
}

func validatePlan(plan Plan) error {
	if len(plan.Engineers) == 0 {
		return fmt.Errorf("schedule: plan has no engineers")
	}
	if len(plan.Roles) == 0 {
		return fmt.Errorf("schedule: plan has no roles")
	}
	if plan.NumBlocks <= 0 {
		return fmt.Errorf("schedule: num blocks must be positive, got %d", plan.NumBlocks)
	}
	if plan.WeeksPerBlock <= 0 {
		return fmt.Errorf("schedule: weeks per block must be positive, got %d", plan.WeeksPerBlock)
	}
	if plan.MaxShifts <= 0 {
		return fmt.Errorf("schedule: max shifts must be positive, got %d", plan.MaxShifts)
	}
	if plan.MaxWeekends < 0 {
		return fmt.Errorf("schedule: max weekends must not be negative, got %d", plan.MaxWeekends)
	}
	return nil
}
