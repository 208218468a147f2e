// internal/schedule/observer.go
//
// Progress reporting is pushed through an injected Observer instead of a
// process-wide print channel, so callers decide whether events become
// structured logs, terminal output, or nothing.

package schedule

import "time"

// Observer receives progress events while a run advances block by block.
type Observer interface {
	// BlockStarted fires when a block's solve begins.
	BlockStarted(block int, start time.Time, weeks int)
	// BlockSolved fires after a block's assignment is decoded.
	BlockSolved(block int, elapsed time.Duration)
	// BlockFailed fires when a block aborts the run. Diagnostics carries the
	// capacity arithmetic operators need to judge the failure.
	BlockFailed(block int, err error, diag Diagnostics)
}

// Diagnostics summarizes a block's supply and demand at failure time.
type Diagnostics struct {
	RequiredShifts   int
	AvailableShifts  int
	UnavailableSlots int
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) BlockStarted(int, time.Time, int)    {}
func (NopObserver) BlockSolved(int, time.Duration)      {}
func (NopObserver) BlockFailed(int, error, Diagnostics) {}
