// internal/logging/observer.go

package logging

import (
	"time"

	"go.uber.org/zap"

	"oncall-scheduler/internal/schedule"
)

// ScheduleObserver turns scheduler progress events into structured log
// entries.
type ScheduleObserver struct {
	logger *zap.Logger
}

// NewScheduleObserver wraps a logger as a schedule.Observer.
func NewScheduleObserver(logger *zap.Logger) *ScheduleObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleObserver{logger: logger}
}

func (o *ScheduleObserver) BlockStarted(block int, start time.Time, weeks int) {
	o.logger.Info("solving block",
		zap.Int("block", block),
		zap.String("start", start.Format("2006-01-02")),
		zap.Int("weeks", weeks))
}

func (o *ScheduleObserver) BlockSolved(block int, elapsed time.Duration) {
	o.logger.Info("block solved",
		zap.Int("block", block),
		zap.Duration("elapsed", elapsed))
}

func (o *ScheduleObserver) BlockFailed(block int, err error, diag schedule.Diagnostics) {
	o.logger.Error("block failed",
		zap.Int("block", block),
		zap.Error(err),
		zap.Int("required_shifts", diag.RequiredShifts),
		zap.Int("available_shifts", diag.AvailableShifts),
		zap.Int("unavailable_slots", diag.UnavailableSlots))
}
