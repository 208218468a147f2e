package logging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"oncall-scheduler/internal/schedule"
)

func TestNewAcceptsKnownLevelsAndFormats(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		for _, format := range []string{"", "console", "json"} {
			logger, err := New(level, format)
			require.NoError(t, err, "level %q format %q", level, format)
			require.NotNil(t, logger)
		}
	}
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	_, err := New("loud", "console")
	require.Error(t, err)
	_, err = New("info", "xml")
	require.Error(t, err)
}

func TestScheduleObserverToleratesNilLogger(t *testing.T) {
	obs := NewScheduleObserver(nil)
	obs.BlockStarted(0, time.Now(), 12)
	obs.BlockSolved(0, time.Second)
	obs.BlockFailed(0, nil, schedule.Diagnostics{})
}

func TestScheduleObserverImplementsInterface(t *testing.T) {
	var _ schedule.Observer = NewScheduleObserver(zap.NewNop())
}
