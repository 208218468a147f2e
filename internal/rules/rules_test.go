package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultSelectionEnablesEveryRule(t *testing.T) {
	sel := DefaultSelection()
	require.Len(t, sel, len(All()))
	for _, n := range All() {
		require.True(t, sel.Enabled(n), "rule %s should default to enabled", n)
	}
}

func TestSelectionEnabledDefaults(t *testing.T) {
	var nilSel Selection
	require.True(t, nilSel.Enabled(RosterCompleteness))

	partial := Selection{NoConsecutiveWeeks: false}
	require.False(t, partial.Enabled(NoConsecutiveWeeks))
	require.True(t, partial.Enabled(RosterCompleteness))
}

func TestParseSelectionOverridesDefaults(t *testing.T) {
	sel, err := ParseSelection(map[string]bool{
		"no-consecutive-weeks": false,
		"weekend-limit":        false,
	})
	require.NoError(t, err)
	require.False(t, sel.Enabled(NoConsecutiveWeeks))
	require.False(t, sel.Enabled(WeekendLimit))
	require.True(t, sel.Enabled(RosterCompleteness))
	require.True(t, sel.Enabled(Availability))
}

func TestParseSelectionRejectsUnknownRule(t *testing.T) {
	_, err := ParseSelection(map[string]bool{"no-consecutve-weeks": false})
	require.Error(t, err)
	require.Contains(t, err.Error(), "no-consecutve-weeks")
}

func TestParseSelectionEmptyYieldsDefaults(t *testing.T) {
	sel, err := ParseSelection(nil)
	require.NoError(t, err)
	require.Equal(t, DefaultSelection(), sel)
}
