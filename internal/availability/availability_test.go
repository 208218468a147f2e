package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Monday, November 3, 2025.
var blockStart = date(2025, time.November, 3)

func TestResolveDefaultsToAvailable(t *testing.T) {
	table, err := Resolve(Request{
		Engineers:  []string{"Alice", "Bob"},
		Weeks:      3,
		BlockStart: blockStart,
	})
	require.NoError(t, err)
	require.Len(t, table, 6)
	for e := range map[string]bool{"Alice": true, "Bob": true} {
		for w := 0; w < 3; w++ {
			require.True(t, table.Available(e, w))
		}
	}
	require.Zero(t, table.Unavailable())
}

func TestResolveDateRangeBansOverlappingWeeks(t *testing.T) {
	// Wednesday of week 0 through Tuesday of week 1: both weeks are banned,
	// week 2 is untouched.
	table, err := Resolve(Request{
		Engineers:  []string{"Diana"},
		Weeks:      3,
		BlockStart: blockStart,
		Absences: []Absence{
			{Engineer: "Diana", From: date(2025, time.November, 5), To: date(2025, time.November, 11)},
		},
	})
	require.NoError(t, err)
	require.False(t, table.Available("Diana", 0))
	require.False(t, table.Available("Diana", 1))
	require.True(t, table.Available("Diana", 2))
}

func TestResolveRangeBoundariesAreInclusive(t *testing.T) {
	// Ending exactly on week 1's Monday still bans week 1; starting exactly
	// on week 0's Sunday still bans week 0.
	table, err := Resolve(Request{
		Engineers:  []string{"Bob"},
		Weeks:      2,
		BlockStart: blockStart,
		Absences: []Absence{
			{Engineer: "Bob", From: date(2025, time.November, 9), To: date(2025, time.November, 10)},
		},
	})
	require.NoError(t, err)
	require.False(t, table.Available("Bob", 0))
	require.False(t, table.Available("Bob", 1))
}

func TestResolveOverrideWinsOverDateRange(t *testing.T) {
	table, err := Resolve(Request{
		Engineers:  []string{"Diana"},
		Weeks:      2,
		BlockStart: blockStart,
		Absences: []Absence{
			{Engineer: "Diana", From: blockStart, To: blockStart.AddDate(0, 0, 13)},
		},
		Overrides: []Override{
			{Engineer: "Diana", Week: 1, Available: true},
		},
	})
	require.NoError(t, err)
	require.False(t, table.Available("Diana", 0))
	require.True(t, table.Available("Diana", 1))
}

func TestResolveBoundaryBanWinsOverEverything(t *testing.T) {
	table, err := Resolve(Request{
		Engineers:  []string{"Alice"},
		Weeks:      2,
		BlockStart: blockStart,
		Overrides: []Override{
			{Engineer: "Alice", Week: 0, Available: true},
		},
		BoundaryBan: []string{"Alice"},
	})
	require.NoError(t, err)
	require.False(t, table.Available("Alice", 0))
	require.True(t, table.Available("Alice", 1))
}

func TestResolveRejectsInvertedRange(t *testing.T) {
	_, err := Resolve(Request{
		Engineers:  []string{"Alice"},
		Weeks:      1,
		BlockStart: blockStart,
		Absences: []Absence{
			{Engineer: "Alice", From: blockStart.AddDate(0, 0, 3), To: blockStart},
		},
	})
	require.Error(t, err)
}

func TestResolveComparesAbsenceDatesInBlockLocation(t *testing.T) {
	// Absence dates arrive as UTC midnights; the block runs in another zone.
	// The calendar days must still line up with the block's weeks.
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Week 0's Sunday. UTC midnight Nov 9 is already Nov 9 09:00 in Tokyo;
	// compared as instants the absence would miss the week entirely.
	table, err := Resolve(Request{
		Engineers:  []string{"Alice"},
		Weeks:      2,
		BlockStart: time.Date(2025, time.November, 3, 0, 0, 0, 0, tokyo),
		Absences: []Absence{
			{Engineer: "Alice", From: date(2025, time.November, 9), To: date(2025, time.November, 9)},
		},
	})
	require.NoError(t, err)
	require.False(t, table.Available("Alice", 0))
	require.True(t, table.Available("Alice", 1))

	// Week 0's Monday, with the block west of UTC: the UTC instant lands
	// before the block's Monday midnight.
	table, err = Resolve(Request{
		Engineers:  []string{"Bob"},
		Weeks:      2,
		BlockStart: time.Date(2025, time.November, 3, 0, 0, 0, 0, newYork),
		Absences: []Absence{
			{Engineer: "Bob", From: date(2025, time.November, 3), To: date(2025, time.November, 3)},
		},
	})
	require.NoError(t, err)
	require.False(t, table.Available("Bob", 0))
	require.True(t, table.Available("Bob", 1))
}

func TestResolveIgnoresEngineersOffRoster(t *testing.T) {
	table, err := Resolve(Request{
		Engineers:  []string{"Alice"},
		Weeks:      2,
		BlockStart: blockStart,
		Absences: []Absence{
			{Engineer: "Zoe", From: blockStart, To: blockStart.AddDate(0, 0, 13)},
		},
		Overrides: []Override{
			{Engineer: "Yuri", Week: 0, Available: false},
		},
		BoundaryBan: []string{"Xavier"},
	})
	require.NoError(t, err)
	require.Len(t, table, 2)
	require.Zero(t, table.Unavailable())
}

func TestResolveIgnoresOverridesOutsideBlock(t *testing.T) {
	table, err := Resolve(Request{
		Engineers:  []string{"Alice"},
		Weeks:      2,
		BlockStart: blockStart,
		Overrides: []Override{
			{Engineer: "Alice", Week: 5, Available: false},
			{Engineer: "Alice", Week: -1, Available: false},
		},
	})
	require.NoError(t, err)
	require.Zero(t, table.Unavailable())
}
