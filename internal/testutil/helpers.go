package testutil

import (
	"testing"

	"github.com/mitchelldurbincs/GridCombat/internal/game/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// MustParse parses a map with default stats and fails the test on error
func MustParse(t testing.TB, text string) *core.Registry {
	t.Helper()
	return MustParseWithStats(t, text, core.DefaultUnitStats())
}

// MustParseWithStats parses a map with the given stats and fails the test on error
func MustParseWithStats(t testing.TB, text string, stats core.UnitStats) *core.Registry {
	t.Helper()
	_, reg, err := core.ParseMap(text, stats)
	require.NoError(t, err)
	return reg
}

// UnitAt returns the living unit at (x, y) and fails the test if there is none
func UnitAt(t testing.TB, reg *core.Registry, x, y int) *core.Unit {
	t.Helper()
	u, ok := reg.UnitAt(core.NewCoordinate(x, y))
	require.True(t, ok, "expected a unit at (%d,%d)", x, y)
	return u
}

// AssertPanic asserts that the given function panics
func AssertPanic(t *testing.T, f func(), msgAndArgs ...interface{}) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic but none occurred: %v", msgAndArgs)
		}
	}()
	f()
}
