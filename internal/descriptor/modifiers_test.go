package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for modifier flags:
//
// 1. With sets flags and keeps at most one visibility flag
// 2. Without clears flags
// 3. Names renders set flags in a fixed order
// 4. ParseModifiers rebuilds a flag set from names and rejects unknowns

func TestModifiersVisibilityExclusive(t *testing.T) {
	t.Parallel()

	mods := Modifiers(0).With(ModPublic)
	assert.True(t, mods.IsPublic())

	mods = mods.With(ModPrivate)
	assert.True(t, mods.IsPrivate())
	assert.False(t, mods.IsPublic(), "setting a visibility flag must clear the previous one")

	mods = mods.With(ModStatic).With(ModFinal)
	assert.True(t, mods.IsPrivate(), "non-visibility flags must not disturb visibility")
	assert.True(t, mods.IsStatic())
	assert.True(t, mods.IsFinal())
}

func TestModifiersWithout(t *testing.T) {
	t.Parallel()

	mods := Modifiers(0).With(ModProtected | ModStatic | ModReadonly)
	mods = mods.Without(ModStatic)

	assert.False(t, mods.IsStatic())
	assert.True(t, mods.IsProtected())
	assert.True(t, mods.IsReadonly())
}

func TestModifiersNamesOrder(t *testing.T) {
	t.Parallel()

	// Flags set in scrambled order still render in the fixed order.
	mods := Modifiers(0).With(ModAbstract).With(ModStatic).With(ModProtected)
	assert.Equal(t, []string{"protected", "static", "abstract"}, mods.Names())

	assert.Empty(t, Modifiers(0).Names())
}

func TestParseModifiers(t *testing.T) {
	t.Parallel()

	mods, err := ParseModifiers([]string{"private", "static", "final"})
	require.NoError(t, err)
	assert.True(t, mods.IsPrivate())
	assert.True(t, mods.IsStatic())
	assert.True(t, mods.IsFinal())

	round, err := ParseModifiers(mods.Names())
	require.NoError(t, err)
	assert.Equal(t, mods, round)

	_, err = ParseModifiers([]string{"public", "synchronized"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "synchronized")
}
