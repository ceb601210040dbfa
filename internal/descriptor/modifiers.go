package descriptor

import "fmt"

// Modifiers is a flag set describing symbol and member modifiers. The
// visibility flags are mutually exclusive; With keeps at most one of them
// set.
type Modifiers uint16

const (
	ModPublic Modifiers = 1 << iota
	ModProtected
	ModPrivate
	ModStatic
	ModFinal
	ModAbstract
	ModReadonly
)

const visibilityMask = ModPublic | ModProtected | ModPrivate

// modifierNames lists every flag in the order snapshots emit them.
var modifierNames = []struct {
	flag Modifiers
	name string
}{
	{ModPublic, "public"},
	{ModProtected, "protected"},
	{ModPrivate, "private"},
	{ModStatic, "static"},
	{ModFinal, "final"},
	{ModAbstract, "abstract"},
	{ModReadonly, "readonly"},
}

// Has reports whether every flag in mask is set.
func (m Modifiers) Has(mask Modifiers) bool {
	return m&mask == mask
}

// With returns a copy of m with the given flags set. Setting a visibility
// flag replaces any visibility flag already present.
func (m Modifiers) With(mask Modifiers) Modifiers {
	if mask&visibilityMask != 0 {
		m &^= visibilityMask
	}
	return m | mask
}

// Without returns a copy of m with the given flags cleared.
func (m Modifiers) Without(mask Modifiers) Modifiers {
	return m &^ mask
}

func (m Modifiers) IsPublic() bool    { return m.Has(ModPublic) }
func (m Modifiers) IsProtected() bool { return m.Has(ModProtected) }
func (m Modifiers) IsPrivate() bool   { return m.Has(ModPrivate) }
func (m Modifiers) IsStatic() bool    { return m.Has(ModStatic) }
func (m Modifiers) IsFinal() bool     { return m.Has(ModFinal) }
func (m Modifiers) IsAbstract() bool  { return m.Has(ModAbstract) }
func (m Modifiers) IsReadonly() bool  { return m.Has(ModReadonly) }

// Names returns the names of the set flags in a fixed order, so two equal
// flag sets always render identically.
func (m Modifiers) Names() []string {
	names := make([]string, 0, len(modifierNames))
	for _, entry := range modifierNames {
		if m.Has(entry.flag) {
			names = append(names, entry.name)
		}
	}
	return names
}

// ParseModifier maps a flag name from a snapshot or manifest back to its
// bit.
func ParseModifier(name string) (Modifiers, error) {
	for _, entry := range modifierNames {
		if entry.name == name {
			return entry.flag, nil
		}
	}
	return 0, fmt.Errorf("unknown modifier: %q", name)
}

// ParseModifiers folds a list of flag names into a single flag set.
func ParseModifiers(names []string) (Modifiers, error) {
	var mods Modifiers
	for _, name := range names {
		flag, err := ParseModifier(name)
		if err != nil {
			return 0, err
		}
		mods = mods.With(flag)
	}
	return mods, nil
}
