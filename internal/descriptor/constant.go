package descriptor

// Constant describes one declared constant of a symbol. Unlike a property
// default, a constant always has a value.
type Constant struct {
	name     string
	typeName string
	value    Value
	mods     Modifiers
	attrs    []*Attribute
}

// Name returns the constant name.
func (c *Constant) Name() string { return c.name }

// TypeName returns the declared type, "any" when the declaration carries
// none.
func (c *Constant) TypeName() string { return c.typeName }

// Value returns the constant's literal.
func (c *Constant) Value() Value { return c.value }

// Modifiers returns the constant's modifier flags.
func (c *Constant) Modifiers() Modifiers { return c.mods }

// Attributes returns a copy of the attributes attached to the constant.
func (c *Constant) Attributes() []*Attribute {
	out := make([]*Attribute, len(c.attrs))
	copy(out, c.attrs)
	return out
}

// Equal reports whether two constants describe the same declaration,
// field for field.
func (c *Constant) Equal(other *Constant) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.name == other.name &&
		c.typeName == other.typeName &&
		c.mods == other.mods &&
		c.value.Equal(other.value) &&
		attributesEqual(c.attrs, other.attrs)
}

// ConstantBuilder assembles a Constant.
type ConstantBuilder struct {
	cons Constant
}

// NewConstant starts building a constant descriptor with the given name
// and literal.
func NewConstant(name string, value Value) *ConstantBuilder {
	return &ConstantBuilder{cons: Constant{name: name, value: value}}
}

// Type sets the declared type.
func (b *ConstantBuilder) Type(typeName string) *ConstantBuilder {
	b.cons.typeName = typeName
	return b
}

// Modifiers sets the constant's modifier flags, replacing any set before.
func (b *ConstantBuilder) Modifiers(mods Modifiers) *ConstantBuilder {
	b.cons.mods = mods
	return b
}

// Attribute attaches an attribute to the constant.
func (b *ConstantBuilder) Attribute(attr *Attribute) *ConstantBuilder {
	b.cons.attrs = append(b.cons.attrs, attr)
	return b
}

// Build returns the finished constant. An unset type defaults to the
// universal "any".
func (b *ConstantBuilder) Build() *Constant {
	built := b.cons
	if built.typeName == "" {
		built.typeName = "any"
	}
	built.attrs = make([]*Attribute, len(b.cons.attrs))
	copy(built.attrs, b.cons.attrs)
	return &built
}
