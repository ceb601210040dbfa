package descriptor

// Property describes one declared property of a symbol.
type Property struct {
	name     string
	typeName string
	mods     Modifiers
	def      Value
	attrs    []*Attribute
}

// Name returns the property name, without any sigil.
func (p *Property) Name() string { return p.name }

// TypeName returns the declared type, "any" when the property is untyped.
// Nullable types carry a leading "?".
func (p *Property) TypeName() string { return p.typeName }

// Modifiers returns the property's modifier flags.
func (p *Property) Modifiers() Modifiers { return p.mods }

// Default returns the declared default literal, absent when the
// declaration carries none.
func (p *Property) Default() Value { return p.def }

// Attributes returns a copy of the attributes attached to the property.
func (p *Property) Attributes() []*Attribute {
	out := make([]*Attribute, len(p.attrs))
	copy(out, p.attrs)
	return out
}

// Equal reports whether two properties describe the same declaration,
// field for field.
func (p *Property) Equal(other *Property) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.name == other.name &&
		p.typeName == other.typeName &&
		p.mods == other.mods &&
		p.def.Equal(other.def) &&
		attributesEqual(p.attrs, other.attrs)
}

// PropertyBuilder assembles a Property.
type PropertyBuilder struct {
	prop Property
}

// NewProperty starts building a property descriptor with the given name.
func NewProperty(name string) *PropertyBuilder {
	return &PropertyBuilder{prop: Property{name: name}}
}

// Type sets the declared type.
func (b *PropertyBuilder) Type(typeName string) *PropertyBuilder {
	b.prop.typeName = typeName
	return b
}

// Modifiers sets the property's modifier flags, replacing any set before.
func (b *PropertyBuilder) Modifiers(mods Modifiers) *PropertyBuilder {
	b.prop.mods = mods
	return b
}

// Default sets the declared default literal.
func (b *PropertyBuilder) Default(value Value) *PropertyBuilder {
	b.prop.def = value
	return b
}

// Attribute attaches an attribute to the property.
func (b *PropertyBuilder) Attribute(attr *Attribute) *PropertyBuilder {
	b.prop.attrs = append(b.prop.attrs, attr)
	return b
}

// Build returns the finished property. An unset type defaults to the
// universal "any".
func (b *PropertyBuilder) Build() *Property {
	built := b.prop
	if built.typeName == "" {
		built.typeName = "any"
	}
	built.attrs = make([]*Attribute, len(b.prop.attrs))
	copy(built.attrs, b.prop.attrs)
	return &built
}
