package descriptor

// Method describes one declared method of a symbol: its signature,
// modifiers, and attributes. Arguments are held in declaration order and
// owned exclusively by the method.
type Method struct {
	name       string
	returnType string
	mods       Modifiers
	args       []*Argument
	attrs      []*Attribute
}

// Name returns the method name.
func (m *Method) Name() string { return m.name }

// ReturnType returns the declared return type, "any" when the method
// declares none. Nullable types carry a leading "?".
func (m *Method) ReturnType() string { return m.returnType }

// Modifiers returns the method's modifier flags.
func (m *Method) Modifiers() Modifiers { return m.mods }

// Args returns a copy of the arguments in declaration order.
func (m *Method) Args() []*Argument {
	out := make([]*Argument, len(m.args))
	copy(out, m.args)
	return out
}

// Arg returns the argument with the given name, or nil when no parameter
// has that name.
func (m *Method) Arg(name string) *Argument {
	for _, arg := range m.args {
		if arg.name == name {
			return arg
		}
	}
	return nil
}

// Attributes returns a copy of the attributes attached to the method.
func (m *Method) Attributes() []*Attribute {
	out := make([]*Attribute, len(m.attrs))
	copy(out, m.attrs)
	return out
}

// Equal reports whether two methods describe the same declaration, field
// for field and argument for argument.
func (m *Method) Equal(other *Method) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.name != other.name ||
		m.returnType != other.returnType ||
		m.mods != other.mods ||
		len(m.args) != len(other.args) {
		return false
	}
	for i := range m.args {
		if !m.args[i].Equal(other.args[i]) {
			return false
		}
	}
	return attributesEqual(m.attrs, other.attrs)
}

// MethodBuilder assembles a Method.
type MethodBuilder struct {
	method Method
}

// NewMethod starts building a method descriptor with the given name.
func NewMethod(name string) *MethodBuilder {
	return &MethodBuilder{method: Method{name: name}}
}

// Returns sets the declared return type.
func (b *MethodBuilder) Returns(typeName string) *MethodBuilder {
	b.method.returnType = typeName
	return b
}

// Modifiers sets the method's modifier flags, replacing any set before.
func (b *MethodBuilder) Modifiers(mods Modifiers) *MethodBuilder {
	b.method.mods = mods
	return b
}

// Arg appends a parameter, assigning it the next declaration position.
func (b *MethodBuilder) Arg(arg *Argument) *MethodBuilder {
	b.method.args = append(b.method.args, arg.at(len(b.method.args)))
	return b
}

// Attribute attaches an attribute to the method.
func (b *MethodBuilder) Attribute(attr *Attribute) *MethodBuilder {
	b.method.attrs = append(b.method.attrs, attr)
	return b
}

// Build returns the finished method. An unset return type defaults to
// the universal "any".
func (b *MethodBuilder) Build() *Method {
	built := b.method
	if built.returnType == "" {
		built.returnType = "any"
	}
	built.args = make([]*Argument, len(b.method.args))
	copy(built.args, b.method.args)
	built.attrs = make([]*Attribute, len(b.method.attrs))
	copy(built.attrs, b.method.attrs)
	return &built
}
