package descriptor

// AttributeArg is one argument of an attribute declaration. An argument is
// keyed either by zero-based position or by parameter name, never both.
type AttributeArg struct {
	named bool
	index int
	name  string
	value Value
}

// PositionalArg returns an attribute argument keyed by position.
func PositionalArg(index int, value Value) AttributeArg {
	return AttributeArg{index: index, value: value}
}

// NamedArg returns an attribute argument keyed by parameter name.
func NamedArg(name string, value Value) AttributeArg {
	return AttributeArg{named: true, name: name, value: value}
}

// Named reports whether the argument is keyed by parameter name.
func (a AttributeArg) Named() bool { return a.named }

// Index returns the position of a positional argument. It is zero for
// named arguments.
func (a AttributeArg) Index() int { return a.index }

// Name returns the parameter name of a named argument. It is empty for
// positional arguments.
func (a AttributeArg) Name() string { return a.name }

// Value returns the argument's literal.
func (a AttributeArg) Value() Value { return a.value }

// Equal reports whether two arguments have the same key and literal.
func (a AttributeArg) Equal(other AttributeArg) bool {
	if a.named != other.named {
		return false
	}
	if a.named {
		if a.name != other.name {
			return false
		}
	} else if a.index != other.index {
		return false
	}
	return a.value.Equal(other.value)
}

// Attribute describes one attribute attached to a symbol, member, or
// argument: the attribute's qualified name plus its declaration arguments.
type Attribute struct {
	name string
	args []AttributeArg
}

// Name returns the attribute's qualified name.
func (a *Attribute) Name() string { return a.name }

// Args returns a copy of the declaration arguments in declaration order.
func (a *Attribute) Args() []AttributeArg {
	out := make([]AttributeArg, len(a.args))
	copy(out, a.args)
	return out
}

// Equal reports whether two attributes have the same name and the same
// arguments in the same order.
func (a *Attribute) Equal(other *Attribute) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.name != other.name || len(a.args) != len(other.args) {
		return false
	}
	for i := range a.args {
		if !a.args[i].Equal(other.args[i]) {
			return false
		}
	}
	return true
}

// AttributeBuilder assembles an Attribute. Build returns the finished
// immutable attribute; the builder can keep accumulating afterwards
// without affecting what it already produced.
type AttributeBuilder struct {
	name       string
	args       []AttributeArg
	positional int
}

// NewAttribute starts building an attribute with the given qualified name.
func NewAttribute(name string) *AttributeBuilder {
	return &AttributeBuilder{name: name}
}

// Positional appends a positional argument, assigning the next free
// position.
func (b *AttributeBuilder) Positional(value Value) *AttributeBuilder {
	b.args = append(b.args, PositionalArg(b.positional, value))
	b.positional++
	return b
}

// PositionalAt appends a positional argument at an explicit position. Used
// when rebuilding an attribute from stored form, where positions are
// already assigned.
func (b *AttributeBuilder) PositionalAt(index int, value Value) *AttributeBuilder {
	b.args = append(b.args, PositionalArg(index, value))
	if index >= b.positional {
		b.positional = index + 1
	}
	return b
}

// Named appends an argument keyed by parameter name.
func (b *AttributeBuilder) Named(name string, value Value) *AttributeBuilder {
	b.args = append(b.args, NamedArg(name, value))
	return b
}

// Build returns the finished attribute.
func (b *AttributeBuilder) Build() *Attribute {
	args := make([]AttributeArg, len(b.args))
	copy(args, b.args)
	return &Attribute{name: b.name, args: args}
}
