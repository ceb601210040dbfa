package descriptor

// Argument describes one declared parameter of a method. Its position is
// assigned by the owning MethodBuilder when the argument is added, so the
// declaration order and the stored positions cannot disagree.
type Argument struct {
	name     string
	position int
	typeName string
	optional bool
	def      Value
	variadic bool
	byRef    bool
	attrs    []*Attribute
}

// Name returns the parameter name, without any sigil.
func (a *Argument) Name() string { return a.name }

// Position returns the zero-based declaration position within the owning
// method.
func (a *Argument) Position() int { return a.position }

// TypeName returns the declared type, or "" when the parameter is
// untyped.
func (a *Argument) TypeName() string { return a.typeName }

// Optional reports whether the parameter may be omitted at a call site.
func (a *Argument) Optional() bool { return a.optional }

// Default returns the declared default literal. It is absent when the
// declaration carries none; an explicit null default is distinct from
// that.
func (a *Argument) Default() Value { return a.def }

// Variadic reports whether the parameter collects trailing arguments.
func (a *Argument) Variadic() bool { return a.variadic }

// ByRef reports whether the parameter is passed by reference.
func (a *Argument) ByRef() bool { return a.byRef }

// Attributes returns a copy of the attributes attached to the parameter.
func (a *Argument) Attributes() []*Attribute {
	out := make([]*Attribute, len(a.attrs))
	copy(out, a.attrs)
	return out
}

// Equal reports whether two arguments describe the same parameter, field
// for field.
func (a *Argument) Equal(other *Argument) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.name != other.name ||
		a.position != other.position ||
		a.typeName != other.typeName ||
		a.optional != other.optional ||
		a.variadic != other.variadic ||
		a.byRef != other.byRef {
		return false
	}
	if !a.def.Equal(other.def) {
		return false
	}
	return attributesEqual(a.attrs, other.attrs)
}

func attributesEqual(a, b []*Attribute) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// ArgumentBuilder assembles an Argument. The position is left to the
// owning method; a freshly built argument reports position zero until a
// MethodBuilder adopts it.
type ArgumentBuilder struct {
	arg Argument
}

// NewArgument starts building a parameter descriptor with the given name.
func NewArgument(name string) *ArgumentBuilder {
	return &ArgumentBuilder{arg: Argument{name: name}}
}

// Type sets the declared type.
func (b *ArgumentBuilder) Type(typeName string) *ArgumentBuilder {
	b.arg.typeName = typeName
	return b
}

// Optional marks the parameter omittable at call sites.
func (b *ArgumentBuilder) Optional() *ArgumentBuilder {
	b.arg.optional = true
	return b
}

// Default sets the declared default literal and marks the parameter
// optional; a declaration cannot carry a default without being omittable.
func (b *ArgumentBuilder) Default(value Value) *ArgumentBuilder {
	b.arg.def = value
	b.arg.optional = true
	return b
}

// Variadic marks the parameter as collecting trailing arguments.
func (b *ArgumentBuilder) Variadic() *ArgumentBuilder {
	b.arg.variadic = true
	return b
}

// ByRef marks the parameter as passed by reference.
func (b *ArgumentBuilder) ByRef() *ArgumentBuilder {
	b.arg.byRef = true
	return b
}

// Attribute attaches an attribute to the parameter.
func (b *ArgumentBuilder) Attribute(attr *Attribute) *ArgumentBuilder {
	b.arg.attrs = append(b.arg.attrs, attr)
	return b
}

// Build returns the finished argument.
func (b *ArgumentBuilder) Build() *Argument {
	built := b.arg
	built.attrs = make([]*Attribute, len(b.arg.attrs))
	copy(built.attrs, b.arg.attrs)
	return &built
}

// at returns a copy of the argument with its position set. Arguments are
// owned by exactly one method, so the copy keeps the built value immutable
// while letting the method assign declaration order.
func (a *Argument) at(position int) *Argument {
	placed := *a
	placed.position = position
	return &placed
}
