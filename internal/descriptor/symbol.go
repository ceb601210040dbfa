// Package descriptor defines the structural metadata model: immutable
// descriptions of classes, interfaces, and traits together with their
// properties, constants, methods, and attributes. Descriptors are built
// once through fluent builders and never mutated afterwards, so cached
// instances can be shared across goroutines without locking.
package descriptor

// Symbol is the root descriptor for one class, interface, or trait. A
// Symbol owns its members exclusively: member descriptors are never shared
// between symbols.
type Symbol struct {
	name       string
	namespace  string
	short      string
	kind       Kind
	mods       Modifiers
	parent     string
	interfaces []string
	traits     []string
	properties *memberMap[*Property]
	constants  *memberMap[*Constant]
	methods    *memberMap[*Method]
	attrs      []*Attribute
}

// Name returns the fully qualified symbol name as declared.
func (s *Symbol) Name() string { return s.name }

// Namespace returns the namespace portion of the name, or "" for global
// symbols.
func (s *Symbol) Namespace() string { return s.namespace }

// ShortName returns the name without its namespace.
func (s *Symbol) ShortName() string { return s.short }

// Kind returns whether the symbol is a class, interface, or trait.
func (s *Symbol) Kind() Kind { return s.kind }

// Modifiers returns the symbol-level modifier flags.
func (s *Symbol) Modifiers() Modifiers { return s.mods }

// Parent returns the qualified name of the extended parent, or "" when
// the symbol extends nothing.
func (s *Symbol) Parent() string { return s.parent }

// Interfaces returns a copy of the implemented interface names in
// declaration order.
func (s *Symbol) Interfaces() []string {
	out := make([]string, len(s.interfaces))
	copy(out, s.interfaces)
	return out
}

// Traits returns a copy of the used trait names in declaration order.
func (s *Symbol) Traits() []string {
	out := make([]string, len(s.traits))
	copy(out, s.traits)
	return out
}

// Properties returns the property descriptors in declaration order.
func (s *Symbol) Properties() []*Property { return s.properties.values() }

// Property returns the property with the given name, or nil.
func (s *Symbol) Property(name string) *Property {
	prop, _ := s.properties.get(name)
	return prop
}

// Constants returns the constant descriptors in declaration order.
func (s *Symbol) Constants() []*Constant { return s.constants.values() }

// Constant returns the constant with the given name, or nil.
func (s *Symbol) Constant(name string) *Constant {
	cons, _ := s.constants.get(name)
	return cons
}

// Methods returns the method descriptors in declaration order.
func (s *Symbol) Methods() []*Method { return s.methods.values() }

// Method returns the method with the given name, or nil.
func (s *Symbol) Method(name string) *Method {
	method, _ := s.methods.get(name)
	return method
}

// Attributes returns a copy of the attributes attached to the symbol.
func (s *Symbol) Attributes() []*Attribute {
	out := make([]*Attribute, len(s.attrs))
	copy(out, s.attrs)
	return out
}

// Equal reports whether two symbols describe the same declaration: every
// field, every member, every literal. Member order matters; two symbols
// with the same members declared in a different order are not equal.
func (s *Symbol) Equal(other *Symbol) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.name != other.name ||
		s.namespace != other.namespace ||
		s.short != other.short ||
		s.kind != other.kind ||
		s.mods != other.mods ||
		s.parent != other.parent {
		return false
	}
	if !stringsEqual(s.interfaces, other.interfaces) || !stringsEqual(s.traits, other.traits) {
		return false
	}
	if !membersEqual(s.properties, other.properties, (*Property).Equal) {
		return false
	}
	if !membersEqual(s.constants, other.constants, (*Constant).Equal) {
		return false
	}
	if !membersEqual(s.methods, other.methods, (*Method).Equal) {
		return false
	}
	return attributesEqual(s.attrs, other.attrs)
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func membersEqual[T any](a, b *memberMap[T], eq func(T, T) bool) bool {
	if a.len() != b.len() {
		return false
	}
	for i, name := range a.order {
		if b.order[i] != name {
			return false
		}
		if !eq(a.items[name], b.items[name]) {
			return false
		}
	}
	return true
}

// SymbolBuilder assembles a Symbol. Adding a member with a name already
// present replaces the earlier one in place; declaration order is kept.
type SymbolBuilder struct {
	name       string
	namespace  string
	nsSet      bool
	kind       Kind
	mods       Modifiers
	parent     string
	interfaces []string
	traits     []string
	properties *memberMap[*Property]
	constants  *memberMap[*Constant]
	methods    *memberMap[*Method]
	attrs      []*Attribute
}

// NewSymbol starts building a symbol descriptor with the given fully
// qualified name and kind.
func NewSymbol(name string, kind Kind) *SymbolBuilder {
	return &SymbolBuilder{
		name:       name,
		kind:       kind,
		properties: newMemberMap[*Property](),
		constants:  newMemberMap[*Constant](),
		methods:    newMemberMap[*Method](),
	}
}

// Namespace overrides the namespace derived from the qualified name.
func (b *SymbolBuilder) Namespace(namespace string) *SymbolBuilder {
	b.namespace = namespace
	b.nsSet = true
	return b
}

// Modifiers sets the symbol-level modifier flags, replacing any set
// before.
func (b *SymbolBuilder) Modifiers(mods Modifiers) *SymbolBuilder {
	b.mods = mods
	return b
}

// Extends records the qualified name of the parent.
func (b *SymbolBuilder) Extends(parent string) *SymbolBuilder {
	b.parent = parent
	return b
}

// Implements appends an implemented interface name.
func (b *SymbolBuilder) Implements(name string) *SymbolBuilder {
	b.interfaces = append(b.interfaces, name)
	return b
}

// Uses appends a used trait name.
func (b *SymbolBuilder) Uses(name string) *SymbolBuilder {
	b.traits = append(b.traits, name)
	return b
}

// Property adds a property descriptor.
func (b *SymbolBuilder) Property(prop *Property) *SymbolBuilder {
	b.properties.add(prop.Name(), prop)
	return b
}

// Constant adds a constant descriptor.
func (b *SymbolBuilder) Constant(cons *Constant) *SymbolBuilder {
	b.constants.add(cons.Name(), cons)
	return b
}

// Method adds a method descriptor.
func (b *SymbolBuilder) Method(method *Method) *SymbolBuilder {
	b.methods.add(method.Name(), method)
	return b
}

// Attribute attaches an attribute to the symbol.
func (b *SymbolBuilder) Attribute(attr *Attribute) *SymbolBuilder {
	b.attrs = append(b.attrs, attr)
	return b
}

// Build returns the finished symbol. The builder's collections are copied
// out, so further builder calls do not affect symbols already built.
func (b *SymbolBuilder) Build() *Symbol {
	namespace, short := SplitName(b.name)
	if b.nsSet {
		namespace = b.namespace
	}
	sym := &Symbol{
		name:       b.name,
		namespace:  namespace,
		short:      short,
		kind:       b.kind,
		mods:       b.mods,
		parent:     b.parent,
		interfaces: make([]string, len(b.interfaces)),
		traits:     make([]string, len(b.traits)),
		properties: b.properties.clone(),
		constants:  b.constants.clone(),
		methods:    b.methods.clone(),
		attrs:      make([]*Attribute, len(b.attrs)),
	}
	copy(sym.interfaces, b.interfaces)
	copy(sym.traits, b.traits)
	copy(sym.attrs, b.attrs)
	return sym
}
