package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for symbol descriptors and builders:
//
// 1. Build derives namespace and short name from the qualified name
// 2. Members keep declaration order; re-adding a name replaces in place
// 3. Build freezes state: later builder calls don't leak into built symbols
// 4. Method arguments get declaration positions assigned on add
// 5. Attribute arguments keep their positional/named distinction
// 6. Equal is deep and order-sensitive
// 7. Untyped members and return types normalize to "any" at Build

// buildWidget assembles a representative symbol exercising every member
// kind.
func buildWidget(t *testing.T) *Symbol {
	t.Helper()

	attr := NewAttribute(`Acme\Meta\Since`).
		Positional(String("2.0")).
		Named("deprecated", Bool(false)).
		Build()

	prop := NewProperty("label").
		Type("string").
		Modifiers(Modifiers(0).With(ModPrivate)).
		Default(String("widget")).
		Build()

	cons := NewConstant("MAX_SIZE", Int(512)).
		Modifiers(Modifiers(0).With(ModPublic | ModFinal)).
		Build()

	method := NewMethod("resize").
		Returns("self").
		Modifiers(Modifiers(0).With(ModPublic)).
		Arg(NewArgument("width").Type("int").Build()).
		Arg(NewArgument("height").Type("int").Default(Int(0)).Build()).
		Attribute(attr).
		Build()

	return NewSymbol(`Acme\Widget`, KindClass).
		Extends(`Acme\Base`).
		Implements(`Acme\Drawable`).
		Uses(`Acme\Loggable`).
		Modifiers(Modifiers(0).With(ModFinal)).
		Property(prop).
		Constant(cons).
		Method(method).
		Attribute(attr).
		Build()
}

func TestSymbolBuilderNames(t *testing.T) {
	t.Parallel()

	sym := NewSymbol(`Acme\Core\Widget`, KindClass).Build()
	assert.Equal(t, `Acme\Core\Widget`, sym.Name())
	assert.Equal(t, `Acme\Core`, sym.Namespace())
	assert.Equal(t, "Widget", sym.ShortName())

	global := NewSymbol("Widget", KindInterface).Build()
	assert.Equal(t, "", global.Namespace())
	assert.Equal(t, "Widget", global.ShortName())

	overridden := NewSymbol("Widget", KindTrait).Namespace("Acme").Build()
	assert.Equal(t, "Acme", overridden.Namespace())
}

func TestSymbolMemberOrder(t *testing.T) {
	t.Parallel()

	builder := NewSymbol(`Acme\Widget`, KindClass).
		Property(NewProperty("first").Build()).
		Property(NewProperty("second").Build()).
		Property(NewProperty("third").Build())

	// Replacing an existing member keeps its original position.
	builder.Property(NewProperty("second").Type("int").Build())
	sym := builder.Build()

	props := sym.Properties()
	require.Len(t, props, 3)
	assert.Equal(t, "first", props[0].Name())
	assert.Equal(t, "second", props[1].Name())
	assert.Equal(t, "third", props[2].Name())
	assert.Equal(t, "int", props[1].TypeName(), "replacement must win")
}

func TestUntypedMembersDefaultToAny(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "any", NewProperty("bare").Build().TypeName())
	assert.Equal(t, "any", NewConstant("BARE", Int(1)).Build().TypeName())
	assert.Equal(t, "any", NewMethod("bare").Build().ReturnType())

	typed := NewProperty("typed").Type("?string").Build()
	assert.Equal(t, "?string", typed.TypeName(), "declared types pass through, nullable marker included")
	assert.Equal(t, "int", NewConstant("LIMIT", Int(5)).Type("int").Build().TypeName())
}

func TestSymbolBuildFreezes(t *testing.T) {
	t.Parallel()

	builder := NewSymbol(`Acme\Widget`, KindClass).
		Property(NewProperty("kept").Build())
	first := builder.Build()

	builder.Property(NewProperty("late").Build()).Implements(`Acme\Late`)
	second := builder.Build()

	assert.Len(t, first.Properties(), 1)
	assert.Empty(t, first.Interfaces())
	assert.Len(t, second.Properties(), 2)
	assert.False(t, first.Equal(second))
}

func TestMethodArgumentPositions(t *testing.T) {
	t.Parallel()

	method := NewMethod("configure").
		Arg(NewArgument("name").Type("string").Build()).
		Arg(NewArgument("options").Variadic().Build()).
		Build()

	args := method.Args()
	require.Len(t, args, 2)
	assert.Equal(t, 0, args[0].Position())
	assert.Equal(t, 1, args[1].Position())
	assert.True(t, args[1].Variadic())

	byName := method.Arg("options")
	require.NotNil(t, byName)
	assert.Equal(t, 1, byName.Position())
	assert.Nil(t, method.Arg("missing"))
}

func TestArgumentDefaultImpliesOptional(t *testing.T) {
	t.Parallel()

	arg := NewArgument("height").Default(Int(0)).Build()
	assert.True(t, arg.Optional())
	assert.True(t, arg.Default().Equal(Int(0)))

	// An explicit null default is distinct from no default.
	nullDefault := NewArgument("label").Default(Null()).Build()
	assert.True(t, nullDefault.Default().IsNull())
	assert.False(t, nullDefault.Default().IsAbsent())

	plain := NewArgument("width").Build()
	assert.False(t, plain.Optional())
	assert.True(t, plain.Default().IsAbsent())
}

func TestAttributeArgs(t *testing.T) {
	t.Parallel()

	attr := NewAttribute(`Acme\Route`).
		Positional(String("/widgets")).
		Positional(Int(2)).
		Named("methods", List(String("GET"), String("POST"))).
		Build()

	args := attr.Args()
	require.Len(t, args, 3)

	assert.False(t, args[0].Named())
	assert.Equal(t, 0, args[0].Index())
	assert.False(t, args[1].Named())
	assert.Equal(t, 1, args[1].Index())
	assert.True(t, args[2].Named())
	assert.Equal(t, "methods", args[2].Name())

	rebuilt := NewAttribute(`Acme\Route`).
		PositionalAt(0, String("/widgets")).
		PositionalAt(1, Int(2)).
		Named("methods", List(String("GET"), String("POST"))).
		Build()
	assert.True(t, attr.Equal(rebuilt))
}

func TestSymbolEqual(t *testing.T) {
	t.Parallel()

	base := buildWidget(t)
	same := buildWidget(t)
	assert.True(t, base.Equal(same))
	assert.True(t, same.Equal(base))

	tests := []struct {
		name  string
		other *Symbol
	}{
		{
			"different kind",
			NewSymbol(`Acme\Widget`, KindInterface).Build(),
		},
		{
			"different parent",
			NewSymbol(`Acme\Widget`, KindClass).Extends(`Acme\Other`).Build(),
		},
		{
			"member order differs",
			NewSymbol(`Acme\Widget`, KindClass).
				Property(NewProperty("b").Build()).
				Property(NewProperty("a").Build()).
				Build(),
		},
		{
			"constant value differs",
			NewSymbol(`Acme\Widget`, KindClass).
				Constant(NewConstant("MAX_SIZE", Int(1024)).Build()).
				Build(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, base.Equal(tt.other))
		})
	}

	ordered := NewSymbol(`Acme\Widget`, KindClass).
		Property(NewProperty("a").Build()).
		Property(NewProperty("b").Build()).
		Build()
	reordered := NewSymbol(`Acme\Widget`, KindClass).
		Property(NewProperty("b").Build()).
		Property(NewProperty("a").Build()).
		Build()
	assert.False(t, ordered.Equal(reordered), "member order participates in equality")
}

func TestSymbolAccessors(t *testing.T) {
	t.Parallel()

	sym := buildWidget(t)

	require.NotNil(t, sym.Property("label"))
	assert.Nil(t, sym.Property("missing"))
	require.NotNil(t, sym.Constant("MAX_SIZE"))
	assert.Nil(t, sym.Constant("MISSING"))
	require.NotNil(t, sym.Method("resize"))
	assert.Nil(t, sym.Method("missing"))

	assert.Equal(t, []string{`Acme\Drawable`}, sym.Interfaces())
	assert.Equal(t, []string{`Acme\Loggable`}, sym.Traits())
	assert.Equal(t, `Acme\Base`, sym.Parent())
	assert.True(t, sym.Modifiers().IsFinal())

	attrs := sym.Attributes()
	require.Len(t, attrs, 1)
	assert.Equal(t, `Acme\Meta\Since`, attrs[0].Name())
}
