package manifest

import (
	"fmt"

	"github.com/mvp-joe/project-lexicon/internal/descriptor"
)

// A manifest file is a JSON document listing symbol facts produced by
// extractor tooling. The schema is writer-friendly: collections may be
// omitted, and method arguments carry no explicit positions, their order
// in the document is their declaration order.

type manifestFile struct {
	Symbols []symbolFact `json:"symbols"`
}

type symbolFact struct {
	Name       string          `json:"name"`
	Kind       string          `json:"kind"`
	Parent     string          `json:"parent,omitempty"`
	Interfaces []string        `json:"interfaces,omitempty"`
	Traits     []string        `json:"traits,omitempty"`
	Properties []propertyFact  `json:"properties,omitempty"`
	Constants  []constantFact  `json:"constants,omitempty"`
	Methods    []methodFact    `json:"methods,omitempty"`
	Attributes []attributeFact `json:"attributes,omitempty"`
	Modifiers  []string        `json:"modifiers,omitempty"`
}

type propertyFact struct {
	Name       string            `json:"name"`
	Type       string            `json:"type,omitempty"`
	Default    *descriptor.Value `json:"default,omitempty"`
	Attributes []attributeFact   `json:"attributes,omitempty"`
	Modifiers  []string          `json:"modifiers,omitempty"`
}

type constantFact struct {
	Name       string           `json:"name"`
	Type       string           `json:"type,omitempty"`
	Value      descriptor.Value `json:"value"`
	Attributes []attributeFact  `json:"attributes,omitempty"`
	Modifiers  []string         `json:"modifiers,omitempty"`
}

type methodFact struct {
	Name       string          `json:"name"`
	ReturnType string          `json:"return_type,omitempty"`
	Arguments  []argumentFact  `json:"arguments,omitempty"`
	Attributes []attributeFact `json:"attributes,omitempty"`
	Modifiers  []string        `json:"modifiers,omitempty"`
}

type argumentFact struct {
	Name       string            `json:"name"`
	Type       string            `json:"type,omitempty"`
	Optional   bool              `json:"optional,omitempty"`
	Default    *descriptor.Value `json:"default,omitempty"`
	Variadic   bool              `json:"variadic,omitempty"`
	ByRef      bool              `json:"by_ref,omitempty"`
	Attributes []attributeFact   `json:"attributes,omitempty"`
}

type attributeFact struct {
	Name string             `json:"name"`
	Args []attributeArgFact `json:"args,omitempty"`
}

// attributeArgFact is positional unless a parameter name is given;
// positional arguments are numbered by their order in the document.
type attributeArgFact struct {
	Name  string           `json:"name,omitempty"`
	Value descriptor.Value `json:"value"`
}

// symbol builds the immutable descriptor a fact describes.
func (f symbolFact) symbol() (*descriptor.Symbol, error) {
	if f.Name == "" {
		return nil, fmt.Errorf("symbol fact without a name")
	}
	kind, err := descriptor.ParseKind(f.Kind)
	if err != nil {
		return nil, fmt.Errorf("symbol %s: %w", f.Name, err)
	}
	mods, err := descriptor.ParseModifiers(f.Modifiers)
	if err != nil {
		return nil, fmt.Errorf("symbol %s: %w", f.Name, err)
	}

	builder := descriptor.NewSymbol(f.Name, kind).Modifiers(mods)
	if f.Parent != "" {
		builder.Extends(f.Parent)
	}
	for _, name := range f.Interfaces {
		builder.Implements(name)
	}
	for _, name := range f.Traits {
		builder.Uses(name)
	}
	for _, fact := range f.Properties {
		prop, err := fact.property()
		if err != nil {
			return nil, fmt.Errorf("symbol %s: %w", f.Name, err)
		}
		builder.Property(prop)
	}
	for _, fact := range f.Constants {
		cons, err := fact.constant()
		if err != nil {
			return nil, fmt.Errorf("symbol %s: %w", f.Name, err)
		}
		builder.Constant(cons)
	}
	for _, fact := range f.Methods {
		method, err := fact.method()
		if err != nil {
			return nil, fmt.Errorf("symbol %s: %w", f.Name, err)
		}
		builder.Method(method)
	}
	attrs, err := buildAttributes(f.Attributes)
	if err != nil {
		return nil, fmt.Errorf("symbol %s: %w", f.Name, err)
	}
	for _, attr := range attrs {
		builder.Attribute(attr)
	}
	return builder.Build(), nil
}

func (f propertyFact) property() (*descriptor.Property, error) {
	mods, err := descriptor.ParseModifiers(f.Modifiers)
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", f.Name, err)
	}
	builder := descriptor.NewProperty(f.Name).Type(f.Type).Modifiers(mods)
	if f.Default != nil {
		builder.Default(*f.Default)
	}
	attrs, err := buildAttributes(f.Attributes)
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", f.Name, err)
	}
	for _, attr := range attrs {
		builder.Attribute(attr)
	}
	return builder.Build(), nil
}

func (f constantFact) constant() (*descriptor.Constant, error) {
	if f.Value.IsAbsent() {
		return nil, fmt.Errorf("constant %s: missing value", f.Name)
	}
	mods, err := descriptor.ParseModifiers(f.Modifiers)
	if err != nil {
		return nil, fmt.Errorf("constant %s: %w", f.Name, err)
	}
	builder := descriptor.NewConstant(f.Name, f.Value).Type(f.Type).Modifiers(mods)
	attrs, err := buildAttributes(f.Attributes)
	if err != nil {
		return nil, fmt.Errorf("constant %s: %w", f.Name, err)
	}
	for _, attr := range attrs {
		builder.Attribute(attr)
	}
	return builder.Build(), nil
}

func (f methodFact) method() (*descriptor.Method, error) {
	mods, err := descriptor.ParseModifiers(f.Modifiers)
	if err != nil {
		return nil, fmt.Errorf("method %s: %w", f.Name, err)
	}
	builder := descriptor.NewMethod(f.Name).Returns(f.ReturnType).Modifiers(mods)
	for _, fact := range f.Arguments {
		arg, err := fact.argument()
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", f.Name, err)
		}
		builder.Arg(arg)
	}
	attrs, err := buildAttributes(f.Attributes)
	if err != nil {
		return nil, fmt.Errorf("method %s: %w", f.Name, err)
	}
	for _, attr := range attrs {
		builder.Attribute(attr)
	}
	return builder.Build(), nil
}

func (f argumentFact) argument() (*descriptor.Argument, error) {
	builder := descriptor.NewArgument(f.Name).Type(f.Type)
	if f.Default != nil {
		builder.Default(*f.Default)
	}
	if f.Optional {
		builder.Optional()
	}
	if f.Variadic {
		builder.Variadic()
	}
	if f.ByRef {
		builder.ByRef()
	}
	attrs, err := buildAttributes(f.Attributes)
	if err != nil {
		return nil, fmt.Errorf("argument %s: %w", f.Name, err)
	}
	for _, attr := range attrs {
		builder.Attribute(attr)
	}
	return builder.Build(), nil
}

func buildAttributes(facts []attributeFact) ([]*descriptor.Attribute, error) {
	attrs := make([]*descriptor.Attribute, 0, len(facts))
	for _, fact := range facts {
		builder := descriptor.NewAttribute(fact.Name)
		for _, arg := range fact.Args {
			if arg.Value.IsAbsent() {
				return nil, fmt.Errorf("attribute %s: argument without a value", fact.Name)
			}
			if arg.Name != "" {
				builder.Named(arg.Name, arg.Value)
			} else {
				builder.Positional(arg.Value)
			}
		}
		attrs = append(attrs, builder.Build())
	}
	return attrs, nil
}
