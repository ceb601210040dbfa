package snapshot

import (
	"fmt"

	"github.com/mvp-joe/project-lexicon/internal/descriptor"
)

// The record structs define the persisted symbol shape. Field order is the
// emission order: identity first, then members, then relationships, then
// attributes and modifier flags. encoding/json emits struct fields in
// declaration order, so the order here is the order on disk.
//
// Collections are always emitted, empty or not, to keep the empty-vs-absent
// distinction out of the format: an absent literal is an omitted field, an
// empty list is `[]`.

type symbolRecord struct {
	Name       string            `json:"name"`
	Namespace  string            `json:"namespace"`
	Kind       string            `json:"kind"`
	Properties []propertyRecord  `json:"properties"`
	Constants  []constantRecord  `json:"constants"`
	Methods    []methodRecord    `json:"methods"`
	Traits     []string          `json:"traits"`
	Interfaces []string          `json:"interfaces"`
	Parent     string            `json:"parent,omitempty"`
	Attributes []attributeRecord `json:"attributes"`
	Modifiers  []string          `json:"modifiers"`
}

type propertyRecord struct {
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Default    *descriptor.Value `json:"default,omitempty"`
	Attributes []attributeRecord `json:"attributes"`
	Modifiers  []string          `json:"modifiers"`
}

type constantRecord struct {
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Value      descriptor.Value  `json:"value"`
	Attributes []attributeRecord `json:"attributes"`
	Modifiers  []string          `json:"modifiers"`
}

type methodRecord struct {
	Name       string            `json:"name"`
	ReturnType string            `json:"return_type"`
	Arguments  []argumentRecord  `json:"arguments"`
	Attributes []attributeRecord `json:"attributes"`
	Modifiers  []string          `json:"modifiers"`
}

type argumentRecord struct {
	Name       string            `json:"name"`
	Position   int               `json:"position"`
	Type       string            `json:"type,omitempty"`
	Optional   bool              `json:"optional"`
	Default    *descriptor.Value `json:"default,omitempty"`
	Variadic   bool              `json:"variadic"`
	ByRef      bool              `json:"by_ref"`
	Attributes []attributeRecord `json:"attributes"`
}

type attributeRecord struct {
	Name string               `json:"name"`
	Args []attributeArgRecord `json:"args"`
}

// attributeArgRecord keys an argument by exactly one of index or name.
// Index is a pointer so position zero is still emitted.
type attributeArgRecord struct {
	Index *int             `json:"index,omitempty"`
	Name  string           `json:"name,omitempty"`
	Value descriptor.Value `json:"value"`
}

func newSymbolRecord(sym *descriptor.Symbol) symbolRecord {
	props := sym.Properties()
	propRecords := make([]propertyRecord, len(props))
	for i, prop := range props {
		propRecords[i] = newPropertyRecord(prop)
	}

	constants := sym.Constants()
	consRecords := make([]constantRecord, len(constants))
	for i, cons := range constants {
		consRecords[i] = newConstantRecord(cons)
	}

	methods := sym.Methods()
	methodRecords := make([]methodRecord, len(methods))
	for i, method := range methods {
		methodRecords[i] = newMethodRecord(method)
	}

	return symbolRecord{
		Name:       sym.Name(),
		Namespace:  sym.Namespace(),
		Kind:       sym.Kind().String(),
		Properties: propRecords,
		Constants:  consRecords,
		Methods:    methodRecords,
		Traits:     sym.Traits(),
		Interfaces: sym.Interfaces(),
		Parent:     sym.Parent(),
		Attributes: newAttributeRecords(sym.Attributes()),
		Modifiers:  sym.Modifiers().Names(),
	}
}

func newPropertyRecord(prop *descriptor.Property) propertyRecord {
	return propertyRecord{
		Name:       prop.Name(),
		Type:       prop.TypeName(),
		Default:    optionalValue(prop.Default()),
		Attributes: newAttributeRecords(prop.Attributes()),
		Modifiers:  prop.Modifiers().Names(),
	}
}

func newConstantRecord(cons *descriptor.Constant) constantRecord {
	return constantRecord{
		Name:       cons.Name(),
		Type:       cons.TypeName(),
		Value:      cons.Value(),
		Attributes: newAttributeRecords(cons.Attributes()),
		Modifiers:  cons.Modifiers().Names(),
	}
}

func newMethodRecord(method *descriptor.Method) methodRecord {
	args := method.Args()
	argRecords := make([]argumentRecord, len(args))
	for i, arg := range args {
		argRecords[i] = argumentRecord{
			Name:       arg.Name(),
			Position:   arg.Position(),
			Type:       arg.TypeName(),
			Optional:   arg.Optional(),
			Default:    optionalValue(arg.Default()),
			Variadic:   arg.Variadic(),
			ByRef:      arg.ByRef(),
			Attributes: newAttributeRecords(arg.Attributes()),
		}
	}
	return methodRecord{
		Name:       method.Name(),
		ReturnType: method.ReturnType(),
		Arguments:  argRecords,
		Attributes: newAttributeRecords(method.Attributes()),
		Modifiers:  method.Modifiers().Names(),
	}
}

func newAttributeRecords(attrs []*descriptor.Attribute) []attributeRecord {
	records := make([]attributeRecord, len(attrs))
	for i, attr := range attrs {
		args := attr.Args()
		argRecords := make([]attributeArgRecord, len(args))
		for j, arg := range args {
			record := attributeArgRecord{Value: arg.Value()}
			if arg.Named() {
				record.Name = arg.Name()
			} else {
				index := arg.Index()
				record.Index = &index
			}
			argRecords[j] = record
		}
		records[i] = attributeRecord{Name: attr.Name(), Args: argRecords}
	}
	return records
}

// optionalValue maps an absent literal to an omitted field.
func optionalValue(v descriptor.Value) *descriptor.Value {
	if v.IsAbsent() {
		return nil
	}
	return &v
}

// symbol rebuilds the descriptor from its record, validating as it goes.
// Any inconsistency is reported as a plain error; Decode wraps it into the
// corruption taxonomy.
func (r symbolRecord) symbol() (*descriptor.Symbol, error) {
	kind, err := descriptor.ParseKind(r.Kind)
	if err != nil {
		return nil, err
	}
	mods, err := descriptor.ParseModifiers(r.Modifiers)
	if err != nil {
		return nil, err
	}

	builder := descriptor.NewSymbol(r.Name, kind).
		Namespace(r.Namespace).
		Modifiers(mods)
	if r.Parent != "" {
		builder.Extends(r.Parent)
	}
	for _, prop := range r.Properties {
		built, err := prop.property()
		if err != nil {
			return nil, err
		}
		builder.Property(built)
	}
	for _, cons := range r.Constants {
		built, err := cons.constant()
		if err != nil {
			return nil, err
		}
		builder.Constant(built)
	}
	for _, method := range r.Methods {
		built, err := method.method()
		if err != nil {
			return nil, err
		}
		builder.Method(built)
	}
	for _, name := range r.Traits {
		builder.Uses(name)
	}
	for _, name := range r.Interfaces {
		builder.Implements(name)
	}
	attrs, err := buildAttributes(r.Attributes)
	if err != nil {
		return nil, fmt.Errorf("symbol %s: %w", r.Name, err)
	}
	for _, attr := range attrs {
		builder.Attribute(attr)
	}
	return builder.Build(), nil
}

func (r propertyRecord) property() (*descriptor.Property, error) {
	mods, err := descriptor.ParseModifiers(r.Modifiers)
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", r.Name, err)
	}
	builder := descriptor.NewProperty(r.Name).Type(r.Type).Modifiers(mods)
	if r.Default != nil {
		builder.Default(*r.Default)
	}
	attrs, err := buildAttributes(r.Attributes)
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", r.Name, err)
	}
	for _, attr := range attrs {
		builder.Attribute(attr)
	}
	return builder.Build(), nil
}

func (r constantRecord) constant() (*descriptor.Constant, error) {
	if r.Value.IsAbsent() {
		return nil, fmt.Errorf("constant %s: missing value", r.Name)
	}
	mods, err := descriptor.ParseModifiers(r.Modifiers)
	if err != nil {
		return nil, fmt.Errorf("constant %s: %w", r.Name, err)
	}
	builder := descriptor.NewConstant(r.Name, r.Value).Type(r.Type).Modifiers(mods)
	attrs, err := buildAttributes(r.Attributes)
	if err != nil {
		return nil, fmt.Errorf("constant %s: %w", r.Name, err)
	}
	for _, attr := range attrs {
		builder.Attribute(attr)
	}
	return builder.Build(), nil
}

func (r methodRecord) method() (*descriptor.Method, error) {
	mods, err := descriptor.ParseModifiers(r.Modifiers)
	if err != nil {
		return nil, fmt.Errorf("method %s: %w", r.Name, err)
	}
	builder := descriptor.NewMethod(r.Name).Returns(r.ReturnType).Modifiers(mods)
	for i, arg := range r.Arguments {
		if arg.Position != i {
			return nil, fmt.Errorf("method %s: argument %q stored at index %d claims position %d",
				r.Name, arg.Name, i, arg.Position)
		}
		built, err := arg.argument()
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", r.Name, err)
		}
		builder.Arg(built)
	}
	attrs, err := buildAttributes(r.Attributes)
	if err != nil {
		return nil, fmt.Errorf("method %s: %w", r.Name, err)
	}
	for _, attr := range attrs {
		builder.Attribute(attr)
	}
	return builder.Build(), nil
}

func (r argumentRecord) argument() (*descriptor.Argument, error) {
	builder := descriptor.NewArgument(r.Name).Type(r.Type)
	if r.Default != nil {
		builder.Default(*r.Default)
	}
	if r.Optional {
		builder.Optional()
	}
	if r.Variadic {
		builder.Variadic()
	}
	if r.ByRef {
		builder.ByRef()
	}
	attrs, err := buildAttributes(r.Attributes)
	if err != nil {
		return nil, fmt.Errorf("argument %s: %w", r.Name, err)
	}
	for _, attr := range attrs {
		builder.Attribute(attr)
	}
	return builder.Build(), nil
}

func buildAttributes(records []attributeRecord) ([]*descriptor.Attribute, error) {
	attrs := make([]*descriptor.Attribute, 0, len(records))
	for _, record := range records {
		builder := descriptor.NewAttribute(record.Name)
		for i, arg := range record.Args {
			switch {
			case arg.Index != nil && arg.Name == "":
				builder.PositionalAt(*arg.Index, arg.Value)
			case arg.Index == nil && arg.Name != "":
				builder.Named(arg.Name, arg.Value)
			default:
				return nil, fmt.Errorf("attribute %s: argument %d must be keyed by exactly one of index or name",
					record.Name, i)
			}
		}
		attrs = append(attrs, builder.Build())
	}
	return attrs, nil
}
