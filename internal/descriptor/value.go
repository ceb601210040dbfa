package descriptor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// ValueKind discriminates the payload held by a Value.
type ValueKind string

const (
	// ValueAbsent marks the zero Value: no literal at all, as opposed to an
	// explicit null. Absent values are never serialized; owners omit the
	// field instead.
	ValueAbsent ValueKind = "absent"
	ValueNull   ValueKind = "null"
	ValueBool   ValueKind = "bool"
	ValueInt    ValueKind = "int"
	ValueFloat  ValueKind = "float"
	ValueString ValueKind = "string"
	ValueList   ValueKind = "list"
	ValueMap    ValueKind = "map"
)

// Value holds a literal attached to a descriptor: a constant value, a
// parameter default, or an attribute argument. The taxonomy is closed on
// purpose; only literals that survive a serialize/reconstruct round trip
// unchanged can be represented. Integers and floats stay distinct kinds so
// `1` never comes back as `1.0`.
//
// Value is immutable. The accessors return copies of any contained slices.
type Value struct {
	kind    ValueKind
	boolVal bool
	intVal  int64
	numVal  float64
	strVal  string
	list    []Value
	entries []MapEntry
}

// MapEntry is one key/value pair of a map literal. Map literals preserve
// entry order, mirroring the ordered hash maps of the languages these
// descriptors model.
type MapEntry struct {
	Key   string
	Value Value
}

// Null returns the explicit null literal.
func Null() Value { return Value{kind: ValueNull} }

// Bool returns a boolean literal.
func Bool(b bool) Value { return Value{kind: ValueBool, boolVal: b} }

// Int returns an integer literal.
func Int(i int64) Value { return Value{kind: ValueInt, intVal: i} }

// Float returns a floating-point literal. NaN and infinities have no
// snapshot representation; encoding them fails.
func Float(f float64) Value { return Value{kind: ValueFloat, numVal: f} }

// String returns a string literal.
func String(s string) Value { return Value{kind: ValueString, strVal: s} }

// List returns a list literal holding the given elements in order.
func List(elems ...Value) Value {
	copied := make([]Value, len(elems))
	copy(copied, elems)
	return Value{kind: ValueList, list: copied}
}

// Map returns a map literal holding the given entries in order.
func Map(entries ...MapEntry) Value {
	copied := make([]MapEntry, len(entries))
	copy(copied, entries)
	return Value{kind: ValueMap, entries: copied}
}

// Kind returns the discriminator. The zero Value reports ValueAbsent.
func (v Value) Kind() ValueKind {
	if v.kind == "" {
		return ValueAbsent
	}
	return v.kind
}

// IsAbsent reports whether v carries no literal at all.
func (v Value) IsAbsent() bool { return v.Kind() == ValueAbsent }

// IsNull reports whether v is the explicit null literal.
func (v Value) IsNull() bool { return v.Kind() == ValueNull }

// BoolVal returns the boolean payload, or false for any other kind.
func (v Value) BoolVal() bool { return v.boolVal }

// IntVal returns the integer payload, or 0 for any other kind.
func (v Value) IntVal() int64 { return v.intVal }

// FloatVal returns the float payload, or 0 for any other kind.
func (v Value) FloatVal() float64 { return v.numVal }

// StringVal returns the string payload, or "" for any other kind.
func (v Value) StringVal() string { return v.strVal }

// ListVal returns a copy of the list payload, or nil for any other kind.
func (v Value) ListVal() []Value {
	if v.Kind() != ValueList {
		return nil
	}
	out := make([]Value, len(v.list))
	copy(out, v.list)
	return out
}

// MapVal returns a copy of the map entries, or nil for any other kind.
func (v Value) MapVal() []MapEntry {
	if v.Kind() != ValueMap {
		return nil
	}
	out := make([]MapEntry, len(v.entries))
	copy(out, v.entries)
	return out
}

// Equal reports whether two values hold the same literal, comparing kind
// and payload. Map entries compare in order; two maps with the same pairs
// in a different order are not equal.
func (v Value) Equal(other Value) bool {
	if v.Kind() != other.Kind() {
		return false
	}
	switch v.Kind() {
	case ValueAbsent, ValueNull:
		return true
	case ValueBool:
		return v.boolVal == other.boolVal
	case ValueInt:
		return v.intVal == other.intVal
	case ValueFloat:
		return v.numVal == other.numVal
	case ValueString:
		return v.strVal == other.strVal
	case ValueList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case ValueMap:
		if len(v.entries) != len(other.entries) {
			return false
		}
		for i := range v.entries {
			if v.entries[i].Key != other.entries[i].Key {
				return false
			}
			if !v.entries[i].Value.Equal(other.entries[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// valueJSON is the wire form of a Value: a kind tag plus a payload whose
// JSON type depends on the tag. Every literal in a snapshot goes through
// this one shape, so encode and decode cannot drift apart per owner.
type valueJSON struct {
	Kind    ValueKind       `json:"t"`
	Payload json.RawMessage `json:"v,omitempty"`
}

type mapEntryJSON struct {
	Key   string `json:"k"`
	Value Value  `json:"v"`
}

// MarshalJSON implements json.Marshaler. Absent values and non-finite
// floats have no wire form and fail with an error.
func (v Value) MarshalJSON() ([]byte, error) {
	wire := valueJSON{Kind: v.Kind()}
	var err error
	switch v.Kind() {
	case ValueAbsent:
		return nil, fmt.Errorf("absent value cannot be serialized")
	case ValueNull:
		// Tag only.
	case ValueBool:
		wire.Payload, err = json.Marshal(v.boolVal)
	case ValueInt:
		wire.Payload, err = json.Marshal(v.intVal)
	case ValueFloat:
		if math.IsNaN(v.numVal) || math.IsInf(v.numVal, 0) {
			return nil, fmt.Errorf("non-finite float %v cannot be serialized", v.numVal)
		}
		wire.Payload, err = json.Marshal(v.numVal)
	case ValueString:
		wire.Payload, err = json.Marshal(v.strVal)
	case ValueList:
		elems := v.list
		if elems == nil {
			elems = []Value{}
		}
		wire.Payload, err = json.Marshal(elems)
	case ValueMap:
		entries := make([]mapEntryJSON, len(v.entries))
		for i, entry := range v.entries {
			entries[i] = mapEntryJSON{Key: entry.Key, Value: entry.Value}
		}
		wire.Payload, err = json.Marshal(entries)
	default:
		return nil, fmt.Errorf("unknown value kind: %q", v.kind)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(wire)
}

// UnmarshalJSON implements json.Unmarshaler, reversing MarshalJSON exactly.
// Integers decode through json.Number so 64-bit values survive without a
// float64 detour.
func (v *Value) UnmarshalJSON(data []byte) error {
	var wire valueJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch wire.Kind {
	case ValueNull:
		*v = Null()
	case ValueBool:
		var b bool
		if err := json.Unmarshal(wire.Payload, &b); err != nil {
			return fmt.Errorf("bool value: %w", err)
		}
		*v = Bool(b)
	case ValueInt:
		var num json.Number
		if err := decodeNumber(wire.Payload, &num); err != nil {
			return fmt.Errorf("int value: %w", err)
		}
		i, err := num.Int64()
		if err != nil {
			return fmt.Errorf("int value: %w", err)
		}
		*v = Int(i)
	case ValueFloat:
		var num json.Number
		if err := decodeNumber(wire.Payload, &num); err != nil {
			return fmt.Errorf("float value: %w", err)
		}
		f, err := num.Float64()
		if err != nil {
			return fmt.Errorf("float value: %w", err)
		}
		*v = Float(f)
	case ValueString:
		var s string
		if err := json.Unmarshal(wire.Payload, &s); err != nil {
			return fmt.Errorf("string value: %w", err)
		}
		*v = String(s)
	case ValueList:
		var elems []Value
		if err := json.Unmarshal(wire.Payload, &elems); err != nil {
			return fmt.Errorf("list value: %w", err)
		}
		*v = List(elems...)
	case ValueMap:
		var entries []mapEntryJSON
		if err := json.Unmarshal(wire.Payload, &entries); err != nil {
			return fmt.Errorf("map value: %w", err)
		}
		pairs := make([]MapEntry, len(entries))
		for i, entry := range entries {
			pairs[i] = MapEntry{Key: entry.Key, Value: entry.Value}
		}
		*v = Map(pairs...)
	case ValueAbsent:
		return fmt.Errorf("absent value has no serialized form")
	default:
		return fmt.Errorf("unknown value kind: %q", wire.Kind)
	}
	return nil
}

// decodeNumber unmarshals a JSON number with UseNumber set, keeping full
// integer precision.
func decodeNumber(data []byte, num *json.Number) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(num); err != nil {
		return err
	}
	return nil
}
