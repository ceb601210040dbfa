package descriptor

import "fmt"

// Kind identifies the flavor of symbol a descriptor models.
// It is fixed at construction time and never changes afterwards.
type Kind string

const (
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
	KindTrait     Kind = "trait"
)

// ParseKind converts a string from a snapshot or manifest into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown symbol kind: %q", s)
	}
	return k, nil
}

// Valid reports whether k is one of the supported symbol kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindClass, KindInterface, KindTrait:
		return true
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}
