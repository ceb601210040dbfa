package descriptor

// memberMap is an insertion-ordered map from member name to descriptor.
// Adding an existing name replaces the value but keeps the original
// position, matching the ordered-hash semantics of the languages these
// descriptors model.
type memberMap[T any] struct {
	order []string
	items map[string]T
}

func newMemberMap[T any]() *memberMap[T] {
	return &memberMap[T]{items: make(map[string]T)}
}

func (m *memberMap[T]) add(name string, item T) {
	if _, exists := m.items[name]; !exists {
		m.order = append(m.order, name)
	}
	m.items[name] = item
}

func (m *memberMap[T]) get(name string) (T, bool) {
	item, ok := m.items[name]
	return item, ok
}

func (m *memberMap[T]) len() int {
	return len(m.order)
}

// values returns the members in insertion order.
func (m *memberMap[T]) values() []T {
	out := make([]T, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.items[name])
	}
	return out
}

// clone returns an independent copy. The contained descriptors are shared;
// they are immutable once built.
func (m *memberMap[T]) clone() *memberMap[T] {
	copied := &memberMap[T]{
		order: make([]string, len(m.order)),
		items: make(map[string]T, len(m.items)),
	}
	copy(copied.order, m.order)
	for name, item := range m.items {
		copied.items[name] = item
	}
	return copied
}
