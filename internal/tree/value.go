package tree

import "iter"

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindScalar Kind = iota
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Value is a node in a configuration tree. It is one of Scalar, *Mapping
// or Sequence.
type Value interface {
	Kind() Kind
	isValue()
}

// Null and string tags as resolved by the YAML decoder.
const (
	TagNull = "!!null"
	TagStr  = "!!str"
)

// Scalar is a leaf value.
type Scalar struct {
	// Text is the scalar as written in the source document.
	Text string
	// Tag is the resolved YAML tag (e.g. "!!str", "!!int", "!!null").
	Tag string
}

// Str returns a string scalar.
func Str(s string) Scalar {
	return Scalar{Text: s, Tag: TagStr}
}

func (Scalar) Kind() Kind { return KindScalar }
func (Scalar) isValue()   {}

// IsNull reports whether the scalar is a YAML null.
func (s Scalar) IsNull() bool {
	return s.Tag == TagNull
}

// String returns the display text of the scalar. Null is empty.
func (s Scalar) String() string {
	if s.IsNull() {
		return ""
	}
	return s.Text
}

// Sequence is an ordered list of values.
type Sequence []Value

func (Sequence) Kind() Kind { return KindSequence }
func (Sequence) isValue()   {}

// Mappings returns the items that are mappings, skipping everything else.
func (s Sequence) Mappings() []*Mapping {
	result := make([]*Mapping, 0, len(s))
	for _, item := range s {
		if m, ok := item.(*Mapping); ok {
			result = append(result, m)
		}
	}
	return result
}

// Mapping is a string-keyed map that remembers insertion order.
// The zero value is not usable; use NewMapping. Read methods are nil-safe.
type Mapping struct {
	keys   []string
	values map[string]Value
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Value)}
}

func (*Mapping) Kind() Kind { return KindMapping }
func (*Mapping) isValue()   {}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// All iterates over entries in insertion order.
func (m *Mapping) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores v under key. An existing key keeps its position.
func (m *Mapping) Set(key string, v Value) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Mapping returns the value under key if it is a mapping.
func (m *Mapping) Mapping(key string) (*Mapping, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	child, ok := v.(*Mapping)
	return child, ok
}

// Sequence returns the value under key if it is a sequence.
func (m *Mapping) Sequence(key string) (Sequence, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	seq, ok := v.(Sequence)
	return seq, ok
}

// Scalar returns the value under key if it is a scalar.
func (m *Mapping) Scalar(key string) (Scalar, bool) {
	v, ok := m.Get(key)
	if !ok {
		return Scalar{}, false
	}
	s, ok := v.(Scalar)
	return s, ok
}

// String returns the text of a non-null scalar under key.
func (m *Mapping) String(key string) (string, bool) {
	s, ok := m.Scalar(key)
	if !ok || s.IsNull() {
		return "", false
	}
	return s.Text, true
}

// Clone returns a deep copy. Cloning nil yields an empty mapping.
func (m *Mapping) Clone() *Mapping {
	result := NewMapping()
	if m == nil {
		return result
	}
	result.keys = make([]string, len(m.keys))
	copy(result.keys, m.keys)
	for k, v := range m.values {
		result.values[k] = Copy(v)
	}
	return result
}

// Copy returns a deep copy of any value.
func Copy(v Value) Value {
	switch val := v.(type) {
	case *Mapping:
		return val.Clone()
	case Sequence:
		result := make(Sequence, len(val))
		for i, item := range val {
			result[i] = Copy(item)
		}
		return result
	default:
		// Scalars are immutable.
		return v
	}
}
