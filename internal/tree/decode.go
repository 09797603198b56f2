package tree

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrNotMapping indicates a document whose root is not a mapping.
var ErrNotMapping = errors.New("document root is not a mapping")

// maxDepth bounds alias expansion so a self-referencing anchor cannot
// recurse forever.
const maxDepth = 512

const tagMerge = "!!merge"

// Decode parses a YAML stream into a mapping.
// Every document in the stream is merged into the result in order. Empty
// documents (no content, null, or an empty sequence) contribute nothing.
func Decode(data []byte) (*Mapping, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	result := NewMapping()

	for i := 1; ; i++ {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document %d: %w", i, err)
		}

		value, err := FromNode(&doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		if isEmpty(value) {
			continue
		}

		m, ok := value.(*Mapping)
		if !ok {
			return nil, fmt.Errorf("document %d: %w (got %s)", i, ErrNotMapping, value.Kind())
		}
		result = Merge(result, m)
	}

	return result, nil
}

// FromNode converts a yaml.v3 node into a Value. A document node without
// content converts to nil.
func FromNode(n *yaml.Node) (Value, error) {
	return fromNode(n, 0)
}

func fromNode(n *yaml.Node, depth int) (Value, error) {
	if n == nil {
		return nil, nil
	}
	if depth > maxDepth {
		return nil, fmt.Errorf("line %d: nesting deeper than %d levels", n.Line, maxDepth)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromNode(n.Content[0], depth+1)

	case yaml.AliasNode:
		return fromNode(n.Alias, depth+1)

	case yaml.ScalarNode:
		return Scalar{Text: n.Value, Tag: n.ShortTag()}, nil

	case yaml.SequenceNode:
		seq := make(Sequence, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := fromNode(item, depth+1)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil

	case yaml.MappingNode:
		return mappingFromNode(n, depth)

	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

func mappingFromNode(n *yaml.Node, depth int) (*Mapping, error) {
	m := NewMapping()
	var inherited []*Mapping

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valueNode := n.Content[i], n.Content[i+1]

		value, err := fromNode(valueNode, depth+1)
		if err != nil {
			return nil, err
		}

		// "<<: *anchor" pulls in keys the mapping does not set itself.
		if keyNode.Kind == yaml.ScalarNode && keyNode.ShortTag() == tagMerge {
			switch src := value.(type) {
			case *Mapping:
				inherited = append(inherited, src)
			case Sequence:
				inherited = append(inherited, src.Mappings()...)
			default:
				return nil, fmt.Errorf("line %d: merge key expects a mapping", keyNode.Line)
			}
			continue
		}

		key, err := keyText(keyNode, depth)
		if err != nil {
			return nil, err
		}
		m.Set(key, value)
	}

	for _, src := range inherited {
		for k, v := range src.All() {
			if !m.Has(k) {
				m.Set(k, Copy(v))
			}
		}
	}

	return m, nil
}

func keyText(n *yaml.Node, depth int) (string, error) {
	if n.Kind == yaml.ScalarNode {
		return n.Value, nil
	}
	v, err := fromNode(n, depth+1)
	if err != nil {
		return "", err
	}
	return Format(v), nil
}

func isEmpty(v Value) bool {
	switch val := v.(type) {
	case nil:
		return true
	case Scalar:
		return val.IsNull() || val.Text == ""
	case Sequence:
		return len(val) == 0
	case *Mapping:
		return val.Len() == 0
	}
	return false
}
