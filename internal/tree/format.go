package tree

import "strings"

// Format renders a value on a single line. Scalars print their text,
// sequences and mappings print in YAML flow style: [a, b] and {k: v}.
func Format(v Value) string {
	var b strings.Builder
	writeFlow(&b, v)
	return b.String()
}

func writeFlow(b *strings.Builder, v Value) {
	switch val := v.(type) {
	case Scalar:
		b.WriteString(val.String())
	case Sequence:
		b.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				b.WriteString(", ")
			}
			writeFlow(b, item)
		}
		b.WriteByte(']')
	case *Mapping:
		b.WriteByte('{')
		i := 0
		for k, item := range val.All() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteString(": ")
			writeFlow(b, item)
			i++
		}
		b.WriteByte('}')
	}
}
