package report

import (
	"strings"
	"unicode"

	"github.com/cameronsjo/fabricdocs/internal/tree"
)

// Indentation used for nested interface rows.
const (
	nestIndent  = "&nbsp;&nbsp;&nbsp;&nbsp;"
	nestIndent2 = nestIndent + nestIndent
)

// Humanize turns a configuration key into a display label: underscores
// become spaces and every word is capitalized with the rest lower-cased.
// A word starts after any character that is not a letter, so "l3vni"
// becomes "L3Vni".
func Humanize(key string) string {
	var b strings.Builder
	b.Grow(len(key))

	inWord := false
	for _, r := range strings.ReplaceAll(key, "_", " ") {
		if unicode.IsLetter(r) {
			if inWord {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToTitle(r)
			}
			inWord = true
		} else {
			inWord = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

var cellReplacer = strings.NewReplacer(
	"|", `\|`,
	"\r\n", "<br>",
	"\n", "<br>",
)

// Cell escapes text so it stays inside one markdown table cell.
func Cell(s string) string {
	return cellReplacer.Replace(s)
}

// valueCell renders any tree value as table cell text.
func valueCell(v tree.Value) string {
	return Cell(tree.Format(v))
}

// settingRows renders every entry of m as a humanized key/value row, in
// original order.
func settingRows(m *tree.Mapping) []row {
	rows := make([]row, 0, m.Len())
	for key, value := range m.All() {
		rows = append(rows, row{Key: Cell(Humanize(key)), Value: valueCell(value)})
	}
	return rows
}

// leafRows renders a leaf switch. The interfaces list is expanded into one
// bold row per interface followed by indented rows for its attributes.
func leafRows(sw *tree.Mapping) []row {
	rows := make([]row, 0, sw.Len())
	for key, value := range sw.All() {
		ifaces, ok := value.(tree.Sequence)
		if key != "interfaces" || !ok {
			rows = append(rows, row{Key: Cell(Humanize(key)), Value: valueCell(value)})
			continue
		}

		rows = append(rows, row{Key: "Interfaces"})
		for _, item := range ifaces {
			iface, ok := item.(*tree.Mapping)
			if !ok {
				rows = append(rows, row{Key: nestIndent + "**" + valueCell(item) + "**"})
				continue
			}

			name, ok := iface.String("name")
			if !ok {
				name = "N/A"
			}
			rows = append(rows, row{Key: nestIndent + "**" + Cell(name) + "**"})

			for ifaceKey, ifaceValue := range iface.All() {
				if ifaceKey == "name" {
					continue
				}
				rows = append(rows, row{
					Key:   nestIndent2 + Cell(Humanize(ifaceKey)),
					Value: valueCell(ifaceValue),
				})
			}
		}
	}
	return rows
}
