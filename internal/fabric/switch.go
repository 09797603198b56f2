package fabric

import (
	"strings"

	"github.com/cameronsjo/fabricdocs/internal/tree"
)

// RoleSpine is the role value that marks a spine switch.
const RoleSpine = "spine"

// IsSpine reports whether the switch role is "spine", ignoring case.
// Switches without a usable role are leafs.
func IsSpine(sw *tree.Mapping) bool {
	role, ok := sw.String("role")
	return ok && strings.EqualFold(role, RoleSpine)
}

// SwitchTitle returns the switch name, then its hostname, then fallback.
func SwitchTitle(sw *tree.Mapping, fallback string) string {
	if name, ok := sw.String("name"); ok {
		return name
	}
	if hostname, ok := sw.String("hostname"); ok {
		return hostname
	}
	return fallback
}

// Spines returns the spine switches in topology order.
func Spines(switches tree.Sequence) []*tree.Mapping {
	return filterSwitches(switches, true)
}

// Leafs returns every switch that is not a spine, in topology order.
func Leafs(switches tree.Sequence) []*tree.Mapping {
	return filterSwitches(switches, false)
}

func filterSwitches(switches tree.Sequence, spine bool) []*tree.Mapping {
	var result []*tree.Mapping
	for _, sw := range switches.Mappings() {
		if IsSpine(sw) == spine {
			result = append(result, sw)
		}
	}
	return result
}
