package fabric

import (
	"github.com/cameronsjo/fabricdocs/internal/tree"
)

// Keys linking overlay entities to their attach groups.
const (
	VRFAttachGroupKey     = "vrf_attach_group"
	NetworkAttachGroupKey = "network_attach_group"
	VRFAttachGroups       = "vrf_attach_groups"
	NetworkAttachGroups   = "network_attach_groups"
)

// GroupRef returns the attach group name referenced by entity under key,
// or "" if there is none.
func GroupRef(entity *tree.Mapping, key string) string {
	name, _ := entity.String(key)
	return name
}

// ResolveVRFAttachments returns the hostnames of the switches in the VRF
// attach group called groupName, in group order. Switch entries without a
// hostname are skipped. An empty or unknown name yields no hostnames.
func ResolveVRFAttachments(groupName string, overlay *tree.Mapping) []string {
	group, ok := findGroup(overlay, VRFAttachGroups, groupName)
	if !ok {
		return nil
	}

	switches, _ := group.Sequence("switches")
	var hostnames []string
	for _, sw := range switches.Mappings() {
		if hostname, ok := sw.String("hostname"); ok {
			hostnames = append(hostnames, hostname)
		}
	}
	return hostnames
}

// ResolveNetworkAttachments returns the switch entries (hostname and ports)
// of the network attach group called groupName, in group order. The
// returned mappings belong to overlay and must not be modified.
func ResolveNetworkAttachments(groupName string, overlay *tree.Mapping) []*tree.Mapping {
	group, ok := findGroup(overlay, NetworkAttachGroups, groupName)
	if !ok {
		return nil
	}

	switches, _ := group.Sequence("switches")
	return switches.Mappings()
}

// SwitchPorts returns the ports listed on an attached switch entry.
func SwitchPorts(sw *tree.Mapping) []string {
	ports, _ := sw.Sequence("ports")
	result := make([]string, 0, len(ports))
	for _, p := range ports {
		result = append(result, tree.Format(p))
	}
	return result
}

// findGroup returns the first group in overlay[section] whose name equals
// name. Later groups with the same name are never consulted.
func findGroup(overlay *tree.Mapping, section, name string) (*tree.Mapping, bool) {
	if name == "" {
		return nil, false
	}

	groups, _ := overlay.Sequence(section)
	for _, group := range groups.Mappings() {
		if groupName, ok := group.String("name"); ok && groupName == name {
			return group, true
		}
	}
	return nil, false
}

// DuplicateGroup describes an attach group name used more than once.
type DuplicateGroup struct {
	Section string
	Name    string
	Count   int
}

// DuplicateGroups lists attach group names that occur more than once in
// either attach group section, in order of first appearance. Only the
// first group of each name is used by the resolvers.
func DuplicateGroups(overlay *tree.Mapping) []DuplicateGroup {
	var result []DuplicateGroup
	for _, section := range []string{VRFAttachGroups, NetworkAttachGroups} {
		groups, _ := overlay.Sequence(section)

		counts := make(map[string]int)
		var order []string
		for _, group := range groups.Mappings() {
			name, ok := group.String("name")
			if !ok {
				continue
			}
			if counts[name] == 0 {
				order = append(order, name)
			}
			counts[name]++
		}

		for _, name := range order {
			if counts[name] > 1 {
				result = append(result, DuplicateGroup{Section: section, Name: name, Count: counts[name]})
			}
		}
	}
	return result
}
