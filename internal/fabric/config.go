package fabric

import (
	"strings"

	"github.com/cameronsjo/fabricdocs/internal/tree"
)

// PayloadKey is the top-level key that holds the fabric configuration.
const PayloadKey = "vxlan"

// DefaultName is used when the fabric section has no name.
const DefaultName = "Unnamed Fabric"

// Section names inside the payload.
const (
	SectionFabric   = "fabric"
	SectionGlobal   = "global"
	SectionTopology = "topology"
	SectionOverlay  = "overlay"
)

// Config is a read-only view over the merged vxlan payload.
type Config struct {
	root *tree.Mapping
}

// New returns the view over merged[vxlan]. A missing or malformed payload
// produces an empty configuration.
func New(merged *tree.Mapping) *Config {
	payload, ok := merged.Mapping(PayloadKey)
	if !ok {
		payload = tree.NewMapping()
	}
	return &Config{root: payload}
}

// Root returns the payload mapping.
func (c *Config) Root() *tree.Mapping {
	return c.root
}

// Fabric returns the fabric section.
func (c *Config) Fabric() (*tree.Mapping, bool) {
	return c.root.Mapping(SectionFabric)
}

// Global returns the global section.
func (c *Config) Global() (*tree.Mapping, bool) {
	return c.root.Mapping(SectionGlobal)
}

// IBGP returns global.ibgp.
func (c *Config) IBGP() (*tree.Mapping, bool) {
	global, _ := c.Global()
	return global.Mapping("ibgp")
}

// Topology returns the topology section.
func (c *Config) Topology() (*tree.Mapping, bool) {
	return c.root.Mapping(SectionTopology)
}

// Switches returns topology.switches.
func (c *Config) Switches() (tree.Sequence, bool) {
	topology, _ := c.Topology()
	return topology.Sequence("switches")
}

// Overlay returns the overlay section.
func (c *Config) Overlay() (*tree.Mapping, bool) {
	return c.root.Mapping(SectionOverlay)
}

// VRFs returns overlay.vrfs.
func (c *Config) VRFs() (tree.Sequence, bool) {
	overlay, _ := c.Overlay()
	return overlay.Sequence("vrfs")
}

// Networks returns overlay.networks.
func (c *Config) Networks() (tree.Sequence, bool) {
	overlay, _ := c.Overlay()
	return overlay.Sequence("networks")
}

// Name returns fabric.name, or DefaultName when absent.
func (c *Config) Name() string {
	fabric, _ := c.Fabric()
	if name, ok := fabric.String("name"); ok {
		return name
	}
	return DefaultName
}

// DisplayName returns the fabric name with underscores replaced by spaces.
func (c *Config) DisplayName() string {
	return strings.ReplaceAll(c.Name(), "_", " ")
}
