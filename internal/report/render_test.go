package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cameronsjo/fabricdocs/internal/fabric"
	"github.com/cameronsjo/fabricdocs/internal/tree"
)

const fabricYAML = `
vxlan:
  fabric:
    name: DC1_Fabric
    type: VXLAN_EVPN
  global:
    ibgp:
      bgp_asn: 65001
      route_reflectors: 2
  topology:
    switches:
      - name: spine1
        role: Spine
        management:
          ip: 10.0.0.1
      - name: leaf1
        role: leaf
        interfaces:
          - name: eth1
            speed: 10G
          - name: eth2
            mode: trunk
            mtu: 9216
      - name: border1
  overlay:
    vrfs:
      - name: blue
        vrf_id: 50001
        vrf_attach_group: all_leafs
      - name: red
        vrf_id: 50002
    networks:
      - name: web
        vlan_id: 101
        network_attach_group: web_group
      - name: db
        vlan_id: 102
    vrf_attach_groups:
      - name: all_leafs
        switches:
          - hostname: leaf1
          - hostname: border1
    network_attach_groups:
      - name: web_group
        switches:
          - hostname: leaf1
            ports: [Ethernet1/1, Ethernet1/2]
`

func mustConfig(t *testing.T, src string) *fabric.Config {
	t.Helper()
	merged, err := tree.Decode([]byte(src))
	require.NoError(t, err)
	return fabric.New(merged)
}

func mustRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	return r
}

func TestRenderer_Fabric(t *testing.T) {
	page, err := mustRenderer(t).Fabric(mustConfig(t, fabricYAML))
	require.NoError(t, err)
	require.NotNil(t, page)

	assert.Equal(t, FabricPage, page.Name)
	assert.Equal(t, "# Fabric Overview\n\n"+
		"| Setting | Value |\n"+
		"|---------|-------|\n"+
		"| Name | DC1_Fabric |\n"+
		"| Type | VXLAN_EVPN |\n", page.Body)
}

func TestRenderer_GlobalSettings(t *testing.T) {
	r := mustRenderer(t)

	page, err := r.GlobalSettings(mustConfig(t, fabricYAML))
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Contains(t, page.Body, "# Global Settings\n\n")
	assert.Contains(t, page.Body, "| Bgp Asn | 65001 |\n")
	assert.Contains(t, page.Body, "| Route Reflectors | 2 |\n")

	t.Run("skipped without ibgp", func(t *testing.T) {
		page, err := r.GlobalSettings(mustConfig(t, "vxlan:\n  global:\n    other: 1\n"))
		require.NoError(t, err)
		assert.Nil(t, page)
	})
}

func TestRenderer_Spines(t *testing.T) {
	page, err := mustRenderer(t).Spines(mustConfig(t, fabricYAML))
	require.NoError(t, err)
	require.NotNil(t, page)

	assert.Equal(t, "# Spine Switches\n\n"+
		"## spine1\n\n"+
		"| Setting | Value |\n"+
		"|---------|-------|\n"+
		"| Name | spine1 |\n"+
		"| Role | Spine |\n"+
		"| Management | {ip: 10.0.0.1} |\n"+
		"\n", page.Body)
}

func TestRenderer_Leafs(t *testing.T) {
	page, err := mustRenderer(t).Leafs(mustConfig(t, fabricYAML))
	require.NoError(t, err)
	require.NotNil(t, page)

	body := page.Body
	assert.Contains(t, body, "# Leaf Switches\n\n")
	assert.Contains(t, body, "## leaf1\n\n")
	assert.Contains(t, body, "## border1\n\n", "switch without role is a leaf")
	assert.NotContains(t, body, "## spine1")

	assert.Contains(t, body, "| Interfaces | |\n")
	assert.Contains(t, body, "| &nbsp;&nbsp;&nbsp;&nbsp;**eth1** | |\n")
	assert.Contains(t, body, "| &nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;Speed | 10G |\n")
	assert.Contains(t, body, "| &nbsp;&nbsp;&nbsp;&nbsp;**eth2** | |\n")
	assert.Contains(t, body, "| &nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;Mtu | 9216 |\n")
	assert.NotContains(t, body, "[{name: eth1")
}

func TestRenderer_Topology_RoleCaseInsensitive(t *testing.T) {
	cfg := mustConfig(t, `
vxlan:
  topology:
    switches:
      - name: first
        role: Spine
      - name: second
        role: leaf
`)
	r := mustRenderer(t)

	spines, err := r.Spines(cfg)
	require.NoError(t, err)
	assert.Contains(t, spines.Body, "## first")
	assert.NotContains(t, spines.Body, "## second")

	leafs, err := r.Leafs(cfg)
	require.NoError(t, err)
	assert.Contains(t, leafs.Body, "## second")
	assert.NotContains(t, leafs.Body, "## first")
}

func TestRenderer_VRFs(t *testing.T) {
	page, err := mustRenderer(t).VRFs(mustConfig(t, fabricYAML))
	require.NoError(t, err)
	require.NotNil(t, page)

	assert.Equal(t, "# VRFs\n\n"+
		"## blue\n\n"+
		"| Setting | Value |\n"+
		"|---------|-------|\n"+
		"| Name | blue |\n"+
		"| Vrf Id | 50001 |\n"+
		"| Vrf Attach Group | all_leafs |\n"+
		"\n"+
		"### VRF Attached List\n\n"+
		"| Switch Hostname |\n"+
		"|-----------------|\n"+
		"| leaf1 |\n"+
		"| border1 |\n"+
		"\n"+
		"## red\n\n"+
		"| Setting | Value |\n"+
		"|---------|-------|\n"+
		"| Name | red |\n"+
		"| Vrf Id | 50002 |\n"+
		"\n", page.Body)
}

func TestRenderer_Networks(t *testing.T) {
	page, err := mustRenderer(t).Networks(mustConfig(t, fabricYAML))
	require.NoError(t, err)
	require.NotNil(t, page)

	assert.Equal(t, "# Networks\n\n"+
		"## web\n\n"+
		"| Setting | Value |\n"+
		"|---------|-------|\n"+
		"| Name | web |\n"+
		"| Vlan Id | 101 |\n"+
		"| Network Attach Group | web_group |\n"+
		"\n"+
		"### Network Attached List\n\n"+
		"#### Switch: leaf1\n\n"+
		"- Port: Ethernet1/1\n"+
		"- Port: Ethernet1/2\n"+
		"\n"+
		"## db\n\n"+
		"| Setting | Value |\n"+
		"|---------|-------|\n"+
		"| Name | db |\n"+
		"| Vlan Id | 102 |\n"+
		"\n"+
		"### Network Attached List\n\n", page.Body)
}

func TestRenderer_Index(t *testing.T) {
	r := mustRenderer(t)

	page, err := r.Index(IndexInfo{
		InputDir:  "configs/",
		Timestamp: "2024-05-01T10:00:00Z",
		Files:     []string{"fabric.yaml", "overlay.yaml"},
	})
	require.NoError(t, err)

	assert.Equal(t, IndexPage, page.Name)
	assert.Contains(t, page.Body, "# VXLAN Fabric Documentation\n\n")
	assert.Contains(t, page.Body, "Generated from YAML files in `configs/` on 2024-05-01T10:00:00Z.\n\n")
	assert.Contains(t, page.Body, "The following YAML files were processed: fabric.yaml, overlay.yaml.\n\n")
	assert.NotContains(t, page.Body, "skipped")
	assert.True(t, len(page.Body) > 0 && page.Body[len(page.Body)-1] == '\n')

	t.Run("defaults and skipped files", func(t *testing.T) {
		page, err := r.Index(IndexInfo{InputDir: "in", Files: []string{"a.yaml", "b.yaml"}, Skipped: []string{"b.yaml"}})
		require.NoError(t, err)
		assert.Contains(t, page.Body, " on N/A.\n")
		assert.Contains(t, page.Body, "could not be parsed and were skipped: b.yaml.\n\n")
	})
}

func TestRenderer_MissingSections(t *testing.T) {
	r := mustRenderer(t)
	cfg := mustConfig(t, "vxlan:\n  other: true\n")

	for name, build := range map[string]func(*fabric.Config) (*Page, error){
		"fabric":   r.Fabric,
		"global":   r.GlobalSettings,
		"spines":   r.Spines,
		"leafs":    r.Leafs,
		"vrfs":     r.VRFs,
		"networks": r.Networks,
	} {
		t.Run(name, func(t *testing.T) {
			page, err := build(cfg)
			require.NoError(t, err)
			assert.Nil(t, page)
		})
	}
}

func TestRenderer_All(t *testing.T) {
	r := mustRenderer(t)

	t.Run("full configuration", func(t *testing.T) {
		pages, err := r.All(mustConfig(t, fabricYAML), IndexInfo{InputDir: "in"})
		require.NoError(t, err)

		var names []string
		for _, p := range pages {
			names = append(names, p.Name)
		}
		assert.Equal(t, []string{IndexPage, FabricPage, GlobalSettingsPage, SpinesPage, LeafsPage, VRFsPage, NetworksPage}, names)
	})

	t.Run("only index when sections are missing", func(t *testing.T) {
		pages, err := r.All(mustConfig(t, "unrelated: 1\n"), IndexInfo{InputDir: "in"})
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, IndexPage, pages[0].Name)
	})
}

func TestRenderer_VRFWithoutGroupHasNoAttachedList(t *testing.T) {
	page, err := mustRenderer(t).VRFs(mustConfig(t, "vxlan:\n  overlay:\n    vrfs:\n      - name: solo\n"))
	require.NoError(t, err)
	assert.NotContains(t, page.Body, "Attached List")
}

func TestRenderer_EscapesPipes(t *testing.T) {
	page, err := mustRenderer(t).Fabric(mustConfig(t, "vxlan:\n  fabric:\n    description: \"a|b\"\n"))
	require.NoError(t, err)
	assert.Contains(t, page.Body, `| Description | a\|b |`)
}
