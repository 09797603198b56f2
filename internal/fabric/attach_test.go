package fabric

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cameronsjo/fabricdocs/internal/tree"
)

const overlayYAML = `
vxlan:
  overlay:
    vrf_attach_groups:
      - name: G
        switches:
          - hostname: leaf1
          - hostname: leaf2
      - name: G
        switches:
          - hostname: leaf9
      - name: partial
        switches:
          - hostname: leaf3
          - role: missing-hostname
    network_attach_groups:
      - name: web_group
        switches:
          - hostname: leaf1
            ports: [Ethernet1/1, Ethernet1/2]
          - hostname: leaf2
      - name: web_group
        switches:
          - hostname: leaf9
`

func mustOverlay(t *testing.T) *tree.Mapping {
	t.Helper()
	overlay, ok := mustConfig(t, overlayYAML).Overlay()
	require.True(t, ok)
	return overlay
}

func TestResolveVRFAttachments(t *testing.T) {
	overlay := mustOverlay(t)

	t.Run("returns hostnames in order", func(t *testing.T) {
		assert.Equal(t, []string{"leaf1", "leaf2"}, ResolveVRFAttachments("G", overlay))
	})

	t.Run("empty name matches nothing", func(t *testing.T) {
		assert.Empty(t, ResolveVRFAttachments("", overlay))
	})

	t.Run("unknown name matches nothing", func(t *testing.T) {
		assert.Empty(t, ResolveVRFAttachments("nonexistent-group", overlay))
	})

	t.Run("entries without hostname are skipped", func(t *testing.T) {
		assert.Equal(t, []string{"leaf3"}, ResolveVRFAttachments("partial", overlay))
	})

	t.Run("missing overlay", func(t *testing.T) {
		assert.Empty(t, ResolveVRFAttachments("G", nil))
	})

	t.Run("group name match is exact", func(t *testing.T) {
		assert.Empty(t, ResolveVRFAttachments("g", overlay))
	})
}

func TestResolveNetworkAttachments(t *testing.T) {
	overlay := mustOverlay(t)

	switches := ResolveNetworkAttachments("web_group", overlay)
	require.Len(t, switches, 2, "only the first group with a given name is used")

	hostname, _ := switches[0].String("hostname")
	assert.Equal(t, "leaf1", hostname)
	assert.Equal(t, []string{"Ethernet1/1", "Ethernet1/2"}, SwitchPorts(switches[0]))

	hostname, _ = switches[1].String("hostname")
	assert.Equal(t, "leaf2", hostname)
	assert.Empty(t, SwitchPorts(switches[1]))

	assert.Empty(t, ResolveNetworkAttachments("", overlay))
	assert.Empty(t, ResolveNetworkAttachments("missing", overlay))
}

func TestResolve_DoesNotMutateOverlay(t *testing.T) {
	overlay := mustOverlay(t)
	before := tree.Format(overlay)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ResolveVRFAttachments("G", overlay)
			ResolveNetworkAttachments("web_group", overlay)
		}()
	}
	wg.Wait()

	assert.Equal(t, before, tree.Format(overlay))
}

func TestDuplicateGroups(t *testing.T) {
	dups := DuplicateGroups(mustOverlay(t))
	assert.Equal(t, []DuplicateGroup{
		{Section: VRFAttachGroups, Name: "G", Count: 2},
		{Section: NetworkAttachGroups, Name: "web_group", Count: 2},
	}, dups)

	assert.Empty(t, DuplicateGroups(nil))
}

func TestGroupRef(t *testing.T) {
	vrfs, ok := mustConfig(t, "vxlan:\n  overlay:\n    vrfs:\n      - name: a\n        vrf_attach_group: G\n      - name: b\n").VRFs()
	require.True(t, ok)

	entities := vrfs.Mappings()
	assert.Equal(t, "G", GroupRef(entities[0], VRFAttachGroupKey))
	assert.Equal(t, "", GroupRef(entities[1], VRFAttachGroupKey))
}
