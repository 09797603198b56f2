// Package fabric loads VXLAN fabric documents and exposes the merged
// configuration.
//
// Every document in the input directory is expected to carry its payload
// under a top-level vxlan key:
//
//	vxlan:
//	  fabric:
//	    name: DC1_Fabric
//	  topology:
//	    switches:
//	      - name: spine1
//	        role: spine
//	  overlay:
//	    vrfs:
//	      - name: blue
//	        vrf_attach_group: all_leafs
//
// LoadDir merges the documents in file name order. New wraps the merged
// tree in a read-only Config, and the Resolve functions turn attach group
// references into the switches they name.
package fabric
