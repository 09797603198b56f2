// Package tree provides the ordered document model used for fabric
// configuration.
//
// A document is a tree of three value kinds:
//
//   - Scalar: a leaf, kept as its YAML source text plus resolved tag
//   - *Mapping: string keys in insertion order
//   - Sequence: an ordered list of values
//
// Decode turns a YAML stream into a *Mapping and Merge combines two
// mappings:
//
//	merged := tree.Merge(base, overlay)
//
// Mappings merge recursively, sequences concatenate (base first) and every
// other combination is replaced by the overlay value. Inputs are never
// modified, so a decoded tree can be shared by readers without locking.
package tree
