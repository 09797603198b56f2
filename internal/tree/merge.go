package tree

// Merge recursively merges overlay into base and returns a new mapping.
// Merge semantics:
//   - mapping + mapping: recursive merge
//   - sequence + sequence: base items followed by overlay items (duplicates kept)
//   - anything else: overlay replaces base
//
// Keys already in base keep their position, new keys are appended in
// overlay order. Neither input is modified.
func Merge(base, overlay *Mapping) *Mapping {
	result := base.Clone()

	for key, overlayValue := range overlay.All() {
		baseValue, exists := result.Get(key)
		if !exists {
			result.Set(key, Copy(overlayValue))
			continue
		}

		// Both are mappings - recursive merge
		baseMap, baseIsMap := baseValue.(*Mapping)
		overlayMap, overlayIsMap := overlayValue.(*Mapping)
		if baseIsMap && overlayIsMap {
			result.Set(key, Merge(baseMap, overlayMap))
			continue
		}

		// Both are sequences - concatenate
		baseList, baseIsList := baseValue.(Sequence)
		overlayList, overlayIsList := overlayValue.(Sequence)
		if baseIsList && overlayIsList {
			merged := make(Sequence, 0, len(baseList)+len(overlayList))
			merged = append(merged, baseList...)
			for _, item := range overlayList {
				merged = append(merged, Copy(item))
			}
			result.Set(key, merged)
			continue
		}

		// Default: replace
		result.Set(key, Copy(overlayValue))
	}

	return result
}

// MergeAll folds Merge over docs left to right, seeded with an empty
// mapping.
func MergeAll(docs ...*Mapping) *Mapping {
	result := NewMapping()
	for _, doc := range docs {
		result = Merge(result, doc)
	}
	return result
}
