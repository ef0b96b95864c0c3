package catalog

import "github.com/tunestory/api/internal/model"

// CompatibleInstruments suggests instruments that are compatible with every
// selected instrument. The result follows the first selected instrument's
// compatibility order and never contains a selected id. An unknown selected
// id has no compatibility, so it empties the result.
func CompatibleInstruments(ids []string) []model.Instrument {
	if len(ids) == 0 {
		return []model.Instrument{}
	}

	var candidates []string
	for i, id := range ids {
		compat := compatibilityOf(id)
		if i == 0 {
			candidates = append(candidates, compat...)
			continue
		}
		allowed := make(map[string]struct{}, len(compat))
		for _, c := range compat {
			allowed[c] = struct{}{}
		}
		kept := candidates[:0]
		for _, c := range candidates {
			if _, ok := allowed[c]; ok {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}

	selected := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		selected[id] = struct{}{}
	}

	out := []model.Instrument{}
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if _, ok := selected[c]; ok {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		if inst, ok := instrumentByID[c]; ok {
			out = append(out, cloneInstrument(inst))
		}
	}
	return out
}

func compatibilityOf(id string) []string {
	inst, ok := instrumentByID[id]
	if !ok {
		return nil
	}
	return inst.Compatibility
}
