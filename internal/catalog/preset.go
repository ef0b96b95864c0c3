package catalog

import "github.com/tunestory/api/internal/model"

// FindMatchingPreset returns the first built-in preset whose instrument set
// equals the given ids. Order and duplicates are ignored; empty input never
// matches.
func FindMatchingPreset(ids []string) (model.InstrumentPreset, bool) {
	if len(ids) == 0 {
		return model.InstrumentPreset{}, false
	}

	want := toSet(ids)
	for _, p := range presets {
		if sameSet(want, toSet(p.Instruments)) {
			return clonePreset(p), true
		}
	}
	return model.InstrumentPreset{}, false
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
