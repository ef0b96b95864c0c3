// Package catalog holds the static instrument, category, preset and genre
// tables together with the selection rules that operate on them.
//
// The tables are built once at init and never mutated. Every exported
// accessor returns copies, so callers may modify what they receive.
package catalog

import (
	"strings"

	"github.com/tunestory/api/internal/model"
)

var (
	instrumentByID = make(map[string]model.Instrument, len(instruments))
	categoryByID   = make(map[string]model.InstrumentCategory, len(categories))
	presetByID     = make(map[string]model.InstrumentPreset, len(presets))
)

func init() {
	for _, inst := range instruments {
		instrumentByID[inst.ID] = inst
	}
	for _, cat := range categories {
		categoryByID[cat.ID] = cat
	}
	for _, p := range presets {
		presetByID[p.ID] = p
	}
	initGenres()
}

// GetInstrument looks up an instrument by its exact id
func GetInstrument(id string) (model.Instrument, bool) {
	inst, ok := instrumentByID[id]
	if !ok {
		return model.Instrument{}, false
	}
	return cloneInstrument(inst), true
}

// InstrumentsByCategory returns the members of a category in declaration order.
// An unknown category yields an empty list.
func InstrumentsByCategory(categoryID string) []model.Instrument {
	cat, ok := categoryByID[categoryID]
	if !ok {
		return []model.Instrument{}
	}
	out := make([]model.Instrument, 0, len(cat.Instruments))
	for _, id := range cat.Instruments {
		if inst, ok := instrumentByID[id]; ok {
			out = append(out, cloneInstrument(inst))
		}
	}
	return out
}

// GetCategory looks up a category by id
func GetCategory(id string) (model.InstrumentCategory, bool) {
	cat, ok := categoryByID[id]
	if !ok {
		return model.InstrumentCategory{}, false
	}
	return cloneCategory(cat), true
}

func Categories() []model.InstrumentCategory {
	out := make([]model.InstrumentCategory, len(categories))
	for i, cat := range categories {
		out[i] = cloneCategory(cat)
	}
	return out
}

func Instruments() []model.Instrument {
	out := make([]model.Instrument, len(instruments))
	for i, inst := range instruments {
		out[i] = cloneInstrument(inst)
	}
	return out
}

func Presets() []model.InstrumentPreset {
	out := make([]model.InstrumentPreset, len(presets))
	for i, p := range presets {
		out[i] = clonePreset(p)
	}
	return out
}

// GetPreset looks up a built-in preset by id
func GetPreset(id string) (model.InstrumentPreset, bool) {
	p, ok := presetByID[id]
	if !ok {
		return model.InstrumentPreset{}, false
	}
	return clonePreset(p), true
}

// InstrumentPrompt joins the prompt phrases of the known ids with " with ".
// Unknown ids are skipped.
func InstrumentPrompt(ids []string) string {
	phrases := make([]string, 0, len(ids))
	for _, id := range ids {
		if inst, ok := instrumentByID[id]; ok {
			phrases = append(phrases, inst.PromptPhrase)
		}
	}
	return strings.Join(phrases, " with ")
}

func cloneInstrument(inst model.Instrument) model.Instrument {
	inst.Tags = append([]string(nil), inst.Tags...)
	inst.Compatibility = append([]string(nil), inst.Compatibility...)
	inst.EnergyFit = append([]model.EnergyLevel(nil), inst.EnergyFit...)
	return inst
}

func cloneCategory(cat model.InstrumentCategory) model.InstrumentCategory {
	cat.Instruments = append([]string(nil), cat.Instruments...)
	return cat
}

func clonePreset(p model.InstrumentPreset) model.InstrumentPreset {
	p.Instruments = append([]string(nil), p.Instruments...)
	p.Tags = append([]string(nil), p.Tags...)
	return p
}
