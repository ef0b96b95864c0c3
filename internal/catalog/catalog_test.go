package catalog

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/tunestory/api/internal/model"
)

func TestCatalogReferentialIntegrity(t *testing.T) {
	for _, inst := range Instruments() {
		cat, ok := GetCategory(inst.Category)
		if !ok {
			t.Fatalf("instrument %s references unknown category %s", inst.ID, inst.Category)
		}
		found := false
		for _, id := range cat.Instruments {
			if id == inst.ID {
				found = true
			}
		}
		if !found {
			t.Errorf("category %s does not list instrument %s", cat.ID, inst.ID)
		}
	}

	for _, cat := range Categories() {
		for _, id := range cat.Instruments {
			if _, ok := GetInstrument(id); !ok {
				t.Errorf("category %s lists unknown instrument %s", cat.ID, id)
			}
		}
	}

	for _, p := range Presets() {
		for _, id := range p.Instruments {
			if _, ok := GetInstrument(id); !ok {
				t.Errorf("preset %s lists unknown instrument %s", p.ID, id)
			}
		}
	}
}

func TestCatalogSizes(t *testing.T) {
	if got := len(Instruments()); got != 14 {
		t.Errorf("expected 14 instruments, got %d", got)
	}
	if got := len(Categories()); got != 8 {
		t.Errorf("expected 8 categories, got %d", got)
	}
	if got := len(Presets()); got != 6 {
		t.Errorf("expected 6 presets, got %d", got)
	}
}

func TestGetInstrument(t *testing.T) {
	inst, ok := GetInstrument("piano")
	if !ok {
		t.Fatal("expected piano to exist")
	}
	if inst.PromptPhrase != "expressive piano melody" {
		t.Errorf("unexpected prompt phrase %q", inst.PromptPhrase)
	}

	for _, id := range []string{"Piano", "pian", "", "electronic-beats"} {
		if _, ok := GetInstrument(id); ok {
			t.Errorf("expected %q to be absent", id)
		}
	}
}

func TestInstrumentsByCategory(t *testing.T) {
	keys := InstrumentsByCategory(CategoryKeys)
	var ids []string
	for _, inst := range keys {
		ids = append(ids, inst.ID)
	}
	want := []string{"piano", "electric-piano", "synth"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("expected %v, got %v", want, ids)
	}

	if got := InstrumentsByCategory("percussion"); len(got) != 0 {
		t.Errorf("expected empty list for unknown category, got %d", len(got))
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	inst, _ := GetInstrument("drums")
	inst.Compatibility[0] = "mutated"

	again, _ := GetInstrument("drums")
	if again.Compatibility[0] != "bass" {
		t.Errorf("catalog was mutated through a returned value: %v", again.Compatibility)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		ids       []string
		valid     bool
		wantTypes []model.ValidationErrorType
	}{
		{"single instrument", []string{"piano"}, true, nil},
		{"one per category", []string{"drums", "bass", "piano", "strings", "guitar", "vocals"}, true, nil},
		{"multi allowed in keys", []string{"piano", "electric-piano", "synth"}, true, nil},
		{"empty", []string{}, false, []model.ValidationErrorType{model.ValidationEmptySelection}},
		{"nil", nil, false, []model.ValidationErrorType{model.ValidationEmptySelection}},
		{"rhythm conflict", []string{"drums", "soft-drums"}, false, []model.ValidationErrorType{model.ValidationCategoryConflict}},
		{"unknown ids skipped", []string{"piano", "theremin"}, true, nil},
		{
			"seven across categories",
			[]string{"drums", "bass", "piano", "strings", "guitar", "brass", "vocals"},
			false,
			[]model.ValidationErrorType{model.ValidationTooMany},
		},
		{
			"conflicts in two categories",
			[]string{"drums", "soft-drums", "bass", "synth-bass"},
			false,
			[]model.ValidationErrorType{model.ValidationCategoryConflict, model.ValidationCategoryConflict},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.ids)
			if res.Valid != tt.valid {
				t.Errorf("expected valid=%v, got %v (%+v)", tt.valid, res.Valid, res.Errors)
			}
			var types []model.ValidationErrorType
			for _, e := range res.Errors {
				types = append(types, e.Type)
			}
			if !reflect.DeepEqual(types, tt.wantTypes) {
				t.Errorf("expected errors %v, got %v", tt.wantTypes, types)
			}
		})
	}
}

func TestValidateConflictIsPerCategory(t *testing.T) {
	res := Validate([]string{"drums", "soft-drums", "drums"})
	if len(res.Errors) != 1 {
		t.Fatalf("expected one conflict, got %+v", res.Errors)
	}
	e := res.Errors[0]
	if e.Category != CategoryRhythm {
		t.Errorf("expected category %s, got %s", CategoryRhythm, e.Category)
	}
	if e.Message != "Only one Rhythm & Beats instrument allowed" {
		t.Errorf("unexpected message %q", e.Message)
	}
	if !res.Blocking() {
		t.Error("expected a category conflict to block")
	}
}

func TestValidateTooManyIsAdvisory(t *testing.T) {
	res := Validate([]string{"drums", "bass", "piano", "strings", "guitar", "brass", "vocals"})
	if res.Valid {
		t.Fatal("expected too_many to make the result invalid")
	}
	if res.Blocking() {
		t.Error("expected too_many to be advisory")
	}
	if res.Errors[0].Message != "Maximum 6 instruments recommended for best results" {
		t.Errorf("unexpected message %q", res.Errors[0].Message)
	}
}

func TestToggle(t *testing.T) {
	sel := Toggle(nil, "piano")
	sel = Toggle(sel, "drums")
	if !reflect.DeepEqual(sel, []string{"piano", "drums"}) {
		t.Fatalf("unexpected selection %v", sel)
	}

	// same category replacement
	sel = Toggle(sel, "soft-drums")
	if !reflect.DeepEqual(sel, []string{"piano", "soft-drums"}) {
		t.Fatalf("expected soft-drums to replace drums, got %v", sel)
	}

	// keys allow multiple
	sel = Toggle(sel, "synth")
	if !reflect.DeepEqual(sel, []string{"piano", "soft-drums", "synth"}) {
		t.Fatalf("unexpected selection %v", sel)
	}

	sel = Toggle(sel, "piano")
	if !reflect.DeepEqual(sel, []string{"soft-drums", "synth"}) {
		t.Fatalf("expected piano to be removed, got %v", sel)
	}
}

func TestCompatibleInstrumentsEmpty(t *testing.T) {
	got := CompatibleInstruments(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil result, got %v", got)
	}
}

func TestCompatibleInstrumentsSingle(t *testing.T) {
	for _, inst := range Instruments() {
		got := CompatibleInstruments([]string{inst.ID})
		var ids []string
		for _, g := range got {
			ids = append(ids, g.ID)
		}
		var want []string
		for _, c := range inst.Compatibility {
			if _, known := GetInstrument(c); known && c != inst.ID {
				want = append(want, c)
			}
		}
		if !reflect.DeepEqual(ids, want) {
			t.Errorf("%s: expected %v, got %v", inst.ID, want, ids)
		}
	}
}

func TestCompatibleInstrumentsDropsUnknownIDs(t *testing.T) {
	tests := []struct {
		selected []string
		want     []string
	}{
		{[]string{"synth"}, []string{"bass", "ambient"}},
		{[]string{"synth-bass"}, []string{"synth", "ambient"}},
		{[]string{"synth", "ambient"}, nil},
	}
	for _, tt := range tests {
		var ids []string
		for _, g := range CompatibleInstruments(tt.selected) {
			ids = append(ids, g.ID)
		}
		if !reflect.DeepEqual(ids, tt.want) {
			t.Errorf("%v: expected %v, got %v", tt.selected, tt.want, ids)
		}
	}
}

func TestCompatibleInstrumentsIntersection(t *testing.T) {
	// drums: bass piano guitar synth; bass: drums piano guitar synth
	got := CompatibleInstruments([]string{"drums", "bass"})
	var ids []string
	for _, g := range got {
		ids = append(ids, g.ID)
	}
	want := []string{"piano", "guitar", "synth"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("expected %v, got %v", want, ids)
	}

	// piano: bass drums strings guitar; adding guitar (bass drums piano) leaves bass drums
	got = CompatibleInstruments([]string{"piano", "guitar"})
	ids = ids[:0]
	for _, g := range got {
		ids = append(ids, g.ID)
	}
	if !reflect.DeepEqual(ids, []string{"bass", "drums"}) {
		t.Errorf("unexpected intersection %v", ids)
	}

	if got := CompatibleInstruments([]string{"piano", "theremin"}); len(got) != 0 {
		t.Errorf("expected unknown id to empty the intersection, got %v", got)
	}
}

func TestFindMatchingPreset(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for _, p := range Presets() {
		got, ok := FindMatchingPreset(p.Instruments)
		if !ok || got.ID != p.ID {
			t.Errorf("expected %s to match itself, got %v %v", p.ID, got.ID, ok)
		}

		shuffled := append([]string(nil), p.Instruments...)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		got, ok = FindMatchingPreset(shuffled)
		if !ok || got.ID != p.ID {
			t.Errorf("expected shuffled %v to match %s", shuffled, p.ID)
		}
	}

	if _, ok := FindMatchingPreset(nil); ok {
		t.Error("expected empty input not to match")
	}
	if _, ok := FindMatchingPreset([]string{"soft-drums", "bass"}); ok {
		t.Error("expected a subset not to match")
	}
	if _, ok := FindMatchingPreset([]string{"soft-drums", "bass", "piano", "vocals"}); ok {
		t.Error("expected a superset not to match")
	}
	if got, ok := FindMatchingPreset([]string{"piano", "bass", "soft-drums", "piano"}); !ok || got.ID != "lofi-trio" {
		t.Error("expected duplicates to be ignored")
	}
}

func TestInstrumentPrompt(t *testing.T) {
	got := InstrumentPrompt([]string{"piano", "theremin", "bass"})
	want := "expressive piano melody with warm bass guitar with smooth groove"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if got := InstrumentPrompt(nil); got != "" {
		t.Errorf("expected empty prompt, got %q", got)
	}
}

func TestMapAIInstruments(t *testing.T) {
	got := MapAIInstruments([]string{" Piano ", "Electronic Beats", "kazoo", "horns", "PIANO", "Synthesizers"})
	want := []string{"piano", "drums", "brass", "synth"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got := MapAIInstruments(nil); len(got) != 0 {
		t.Errorf("expected no ids, got %v", got)
	}
}
