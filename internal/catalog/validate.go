package catalog

import (
	"fmt"

	"github.com/tunestory/api/internal/model"
)

// MaxRecommendedInstruments is the soft cap on a selection
const MaxRecommendedInstruments = 6

// Validate checks a selection against every rule and reports all violations.
// Unknown ids are ignored when counting categories.
func Validate(ids []string) model.ValidationResult {
	errs := []model.ValidationError{}

	counts := make(map[string]int, len(categories))
	for _, id := range ids {
		inst, ok := instrumentByID[id]
		if !ok {
			continue
		}
		counts[inst.Category]++
	}

	// one conflict per offending category, in catalog order
	for _, cat := range categories {
		if !cat.AllowMultiple && counts[cat.ID] > 1 {
			errs = append(errs, model.ValidationError{
				Type:     model.ValidationCategoryConflict,
				Category: cat.ID,
				Message:  fmt.Sprintf("Only one %s instrument allowed", cat.Label),
			})
		}
	}

	if len(ids) == 0 {
		errs = append(errs, model.ValidationError{
			Type:    model.ValidationEmptySelection,
			Message: "Please select at least one instrument",
		})
	}

	if len(ids) > MaxRecommendedInstruments {
		errs = append(errs, model.ValidationError{
			Type:    model.ValidationTooMany,
			Message: fmt.Sprintf("Maximum %d instruments recommended for best results", MaxRecommendedInstruments),
		})
	}

	return model.ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

// Toggle adds id to the selection if absent and removes it otherwise. When the
// addition would break an exclusive category, the selected member of that
// category is replaced instead. The input slice is not modified.
func Toggle(selected []string, id string) []string {
	out := make([]string, 0, len(selected)+1)
	removed := false
	for _, s := range selected {
		if s == id {
			removed = true
			continue
		}
		out = append(out, s)
	}
	if removed {
		return out
	}

	inst, ok := instrumentByID[id]
	if ok {
		if cat, ok := categoryByID[inst.Category]; ok && !cat.AllowMultiple {
			kept := out[:0]
			for _, s := range out {
				if other, ok := instrumentByID[s]; ok && other.Category == cat.ID {
					continue
				}
				kept = append(kept, s)
			}
			out = kept
		}
	}
	return append(out, id)
}
