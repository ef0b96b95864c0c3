package model

type ValidationErrorType string

const (
	ValidationCategoryConflict ValidationErrorType = "category_conflict"
	ValidationEmptySelection   ValidationErrorType = "empty_selection"
	ValidationTooMany          ValidationErrorType = "too_many"
)

// ValidationError describes one broken selection rule
type ValidationError struct {
	Type     ValidationErrorType `json:"type"`
	Category string              `json:"category,omitempty"`
	Message  string              `json:"message"`
}

// Advisory reports whether the error may be ignored when applying a selection
func (e ValidationError) Advisory() bool {
	return e.Type == ValidationTooMany
}

// ValidationResult is the outcome of validating an instrument selection
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors"`
}

// Blocking reports whether any error forbids applying the selection
func (r ValidationResult) Blocking() bool {
	for _, e := range r.Errors {
		if !e.Advisory() {
			return true
		}
	}
	return false
}

// SelectionRequest carries an instrument id selection
type SelectionRequest struct {
	InstrumentIDs []string `json:"instrumentIds" validate:"max=32,dive,min=1,max=64"`
}

// ToggleRequest flips one instrument in a selection
type ToggleRequest struct {
	InstrumentIDs []string `json:"instrumentIds" validate:"max=32,dive,min=1,max=64"`
	InstrumentID  string   `json:"instrumentId" validate:"required,max=64"`
}

type ToggleResponse struct {
	InstrumentIDs []string         `json:"instrumentIds"`
	Validation    ValidationResult `json:"validation"`
}

type CompatibleResponse struct {
	Instruments []Instrument `json:"instruments"`
}

// PresetMatchResponse carries the preset whose instruments equal the selection, or null
type PresetMatchResponse struct {
	Preset *InstrumentPreset `json:"preset"`
}
