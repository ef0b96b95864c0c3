package model

// RefineRequest asks the server to resolve an analysis against user choices
type RefineRequest struct {
	Analysis    *PhotoAnalysis `json:"analysis"`
	Genre       string         `json:"genre" validate:"omitempty,max=64"`
	Instruments []string       `json:"instruments" validate:"max=32,dive,min=1,max=64"`
	Energy      EnergyLevel    `json:"energy" validate:"omitempty,oneof=Low Medium High"`
	Vibe        string         `json:"vibe" validate:"omitempty,max=500"`
	BlendRatio  *int           `json:"blendRatio" validate:"omitempty,min=0,max=100"`
	StyleLevel  *int           `json:"styleLevel" validate:"omitempty,min=0,max=10"`
	VocalType   VocalType      `json:"vocalType" validate:"omitempty,oneof=instrumental minimal-vocals vocal-focused"`
}

// RefineResponse carries the resolved analysis and its rendered prompt
type RefineResponse struct {
	Refined    RefinedAnalysis   `json:"refined"`
	Prompt     string            `json:"prompt"`
	Validation ValidationResult  `json:"validation"`
	Preset     *InstrumentPreset `json:"preset"`
}

// PromptBuildRequest renders an already refined analysis
type PromptBuildRequest struct {
	Refined    RefinedAnalysis `json:"refined"`
	StyleLevel *int            `json:"styleLevel" validate:"omitempty,min=0,max=10"`
	VocalType  VocalType       `json:"vocalType" validate:"omitempty,oneof=instrumental minimal-vocals vocal-focused"`
}

type PromptResponse struct {
	Prompt string `json:"prompt"`
}

// PromptContext gives the augmenter extra musical context
type PromptContext struct {
	Genre       string   `json:"genre,omitempty"`
	Mood        string   `json:"mood,omitempty"`
	Energy      string   `json:"energy,omitempty"`
	Instruments []string `json:"instruments,omitempty"`
}

// PromptAugmentRequest asks the LLM to rewrite a prompt in a direction
type PromptAugmentRequest struct {
	CurrentPrompt string         `json:"currentPrompt" validate:"required,min=1,max=500"`
	Direction     string         `json:"direction" validate:"required,min=1,max=200"`
	Context       *PromptContext `json:"context"`
}

type PromptAugmentResponse struct {
	AugmentedPrompt string `json:"augmentedPrompt"`
}

// GenreMapRequest maps free text to a catalog genre
type GenreMapRequest struct {
	Text string `json:"text" validate:"max=200"`
}

type GenreMapResponse struct {
	GenreID string `json:"genreId"`
	Label   string `json:"label"`
}
