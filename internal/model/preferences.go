package model

import "time"

// UserPreferences are a user's saved defaults. Nil fields mean "not set".
type UserPreferences struct {
	DefaultGenre       *string      `json:"defaultGenre"`
	DefaultInstruments []string     `json:"defaultInstruments"`
	DefaultEnergy      *EnergyLevel `json:"defaultEnergy"`
	DefaultBlendRatio  *int         `json:"defaultBlendRatio"`
	AlwaysShowAdvanced bool         `json:"alwaysShowAdvanced"`
}

// SavedPreset is a user-created named snapshot of refinement settings
type SavedPreset struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Genre        string      `json:"genre"`
	Instruments  []string    `json:"instruments"`
	Energy       EnergyLevel `json:"energy"`
	BlendRatio   int         `json:"blendRatio"`
	VibeTemplate string      `json:"vibeTemplate"`
	CreatedAt    *time.Time  `json:"createdAt,omitempty"`
}

// PreferencesRequest replaces a user's preferences
type PreferencesRequest struct {
	DefaultGenre       *string      `json:"defaultGenre" validate:"omitempty,min=1,max=64"`
	DefaultInstruments []string     `json:"defaultInstruments" validate:"max=32,dive,min=1,max=64"`
	DefaultEnergy      *EnergyLevel `json:"defaultEnergy" validate:"omitempty,oneof=Low Medium High"`
	DefaultBlendRatio  *int         `json:"defaultBlendRatio" validate:"omitempty,min=0,max=100"`
	AlwaysShowAdvanced bool         `json:"alwaysShowAdvanced"`
}

// PresetRequest creates or updates a saved preset
type PresetRequest struct {
	Name         string      `json:"name" validate:"required,min=1,max=80"`
	Genre        string      `json:"genre" validate:"omitempty,max=64"`
	Instruments  []string    `json:"instruments" validate:"max=32,dive,min=1,max=64"`
	Energy       EnergyLevel `json:"energy" validate:"omitempty,oneof=Low Medium High"`
	BlendRatio   *int        `json:"blendRatio" validate:"omitempty,min=0,max=100"`
	VibeTemplate string      `json:"vibeTemplate" validate:"max=500"`
}

// PresetUpdateRequest merges the given fields into a saved preset
type PresetUpdateRequest struct {
	Name         *string      `json:"name" validate:"omitempty,min=1,max=80"`
	Genre        *string      `json:"genre" validate:"omitempty,max=64"`
	Instruments  []string     `json:"instruments" validate:"omitempty,max=32,dive,min=1,max=64"`
	Energy       *EnergyLevel `json:"energy" validate:"omitempty,oneof=Low Medium High"`
	BlendRatio   *int         `json:"blendRatio" validate:"omitempty,min=0,max=100"`
	VibeTemplate *string      `json:"vibeTemplate" validate:"omitempty,max=500"`
}

type PresetListResponse struct {
	Presets []SavedPreset `json:"presets"`
}

// PresetDeleteResponse tells the client whether its active preset was removed
type PresetDeleteResponse struct {
	Presets         []SavedPreset `json:"presets"`
	ResetToDefaults bool          `json:"resetToDefaults"`
}

// PreferencesResponse wraps a user's preferences, null when never saved
type PreferencesResponse struct {
	Preferences *UserPreferences `json:"preferences"`
}

// PresetResponse returns the created or updated preset alongside the full list
type PresetResponse struct {
	Preset  SavedPreset   `json:"preset"`
	Presets []SavedPreset `json:"presets"`
}
