package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Energy holds an energy hint that arrives either as a label or as a 0-10 number
type Energy struct {
	Label EnergyLevel
	Value *float64
}

// EnergyFromLabel returns a label-only Energy
func EnergyFromLabel(label EnergyLevel) Energy {
	return Energy{Label: label}
}

// EnergyFromValue returns a numeric Energy
func EnergyFromValue(v float64) Energy {
	return Energy{Value: &v}
}

// IsZero reports whether no energy was given
func (e Energy) IsZero() bool {
	return e.Label == "" && e.Value == nil
}

func (e *Energy) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*e = Energy{}
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*e = Energy{Value: &n}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("energy must be a string or a number: %w", err)
	}
	*e = Energy{Label: EnergyLevel(s)}
	return nil
}

func (e Energy) MarshalJSON() ([]byte, error) {
	if e.Value != nil {
		return json.Marshal(*e.Value)
	}
	if e.Label == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(e.Label))
}

// VisualElements are optional hints extracted from a photo
type VisualElements struct {
	Colors      []string `json:"colors,omitempty"`
	Instruments []string `json:"instruments,omitempty"`
	Setting     string   `json:"setting,omitempty"`
	TimeOfDay   string   `json:"timeOfDay,omitempty"`
	Atmosphere  string   `json:"atmosphere,omitempty"`
}

// PhotoAnalysis is the untrusted output of the vision model
type PhotoAnalysis struct {
	Mood           string          `json:"mood"`
	Energy         Energy          `json:"energy"`
	Genres         []string        `json:"genres"`
	Description    string          `json:"description,omitempty"`
	TempoBPM       *float64        `json:"tempo_bpm,omitempty"`
	Setting        string          `json:"setting,omitempty"`
	TimeOfDay      string          `json:"time_of_day,omitempty"`
	SearchTerms    []string        `json:"searchTerms,omitempty"`
	VisualElements *VisualElements `json:"visualElements,omitempty"`
}

// RefinedAnalysis is the resolved description used to build a generation prompt
type RefinedAnalysis struct {
	Mood           string          `json:"mood"`
	Energy         EnergyLevel     `json:"energy"`
	Genres         []string        `json:"genres"`
	Description    string          `json:"description"`
	TempoBPM       *float64        `json:"tempo_bpm,omitempty"`
	Setting        string          `json:"setting,omitempty"`
	TimeOfDay      string          `json:"time_of_day,omitempty"`
	Instruments    []string        `json:"instruments"`
	BlendRatio     int             `json:"blendRatio"`
	VisualElements *VisualElements `json:"visualElements,omitempty"`
}

// MusicAnalysis is a vibe derived from Spotify audio features
type MusicAnalysis struct {
	Mood        string   `json:"mood"`
	Energy      string   `json:"energy"`
	Genres      []string `json:"genres"`
	Description string   `json:"description"`
	SearchTerms []string `json:"searchTerms"`
	TrackCount  int      `json:"trackCount"`
}
