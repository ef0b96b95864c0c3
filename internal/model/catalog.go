package model

// EnergyLevel is the coarse energy label shared by instruments, presets and analyses
type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "Low"
	EnergyMedium EnergyLevel = "Medium"
	EnergyHigh   EnergyLevel = "High"
)

var ValidEnergyLevels = []EnergyLevel{EnergyLow, EnergyMedium, EnergyHigh}

// Instrument is a catalog entry that can be selected for generation
type Instrument struct {
	ID            string        `json:"id"`
	Label         string        `json:"label"`
	PromptPhrase  string        `json:"promptPhrase"`
	Category      string        `json:"category"`
	Tags          []string      `json:"tags"`
	Compatibility []string      `json:"compatibility"`
	Icon          string        `json:"icon"`
	EnergyFit     []EnergyLevel `json:"energyFit"`
}

// InstrumentCategory groups instruments for selection rules
type InstrumentCategory struct {
	ID            string   `json:"id"`
	Label         string   `json:"label"`
	Description   string   `json:"description"`
	Icon          string   `json:"icon"`
	Color         string   `json:"color"`
	Instruments   []string `json:"instruments"`
	AllowMultiple bool     `json:"allowMultiple"`
	Required      bool     `json:"required"`
}

// InstrumentPreset is a hand-authored instrument combination
type InstrumentPreset struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Instruments []string    `json:"instruments"`
	Genre       string      `json:"genre,omitempty"`
	Energy      EnergyLevel `json:"energy,omitempty"`
	Vibe        string      `json:"vibe,omitempty"`
	Icon        string      `json:"icon"`
	Tags        []string    `json:"tags"`
}

// GenreOption is one selectable genre
type GenreOption struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Category string `json:"category"`
}
