// Package prompt renders a refined analysis into a MusicGen text prompt.
//
// The phrase vocabulary and band boundaries are the ones the generation model
// was tuned against and must not drift.
package prompt

import (
	"strings"

	"github.com/tunestory/api/internal/catalog"
	"github.com/tunestory/api/internal/model"
)

const (
	DefaultStyleLevel = 5
	maxStyleLevel     = 10

	defaultGenre = "instrumental"
)

// Input is everything Build needs. Energy may be a label or a 0-10 score.
type Input struct {
	Genre       string
	Mood        string
	Energy      model.Energy
	TempoBPM    *float64
	Instruments []string
	StyleLevel  int
	VocalType   model.VocalType
}

// FromRefined adapts a refined analysis. A nil styleLevel selects the default.
func FromRefined(r model.RefinedAnalysis, styleLevel *int, vocal model.VocalType) Input {
	in := Input{
		Mood:        r.Mood,
		Energy:      model.EnergyFromLabel(r.Energy),
		TempoBPM:    r.TempoBPM,
		Instruments: r.Instruments,
		StyleLevel:  DefaultStyleLevel,
		VocalType:   vocal,
	}
	if len(r.Genres) > 0 {
		in.Genre = r.Genres[0]
	}
	if styleLevel != nil {
		in.StyleLevel = *styleLevel
	}
	return in
}

// Build renders the prompt. It is deterministic and has no failure mode.
func Build(in Input) string {
	genre := in.Genre
	if genre == "" {
		genre = defaultGenre
	}

	level := in.StyleLevel
	if level < 0 {
		level = 0
	}
	if level > maxStyleLevel {
		level = maxStyleLevel
	}
	era, production := style(level)

	energy := energyScore(in.Energy)

	var tempo string
	if in.TempoBPM != nil && *in.TempoBPM > 0 {
		tempo = tempoFromBPM(*in.TempoBPM)
	} else {
		tempo = tempoFromEnergy(energy)
	}

	instruments := catalog.InstrumentPrompt(in.Instruments)
	if instruments == "" {
		instruments = genreFallbackInstruments(genre)
	}

	lead := genre
	if era != "" {
		lead = era + " " + genre
	}

	parts := []string{
		lead,
		moodPhrase(in.Mood),
		tempo,
		"with " + instruments,
		production,
		vocalPhrase(string(in.VocalType)),
		dynamicsPhrase(energy),
		qualitySuffix,
	}

	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// energyScore turns an energy hint into a 0-10 score
func energyScore(e model.Energy) float64 {
	if e.Value != nil {
		return *e.Value
	}
	switch e.Label {
	case model.EnergyHigh:
		return 8
	case model.EnergyMedium:
		return 5
	default:
		return 3
	}
}
