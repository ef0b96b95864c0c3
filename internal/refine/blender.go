// Package refine resolves a photo analysis, the user's session choices and
// their saved preferences into one RefinedAnalysis.
//
// Each field follows the same precedence: an explicit choice made in this
// session, then a saved preference, then the value suggested by the vision
// model, then a fixed genre-based default.
package refine

import (
	"strings"

	"github.com/tunestory/api/internal/catalog"
	"github.com/tunestory/api/internal/model"
)

const (
	// DefaultBlendRatio is the slider's factory value. A session value equal to
	// it is treated as "not set".
	DefaultBlendRatio = 30

	// FallbackGenre is used when neither the user nor the model named a genre
	FallbackGenre = "ambient electronic"

	maxAIInstruments = 3
)

// Input gathers the three layers the blender draws from. Any of them may be empty.
type Input struct {
	Analysis    *model.PhotoAnalysis
	Preferences *model.UserPreferences

	UserGenre       string
	UserInstruments []string
	UserEnergy      model.EnergyLevel
	UserVibe        string
	BlendRatio      *int
}

// Blend resolves every field of the refined analysis from in
func Blend(in Input) model.RefinedAnalysis {
	analysis := in.Analysis
	if analysis == nil {
		analysis = &model.PhotoAnalysis{}
	}
	prefs := in.Preferences
	if prefs == nil {
		prefs = &model.UserPreferences{}
	}

	genre := resolveGenre(in.UserGenre, prefs, analysis.Genres)
	var aiInstruments []string
	if analysis.VisualElements != nil {
		aiInstruments = analysis.VisualElements.Instruments
	}
	ratio := ResolveBlendRatio(in.BlendRatio, prefs.DefaultBlendRatio)

	refined := model.RefinedAnalysis{
		Mood:        analysis.Mood,
		Energy:      resolveEnergy(in.UserEnergy, prefs.DefaultEnergy, analysis.Energy),
		Genres:      []string{genre},
		Description: BlendDescription(strings.TrimSpace(in.UserVibe), strings.TrimSpace(analysis.Description), ratio),
		TempoBPM:    analysis.TempoBPM,
		Setting:     analysis.Setting,
		TimeOfDay:   analysis.TimeOfDay,
		Instruments: resolveInstruments(in.UserInstruments, prefs.DefaultInstruments, aiInstruments, genre),
		BlendRatio:  ratio,
	}

	if ve := analysis.VisualElements; ve != nil {
		if refined.Setting == "" {
			refined.Setting = ve.Setting
		}
		if refined.TimeOfDay == "" {
			refined.TimeOfDay = ve.TimeOfDay
		}
		refined.VisualElements = &model.VisualElements{
			Colors:     append([]string(nil), ve.Colors...),
			Setting:    ve.Setting,
			TimeOfDay:  ve.TimeOfDay,
			Atmosphere: ve.Atmosphere,
		}
	} else {
		refined.VisualElements = &model.VisualElements{}
	}
	refined.VisualElements.Instruments = append([]string(nil), refined.Instruments...)

	return refined
}

// resolveGenre returns a genre label
func resolveGenre(userGenre string, prefs *model.UserPreferences, aiGenres []string) string {
	if userGenre != "" {
		return catalog.GenreLabel(userGenre)
	}
	if prefs.DefaultGenre != nil && *prefs.DefaultGenre != "" {
		return catalog.GenreLabel(*prefs.DefaultGenre)
	}
	if len(aiGenres) > 0 {
		return catalog.GenreLabel(catalog.MapAIGenre(aiGenres[0]))
	}
	return FallbackGenre
}

func resolveInstruments(user, saved, ai []string, genre string) []string {
	if len(user) > 0 {
		return append([]string(nil), user...)
	}
	if len(saved) > 0 {
		return append([]string(nil), saved...)
	}
	if len(ai) > 0 {
		mapped := catalog.MapAIInstruments(ai)
		if len(mapped) > maxAIInstruments {
			mapped = mapped[:maxAIInstruments]
		}
		if len(mapped) > 0 {
			return mapped
		}
	}
	return DefaultInstrumentsForGenre(genre)
}

func resolveEnergy(user model.EnergyLevel, saved *model.EnergyLevel, ai model.Energy) model.EnergyLevel {
	if user != "" {
		return user
	}
	if saved != nil && *saved != "" {
		return *saved
	}
	if ai.Label != "" {
		return ai.Label
	}
	// a missing AI energy scores 0
	var score float64
	if ai.Value != nil {
		score = *ai.Value
	}
	return EnergyFromNumber(score)
}

// EnergyFromNumber converts a 0-10 energy score to a label
func EnergyFromNumber(v float64) model.EnergyLevel {
	switch {
	case v >= 7:
		return model.EnergyHigh
	case v >= 4:
		return model.EnergyMedium
	default:
		return model.EnergyLow
	}
}

// ResolveBlendRatio picks the session ratio unless it still holds the factory
// default, then the saved ratio, then the factory default.
func ResolveBlendRatio(user *int, saved *int) int {
	if user != nil && *user != DefaultBlendRatio {
		return *user
	}
	if saved != nil {
		return *saved
	}
	return DefaultBlendRatio
}

// BlendDescription combines the user's vibe text with the model's description.
// At a ratio of 50 or more the user's text wins; at 10 or less the model's wins;
// in between both are kept.
func BlendDescription(userText, aiText string, ratio int) string {
	switch {
	case userText == "" && aiText == "":
		return ""
	case aiText == "":
		return userText
	case userText == "":
		return aiText
	case ratio >= 50:
		return userText
	case ratio <= 10:
		return aiText
	default:
		return userText + ". " + aiText
	}
}
