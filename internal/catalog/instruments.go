package catalog

import "github.com/tunestory/api/internal/model"

const (
	CategoryRhythm  = "rhythm"
	CategoryBass    = "bass"
	CategoryKeys    = "keys"
	CategoryStrings = "strings"
	CategoryGuitar  = "guitar"
	CategoryBrass   = "brass"
	CategoryAmbient = "ambient"
	CategoryVocals  = "vocals"
)

const (
	low    = model.EnergyLow
	medium = model.EnergyMedium
	high   = model.EnergyHigh
)

// instruments is in catalog order. Electronic beats are covered by the drums
// entry, so synth-bass and synth reference it directly.
var instruments = []model.Instrument{
	{
		ID:            "drums",
		Label:         "Drums",
		PromptPhrase:  "crisp drums with tight hi-hats",
		Category:      CategoryRhythm,
		Tags:          []string{"percussion", "beat", "rhythm"},
		Compatibility: []string{"bass", "piano", "guitar", "synth"},
		Icon:          "🥁",
		EnergyFit:     []model.EnergyLevel{medium, high},
	},
	{
		ID:            "soft-drums",
		Label:         "Soft Drums",
		PromptPhrase:  "brushed drums and gentle percussion",
		Category:      CategoryRhythm,
		Tags:          []string{"percussion", "subtle", "jazz"},
		Compatibility: []string{"bass", "piano", "strings"},
		Icon:          "🥁",
		EnergyFit:     []model.EnergyLevel{low, medium},
	},
	{
		ID:            "bass",
		Label:         "Bass Guitar",
		PromptPhrase:  "warm bass guitar with smooth groove",
		Category:      CategoryBass,
		Tags:          []string{"low-end", "foundation", "groove"},
		Compatibility: []string{"drums", "piano", "guitar", "synth"},
		Icon:          "🎸",
		EnergyFit:     []model.EnergyLevel{low, medium, high},
	},
	{
		ID:            "synth-bass",
		Label:         "Synth Bass",
		PromptPhrase:  "deep synthesizer bass with rich sub frequencies",
		Category:      CategoryBass,
		Tags:          []string{"electronic", "sub", "edm"},
		Compatibility: []string{"electronic-beats", "synth", "ambient"},
		Icon:          "🎹",
		EnergyFit:     []model.EnergyLevel{medium, high},
	},
	{
		ID:            "piano",
		Label:         "Piano",
		PromptPhrase:  "expressive piano melody",
		Category:      CategoryKeys,
		Tags:          []string{"melodic", "harmonic", "acoustic"},
		Compatibility: []string{"bass", "drums", "strings", "guitar"},
		Icon:          "🎹",
		EnergyFit:     []model.EnergyLevel{low, medium, high},
	},
	{
		ID:            "electric-piano",
		Label:         "Electric Piano",
		PromptPhrase:  "warm Rhodes electric piano",
		Category:      CategoryKeys,
		Tags:          []string{"vintage", "soul", "funk"},
		Compatibility: []string{"bass", "drums", "guitar"},
		Icon:          "🎹",
		EnergyFit:     []model.EnergyLevel{medium, high},
	},
	{
		ID:            "synth",
		Label:         "Synthesizer",
		PromptPhrase:  "lush synthesizer pads and textures",
		Category:      CategoryKeys,
		Tags:          []string{"electronic", "ambient", "atmospheric"},
		Compatibility: []string{"bass", "electronic-beats", "ambient"},
		Icon:          "🎛️",
		EnergyFit:     []model.EnergyLevel{low, medium, high},
	},
	{
		ID:            "strings",
		Label:         "Strings",
		PromptPhrase:  "cinematic string section with rich harmonies",
		Category:      CategoryStrings,
		Tags:          []string{"orchestral", "emotional", "lush"},
		Compatibility: []string{"piano", "ambient", "brass"},
		Icon:          "🎻",
		EnergyFit:     []model.EnergyLevel{low, medium},
	},
	{
		ID:            "guitar",
		Label:         "Guitar",
		PromptPhrase:  "clean guitar lines with warm tone",
		Category:      CategoryGuitar,
		Tags:          []string{"melodic", "acoustic", "strumming"},
		Compatibility: []string{"bass", "drums", "piano"},
		Icon:          "🎸",
		EnergyFit:     []model.EnergyLevel{low, medium, high},
	},
	{
		ID:            "electric-guitar",
		Label:         "Electric Guitar",
		PromptPhrase:  "electric guitar with smooth sustain",
		Category:      CategoryGuitar,
		Tags:          []string{"rock", "blues", "lead"},
		Compatibility: []string{"bass", "drums"},
		Icon:          "🎸",
		EnergyFit:     []model.EnergyLevel{medium, high},
	},
	{
		ID:            "brass",
		Label:         "Brass Section",
		PromptPhrase:  "bright horn section with punchy articulation",
		Category:      CategoryBrass,
		Tags:          []string{"orchestral", "jazz", "powerful"},
		Compatibility: []string{"drums", "bass", "piano"},
		Icon:          "🎺",
		EnergyFit:     []model.EnergyLevel{medium, high},
	},
	{
		ID:            "saxophone",
		Label:         "Saxophone",
		PromptPhrase:  "smooth saxophone melody",
		Category:      CategoryBrass,
		Tags:          []string{"jazz", "solo", "soulful"},
		Compatibility: []string{"piano", "bass", "soft-drums"},
		Icon:          "🎷",
		EnergyFit:     []model.EnergyLevel{low, medium},
	},
	{
		ID:            "ambient",
		Label:         "Ambient Textures",
		PromptPhrase:  "atmospheric textures and sound design",
		Category:      CategoryAmbient,
		Tags:          []string{"atmospheric", "background", "cinematic"},
		Compatibility: []string{"synth", "strings", "piano"},
		Icon:          "🌌",
		EnergyFit:     []model.EnergyLevel{low, medium},
	},
	{
		ID:            "vocals",
		Label:         "Vocals",
		PromptPhrase:  "wordless vocal harmonies",
		Category:      CategoryVocals,
		Tags:          []string{"human", "melodic", "emotional"},
		Compatibility: []string{"piano", "strings", "ambient"},
		Icon:          "🎤",
		EnergyFit:     []model.EnergyLevel{low, medium, high},
	},
}

var categories = []model.InstrumentCategory{
	{
		ID:          CategoryRhythm,
		Label:       "Rhythm & Beats",
		Description: "Drums, percussion, and rhythmic elements",
		Icon:        "🥁",
		Color:       "#FF6B6B",
		Instruments: []string{"drums", "soft-drums"},
	},
	{
		ID:          CategoryBass,
		Label:       "Bass",
		Description: "Low-end foundation",
		Icon:        "🎸",
		Color:       "#4ECDC4",
		Instruments: []string{"bass", "synth-bass"},
	},
	{
		ID:            CategoryKeys,
		Label:         "Keys & Piano",
		Description:   "Keyboard instruments and synthesizers",
		Icon:          "🎹",
		Color:         "#95E1D3",
		Instruments:   []string{"piano", "electric-piano", "synth"},
		AllowMultiple: true,
	},
	{
		ID:          CategoryStrings,
		Label:       "Strings",
		Description: "Orchestral and bowed instruments",
		Icon:        "🎻",
		Color:       "#F38181",
		Instruments: []string{"strings"},
	},
	{
		ID:          CategoryGuitar,
		Label:       "Guitar",
		Description: "Acoustic and electric guitars",
		Icon:        "🎸",
		Color:       "#AA96DA",
		Instruments: []string{"guitar", "electric-guitar"},
	},
	{
		ID:            CategoryBrass,
		Label:         "Brass & Winds",
		Description:   "Horn sections and wind instruments",
		Icon:          "🎺",
		Color:         "#FCBAD3",
		Instruments:   []string{"brass", "saxophone"},
		AllowMultiple: true,
	},
	{
		ID:            CategoryAmbient,
		Label:         "Ambient & FX",
		Description:   "Atmospheric sounds and textures",
		Icon:          "🌌",
		Color:         "#A8D8EA",
		Instruments:   []string{"ambient"},
		AllowMultiple: true,
	},
	{
		ID:          CategoryVocals,
		Label:       "Vocals",
		Description: "Human voice elements",
		Icon:        "🎤",
		Color:       "#FFD93D",
		Instruments: []string{"vocals"},
	},
}

var presets = []model.InstrumentPreset{
	{
		ID:          "lofi-trio",
		Name:        "Lofi Trio",
		Description: "Classic lofi hip-hop sound",
		Instruments: []string{"soft-drums", "bass", "piano"},
		Genre:       "lofi-hiphop",
		Energy:      low,
		Vibe:        "relaxed and nostalgic",
		Icon:        "☕",
		Tags:        []string{"beginner-friendly", "popular", "study"},
	},
	{
		ID:          "cinematic-swell",
		Name:        "Cinematic Swell",
		Description: "Epic orchestral atmosphere",
		Instruments: []string{"strings", "brass", "piano", "ambient"},
		Genre:       "cinematic-orchestral",
		Energy:      medium,
		Vibe:        "dramatic and uplifting",
		Icon:        "🎬",
		Tags:        []string{"emotional", "film", "epic"},
	},
	{
		ID:          "beat-lab",
		Name:        "Beat Lab",
		Description: "Modern electronic production",
		Instruments: []string{"drums", "synth-bass", "synth", "ambient"},
		Genre:       "electronic",
		Energy:      high,
		Vibe:        "energetic and modern",
		Icon:        "🎛️",
		Tags:        []string{"edm", "production", "upbeat"},
	},
	{
		ID:          "jazz-quartet",
		Name:        "Jazz Quartet",
		Description: "Small jazz ensemble",
		Instruments: []string{"soft-drums", "bass", "piano", "saxophone"},
		Genre:       "jazz-fusion",
		Energy:      medium,
		Vibe:        "sophisticated and smooth",
		Icon:        "🎷",
		Tags:        []string{"jazz", "classic", "elegant"},
	},
	{
		ID:          "ambient-drift",
		Name:        "Ambient Drift",
		Description: "Atmospheric soundscape",
		Instruments: []string{"ambient", "synth", "strings", "piano"},
		Genre:       "ambient-electronic",
		Energy:      low,
		Vibe:        "ethereal and spacious",
		Icon:        "🌌",
		Tags:        []string{"meditation", "calm", "background"},
	},
	{
		ID:          "indie-band",
		Name:        "Indie Band",
		Description: "Full band arrangement",
		Instruments: []string{"drums", "bass", "guitar", "piano"},
		Genre:       "indie-rock",
		Energy:      medium,
		Vibe:        "authentic and organic",
		Icon:        "🎸",
		Tags:        []string{"rock", "band", "organic"},
	},
}
