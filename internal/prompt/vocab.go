package prompt

import "strings"

var moodPhrases = map[string]string{
	"joyful":      "uplifting cheerful",
	"happy":       "uplifting cheerful",
	"melancholic": "melancholic contemplative",
	"sad":         "melancholic contemplative",
	"energetic":   "energetic vibrant",
	"excited":     "energetic vibrant",
	"calm":        "calm peaceful",
	"peaceful":    "calm peaceful",
	"relaxed":     "calm peaceful",
	"nostalgic":   "nostalgic warm",
	"triumphant":  "triumphant epic",
	"romantic":    "romantic tender",
	"adventurous": "adventurous exciting",
	"mysterious":  "mysterious atmospheric",
	"dramatic":    "dramatic cinematic",
	"atmospheric": "atmospheric ambient",
}

// genreInstrumentation is used when no instruments were resolved
var genreInstrumentation = map[string]string{
	"folk":        "acoustic guitar, light percussion",
	"electronic":  "synthesizers, electronic drums, bass",
	"ambient":     "soft pads, atmospheric textures",
	"classical":   "piano, strings, orchestral",
	"pop":         "guitar, bass, drums, synth",
	"hip-hop":     "bass, drums, samples",
	"hiphop":      "bass, drums, samples",
	"jazz":        "piano, saxophone, double bass",
	"rock":        "electric guitar, drums, bass guitar",
	"metal":       "distorted guitar, heavy drums",
	"country":     "acoustic guitar, fiddle, banjo",
	"blues":       "guitar, harmonica, bass",
	"reggae":      "guitar, bass, offbeat rhythm",
	"latin":       "percussion, guitar, brass",
	"indie":       "guitar, synth, drums",
	"alternative": "guitar, bass, drums",
	"dance":       "synthesizers, electronic drums, bass",
	"house":       "synthesizers, electronic drums, bass",
	"techno":      "synthesizers, electronic drums",
	"r&b":         "smooth bass, drums, synth",
	"rnb":         "smooth bass, drums, synth",
	"soul":        "piano, bass, drums, strings",
}

const fallbackInstrumentation = "mixed instrumentation"

var vocalPhrases = map[string]string{
	"instrumental":   "instrumental, no vocals",
	"minimal-vocals": "subtle vocal textures and wordless vocals",
	"vocal-focused":  "prominent vocals with lead vocal melody",
}

const (
	vintageProduction  = "raw production with vinyl crackle and warm analog character"
	polishedProduction = "polished studio recording with clean mix"
	pristineProduction = "pristine clarity with professional mastering"

	qualitySuffix = "high quality production"
)

var (
	vintageEras = []string{"1980s", "1990s", "vintage"}
	modernEras  = []string{"modern", "2020s", "contemporary"}
)

func moodPhrase(mood string) string {
	lower := strings.ToLower(mood)
	if phrase, ok := moodPhrases[lower]; ok {
		return phrase
	}
	return lower
}

func tempoFromBPM(bpm float64) string {
	switch {
	case bpm < 70:
		return "very slow ballad"
	case bpm < 90:
		return "slow gentle tempo"
	case bpm < 110:
		return "medium relaxed tempo"
	case bpm < 130:
		return "moderate upbeat tempo"
	case bpm < 150:
		return "fast energetic tempo"
	default:
		return "very fast intense tempo"
	}
}

func tempoFromEnergy(energy float64) string {
	switch {
	case energy <= 2:
		return "very slow ballad"
	case energy <= 4:
		return "slow gentle tempo"
	case energy <= 6:
		return "medium relaxed tempo"
	case energy <= 8:
		return "moderate upbeat tempo"
	default:
		return "fast energetic tempo"
	}
}

func dynamicsPhrase(energy float64) string {
	switch {
	case energy <= 2:
		return "very soft gentle dynamics"
	case energy <= 4:
		return "soft mellow dynamics"
	case energy <= 6:
		return "moderate balanced dynamics"
	case energy <= 8:
		return "powerful driving dynamics"
	default:
		return "very intense explosive dynamics"
	}
}

// style maps a 0-10 style level to an era prefix and a production note
func style(level int) (era, production string) {
	switch {
	case level <= 3:
		return vintageEras[level/2] + " lo-fi", vintageProduction
	case level <= 6:
		return "", polishedProduction
	default:
		idx := int(float64(level-7) / 1.5)
		if idx > len(modernEras)-1 {
			idx = len(modernEras) - 1
		}
		return modernEras[idx] + " cinematic", pristineProduction
	}
}

func vocalPhrase(v string) string {
	if v == "" {
		return vocalPhrases["instrumental"]
	}
	if phrase, ok := vocalPhrases[v]; ok {
		return phrase
	}
	return "instrumental"
}

func genreFallbackInstruments(genre string) string {
	if phrase, ok := genreInstrumentation[strings.ToLower(genre)]; ok {
		return phrase
	}
	return fallbackInstrumentation
}
