package catalog

import "strings"

// instrumentSynonyms maps free-text instrument names from the vision model to
// catalog ids. Keys are lower case.
var instrumentSynonyms = map[string]string{
	"drums":            "drums",
	"drum":             "drums",
	"percussion":       "drums",
	"beats":            "drums",
	"electronic beats": "drums",
	"piano":            "piano",
	"bass":             "bass",
	"bass guitar":      "bass",
	"guitar":           "guitar",
	"acoustic guitar":  "guitar",
	"synth":            "synth",
	"synthesizer":      "synth",
	"synthesizers":     "synth",
	"strings":          "strings",
	"string section":   "strings",
	"brass":            "brass",
	"horn":             "brass",
	"horns":            "brass",
	"saxophone":        "saxophone",
	"sax":              "saxophone",
	"ambient":          "ambient",
	"atmospheric":      "ambient",
	"vocals":           "vocals",
	"voice":            "vocals",
}

// MapAIInstruments converts free-text instrument names to catalog ids.
// Unrecognised names are dropped and repeats collapse to the first occurrence.
func MapAIInstruments(terms []string) []string {
	out := []string{}
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		id, ok := instrumentSynonyms[strings.ToLower(strings.TrimSpace(term))]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
