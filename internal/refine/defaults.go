package refine

import "strings"

type genreDefault struct {
	keywords    []string
	instruments []string
}

// genreDefaults is checked in order against the lower-cased genre label
var genreDefaults = []genreDefault{
	{[]string{"piano", "classical"}, []string{"piano"}},
	{[]string{"jazz"}, []string{"piano", "bass", "drums"}},
	{[]string{"electronic", "synth"}, []string{"synth", "bass", "drums"}},
	{[]string{"rock", "indie"}, []string{"guitar", "bass", "drums"}},
	{[]string{"hip-hop", "trap"}, []string{"bass", "drums"}},
	{[]string{"folk", "acoustic"}, []string{"guitar", "piano"}},
}

var fallbackInstruments = []string{"piano", "bass", "drums"}

// DefaultInstrumentsForGenre returns the stock ensemble for a genre label
func DefaultInstrumentsForGenre(genre string) []string {
	lower := strings.ToLower(genre)
	for _, d := range genreDefaults {
		for _, k := range d.keywords {
			if strings.Contains(lower, k) {
				return append([]string(nil), d.instruments...)
			}
		}
	}
	return append([]string(nil), fallbackInstruments...)
}
