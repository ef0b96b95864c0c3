package catalog

import "strings"

type genreKeyword struct {
	keyword string
	genreID string
}

// genreKeywords is matched in order against the normalised input; the first
// hit wins. Keywords are normalised the same way before matching, so spaced
// and hyphenated variants collapse onto the same key.
var genreKeywords = []genreKeyword{
	{"lofi", "lofi-hiphop"},
	{"lofi hiphop", "lofi-hiphop"},
	{"lofi hip-hop", "lofi-hiphop"},
	{"jazz", "jazz-fusion"},
	{"classical", "solo-piano"},
	{"orchestral", "cinematic-orchestral"},
	{"electronic", "ambient-electronic"},
	{"ambient", "ambient-electronic"},
	{"hiphop", "lofi-beats"},
	{"hip-hop", "lofi-beats"},
	{"hip hop", "lofi-beats"},
	{"rock", "indie-rock"},
	{"indie", "indie-rock"},
	{"piano", "solo-piano"},
	{"cinematic", "cinematic-orchestral"},
	{"synth", "synthwave"},
	{"trap", "trap"},
	{"folk", "folk"},
	{"experimental", "experimental"},
	{"soundtrack", "soundtrack"},
}

type genreFamily struct {
	keywords []string
	genreID  string
}

// genreFamilies is the coarse second tier
var genreFamilies = []genreFamily{
	{[]string{"jazz"}, "jazz-fusion"},
	{[]string{"classical", "orchestral"}, "cinematic-orchestral"},
	{[]string{"electronic", "ambient"}, "ambient-electronic"},
	{[]string{"rock", "indie"}, "indie-rock"},
	{[]string{"hip", "rap"}, "lofi-beats"},
}

// MapAIGenre maps a free-text genre label from the vision model to a catalog
// genre id. It always returns a valid id.
func MapAIGenre(text string) string {
	if strings.TrimSpace(text) == "" {
		return DefaultGenreID
	}

	norm := normalizeGenre(text)

	if id, ok := genreByNorm[norm]; ok {
		return id
	}
	if id, ok := labelByNorm[norm]; ok {
		return id
	}

	for _, kw := range genreKeywords {
		if strings.Contains(norm, normalizeGenre(kw.keyword)) {
			return kw.genreID
		}
	}

	for _, fam := range genreFamilies {
		for _, k := range fam.keywords {
			if strings.Contains(norm, k) {
				return fam.genreID
			}
		}
	}

	return DefaultGenreID
}

func normalizeGenre(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "-", "")
}
