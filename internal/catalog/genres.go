package catalog

import "github.com/tunestory/api/internal/model"

// DefaultGenreID is returned by the mapper when nothing matches
const DefaultGenreID = "ambient-electronic"

type genreGroup struct {
	label  string
	genres []model.GenreOption
}

var genreGroups = []genreGroup{
	{
		label: "Electronic",
		genres: []model.GenreOption{
			{ID: "lofi-hiphop", Label: "Lofi Hip-Hop"},
			{ID: "ambient-electronic", Label: "Ambient Electronic"},
			{ID: "synthwave", Label: "Synthwave"},
			{ID: "downtempo", Label: "Downtempo"},
			{ID: "chillwave", Label: "Chillwave"},
		},
	},
	{
		label: "Jazz",
		genres: []model.GenreOption{
			{ID: "jazz-fusion", Label: "Jazz Fusion"},
			{ID: "smooth-jazz", Label: "Smooth Jazz"},
			{ID: "bebop", Label: "Bebop"},
			{ID: "acid-jazz", Label: "Acid Jazz"},
		},
	},
	{
		label: "Classical",
		genres: []model.GenreOption{
			{ID: "cinematic-orchestral", Label: "Cinematic Orchestral"},
			{ID: "solo-piano", Label: "Solo Piano"},
			{ID: "chamber-music", Label: "Chamber Music"},
			{ID: "minimalist", Label: "Minimalist Classical"},
		},
	},
	{
		label: "Hip-Hop",
		genres: []model.GenreOption{
			{ID: "boom-bap", Label: "Boom Bap"},
			{ID: "trap", Label: "Trap"},
			{ID: "lofi-beats", Label: "Lo-Fi Beats"},
			{ID: "instrumental-hiphop", Label: "Instrumental Hip-Hop"},
		},
	},
	{
		label: "Rock/Indie",
		genres: []model.GenreOption{
			{ID: "indie-rock", Label: "Indie Rock"},
			{ID: "post-rock", Label: "Post-Rock"},
			{ID: "dream-pop", Label: "Dream Pop"},
			{ID: "shoegaze", Label: "Shoegaze"},
		},
	},
	{
		label: "World",
		genres: []model.GenreOption{
			{ID: "bossa-nova", Label: "Bossa Nova"},
			{ID: "flamenco", Label: "Flamenco"},
			{ID: "celtic", Label: "Celtic"},
			{ID: "afrobeat", Label: "Afrobeat"},
		},
	},
	{
		label: "Other",
		genres: []model.GenreOption{
			{ID: "experimental", Label: "Experimental"},
			{ID: "soundtrack", Label: "Soundtrack"},
			{ID: "new-age", Label: "New Age"},
			{ID: "folk", Label: "Folk"},
		},
	},
}

var (
	genres      []model.GenreOption
	genreByID   map[string]model.GenreOption
	genreByNorm map[string]string
	labelByNorm map[string]string
)

func initGenres() {
	genreByID = make(map[string]model.GenreOption)
	genreByNorm = make(map[string]string)
	labelByNorm = make(map[string]string)
	for _, group := range genreGroups {
		for _, g := range group.genres {
			g.Category = group.label
			genres = append(genres, g)
			genreByID[g.ID] = g
			if _, ok := genreByNorm[normalizeGenre(g.ID)]; !ok {
				genreByNorm[normalizeGenre(g.ID)] = g.ID
			}
			if _, ok := labelByNorm[normalizeGenre(g.Label)]; !ok {
				labelByNorm[normalizeGenre(g.Label)] = g.ID
			}
		}
	}
}

// Genres returns every genre option flattened in category order
func Genres() []model.GenreOption {
	return append([]model.GenreOption(nil), genres...)
}

// GetGenre looks up a genre option by id
func GetGenre(id string) (model.GenreOption, bool) {
	g, ok := genreByID[id]
	return g, ok
}

// GenreLabel returns the display label for id, or id itself when unknown
func GenreLabel(id string) string {
	if g, ok := genreByID[id]; ok {
		return g.Label
	}
	return id
}
