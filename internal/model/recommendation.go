package model

// PhotoAnalyzeRequest carries an image as a data URL or raw base64
type PhotoAnalyzeRequest struct {
	Image    string `json:"image" validate:"required,min=1,max=14000000"`
	MimeType string `json:"mimeType" validate:"omitempty,oneof=image/jpeg image/png image/webp image/gif"`
}

// MusicAnalyzeRequest selects the listening history to analyze
type MusicAnalyzeRequest struct {
	Source      MusicSource `json:"source" validate:"required,oneof=liked playlist"`
	PlaylistID  string      `json:"playlistId" validate:"required_if=Source playlist,max=64"`
	AccessToken string      `json:"accessToken" validate:"required,min=1"`
}

// RecommendationRequest is the vibe to search Spotify for
type RecommendationRequest struct {
	Mood        string   `json:"mood" validate:"required,max=100"`
	Energy      string   `json:"energy" validate:"omitempty,max=20"`
	Genres      []string `json:"genres" validate:"max=10,dive,max=64"`
	SearchTerms []string `json:"searchTerms" validate:"max=10,dive,max=100"`
}

// Track is a Spotify track reduced to what the UI plays
type Track struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Artist     string  `json:"artist"`
	Album      string  `json:"album"`
	AlbumArt   string  `json:"albumArt"`
	PreviewURL *string `json:"previewUrl"`
	SpotifyURL string  `json:"spotifyUrl"`
	Genre      string  `json:"genre"`
}

type RecommendationResponse struct {
	Recommendations []Track `json:"recommendations"`
}
