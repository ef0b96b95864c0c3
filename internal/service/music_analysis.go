package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tunestory/api/internal/client"
	"github.com/tunestory/api/internal/model"
)

const maxAnalyzedTracks = 50

var (
	ErrNoTracks        = errors.New("no tracks found")
	ErrNoAudioFeatures = errors.New("could not fetch audio features")
)

// LibraryReader reads a user's Spotify library with their own token
type LibraryReader interface {
	LikedTracks(ctx context.Context, accessToken string, max int) ([]client.SpotifyTrack, error)
	PlaylistTracks(ctx context.Context, accessToken, playlistID string, max int) ([]client.SpotifyTrack, error)
	AudioFeatures(ctx context.Context, accessToken string, ids []string) ([]client.AudioFeatures, error)
}

// MusicAnalysisService derives a vibe from a user's listening history
type MusicAnalysisService struct {
	spotify LibraryReader
}

func NewMusicAnalysisService(spotify LibraryReader) *MusicAnalysisService {
	return &MusicAnalysisService{spotify: spotify}
}

func (s *MusicAnalysisService) Analyze(ctx context.Context, req *model.MusicAnalyzeRequest) (*model.MusicAnalysis, error) {
	var (
		tracks []client.SpotifyTrack
		err    error
	)
	if req.Source == model.MusicSourcePlaylist {
		tracks, err = s.spotify.PlaylistTracks(ctx, req.AccessToken, req.PlaylistID, maxAnalyzedTracks)
	} else {
		tracks, err = s.spotify.LikedTracks(ctx, req.AccessToken, maxAnalyzedTracks)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch tracks: %w", err)
	}
	if len(tracks) == 0 {
		return nil, ErrNoTracks
	}

	ids := make([]string, 0, len(tracks))
	for _, t := range tracks {
		if t.ID != "" {
			ids = append(ids, t.ID)
		}
		if len(ids) == maxAnalyzedTracks {
			break
		}
	}

	features, err := s.spotify.AudioFeatures(ctx, req.AccessToken, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch audio features: %w", err)
	}
	if len(features) == 0 {
		return nil, ErrNoAudioFeatures
	}

	analysis := AnalyzeVibe(features)
	analysis.TrackCount = len(tracks)
	return analysis, nil
}

// AnalyzeVibe averages audio features into a mood, energy and genre guess
func AnalyzeVibe(features []client.AudioFeatures) *model.MusicAnalysis {
	if len(features) == 0 {
		return &model.MusicAnalysis{
			Mood:        "Unknown",
			Energy:      "Medium",
			Genres:      []string{"Mixed"},
			Description: "Unable to analyze music vibe.",
			SearchTerms: []string{"indie", "pop", "electronic"},
		}
	}

	var avg client.AudioFeatures
	for _, f := range features {
		avg.Danceability += f.Danceability
		avg.Energy += f.Energy
		avg.Valence += f.Valence
		avg.Tempo += f.Tempo
		avg.Acousticness += f.Acousticness
		avg.Instrumentalness += f.Instrumentalness
	}
	n := float64(len(features))
	avg.Danceability /= n
	avg.Energy /= n
	avg.Valence /= n
	avg.Tempo /= n
	avg.Acousticness /= n
	avg.Instrumentalness /= n

	var mood string
	switch {
	case avg.Valence > 0.7:
		mood = "Joyful"
	case avg.Valence > 0.5:
		mood = "Upbeat"
	case avg.Valence > 0.3:
		mood = "Melancholic"
	default:
		mood = "Somber"
	}

	energy := "Low"
	switch {
	case avg.Energy > 0.7:
		energy = "High"
	case avg.Energy > 0.4:
		energy = "Medium"
	}

	var genres []string
	if avg.Acousticness > 0.5 {
		genres = append(genres, "Acoustic", "Folk")
	}
	if avg.Instrumentalness > 0.5 {
		genres = append(genres, "Instrumental", "Ambient")
	}
	if avg.Danceability > 0.6 {
		genres = append(genres, "Dance", "Pop")
	}
	if avg.Tempo > 120 {
		genres = append(genres, "Electronic", "EDM")
	}
	if avg.Tempo < 90 {
		genres = append(genres, "Ballad", "Slow")
	}
	if len(genres) == 0 {
		genres = []string{"Indie", "Alternative", "Rock"}
	}

	pace, feel := "moderate rhythm", "moderate"
	switch {
	case avg.Tempo > 120:
		pace, feel = "upbeat tempo", "upbeat"
	case avg.Tempo < 90:
		pace, feel = "relaxed pace", "chill"
	}

	lead := genres
	if len(lead) > 2 {
		lead = lead[:2]
	}
	description := fmt.Sprintf("A %s %s energy, %s vibes, %s collection that captures your musical essence.",
		strings.ToLower(mood), strings.ToLower(energy), strings.Join(lead, " and "), pace)

	searchTerms := []string{
		strings.ToLower(fmt.Sprintf("%s %s", mood, genres[0])),
		strings.ToLower(fmt.Sprintf("%s energy %s", energy, genres[0])),
		strings.ToLower(fmt.Sprintf("%s %s", mood, feel)),
	}

	if len(genres) > 3 {
		genres = genres[:3]
	}

	return &model.MusicAnalysis{
		Mood:        mood,
		Energy:      energy,
		Genres:      genres,
		Description: description,
		SearchTerms: searchTerms,
	}
}
