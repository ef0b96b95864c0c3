package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tunestory/api/internal/client"
	"github.com/tunestory/api/internal/model"
	"github.com/tunestory/api/pkg/logging"
)

const (
	maxSearchTermQueries = 3
	resultsPerQuery      = 3
	maxRecommendations   = 5
)

// TrackSearcher finds tracks for a free-text query
type TrackSearcher interface {
	SearchTracks(ctx context.Context, query string, limit int) ([]client.SpotifyTrack, error)
}

// RecommendationService searches Spotify for tracks that fit a vibe
type RecommendationService struct {
	spotify TrackSearcher
}

func NewRecommendationService(spotify TrackSearcher) *RecommendationService {
	return &RecommendationService{spotify: spotify}
}

// Recommend runs every query concurrently and returns up to five unique tracks
// in query order. A failed search contributes no tracks; the other queries
// still count.
func (s *RecommendationService) Recommend(ctx context.Context, req *model.RecommendationRequest) ([]model.Track, error) {
	queries := searchQueries(req)
	genre := "Mixed"
	if len(req.Genres) > 0 && strings.TrimSpace(req.Genres[0]) != "" {
		genre = req.Genres[0]
	}

	logger := logging.FromContext(ctx)
	results := make([][]client.SpotifyTrack, len(queries))
	var g errgroup.Group
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			tracks, err := s.spotify.SearchTracks(ctx, q, resultsPerQuery)
			if err != nil {
				logger.Warn().Err(err).Str("query", q).Msg("spotify search failed")
				return nil
			}
			results[i] = tracks
			return nil
		})
	}
	_ = g.Wait()

	return dedupeTracks(results, genre, maxRecommendations), nil
}

func searchQueries(req *model.RecommendationRequest) []string {
	var queries []string
	for _, t := range req.SearchTerms {
		if len(queries) == maxSearchTermQueries {
			break
		}
		if t = strings.TrimSpace(t); t != "" {
			queries = append(queries, t)
		}
	}
	if len(req.Genres) > 0 {
		queries = append(queries, fmt.Sprintf("%s %s", req.Mood, req.Genres[0]))
	}
	queries = append(queries, fmt.Sprintf("%s %s vibes", req.Mood, req.Energy))
	return queries
}

func dedupeTracks(results [][]client.SpotifyTrack, genre string, limit int) []model.Track {
	seen := make(map[string]struct{})
	tracks := make([]model.Track, 0, limit)
	for _, batch := range results {
		for _, t := range batch {
			if _, ok := seen[t.ID]; ok {
				continue
			}
			seen[t.ID] = struct{}{}
			if len(tracks) < limit {
				tracks = append(tracks, model.Track{
					ID:         t.ID,
					Name:       t.Name,
					Artist:     t.ArtistNames(),
					Album:      t.Album.Name,
					AlbumArt:   t.AlbumArt(),
					PreviewURL: t.PreviewURL,
					SpotifyURL: t.ExternalURLs.Spotify,
					Genre:      genre,
				})
			}
		}
	}
	return tracks
}
