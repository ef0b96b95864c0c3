package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/tunestory/api/internal/config"
)

const audioFeaturesBatch = 100

// ErrSpotifyNotConfigured is returned by app-token calls without client credentials
var ErrSpotifyNotConfigured = errors.New("spotify credentials not configured")

// SpotifyTrack is the subset of the Web API track object we read
type SpotifyTrack struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name   string `json:"name"`
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
	} `json:"album"`
	PreviewURL   *string `json:"preview_url"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

// ArtistNames joins the track's artists with ", "
func (t SpotifyTrack) ArtistNames() string {
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

// AlbumArt returns the first album image, or ""
func (t SpotifyTrack) AlbumArt() string {
	if len(t.Album.Images) == 0 {
		return ""
	}
	return t.Album.Images[0].URL
}

type AudioFeatures struct {
	ID               string  `json:"id"`
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Tempo            float64 `json:"tempo"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Speechiness      float64 `json:"speechiness"`
}

type searchResponse struct {
	Tracks struct {
		Items []SpotifyTrack `json:"items"`
	} `json:"tracks"`
}

type trackPage struct {
	Items []struct {
		Track *SpotifyTrack `json:"track"`
	} `json:"items"`
	Next *string `json:"next"`
}

type audioFeaturesResponse struct {
	AudioFeatures []*AudioFeatures `json:"audio_features"`
}

// SpotifyClient uses an app token (client credentials) for search and the
// caller's user token for library reads.
type SpotifyClient struct {
	baseURL    string
	market     string
	httpClient *http.Client
	appClient  *http.Client
}

func NewSpotifyClient(cfg *config.SpotifyConfig) *SpotifyClient {
	base := &http.Client{Timeout: 15 * time.Second}
	c := &SpotifyClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		market:     cfg.Market,
		httpClient: base,
	}

	if cfg.ClientID != "" && cfg.ClientSecret != "" {
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}
		tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		c.appClient = cc.Client(tokenCtx)
	}
	return c
}

// IsConfigured reports whether app-token calls are possible
func (c *SpotifyClient) IsConfigured() bool {
	return c.appClient != nil
}

// SearchTracks runs a track search with the app token
func (c *SpotifyClient) SearchTracks(ctx context.Context, query string, limit int) ([]SpotifyTrack, error) {
	if c.appClient == nil {
		return nil, ErrSpotifyNotConfigured
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", strconv.Itoa(limit))
	if c.market != "" {
		params.Set("market", c.market)
	}

	var resp searchResponse
	if err := c.get(ctx, c.appClient, c.baseURL+"/search?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("spotify search: %w", err)
	}
	return resp.Tracks.Items, nil
}

// LikedTracks pages through the user's saved tracks until max are collected
func (c *SpotifyClient) LikedTracks(ctx context.Context, accessToken string, max int) ([]SpotifyTrack, error) {
	tracks, err := c.pageTracks(ctx, accessToken, c.baseURL+"/me/tracks?limit=50", max)
	if err != nil {
		return nil, fmt.Errorf("spotify liked tracks: %w", err)
	}
	return tracks, nil
}

// PlaylistTracks pages through a playlist until max are collected
func (c *SpotifyClient) PlaylistTracks(ctx context.Context, accessToken, playlistID string, max int) ([]SpotifyTrack, error) {
	endpoint := fmt.Sprintf("%s/playlists/%s/tracks?limit=50", c.baseURL, url.PathEscape(playlistID))
	tracks, err := c.pageTracks(ctx, accessToken, endpoint, max)
	if err != nil {
		return nil, fmt.Errorf("spotify playlist tracks: %w", err)
	}
	return tracks, nil
}

// AudioFeatures fetches features in batches of 100. A failed batch is
// skipped; null entries are dropped.
func (c *SpotifyClient) AudioFeatures(ctx context.Context, accessToken string, ids []string) ([]AudioFeatures, error) {
	hc := c.userClient(ctx, accessToken)
	features := make([]AudioFeatures, 0, len(ids))

	for start := 0; start < len(ids); start += audioFeaturesBatch {
		end := start + audioFeaturesBatch
		if end > len(ids) {
			end = len(ids)
		}

		params := url.Values{}
		params.Set("ids", strings.Join(ids[start:end], ","))

		var resp audioFeaturesResponse
		if err := c.get(ctx, hc, c.baseURL+"/audio-features?"+params.Encode(), &resp); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("component", "spotify").Int("batch_start", start).Msg("audio features batch failed")
			continue
		}
		for _, f := range resp.AudioFeatures {
			if f != nil {
				features = append(features, *f)
			}
		}
	}
	return features, nil
}

func (c *SpotifyClient) pageTracks(ctx context.Context, accessToken, endpoint string, max int) ([]SpotifyTrack, error) {
	hc := c.userClient(ctx, accessToken)
	var tracks []SpotifyTrack

	next := endpoint
	for next != "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var page trackPage
		if err := c.get(ctx, hc, next, &page); err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			if item.Track != nil && item.Track.ID != "" {
				tracks = append(tracks, *item.Track)
			}
		}
		if max > 0 && len(tracks) >= max {
			return tracks[:max], nil
		}

		next = ""
		if page.Next != nil {
			next = *page.Next
		}
	}
	return tracks, nil
}

func (c *SpotifyClient) userClient(ctx context.Context, accessToken string) *http.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	return oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, c.httpClient), ts)
}

func (c *SpotifyClient) get(ctx context.Context, hc *http.Client, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	log.Ctx(ctx).Debug().
		Str("component", "spotify").
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("spotify request")

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("spotify API error (status %d): %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
