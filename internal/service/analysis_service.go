package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tunestory/api/internal/model"
	"github.com/tunestory/api/pkg/logging"
)

// ErrInvalidImage is returned when the payload is not a usable image
var ErrInvalidImage = errors.New("invalid image data")

const (
	maxImageBytes = 10 * 1024 * 1024

	photoSystemPrompt = `You are an expert music mood analyzer for Spotify. Analyze images and extract detailed musical characteristics that will help find matching songs.

Analyze the image for:
1. Emotional mood (joyful, melancholic, energetic, calm, etc.)
2. Energy level (Low, Medium, High)
3. Visual elements: colors (warm/cool, bright/dark), setting (beach, city, nature, etc.), time of day
4. Overall atmosphere and vibe

IMPORTANT - Generate Spotify search terms that will work well with Spotify's search API. Good search terms:
- Combine mood + genre: "chill indie pop", "energetic electronic dance"
- Include descriptive music terms: "ambient atmospheric", "upbeat tropical house"
- Use music-specific descriptors: "synthwave retro", "acoustic folk", "lo-fi hip hop"
- Consider the visual elements: beach scenes → "tropical" or "island vibes", night scenes → "nocturnal" or "dark ambient"
- Be specific but searchable: "indie rock summer vibes" is better than just "happy"

Always respond with a JSON object in this exact format:
{
  "mood": "single word or short phrase describing the primary mood (e.g., 'joyful', 'melancholic', 'energetic', 'peaceful')",
  "energy": "Low", "Medium", or "High",
  "genres": ["genre1", "genre2", "genre3"],
  "description": "A poetic one-sentence description of the vibe",
  "searchTerms": ["search term 1", "search term 2", "search term 3", "search term 4"],
  "visualElements": {
    "colors": ["color1", "color2"],
    "instruments": ["instrument1", "instrument2"],
    "setting": "setting description",
    "timeOfDay": "morning/afternoon/evening/night/unknown",
    "atmosphere": "atmospheric description"
  }
}

Generate 4 searchTerms minimum. Each should be a complete Spotify-searchable query (2-5 words) that combines mood, genre, and characteristics.`

	photoUserPrompt = "Analyze this image and tell me what music would match its vibe. Respond only with the JSON object."
)

// VisionAnalyzer is the LLM surface the analysis and augment services use
type VisionAnalyzer interface {
	AnalyzeImage(ctx context.Context, system, text, imageURL string) (string, error)
	ChatCompletion(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error)
	IsConfigured() bool
}

// AnalysisService turns photos into a musical vibe
type AnalysisService struct {
	vision VisionAnalyzer
}

func NewAnalysisService(vision VisionAnalyzer) *AnalysisService {
	return &AnalysisService{vision: vision}
}

// FallbackAnalysis is served when the model is unavailable or unparseable
func FallbackAnalysis() *model.PhotoAnalysis {
	return &model.PhotoAnalysis{
		Mood:        "Atmospheric",
		Energy:      model.EnergyFromLabel(model.EnergyMedium),
		Genres:      []string{"Indie", "Alternative", "Electronic"},
		Description: "A moment captured in time, filled with possibility.",
		SearchTerms: []string{"chill indie vibes", "ambient electronic", "atmospheric alternative", "mellow indie pop"},
		VisualElements: &model.VisualElements{
			Colors:     []string{},
			Setting:    "unknown",
			TimeOfDay:  "unknown",
			Atmosphere: "neutral",
		},
	}
}

// AnalyzePhoto accepts a data URL or raw base64 with an optional mime type
func (s *AnalysisService) AnalyzePhoto(ctx context.Context, image, mimeType string) (*model.PhotoAnalysis, error) {
	dataURL, err := toDataURL(image, mimeType)
	if err != nil {
		return nil, err
	}

	if s.vision == nil || !s.vision.IsConfigured() {
		return FallbackAnalysis(), nil
	}

	content, err := s.vision.AnalyzeImage(ctx, photoSystemPrompt, photoUserPrompt, dataURL)
	if err != nil {
		return nil, fmt.Errorf("image analysis failed: %w", err)
	}

	analysis, err := parsePhotoAnalysis(content)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("unparseable image analysis, using fallback")
		return FallbackAnalysis(), nil
	}
	return analysis, nil
}

// AnalyzePhotoBytes is AnalyzePhoto for an uploaded file
func (s *AnalysisService) AnalyzePhotoBytes(ctx context.Context, data []byte, mimeType string) (*model.PhotoAnalysis, error) {
	if len(data) == 0 {
		return nil, ErrInvalidImage
	}
	return s.AnalyzePhoto(ctx, base64.StdEncoding.EncodeToString(data), mimeType)
}

func toDataURL(image, mimeType string) (string, error) {
	image = strings.TrimSpace(image)
	if strings.HasPrefix(image, "data:") {
		if !strings.HasPrefix(image, "data:image/") || !strings.Contains(image, ";base64,") {
			return "", fmt.Errorf("%w: must be a base64 image data URL", ErrInvalidImage)
		}
		if base64.StdEncoding.DecodedLen(len(image)) > maxImageBytes {
			return "", fmt.Errorf("%w: image too large (max 10MB)", ErrInvalidImage)
		}
		return image, nil
	}

	raw, err := base64.StdEncoding.DecodeString(image)
	if err != nil || len(raw) == 0 {
		return "", fmt.Errorf("%w: not valid base64", ErrInvalidImage)
	}
	if len(raw) > maxImageBytes {
		return "", fmt.Errorf("%w: image too large (max 10MB)", ErrInvalidImage)
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, image), nil
}

func parsePhotoAnalysis(content string) (*model.PhotoAnalysis, error) {
	raw := extractJSON(content)
	if raw == "" {
		return nil, errors.New("no JSON found in response")
	}

	var analysis model.PhotoAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	normalizePhotoAnalysis(&analysis)
	return &analysis, nil
}

// normalizePhotoAnalysis coerces untrusted model output into a usable shape
func normalizePhotoAnalysis(a *model.PhotoAnalysis) {
	fallback := FallbackAnalysis()

	a.Mood = strings.TrimSpace(a.Mood)
	if a.Mood == "" {
		a.Mood = fallback.Mood
	}

	switch {
	case a.Energy.Value != nil:
		v := *a.Energy.Value
		if v < 0 {
			v = 0
		}
		if v > 10 {
			v = 10
		}
		a.Energy = model.EnergyFromValue(v)
	case a.Energy.Label != "":
		a.Energy = model.EnergyFromLabel(canonicalEnergy(string(a.Energy.Label)))
	}

	genres := a.Genres[:0]
	for _, g := range a.Genres {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	a.Genres = genres
	if len(a.Genres) == 0 {
		a.Genres = fallback.Genres
	}

	a.Description = strings.TrimSpace(a.Description)
	if a.TempoBPM != nil && *a.TempoBPM <= 0 {
		a.TempoBPM = nil
	}
}

// canonicalEnergy maps a free-text label onto Low, Medium or High
func canonicalEnergy(label string) model.EnergyLevel {
	for _, lvl := range model.ValidEnergyLevels {
		if strings.EqualFold(strings.TrimSpace(label), string(lvl)) {
			return lvl
		}
	}
	return model.EnergyMedium
}

// extractJSON returns the outermost {...} block of s, or ""
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return s[start : end+1]
}
