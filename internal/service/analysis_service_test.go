package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tunestory/api/internal/model"
)

const pngBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func TestAnalyzePhotoUnconfiguredFallsBack(t *testing.T) {
	svc := NewAnalysisService(&fakeVision{})

	got, err := svc.AnalyzePhoto(context.Background(), pngBase64, "image/png")
	require.NoError(t, err)
	require.Equal(t, FallbackAnalysis(), got)
}

func TestAnalyzePhotoParsesModelOutput(t *testing.T) {
	vision := &fakeVision{
		configured: true,
		reply: "Here you go:\n```json\n" + `{"mood":"Serene","energy":"low","genres":[" Ambient ",""],` +
			`"description":"Waves at dusk","searchTerms":["calm ambient"],` +
			`"visualElements":{"colors":["blue"],"setting":"beach","timeOfDay":"evening","instruments":["Piano"]}}` + "\n```",
	}
	svc := NewAnalysisService(vision)

	got, err := svc.AnalyzePhoto(context.Background(), pngBase64, "image/png")
	require.NoError(t, err)
	require.Equal(t, "Serene", got.Mood)
	require.Equal(t, model.EnergyLow, got.Energy.Label)
	require.Equal(t, []string{"Ambient"}, got.Genres)
	require.Equal(t, "beach", got.VisualElements.Setting)
	require.True(t, strings.HasPrefix(vision.lastImage, "data:image/png;base64,"))
	require.Equal(t, photoUserPrompt, vision.lastUser)
}

func TestAnalyzePhotoNumericEnergyIsClamped(t *testing.T) {
	svc := NewAnalysisService(&fakeVision{configured: true, reply: `{"mood":"Wild","energy":14,"genres":["Rock"]}`})

	got, err := svc.AnalyzePhoto(context.Background(), "data:image/jpeg;base64,"+pngBase64, "")
	require.NoError(t, err)
	require.NotNil(t, got.Energy.Value)
	require.Equal(t, 10.0, *got.Energy.Value)
}

func TestAnalyzePhotoGarbageFallsBack(t *testing.T) {
	svc := NewAnalysisService(&fakeVision{configured: true, reply: "I cannot see the image"})

	got, err := svc.AnalyzePhoto(context.Background(), pngBase64, "")
	require.NoError(t, err)
	require.Equal(t, "Atmospheric", got.Mood)
}

func TestAnalyzePhotoUpstreamError(t *testing.T) {
	upstream := errors.New("rate limited")
	svc := NewAnalysisService(&fakeVision{configured: true, err: upstream})

	_, err := svc.AnalyzePhoto(context.Background(), pngBase64, "")
	require.ErrorIs(t, err, upstream)
}

func TestAnalyzePhotoRejectsBadImages(t *testing.T) {
	svc := NewAnalysisService(&fakeVision{})

	for _, image := range []string{"not base64!!", "", "data:text/plain;base64,aGVsbG8="} {
		_, err := svc.AnalyzePhoto(context.Background(), image, "")
		require.ErrorIs(t, err, ErrInvalidImage, image)
	}

	_, err := svc.AnalyzePhotoBytes(context.Background(), nil, "image/png")
	require.ErrorIs(t, err, ErrInvalidImage)
}

func TestExtractJSON(t *testing.T) {
	require.Equal(t, `{"a":{"b":1}}`, extractJSON(`noise {"a":{"b":1}} trailing`))
	require.Equal(t, "", extractJSON("no json here"))
	require.Equal(t, "", extractJSON("} backwards {"))
}

func TestAugment(t *testing.T) {
	req := &model.PromptAugmentRequest{
		CurrentPrompt: "lo-fi hip hop, calm",
		Direction:     "make it jazzier",
		Context:       &model.PromptContext{Genre: "Lofi Hip-Hop", Instruments: []string{"piano", "bass"}},
	}

	t.Run("unconfigured appends direction", func(t *testing.T) {
		got, err := NewAugmentService(&fakeVision{}).Augment(context.Background(), req)
		require.NoError(t, err)
		require.Equal(t, "lo-fi hip hop, calm, make it jazzier", got)
	})

	t.Run("model rewrite is trimmed", func(t *testing.T) {
		llm := &fakeVision{configured: true, reply: "  \"jazzy lo-fi hip hop, calm, with brushed drums, high quality production\"\n"}
		got, err := NewAugmentService(llm).Augment(context.Background(), req)
		require.NoError(t, err)
		require.Equal(t, "jazzy lo-fi hip hop, calm, with brushed drums, high quality production", got)
		require.Contains(t, llm.lastSystem, `Current prompt: "lo-fi hip hop, calm"`)
		require.Contains(t, llm.lastSystem, "Context: Genre: Lofi Hip-Hop, Mood: not specified, Energy: not specified, Instruments: piano, bass")
	})

	t.Run("empty rewrite keeps current prompt", func(t *testing.T) {
		got, err := NewAugmentService(&fakeVision{configured: true, reply: "   "}).Augment(context.Background(), req)
		require.NoError(t, err)
		require.Equal(t, "lo-fi hip hop, calm", got)
	})
}
