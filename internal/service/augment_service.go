package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tunestory/api/internal/model"
	"github.com/tunestory/api/pkg/logging"
)

const (
	augmentTemperature = 0.7
	augmentMaxTokens   = 200

	augmentRules = `You are a music prompt engineering expert. Your task is to rewrite music generation prompts following AudioCraft MusicGen best practices:

1. Structure: [Era/Style] [Genre], [Mood], [Tempo], [Instrumentation], [Production], [Vocals], [Dynamics], [Quality]
2. Use specific, descriptive language for instruments and production
3. Include tempo descriptors (slow, moderate, upbeat, fast)
4. Specify production quality and era when relevant
5. Keep prompts concise (10-40 words)
6. Always end with "high quality production"`
)

// AugmentService rewrites a generation prompt in a user-given direction
type AugmentService struct {
	llm VisionAnalyzer
}

func NewAugmentService(llm VisionAnalyzer) *AugmentService {
	return &AugmentService{llm: llm}
}

// Augment returns the rewritten prompt. Without an LLM the direction is appended.
func (s *AugmentService) Augment(ctx context.Context, req *model.PromptAugmentRequest) (string, error) {
	current := strings.TrimSpace(req.CurrentPrompt)
	direction := strings.TrimSpace(req.Direction)

	if s.llm == nil || !s.llm.IsConfigured() {
		return fmt.Sprintf("%s, %s", current, direction), nil
	}

	system := fmt.Sprintf("%s\n\nCurrent prompt: %q\n%s\n\nUser direction: %q\n\nRewrite the prompt following the user's direction while maintaining AudioCraft best practices. Return ONLY the rewritten prompt, nothing else.",
		augmentRules, current, augmentContext(req.Context), direction)

	out, err := s.llm.ChatCompletion(ctx, system, direction, augmentTemperature, augmentMaxTokens)
	if err != nil {
		return "", fmt.Errorf("prompt augmentation failed: %w", err)
	}

	augmented := strings.Trim(strings.TrimSpace(out), `"`)
	if augmented == "" {
		return current, nil
	}

	if words := len(strings.Fields(augmented)); words < 5 || words > 50 {
		logging.FromContext(ctx).Warn().Int("words", words).Msg("augmented prompt outside recommended length")
	}
	return augmented, nil
}

func augmentContext(pc *model.PromptContext) string {
	if pc == nil {
		pc = &model.PromptContext{}
	}
	instruments := "not specified"
	if len(pc.Instruments) > 0 {
		instruments = strings.Join(pc.Instruments, ", ")
	}
	return fmt.Sprintf("Context: Genre: %s, Mood: %s, Energy: %s, Instruments: %s",
		orDefault(pc.Genre, "not specified"),
		orDefault(pc.Mood, "not specified"),
		orDefault(pc.Energy, "not specified"),
		instruments)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
