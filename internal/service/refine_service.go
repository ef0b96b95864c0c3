package service

import (
	"context"

	"github.com/tunestory/api/internal/catalog"
	"github.com/tunestory/api/internal/model"
	"github.com/tunestory/api/internal/prompt"
	"github.com/tunestory/api/internal/refine"
	"github.com/tunestory/api/internal/storage"
)

// RefineService runs the rules engine on behalf of a user
type RefineService struct {
	store *storage.Store
}

func NewRefineService(store *storage.Store) *RefineService {
	return &RefineService{store: store}
}

// Refine blends the request with the user's saved preferences and renders the
// generation prompt for the result.
func (s *RefineService) Refine(ctx context.Context, userID string, req *model.RefineRequest) *model.RefineResponse {
	var prefs *model.UserPreferences
	if s.store != nil && userID != "" {
		prefs = s.store.Preferences(ctx, userID)
	}

	refined := refine.Blend(refine.Input{
		Analysis:        req.Analysis,
		Preferences:     prefs,
		UserGenre:       req.Genre,
		UserInstruments: req.Instruments,
		UserEnergy:      req.Energy,
		UserVibe:        req.Vibe,
		BlendRatio:      req.BlendRatio,
	})

	resp := &model.RefineResponse{
		Refined:    refined,
		Prompt:     prompt.Build(prompt.FromRefined(refined, req.StyleLevel, req.VocalType)),
		Validation: catalog.Validate(refined.Instruments),
	}
	if p, ok := catalog.FindMatchingPreset(refined.Instruments); ok {
		resp.Preset = &p
	}
	return resp
}

// BuildPrompt renders an already refined analysis
func (s *RefineService) BuildPrompt(req *model.PromptBuildRequest) string {
	return prompt.Build(prompt.FromRefined(req.Refined, req.StyleLevel, req.VocalType))
}

// MapGenre resolves free text to a catalog genre
func (s *RefineService) MapGenre(text string) model.GenreMapResponse {
	id := catalog.MapAIGenre(text)
	return model.GenreMapResponse{GenreID: id, Label: catalog.GenreLabel(id)}
}
