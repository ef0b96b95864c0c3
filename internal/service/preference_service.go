package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tunestory/api/internal/catalog"
	"github.com/tunestory/api/internal/model"
	"github.com/tunestory/api/internal/refine"
	"github.com/tunestory/api/internal/storage"
)

var (
	ErrPresetExists       = errors.New("preset already exists")
	ErrPresetNotFound     = errors.New("preset not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrUnknownInstrument  = errors.New("unknown instrument")
)

// PreferenceService manages a user's defaults and saved presets
type PreferenceService struct {
	store *storage.Store
	now   func() time.Time
}

func NewPreferenceService(store *storage.Store) *PreferenceService {
	return &PreferenceService{store: store, now: time.Now}
}

// Preferences returns nil when the user never saved any
func (s *PreferenceService) Preferences(ctx context.Context, userID string) *model.UserPreferences {
	return s.store.Preferences(ctx, userID)
}

func (s *PreferenceService) SetPreferences(ctx context.Context, userID string, req *model.PreferencesRequest) (*model.UserPreferences, error) {
	if err := checkInstruments(req.DefaultInstruments); err != nil {
		return nil, err
	}

	prefs := model.UserPreferences{
		DefaultGenre:       req.DefaultGenre,
		DefaultInstruments: append([]string(nil), req.DefaultInstruments...),
		DefaultEnergy:      req.DefaultEnergy,
		DefaultBlendRatio:  req.DefaultBlendRatio,
		AlwaysShowAdvanced: req.AlwaysShowAdvanced,
	}
	if !s.store.SetPreferences(ctx, userID, prefs) {
		return nil, ErrStorageUnavailable
	}
	return &prefs, nil
}

func (s *PreferenceService) ClearPreferences(ctx context.Context, userID string) error {
	if !s.store.ClearPreferences(ctx, userID) {
		return ErrStorageUnavailable
	}
	return nil
}

func (s *PreferenceService) Presets(ctx context.Context, userID string) []model.SavedPreset {
	return s.store.SavedPresets(ctx, userID)
}

// CreatePreset stores a new preset under a generated id
func (s *PreferenceService) CreatePreset(ctx context.Context, userID string, req *model.PresetRequest) (*model.SavedPreset, []model.SavedPreset, error) {
	if err := checkInstruments(req.Instruments); err != nil {
		return nil, nil, err
	}

	now := s.now().UTC()
	preset := model.SavedPreset{
		ID:           storage.GeneratePresetID(),
		Name:         req.Name,
		Genre:        req.Genre,
		Instruments:  append([]string{}, req.Instruments...),
		Energy:       req.Energy,
		BlendRatio:   refine.DefaultBlendRatio,
		VibeTemplate: req.VibeTemplate,
		CreatedAt:    &now,
	}
	if preset.Energy == "" {
		preset.Energy = model.EnergyMedium
	}
	if req.BlendRatio != nil {
		preset.BlendRatio = *req.BlendRatio
	}

	if findPreset(s.store.SavedPresets(ctx, userID), preset.ID) != nil {
		return nil, nil, ErrPresetExists
	}
	ok, presets := s.store.AddPreset(ctx, userID, preset)
	if !ok {
		return nil, nil, ErrStorageUnavailable
	}
	return &preset, presets, nil
}

func (s *PreferenceService) UpdatePreset(ctx context.Context, userID, id string, req *model.PresetUpdateRequest) (*model.SavedPreset, []model.SavedPreset, error) {
	if err := checkInstruments(req.Instruments); err != nil {
		return nil, nil, err
	}
	if findPreset(s.store.SavedPresets(ctx, userID), id) == nil {
		return nil, nil, ErrPresetNotFound
	}

	ok, presets := s.store.UpdatePreset(ctx, userID, id, *req)
	if !ok {
		return nil, nil, ErrStorageUnavailable
	}
	return findPreset(presets, id), presets, nil
}

// DeletePreset removes a preset and reports whether it was the active one
func (s *PreferenceService) DeletePreset(ctx context.Context, userID, id, activeID string) (*model.PresetDeleteResponse, error) {
	if findPreset(s.store.SavedPresets(ctx, userID), id) == nil {
		return nil, ErrPresetNotFound
	}

	ok, presets := s.store.DeletePreset(ctx, userID, id)
	if !ok {
		return nil, ErrStorageUnavailable
	}
	return &model.PresetDeleteResponse{
		Presets:         presets,
		ResetToDefaults: activeID != "" && activeID == id,
	}, nil
}

func findPreset(presets []model.SavedPreset, id string) *model.SavedPreset {
	for i := range presets {
		if presets[i].ID == id {
			p := presets[i]
			return &p
		}
	}
	return nil
}

func checkInstruments(ids []string) error {
	for _, id := range ids {
		if _, ok := catalog.GetInstrument(id); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownInstrument, id)
		}
	}
	return nil
}
