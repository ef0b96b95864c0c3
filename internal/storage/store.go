package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/tunestory/api/internal/model"
	"github.com/tunestory/api/pkg/logging"
)

const (
	PreferencesKey = "tunestory_user_preferences"
	PresetsKey     = "tunestory_saved_presets"
	VersionKey     = "tunestory_storage_version"

	CurrentVersion = "1.0"
)

// Store keeps one preferences document and one preset list per user.
// Backend failures and corrupt documents are logged and reported as absent
// values or a false success flag; they never surface as errors.
type Store struct {
	kv KV
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

func userKey(base, userID string) string {
	return fmt.Sprintf("%s:%s", base, userID)
}

// Preferences returns the user's saved defaults, or nil when none are stored
func (s *Store) Preferences(ctx context.Context, userID string) *model.UserPreferences {
	data, err := s.kv.Get(ctx, userKey(PreferencesKey, userID))
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			logging.FromContext(ctx).Error().Err(err).Str("user_id", userID).Msg("failed to read user preferences")
		}
		return nil
	}

	var prefs model.UserPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		logging.FromContext(ctx).Error().Err(err).Str("user_id", userID).Msg("corrupt user preferences")
		return nil
	}

	s.ensureVersion(ctx, userID)
	return &prefs
}

// SetPreferences overwrites the user's preferences wholesale
func (s *Store) SetPreferences(ctx context.Context, userID string, prefs model.UserPreferences) bool {
	if !s.put(ctx, userKey(PreferencesKey, userID), prefs) {
		return false
	}
	s.writeVersion(ctx, userID)
	return true
}

func (s *Store) ClearPreferences(ctx context.Context, userID string) bool {
	if err := s.kv.Delete(ctx, userKey(PreferencesKey, userID)); err != nil {
		logging.FromContext(ctx).Error().Err(err).Str("user_id", userID).Msg("failed to clear user preferences")
		return false
	}
	return true
}

// SavedPresets returns the user's presets in insertion order, never nil
func (s *Store) SavedPresets(ctx context.Context, userID string) []model.SavedPreset {
	data, err := s.kv.Get(ctx, userKey(PresetsKey, userID))
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			logging.FromContext(ctx).Error().Err(err).Str("user_id", userID).Msg("failed to read saved presets")
		}
		return []model.SavedPreset{}
	}
	return decodePresets(ctx, userID, data)
}

func (s *Store) SetSavedPresets(ctx context.Context, userID string, presets []model.SavedPreset) bool {
	if presets == nil {
		presets = []model.SavedPreset{}
	}
	return s.put(ctx, userKey(PresetsKey, userID), presets)
}

// errPresetTaken aborts an add whose id is already stored
var errPresetTaken = errors.New("preset id already taken")

// AddPreset appends preset unless its id is already taken. The returned list
// is the stored state after the call.
func (s *Store) AddPreset(ctx context.Context, userID string, preset model.SavedPreset) (bool, []model.SavedPreset) {
	return s.updatePresets(ctx, userID, func(presets []model.SavedPreset) ([]model.SavedPreset, error) {
		for _, p := range presets {
			if p.ID == preset.ID {
				return nil, errPresetTaken
			}
		}
		return append(append([]model.SavedPreset(nil), presets...), preset), nil
	})
}

// DeletePreset removes the preset with id. Removing an unknown id succeeds.
func (s *Store) DeletePreset(ctx context.Context, userID, id string) (bool, []model.SavedPreset) {
	return s.updatePresets(ctx, userID, func(presets []model.SavedPreset) ([]model.SavedPreset, error) {
		updated := make([]model.SavedPreset, 0, len(presets))
		for _, p := range presets {
			if p.ID != id {
				updated = append(updated, p)
			}
		}
		return updated, nil
	})
}

// UpdatePreset merges the non-nil fields of patch into the preset with id
func (s *Store) UpdatePreset(ctx context.Context, userID, id string, patch model.PresetUpdateRequest) (bool, []model.SavedPreset) {
	return s.updatePresets(ctx, userID, func(presets []model.SavedPreset) ([]model.SavedPreset, error) {
		updated := make([]model.SavedPreset, len(presets))
		for i, p := range presets {
			if p.ID == id {
				p = mergePreset(p, patch)
			}
			updated[i] = p
		}
		return updated, nil
	})
}

// updatePresets applies fn to the stored list as one atomic read-modify-write.
// On failure the list as last read is returned.
func (s *Store) updatePresets(ctx context.Context, userID string, fn func([]model.SavedPreset) ([]model.SavedPreset, error)) (bool, []model.SavedPreset) {
	key := userKey(PresetsKey, userID)
	var before, after []model.SavedPreset

	err := s.kv.Update(ctx, key, 0, func(current []byte) ([]byte, error) {
		before = decodePresets(ctx, userID, current)
		updated, err := fn(before)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			updated = []model.SavedPreset{}
		}
		after = updated
		return json.Marshal(updated)
	})
	if err != nil {
		if !errors.Is(err, errPresetTaken) {
			logging.FromContext(ctx).Error().Err(err).Str("key", key).Msg("failed to update saved presets")
		}
		if before == nil {
			before = []model.SavedPreset{}
		}
		return false, before
	}
	return true, after
}

func decodePresets(ctx context.Context, userID string, data []byte) []model.SavedPreset {
	if data == nil {
		return []model.SavedPreset{}
	}
	var presets []model.SavedPreset
	if err := json.Unmarshal(data, &presets); err != nil || presets == nil {
		if err != nil {
			logging.FromContext(ctx).Error().Err(err).Str("user_id", userID).Msg("corrupt saved presets")
		}
		return []model.SavedPreset{}
	}
	return presets
}

func mergePreset(p model.SavedPreset, patch model.PresetUpdateRequest) model.SavedPreset {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Genre != nil {
		p.Genre = *patch.Genre
	}
	if patch.Instruments != nil {
		p.Instruments = append([]string(nil), patch.Instruments...)
	}
	if patch.Energy != nil {
		p.Energy = *patch.Energy
	}
	if patch.BlendRatio != nil {
		p.BlendRatio = *patch.BlendRatio
	}
	if patch.VibeTemplate != nil {
		p.VibeTemplate = *patch.VibeTemplate
	}
	return p
}

// GeneratePresetID returns an opaque id of the form preset_{unixMillis}_{random}
func GeneratePresetID() string {
	return fmt.Sprintf("preset_%d_%s", time.Now().UnixMilli(), randomSuffix(9))
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return string(b)
}

func (s *Store) put(ctx context.Context, key string, v interface{}) bool {
	data, err := json.Marshal(v)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Str("key", key).Msg("failed to encode document")
		return false
	}
	if err := s.kv.Set(ctx, key, data, 0); err != nil {
		logging.FromContext(ctx).Error().Err(err).Str("key", key).Msg("failed to write document")
		return false
	}
	return true
}

func (s *Store) ensureVersion(ctx context.Context, userID string) {
	data, err := s.kv.Get(ctx, userKey(VersionKey, userID))
	if err == nil && string(data) == CurrentVersion {
		return
	}
	s.writeVersion(ctx, userID)
}

func (s *Store) writeVersion(ctx context.Context, userID string) {
	key := userKey(VersionKey, userID)
	if err := s.kv.Set(ctx, key, []byte(CurrentVersion), 0); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("failed to write storage version")
	}
}

// Version returns the stored schema version for userID, if any
func (s *Store) Version(ctx context.Context, userID string) (string, bool) {
	data, err := s.kv.Get(ctx, userKey(VersionKey, userID))
	if err != nil {
		return "", false
	}
	return string(data), true
}
