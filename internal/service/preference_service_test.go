package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tunestory/api/internal/model"
	"github.com/tunestory/api/internal/storage"
)

func newPreferenceService() *PreferenceService {
	return NewPreferenceService(storage.NewStore(storage.NewMemoryKV()))
}

func TestPreferencesLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newPreferenceService()

	require.Nil(t, svc.Preferences(ctx, "u1"))

	energy := model.EnergyHigh
	saved, err := svc.SetPreferences(ctx, "u1", &model.PreferencesRequest{
		DefaultInstruments: []string{"drums", "synth"},
		DefaultEnergy:      &energy,
	})
	require.NoError(t, err)
	require.Equal(t, saved, svc.Preferences(ctx, "u1"))

	_, err = svc.SetPreferences(ctx, "u1", &model.PreferencesRequest{DefaultInstruments: []string{"kazoo"}})
	require.ErrorIs(t, err, ErrUnknownInstrument)

	require.NoError(t, svc.ClearPreferences(ctx, "u1"))
	require.Nil(t, svc.Preferences(ctx, "u1"))
}

func TestPresetLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newPreferenceService()

	require.Empty(t, svc.Presets(ctx, "u1"))

	preset, presets, err := svc.CreatePreset(ctx, "u1", &model.PresetRequest{
		Name:        "Night drive",
		Genre:       "synthwave",
		Instruments: []string{"synth", "synth-bass"},
	})
	require.NoError(t, err)
	require.Len(t, presets, 1)
	require.Equal(t, model.EnergyMedium, preset.Energy)
	require.Equal(t, 30, preset.BlendRatio)
	require.NotNil(t, preset.CreatedAt)

	name := "Late night drive"
	updated, _, err := svc.UpdatePreset(ctx, "u1", preset.ID, &model.PresetUpdateRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, name, updated.Name)
	require.Equal(t, "synthwave", updated.Genre)

	_, _, err = svc.UpdatePreset(ctx, "u1", "preset_missing", &model.PresetUpdateRequest{Name: &name})
	require.ErrorIs(t, err, ErrPresetNotFound)

	_, _, err = svc.UpdatePreset(ctx, "u2", preset.ID, &model.PresetUpdateRequest{Name: &name})
	require.ErrorIs(t, err, ErrPresetNotFound, "presets are per user")

	deleted, err := svc.DeletePreset(ctx, "u1", preset.ID, preset.ID)
	require.NoError(t, err)
	require.True(t, deleted.ResetToDefaults)
	require.Empty(t, deleted.Presets)

	_, err = svc.DeletePreset(ctx, "u1", preset.ID, "")
	require.ErrorIs(t, err, ErrPresetNotFound)
}

func TestDeleteInactivePresetKeepsSelection(t *testing.T) {
	ctx := context.Background()
	svc := newPreferenceService()

	a, _, err := svc.CreatePreset(ctx, "u1", &model.PresetRequest{Name: "A"})
	require.NoError(t, err)
	b, _, err := svc.CreatePreset(ctx, "u1", &model.PresetRequest{Name: "B"})
	require.NoError(t, err)

	resp, err := svc.DeletePreset(ctx, "u1", a.ID, b.ID)
	require.NoError(t, err)
	require.False(t, resp.ResetToDefaults)
	require.Len(t, resp.Presets, 1)
	require.Equal(t, b.ID, resp.Presets[0].ID)
}
