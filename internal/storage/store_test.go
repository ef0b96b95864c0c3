package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tunestory/api/internal/model"
)

type failingKV struct{}

func (failingKV) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("backend down")
}

func (failingKV) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("quota exceeded")
}

func (failingKV) Delete(context.Context, string) error {
	return errors.New("backend down")
}

func (failingKV) Update(context.Context, string, time.Duration, UpdateFunc) error {
	return errors.New("backend down")
}

func strPtr(s string) *string { return &s }

func TestPreferencesRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryKV())

	require.Nil(t, store.Preferences(ctx, "u1"))

	ratio := 55
	energy := model.EnergyHigh
	prefs := model.UserPreferences{
		DefaultGenre:       strPtr("synthwave"),
		DefaultInstruments: []string{"synth", "drums"},
		DefaultEnergy:      &energy,
		DefaultBlendRatio:  &ratio,
		AlwaysShowAdvanced: true,
	}
	require.True(t, store.SetPreferences(ctx, "u1", prefs))

	got := store.Preferences(ctx, "u1")
	require.NotNil(t, got)
	require.Equal(t, prefs, *got)

	version, ok := store.Version(ctx, "u1")
	require.True(t, ok)
	require.Equal(t, CurrentVersion, version)

	require.Nil(t, store.Preferences(ctx, "u2"), "preferences are per user")

	require.True(t, store.ClearPreferences(ctx, "u1"))
	require.Nil(t, store.Preferences(ctx, "u1"))
}

func TestCorruptDocuments(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	store := NewStore(kv)

	require.NoError(t, kv.Set(ctx, userKey(PreferencesKey, "u1"), []byte("{not json"), 0))
	require.Nil(t, store.Preferences(ctx, "u1"))

	require.NoError(t, kv.Set(ctx, userKey(PresetsKey, "u1"), []byte(`{"id":"x"}`), 0))
	require.Empty(t, store.SavedPresets(ctx, "u1"))

	require.NoError(t, kv.Set(ctx, userKey(PresetsKey, "u1"), []byte(`null`), 0))
	require.NotNil(t, store.SavedPresets(ctx, "u1"))
}

func TestBackendFailures(t *testing.T) {
	ctx := context.Background()
	store := NewStore(failingKV{})

	require.Nil(t, store.Preferences(ctx, "u1"))
	require.False(t, store.SetPreferences(ctx, "u1", model.UserPreferences{}))
	require.False(t, store.ClearPreferences(ctx, "u1"))
	require.Empty(t, store.SavedPresets(ctx, "u1"))

	ok, presets := store.AddPreset(ctx, "u1", model.SavedPreset{ID: "p1"})
	require.False(t, ok)
	require.Empty(t, presets)
}

func TestPresetLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryKV())

	first := model.SavedPreset{ID: "p1", Name: "Night Drive", Genre: "synthwave", Instruments: []string{"synth", "drums"}, Energy: model.EnergyMedium, BlendRatio: 40}
	second := model.SavedPreset{ID: "p2", Name: "Coffee", Genre: "lofi-beats", Instruments: []string{"rhodes"}, Energy: model.EnergyLow, BlendRatio: 30}

	ok, presets := store.AddPreset(ctx, "u1", first)
	require.True(t, ok)
	require.Len(t, presets, 1)

	ok, presets = store.AddPreset(ctx, "u1", second)
	require.True(t, ok)
	require.Len(t, presets, 2)

	ok, presets = store.AddPreset(ctx, "u1", model.SavedPreset{ID: "p1", Name: "dup"})
	require.False(t, ok, "duplicate ids are rejected")
	require.Len(t, presets, 2)
	require.Equal(t, "Night Drive", presets[0].Name)

	ratio := 80
	ok, presets = store.UpdatePreset(ctx, "u1", "p1", model.PresetUpdateRequest{Name: strPtr("Late Drive"), BlendRatio: &ratio})
	require.True(t, ok)
	require.Equal(t, "Late Drive", presets[0].Name)
	require.Equal(t, 80, presets[0].BlendRatio)
	require.Equal(t, "synthwave", presets[0].Genre, "unset fields are kept")
	require.Equal(t, second, presets[1])

	ok, presets = store.DeletePreset(ctx, "u1", "p1")
	require.True(t, ok)
	require.Equal(t, []model.SavedPreset{second}, presets)
	require.Equal(t, presets, store.SavedPresets(ctx, "u1"))

	ok, presets = store.DeletePreset(ctx, "u1", "missing")
	require.True(t, ok)
	require.Len(t, presets, 1)
}

func TestConcurrentPresetWritesAreNotLost(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryKV())

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store.AddPreset(ctx, "u1", model.SavedPreset{ID: fmt.Sprintf("p%d", i), Name: "n"})
		}(i)
	}
	wg.Wait()

	require.Len(t, store.SavedPresets(ctx, "u1"), writers)
}

func TestMemoryKVUpdate(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	require.NoError(t, kv.Update(ctx, "k", 0, func(current []byte) ([]byte, error) {
		require.Nil(t, current)
		return []byte("one"), nil
	}))

	abort := errors.New("abort")
	require.ErrorIs(t, kv.Update(ctx, "k", 0, func([]byte) ([]byte, error) {
		return nil, abort
	}), abort)

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "one", string(got))
}

func TestGeneratePresetID(t *testing.T) {
	a := GeneratePresetID()
	b := GeneratePresetID()
	require.True(t, strings.HasPrefix(a, "preset_"))
	require.Len(t, strings.Split(a, "_"), 3)
	require.NotEqual(t, a, b)
}

func TestMemoryKVExpiry(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	now := time.Unix(1000, 0)
	kv.now = func() time.Time { return now }

	require.NoError(t, kv.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), got)

	now = now.Add(2 * time.Minute)
	_, err = kv.Get(ctx, "k")
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestJobStore(t *testing.T) {
	ctx := context.Background()
	jobs := NewJobStore(NewMemoryKV(), 0)

	_, err := jobs.Get(ctx, "nope")
	require.ErrorIs(t, err, ErrJobNotFound)

	job := &model.Job{ID: "j1", Type: model.JobTypeGenerate, Status: model.JobStatusQueued, CreatedAt: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, jobs.Save(ctx, job))

	got, err := jobs.Get(ctx, "j1")
	require.NoError(t, err)
	require.Equal(t, job.Status, got.Status)
	require.True(t, job.CreatedAt.Equal(got.CreatedAt))
}
